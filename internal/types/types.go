package types

// Card represents one speaker entry on the directory page, in the order
// it appears on the site. DetailURL is empty when the card had no link.
type Card struct {
	Name      string
	FirstTag  string
	LastTag   string
	DetailURL string
}

// Speaker is a Card enriched with the biography scraped from its detail
// page. About is empty when the detail fetch or parse failed.
type Speaker struct {
	Name     string
	FirstTag string
	LastTag  string
	About    string
}
