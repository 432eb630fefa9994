package pipeline

import "github.com/go-scripts/speakers/internal/types"

// Sentinel replaces empty fields before the result set is written out.
const Sentinel = "N/A"

// Normalize replaces every empty field with the sentinel. It runs before
// Dedupe so duplicate detection sees the values the report will show.
func Normalize(speakers []types.Speaker) []types.Speaker {
	out := make([]types.Speaker, len(speakers))
	for i, s := range speakers {
		out[i] = types.Speaker{
			Name:     orSentinel(s.Name),
			FirstTag: orSentinel(s.FirstTag),
			LastTag:  orSentinel(s.LastTag),
			About:    orSentinel(s.About),
		}
	}
	return out
}

// Dedupe drops rows equal to an earlier one across all four fields,
// keeping the first occurrence and the original order.
func Dedupe(speakers []types.Speaker) []types.Speaker {
	seen := make(map[types.Speaker]struct{}, len(speakers))
	out := make([]types.Speaker, 0, len(speakers))
	for _, s := range speakers {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func orSentinel(s string) string {
	if s == "" {
		return Sentinel
	}
	return s
}
