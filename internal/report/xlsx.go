// Package report persists the final speaker set as a styled spreadsheet:
// frozen filterable header, alternating row shading, dimmed sentinel cells
// and a source/timestamp footer.
package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/go-scripts/speakers/internal/pipeline"
	"github.com/go-scripts/speakers/internal/types"
)

var headers = []string{"Name", "First Tag", "Last Tag", "About the Speaker"}

const (
	headerColor = "1F4E78"
	altRowColor = "F5F5F5"
	dimColor    = "808080"
	maxColWidth = 60
)

// Writer writes speaker result sets to a fixed output path, overwriting any
// previous run's file.
type Writer struct {
	path      string
	sourceURL string
}

// NewWriter creates a Writer targeting path; sourceURL is recorded in the
// footer of every written workbook.
func NewWriter(path, sourceURL string) *Writer {
	return &Writer{path: path, sourceURL: sourceURL}
}

// Write persists the speakers in order as a styled workbook. generatedAt is
// stamped into the footer.
func (w *Writer) Write(speakers []types.Speaker, generatedAt time.Time) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	styles, err := newStyleSet(f)
	if err != nil {
		return fmt.Errorf("build styles: %w", err)
	}

	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	endHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheet, "A1", endHeader, styles.header); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, s := range speakers {
		row := i + 2
		alt := row%2 == 0
		values := []string{s.Name, s.FirstTag, s.LastTag, s.About}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
			if err := f.SetCellStyle(sheet, cell, cell, styles.data(v == pipeline.Sentinel, alt)); err != nil {
				return fmt.Errorf("style row %d: %w", row, err)
			}
		}
	}

	w.sizeColumns(f, sheet, speakers)

	lastDataRow := len(speakers) + 1
	endData, _ := excelize.CoordinatesToCellName(len(headers), lastDataRow)
	if err := f.AutoFilter(sheet, "A1:"+endData, nil); err != nil {
		return fmt.Errorf("set autofilter: %w", err)
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if err := w.writeFooter(f, sheet, lastDataRow, generatedAt, styles.dim); err != nil {
		return err
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook %s: %w", w.path, err)
	}
	return nil
}

func (w *Writer) writeFooter(f *excelize.File, sheet string, lastDataRow int, generatedAt time.Time, dimStyle int) error {
	row := lastDataRow + 2
	source := fmt.Sprintf("Sourced from (%s)", w.sourceURL)
	stamp := "Generated on: " + generatedAt.Format("2006-01-02 15:04:05")

	for i, note := range []string{source, stamp} {
		cell, _ := excelize.CoordinatesToCellName(1, row+i)
		if err := f.SetCellValue(sheet, cell, note); err != nil {
			return fmt.Errorf("write footer: %w", err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, dimStyle); err != nil {
			return fmt.Errorf("style footer: %w", err)
		}
	}
	return nil
}

// sizeColumns widens each column to its longest value plus padding, capped
// so biography text does not blow the layout up.
func (w *Writer) sizeColumns(f *excelize.File, sheet string, speakers []types.Speaker) {
	for col, h := range headers {
		width := len(h)
		for _, s := range speakers {
			v := []string{s.Name, s.FirstTag, s.LastTag, s.About}[col]
			if len(v) > width {
				width = len(v)
			}
		}
		width += 2
		if width > maxColWidth {
			width = maxColWidth
		}
		name, _ := excelize.ColumnNumberToName(col + 1)
		_ = f.SetColWidth(sheet, name, name, float64(width))
	}
}

type styleSet struct {
	header  int
	plain   int
	plainNA int
	alt     int
	altNA   int
	dim     int
}

func (s styleSet) data(sentinel, alt bool) int {
	switch {
	case sentinel && alt:
		return s.altNA
	case sentinel:
		return s.plainNA
	case alt:
		return s.alt
	default:
		return s.plain
	}
}

func newStyleSet(f *excelize.File) (styleSet, error) {
	var set styleSet
	var err error

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 2},
		{Type: "right", Color: "000000", Style: 2},
		{Type: "top", Color: "000000", Style: 2},
		{Type: "bottom", Color: "000000", Style: 2},
	}
	altFill := excelize.Fill{Type: "pattern", Color: []string{altRowColor}, Pattern: 1}
	dimFont := &excelize.Font{Color: dimColor, Italic: true}

	set.header, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerColor}, Pattern: 1},
		Font:      &excelize.Font{Color: "FFFFFF", Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return set, err
	}
	set.plain, err = f.NewStyle(&excelize.Style{Border: border})
	if err != nil {
		return set, err
	}
	set.plainNA, err = f.NewStyle(&excelize.Style{Border: border, Font: dimFont})
	if err != nil {
		return set, err
	}
	set.alt, err = f.NewStyle(&excelize.Style{Border: border, Fill: altFill})
	if err != nil {
		return set, err
	}
	set.altNA, err = f.NewStyle(&excelize.Style{Border: border, Fill: altFill, Font: dimFont})
	if err != nil {
		return set, err
	}
	set.dim, err = f.NewStyle(&excelize.Style{Font: dimFont})
	return set, err
}
