package digest

import (
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/harborne/mentionwatch/internal/feed"
	"github.com/harborne/mentionwatch/internal/urlcanon"
	"github.com/harborne/mentionwatch/internal/watchlist"
)

// PDFRenderer writes a digest to an A4 PDF. In grouped mode items are laid
// out in one section per watchlist entity; otherwise as a single combined
// list with an outlet badge per headline.
type PDFRenderer struct {
	wl      *watchlist.Watchlist
	grouped bool
}

func NewPDFRenderer(wl *watchlist.Watchlist, grouped bool) *PDFRenderer {
	return &PDFRenderer{wl: wl, grouped: grouped}
}

var titleCaser = cases.Title(language.English)

// Render writes the digest to path.
func (r *PDFRenderer) Render(d Digest, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	// Pin document metadata to the digest timestamp so identical input
	// produces byte-identical output; fpdf stamps wall-clock time otherwise.
	pdf.SetCreationDate(d.GeneratedAt)
	pdf.SetModificationDate(d.GeneratedAt)
	pdf.SetCatalogSort(true)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	weekday := d.GeneratedAt.Format("Monday")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(128, 128, 128)
		footer := fmt.Sprintf("%s - %s, %s - Page %d",
			d.Title, weekday, d.GeneratedAt.Format("2006-01-02"), pdf.PageNo())
		pdf.CellFormat(0, 10, tr(footer), "", 0, "R", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 9, tr(d.Title), "", "L", false)

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(102, 102, 102)
	sub := fmt.Sprintf("Generated %s, %s (%s) - %d matches - Sources: %d",
		weekday, d.GeneratedAt.Format("2006-01-02 15:04"), d.Timezone, len(d.Items), d.NumSources)
	pdf.MultiCell(0, 6, tr(sub), "", "L", false)
	pdf.Ln(3)

	if r.grouped {
		r.renderGrouped(pdf, tr, d)
	} else {
		r.renderCombined(pdf, tr, d)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf %s: %w", path, err)
	}
	return nil
}

func (r *PDFRenderer) renderGrouped(pdf *fpdf.Fpdf, tr func(string) string, d Digest) {
	for _, section := range GroupByEntity(d.Items, r.wl.EntityNames()) {
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.MultiCell(0, 7, tr(titleCaser.String(section.Entity)), "", "L", false)

		if len(section.Items) == 0 {
			pdf.SetFont("Helvetica", "I", 10)
			pdf.SetTextColor(102, 102, 102)
			pdf.MultiCell(0, 5, tr("- no mentions today -"), "", "L", false)
			pdf.Ln(3)
			continue
		}
		for _, it := range section.Items {
			r.renderItem(pdf, tr, it, it.Title, r.wl.AliasesFor(section.Entity))
		}
		pdf.Ln(2)
	}
}

func (r *PDFRenderer) renderCombined(pdf *fpdf.Fpdf, tr func(string) string, d Digest) {
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.MultiCell(0, 7, "All sources", "", "L", false)

	if len(d.Items) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.SetTextColor(102, 102, 102)
		pdf.MultiCell(0, 5, "No matches today.", "", "L", false)
		return
	}
	for _, it := range d.Items {
		badge := fmt.Sprintf("[%s] ", r.wl.OutletName(urlcanon.Domain(it.Link)))
		r.renderItem(pdf, tr, it, badge+it.Title, it.Hits)
	}
}

func (r *PDFRenderer) renderItem(pdf *fpdf.Fpdf, tr func(string) string, it feed.MatchedItem, headline string, highlights []string) {
	pdf.SetTextColor(0, 0, 0)
	if headline == "" {
		headline = "(no title)"
	}
	writeHighlighted(pdf, tr, headline, highlights)

	var meta []string
	if it.Source != "" {
		meta = append(meta, it.Source)
	}
	if it.Published != "" {
		meta = append(meta, it.Published)
	}
	if len(meta) > 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(85, 85, 85)
		pdf.MultiCell(0, 5, tr(strings.Join(meta, " - ")), "", "L", false)
	}
	if it.Summary != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(0, 0, 0)
		pdf.MultiCell(0, 5, tr(it.Summary), "", "L", false)
	}
	if it.Link != "" {
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 255)
		pdf.WriteLinkString(4.5, tr(it.Link), it.Link)
		pdf.Ln(4.5)
	}
	pdf.Ln(3)
}

// writeHighlighted writes a headline with occurrences of the highlight
// strings in bold. Highlights are matched case-insensitively; byte offsets
// are only trusted when lowercasing preserves length, otherwise the headline
// is written plain.
func writeHighlighted(pdf *fpdf.Fpdf, tr func(string) string, text string, highlights []string) {
	const lineHt = 5.0
	lower := strings.ToLower(text)
	if len(lower) != len(text) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.Write(lineHt, tr(text))
		pdf.Ln(lineHt)
		return
	}

	pos := 0
	for pos < len(text) {
		start, length := -1, 0
		for _, h := range highlights {
			hl := strings.ToLower(h)
			if hl == "" {
				continue
			}
			if i := strings.Index(lower[pos:], hl); i >= 0 {
				abs := pos + i
				if start == -1 || abs < start || (abs == start && len(hl) > length) {
					start, length = abs, len(hl)
				}
			}
		}
		if start == -1 {
			pdf.SetFont("Helvetica", "", 10)
			pdf.Write(lineHt, tr(text[pos:]))
			break
		}
		if start > pos {
			pdf.SetFont("Helvetica", "", 10)
			pdf.Write(lineHt, tr(text[pos:start]))
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Write(lineHt, tr(text[start:start+length]))
		pos = start + length
	}
	pdf.Ln(lineHt)
}
