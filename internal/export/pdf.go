package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// pdfTitle is the heading printed at the top of every PDF export
const pdfTitle = "Vimeo Subtitle Transcript"

// renderPDF builds a Letter-sized PDF with a centered title followed by the
// transcript, one paragraph per line of text. Blank lines are skipped.
func renderPDF(text string) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetTitle(pdfTitle, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// Add a title
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 22, tr(pdfTitle), "", 1, "C", false, 0, "")
	pdf.Ln(12)

	// Add the subtitle text (wrapped automatically)
	pdf.SetFont("Helvetica", "", 11)
	for _, para := range strings.Split(text, "\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		pdf.MultiCell(0, 14, tr(para), "", "L", false)
		pdf.Ln(8)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %v", err)
	}

	return buf.Bytes(), nil
}
