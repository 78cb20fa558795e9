package export

import "fmt"

// Supported export formats
const (
	FormatText = "txt"
	FormatDOCX = "docx"
	FormatPDF  = "pdf"
)

// Formats returns the supported export formats in presentation order
func Formats() []string {
	return []string{FormatText, FormatDOCX, FormatPDF}
}

// MIMEType returns the content type served for a format
func MIMEType(format string) string {
	switch format {
	case FormatText:
		return "text/plain; charset=utf-8"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// Render produces the download payload for a transcript in the given format.
// Text exports are the transcript bytes as-is.
func Render(format, text string) ([]byte, error) {
	switch format {
	case FormatText:
		return []byte(text), nil
	case FormatDOCX:
		return renderDOCX(text)
	case FormatPDF:
		return renderPDF(text)
	default:
		return nil, fmt.Errorf("unknown export format: %s", format)
	}
}
