package export

import (
	"bytes"
	"fmt"

	"github.com/fumiama/go-docx"
)

// renderDOCX builds a Word document holding the transcript as one paragraph
func renderDOCX(text string) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()
	doc.AddParagraph().AddText(text)

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to render DOCX: %v", err)
	}

	return buf.Bytes(), nil
}
