package export

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderText(t *testing.T) {
	const text = "hello world. this is, a test"

	got, err := Render(FormatText, text)
	if err != nil {
		t.Fatalf("Render(txt) error = %v", err)
	}
	if string(got) != text {
		t.Errorf("Render(txt) = %q, want %q", got, text)
	}
}

func TestRenderDOCX(t *testing.T) {
	got, err := Render(FormatDOCX, "hello world")
	if err != nil {
		t.Fatalf("Render(docx) error = %v", err)
	}
	// DOCX files are zip archives
	if !bytes.HasPrefix(got, []byte("PK")) {
		t.Errorf("Render(docx) payload does not start with zip magic, got % x", got[:4])
	}
}

func TestRenderPDF(t *testing.T) {
	got, err := Render(FormatPDF, "first line\nsecond line\n\nthird line")
	if err != nil {
		t.Fatalf("Render(pdf) error = %v", err)
	}
	if !bytes.HasPrefix(got, []byte("%PDF-")) {
		t.Errorf("Render(pdf) payload does not start with PDF magic, got % x", got[:8])
	}
}

func TestRenderPDFEmptyText(t *testing.T) {
	got, err := Render(FormatPDF, "")
	if err != nil {
		t.Fatalf("Render(pdf) error = %v", err)
	}
	if !bytes.HasPrefix(got, []byte("%PDF-")) {
		t.Errorf("Render(pdf) payload does not start with PDF magic, got % x", got[:8])
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	if _, err := Render("csv", "hello"); err == nil {
		t.Fatal("Render() accepted an unknown format, want error")
	}
}

func TestFormats(t *testing.T) {
	got := Formats()
	want := []string{"txt", "docx", "pdf"}

	if len(got) != len(want) {
		t.Fatalf("Formats() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Formats()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMIMEType(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"txt", "text/plain; charset=utf-8"},
		{"docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{"pdf", "application/pdf"},
		{"csv", "application/octet-stream"},
	}

	for _, tt := range tests {
		if got := MIMEType(tt.format); got != tt.want {
			t.Errorf("MIMEType(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   string
	}{
		{"My Video", "txt", "My Video.txt"},
		{"a/b:c", "pdf", "a_b_c.pdf"},
		{"", "docx", "subtitles.docx"},
		{"   ", "txt", "subtitles.txt"},
		{`weird"<>|name`, "txt", "weird____name.txt"},
	}

	for _, tt := range tests {
		if got := Filename(tt.name, tt.format); got != tt.want {
			t.Errorf("Filename(%q, %q) = %q, want %q", tt.name, tt.format, got, tt.want)
		}
	}
}

func TestFilenameCapsLength(t *testing.T) {
	long := strings.Repeat("x", 150)

	got := Filename(long, "txt")
	want := strings.Repeat("x", 100) + ".txt"
	if got != want {
		t.Errorf("Filename() = %d chars, want %d", len(got), len(want))
	}
}
