package vimeo

import "testing"

func TestPlayerURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{
			name: "canonical video URL",
			in:   "https://vimeo.com/123456789",
			want: "https://player.vimeo.com/video/123456789",
		},
		{
			name: "video URL with query",
			in:   "https://vimeo.com/123456789?share=copy",
			want: "https://player.vimeo.com/video/123456789",
		},
		{
			name: "embed URL",
			in:   "https://player.vimeo.com/video/987654321",
			want: "https://player.vimeo.com/video/987654321",
		},
		{
			name: "bare video ID",
			in:   "76979871",
			want: "https://player.vimeo.com/video/76979871",
		},
		{
			name:    "no video ID",
			in:      "https://vimeo.com/about",
			wantErr: true,
		},
		{
			name:    "unrelated URL",
			in:      "https://example.com/watch?v=123",
			wantErr: true,
		},
		{
			name:    "empty input",
			in:      "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PlayerURL(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("PlayerURL(%q) = %q, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("PlayerURL(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("PlayerURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
