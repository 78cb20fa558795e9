package export

import "strings"

// invalidFilenameChars replaces characters that are unsafe in download filenames
var invalidFilenameChars = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
)

// Filename builds the download filename for an export. The transcript name is
// sanitized for filesystem use; an empty name falls back to "subtitles".
func Filename(name, format string) string {
	name = strings.TrimSpace(invalidFilenameChars.Replace(name))
	if name == "" {
		name = "subtitles"
	}
	if len(name) > 100 {
		name = name[:100] // Limit length
	}
	return name + "." + format
}
