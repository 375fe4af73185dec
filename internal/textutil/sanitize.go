package textutil

import (
	"path/filepath"
	"strings"
)

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
	"\r", "",
	"\n", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, colons, and asterisks become dashes; quotes, control
// line breaks and other unsafe characters are removed. The result is trimmed of
// leading/trailing whitespace.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}

// TranslatedFileName derives the download name for a translated upload:
// "translated_" followed by the sanitized base name of the original.
// Uploads without a usable name fall back to "subtitles.srt".
func TranslatedFileName(original string) string {
	base := strings.TrimSpace(original)
	if base != "" {
		base = filepath.Base(strings.ReplaceAll(base, "\\", "/"))
	}
	base = SanitizeFileName(base)
	if base == "" || base == "." || base == "-" {
		base = "subtitles.srt"
	}
	return "translated_" + base
}
