package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// decorativePatterns lists the decorative suffixes video platforms append to
// track titles. Patterns are literal, non-overlapping substrings, so removal
// order does not change the result.
var decorativePatterns = []string{
	"(Official Video)",
	"(Official Music Video)",
	"(Official Audio)",
	"(Lyric Video)",
	"(Lyrics)",
	"[Official Video]",
	"[Official Music Video]",
	"[Official Audio]",
	"| Official Video",
	"| Official Music Video",
}

// CleanTitle strips decorative patterns from an extracted video title,
// NFC-normalizes it, and trims surrounding whitespace. Idempotent.
func CleanTitle(title string) string {
	cleaned := norm.NFC.String(title)
	for _, pattern := range decorativePatterns {
		cleaned = strings.ReplaceAll(cleaned, pattern, "")
	}
	return strings.TrimSpace(cleaned)
}

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
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed. The result is trimmed of leading/trailing
// whitespace.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}
