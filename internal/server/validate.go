package server

import "regexp"

// sourceURLPatterns mirrors the URL shapes the download endpoint accepts:
// standard watch pages, short links, shorts, and YouTube Music.
var sourceURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(https?://)?(www\.)?youtube\.com/watch\?v=[\w-]+`),
	regexp.MustCompile(`^(https?://)?(www\.)?youtu\.be/[\w-]+`),
	regexp.MustCompile(`^(https?://)?(www\.)?youtube\.com/shorts/[\w-]+`),
	regexp.MustCompile(`^(https?://)?music\.youtube\.com/watch\?v=[\w-]+`),
}

// ValidSourceURL reports whether url matches a known source URL shape.
func ValidSourceURL(url string) bool {
	for _, pattern := range sourceURLPatterns {
		if pattern.MatchString(url) {
			return true
		}
	}
	return false
}
