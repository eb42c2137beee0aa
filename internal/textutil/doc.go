// Package textutil provides text processing utilities for track titles and
// filenames.
//
// CleanTitle removes the decorative suffixes video platforms append to music
// uploads ("(Official Video)" and friends) so the stored track title reads
// like a song name. SanitizeFileName makes arbitrary titles safe as path
// segments.
package textutil
