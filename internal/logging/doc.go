// Package logging builds the slog loggers used across HomeTunes.
//
// Two output formats are supported: a single-line console format for
// interactive use and JSON for ingestion. Component loggers carry a
// standardized "component" attribute which the console handler promotes into
// the message prefix; request handlers add a correlation id via WithContext.
package logging
