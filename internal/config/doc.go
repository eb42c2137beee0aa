// Package config loads, normalizes, and validates the HomeTunes TOML
// configuration.
//
// Load resolves the config path (explicit flag, ~/.config/hometunes, or a
// project-local hometunes.toml), overlays the file on top of Default(), then
// expands paths and validates the result. The embedded sample_config.toml is
// written by "hometunes config init".
package config
