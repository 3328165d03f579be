// Package config loads and validates the TOML configuration shared by every
// inkwell command.
//
// Load resolves the config file (explicit flag, ~/.config/inkwell/config.toml,
// or a project-local inkwell.toml), decodes it over the compiled-in defaults,
// expands all path fields, and validates the result. A missing file is not an
// error; defaults apply.
package config
