// Package config loads, normalizes, and validates svgvault's TOML
// configuration.
//
// Configuration resolves from an explicit --config path, then
// ~/.config/svgvault/config.toml, then ./svgvault.toml. All path fields are
// tilde-expanded and absolutized during load so downstream code never deals
// with relative or home-anchored paths. A commented sample config ships
// embedded for 'svgvault config init'.
package config
