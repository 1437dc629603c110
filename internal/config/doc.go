// Package config loads, normalizes, and validates enconv configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI needs: scan filters, conversion policy, backup locations, and log
// output settings.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical encoding labels, and clear validation errors.
package config
