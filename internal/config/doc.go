// Package config loads, normalizes, and validates muffle configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such
// as MUFFLE_RULES_DB. Always obtain settings through this package so
// downstream code receives sanitized paths, canonical enum values, and
// clear validation errors.
package config
