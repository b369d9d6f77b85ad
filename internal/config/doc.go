// Package config loads, normalizes, and validates ds1054z configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the DS1054Z_ADDR environment
// fallback for the device address. The Config type centralizes every knob the
// CLI needs: the target device, discovery behaviour, screenshot rendering,
// and log output.
//
// Always obtain settings through this package so downstream code receives
// sanitized values, canonical log formats, and clear validation errors.
package config
