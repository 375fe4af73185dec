// Package config loads, normalizes, and validates subtrans configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SUBTRANS_API_TOKEN and LLM_API_KEY. A .env file in the working directory is
// read first so those fallbacks can live next to the project without being
// exported by the shell.
//
// Always obtain settings through this package so downstream code receives
// canonical language codes, expanded paths, and clear validation errors.
package config
