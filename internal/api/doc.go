// Package api defines wire-format types for the HTTP API and the CLI's JSON
// output.
//
// DTOs use camelCase JSON tags. Converters translate workflow and service
// types into these payloads so handlers and commands render the same shapes
// without coupling clients to internal types. Durations are reported in
// milliseconds and timestamps use RFC3339 with milliseconds.
package api
