// Package services defines shared utilities consumed by the translation
// workflow, the HTTP daemon, and the external translation integrations.
//
// Key responsibilities:
//   - Context helpers that stamp correlation identifiers, stage names, and
//     block positions for logging.
//   - Structured error markers plus the Wrap helper that classify failures as
//     validation, input, or upstream problems so the HTTP layer can map them to
//     status codes consistently.
//
// Use these helpers when wiring new request handling so operational behaviour
// (error reporting, observability) stays uniform across the service.
package services
