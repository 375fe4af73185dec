// Package daemon runs the long-lived subtrans HTTP server.
//
// It wires configuration, the translation runner, and the shared intent
// classifier into a single lifecycle with flock-based locking to prevent
// multiple instances on one state directory. The API server exposes subtitle
// upload translation, single-text translation, the language table, and a
// status endpoint, with optional bearer-token authentication.
//
// Keep request orchestration here: translation and enhancement live in the
// workflow and enhance packages while the daemon focuses on startup,
// shutdown, and the HTTP surface.
package daemon
