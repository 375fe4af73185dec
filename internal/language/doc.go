// Package language holds the fixed table of translation language codes and
// their display labels.
//
// All code validation, alias resolution (DeepL-style and regional tags), and
// label lookups are consolidated here so the HTTP layer, the CLI, and the
// translation clients agree on which codes are supported.
package language
