// Package enhance rewrites subtitle text before translation.
//
// The pass has three stages: text normalization, context analysis with a
// small intent classifier that adds disambiguation hints to ambiguous words
// (great[big:85%]), and marking of fixed colloquial expressions
// (no way[disbelief]). It is best effort: Enhance never returns an error and
// falls back to the untouched blocks when anything inside it fails.
//
// Nop satisfies the same contract and is used when enhancement is disabled.
package enhance
