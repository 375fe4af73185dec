// Package textutil provides text processing utilities for fingerprinting,
// similarity, and filename sanitization.
//
// The primary use cases are:
//   - Creating token-based fingerprints from subtitle text for the intent
//     classifier
//   - Computing cosine similarity between fingerprints, optionally TF-IDF
//     weighted against a training corpus
//   - Sanitizing download filenames derived from user uploads
//
// The tokenization process lowercases text, splits on non-alphanumeric
// characters, and filters single-character tokens so short conversational
// words ("up", "on", "it") still carry signal.
package textutil
