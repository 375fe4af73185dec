// Package subtitles reads, writes, and reshapes block-structured subtitle
// files.
//
// The codec splits a file into blocks (index, timestamp range, text) and
// reassembles them; index and timestamp lines are carried verbatim and never
// interpreted. Reflow redistributes translated text across the line count of
// the source block. Inspect offers a read-only diagnostic view backed by
// go-astisub for operators checking what a file contains.
package subtitles
