// Package workflow runs subtitle documents through the translation pipeline.
//
// A Runner takes the parsed blocks of one document, passes them through the
// enhancement stage as a batch, then translates and reflows each block in
// order. Per-block failures become inline error markers so the output always
// has exactly one block per input block. Collaborators are supplied as small
// interfaces; NewTranslator and NewEnhancer build them from configuration.
package workflow
