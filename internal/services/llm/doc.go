// Package llm provides an OpenAI-compatible chat completion client used as an
// alternative translation provider.
//
// # Translation
//
// Translate sends one subtitle block with a fixed system prompt asking for a
// JSON object {"source_language", "text"}. Responses wrapped in code fences or
// returned through tool-call arguments are tolerated.
//
// # Configuration
//
// Requires api_key and model; base_url, referer, title, and timeout are
// optional. The referer and title headers follow OpenRouter conventions.
//
// # Failure Behaviour
//
// Every call is a single attempt. HTTP errors, empty completions, and
// undecodable payloads are returned to the caller, which records them against
// the block being translated.
package llm
