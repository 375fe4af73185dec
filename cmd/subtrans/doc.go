// Command subtrans translates SRT subtitle files.
//
// It runs one-shot translations from the command line (translate, enhance,
// inspect, languages) and hosts the HTTP API with `subtrans serve`.
// Configuration is loaded once per invocation from --config, the user config
// directory, or ./subtrans.toml.
package main
