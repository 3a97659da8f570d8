// Package file provides TOML-based configuration loading.
//
// Configuration lives in a single config.toml. Every field has a
// working default, so a missing file yields a usable local setup
// (Ollama for models, Qdrant on localhost).
package file
