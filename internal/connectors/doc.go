// Package connectors provides document source implementations. Each
// connector knows how to list and fetch documents from a specific
// backing store; currently Google Drive is the only source.
package connectors
