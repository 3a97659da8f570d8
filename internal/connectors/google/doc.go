// Package google provides shared infrastructure for the Google Drive
// document source.
//
// This package contains:
//   - Error handling for common Google API errors (401, 403, 404, 429)
//   - Rate limiting to respect Google API quotas
//
// # Authentication
//
// The drive source authenticates with a service account key file. The
// folders being indexed must be shared with the service account's email
// address.
//
// # OAuth2 Scopes
//
// The drive source uses the read-only scope:
//   - https://www.googleapis.com/auth/drive.readonly
package google
