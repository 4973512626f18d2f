// Package common contains shared constants and sentinel errors used across
// the NoteSphere client components.
package common

// AuthHeaderName is the HTTP header carrying the bearer token on outbound
// requests.
const AuthHeaderName = "Authorization"

// BearerPrefix precedes the token value in the Authorization header.
const BearerPrefix = "Bearer "

const (
	// MaxUploadFileSize is the per-file ceiling enforced locally before any
	// multipart body is constructed. Matches the server-side limit.
	MaxUploadFileSize = 50 * 1024 * 1024

	// MaxUploadFiles is the maximum number of attachments per note.
	MaxUploadFiles = 5
)
