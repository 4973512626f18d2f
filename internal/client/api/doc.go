// Package api is the request dispatcher: it owns outbound HTTP construction,
// bearer-token attachment, multipart streaming, and the classification of
// every response into typed success or typed failure. Higher layers never
// touch net/http directly.
package api
