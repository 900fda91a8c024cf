// Package auth implements the installed-app OAuth flow for the Google
// Calendar API and the on-disk token cache surrounding it.
//
// The credential chain runs cache, refresh, interactive flow, in that order:
// a valid cached token is reused without touching the file, an expired token
// with a refresh token is refreshed silently, and only a missing or
// never-completed cache triggers the browser flow. A refresh failure is
// deliberately fatal rather than a fallback into the flow, so a revoked
// grant surfaces as an error instead of an unexpected browser window during
// a scheduled run.
//
// Security note: the token cache file contains bearer credentials. It is
// written with 0600 permissions via an atomic rename, and its contents must
// never appear in logs or program output; use logging.SanitizeToken when a
// log line needs to reference a token at all. The interactive flow carries a
// PKCE S256 challenge and a random state parameter on the authorization
// request.
package auth
