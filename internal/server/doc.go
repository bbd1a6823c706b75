// Package server is the archivist preview server.
//
// It serves the loaded site configuration and locale catalog as JSON and
// lets a visitor read and change their language and theme preferences.
// Every request gets its own host environment: preferences live in cookies
// (or in Redis under a per-visitor key), the system locale comes from
// Accept-Language, the dark mode signal from Sec-CH-Prefers-Color-Scheme,
// and document hooks are recorded and echoed back in the response.
//
// Routes:
//
//	GET  /api/site
//	GET  /api/repositories/{repo}
//	GET  /api/repositories/{repo}/archives/{archive}
//	GET  /api/locales
//	GET  /api/locales/{tag}
//	GET  /api/preferences
//	PUT  /api/preferences/language
//	PUT  /api/preferences/theme
//	POST /api/preferences/theme/toggle
//	GET  /health/live
//	GET  /health/ready
package server
