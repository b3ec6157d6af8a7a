// Package web holds the embedded single-page client served by the API
// server for non-API paths.
package web

import "embed"

//go:embed index.html app.js style.css
var FS embed.FS
