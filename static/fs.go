package static

import "embed"

// FS holds the stylesheet, page script and icon served under /static/.
//
//go:embed *.css *.js *.svg
var FS embed.FS
