// Package views embeds the HTML templates of the blog.
package views

import "embed"

// FS holds layout.html plus one file per page.
//
//go:embed *.html
var FS embed.FS
