package stagepage

import "embed"

// EmbeddedAssets contains the page script and stylesheet served under
// /public/: site.js, site.css
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
