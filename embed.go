package docsite

import "embed"

// EmbeddedAssets contains static assets shipped with the framework:
// docs.css and search.js
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
