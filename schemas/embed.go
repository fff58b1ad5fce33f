// Package schemas holds the JSON Schemas for the files the CLI reads and writes.
package schemas

import "embed"

// FS contains every *.schema.json in this directory.
//
//go:embed *.schema.json
var FS embed.FS
