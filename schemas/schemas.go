// Package schemas embeds the JSON Schema documents for persisted metadata.
package schemas

import "embed"

// FS holds the embedded schema files.
//
//go:embed *.schema.json
var FS embed.FS

// Schema file names within FS.
const (
	UpdateMeta = "update_meta.schema.json"
	NodeMeta   = "node_meta.schema.json"
)
