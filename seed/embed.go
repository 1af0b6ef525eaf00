// Package seed embeds the built-in club directory used when no external data
// source is configured.
package seed

import "embed"

// FS holds clubs.yaml.
//
//go:embed clubs.yaml
var FS embed.FS

// File is the name of the directory file inside FS.
const File = "clubs.yaml"
