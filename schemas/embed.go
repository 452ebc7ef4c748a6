// Package schemas embeds the JSON Schemas for resume documents.
package schemas

import "embed"

// Schema file names
const (
	Resume         = "resume.schema.json"
	TailoredResume = "tailored_resume.schema.json"
)

// FS holds every *.schema.json file in this directory
//
//go:embed *.schema.json
var FS embed.FS
