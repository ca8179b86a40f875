// Package schemas holds the JSON Schemas for hiring-radar input and report files.
package schemas

import "embed"

// Schema file names.
const (
	Listings  = "listings.schema.json"
	Companies = "companies.schema.json"
	Report    = "report.schema.json"
)

// FS contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
