// Package schemas holds the JSON Schema documents describing the site's data files.
package schemas

import _ "embed"

// ProfileSchemaFile is the file name of the profile record schema.
const ProfileSchemaFile = "profile.schema.json"

// Profile is the JSON Schema for data/<slug>.json profile records.
//
//go:embed profile.schema.json
var Profile string
