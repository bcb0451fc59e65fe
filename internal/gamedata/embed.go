// Package gamedata provides the embedded data generation draws on: the
// default dungeon plan, inscriptions and the tile palette.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
