package tools

import (
	"embed"
)

// ConfigFiles embeds the pattern query catalogue from the config subdirectory
//
//go:embed all:config
var ConfigFiles embed.FS
