// Package locales embeds the translation tables so the server and the
// browser client ship the same strings.
package locales

import "embed"

//go:embed *.toml
var FS embed.FS
