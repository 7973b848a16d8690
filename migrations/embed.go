// Package migrations содержит SQL схему, встраиваемую в бинарник
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
