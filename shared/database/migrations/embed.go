package migrations

import "embed"

// FS содержит SQL миграции схемы игровых сессий.
//
//go:embed *.sql
var FS embed.FS
