package migrations

import "embed"

// FS содержит встроенные SQL-миграции схемы.
//
//go:embed sql/*.sql
var FS embed.FS

// Path — каталог с миграциями внутри FS.
const Path = "sql"
