package migrate

import "embed"

// Embedded holds the schema shipped with the binary.
//
//go:embed sql/*.sql
var Embedded embed.FS

// EmbeddedDir is the directory of Embedded holding the migrations.
const EmbeddedDir = "sql"
