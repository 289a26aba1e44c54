// Package migrations embeds the SQL schema files into the binary.
//
// Importing this package registers the files with the database package,
// so Migrate works without the SQL present on disk.
package migrations

import (
	"embed"

	"github.com/dxascend/ascend-core/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "."
}
