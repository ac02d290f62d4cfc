package sqliteutil

import (
	"database/sql"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// remote libsql urls get the libsql driver, everything else (file
// paths, `:memory:`) gets the embedded sqlite driver.
func driverFor(path string) string {
	for _, prefix := range []string{"libsql://", "http://", "https://", "ws://", "wss://"} {
		if strings.HasPrefix(path, prefix) {
			return "libsql"
		}
	}
	return "sqlite"
}

// OpenDB opens the database at path and applies the given schema.
func OpenDB(schema, path string) (*sql.DB, error) {
	database, err := sql.Open(driverFor(path), path)
	if err != nil {
		return nil, err
	}
	_, err = database.Exec(schema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		database.Close()
		return nil, err
	}
	return database, nil
}
