package storage

import (
	"fmt"
	"strings"
)

// schemaDDL creates the students, projects and grades tables.
// {{serial}} is replaced with the driver's auto-increment primary key type.
const schemaDDL = `
	CREATE TABLE IF NOT EXISTS students (
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		github TEXT PRIMARY KEY
	);

	CREATE TABLE IF NOT EXISTS projects (
		id {{serial}},
		title TEXT NOT NULL UNIQUE,
		description TEXT,
		max_grade INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS grades (
		id {{serial}},
		student_github TEXT NOT NULL REFERENCES students (github),
		project_title TEXT NOT NULL REFERENCES projects (title),
		grade INTEGER NOT NULL,
		UNIQUE (student_github, project_title)
	);
`

// serialTypes maps a driver to its auto-increment primary key column type.
var serialTypes = map[string]string{
	DriverSQLite:   "INTEGER PRIMARY KEY AUTOINCREMENT",
	DriverPostgres: "SERIAL PRIMARY KEY",
}

// SchemaDDL returns the schema statements for a driver.
func SchemaDDL(driver string) (string, error) {
	serial, ok := serialTypes[driver]
	if !ok {
		return "", fmt.Errorf("unsupported driver: %s", driver)
	}
	return strings.ReplaceAll(schemaDDL, "{{serial}}", serial), nil
}

// EnsureSchema creates the tables if they don't exist.
func (d *DB) EnsureSchema() error {
	ddl, err := SchemaDDL(d.driver)
	if err != nil {
		return err
	}

	for _, stmt := range strings.Split(ddl, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := d.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", classify(err))
		}
	}
	return nil
}
