// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package postgres

import (
	"database/sql"

	migrate "github.com/rubenv/sql-migrate"
)

// This file maintains the database migration code.  See
// https://github.com/rubenv/sql-migrate for details of what goes in
// here.  This runs "outside" the normal store flow, either at initial
// startup or from an external tool.

var migrationSource = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{
		{
			Id: "20180101000000-resources.sql",
			Up: []string{
				`CREATE TABLE collection(
					id SERIAL PRIMARY KEY,
					name TEXT NOT NULL UNIQUE,
					created TIMESTAMP WITH TIME ZONE NOT NULL
				)`,
				`CREATE TABLE experiment(
					id SERIAL PRIMARY KEY,
					collection_id INTEGER NOT NULL
						REFERENCES collection(id),
					name TEXT NOT NULL,
					created TIMESTAMP WITH TIME ZONE NOT NULL,
					UNIQUE(collection_id, name)
				)`,
				`CREATE TABLE channel(
					id SERIAL PRIMARY KEY,
					experiment_id INTEGER NOT NULL
						REFERENCES experiment(id) ON DELETE CASCADE,
					name TEXT NOT NULL,
					created TIMESTAMP WITH TIME ZONE NOT NULL,
					UNIQUE(experiment_id, name)
				)`,
				`CREATE TABLE coord(
					id SERIAL PRIMARY KEY,
					name TEXT NOT NULL UNIQUE,
					created TIMESTAMP WITH TIME ZONE NOT NULL
				)`,
			},
			Down: []string{
				`DROP TABLE coord`,
				`DROP TABLE channel`,
				`DROP TABLE experiment`,
				`DROP TABLE collection`,
			},
		},
		{
			Id: "20180102000000-metadata.sql",
			Up: []string{
				`CREATE TABLE metadata(
					lookup_key TEXT NOT NULL,
					key TEXT NOT NULL,
					value TEXT NOT NULL,
					PRIMARY KEY(lookup_key, key)
				)`,
			},
			Down: []string{
				`DROP TABLE metadata`,
			},
		},
	},
}

// Upgrade upgrades a database to the latest database schema version.
func Upgrade(db *sql.DB) error {
	_, err := migrate.Exec(db, "postgres", migrationSource, migrate.Up)
	return err
}

// Drop clears a database by running all of the migrations in reverse,
// ultimately resulting in dropping all of the tables.
func Drop(db *sql.DB) error {
	_, err := migrate.Exec(db, "postgres", migrationSource, migrate.Down)
	return err
}
