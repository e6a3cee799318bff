// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package postgres

import (
	"database/sql"

	"github.com/diffeo/go-bossmgmt/mgmt"
)

func (s *pgStore) Coords() ([]string, error) {
	return s.queryNames("SELECT name FROM coord ORDER BY name COLLATE \"C\"")
}

func (s *pgStore) Coord(name string) (res mgmt.Resource, err error) {
	err = s.withTx(true, func(tx *sql.Tx) error {
		row := tx.QueryRow("SELECT name, created FROM coord WHERE name=$1", name)
		err := row.Scan(&res.Name, &res.Created)
		if err == sql.ErrNoRows {
			return mgmt.ErrNoSuchCoord{Name: name}
		}
		return err
	})
	return
}

func (s *pgStore) CreateCoord(name string) (res mgmt.Resource, err error) {
	if err = mgmt.ValidName(name); err != nil {
		return
	}
	err = s.withTx(false, func(tx *sql.Tx) error {
		row := tx.QueryRow("INSERT INTO coord(name, created) "+
			"VALUES ($1, $2) RETURNING name, created", name, s.clock.Now())
		return row.Scan(&res.Name, &res.Created)
	})
	if isUniqueViolation(err, coordUniqueName) {
		err = mgmt.ErrAlreadyExists{Kind: "coord", Name: name}
	}
	return
}

func (s *pgStore) DeleteCoord(name string) error {
	return s.withTx(false, func(tx *sql.Tx) error {
		result, err := tx.Exec("DELETE FROM coord WHERE name=$1", name)
		if err != nil {
			return err
		}
		count, err := result.RowsAffected()
		if err == nil && count == 0 {
			err = mgmt.ErrNoSuchCoord{Name: name}
		}
		return err
	})
}
