// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package postgres

import (
	"database/sql"

	"github.com/diffeo/go-bossmgmt/mgmt"
)

// refExists checks that the object ref names is present.
func refExists(tx *sql.Tx, ref mgmt.ResourceRef) error {
	var err error
	switch {
	case ref.Experiment == "":
		_, err = collectionID(tx, ref.Collection)
	case ref.Channel == "":
		_, err = experimentID(tx, ref.Collection, ref.Experiment)
	default:
		err = channelExists(tx, ref)
	}
	return err
}

// withMeta runs f in a transaction after checking that ref exists.
func (s *pgStore) withMeta(readOnly bool, ref mgmt.ResourceRef, f func(*sql.Tx) error) error {
	return s.withTx(readOnly, func(tx *sql.Tx) error {
		if err := refExists(tx, ref); err != nil {
			return err
		}
		return f(tx)
	})
}

// requireRow maps an UPDATE or DELETE that touched nothing to
// ErrNoSuchKey.
func requireRow(result sql.Result, key string) error {
	count, err := result.RowsAffected()
	if err == nil && count == 0 {
		err = mgmt.ErrNoSuchKey{Key: key}
	}
	return err
}

func (s *pgStore) MetaKeys(ref mgmt.ResourceRef) (keys []string, err error) {
	err = s.withMeta(true, ref, func(tx *sql.Tx) error {
		rows, err := tx.Query("SELECT key FROM metadata "+
			"WHERE lookup_key=$1 ORDER BY key COLLATE \"C\"", ref.LookupKey())
		if err != nil {
			return err
		}
		keys = []string{}
		return scanRows(rows, func() error {
			var key string
			err := rows.Scan(&key)
			if err == nil {
				keys = append(keys, key)
			}
			return err
		})
	})
	if err != nil {
		keys = nil
	}
	return
}

func (s *pgStore) Meta(ref mgmt.ResourceRef, key string) (value string, err error) {
	err = s.withMeta(true, ref, func(tx *sql.Tx) error {
		row := tx.QueryRow("SELECT value FROM metadata "+
			"WHERE lookup_key=$1 AND key=$2", ref.LookupKey(), key)
		err := row.Scan(&value)
		if err == sql.ErrNoRows {
			err = mgmt.ErrNoSuchKey{Key: key}
		}
		return err
	})
	return
}

func (s *pgStore) CreateMeta(ref mgmt.ResourceRef, key, value string) error {
	err := s.withMeta(false, ref, func(tx *sql.Tx) error {
		_, err := tx.Exec("INSERT INTO metadata(lookup_key, key, value) "+
			"VALUES ($1, $2, $3)", ref.LookupKey(), key, value)
		return err
	})
	if isUniqueViolation(err, metadataPrimaryKey) {
		err = mgmt.ErrAlreadyExists{Kind: "key", Name: key}
	}
	return err
}

func (s *pgStore) UpdateMeta(ref mgmt.ResourceRef, key, value string) error {
	return s.withMeta(false, ref, func(tx *sql.Tx) error {
		result, err := tx.Exec("UPDATE metadata SET value=$3 "+
			"WHERE lookup_key=$1 AND key=$2", ref.LookupKey(), key, value)
		if err != nil {
			return err
		}
		return requireRow(result, key)
	})
}

func (s *pgStore) DeleteMeta(ref mgmt.ResourceRef, key string) error {
	return s.withMeta(false, ref, func(tx *sql.Tx) error {
		result, err := tx.Exec("DELETE FROM metadata "+
			"WHERE lookup_key=$1 AND key=$2", ref.LookupKey(), key)
		if err != nil {
			return err
		}
		return requireRow(result, key)
	})
}
