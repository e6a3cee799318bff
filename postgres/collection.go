// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package postgres

import (
	"database/sql"

	"github.com/diffeo/go-bossmgmt/mgmt"
)

// collectionID finds the database ID of a named collection.
func collectionID(tx *sql.Tx, name string) (id int, err error) {
	row := tx.QueryRow("SELECT id FROM collection WHERE name=$1", name)
	err = row.Scan(&id)
	if err == sql.ErrNoRows {
		err = mgmt.ErrNoSuchCollection{Name: name}
	}
	return
}

// experimentID finds the database ID of a named experiment.
func experimentID(tx *sql.Tx, coll, name string) (id int, err error) {
	row := tx.QueryRow("SELECT experiment.id FROM collection, experiment "+
		"WHERE experiment.collection_id=collection.id "+
		"AND collection.name=$1 AND experiment.name=$2", coll, name)
	err = row.Scan(&id)
	if err == sql.ErrNoRows {
		// Distinguish a missing collection from a missing
		// experiment
		_, err = collectionID(tx, coll)
		if err == nil {
			err = mgmt.ErrNoSuchExperiment{Collection: coll, Name: name}
		}
	}
	return
}

// deleteMeta removes the metadata attached to the object with lookup
// key, and to everything beneath it.
func deleteMeta(tx *sql.Tx, lookupKey string) error {
	_, err := tx.Exec("DELETE FROM metadata WHERE lookup_key=$1 OR "+
		hasLookupKeyPrefix, lookupKey)
	return err
}

func (s *pgStore) Collections() ([]string, error) {
	return s.queryNames("SELECT name FROM collection ORDER BY name COLLATE \"C\"")
}

func (s *pgStore) Collection(name string) (res mgmt.Resource, err error) {
	err = s.withTx(true, func(tx *sql.Tx) error {
		row := tx.QueryRow("SELECT name, created FROM collection WHERE name=$1", name)
		err := row.Scan(&res.Name, &res.Created)
		if err == sql.ErrNoRows {
			return mgmt.ErrNoSuchCollection{Name: name}
		}
		return err
	})
	return
}

func (s *pgStore) CreateCollection(name string) (res mgmt.Resource, err error) {
	if err = mgmt.ValidName(name); err != nil {
		return
	}
	err = s.withTx(false, func(tx *sql.Tx) error {
		row := tx.QueryRow("INSERT INTO collection(name, created) "+
			"VALUES ($1, $2) RETURNING name, created", name, s.clock.Now())
		return row.Scan(&res.Name, &res.Created)
	})
	if isUniqueViolation(err, collectionUniqueName) {
		err = mgmt.ErrAlreadyExists{Kind: "collection", Name: name}
	}
	return
}

func (s *pgStore) DeleteCollection(name string) error {
	return s.withTx(false, func(tx *sql.Tx) error {
		id, err := collectionID(tx, name)
		if err != nil {
			return err
		}
		var count int
		row := tx.QueryRow("SELECT COUNT(*) FROM experiment WHERE collection_id=$1", id)
		if err = row.Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			return mgmt.ErrNotEmpty{Name: name}
		}
		_, err = tx.Exec("DELETE FROM collection WHERE id=$1", id)
		if err != nil {
			return err
		}
		return deleteMeta(tx, mgmt.ResourceRef{Collection: name}.LookupKey())
	})
}

func (s *pgStore) Experiments(coll string) (names []string, err error) {
	err = s.withTx(true, func(tx *sql.Tx) error {
		id, err := collectionID(tx, coll)
		if err != nil {
			return err
		}
		rows, err := tx.Query("SELECT name FROM experiment "+
			"WHERE collection_id=$1 ORDER BY name COLLATE \"C\"", id)
		if err != nil {
			return err
		}
		names = []string{}
		return scanRows(rows, func() error {
			var name string
			err := rows.Scan(&name)
			if err == nil {
				names = append(names, name)
			}
			return err
		})
	})
	if err != nil {
		names = nil
	}
	return
}

func (s *pgStore) Experiment(coll, name string) (res mgmt.Resource, err error) {
	err = s.withTx(true, func(tx *sql.Tx) error {
		id, err := experimentID(tx, coll, name)
		if err != nil {
			return err
		}
		row := tx.QueryRow("SELECT name, created FROM experiment WHERE id=$1", id)
		return row.Scan(&res.Name, &res.Created)
	})
	return
}

func (s *pgStore) CreateExperiment(coll, name string) (res mgmt.Resource, err error) {
	err = s.withTx(false, func(tx *sql.Tx) error {
		id, err := collectionID(tx, coll)
		if err != nil {
			return err
		}
		if err = mgmt.ValidName(name); err != nil {
			return err
		}
		row := tx.QueryRow("INSERT INTO experiment(collection_id, name, created) "+
			"VALUES ($1, $2, $3) RETURNING name, created", id, name, s.clock.Now())
		return row.Scan(&res.Name, &res.Created)
	})
	if isUniqueViolation(err, experimentUniqueName) {
		err = mgmt.ErrAlreadyExists{Kind: "experiment", Name: name}
	}
	return
}

func (s *pgStore) DeleteExperiment(coll, name string) error {
	return s.withTx(false, func(tx *sql.Tx) error {
		id, err := experimentID(tx, coll, name)
		if err != nil {
			return err
		}
		// Channels go with the experiment via ON DELETE CASCADE
		_, err = tx.Exec("DELETE FROM experiment WHERE id=$1", id)
		if err != nil {
			return err
		}
		ref := mgmt.ResourceRef{Collection: coll, Experiment: name}
		return deleteMeta(tx, ref.LookupKey())
	})
}

func (s *pgStore) Channels(coll, exp string) (names []string, err error) {
	err = s.withTx(true, func(tx *sql.Tx) error {
		id, err := experimentID(tx, coll, exp)
		if err != nil {
			return err
		}
		rows, err := tx.Query("SELECT name FROM channel "+
			"WHERE experiment_id=$1 ORDER BY name COLLATE \"C\"", id)
		if err != nil {
			return err
		}
		names = []string{}
		return scanRows(rows, func() error {
			var name string
			err := rows.Scan(&name)
			if err == nil {
				names = append(names, name)
			}
			return err
		})
	})
	if err != nil {
		names = nil
	}
	return
}

func (s *pgStore) CreateChannel(coll, exp, name string) (res mgmt.Resource, err error) {
	err = s.withTx(false, func(tx *sql.Tx) error {
		id, err := experimentID(tx, coll, exp)
		if err != nil {
			return err
		}
		if err = mgmt.ValidName(name); err != nil {
			return err
		}
		row := tx.QueryRow("INSERT INTO channel(experiment_id, name, created) "+
			"VALUES ($1, $2, $3) RETURNING name, created", id, name, s.clock.Now())
		return row.Scan(&res.Name, &res.Created)
	})
	if isUniqueViolation(err, channelUniqueName) {
		err = mgmt.ErrAlreadyExists{Kind: "channel", Name: name}
	}
	return
}

// channelExists checks that a channel is present, returning the
// matching mgmt error if it or its parents are not.
func channelExists(tx *sql.Tx, ref mgmt.ResourceRef) error {
	id, err := experimentID(tx, ref.Collection, ref.Experiment)
	if err != nil {
		return err
	}
	var one int
	row := tx.QueryRow("SELECT 1 FROM channel WHERE experiment_id=$1 AND name=$2",
		id, ref.Channel)
	err = row.Scan(&one)
	if err == sql.ErrNoRows {
		err = mgmt.ErrNoSuchChannel{
			Collection: ref.Collection,
			Experiment: ref.Experiment,
			Name:       ref.Channel,
		}
	}
	return err
}
