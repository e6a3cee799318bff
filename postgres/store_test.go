// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package postgres_test

import (
	"database/sql"
	"os"
	"testing"

	"github.com/diffeo/go-bossmgmt/mgmt/mgmttest"
	"github.com/diffeo/go-bossmgmt/postgres"
	"github.com/stretchr/testify/suite"
)

// Suite runs the generic store tests against a PostgreSQL database
// that is wiped before every test.
//
// This uses an empty connection string, so when you run "go test" you
// must set environment variables as described in
// http://www.postgresql.org/docs/current/static/libpq-envars.html.
// The tests are skipped if PGHOST is not set.
type Suite struct {
	mgmttest.Suite
	db *sql.DB
}

// SetupSuite opens the database.
func (s *Suite) SetupSuite() {
	s.Suite.SetupSuite()
	db, err := postgres.Open("")
	s.Require().NoError(err)
	s.db = db
}

// TearDownSuite closes the database.
func (s *Suite) TearDownSuite() {
	s.NoError(s.db.Close())
}

// SetupTest resets the schema and creates the store under test.
func (s *Suite) SetupTest() {
	s.Require().NoError(postgres.Drop(s.db))
	store, err := postgres.NewWithClock("", s.Clock)
	s.Require().NoError(err)
	s.Store = store
}

// TestStore runs the generic store tests.
func TestStore(t *testing.T) {
	if os.Getenv("PGHOST") == "" {
		t.Skip("PGHOST not set")
	}
	suite.Run(t, &Suite{})
}
