// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package postgres

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pq.Error{Code: "23505", Constraint: coordUniqueName}
	assert.True(t, isUniqueViolation(dup, coordUniqueName))
	assert.False(t, isUniqueViolation(dup, collectionUniqueName))

	serial := &pq.Error{Code: "40001", Constraint: coordUniqueName}
	assert.False(t, isUniqueViolation(serial, coordUniqueName))

	assert.False(t, isUniqueViolation(errors.New("23505"), coordUniqueName))
	assert.False(t, isUniqueViolation(nil, coordUniqueName))
}
