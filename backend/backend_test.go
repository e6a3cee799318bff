// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package backend

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetMemory(t *testing.T) {
	var b Backend
	if assert.NoError(t, b.Set("memory")) {
		assert.Equal(t, "memory", b.Implementation)
		assert.Equal(t, "", b.Address)
		assert.Equal(t, "memory", b.String())
	}
}

func TestSetPostgresAddress(t *testing.T) {
	b := Backend{Implementation: "memory", Address: "junk"}
	addr := "//postgres:secret@localhost:5432/mgmt"
	if assert.NoError(t, b.Set("postgres:"+addr)) {
		assert.Equal(t, "postgres", b.Implementation)
		assert.Equal(t, addr, b.Address)
		assert.Equal(t, "postgres:"+addr, b.String())
	}
}

func TestSetClearsAddress(t *testing.T) {
	b := Backend{Implementation: "postgres", Address: "host=db"}
	require.NoError(t, b.Set("memory"))
	assert.Equal(t, "", b.Address)
}

func TestSetBad(t *testing.T) {
	b := Backend{Implementation: "memory"}
	assert.Error(t, b.Set(""))
	assert.Error(t, b.Set("cassandra:localhost"))
	assert.Equal(t, "memory", b.Implementation)
}

func TestFlag(t *testing.T) {
	b := Backend{Implementation: "memory"}
	flags := flag.NewFlagSet("test", flag.ContinueOnError)
	flags.Var(&b, "backend", "impl:address of resource storage")
	require.NoError(t, flags.Parse([]string{"-backend", "postgres:host=db"}))
	assert.Equal(t, "postgres", b.Implementation)
	assert.Equal(t, "host=db", b.Address)
}

func TestMemoryStore(t *testing.T) {
	b := Backend{Implementation: "memory"}
	store, err := b.Store()
	require.NoError(t, err)
	_, err = store.CreateCollection("col")
	require.NoError(t, err)

	// A second call makes an independent store
	other, err := b.Store()
	require.NoError(t, err)
	names, err := other.Collections()
	if assert.NoError(t, err) {
		assert.Empty(t, names)
	}
}

func TestUnknownStore(t *testing.T) {
	b := Backend{Implementation: "cassandra"}
	_, err := b.Store()
	assert.Error(t, err)
}
