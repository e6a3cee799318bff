// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mgmt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/diffeo/go-bossmgmt/mgmt"
)

func TestParsePageContext(t *testing.T) {
	p, err := mgmt.ParsePageContext("http://localhost:8080/mgmt/resources/col1?tab=meta")
	if assert.NoError(t, err) {
		assert.Equal(t, "http", p.Scheme)
		assert.Equal(t, "localhost:8080", p.Host)
		assert.Equal(t, "/mgmt/resources/col1", p.Path)
		assert.Equal(t, "http://localhost:8080/mgmt/resources/col1", p.URL())
	}

	_, err = mgmt.ParsePageContext("/mgmt/resources")
	assert.Error(t, err)
}

func TestPageLastSegment(t *testing.T) {
	assert.Equal(t, "col1", page("/mgmt/resources/col1").LastSegment())
	assert.Equal(t, "", page("/mgmt/resources/").LastSegment())
	assert.Equal(t, "", page("").LastSegment())
}

func TestPageResourcePath(t *testing.T) {
	rest, ok := page("/mgmt/resources/col1/exp1").ResourcePath()
	assert.True(t, ok)
	assert.Equal(t, "/col1/exp1", rest)

	rest, ok = page("/mgmt/resources").ResourcePath()
	assert.True(t, ok)
	assert.Equal(t, "", rest)

	_, ok = page("/mgmt/coords").ResourcePath()
	assert.False(t, ok)
}

func TestPageResourceNames(t *testing.T) {
	assert.Equal(t, []string{"c", "e", "ch"},
		page("/mgmt/resources/c/e/ch/extra").ResourceNames())
	assert.Equal(t, []string{"c"}, page("/mgmt/resources/c/").ResourceNames())
	assert.Nil(t, page("/mgmt/resources").ResourceNames())
	assert.Nil(t, page("/other/c").ResourceNames())
}

func TestPageMetaNames(t *testing.T) {
	assert.Equal(t, []string{"c", "e"}, page("/mgmt/resources/c/e/").MetaNames())
	assert.Equal(t, []string{"col"}, page("/elsewhere/col").MetaNames())
	assert.Equal(t, []string{"resources"}, page("/mgmt/resources").MetaNames())
}

func TestPageResourceRef(t *testing.T) {
	ref, ok := page("/mgmt/resources/c/e").ResourceRef()
	assert.True(t, ok)
	assert.Equal(t, mgmt.ResourceRef{Collection: "c", Experiment: "e"}, ref)
	assert.Equal(t, "c&e", ref.LookupKey())

	_, ok = page("/mgmt/resources").ResourceRef()
	assert.False(t, ok)
}

func TestPageMetaPath(t *testing.T) {
	assert.Equal(t, "/mgmt/meta/c/e", page("/mgmt/resources/c/e").MetaPath())
	assert.Equal(t, "/mgmt/coords", page("/mgmt/coords").MetaPath())
}

func TestPageMgmtPathRoot(t *testing.T) {
	p := page("/mgmt/resources/c")
	assert.Equal(t, "https://console.example.com/mgmt/resources/c", p.MgmtPathRoot())
	p.MgmtRoot = "https://x/y"
	assert.Equal(t, "https://x/y", p.MgmtPathRoot())
}

func TestResourceRefNames(t *testing.T) {
	assert.Equal(t, []string{"c"}, mgmt.ResourceRef{Collection: "c", Channel: "ch"}.Names())
	assert.Equal(t, "c&e&ch",
		mgmt.ResourceRef{Collection: "c", Experiment: "e", Channel: "ch"}.LookupKey())
}
