// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mgmtclient_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/diffeo/go-bossmgmt/mgmt"
	"github.com/diffeo/go-bossmgmt/mgmtclient"
	"github.com/diffeo/go-bossmgmt/mgmtdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type removedRow struct {
	Table string
	URL   string
}

type fakeTable struct {
	removed []removedRow
}

func (t *fakeTable) RemoveRow(tableSelector, url string) {
	t.removed = append(t.removed, removedRow{Table: tableSelector, URL: url})
}

type fakeNotifier struct {
	messages []string
}

func (n *fakeNotifier) Notify(message string) {
	n.messages = append(n.messages, message)
}

func newDeleter(f *fixture) (*mgmtclient.Deleter, *fakeTable, *fakeNotifier) {
	table := &fakeTable{}
	notifier := &fakeNotifier{}
	return &mgmtclient.Deleter{Client: f.Client, Table: table, Notifier: notifier}, table, notifier
}

// TestDeleteCollectionRow formats a collection row and follows its
// delete action.
func TestDeleteCollectionRow(t *testing.T) {
	f := newFixture(t)
	_, err := f.Store.CreateCollection("col")
	require.NoError(t, err)

	rows, err := mgmt.FormatRows(mgmt.Collection, page(t, "/mgmt/resources"), f.Client.APIRoot(), []string{"col"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	target := rows[0].Actions[1].Target

	deleter, table, notifier := newDeleter(f)
	err = mgmt.DeleteCollection(context.Background(), deleter, target)
	assert.NoError(t, err)
	assert.Equal(t, []removedRow{{Table: "#collection_table", URL: target}}, table.removed)
	assert.Equal(t, []string{mgmt.Collection.DeleteMessage()}, notifier.messages)
	assert.Empty(t, f.Reports.Errors())

	names, err := f.Store.Collections()
	if assert.NoError(t, err) {
		assert.Empty(t, names)
	}
}

// TestDeleteRelative deletes a coordinate frame by a URL relative to
// the API root.
func TestDeleteRelative(t *testing.T) {
	f := newFixture(t)
	_, err := f.Store.CreateCoord("frame")
	require.NoError(t, err)

	deleter, table, notifier := newDeleter(f)
	err = mgmt.DeleteCoordFrame(context.Background(), deleter, "coord/frame")
	assert.NoError(t, err)
	assert.Equal(t, []removedRow{{Table: "#coord_table", URL: "coord/frame"}}, table.removed)
	assert.Equal(t, []string{"Your coordinate frame has been marked for deletion"}, notifier.messages)

	_, err = f.Store.Coord("frame")
	assert.Equal(t, mgmt.ErrNoSuchCoord{Name: "frame"}, err)
}

// TestDeleteMetadataRow deletes a metadata entry through its row.
func TestDeleteMetadataRow(t *testing.T) {
	f := newFixture(t)
	ref := mgmt.ResourceRef{Collection: "col"}
	_, err := f.Store.CreateCollection("col")
	require.NoError(t, err)
	require.NoError(t, f.Store.CreateMeta(ref, "a&b", "c"))

	p := page(t, "/mgmt/resources/col")
	rows, err := mgmt.FormatRows(mgmt.Metadata, p, f.Client.APIRoot(), []string{"a&b"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Len(t, rows[0].Actions, 3)

	deleter, table, notifier := newDeleter(f)
	err = mgmt.DeleteMetadata(context.Background(), deleter, rows[0].Actions[2].Target)
	assert.NoError(t, err)
	assert.Len(t, table.removed, 1)
	assert.Equal(t, []string{"Your metadata item has been deleted"}, notifier.messages)

	keys, err := f.Store.MetaKeys(ref)
	if assert.NoError(t, err) {
		assert.Empty(t, keys)
	}
}

// TestDeleteFailure checks that a failed delete is reported and
// leaves the table alone.
func TestDeleteFailure(t *testing.T) {
	f := newFixture(t)
	_, err := f.Store.CreateCollection("col")
	require.NoError(t, err)
	_, err = f.Store.CreateExperiment("col", "exp")
	require.NoError(t, err)

	deleter, table, notifier := newDeleter(f)
	err = mgmt.DeleteCollection(context.Background(), deleter, f.Client.APIRoot()+"collection/col")
	var httpErr mgmtclient.ErrorHTTP
	if assert.True(t, errors.As(err, &httpErr)) {
		assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode())
		assert.Equal(t, mgmt.ErrNotEmpty{Name: "col"}, httpErr.Err)
	}
	assert.Empty(t, table.removed)
	assert.Empty(t, notifier.messages)
	assert.Equal(t, []error{err}, f.Reports.Errors())
}

// TestDeleteNoViews checks that a Deleter without a table or notifier
// still deletes.
func TestDeleteNoViews(t *testing.T) {
	f := newFixture(t)
	_, err := f.Store.CreateCoord("frame")
	require.NoError(t, err)

	deleter := &mgmtclient.Deleter{Client: f.Client}
	err = mgmt.DeleteCoordFrame(context.Background(), deleter, "coord/frame")
	assert.NoError(t, err)
}

// TestDeleteOutsideRoot checks that targets resolving outside the API
// root are refused before any request is sent.
func TestDeleteOutsideRoot(t *testing.T) {
	f := newFixture(t)
	_, err := f.Store.CreateCoord("frame")
	require.NoError(t, err)

	var hits int32
	other := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer other.Close()
	root := strings.TrimSuffix(f.Client.APIRoot(), "/v1/")

	for _, target := range []string{
		other.URL + "/v1/coord/frame",
		"//" + strings.TrimPrefix(other.URL, "http://") + "/v1/coord/frame",
		root + "/internal/thing",
		root + "/v1/../internal/thing",
		"../internal/thing",
		strings.Replace(root, "http://", "http://user@", 1) + "/v1/coord/frame",
	} {
		deleter, table, notifier := newDeleter(f)
		err := mgmt.DeleteCoordFrame(context.Background(), deleter, target)
		var badRequest mgmtdata.ErrBadRequest
		assert.True(t, errors.As(err, &badRequest), "%v: %v", target, err)
		assert.Empty(t, table.removed, target)
		assert.Empty(t, notifier.messages, target)
	}
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
	assert.Len(t, f.Reports.Errors(), 6)

	coords, err := f.Store.Coords()
	if assert.NoError(t, err) {
		assert.Equal(t, []string{"frame"}, coords)
	}
}
