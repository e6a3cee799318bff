// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mgmtdata

import (
	"errors"
	"net/http"
	"testing"

	"github.com/diffeo/go-bossmgmt/mgmt"
	"github.com/stretchr/testify/assert"
)

// TestErrorRoundTrip checks that the well-known errors survive being
// sent across the wire.
func TestErrorRoundTrip(t *testing.T) {
	for _, err := range []error{
		mgmt.ErrNoSuchCollection{Name: "c"},
		mgmt.ErrNoSuchExperiment{Collection: "c", Name: "e"},
		mgmt.ErrNoSuchChannel{Collection: "c", Experiment: "e", Name: "ch"},
		mgmt.ErrNoSuchCoord{Name: "frame"},
		mgmt.ErrNoSuchKey{Key: "a/b"},
		mgmt.ErrAlreadyExists{Kind: "key", Name: "a/b"},
		mgmt.ErrNotEmpty{Name: "c"},
		mgmt.ErrBadName{Name: "bad name"},
		mgmt.ErrNoAPIRoot,
	} {
		t.Run(err.Error(), func(tt *testing.T) {
			resp := ErrorResponse{}
			resp.FromError(err)
			assert.Equal(tt, err.Error(), resp.Message)
			assert.Equal(tt, err, resp.ToError())
		})
	}
}

func TestErrorUnwrapsStatusWrappers(t *testing.T) {
	resp := ErrorResponse{}
	resp.FromError(ErrNotFound{Err: mgmt.ErrNoSuchKey{Key: "k"}})
	assert.Equal(t, "ErrNoSuchKey", resp.Error)
	assert.Equal(t, "k", resp.Value)
}

func TestErrorUnknown(t *testing.T) {
	resp := ErrorResponse{Error: "error", Message: "something broke"}
	assert.EqualError(t, resp.ToError(), "something broke")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusFor(mgmt.ErrNoSuchCoord{Name: "x"}))
	assert.Equal(t, http.StatusNotFound, StatusFor(ErrNotFound{Err: errors.New("x")}))
	assert.Equal(t, http.StatusBadRequest, StatusFor(mgmt.ErrNotEmpty{Name: "x"}))
	assert.Equal(t, http.StatusBadRequest, StatusFor(ErrBadRequest{Err: errors.New("x")}))
	assert.Equal(t, http.StatusUnsupportedMediaType, StatusFor(ErrUnsupportedMediaType{Type: "x/y"}))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("x")))
}

func TestFromPanic(t *testing.T) {
	resp := ErrorResponse{}
	resp.FromPanic("oops")
	assert.Equal(t, "panic", resp.Error)
	assert.Equal(t, "oops", resp.Message)
	assert.NotEmpty(t, resp.Stack)
}
