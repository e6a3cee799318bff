// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mgmtserver_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/diffeo/go-bossmgmt/memory"
	"github.com/diffeo/go-bossmgmt/mgmt"
	"github.com/diffeo/go-bossmgmt/mgmtdata"
	"github.com/diffeo/go-bossmgmt/mgmtserver"
	"github.com/stretchr/testify/suite"
)

// Suite exercises the REST API directly over an in-memory store.
type Suite struct {
	suite.Suite
	Clock   *clock.Mock
	Store   mgmt.Store
	Handler http.Handler
}

func (s *Suite) SetupTest() {
	s.Clock = clock.NewMock()
	s.Clock.Set(time.Date(2018, time.March, 4, 5, 6, 7, 0, time.UTC))
	s.Store = memory.NewWithClock(s.Clock)
	s.Handler = mgmtserver.NewRouter(s.Store)
}

// Do sends a request and checks its status.  If out is non-nil the
// response body is decoded into it.
func (s *Suite) Do(method, path string, status int, out interface{}) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Accept", mgmtdata.JSONMediaType)
	resp := httptest.NewRecorder()
	s.Handler.ServeHTTP(resp, req)
	s.Equal(status, resp.Code, "%v %v: %v", method, path, resp.Body.String())
	if out != nil {
		err := mgmtdata.Decode(resp.Header().Get("Content-Type"), resp.Body, out)
		s.NoError(err, "%v %v", method, path)
	}
	return resp
}

// ExpectError sends a request that is expected to fail, and returns the
// decoded mgmt error.
func (s *Suite) ExpectError(method, path string, status int) error {
	var errResp mgmtdata.ErrorResponse
	s.Do(method, path, status, &errResp)
	return errResp.ToError()
}

func (s *Suite) TestCollections() {
	var list mgmtdata.CollectionList
	s.Do("GET", "/collection", http.StatusOK, &list)
	s.Empty(list.Collections)

	var coll mgmtdata.Collection
	resp := s.Do("POST", "/collection/col", http.StatusCreated, &coll)
	s.Equal("/collection/col", resp.Header().Get("Location"))
	s.Equal("col", coll.Name)
	s.WithinDuration(s.Clock.Now(), coll.Created, time.Second)
	s.Empty(coll.Experiments)

	s.Equal(mgmt.ErrAlreadyExists{Kind: "collection", Name: "col"},
		s.ExpectError("POST", "/collection/col", http.StatusBadRequest))

	s.Do("POST", "/collection/col2", http.StatusCreated, nil)
	s.Do("GET", "/collection", http.StatusOK, &list)
	s.Equal([]string{"col", "col2"}, list.Collections)

	var exp mgmtdata.Experiment
	resp = s.Do("POST", "/collection/col/experiment/exp", http.StatusCreated, &exp)
	s.Equal("/collection/col/experiment/exp", resp.Header().Get("Location"))
	s.Equal("exp", exp.Name)
	s.Equal("col", exp.Collection)

	coll = mgmtdata.Collection{}
	s.Do("GET", "/collection/col", http.StatusOK, &coll)
	s.Equal("col", coll.Name)
	s.Equal([]string{"exp"}, coll.Experiments)

	s.Equal(mgmt.ErrNotEmpty{Name: "col"},
		s.ExpectError("DELETE", "/collection/col", http.StatusBadRequest))

	var ch mgmtdata.Channel
	s.Do("POST", "/collection/col/experiment/exp/channel/ch", http.StatusCreated, &ch)
	s.Equal("ch", ch.Name)
	s.Equal("exp", ch.Experiment)

	exp = mgmtdata.Experiment{}
	s.Do("GET", "/collection/col/experiment/exp", http.StatusOK, &exp)
	s.Equal([]string{"ch"}, exp.Channels)

	s.Do("DELETE", "/collection/col/experiment/exp", http.StatusNoContent, nil)
	s.Do("DELETE", "/collection/col", http.StatusNoContent, nil)

	s.Equal(mgmt.ErrNoSuchCollection{Name: "col"},
		s.ExpectError("GET", "/collection/col", http.StatusNotFound))
	s.Equal(mgmt.ErrNoSuchCollection{Name: "col"},
		s.ExpectError("DELETE", "/collection/col", http.StatusNotFound))
	s.Equal(mgmt.ErrNoSuchExperiment{Collection: "col2", Name: "exp"},
		s.ExpectError("GET", "/collection/col2/experiment/exp", http.StatusNotFound))
}

func (s *Suite) TestBadName() {
	s.Equal(mgmt.ErrBadName{Name: "a b"},
		s.ExpectError("POST", "/collection/a%20b", http.StatusBadRequest))
}

func (s *Suite) TestCoords() {
	var list mgmtdata.CoordList
	s.Do("GET", "/coord", http.StatusOK, &list)
	s.Empty(list.Coords)

	var coord mgmtdata.Coord
	resp := s.Do("POST", "/coord/frame", http.StatusCreated, &coord)
	s.Equal("/coord/frame", resp.Header().Get("Location"))
	s.Equal("frame", coord.Name)

	s.Do("GET", "/coord", http.StatusOK, &list)
	s.Equal([]string{"frame"}, list.Coords)

	coord = mgmtdata.Coord{}
	s.Do("GET", "/coord/frame", http.StatusOK, &coord)
	s.Equal("frame", coord.Name)

	s.Do("DELETE", "/coord/frame", http.StatusNoContent, nil)
	s.Equal(mgmt.ErrNoSuchCoord{Name: "frame"},
		s.ExpectError("DELETE", "/coord/frame", http.StatusNotFound))
}

func (s *Suite) TestMeta() {
	_, err := s.Store.CreateCollection("col")
	s.Require().NoError(err)
	_, err = s.Store.CreateExperiment("col", "exp")
	s.Require().NoError(err)

	for _, path := range []string{"/meta/col", "/meta/col/exp"} {
		var keys mgmtdata.MetaKeyList
		s.Do("GET", path, http.StatusOK, &keys)
		s.Empty(keys.Keys, path)

		s.Equal(mgmt.ErrNoSuchKey{Key: "k"},
			s.ExpectError("GET", path+"?key=k", http.StatusNotFound))

		// Missing parameters
		s.ExpectError("POST", path+"?key=k", http.StatusBadRequest)
		s.ExpectError("POST", path+"?value=v", http.StatusBadRequest)
		s.ExpectError("DELETE", path, http.StatusBadRequest)

		s.Equal(mgmt.ErrNoSuchKey{Key: "k"},
			s.ExpectError("PUT", path+"?key=k&value=v", http.StatusNotFound))

		s.Do("POST", path+"?key=k&value=v%26w", http.StatusCreated, nil)
		s.Equal(mgmt.ErrAlreadyExists{Kind: "key", Name: "k"},
			s.ExpectError("POST", path+"?key=k&value=x", http.StatusBadRequest))

		var value mgmtdata.MetaValue
		s.Do("GET", path+"?key=k", http.StatusOK, &value)
		s.Equal(mgmtdata.MetaValue{Key: "k", Value: "v&w"}, value, path)

		s.Do("PUT", path+"?key=k&value=", http.StatusOK, &value)
		s.Equal(mgmtdata.MetaValue{Key: "k", Value: ""}, value, path)

		s.Do("GET", path, http.StatusOK, &keys)
		s.Equal([]string{"k"}, keys.Keys, path)

		s.Do("DELETE", path+"?key=k", http.StatusNoContent, nil)
		s.Equal(mgmt.ErrNoSuchKey{Key: "k"},
			s.ExpectError("DELETE", path+"?key=k", http.StatusNotFound))
	}

	s.Equal(mgmt.ErrNoSuchChannel{Collection: "col", Experiment: "exp", Name: "ch"},
		s.ExpectError("GET", "/meta/col/exp/ch", http.StatusNotFound))
	s.Equal(mgmt.ErrNoSuchCollection{Name: "other"},
		s.ExpectError("GET", "/meta/other", http.StatusNotFound))
}

func (s *Suite) TestHead() {
	resp := s.Do("HEAD", "/collection", http.StatusOK, nil)
	s.Empty(resp.Body.String())
}

func TestServer(t *testing.T) {
	suite.Run(t, &Suite{})
}
