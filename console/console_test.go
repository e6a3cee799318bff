// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package console_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/diffeo/go-bossmgmt/console"
	"github.com/diffeo/go-bossmgmt/memory"
	"github.com/diffeo/go-bossmgmt/mgmt"
	"github.com/diffeo/go-bossmgmt/mgmtclient"
	"github.com/diffeo/go-bossmgmt/mgmtdata"
	"github.com/diffeo/go-bossmgmt/mgmtserver"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"
)

type Suite struct {
	suite.Suite
	Store   mgmt.Store
	API     *httptest.Server
	Handler http.Handler
	Logs    *test.Hook
}

func (s *Suite) SetupTest() {
	s.Store = memory.New()
	r := mux.NewRouter()
	mgmtserver.PopulateRouter(r.PathPrefix("/v1").Subrouter(), s.Store)
	s.API = httptest.NewServer(r)

	client, err := mgmtclient.New(s.API.URL + "/v1/")
	s.Require().NoError(err)
	logger, hook := test.NewNullLogger()
	s.Logs = hook
	s.Handler = console.NewRouter(&console.Console{Client: client, Logger: logger})
}

func (s *Suite) TearDownTest() {
	s.API.Close()
}

// Get sends a GET to the console and returns the response.
func (s *Suite) Get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "http://console.example.com"+path, nil)
	resp := httptest.NewRecorder()
	s.Handler.ServeHTTP(resp, req)
	return resp
}

// Post sends a form POST to the console and returns the response.
func (s *Suite) Post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "http://console.example.com"+path,
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	s.Handler.ServeHTTP(resp, req)
	return resp
}

func (s *Suite) TestCollectionsPage() {
	for _, name := range []string{"c2", "c1"} {
		_, err := s.Store.CreateCollection(name)
		s.Require().NoError(err)
	}
	resp := s.Get("/mgmt/resources")
	s.Equal(http.StatusOK, resp.Code)
	body := resp.Body.String()
	s.Contains(body, `id="collection_table"`)
	s.Contains(body, "<td>c1</td>")
	s.Contains(body, `href="http://console.example.com/mgmt/resources/c1"`)
	s.Contains(body, `data-url="`+s.API.URL+`/v1/collection/c2"`)
	s.True(strings.Index(body, "<td>c1</td>") < strings.Index(body, "<td>c2</td>"))
}

func (s *Suite) TestCollectionPage() {
	ref := mgmt.ResourceRef{Collection: "col"}
	_, err := s.Store.CreateCollection("col")
	s.Require().NoError(err)
	_, err = s.Store.CreateExperiment("col", "exp")
	s.Require().NoError(err)
	s.Require().NoError(s.Store.CreateMeta(ref, "<script>", "x"))

	resp := s.Get("/mgmt/resources/col")
	s.Equal(http.StatusOK, resp.Code)
	body := resp.Body.String()
	s.Contains(body, `id="experiment_table"`)
	s.Contains(body, `id="metadata_table"`)
	s.Contains(body, "<td>exp</td>")
	s.NotContains(body, "<script>")
	s.Contains(body, "&lt;script&gt;")
}

func (s *Suite) TestMetadataPage() {
	ref := mgmt.ResourceRef{Collection: "col", Experiment: "exp", Channel: "ch"}
	_, err := s.Store.CreateCollection("col")
	s.Require().NoError(err)
	_, err = s.Store.CreateExperiment("col", "exp")
	s.Require().NoError(err)
	_, err = s.Store.CreateChannel("col", "exp", "ch")
	s.Require().NoError(err)
	s.Require().NoError(s.Store.CreateMeta(ref, "res", "4nm"))

	resp := s.Get("/mgmt/resources/col/exp/ch")
	s.Equal(http.StatusOK, resp.Code)
	body := resp.Body.String()
	s.Contains(body, "<td>res</td>")
	s.Contains(body, `href="http://console.example.com/mgmt/meta/col/exp/ch?key=res"`)
}

func (s *Suite) TestMissingCollectionPage() {
	resp := s.Get("/mgmt/resources/nope")
	s.Equal(http.StatusNotFound, resp.Code)
	s.Contains(resp.Body.String(), "No such collection nope")
	if s.Len(s.Logs.Entries, 1) {
		s.Equal(logrus.ErrorLevel, s.Logs.LastEntry().Level)
		s.Equal(http.StatusNotFound, s.Logs.LastEntry().Data["status"])
	}
}

func (s *Suite) TestCoordsPage() {
	_, err := s.Store.CreateCoord("frame")
	s.Require().NoError(err)
	resp := s.Get("/mgmt/coords")
	s.Equal(http.StatusOK, resp.Code)
	body := resp.Body.String()
	s.Contains(body, `id="coord_table"`)
	s.Contains(body, `href="`+s.API.URL+`/v1/mgmt/coord/frame"`)
}

func (s *Suite) TestRows() {
	_, err := s.Store.CreateCoord("frame")
	s.Require().NoError(err)

	resp := s.Get("/mgmt/rows/coord?page=" + url.QueryEscape("https://console.example.com/mgmt/coords"))
	s.Equal(http.StatusOK, resp.Code)
	var body struct {
		Rows []map[string]string `json:"rows"`
	}
	err = mgmtdata.Decode(resp.Header().Get("Content-Type"), resp.Body, &body)
	if s.NoError(err) && s.Len(body.Rows, 1) {
		s.Equal("frame", body.Rows[0]["name"])
		s.Contains(body.Rows[0]["actions"], "btn-danger")
		s.Contains(body.Rows[0]["actions"], `data-table="#coord_table"`)
	}
}

func (s *Suite) TestRowsErrors() {
	resp := s.Get("/mgmt/rows/widget")
	s.Equal(http.StatusNotFound, resp.Code)

	resp = s.Get("/mgmt/rows/coord?page=relative/path")
	s.Equal(http.StatusBadRequest, resp.Code)

	resp = s.Get("/mgmt/rows/experiment?page=" + url.QueryEscape("https://console.example.com/mgmt/resources/nope"))
	s.Equal(http.StatusNotFound, resp.Code)
	var errResp mgmtdata.ErrorResponse
	err := mgmtdata.Decode(resp.Header().Get("Content-Type"), resp.Body, &errResp)
	if s.NoError(err) {
		s.Equal(mgmt.ErrNoSuchCollection{Name: "nope"}, errResp.ToError())
	}
}

func (s *Suite) TestDelete() {
	_, err := s.Store.CreateCoord("frame")
	s.Require().NoError(err)

	target := s.API.URL + "/v1/coord/frame"
	resp := s.Post("/mgmt/delete", url.Values{"kind": {"coord"}, "url": {target}})
	s.Equal(http.StatusOK, resp.Code)
	var result map[string]string
	err = mgmtdata.Decode(resp.Header().Get("Content-Type"), resp.Body, &result)
	if s.NoError(err) {
		s.Equal("#coord_table", result["table"])
		s.Equal(target, result["url"])
		s.Equal("Your coordinate frame has been marked for deletion", result["message"])
	}

	_, err = s.Store.Coord("frame")
	s.Equal(mgmt.ErrNoSuchCoord{Name: "frame"}, err)

	// A second delete fails upstream
	resp = s.Post("/mgmt/delete", url.Values{"kind": {"coord"}, "url": {target}})
	s.Equal(http.StatusNotFound, resp.Code)
}

func (s *Suite) TestDeleteBadForm() {
	resp := s.Post("/mgmt/delete", url.Values{"kind": {"widget"}, "url": {"coord/x"}})
	s.Equal(http.StatusBadRequest, resp.Code)

	resp = s.Post("/mgmt/delete", url.Values{"kind": {"coord"}})
	s.Equal(http.StatusBadRequest, resp.Code)
}

func (s *Suite) TestDeleteOutsideAPI() {
	var hits int32
	other := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer other.Close()

	for _, target := range []string{
		other.URL + "/internal/thing",
		s.API.URL + "/internal/thing",
		s.API.URL + "/v1/../internal/thing",
	} {
		resp := s.Post("/mgmt/delete", url.Values{"kind": {"coord"}, "url": {target}})
		s.Equal(http.StatusBadRequest, resp.Code, target)
		s.NotContains(resp.Body.String(), "marked for deletion", target)
	}
	s.Equal(int32(0), atomic.LoadInt32(&hits))
}

func TestConsole(t *testing.T) {
	suite.Run(t, &Suite{})
}
