// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package console

import (
	"net/http"

	"github.com/diffeo/go-bossmgmt/mgmt"
	"github.com/diffeo/go-bossmgmt/mgmtclient"
	"github.com/diffeo/go-bossmgmt/mgmtdata"
	"github.com/gorilla/mux"
)

// kindError wraps a failure to parse a resource kind from a request.
type kindError struct {
	Err error
}

func (e kindError) Error() string {
	return e.Err.Error()
}

func parseKind(text string) (kind mgmt.ResourceKind, err error) {
	err = kind.UnmarshalText([]byte(text))
	if err != nil {
		err = kindError{Err: err}
	}
	return
}

// rowsResponse is the body of a rows request.
type rowsResponse struct {
	Rows []map[string]string `json:"rows"`
}

// writeJSON sends a JSON body with the given status.
func (c *Console) writeJSON(resp http.ResponseWriter, status int, out interface{}) {
	resp.Header().Set("Content-Type", mgmtdata.JSONMediaType)
	resp.WriteHeader(status)
	if err := mgmtdata.Encode(resp, out); err != nil {
		c.logger().WithError(err).Error("Writing response failed")
	}
}

// statusFor picks the HTTP status to pass on for a failed request.
// Failed API calls keep their upstream status.
func statusFor(err error) int {
	switch et := err.(type) {
	case mgmtclient.ErrorHTTP:
		return et.StatusCode()
	case kindError:
		return http.StatusNotFound
	case mgmtdata.ErrorStatus:
		return et.HTTPStatus()
	}
	return http.StatusBadGateway
}

// writeError sends err as a JSON error response.
func (c *Console) writeError(resp http.ResponseWriter, err error) {
	errResp := mgmtdata.ErrorResponse{Error: "error", Message: err.Error()}
	if httpErr, isHTTP := err.(mgmtclient.ErrorHTTP); isHTTP && httpErr.Err != nil {
		errResp.FromError(httpErr.Err)
	} else {
		errResp.FromError(err)
	}
	c.writeJSON(resp, statusFor(err), errResp)
}

// Rows fetches a list and returns it as formatted rows.  The page
// query parameter is the absolute URL of the page the rows will be
// shown on; it decides which collection, experiment, or channel the
// list is for and how row links are built.
func (c *Console) Rows(resp http.ResponseWriter, req *http.Request) {
	kind, err := parseKind(mux.Vars(req)["kind"])
	if err != nil {
		c.writeError(resp, err)
		return
	}

	page := c.pageContext(req)
	if pageURL := req.URL.Query().Get("page"); pageURL != "" {
		page, err = mgmt.ParsePageContext(pageURL)
		if err != nil {
			c.writeError(resp, mgmtdata.ErrBadRequest{Err: err})
			return
		}
		page.MgmtRoot = c.MgmtRoot
	}

	items, err := c.Client.List(req.Context(), kind, page)
	if err != nil {
		c.reporter().RaiseAjaxError(err)
		c.writeError(resp, err)
		return
	}
	rows, err := mgmt.FormatRows(kind, page, c.Client.APIRoot(), items)
	if err != nil {
		c.writeError(resp, err)
		return
	}
	result := rowsResponse{Rows: make([]map[string]string, len(rows))}
	for i, row := range rows {
		result.Rows[i], err = row.Object()
		if err != nil {
			c.writeError(resp, err)
			return
		}
	}
	c.writeJSON(resp, http.StatusOK, result)
}
