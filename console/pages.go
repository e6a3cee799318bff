// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package console

import (
	"html/template"
	"net/http"
	"net/url"

	"github.com/diffeo/go-bossmgmt/mgmt"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Error}}<div class="alert alert-danger">{{.Error}}</div>{{end}}
{{range .Tables}}
<h2>{{.Heading}}</h2>
<table id="{{.ID}}" class="table" data-rows="{{.RowsURL}}">
<thead><tr><th>{{.Field}}</th><th>Actions</th></tr></thead>
<tbody>
{{range .Rows}}<tr><td>{{.Primary}}</td><td>{{.Actions}}</td></tr>
{{end}}</tbody>
</table>
{{end}}
</body>
</html>
`))

type pageData struct {
	Title  string
	Error  string
	Tables []tableData
}

type tableData struct {
	Heading string
	ID      string
	Field   string
	RowsURL string
	Rows    []rowData
}

type rowData struct {
	Primary string
	Actions template.HTML
}

var headings = map[mgmt.ResourceKind]string{
	mgmt.Collection: "Collections",
	mgmt.Experiment: "Experiments",
	mgmt.Coord:      "Coordinate Frames",
	mgmt.Metadata:   "Metadata",
}

// table fetches and formats the list of kind as seen from page.
func (c *Console) table(req *http.Request, kind mgmt.ResourceKind, page mgmt.PageContext) (tableData, error) {
	text, _ := kind.MarshalText()
	table := tableData{
		Heading: headings[kind],
		ID:      kind.TableSelector()[1:],
		Field:   kind.PrimaryField(),
		RowsURL: "/mgmt/rows/" + string(text) + "?page=" + url.QueryEscape(page.URL()),
	}
	items, err := c.Client.List(req.Context(), kind, page)
	if err != nil {
		return table, err
	}
	rows, err := mgmt.FormatRows(kind, page, c.Client.APIRoot(), items)
	if err != nil {
		return table, err
	}
	for _, row := range rows {
		actions, err := mgmt.ActionsHTML(row.Actions)
		if err != nil {
			return table, err
		}
		table.Rows = append(table.Rows, rowData{Primary: row.Primary, Actions: actions})
	}
	return table, nil
}

// render writes a page made of one table per kind.  A failed fetch is
// reported and shown on the page, with the upstream status.
func (c *Console) render(resp http.ResponseWriter, req *http.Request, title string, kinds ...mgmt.ResourceKind) {
	page := c.pageContext(req)
	data := pageData{Title: title}
	status := http.StatusOK
	for _, kind := range kinds {
		table, err := c.table(req, kind, page)
		if err != nil {
			c.reporter().RaiseAjaxError(err)
			data.Error = err.Error()
			status = statusFor(err)
			break
		}
		data.Tables = append(data.Tables, table)
	}
	resp.Header().Set("Content-Type", "text/html; charset=utf-8")
	resp.WriteHeader(status)
	if err := pageTemplate.Execute(resp, data); err != nil {
		c.logger().WithError(err).Error("Rendering page failed")
	}
}

// CollectionsPage lists all collections.
func (c *Console) CollectionsPage(resp http.ResponseWriter, req *http.Request) {
	c.render(resp, req, "Collections", mgmt.Collection)
}

// CollectionPage lists the experiments and metadata of one
// collection.
func (c *Console) CollectionPage(resp http.ResponseWriter, req *http.Request) {
	page := c.pageContext(req)
	c.render(resp, req, "Collection "+page.LastSegment(), mgmt.Experiment, mgmt.Metadata)
}

// MetadataPage lists the metadata of an experiment or channel.
func (c *Console) MetadataPage(resp http.ResponseWriter, req *http.Request) {
	page := c.pageContext(req)
	rest, _ := page.ResourcePath()
	c.render(resp, req, "Metadata of "+rest[1:], mgmt.Metadata)
}

// CoordsPage lists all coordinate frames.
func (c *Console) CoordsPage(resp http.ResponseWriter, req *http.Request) {
	c.render(resp, req, "Coordinate Frames", mgmt.Coord)
}
