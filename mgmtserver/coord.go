// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mgmtserver

import (
	"github.com/diffeo/go-bossmgmt/mgmtdata"
	"github.com/gorilla/mux"
)

// CoordList gets a list of all coordinate frames.
func (api *restAPI) CoordList(ctx *context) (interface{}, error) {
	names, err := api.Store.Coords()
	if err != nil {
		return nil, err
	}
	return mgmtdata.CoordList{Coords: names}, nil
}

// CoordGet retrieves a single coordinate frame.
func (api *restAPI) CoordGet(ctx *context) (interface{}, error) {
	res, err := api.Store.Coord(ctx.Coord)
	if err != nil {
		return nil, err
	}
	return mgmtdata.Coord{Resource: resourceData(res)}, nil
}

// CoordPost creates a new coordinate frame.
func (api *restAPI) CoordPost(ctx *context) (interface{}, error) {
	res, err := api.Store.CreateCoord(ctx.Coord)
	if err != nil {
		return nil, err
	}
	created := responseCreated{
		Body: mgmtdata.Coord{Resource: resourceData(res)},
	}
	err = buildURLs(api.Router, "coord", res.Name).
		URL(&created.Location, "coord").
		Error
	return created, err
}

// CoordDelete deletes a coordinate frame.
func (api *restAPI) CoordDelete(ctx *context) (interface{}, error) {
	return nil, api.Store.DeleteCoord(ctx.Coord)
}

// PopulateCoord adds the coordinate frame URL paths to a router.
func (api *restAPI) PopulateCoord(r *mux.Router) {
	r.Path("/coord").Name("coords").Handler(&resourceHandler{
		Context: api.Context,
		Get:     api.CoordList,
	})
	r.Path("/coord/{coord}").Name("coord").Handler(&resourceHandler{
		Context: api.Context,
		Get:     api.CoordGet,
		Post:    api.CoordPost,
		Delete:  api.CoordDelete,
	})
}
