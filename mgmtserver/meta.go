// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mgmtserver

import (
	"github.com/diffeo/go-bossmgmt/mgmtdata"
	"github.com/gorilla/mux"
)

// MetaGet lists the metadata keys of an object, or, if a key
// parameter is given, returns that one value.
func (api *restAPI) MetaGet(ctx *context) (interface{}, error) {
	key, hasKey := ctx.Param("key")
	if !hasKey {
		keys, err := api.Store.MetaKeys(ctx.Ref)
		if err != nil {
			return nil, err
		}
		return mgmtdata.MetaKeyList{Keys: keys}, nil
	}
	value, err := api.Store.Meta(ctx.Ref, key)
	if err != nil {
		return nil, err
	}
	return mgmtdata.MetaValue{Key: key, Value: value}, nil
}

// MetaPost adds a new key to an object's metadata.
func (api *restAPI) MetaPost(ctx *context) (interface{}, error) {
	key, value, err := ctx.KeyValue()
	if err != nil {
		return nil, err
	}
	err = api.Store.CreateMeta(ctx.Ref, key, value)
	if err != nil {
		return nil, err
	}
	return responseCreated{
		Body: mgmtdata.MetaValue{Key: key, Value: value},
	}, nil
}

// MetaPut changes the value of an existing key.
func (api *restAPI) MetaPut(ctx *context) (interface{}, error) {
	key, value, err := ctx.KeyValue()
	if err != nil {
		return nil, err
	}
	err = api.Store.UpdateMeta(ctx.Ref, key, value)
	if err != nil {
		return nil, err
	}
	return mgmtdata.MetaValue{Key: key, Value: value}, nil
}

// MetaDelete removes a key from an object's metadata.
func (api *restAPI) MetaDelete(ctx *context) (interface{}, error) {
	key, hasKey := ctx.Param("key")
	if !hasKey {
		return nil, errMissingKey
	}
	return nil, api.Store.DeleteMeta(ctx.Ref, key)
}

// PopulateMeta adds the metadata URL paths to a router.  The same
// handler serves collections, experiments, and channels.
func (api *restAPI) PopulateMeta(r *mux.Router) {
	h := &resourceHandler{
		Context: api.Context,
		Get:     api.MetaGet,
		Post:    api.MetaPost,
		Put:     api.MetaPut,
		Delete:  api.MetaDelete,
	}
	r.Path("/meta/{collection}").Name("collectionMeta").Handler(h)
	r.Path("/meta/{collection}/{experiment}").Name("experimentMeta").Handler(h)
	r.Path("/meta/{collection}/{experiment}/{channel}").Name("channelMeta").Handler(h)
}
