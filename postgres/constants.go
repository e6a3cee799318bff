// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package postgres

const (
	// Unique constraint names, as PostgreSQL generates them from
	// the migrations:
	collectionUniqueName = "collection_name_key"
	experimentUniqueName = "experiment_collection_id_name_key"
	channelUniqueName    = "channel_experiment_id_name_key"
	coordUniqueName      = "coord_name_key"
	metadataPrimaryKey   = "metadata_pkey"

	// WHERE clause fragment matching metadata rows of every object
	// beneath the one whose lookup key is $1.
	hasLookupKeyPrefix = "left(lookup_key, length($1)+1)=$1 || '&'"
)
