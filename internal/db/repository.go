package db

import (
	"github.com/sightstack/stackstream/internal/rowkey"
	"github.com/sightstack/stackstream/internal/store"
)

// Repository implements the question/trend access patterns on top of a
// store.Gateway. All writes are full-record overwrites; reads tolerate
// partially written rows by defaulting missing cells.
type Repository struct {
	gateway store.Gateway
	codec   *rowkey.Codec
}

func NewRepository(gateway store.Gateway, codec *rowkey.Codec) *Repository {
	return &Repository{gateway: gateway, codec: codec}
}
