package models

import "time"

// DocMeta carries the identity and audit fields shared by every document.
type DocMeta struct {
	ID        string    `bson:"id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// Meta lets generic repositories stamp ids and timestamps.
func (m *DocMeta) Meta() *DocMeta {
	return m
}

// Document is implemented by every stored type that embeds DocMeta.
type Document interface {
	Meta() *DocMeta
}

// Record status shared by staff, branches, services and products.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)
