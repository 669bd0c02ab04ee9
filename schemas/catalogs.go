package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// CatalogProperty is the snapshot of a property taken when a catalog is
// generated. It does not follow later edits to the property document.
type CatalogProperty struct {
	PropertyID string   `json:"property_id" bson:"property_id"`
	Address    string   `json:"address,omitempty" bson:"address,omitempty"`
	City       string   `json:"city,omitempty" bson:"city,omitempty"`
	Type       string   `json:"type,omitempty" bson:"type,omitempty"`
	Kind       string   `json:"kind,omitempty" bson:"kind,omitempty"`
	Price      float64  `json:"price,omitempty" bson:"price,omitempty"`
	Rooms      float64  `json:"rooms,omitempty" bson:"rooms,omitempty"`
	Size       float64  `json:"size,omitempty" bson:"size,omitempty"`
	Images     []string `json:"images,omitempty" bson:"images,omitempty"`
}

type SharedCatalog struct {
	ID         bson.ObjectID     `json:"id,omitempty" bson:"_id,omitempty"`
	AgencyID   string            `json:"agency_id,omitempty" bson:"agency_id,omitempty"`
	LeadID     string            `json:"lead_id,omitempty" bson:"lead_id,omitempty"`
	Token      string            `json:"token,omitempty" bson:"token,omitempty"`
	Properties []CatalogProperty `json:"properties,omitempty" bson:"properties,omitempty"`
	ViewCount  int               `json:"view_count" bson:"view_count"`
	ExpiresAt  time.Time         `json:"expires_at" bson:"expires_at,omitempty"`
	CreatedBy  string            `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt  time.Time         `json:"created_at" bson:"created_at,omitempty"`
}
