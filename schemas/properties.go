package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	PROPERTY_TYPE_SALE = "sale"
	PROPERTY_TYPE_RENT = "rent"

	PROPERTY_STATUS_ACTIVE    = "active"
	PROPERTY_STATUS_PENDING   = "pending"
	PROPERTY_STATUS_SOLD      = "sold"
	PROPERTY_STATUS_RENTED    = "rented"
	PROPERTY_STATUS_EXPIRED   = "expired"
	PROPERTY_STATUS_WITHDRAWN = "withdrawn"
)

type GeoPoint struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

type Property struct {
	ID              bson.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	AgencyID        string         `json:"agency_id,omitempty" bson:"agency_id,omitempty"`
	Address         string         `json:"address,omitempty" bson:"address,omitempty"`
	City            string         `json:"city,omitempty" bson:"city,omitempty"`
	Type            string         `json:"type,omitempty" bson:"type,omitempty"`
	Kind            string         `json:"kind,omitempty" bson:"kind,omitempty"`
	Price           float64        `json:"price,omitempty" bson:"price,omitempty"`
	Rooms           float64        `json:"rooms,omitempty" bson:"rooms,omitempty"`
	Floor           int            `json:"floor,omitempty" bson:"floor,omitempty"`
	Size            float64        `json:"size,omitempty" bson:"size,omitempty"`
	Status          string         `json:"status,omitempty" bson:"status,omitempty"`
	Exclusive       bool           `json:"exclusive,omitempty" bson:"exclusive,omitempty"`
	ExclusiveUntil  *time.Time     `json:"exclusive_until,omitempty" bson:"exclusive_until,omitempty"`
	Images          []string       `json:"images,omitempty" bson:"images,omitempty"`
	Location        *GeoPoint      `json:"location,omitempty" bson:"location,omitempty"`
	AgentID         string         `json:"agent_id,omitempty" bson:"agent_id,omitempty"`
	OwnerName       string         `json:"owner_name,omitempty" bson:"owner_name,omitempty"`
	OwnerPhone      string         `json:"owner_phone,omitempty" bson:"owner_phone,omitempty"`
	Notes           string         `json:"notes,omitempty" bson:"notes,omitempty"`
	Source          string         `json:"source,omitempty" bson:"source,omitempty"`
	CustomData      map[string]any `json:"custom_data,omitempty" bson:"custom_data,omitempty"`
	CreatedBy       string         `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt       time.Time      `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt       time.Time      `json:"updated_at" bson:"updated_at,omitempty"`
}
