package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	LEAD_TYPE_BUYER  = "buyer"
	LEAD_TYPE_SELLER = "seller"

	LEAD_STATUS_NEW         = "new"
	LEAD_STATUS_CONTACTED   = "contacted"
	LEAD_STATUS_MEETING_SET = "meeting_set"
	LEAD_STATUS_WON         = "won"
	LEAD_STATUS_LOST        = "lost"
)

type LeadRequirements struct {
	DesiredCities []string        `json:"desired_cities,omitempty" bson:"desired_cities,omitempty"`
	MaxBudget     float64         `json:"max_budget,omitempty" bson:"max_budget,omitempty"`
	MinRooms      float64         `json:"min_rooms,omitempty" bson:"min_rooms,omitempty"`
	MaxRooms      float64         `json:"max_rooms,omitempty" bson:"max_rooms,omitempty"`
	MinSize       float64         `json:"min_size,omitempty" bson:"min_size,omitempty"`
	MinFloor      int             `json:"min_floor,omitempty" bson:"min_floor,omitempty"`
	MaxFloor      int             `json:"max_floor,omitempty" bson:"max_floor,omitempty"`
	Amenities     map[string]bool `json:"amenities,omitempty" bson:"amenities,omitempty"`
	Condition     string          `json:"condition,omitempty" bson:"condition,omitempty"`
	Urgency       string          `json:"urgency,omitempty" bson:"urgency,omitempty"`
}

type Lead struct {
	ID           bson.ObjectID    `json:"id,omitempty" bson:"_id,omitempty"`
	AgencyID     string           `json:"agency_id,omitempty" bson:"agency_id,omitempty"`
	Name         string           `json:"name,omitempty" bson:"name,omitempty"`
	Phone        string           `json:"phone,omitempty" bson:"phone,omitempty"`
	Email        string           `json:"email,omitempty" bson:"email,omitempty"`
	Type         string           `json:"type,omitempty" bson:"type,omitempty"`
	Status       string           `json:"status,omitempty" bson:"status,omitempty"`
	Requirements LeadRequirements `json:"requirements,omitempty" bson:"requirements,omitempty"`
	AgentID      string           `json:"agent_id,omitempty" bson:"agent_id,omitempty"`
	Notes        string           `json:"notes,omitempty" bson:"notes,omitempty"`
	Source       string           `json:"source,omitempty" bson:"source,omitempty"`
	CustomData   map[string]any   `json:"custom_data,omitempty" bson:"custom_data,omitempty"`
	CreatedBy    string           `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt    time.Time        `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt    time.Time        `json:"updated_at" bson:"updated_at,omitempty"`
}

type LeadMessage struct {
	ID        bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AgencyID  string        `json:"agency_id,omitempty" bson:"agency_id,omitempty"`
	LeadID    string        `json:"lead_id,omitempty" bson:"lead_id,omitempty"`
	AgentID   string        `json:"agent_id,omitempty" bson:"agent_id,omitempty"`
	Body      string        `json:"body,omitempty" bson:"body,omitempty"`
	Direction string        `json:"direction,omitempty" bson:"direction,omitempty"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at,omitempty"`
}
