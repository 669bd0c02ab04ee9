package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	ALERT_TYPE_MATCH  = "match"
	ALERT_TYPE_IMPORT = "import"
	ALERT_TYPE_SYSTEM = "system"
)

// Alert targets one agent, or every agent in the agency when AgentID is
// empty (broadcast).
type Alert struct {
	ID        bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AgencyID  string        `json:"agency_id,omitempty" bson:"agency_id,omitempty"`
	AgentID   string        `json:"agent_id,omitempty" bson:"agent_id,omitempty"`
	Type      string        `json:"type,omitempty" bson:"type,omitempty"`
	Message   string        `json:"message,omitempty" bson:"message,omitempty"`
	Read      bool          `json:"read" bson:"read"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at,omitempty"`
}
