package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	DEAL_STAGE_QUALIFICATION = "qualification"
	DEAL_STAGE_VIEWING       = "viewing"
	DEAL_STAGE_OFFER         = "offer"
	DEAL_STAGE_NEGOTIATION   = "negotiation"
	DEAL_STAGE_CONTRACT      = "contract"
	DEAL_STAGE_WON           = "won"
	DEAL_STAGE_LOST          = "lost"
)

// DealStages is the pipeline order. won and lost are terminal.
var DealStages = []string{
	DEAL_STAGE_QUALIFICATION,
	DEAL_STAGE_VIEWING,
	DEAL_STAGE_OFFER,
	DEAL_STAGE_NEGOTIATION,
	DEAL_STAGE_CONTRACT,
	DEAL_STAGE_WON,
	DEAL_STAGE_LOST,
}

// DealStageLabels maps canonical stage identifiers to display labels, used
// by the CSV export.
var DealStageLabels = map[string]string{
	DEAL_STAGE_QUALIFICATION: "Qualification",
	DEAL_STAGE_VIEWING:       "Viewing",
	DEAL_STAGE_OFFER:         "Offer",
	DEAL_STAGE_NEGOTIATION:   "Negotiation",
	DEAL_STAGE_CONTRACT:      "Contract",
	DEAL_STAGE_WON:           "Won",
	DEAL_STAGE_LOST:          "Lost",
}

func IsValidDealStage(stage string) bool {
	for _, s := range DealStages {
		if s == stage {
			return true
		}
	}
	return false
}

func IsTerminalDealStage(stage string) bool {
	return stage == DEAL_STAGE_WON || stage == DEAL_STAGE_LOST
}

type Deal struct {
	ID                  bson.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	AgencyID            string         `json:"agency_id,omitempty" bson:"agency_id,omitempty"`
	LeadID              string         `json:"lead_id,omitempty" bson:"lead_id,omitempty"`
	PropertyID          string         `json:"property_id,omitempty" bson:"property_id,omitempty"`
	PropertyName        string         `json:"property_name,omitempty" bson:"property_name,omitempty"`
	LeadName            string         `json:"lead_name,omitempty" bson:"lead_name,omitempty"`
	LeadPhone           string         `json:"lead_phone,omitempty" bson:"lead_phone,omitempty"`
	Stage               string         `json:"stage,omitempty" bson:"stage,omitempty"`
	Price               float64        `json:"price,omitempty" bson:"price,omitempty"`
	ProjectedCommission float64        `json:"projected_commission,omitempty" bson:"projected_commission,omitempty"`
	ActualCommission    float64        `json:"actual_commission,omitempty" bson:"actual_commission,omitempty"`
	Probability         int            `json:"probability,omitempty" bson:"probability,omitempty"`
	AgentID             string         `json:"agent_id,omitempty" bson:"agent_id,omitempty"`
	CreatedBy           string         `json:"created_by,omitempty" bson:"created_by,omitempty"`
	Source              string         `json:"source,omitempty" bson:"source,omitempty"`
	CustomData          map[string]any `json:"custom_data,omitempty" bson:"custom_data,omitempty"`
	CreatedAt           time.Time      `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt           time.Time      `json:"updated_at" bson:"updated_at,omitempty"`
}
