package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	ROLE_ADMIN = "admin"
	ROLE_AGENT = "agent"
)

type UserGoals struct {
	MonthlyRevenue float64 `json:"monthly_revenue,omitempty" bson:"monthly_revenue,omitempty"`
	YearlyRevenue  float64 `json:"yearly_revenue,omitempty" bson:"yearly_revenue,omitempty"`
	MonthlyDeals   int     `json:"monthly_deals,omitempty" bson:"monthly_deals,omitempty"`
	YearlyDeals    int     `json:"yearly_deals,omitempty" bson:"yearly_deals,omitempty"`
}

type AppUser struct {
	ID        bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AgencyID  string        `json:"agency_id,omitempty" bson:"agency_id,omitempty"`
	Name      string        `json:"name,omitempty" bson:"name,omitempty"`
	Email     string        `json:"email,omitempty" bson:"email,omitempty"`
	Phone     string        `json:"phone,omitempty" bson:"phone,omitempty"`
	Role      string        `json:"role,omitempty" bson:"role,omitempty"`
	Goals     *UserGoals    `json:"goals,omitempty" bson:"goals,omitempty"`
	Pending   bool          `json:"pending,omitempty" bson:"pending,omitempty"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt time.Time     `json:"updated_at" bson:"updated_at,omitempty"`
}

type Agency struct {
	ID        bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string        `json:"name,omitempty" bson:"name,omitempty"`
	Plan      string        `json:"plan,omitempty" bson:"plan,omitempty"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at,omitempty"`
}
