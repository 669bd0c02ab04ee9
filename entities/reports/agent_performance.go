package reports

import (
	"context"
	"net/http"
	"time"

	"api/database"
	"api/middlewares"
	"api/schemas"
	"api/utils"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type AgentPerformance struct {
	AgentID         string             `json:"agent_id"`
	AgentName       string             `json:"agent_name"`
	WonDeals        int64              `json:"won_deals"`
	TotalCommission float64            `json:"total_commission"`
	OpenDeals       int64              `json:"open_deals"`
	Goals           *schemas.UserGoals `json:"goals,omitempty"`
}

type agentAggregate struct {
	AgentID         string  `bson:"_id"`
	WonDeals        int64   `bson:"won_deals"`
	TotalCommission float64 `bson:"total_commission"`
	OpenDeals       int64   `bson:"open_deals"`
}

// GetAgentPerformance returns per-agent closed-deal totals for the
// current month, alongside each agent's configured goals.
func GetAgentPerformance(w http.ResponseWriter, r *http.Request) {
	session, ok := middlewares.SessionFromRequest(r)
	if !ok {
		utils.SendResponse(w, http.StatusUnauthorized, "Missing session", nil, 0)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
	defer cancel()

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	rows, err := aggregateAgents(ctx, session.AgencyID, monthStart)
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_FIND_DEALS_IN_MONGODB)
		return
	}

	users, err := fetchAgents(ctx, session.AgencyID)
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_FIND_USERS_IN_MONGODB)
		return
	}

	byAgent := map[string]agentAggregate{}
	for _, row := range rows {
		byAgent[row.AgentID] = row
	}

	performance := []AgentPerformance{}
	for _, user := range users {
		row := byAgent[user.ID.Hex()]
		performance = append(performance, AgentPerformance{
			AgentID:         user.ID.Hex(),
			AgentName:       user.Name,
			WonDeals:        row.WonDeals,
			TotalCommission: row.TotalCommission,
			OpenDeals:       row.OpenDeals,
			Goals:           user.Goals,
		})
	}

	utils.SendResponse(w, http.StatusOK, "", performance, 0)
}

func aggregateAgents(ctx context.Context, agencyID string, monthStart time.Time) ([]agentAggregate, error) {
	collection, err := database.Collection(database.COLLECTION_DEALS)
	if err != nil {
		return nil, err
	}

	pipeline := bson.A{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "agency_id", Value: agencyID},
			{Key: "updated_at", Value: bson.D{{Key: "$gte", Value: monthStart}}},
		}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$agent_id"},
			{Key: "won_deals", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$cond", Value: bson.A{
					bson.D{{Key: "$eq", Value: bson.A{"$stage", schemas.DEAL_STAGE_WON}}}, 1, 0,
				}},
			}}}},
			{Key: "total_commission", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$cond", Value: bson.A{
					bson.D{{Key: "$eq", Value: bson.A{"$stage", schemas.DEAL_STAGE_WON}}}, "$actual_commission", 0,
				}},
			}}}},
			{Key: "open_deals", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$cond", Value: bson.A{
					bson.D{{Key: "$in", Value: bson.A{"$stage", bson.A{schemas.DEAL_STAGE_WON, schemas.DEAL_STAGE_LOST}}}}, 0, 1,
				}},
			}}}},
		}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rows := []agentAggregate{}
	for cursor.Next(ctx) {
		var row agentAggregate
		if err := cursor.Decode(&row); err == nil {
			rows = append(rows, row)
		}
	}
	return rows, cursor.Err()
}

func fetchAgents(ctx context.Context, agencyID string) ([]schemas.AppUser, error) {
	collection, err := database.Collection(database.COLLECTION_USERS)
	if err != nil {
		return nil, err
	}

	cursor, err := collection.Find(ctx, bson.D{{Key: "agency_id", Value: agencyID}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []schemas.AppUser{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
