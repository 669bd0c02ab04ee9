package alerts

import (
	"api/database"
	"api/middlewares"
	"api/schemas"
	"api/utils"
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// GetAll returns the agent's own alerts plus agency broadcasts, newest
// first.
func GetAll(w http.ResponseWriter, r *http.Request) {
	session, ok := middlewares.SessionFromRequest(r)
	if !ok {
		utils.SendResponse(w, http.StatusUnauthorized, "Missing session", nil, 0)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
	defer cancel()

	collection, err := database.Collection(database.COLLECTION_ALERTS)
	if err != nil {
		utils.SendResponse(w, http.StatusBadGateway, "", nil, utils.CANNOT_CONNECT_TO_MONGODB)
		return
	}

	filter := bson.D{
		{Key: "agency_id", Value: session.AgencyID},
		{Key: "$or", Value: bson.A{
			bson.D{{Key: "agent_id", Value: session.UserID}},
			bson.D{{Key: "agent_id", Value: ""}},
			bson.D{{Key: "agent_id", Value: bson.D{{Key: "$exists", Value: false}}}},
		}},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(100)

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_FIND_ALERTS_IN_MONGODB)
		return
	}
	defer cursor.Close(ctx)

	alerts := []schemas.Alert{}
	if err := cursor.All(ctx, &alerts); err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_FIND_ALERTS_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", alerts, 0)
}
