package leads

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

func GetAll(w http.ResponseWriter, r *http.Request) {
	session, ok := middlewares.SessionFromRequest(r)
	if !ok {
		utils.SendResponse(w, http.StatusUnauthorized, "Missing session", nil, 0)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
	defer cancel()

	collection, err := database.Collection(database.COLLECTION_LEADS)
	if err != nil {
		utils.SendResponse(w, http.StatusBadGateway, "", nil, utils.CANNOT_CONNECT_TO_MONGODB)
		return
	}

	filter := bson.D{{Key: "agency_id", Value: session.AgencyID}}
	if status := r.URL.Query().Get("status"); status != "" {
		filter = append(filter, bson.E{Key: "status", Value: status})
	}
	if leadType := r.URL.Query().Get("type"); leadType != "" {
		filter = append(filter, bson.E{Key: "type", Value: leadType})
	}
	if agentID := r.URL.Query().Get("agent_id"); agentID != "" {
		filter = append(filter, bson.E{Key: "agent_id", Value: agentID})
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_FIND_LEADS_IN_MONGODB)
		return
	}
	defer cursor.Close(ctx)

	leads := []schemas.Lead{}
	if err := cursor.All(ctx, &leads); err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_FIND_LEADS_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", leads, 0)
}
