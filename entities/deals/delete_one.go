package deals

import (
	"api/database"
	"api/middlewares"
	"api/utils"
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func DeleteOne(w http.ResponseWriter, r *http.Request) {
	session, ok := middlewares.SessionFromRequest(r)
	if !ok {
		utils.SendResponse(w, http.StatusUnauthorized, "Missing session", nil, 0)
		return
	}

	id, err := bson.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.INVALID_DEAL_ID_FORMAT)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
	defer cancel()

	collection, err := database.Collection(database.COLLECTION_DEALS)
	if err != nil {
		utils.SendResponse(w, http.StatusBadGateway, "", nil, utils.CANNOT_CONNECT_TO_MONGODB)
		return
	}

	filter := bson.D{
		{Key: "_id", Value: id},
		{Key: "agency_id", Value: session.AgencyID},
	}

	result, err := collection.DeleteOne(ctx, filter)
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_DELETE_DEAL_IN_MONGODB)
		return
	}
	if result.DeletedCount == 0 {
		utils.SendResponse(w, http.StatusNotFound, "Deal not found", nil, 0)
		return
	}

	refreshBoard(ctx, session.AgencyID)

	utils.SendResponse(w, http.StatusOK, "", nil, 0)
}
