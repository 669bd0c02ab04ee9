package deals

import (
	"api/database"
	"api/entities/alerts"
	"api/middlewares"
	"api/schemas"
	"api/utils"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type closeDealRequest struct {
	ActualCommission float64 `json:"actual_commission"`
}

// CloseOne moves a deal to won. The stage change and the confirmed
// commission are persisted together; dropping a card on the won column
// without confirming leaves the deal untouched.
func CloseOne(w http.ResponseWriter, r *http.Request) {
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

	payload := closeDealRequest{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.DEALS_INVALID_REQUEST_DATA)
		return
	}
	if payload.ActualCommission <= 0 {
		utils.SendResponse(w, http.StatusBadRequest, "A positive commission amount must be confirmed", nil, 0)
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
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "stage", Value: schemas.DEAL_STAGE_WON},
		{Key: "actual_commission", Value: payload.ActualCommission},
		{Key: "updated_at", Value: time.Now()},
	}}}

	result, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_UPDATE_DEAL_IN_MONGODB)
		return
	}
	if result.MatchedCount == 0 {
		utils.SendResponse(w, http.StatusNotFound, "Deal not found", nil, 0)
		return
	}

	refreshBoard(ctx, session.AgencyID)

	alerts.Notify(ctx, session.AgencyID, "", schemas.ALERT_TYPE_SYSTEM,
		fmt.Sprintf("Deal closed with a commission of %.0f", payload.ActualCommission))

	utils.SendResponse(w, http.StatusOK, "", nil, 0)
}
