package leads

import (
	"api/database"
	"api/middlewares"
	"api/schemas"
	"api/utils"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func UpdateOne(w http.ResponseWriter, r *http.Request) {
	session, ok := middlewares.SessionFromRequest(r)
	if !ok {
		utils.SendResponse(w, http.StatusUnauthorized, "Missing session", nil, 0)
		return
	}

	id, err := bson.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.INVALID_LEAD_ID_FORMAT)
		return
	}

	payload := &schemas.Lead{}
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.LEADS_INVALID_REQUEST_DATA)
		return
	}

	updateDoc := bson.D{}
	if payload.Name != "" {
		updateDoc = append(updateDoc, bson.E{Key: "name", Value: payload.Name})
	}
	if payload.Phone != "" {
		updateDoc = append(updateDoc, bson.E{Key: "phone", Value: utils.NormalizePhone(payload.Phone)})
	}
	if payload.Email != "" {
		updateDoc = append(updateDoc, bson.E{Key: "email", Value: payload.Email})
	}
	if payload.Type != "" {
		updateDoc = append(updateDoc, bson.E{Key: "type", Value: payload.Type})
	}
	if payload.Status != "" {
		updateDoc = append(updateDoc, bson.E{Key: "status", Value: payload.Status})
	}
	if payload.AgentID != "" {
		updateDoc = append(updateDoc, bson.E{Key: "agent_id", Value: payload.AgentID})
	}
	if payload.Notes != "" {
		updateDoc = append(updateDoc, bson.E{Key: "notes", Value: payload.Notes})
	}
	if payload.Requirements.DesiredCities != nil || payload.Requirements.MaxBudget != 0 ||
		payload.Requirements.MinRooms != 0 || payload.Requirements.Amenities != nil {
		updateDoc = append(updateDoc, bson.E{Key: "requirements", Value: payload.Requirements})
	}

	if len(updateDoc) == 0 {
		utils.SendResponse(w, http.StatusBadRequest, "No fields to update", nil, 0)
		return
	}
	updateDoc = append(updateDoc, bson.E{Key: "updated_at", Value: time.Now()})

	ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
	defer cancel()

	collection, err := database.Collection(database.COLLECTION_LEADS)
	if err != nil {
		utils.SendResponse(w, http.StatusBadGateway, "", nil, utils.CANNOT_CONNECT_TO_MONGODB)
		return
	}

	filter := bson.D{
		{Key: "_id", Value: id},
		{Key: "agency_id", Value: session.AgencyID},
	}
	update := bson.D{{Key: "$set", Value: updateDoc}}

	result, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_UPDATE_LEAD_IN_MONGODB)
		return
	}
	if result.MatchedCount == 0 {
		utils.SendResponse(w, http.StatusNotFound, "Lead not found", nil, 0)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", nil, 0)
}
