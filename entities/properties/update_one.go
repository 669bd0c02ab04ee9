package properties

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
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.INVALID_PROPERTY_ID_FORMAT)
		return
	}

	payload := &schemas.Property{}
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.PROPERTIES_INVALID_REQUEST_DATA)
		return
	}

	updateDoc := bson.D{}
	if payload.Address != "" {
		updateDoc = append(updateDoc, bson.E{Key: "address", Value: payload.Address})
	}
	if payload.City != "" {
		updateDoc = append(updateDoc, bson.E{Key: "city", Value: payload.City})
	}
	if payload.Type != "" {
		updateDoc = append(updateDoc, bson.E{Key: "type", Value: payload.Type})
	}
	if payload.Kind != "" {
		updateDoc = append(updateDoc, bson.E{Key: "kind", Value: payload.Kind})
	}
	if payload.Price > 0 {
		updateDoc = append(updateDoc, bson.E{Key: "price", Value: payload.Price})
	}
	if payload.Rooms > 0 {
		updateDoc = append(updateDoc, bson.E{Key: "rooms", Value: payload.Rooms})
	}
	if payload.Size > 0 {
		updateDoc = append(updateDoc, bson.E{Key: "size", Value: payload.Size})
	}
	if payload.Status != "" {
		updateDoc = append(updateDoc, bson.E{Key: "status", Value: payload.Status})
	}
	if payload.Images != nil {
		updateDoc = append(updateDoc, bson.E{Key: "images", Value: payload.Images})
	}
	if payload.Location != nil {
		updateDoc = append(updateDoc, bson.E{Key: "location", Value: payload.Location})
	}
	if payload.ExclusiveUntil != nil {
		updateDoc = append(updateDoc, bson.E{Key: "exclusive", Value: true})
		updateDoc = append(updateDoc, bson.E{Key: "exclusive_until", Value: payload.ExclusiveUntil})
	}
	if payload.Notes != "" {
		updateDoc = append(updateDoc, bson.E{Key: "notes", Value: payload.Notes})
	}
	if payload.AgentID != "" {
		updateDoc = append(updateDoc, bson.E{Key: "agent_id", Value: payload.AgentID})
	}

	if len(updateDoc) == 0 {
		utils.SendResponse(w, http.StatusBadRequest, "No fields to update", nil, 0)
		return
	}
	updateDoc = append(updateDoc, bson.E{Key: "updated_at", Value: time.Now()})

	ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
	defer cancel()

	collection, err := database.Collection(database.COLLECTION_PROPS)
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
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_UPDATE_PROPERTY_IN_MONGODB)
		return
	}
	if result.MatchedCount == 0 {
		utils.SendResponse(w, http.StatusNotFound, "Property not found", nil, 0)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", nil, 0)
}
