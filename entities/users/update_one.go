package users

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

// UpdateOne edits an agent profile. Agents may edit themselves; changing
// someone else, or a role, takes an admin.
func UpdateOne(w http.ResponseWriter, r *http.Request) {
	session, ok := middlewares.SessionFromRequest(r)
	if !ok {
		utils.SendResponse(w, http.StatusUnauthorized, "Missing session", nil, 0)
		return
	}

	id, err := bson.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.INVALID_USER_ID_FORMAT)
		return
	}

	payload := &schemas.AppUser{}
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.USERS_INVALID_REQUEST_DATA)
		return
	}

	if session.Role != schemas.ROLE_ADMIN {
		if id.Hex() != session.UserID {
			utils.SendResponse(w, http.StatusForbidden, "Admin permission required", nil, 0)
			return
		}
		if payload.Role != "" {
			utils.SendResponse(w, http.StatusForbidden, "Only an admin can change roles", nil, 0)
			return
		}
	}

	updateDoc := bson.D{}
	if payload.Name != "" {
		updateDoc = append(updateDoc, bson.E{Key: "name", Value: payload.Name})
	}
	if payload.Phone != "" {
		updateDoc = append(updateDoc, bson.E{Key: "phone", Value: utils.NormalizePhone(payload.Phone)})
	}
	if payload.Role == schemas.ROLE_ADMIN || payload.Role == schemas.ROLE_AGENT {
		updateDoc = append(updateDoc, bson.E{Key: "role", Value: payload.Role})
	}
	if payload.Goals != nil {
		updateDoc = append(updateDoc, bson.E{Key: "goals", Value: payload.Goals})
	}

	if len(updateDoc) == 0 {
		utils.SendResponse(w, http.StatusBadRequest, "No fields to update", nil, 0)
		return
	}
	updateDoc = append(updateDoc, bson.E{Key: "updated_at", Value: time.Now()})

	ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
	defer cancel()

	collection, err := database.Collection(database.COLLECTION_USERS)
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
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_UPDATE_USER_IN_MONGODB)
		return
	}
	if result.MatchedCount == 0 {
		utils.SendResponse(w, http.StatusNotFound, "Agent not found", nil, 0)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", nil, 0)
}
