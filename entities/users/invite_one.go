package users

import (
	"api/database"
	"api/middlewares"
	"api/schemas"
	"api/utils"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type inviteRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// InviteOne creates a pending agent stub. Invites dedupe on email: inviting
// an address the agency already has is a no-op conflict, not a second stub.
// The route is admin-guarded.
func InviteOne(w http.ResponseWriter, r *http.Request) {
	session, ok := middlewares.SessionFromRequest(r)
	if !ok {
		utils.SendResponse(w, http.StatusUnauthorized, "Missing session", nil, 0)
		return
	}

	payload := inviteRequest{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.USERS_INVALID_REQUEST_DATA)
		return
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if payload.Name == "" || email == "" {
		utils.SendResponse(w, http.StatusBadRequest, "Invite requires a name and an email", nil, 0)
		return
	}

	role := schemas.ROLE_AGENT
	if payload.Role == schemas.ROLE_ADMIN {
		role = schemas.ROLE_ADMIN
	}

	ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
	defer cancel()

	collection, err := database.Collection(database.COLLECTION_USERS)
	if err != nil {
		utils.SendResponse(w, http.StatusBadGateway, "", nil, utils.CANNOT_CONNECT_TO_MONGODB)
		return
	}

	existingFilter := bson.D{
		{Key: "agency_id", Value: session.AgencyID},
		{Key: "email", Value: email},
	}
	count, err := collection.CountDocuments(ctx, existingFilter)
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_FIND_USERS_IN_MONGODB)
		return
	}
	if count > 0 {
		utils.SendResponse(w, http.StatusConflict, "An agent with this email already exists", nil, 0)
		return
	}

	agent := &schemas.AppUser{
		AgencyID:  session.AgencyID,
		Name:      payload.Name,
		Email:     email,
		Role:      role,
		Pending:   true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	result, err := collection.InsertOne(ctx, agent)
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_INSERT_USER_TO_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusCreated, "", result.InsertedID, 0)
}
