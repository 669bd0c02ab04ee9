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
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// GetMessages returns the conversation history of one lead, oldest first.
func GetMessages(w http.ResponseWriter, r *http.Request) {
	session, ok := middlewares.SessionFromRequest(r)
	if !ok {
		utils.SendResponse(w, http.StatusUnauthorized, "Missing session", nil, 0)
		return
	}

	leadID := r.PathValue("id")
	if _, err := bson.ObjectIDFromHex(leadID); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.INVALID_LEAD_ID_FORMAT)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
	defer cancel()

	collection, err := database.Collection(database.COLLECTION_MESSAGES)
	if err != nil {
		utils.SendResponse(w, http.StatusBadGateway, "", nil, utils.CANNOT_CONNECT_TO_MONGODB)
		return
	}

	filter := bson.D{
		{Key: "agency_id", Value: session.AgencyID},
		{Key: "lead_id", Value: leadID},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_FIND_MESSAGES_IN_MONGODB)
		return
	}
	defer cursor.Close(ctx)

	messages := []schemas.LeadMessage{}
	if err := cursor.All(ctx, &messages); err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_FIND_MESSAGES_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", messages, 0)
}

// CreateMessage appends one message to a lead's conversation history.
func CreateMessage(w http.ResponseWriter, r *http.Request) {
	session, ok := middlewares.SessionFromRequest(r)
	if !ok {
		utils.SendResponse(w, http.StatusUnauthorized, "Missing session", nil, 0)
		return
	}

	leadID := r.PathValue("id")
	if _, err := bson.ObjectIDFromHex(leadID); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.INVALID_LEAD_ID_FORMAT)
		return
	}

	message := &schemas.LeadMessage{}
	if err := json.NewDecoder(r.Body).Decode(message); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.MESSAGES_INVALID_REQUEST_DATA)
		return
	}
	if message.Body == "" {
		utils.SendResponse(w, http.StatusBadRequest, "Message body is required", nil, 0)
		return
	}

	message.AgencyID = session.AgencyID
	message.LeadID = leadID
	message.AgentID = session.UserID
	if message.Direction == "" {
		message.Direction = "outbound"
	}
	message.CreatedAt = time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
	defer cancel()

	collection, err := database.Collection(database.COLLECTION_MESSAGES)
	if err != nil {
		utils.SendResponse(w, http.StatusBadGateway, "", nil, utils.CANNOT_CONNECT_TO_MONGODB)
		return
	}

	if _, err := collection.InsertOne(ctx, message); err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_INSERT_MESSAGE_TO_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusCreated, "", nil, 0)
}
