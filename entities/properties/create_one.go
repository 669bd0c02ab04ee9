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
)

func CreateOne(w http.ResponseWriter, r *http.Request) {
	session, ok := middlewares.SessionFromRequest(r)
	if !ok {
		utils.SendResponse(w, http.StatusUnauthorized, "Missing session", nil, 0)
		return
	}

	property := &schemas.Property{}
	if err := json.NewDecoder(r.Body).Decode(property); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.PROPERTIES_INVALID_REQUEST_DATA)
		return
	}

	if property.Address == "" || property.Price <= 0 {
		utils.SendResponse(w, http.StatusBadRequest, "Property requires an address and a positive price", nil, 0)
		return
	}

	if property.Type == "" {
		property.Type = schemas.PROPERTY_TYPE_SALE
	}
	if property.Kind == "" {
		property.Kind = "apartment"
	}
	if property.Status == "" {
		property.Status = schemas.PROPERTY_STATUS_ACTIVE
	}
	property.OwnerPhone = utils.NormalizePhone(property.OwnerPhone)
	property.AgencyID = session.AgencyID
	property.CreatedBy = session.UserID
	if property.AgentID == "" {
		property.AgentID = session.UserID
	}
	if property.Source == "" {
		property.Source = "manual"
	}
	property.CreatedAt = time.Now()
	property.UpdatedAt = time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
	defer cancel()

	collection, err := database.Collection(database.COLLECTION_PROPS)
	if err != nil {
		utils.SendResponse(w, http.StatusBadGateway, "", nil, utils.CANNOT_CONNECT_TO_MONGODB)
		return
	}

	result, err := collection.InsertOne(ctx, property)
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_INSERT_PROPERTY_TO_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusCreated, "", result.InsertedID, 0)
}
