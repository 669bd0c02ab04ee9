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
)

func CreateOne(w http.ResponseWriter, r *http.Request) {
	session, ok := middlewares.SessionFromRequest(r)
	if !ok {
		utils.SendResponse(w, http.StatusUnauthorized, "Missing session", nil, 0)
		return
	}

	lead := &schemas.Lead{}
	if err := json.NewDecoder(r.Body).Decode(lead); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.LEADS_INVALID_REQUEST_DATA)
		return
	}

	if lead.Name == "" || lead.Phone == "" {
		utils.SendResponse(w, http.StatusBadRequest, "Lead requires a name and a phone", nil, 0)
		return
	}

	lead.Phone = utils.NormalizePhone(lead.Phone)
	if lead.Type == "" {
		lead.Type = schemas.LEAD_TYPE_BUYER
	}
	if lead.Status == "" {
		lead.Status = schemas.LEAD_STATUS_NEW
	}
	lead.AgencyID = session.AgencyID
	lead.CreatedBy = session.UserID
	if lead.Source == "" {
		lead.Source = "manual"
	}
	lead.CreatedAt = time.Now()
	lead.UpdatedAt = time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
	defer cancel()

	collection, err := database.Collection(database.COLLECTION_LEADS)
	if err != nil {
		utils.SendResponse(w, http.StatusBadGateway, "", nil, utils.CANNOT_CONNECT_TO_MONGODB)
		return
	}

	result, err := collection.InsertOne(ctx, lead)
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_INSERT_LEAD_TO_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusCreated, "", result.InsertedID, 0)
}
