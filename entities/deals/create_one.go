package deals

import (
	"api/database"
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

type createDealRequest struct {
	schemas.Deal
	// ConfirmExtra acknowledges the warning shown when a lead already has
	// two deals.
	ConfirmExtra bool `json:"confirm_extra"`
}

// CreateOne inserts a deal after the soft business checks: a property may
// not join a second non-terminal deal, and a lead past two deals needs
// explicit confirmation. Both are read-then-check guards, not store
// constraints; two concurrent sessions can still race them.
func CreateOne(w http.ResponseWriter, r *http.Request) {
	session, ok := middlewares.SessionFromRequest(r)
	if !ok {
		utils.SendResponse(w, http.StatusUnauthorized, "Missing session", nil, 0)
		return
	}

	payload := &createDealRequest{}
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.DEALS_INVALID_REQUEST_DATA)
		return
	}

	deal := payload.Deal
	if deal.LeadID == "" || deal.PropertyID == "" {
		utils.SendResponse(w, http.StatusBadRequest, "Deal requires a lead and a property", nil, 0)
		return
	}
	if deal.Stage == "" {
		deal.Stage = schemas.DEAL_STAGE_QUALIFICATION
	}
	if !schemas.IsValidDealStage(deal.Stage) {
		utils.SendResponse(w, http.StatusBadRequest, "Unknown deal stage", nil, 0)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
	defer cancel()

	collection, err := database.Collection(database.COLLECTION_DEALS)
	if err != nil {
		utils.SendResponse(w, http.StatusBadGateway, "", nil, utils.CANNOT_CONNECT_TO_MONGODB)
		return
	}

	activeFilter := bson.D{
		{Key: "agency_id", Value: session.AgencyID},
		{Key: "property_id", Value: deal.PropertyID},
		{Key: "stage", Value: bson.D{{Key: "$nin", Value: bson.A{
			schemas.DEAL_STAGE_WON, schemas.DEAL_STAGE_LOST,
		}}}},
	}
	activeCount, err := collection.CountDocuments(ctx, activeFilter)
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_FIND_DEALS_IN_MONGODB)
		return
	}
	if activeCount > 0 {
		utils.SendResponse(w, http.StatusConflict, "This property is already linked to an active deal", nil, 0)
		return
	}

	leadFilter := bson.D{
		{Key: "agency_id", Value: session.AgencyID},
		{Key: "lead_id", Value: deal.LeadID},
	}
	leadCount, err := collection.CountDocuments(ctx, leadFilter)
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_FIND_DEALS_IN_MONGODB)
		return
	}
	if leadCount >= 2 && !payload.ConfirmExtra {
		utils.SendResponse(w, http.StatusConflict,
			fmt.Sprintf("This lead already has %d deals; confirm to add another", leadCount), nil, 0)
		return
	}

	deal.AgencyID = session.AgencyID
	deal.CreatedBy = session.UserID
	if deal.AgentID == "" {
		deal.AgentID = session.UserID
	}
	if deal.Source == "" {
		deal.Source = "manual"
	}
	deal.ActualCommission = 0
	deal.CreatedAt = time.Now()
	deal.UpdatedAt = time.Now()

	result, err := collection.InsertOne(ctx, deal)
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_INSERT_DEAL_TO_MONGODB)
		return
	}

	refreshBoard(ctx, session.AgencyID)

	utils.SendResponse(w, http.StatusCreated, "", result.InsertedID, 0)
}
