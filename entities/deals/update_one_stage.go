package deals

import (
	"api/database"
	"api/kanban"
	"api/middlewares"
	"api/schemas"
	"api/utils"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type stageChangeRequest struct {
	Stage string `json:"stage"`
}

// UpdateOneStage handles a drag-and-drop stage transition: optimistic board
// move first, remote update second, rollback on failure. Drops on the won
// column are refused here; the closing flow collects the commission.
func UpdateOneStage(w http.ResponseWriter, r *http.Request) {
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

	payload := stageChangeRequest{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.DEALS_INVALID_REQUEST_DATA)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
	defer cancel()

	board := boardFor(session.AgencyID)
	if len(board.Snapshot()) == 0 {
		// Cold board (first mutation since boot): seed it from the store.
		deals, err := fetchDeals(ctx, session.AgencyID)
		if err != nil {
			utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_FIND_DEALS_IN_MONGODB)
			return
		}
		board.ApplyRemote(deals)
	}

	version, err := board.BeginMove(id.Hex(), payload.Stage)
	switch {
	case errors.Is(err, kanban.ErrSameStage):
		utils.SendResponse(w, http.StatusOK, "", nil, 0)
		return
	case errors.Is(err, kanban.ErrCommissionRequired):
		utils.SendResponse(w, http.StatusConflict, "Closing a deal requires a confirmed commission amount", nil, 0)
		return
	case errors.Is(err, kanban.ErrInvalidStage):
		utils.SendResponse(w, http.StatusBadRequest, "Unknown deal stage", nil, 0)
		return
	case errors.Is(err, kanban.ErrTerminalStage):
		utils.SendResponse(w, http.StatusConflict, "Closed deals cannot be moved back into the pipeline", nil, 0)
		return
	case errors.Is(err, kanban.ErrUnknownDeal):
		utils.SendResponse(w, http.StatusNotFound, "Deal not found", nil, 0)
		return
	case err != nil:
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_UPDATE_DEAL_IN_MONGODB)
		return
	}

	collection, err := database.Collection(database.COLLECTION_DEALS)
	if err != nil {
		board.Rollback(id.Hex(), version)
		utils.SendResponse(w, http.StatusBadGateway, "", nil, utils.CANNOT_CONNECT_TO_MONGODB)
		return
	}

	filter := bson.D{
		{Key: "_id", Value: id},
		{Key: "agency_id", Value: session.AgencyID},
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "stage", Value: payload.Stage},
		{Key: "updated_at", Value: time.Now()},
	}}}

	result, err := collection.UpdateOne(ctx, filter, update)
	if err != nil || result.MatchedCount == 0 {
		// No retry: revert the optimistic move and surface the failure.
		board.Rollback(id.Hex(), version)
		if err == nil {
			utils.SendResponse(w, http.StatusNotFound, "Deal not found", nil, 0)
			return
		}
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_UPDATE_DEAL_IN_MONGODB)
		return
	}

	board.Confirm(id.Hex(), version)
	broadcastBoard(session.AgencyID, board.Columns())

	if payload.Stage == schemas.DEAL_STAGE_LOST {
		go notifyDealLost(session.AgencyID, id.Hex())
	}

	utils.SendResponse(w, http.StatusOK, "", nil, 0)
}
