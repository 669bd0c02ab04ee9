package deals

import (
	"api/middlewares"
	"api/utils"
	"context"
	"net/http"

	"api/database"
)

func GetAll(w http.ResponseWriter, r *http.Request) {
	session, ok := middlewares.SessionFromRequest(r)
	if !ok {
		utils.SendResponse(w, http.StatusUnauthorized, "Missing session", nil, 0)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
	defer cancel()

	deals, err := fetchDeals(ctx, session.AgencyID)
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_FIND_DEALS_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", deals, 0)
}
