package matchmaking

import (
	"api/database"
	"api/entities/alerts"
	"api/middlewares"
	"api/schemas"
	"api/utils"
	"context"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Run matches one lead against the agency's active properties and returns
// the ranked results. Strong matches also raise an alert for the lead's
// agent so the pairing is not missed between sessions.
func Run(w http.ResponseWriter, r *http.Request) {
	session, ok := middlewares.SessionFromRequest(r)
	if !ok {
		utils.SendResponse(w, http.StatusUnauthorized, "Missing session", nil, 0)
		return
	}

	leadID, err := bson.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.INVALID_LEAD_ID_FORMAT)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
	defer cancel()

	leadsCollection, err := database.Collection(database.COLLECTION_LEADS)
	if err != nil {
		utils.SendResponse(w, http.StatusBadGateway, "", nil, utils.CANNOT_CONNECT_TO_MONGODB)
		return
	}

	lead := schemas.Lead{}
	leadFilter := bson.D{
		{Key: "_id", Value: leadID},
		{Key: "agency_id", Value: session.AgencyID},
	}
	if err := leadsCollection.FindOne(ctx, leadFilter).Decode(&lead); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.SendResponse(w, http.StatusNotFound, "Lead not found", nil, 0)
			return
		}
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_FIND_LEADS_IN_MONGODB)
		return
	}

	propsCollection, err := database.Collection(database.COLLECTION_PROPS)
	if err != nil {
		utils.SendResponse(w, http.StatusBadGateway, "", nil, utils.CANNOT_CONNECT_TO_MONGODB)
		return
	}

	propsFilter := bson.D{
		{Key: "agency_id", Value: session.AgencyID},
		{Key: "status", Value: schemas.PROPERTY_STATUS_ACTIVE},
	}
	cursor, err := propsCollection.Find(ctx, propsFilter)
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_FIND_PROPERTIES_IN_MONGODB)
		return
	}
	defer cursor.Close(ctx)

	properties := []schemas.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_FIND_PROPERTIES_IN_MONGODB)
		return
	}

	matches := ScoreProperties(lead, properties)

	for _, match := range matches {
		if match.Score < strongMatchScore {
			break
		}
		alerts.Notify(ctx, session.AgencyID, lead.AgentID, schemas.ALERT_TYPE_MATCH,
			fmt.Sprintf("New match for %s: %s, %s", lead.Name, match.Property.Address, match.Property.City))
	}

	utils.SendResponse(w, http.StatusOK, "", matches, 0)
}
