package properties

import (
	"api/database"
	"api/middlewares"
	"api/schemas"
	"api/utils"
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func GetAll(w http.ResponseWriter, r *http.Request) {
	session, ok := middlewares.SessionFromRequest(r)
	if !ok {
		utils.SendResponse(w, http.StatusUnauthorized, "Missing session", nil, 0)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
	defer cancel()

	collection, err := database.Collection(database.COLLECTION_PROPS)
	if err != nil {
		utils.SendResponse(w, http.StatusBadGateway, "", nil, utils.CANNOT_CONNECT_TO_MONGODB)
		return
	}

	filter := bson.D{{Key: "agency_id", Value: session.AgencyID}}
	if status := r.URL.Query().Get("status"); status != "" {
		filter = append(filter, bson.E{Key: "status", Value: status})
	}
	if propType := r.URL.Query().Get("type"); propType != "" {
		filter = append(filter, bson.E{Key: "type", Value: propType})
	}
	if city := r.URL.Query().Get("city"); city != "" {
		filter = append(filter, bson.E{Key: "city", Value: city})
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := collection.Find(ctx, filter, opts)
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

	utils.SendResponse(w, http.StatusOK, "", properties, 0)
}
