package catalogs

import (
	"api/database"
	"api/middlewares"
	"api/schemas"
	"api/utils"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const catalogTTL = 30 * 24 * time.Hour

type createCatalogRequest struct {
	LeadID      string   `json:"lead_id"`
	PropertyIDs []string `json:"property_ids"`
}

type createCatalogResponse struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

// CreateOne snapshots the selected properties into a catalog a client can
// open without logging in.
func CreateOne(w http.ResponseWriter, r *http.Request) {
	session, ok := middlewares.SessionFromRequest(r)
	if !ok {
		utils.SendResponse(w, http.StatusUnauthorized, "Missing session", nil, 0)
		return
	}

	payload := createCatalogRequest{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.CATALOGS_INVALID_REQUEST_DATA)
		return
	}
	if payload.LeadID == "" || len(payload.PropertyIDs) == 0 {
		utils.SendResponse(w, http.StatusBadRequest, "Catalog requires a lead and at least one property", nil, 0)
		return
	}

	ids := make([]bson.ObjectID, 0, len(payload.PropertyIDs))
	for _, raw := range payload.PropertyIDs {
		id, err := bson.ObjectIDFromHex(raw)
		if err != nil {
			utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.INVALID_PROPERTY_ID_FORMAT)
			return
		}
		ids = append(ids, id)
	}

	ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
	defer cancel()

	propsCollection, err := database.Collection(database.COLLECTION_PROPS)
	if err != nil {
		utils.SendResponse(w, http.StatusBadGateway, "", nil, utils.CANNOT_CONNECT_TO_MONGODB)
		return
	}

	filter := bson.D{
		{Key: "agency_id", Value: session.AgencyID},
		{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}},
	}
	cursor, err := propsCollection.Find(ctx, filter)
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
	if len(properties) == 0 {
		utils.SendResponse(w, http.StatusNotFound, "No matching properties", nil, 0)
		return
	}

	snapshots := make([]schemas.CatalogProperty, 0, len(properties))
	for _, property := range properties {
		snapshots = append(snapshots, schemas.CatalogProperty{
			PropertyID: property.ID.Hex(),
			Address:    property.Address,
			City:       property.City,
			Type:       property.Type,
			Kind:       property.Kind,
			Price:      property.Price,
			Rooms:      property.Rooms,
			Size:       property.Size,
			Images:     property.Images,
		})
	}

	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	catalog := &schemas.SharedCatalog{
		AgencyID:   session.AgencyID,
		LeadID:     payload.LeadID,
		Token:      token,
		Properties: snapshots,
		ExpiresAt:  time.Now().Add(catalogTTL),
		CreatedBy:  session.UserID,
		CreatedAt:  time.Now(),
	}

	catalogsCollection, err := database.Collection(database.COLLECTION_CATALOGS)
	if err != nil {
		utils.SendResponse(w, http.StatusBadGateway, "", nil, utils.CANNOT_CONNECT_TO_MONGODB)
		return
	}
	if _, err := catalogsCollection.InsertOne(ctx, catalog); err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_INSERT_CATALOG_TO_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusCreated, "", createCatalogResponse{
		Token: token,
		URL:   fmt.Sprintf("/catalog/%s", token),
	}, 0)
}
