package catalogs

import (
	"api/database"
	"api/schemas"
	"api/utils"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"
)

const catalogCacheTTL = 5 * time.Minute

// publicCatalog is the catalog page payload. The agency name lets the page
// show whose listings these are without exposing the agency document.
type publicCatalog struct {
	AgencyName string                 `json:"agency_name,omitempty"`
	Catalog    *schemas.SharedCatalog `json:"catalog"`
}

// agencyNameFor is best-effort: a missing or malformed agency record leaves
// the name empty rather than failing the public link.
func agencyNameFor(ctx context.Context, agencyID string) string {
	id, err := bson.ObjectIDFromHex(agencyID)
	if err != nil {
		return ""
	}

	collection, err := database.Collection(database.COLLECTION_AGENCIES)
	if err != nil {
		return ""
	}

	agency := schemas.Agency{}
	filter := bson.D{{Key: "_id", Value: id}}
	if err := collection.FindOne(ctx, filter).Decode(&agency); err != nil {
		return ""
	}
	return agency.Name
}

// GetOneByToken serves the public catalog deep link. No session: the token
// is the whole credential. Responses are cached in redis for a few minutes
// since clients reopen and forward these links; the view counter increment
// is best-effort and never fails the request.
func GetOneByToken(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		utils.SendResponse(w, http.StatusBadRequest, "Missing catalog token", nil, 0)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
	defer cancel()

	rdb := database.RedisClient()
	cacheKey := "catalog:token:" + token

	if rdb != nil {
		if cached, err := rdb.Get(ctx, cacheKey).Result(); err == nil {
			go incrementViewCount(token)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		}
	}

	collection, err := database.Collection(database.COLLECTION_CATALOGS)
	if err != nil {
		utils.SendResponse(w, http.StatusBadGateway, "", nil, utils.CANNOT_CONNECT_TO_MONGODB)
		return
	}

	catalog := &schemas.SharedCatalog{}
	filter := bson.D{{Key: "token", Value: token}}
	if err := collection.FindOne(ctx, filter).Decode(catalog); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.SendResponse(w, http.StatusNotFound, "Catalog not found", nil, 0)
			return
		}
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_FIND_CATALOG_IN_MONGODB)
		return
	}

	if time.Now().After(catalog.ExpiresAt) {
		utils.SendResponse(w, http.StatusGone, "This catalog has expired", nil, 0)
		return
	}

	go incrementViewCount(token)

	page := publicCatalog{
		AgencyName: agencyNameFor(ctx, catalog.AgencyID),
		Catalog:    catalog,
	}
	body, err := json.Marshal(schemas.ApiResponse{Data: page})
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_FIND_CATALOG_IN_MONGODB)
		return
	}

	if rdb != nil {
		if err := rdb.Set(ctx, cacheKey, body, catalogCacheTTL).Err(); err != nil {
			utils.Log.Warn("catalog cache write failed", zap.Error(err))
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

func incrementViewCount(token string) {
	ctx, cancel := context.WithTimeout(context.Background(), database.MONGO_TIMEOUT)
	defer cancel()

	collection, err := database.Collection(database.COLLECTION_CATALOGS)
	if err != nil {
		return
	}

	filter := bson.D{{Key: "token", Value: token}}
	update := bson.D{{Key: "$inc", Value: bson.D{{Key: "view_count", Value: 1}}}}
	// Swallowed on purpose: a lost view count never breaks the deep link.
	collection.UpdateOne(ctx, filter, update)
}
