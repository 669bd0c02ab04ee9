package middlewares

import (
	"api/database"
	"api/utils"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type contextKey string

const SessionContextKey = contextKey("session")

// Session identifies the authenticated agent and the agency the request is
// scoped to. Handlers pass these values explicitly into every query.
type Session struct {
	UserID   string `json:"user_id"`
	AgencyID string `json:"agency_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// SessionFromRequest extracts the session injected by Auth.
func SessionFromRequest(r *http.Request) (Session, bool) {
	session, ok := r.Context().Value(SessionContextKey).(Session)
	return session, ok
}

type authAPIUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Auth validates the bearer token against the external auth API, then loads
// the matching agent document to resolve role and agency.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token == "" {
			utils.SendResponse(w, http.StatusUnauthorized, "Missing authorization token", nil, 0)
			return
		}

		authURL := os.Getenv(utils.AUTH_API_URL)
		userURL := fmt.Sprintf("%s/api/user", authURL)

		req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, userURL, nil)
		if err != nil {
			utils.SendResponse(w, http.StatusInternalServerError, "Cannot build auth request", nil, 0)
			return
		}
		req.Header.Set("Authorization", token)

		client := &http.Client{}
		resp, err := client.Do(req)
		if err != nil {
			utils.SendResponse(w, http.StatusBadGateway, "Cannot reach the auth API", nil, 0)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			utils.SendResponse(w, http.StatusUnauthorized, "Invalid or expired token", nil, 0)
			return
		}

		authUser := authAPIUser{}
		err = json.NewDecoder(resp.Body).Decode(&authUser)
		if err != nil || authUser.ID == "" || authUser.Email == "" {
			utils.SendResponse(w, http.StatusUnauthorized, "Invalid user returned by the auth API", nil, 0)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
		defer cancel()

		collection, err := database.Collection(database.COLLECTION_USERS)
		if err != nil {
			utils.SendResponse(w, http.StatusBadGateway, "", nil, utils.CANNOT_CONNECT_TO_MONGODB)
			return
		}

		appUser := struct {
			ID       bson.ObjectID `bson:"_id"`
			AgencyID string        `bson:"agency_id"`
			Name     string        `bson:"name"`
			Email    string        `bson:"email"`
			Role     string        `bson:"role"`
		}{}
		filter := bson.D{{Key: "email", Value: authUser.Email}}
		if err := collection.FindOne(ctx, filter).Decode(&appUser); err != nil {
			utils.SendResponse(w, http.StatusForbidden, "No agent profile for this user", nil, 0)
			return
		}

		session := Session{
			UserID:   appUser.ID.Hex(),
			AgencyID: appUser.AgencyID,
			Name:     appUser.Name,
			Email:    appUser.Email,
			Role:     appUser.Role,
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), SessionContextKey, session)))
	})
}

// RequireAdmin guards admin-only routes. It must run after Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := SessionFromRequest(r)
		if !ok || session.Role != "admin" {
			utils.SendResponse(w, http.StatusForbidden, "Admin permission required", nil, 0)
			return
		}
		next.ServeHTTP(w, r)
	})
}
