package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"api/entities/alerts"
	"api/entities/catalogs"
	"api/entities/deals"
	"api/entities/imports"
	"api/entities/leads"
	"api/entities/matchmaking"
	"api/entities/messaging"
	"api/entities/properties"
	"api/entities/reports"
	"api/entities/users"
	"api/middlewares"
	"api/utils"
)

func main() {
	utils.LoadEnvVariables()
	utils.InitLogger()

	env := os.Getenv(utils.ENV)
	if env == utils.ENV_RELEASE {
		fmt.Printf("\033[1;31;47m[WARNING] Running in PRODUCTION!\033[0m\n")
	} else {
		fmt.Printf("[INFO] Current environment: %s\n", env)
	}

	mux := http.NewServeMux()

	mux.Handle("GET /v1/leads", middlewares.Auth(http.HandlerFunc(leads.GetAll)))
	mux.Handle("GET /v1/leads/{id}", middlewares.Auth(http.HandlerFunc(leads.GetOne)))
	mux.Handle("POST /v1/leads", middlewares.Auth(http.HandlerFunc(leads.CreateOne)))
	mux.Handle("PATCH /v1/leads/{id}", middlewares.Auth(http.HandlerFunc(leads.UpdateOne)))
	mux.Handle("DELETE /v1/leads/{id}", middlewares.Auth(http.HandlerFunc(leads.DeleteOne)))
	mux.Handle("GET /v1/leads/{id}/messages", middlewares.Auth(http.HandlerFunc(leads.GetMessages)))
	mux.Handle("POST /v1/leads/{id}/messages", middlewares.Auth(http.HandlerFunc(leads.CreateMessage)))
	mux.Handle("GET /v1/leads/{id}/matches", middlewares.Auth(http.HandlerFunc(matchmaking.Run)))

	mux.Handle("GET /v1/properties", middlewares.Auth(http.HandlerFunc(properties.GetAll)))
	mux.Handle("GET /v1/properties/{id}", middlewares.Auth(http.HandlerFunc(properties.GetOne)))
	mux.Handle("POST /v1/properties", middlewares.Auth(http.HandlerFunc(properties.CreateOne)))
	mux.Handle("PATCH /v1/properties/{id}", middlewares.Auth(http.HandlerFunc(properties.UpdateOne)))
	mux.Handle("DELETE /v1/properties/{id}", middlewares.Auth(http.HandlerFunc(properties.DeleteOne)))

	mux.Handle("GET /v1/deals", middlewares.Auth(http.HandlerFunc(deals.GetAll)))
	mux.Handle("POST /v1/deals", middlewares.Auth(http.HandlerFunc(deals.CreateOne)))
	mux.Handle("PATCH /v1/deals/{id}/stage", middlewares.Auth(http.HandlerFunc(deals.UpdateOneStage)))
	mux.Handle("POST /v1/deals/{id}/close", middlewares.Auth(http.HandlerFunc(deals.CloseOne)))
	mux.Handle("DELETE /v1/deals/{id}", middlewares.Auth(http.HandlerFunc(deals.DeleteOne)))
	mux.Handle("GET /v1/deals/export", middlewares.Auth(http.HandlerFunc(deals.Export)))
	mux.Handle("/v1/ws/deals", middlewares.Auth(http.HandlerFunc(deals.BoardWebSocketHandler)))

	mux.Handle("GET /v1/users", middlewares.Auth(http.HandlerFunc(users.GetAll)))
	mux.Handle("GET /v1/users/{id}", middlewares.Auth(http.HandlerFunc(users.GetOne)))
	mux.Handle("PATCH /v1/users/{id}", middlewares.Auth(http.HandlerFunc(users.UpdateOne)))
	mux.Handle("POST /v1/users/invite", middlewares.Auth(middlewares.RequireAdmin(http.HandlerFunc(users.InviteOne))))

	mux.Handle("POST /v1/imports/preview", middlewares.Auth(http.HandlerFunc(imports.Preview)))
	mux.Handle("POST /v1/imports", middlewares.Auth(http.HandlerFunc(imports.CreateOne)))

	mux.Handle("POST /v1/catalogs", middlewares.Auth(http.HandlerFunc(catalogs.CreateOne)))
	mux.HandleFunc("GET /v1/catalog/{token}", catalogs.GetOneByToken)

	mux.Handle("GET /v1/alerts", middlewares.Auth(http.HandlerFunc(alerts.GetAll)))
	mux.Handle("PATCH /v1/alerts/{id}/read", middlewares.Auth(http.HandlerFunc(alerts.UpdateOneRead)))
	mux.Handle("/v1/ws/alerts", middlewares.Auth(http.HandlerFunc(alerts.AlertWebSocketHandler)))

	mux.Handle("POST /v1/messages/bulk", middlewares.Auth(http.HandlerFunc(messaging.SendBulk)))

	mux.Handle("GET /v1/reports/agents", middlewares.Auth(http.HandlerFunc(reports.GetAgentPerformance)))

	fmt.Printf("Server started on port %s at %s\n", os.Getenv(utils.PORT), time.Now().Format("2006-01-02 15:04:05"))
	http.ListenAndServe(fmt.Sprintf(":%s", os.Getenv(utils.PORT)), middlewares.SecurityHeaders(middlewares.Cors(mux)))
}
