package deals

import (
	"api/kanban"
	"api/middlewares"
	"api/utils"
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

type BoardWSMessage struct {
	Action  string          `json:"action"`
	Columns []kanban.Column `json:"columns,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

var (
	wsClients = map[string]map[*websocket.Conn]bool{}
	wsMutex   sync.Mutex
)

func broadcastBoard(agencyID string, columns []kanban.Column) {
	msg := BoardWSMessage{Action: "board", Columns: columns}

	wsMutex.Lock()
	defer wsMutex.Unlock()
	for client := range wsClients[agencyID] {
		if err := client.WriteJSON(msg); err != nil {
			client.Close()
			delete(wsClients[agencyID], client)
		}
	}
}

// BoardWebSocketHandler streams board snapshots for the session's agency.
// The first message is the current board; every deal mutation pushes a
// fresh one.
func BoardWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := middlewares.SessionFromRequest(r)
	if !ok {
		utils.SendResponse(w, http.StatusUnauthorized, "Missing session", nil, 0)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	wsMutex.Lock()
	if wsClients[session.AgencyID] == nil {
		wsClients[session.AgencyID] = map[*websocket.Conn]bool{}
	}
	wsClients[session.AgencyID][conn] = true
	wsMutex.Unlock()

	refreshBoard(context.Background(), session.AgencyID)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	wsMutex.Lock()
	delete(wsClients[session.AgencyID], conn)
	wsMutex.Unlock()
}
