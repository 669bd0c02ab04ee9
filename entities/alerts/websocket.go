package alerts

import (
	"api/middlewares"
	"api/schemas"
	"api/utils"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

type AlertWSMessage struct {
	Action string        `json:"action"`
	Alert  schemas.Alert `json:"alert"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsClient struct {
	conn    *websocket.Conn
	agentID string
}

var (
	wsClients = map[string]map[*wsClient]bool{}
	wsMutex   sync.Mutex
)

// broadcastAlert delivers an alert to its target agent, or to every
// connected agent of the agency when the alert is a broadcast.
func broadcastAlert(agencyID string, alert schemas.Alert) {
	msg := AlertWSMessage{Action: "alert", Alert: alert}

	wsMutex.Lock()
	defer wsMutex.Unlock()
	for client := range wsClients[agencyID] {
		if alert.AgentID != "" && alert.AgentID != client.agentID {
			continue
		}
		if err := client.conn.WriteJSON(msg); err != nil {
			client.conn.Close()
			delete(wsClients[agencyID], client)
		}
	}
}

func AlertWebSocketHandler(w http.ResponseWriter, r *http.Request) {
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

	client := &wsClient{conn: conn, agentID: session.UserID}

	wsMutex.Lock()
	if wsClients[session.AgencyID] == nil {
		wsClients[session.AgencyID] = map[*wsClient]bool{}
	}
	wsClients[session.AgencyID][client] = true
	wsMutex.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	wsMutex.Lock()
	delete(wsClients[session.AgencyID], client)
	wsMutex.Unlock()
}
