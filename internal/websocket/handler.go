package websocket

import (
	"log/slog"
	"net/http"

	ws "github.com/coder/websocket"
)

// FamilyResolver maps an incoming upgrade request to the family whose
// broadcasts the connection should receive. An error rejects the upgrade.
type FamilyResolver func(r *http.Request) (string, error)

// HandleWebSocket returns an HTTP handler that upgrades connections to
// WebSocket and runs them as Hub clients scoped to the resolved family.
func HandleWebSocket(hub *Hub, resolve FamilyResolver, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		familyID, err := resolve(r)
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			InsecureSkipVerify: true, // Allow connections from any origin (household LAN)
		})
		if err != nil {
			logger.Error("websocket accept", "error", err)
			return
		}

		client := NewClient(hub, conn, familyID)
		client.Run(r.Context())
	}
}
