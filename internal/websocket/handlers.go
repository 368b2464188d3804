package websocket

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
)

// NewUpgrader accepts requests without an Origin header (non-browser
// clients), any origin when allowed contains "*", and otherwise only the
// listed origins.
func NewUpgrader(allowedOrigins []string) *websocket.Upgrader {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[strings.TrimSpace(origin)] = true
	}

	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowed["*"] || allowed[origin]
		},
	}
}
