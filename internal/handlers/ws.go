package handlers

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/josetomecore/P6-Quiz/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	hub      *ws.Hub
	origins  map[string]bool
	upgrader websocket.Upgrader
}

// NewWSHandler accepts feed connections from this host and from the
// listed origins. A "*" entry is ignored here.
func NewWSHandler(hub *ws.Hub, allowedOrigins []string) *WSHandler {
	h := &WSHandler{hub: hub, origins: make(map[string]bool)}
	for _, origin := range allowedOrigins {
		if origin != "*" {
			h.origins[normalizeOrigin(origin)] = true
		}
	}
	h.upgrader = websocket.Upgrader{CheckOrigin: h.checkOrigin}
	return h
}

// checkOrigin lets through clients that send no Origin, which are not
// browsers.
func (h *WSHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}
	return h.origins[normalizeOrigin(origin)]
}

func normalizeOrigin(origin string) string {
	return strings.ToLower(strings.TrimRight(origin, "/"))
}

// HandleQuizWebSocket handles GET /ws/quizzes/:quizId, streaming the
// quiz's tip events until the client disconnects.
func (h *WSHandler) HandleQuizWebSocket(c *gin.Context) {
	quiz := loadedQuiz(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws: upgrade for quiz %d: %v", quiz.ID, err)
		return
	}

	h.hub.Subscribe(quiz.ID, conn)
	defer h.hub.Unsubscribe(quiz.ID, conn)

	// Watchers only listen; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
