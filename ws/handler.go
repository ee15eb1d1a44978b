package ws

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// canJoin enforces topic ownership: a private inbox topic is only
// joinable by its user and a chat topic only by a participant. Global
// topics are open to any authenticated client.
func canJoin(userID uint, topic string) bool {
	switch {
	case topic == TopicGlobal || topic == TopicPopularJobs:
		return true
	case strings.HasPrefix(topic, "user:"):
		return topic == UserTopic(userID)
	case strings.HasPrefix(topic, "chat:"):
		pair := strings.TrimPrefix(topic, "chat:")
		parts := strings.SplitN(pair, "_", 2)
		if len(parts) != 2 {
			return false
		}
		a, errA := strconv.ParseUint(parts[0], 10, 32)
		b, errB := strconv.ParseUint(parts[1], 10, 32)
		if errA != nil || errB != nil {
			return false
		}
		return uint(a) == userID || uint(b) == userID
	default:
		return false
	}
}

// Handle upgrades the request and subscribes the client to the
// requested topics (?topics=a,b). Runs behind AuthMiddleware.
func Handle(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt("userID")
		if userID <= 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		var topics []string
		for _, topic := range strings.Split(c.Query("topics"), ",") {
			topic = strings.TrimSpace(topic)
			if topic == "" {
				continue
			}
			if !canJoin(uint(userID), topic) {
				c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to join topic " + topic})
				return
			}
			topics = append(topics, topic)
		}
		if len(topics) == 0 {
			topics = []string{UserTopic(uint(userID))}
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WS upgrade error | error=%v", err)
			return
		}

		client := NewClient(hub, conn)
		for _, topic := range topics {
			hub.Subscribe(client, topic)
		}
		go client.WritePump()
		go client.ReadPump()
	}
}
