package ws

import (
	"fmt"
	"log"
	"sync"
)

// Topic names used across the API. Missed deliveries (client offline,
// slow reader) are permanently lost, not queued.
const (
	TopicGlobal      = "global_notifications"
	TopicPopularJobs = "popular_jobs"
)

func UserTopic(userID uint) string {
	return fmt.Sprintf("user:%d:notifications", userID)
}

// ChatTopic orders the pair so both participants land on one topic.
func ChatTopic(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("chat:%d_%d", a, b)
}

type subscription struct {
	client *Client
	topic  string
}

type publication struct {
	topic   string
	payload []byte
}

// Hub tracks clients per topic and fans published payloads out to the
// current subscribers. Publish never blocks the caller.
type Hub struct {
	topics      map[string]map[*Client]bool
	subscribe   chan subscription
	unsubscribe chan *Client
	publish     chan publication
	mutex       sync.RWMutex
	logger      *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		topics:      make(map[string]map[*Client]bool),
		subscribe:   make(chan subscription, 128),
		unsubscribe: make(chan *Client, 128),
		publish:     make(chan publication, 1024),
		logger:      logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case sub := <-h.subscribe:
			if sub.client == nil || sub.topic == "" {
				continue
			}
			h.mutex.Lock()
			clients, ok := h.topics[sub.topic]
			if !ok {
				clients = make(map[*Client]bool)
				h.topics[sub.topic] = clients
			}
			clients[sub.client] = true
			h.mutex.Unlock()

		case client := <-h.unsubscribe:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			closed := false
			for topic, clients := range h.topics {
				if clients[client] {
					delete(clients, client)
					closed = true
					if len(clients) == 0 {
						delete(h.topics, topic)
					}
				}
			}
			h.mutex.Unlock()
			if closed {
				close(client.send)
			}

		case pub := <-h.publish:
			h.mutex.RLock()
			snapshot := make([]*Client, 0, len(h.topics[pub.topic]))
			for c := range h.topics[pub.topic] {
				snapshot = append(snapshot, c)
			}
			h.mutex.RUnlock()

			for _, client := range snapshot {
				select {
				case client.send <- pub.payload:
				default:
					// Slow consumer: drop it rather than stall the hub.
					h.Unregister(client)
				}
			}
		}
	}
}

func (h *Hub) Subscribe(client *Client, topic string) {
	if h == nil {
		return
	}
	h.subscribe <- subscription{client: client, topic: topic}
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	select {
	case h.unsubscribe <- client:
	default:
	}
}

// Publish queues payload for every subscriber of topic and returns
// immediately. Publishing to a topic with no subscribers is a no-op.
func (h *Hub) Publish(topic string, payload []byte) {
	if h == nil {
		return
	}
	select {
	case h.publish <- publication{topic: topic, payload: payload}:
	default:
		if h.logger != nil {
			h.logger.Printf("WS publish dropped | topic=%s reason=buffer_full", topic)
		}
	}
}

// SubscriberCount reports the current subscriber count for a topic.
func (h *Hub) SubscriberCount(topic string) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.topics[topic])
}
