package ws

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func TestChatTopicOrdersPair(t *testing.T) {
	if ChatTopic(9, 2) != "chat:2_9" {
		t.Fatalf("got %q", ChatTopic(9, 2))
	}
	if ChatTopic(2, 9) != ChatTopic(9, 2) {
		t.Fatalf("topic must not depend on argument order")
	}
}

func TestCanJoin(t *testing.T) {
	cases := []struct {
		userID uint
		topic  string
		want   bool
	}{
		{7, TopicGlobal, true},
		{7, TopicPopularJobs, true},
		{7, "user:7:notifications", true},
		{7, "user:8:notifications", false},
		{7, "chat:3_7", true},
		{7, "chat:7_9", true},
		{7, "chat:3_5", false},
		{7, "chat:garbage", false},
		{7, "internal", false},
	}

	for _, tc := range cases {
		if got := canJoin(tc.userID, tc.topic); got != tc.want {
			t.Errorf("canJoin(%d, %q) = %v, want %v", tc.userID, tc.topic, got, tc.want)
		}
	}
}

func newTestServer(t *testing.T, hub *Hub, userID int) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ws", func(c *gin.Context) {
		c.Set("userID", userID)
	}, Handle(hub))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func waitForSubscribers(t *testing.T, hub *Hub, topic string, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.SubscriberCount(topic) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("topic %s never reached %d subscribers", topic, want)
}

func TestHandleDeliversPublishedPayloads(t *testing.T) {
	hub := NewHub(log.New(io.Discard, "", 0))
	go hub.Run()

	srv := newTestServer(t, hub, 7)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?topics=" + TopicGlobal

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	waitForSubscribers(t, hub, TopicGlobal, 1)

	payload := []byte(`{"type":"global_notification"}`)
	hub.Publish(TopicGlobal, payload)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, got, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("got %q, want %q", got, payload)
	}
}

func TestHandleDefaultsToOwnInboxTopic(t *testing.T) {
	hub := NewHub(log.New(io.Discard, "", 0))
	go hub.Run()

	srv := newTestServer(t, hub, 7)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	waitForSubscribers(t, hub, UserTopic(7), 1)
}

func TestHandleRejectsForeignTopics(t *testing.T) {
	hub := NewHub(log.New(io.Discard, "", 0))
	go hub.Run()

	srv := newTestServer(t, hub, 7)

	resp, err := http.Get(srv.URL + "/ws?topics=user:8:notifications")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if hub.SubscriberCount(UserTopic(8)) != 0 {
		t.Fatalf("foreign topic must have no subscribers")
	}
}

func TestHandleRequiresAuthentication(t *testing.T) {
	hub := NewHub(log.New(io.Discard, "", 0))
	go hub.Run()

	srv := newTestServer(t, hub, 0)

	resp, err := http.Get(srv.URL + "/ws")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestPublishDropsSlowConsumers(t *testing.T) {
	hub := NewHub(log.New(io.Discard, "", 0))
	go hub.Run()

	client := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.Subscribe(client, TopicPopularJobs)
	waitForSubscribers(t, hub, TopicPopularJobs, 1)

	// Nothing drains client.send, so the second delivery overflows it.
	hub.Publish(TopicPopularJobs, []byte("one"))
	hub.Publish(TopicPopularJobs, []byte("two"))

	waitForSubscribers(t, hub, TopicPopularJobs, 0)
}
