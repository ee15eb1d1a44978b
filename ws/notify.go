package ws

import (
	"encoding/json"
	"sync/atomic"
)

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

func DefaultHub() *Hub {
	return defaultHub.Load()
}

// PublishJSON marshals an envelope of the form {"type": typ, ...fields}
// and publishes it on topic. Best-effort: marshal failures and a
// missing hub are silently dropped.
func PublishJSON(topic, typ string, fields map[string]interface{}) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	envelope := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		envelope[k] = v
	}
	envelope["type"] = typ

	payload, err := json.Marshal(envelope)
	if err != nil {
		return
	}
	h.Publish(topic, payload)
}
