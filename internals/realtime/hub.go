package realtime

import "sync"

// Message: satu update yang di-fan-out ke pengamat sebuah topic (event_id).
// Konsumen harus toleran duplikat/out-of-order antar registrasi berbeda;
// untuk registrasi yang sama urutan kirim = urutan tulis (last-write-wins).
type Message struct {
	Type    string      `json:"type"` // mis. "registration.updated"
	Topic   string      `json:"topic"`
	Payload interface{} `json:"payload"`
}

type Subscriber struct {
	C     chan Message
	topic string
}

// Hub: pub/sub in-process keyed by topic. Publish tidak pernah blocking —
// subscriber lambat kehilangan pesan paling lama, bukan menahan write path.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*Subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*Subscriber]struct{})}
}

const subscriberBuffer = 16

func (h *Hub) Subscribe(topic string) *Subscriber {
	s := &Subscriber{
		C:     make(chan Message, subscriberBuffer),
		topic: topic,
	}
	h.mu.Lock()
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[*Subscriber]struct{})
	}
	h.subs[topic][s] = struct{}{}
	h.mu.Unlock()
	return s
}

func (h *Hub) Unsubscribe(s *Subscriber) {
	h.mu.Lock()
	if set, ok := h.subs[s.topic]; ok {
		if _, ok := set[s]; ok {
			delete(set, s)
			close(s.C)
			if len(set) == 0 {
				delete(h.subs, s.topic)
			}
		}
	}
	h.mu.Unlock()
}

// Publish mengirim msg ke semua subscriber topic. Fire-and-forget.
func (h *Hub) Publish(topic string, msg Message) {
	msg.Topic = topic

	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs[topic] {
		select {
		case s.C <- msg:
		default:
			// buffer penuh: buang yang paling lama lalu coba sekali lagi
			select {
			case <-s.C:
			default:
			}
			select {
			case s.C <- msg:
			default:
			}
		}
	}
}

// SubscriberCount: jumlah pengamat aktif sebuah topic (observability/test).
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[topic])
}
