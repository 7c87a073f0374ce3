package realtime

import (
	"log"
)

// Event names pushed to dashboard and map clients.
const (
	EventNewReport       = "new-report"
	EventReportUpdated   = "report-updated"
	EventNewNotification = "new-notification"
)

type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub fans every event out to every connected client. There are no
// rooms or per-user scoping; delivery is best effort, at most once.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Event, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			log.Printf("Realtime client connected: %s (%d total)", client.id, len(h.clients))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("Realtime client disconnected: %s (%d total)", client.id, len(h.clients))
			}
		case event := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- event:
				default:
					// Slow consumer: drop the client, not the event loop.
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// Broadcast queues an event for all connected clients. It never blocks
// a request handler; if the hub's queue is full the event is dropped.
func (h *Hub) Broadcast(event string, data interface{}) {
	select {
	case h.broadcast <- Event{Event: event, Data: data}:
	default:
		log.Printf("Realtime broadcast queue full, dropping %s event", event)
	}
}
