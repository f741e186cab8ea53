package dashboard

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"pitchflow/internal/models"
	"pitchflow/logger"
)

const wsWriteWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dashboard is served on an internal address; origin checks are
	// left to the deployment's proxy.
	CheckOrigin: func(*http.Request) bool { return true },
}

type subscriber struct {
	conn *websocket.Conn
	send chan *models.GameReport
}

// gameHub fans refreshed game reports out to websocket subscribers, keyed by
// gamePk. Slow subscribers miss intermediate reports rather than blocking the
// refresh path.
type gameHub struct {
	mu     sync.Mutex
	subs   map[int]map[*subscriber]struct{}
	closed bool
	log    *logger.Log
}

func newGameHub(log *logger.Log) *gameHub {
	return &gameHub{
		subs: make(map[int]map[*subscriber]struct{}),
		log:  log,
	}
}

func (h *gameHub) subscribe(gamePk int, conn *websocket.Conn) *subscriber {
	sub := &subscriber{
		conn: conn,
		send: make(chan *models.GameReport, 4),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(sub.send)
		return sub
	}
	if h.subs[gamePk] == nil {
		h.subs[gamePk] = make(map[*subscriber]struct{})
	}
	h.subs[gamePk][sub] = struct{}{}
	return sub
}

func (h *gameHub) unsubscribe(gamePk int, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if set, ok := h.subs[gamePk]; ok {
		if _, present := set[sub]; present {
			delete(set, sub)
			close(sub.send)
		}
		if len(set) == 0 {
			delete(h.subs, gamePk)
		}
	}
}

// broadcast queues a refreshed report for every subscriber of the game. The
// send never blocks; a subscriber with a full buffer keeps its stale report.
func (h *gameHub) broadcast(gamePk int, report *models.GameReport) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs[gamePk] {
		select {
		case sub.send <- report:
		default:
		}
	}
}

func (h *gameHub) subscriberCount(gamePk int) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[gamePk])
}

func (h *gameHub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for gamePk, set := range h.subs {
		for sub := range set {
			close(sub.send)
			sub.conn.Close()
		}
		delete(h.subs, gamePk)
	}
}

// serve pumps queued reports to one connection and consumes inbound frames so
// close handshakes are noticed. It returns when the peer disconnects or the
// hub shuts down.
func (h *gameHub) serve(gamePk int, sub *subscriber) {
	done := make(chan struct{})

	go func() {
		defer close(done)
		for report := range sub.send {
			sub.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := sub.conn.WriteJSON(report); err != nil {
				h.log.WithComponent("dashboard").WithError(err).Debug("websocket write failed")
				return
			}
		}
	}()

	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			break
		}
	}

	h.unsubscribe(gamePk, sub)
	sub.conn.Close()
	<-done
}
