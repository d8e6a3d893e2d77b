// Copyright 2022 The jackal Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gorilla/websocket"

	"github.com/ortuman/rostersync/pkg/hook"
)

const (
	eventWriteTimeout = 5 * time.Second
	defaultQueueSize  = 64
)

var eventKinds = []hook.Kind{
	hook.ContactChanged,
	hook.ContactRemoved,
	hook.ViewItemUpdated,
	hook.ViewItemRemoved,
	hook.ViewCleared,
	hook.SelfPresenceChanged,
	hook.AcceptanceConfirmed,
	hook.AcceptanceFailed,
	hook.RosterLoaded,
	hook.RosterLoadFailed,
	hook.BlockListChanged,
	hook.SessionStateChanged,
}

type eventClient struct {
	conn    *websocket.Conn
	sendCh  chan []byte
	closeCh chan struct{}
	once    sync.Once
}

func (c *eventClient) close() {
	c.once.Do(func() { close(c.closeCh) })
}

// eventHub fans out session hook events to websocket clients. Clients that
// fall behind their queue capacity are disconnected rather than blocking
// the session dispatch goroutine.
type eventHub struct {
	queueSize int
	upgrader  websocket.Upgrader
	subs      hook.Subscriptions
	logger    kitlog.Logger

	mu      sync.RWMutex
	clients map[*eventClient]struct{}
	closed  bool
}

func newEventHub(queueSize int, logger kitlog.Logger) *eventHub {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &eventHub{
		queueSize: queueSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[*eventClient]struct{}),
		logger:  logger,
	}
}

func (h *eventHub) subscribe(sess rosterSession) {
	for _, kind := range eventKinds {
		h.subs.Add(sess.Subscribe(hook.All(kind), h.onEvent, hook.LowestPriority))
	}
}

func (h *eventHub) close() {
	h.subs.ReleaseAll()

	h.mu.Lock()
	h.closed = true
	clients := h.clients
	h.clients = make(map[*eventClient]struct{})
	h.mu.Unlock()

	reportEventClients(-float64(len(clients)))
	for cl := range clients {
		cl.close()
	}
}

func (h *eventHub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *eventHub) onEvent(_ context.Context, execCtx *hook.ExecutionContext) error {
	b, err := json.Marshal(toEventJSON(execCtx))
	if err != nil {
		return err
	}
	h.broadcast(b)
	return nil
}

func (h *eventHub) broadcast(b []byte) {
	for _, cl := range h.enqueue(b) {
		level.Warn(h.logger).Log("msg", "dropping slow event client", "remote_addr", cl.conn.RemoteAddr().String())
		reportDroppedEventClient()
		h.unregister(cl)
	}
}

// enqueue hands b over to every client queue, returning the clients whose queue was full.
func (h *eventHub) enqueue(b []byte) []*eventClient {
	var slow []*eventClient

	h.mu.RLock()
	defer h.mu.RUnlock()
	for cl := range h.clients {
		select {
		case cl.sendCh <- b:
		default:
			slow = append(slow, cl)
		}
	}
	return slow
}

func (h *eventHub) register(cl *eventClient) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[cl] = struct{}{}
	reportEventClients(1)
	return true
}

func (h *eventHub) unregister(cl *eventClient) {
	h.mu.Lock()
	_, ok := h.clients[cl]
	delete(h.clients, cl)
	h.mu.Unlock()

	if ok {
		reportEventClients(-1)
	}
	cl.close()
}

func (h *eventHub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		level.Warn(h.logger).Log("msg", "failed to upgrade event feed connection", "err", err)
		return
	}
	cl := &eventClient{
		conn:    conn,
		sendCh:  make(chan []byte, h.queueSize),
		closeCh: make(chan struct{}),
	}
	if !h.register(cl) {
		_ = conn.Close()
		return
	}
	level.Debug(h.logger).Log("msg", "event client connected", "remote_addr", conn.RemoteAddr().String())

	go h.readLoop(cl)
	h.writeLoop(cl)
}

// readLoop discards client messages and detects peer disconnection.
func (h *eventHub) readLoop(cl *eventClient) {
	defer h.unregister(cl)
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *eventHub) writeLoop(cl *eventClient) {
	defer func() {
		h.unregister(cl)
		_ = cl.conn.Close()
		level.Debug(h.logger).Log("msg", "event client disconnected", "remote_addr", cl.conn.RemoteAddr().String())
	}()
	for {
		select {
		case b := <-cl.sendCh:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(eventWriteTimeout))
			if err := cl.conn.WriteMessage(websocket.TextMessage, b); err != nil {
				return
			}
		case <-cl.closeCh:
			_ = cl.conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(eventWriteTimeout),
			)
			return
		}
	}
}
