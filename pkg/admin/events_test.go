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
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/ortuman/rostersync/pkg/hook"
	rostermodel "github.com/ortuman/rostersync/pkg/model/roster"
)

func TestEventHub_Broadcast(t *testing.T) {
	// given
	hk := hook.NewHooks()
	hub, url := newTestHub(t, hk, 16)

	conn := dialEvents(t, url)
	require.Eventually(t, func() bool { return hub.clientCount() == 1 }, time.Second, 5*time.Millisecond)

	// when
	_, _ = hk.Run(context.Background(), hook.On(hook.ViewItemUpdated, "ONLINE"), &hook.ExecutionContext{
		Info: &hook.ViewInfo{
			View:    "ONLINE",
			Contact: &rostermodel.Contact{ID: "noelia@jackal.im", Relationship: rostermodel.Mutual},
		},
	})
	_, _ = hk.Run(context.Background(), hook.On(hook.RosterLoaded, ""), &hook.ExecutionContext{
		Info: &hook.RosterInfo{Count: 3},
	})

	// then
	ev1 := readEvent(t, conn)
	require.Equal(t, "view_item_updated", ev1.Kind)
	require.Equal(t, "ONLINE", ev1.Key)
	require.Equal(t, "ONLINE", ev1.View)
	require.NotNil(t, ev1.Contact)
	require.Equal(t, "noelia@jackal.im", ev1.Contact.ID)

	ev2 := readEvent(t, conn)
	require.Equal(t, "roster_loaded", ev2.Kind)
	require.NotNil(t, ev2.Count)
	require.Equal(t, 3, *ev2.Count)
}

func TestEventHub_DropsSlowClients(t *testing.T) {
	// given
	hub := newEventHub(1, kitlog.NewNopLogger())
	cl := &eventClient{sendCh: make(chan []byte, 1), closeCh: make(chan struct{})}
	require.True(t, hub.register(cl))

	// when
	slow1 := hub.enqueue([]byte("{}"))
	slow2 := hub.enqueue([]byte("{}"))

	// then
	require.Len(t, slow1, 0)
	require.Equal(t, []*eventClient{cl}, slow2)
	require.Len(t, cl.sendCh, 1)
}

func TestEventHub_Close(t *testing.T) {
	// given
	hk := hook.NewHooks()
	hub, url := newTestHub(t, hk, 16)

	conn := dialEvents(t, url)
	require.Eventually(t, func() bool { return hub.clientCount() == 1 }, time.Second, 5*time.Millisecond)

	// when
	hub.close()

	// then
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err := conn.ReadMessage()
	require.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure))
	require.Equal(t, 0, hub.clientCount())

	halted, err := hk.Run(context.Background(), hook.On(hook.RosterLoaded, ""), &hook.ExecutionContext{Info: &hook.RosterInfo{}})
	require.False(t, halted)
	require.NoError(t, err)

	require.False(t, hub.register(&eventClient{sendCh: make(chan []byte, 1), closeCh: make(chan struct{})}))
}

func newTestHub(t *testing.T, hk *hook.Hooks, queueSize int) (*eventHub, string) {
	t.Helper()

	sessMock := &sessionMock{SubscribeFunc: hk.AddHook}
	hub := newEventHub(queueSize, kitlog.NewNopLogger())
	hub.subscribe(sessMock)
	require.Len(t, sessMock.SubscribeCalls(), len(eventKinds))

	srv := httptest.NewServer(http.HandlerFunc(hub.serveWS))
	t.Cleanup(func() {
		hub.close()
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dialEvents(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) *eventJSON {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	_, b, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev eventJSON
	require.NoError(t, json.Unmarshal(b, &ev))
	return &ev
}
