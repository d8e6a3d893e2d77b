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

package hook

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"
)

// Priority defines hook execution priority.
type Priority int32

const (
	// LowestPriority defines lowest hook execution priority.
	LowestPriority = Priority(math.MinInt32)

	// LowPriority defines low hook execution priority.
	LowPriority = Priority(math.MinInt32 + 1000)

	// DefaultPriority defines default hook execution priority.
	DefaultPriority = Priority(0)

	// HighPriority defines high hook execution priority.
	HighPriority = Priority(math.MaxInt32 - 1000)

	// HighestPriority defines highest hook execution priority.
	HighestPriority = Priority(math.MaxInt32)
)

// AnyKey matches every key of a given hook kind.
const AnyKey = "*"

// Topic identifies a dispatch channel: an event kind optionally narrowed to a contact or view key.
type Topic struct {
	Kind Kind
	Key  string
}

// On returns the topic for kind narrowed to key.
func On(kind Kind, key string) Topic {
	return Topic{Kind: kind, Key: key}
}

// All returns the topic matching every key of kind.
func All(kind Kind) Topic {
	return Topic{Kind: kind, Key: AnyKey}
}

// Handler defines a generic hook handler function.
type Handler func(ctx context.Context, execCtx *ExecutionContext) error

// ErrStopped error is returned by a handler to halt hook execution.
var ErrStopped = errors.New("hook: execution stopped")

// ExecutionContext defines a hook execution info context.
type ExecutionContext struct {
	Topic  Topic
	Info   interface{}
	Sender interface{}
}

type handler struct {
	id uint64
	h  Handler
	p  Priority
}

// Hooks represents a set of hook handlers keyed by topic.
type Hooks struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[Topic][]handler
}

// NewHooks returns a new initialized Hooks instance.
func NewHooks() *Hooks {
	return &Hooks{
		handlers: make(map[Topic][]handler),
	}
}

// AddHook adds a new handler to a given topic providing an execution priority value.
// hnd priority may be any number (including negative). Handlers with a higher priority are executed first.
func (h *Hooks) AddHook(topic Topic, hnd Handler, priority Priority) *Handle {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID

	handlers := h.handlers[topic]
	handlers = append(handlers, handler{
		id: id, h: hnd, p: priority,
	})
	// sort by priority
	sort.SliceStable(handlers, func(i, j int) bool { return handlers[i].p > handlers[j].p })

	h.handlers[topic] = handlers
	return &Handle{hooks: h, topic: topic, id: id}
}

// RemoveHook removes a hook registered handler.
func (h *Hooks) RemoveHook(hnd *Handle) {
	if hnd == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	handlers := h.handlers[hnd.topic]
	for i, handler := range handlers {
		if handler.id != hnd.id {
			continue
		}
		handlers = append(handlers[:i:i], handlers[i+1:]...)
		if len(handlers) == 0 {
			delete(h.handlers, hnd.topic)
		} else {
			h.handlers[hnd.topic] = handlers
		}
		return
	}
}

// Run invokes all topic handlers in priority order, including the ones registered under the kind's AnyKey topic.
// If halted return value is true no more handlers are invoked.
func (h *Hooks) Run(ctx context.Context, topic Topic, execCtx *ExecutionContext) (halted bool, err error) {
	handlers := h.matching(topic)
	if len(handlers) == 0 {
		return false, nil
	}
	if execCtx == nil {
		execCtx = &ExecutionContext{}
	}
	execCtx.Topic = topic

	for _, handler := range handlers {
		err := handler.h(ctx, execCtx)
		switch {
		case err == nil:
			break
		case errors.Is(err, ErrStopped):
			return true, nil
		default:
			return false, err
		}
	}
	return false, nil
}

// matching returns a snapshot of the handlers to be run, so that handlers can add or remove hooks while running.
func (h *Hooks) matching(topic Topic) []handler {
	h.mu.RLock()
	defer h.mu.RUnlock()

	exact := h.handlers[topic]
	var wildcard []handler
	if topic.Key != AnyKey {
		wildcard = h.handlers[All(topic.Kind)]
	}
	if len(exact)+len(wildcard) == 0 {
		return nil
	}
	ret := make([]handler, 0, len(exact)+len(wildcard))
	ret = append(ret, exact...)
	ret = append(ret, wildcard...)
	sort.SliceStable(ret, func(i, j int) bool { return ret[i].p > ret[j].p })
	return ret
}

// Handle references a registered hook handler.
type Handle struct {
	hooks *Hooks
	topic Topic
	id    uint64
	once  sync.Once
}

// Topic returns handle's topic.
func (hnd *Handle) Topic() Topic { return hnd.topic }

// Release unregisters the referenced handler. Calling Release more than once is a no-op.
func (hnd *Handle) Release() {
	hnd.once.Do(func() {
		hnd.hooks.RemoveHook(hnd)
	})
}

// Subscriptions collects a set of handles to be released together on teardown.
type Subscriptions struct {
	mu      sync.Mutex
	handles []*Handle
}

// Add appends hnd to the subscription set.
func (s *Subscriptions) Add(hnd *Handle) {
	s.mu.Lock()
	s.handles = append(s.handles, hnd)
	s.mu.Unlock()
}

// Len returns the number of tracked handles.
func (s *Subscriptions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handles)
}

// ReleaseAll releases every tracked handle.
func (s *Subscriptions) ReleaseAll() {
	s.mu.Lock()
	handles := s.handles
	s.handles = nil
	s.mu.Unlock()

	for _, hnd := range handles {
		hnd.Release()
	}
}
