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

package xmpp

import (
	"sync"

	"github.com/ortuman/rostersync/pkg/transport"
)

type listener[T any] struct {
	id int
	fn T
}

// listeners keeps push handlers in registration order.
type listeners[T any] struct {
	mu    sync.RWMutex
	seq   int
	items []listener[T]
}

func (l *listeners[T]) add(fn T) transport.Subscription {
	l.mu.Lock()
	l.seq++
	id := l.seq
	l.items = append(l.items, listener[T]{id: id, fn: fn})
	l.mu.Unlock()

	var once sync.Once
	return transport.SubscriptionFunc(func() {
		once.Do(func() { l.remove(id) })
	})
}

func (l *listeners[T]) remove(id int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, item := range l.items {
		if item.id == id {
			l.items = append(l.items[:i:i], l.items[i+1:]...)
			return
		}
	}
}

func (l *listeners[T]) all() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ret := make([]T, 0, len(l.items))
	for _, item := range l.items {
		ret = append(ret, item.fn)
	}
	return ret
}

func (l *listeners[T]) len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}
