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
	"testing"

	kitlog "github.com/go-kit/log"
	"github.com/stretchr/testify/require"
)

var nopHandler Handler = func(ctx context.Context, execCtx *ExecutionContext) error { return nil }

func TestHooks_Add(t *testing.T) {
	// given
	h := NewHooks()
	topic := On(ContactChanged, "noelia@jackal.im")

	// when
	h.AddHook(topic, nopHandler, 10)
	h.AddHook(topic, nopHandler, 1)
	h.AddHook(topic, nopHandler, 3)

	// then
	require.Len(t, h.handlers[topic], 3)

	require.Equal(t, Priority(10), h.handlers[topic][0].p)
	require.Equal(t, Priority(3), h.handlers[topic][1].p)
	require.Equal(t, Priority(1), h.handlers[topic][2].p)
}

func TestHooks_Remove(t *testing.T) {
	// given
	h := NewHooks()
	topic := On(ViewItemUpdated, "FRIENDS")

	// when
	hnd1 := h.AddHook(topic, nopHandler, 0)
	hnd2 := h.AddHook(topic, nopHandler, 0)
	hnd3 := h.AddHook(topic, nopHandler, 0)

	hnd3.Release()
	hnd2.Release()
	hnd1.Release()
	hnd1.Release()

	// then
	require.Len(t, h.handlers[topic], 0)
}

func TestHooks_Run(t *testing.T) {
	// given
	h := NewHooks()

	// when
	var i int
	var hnd Handler = func(ctx context.Context, execCtx *ExecutionContext) error { i++; return nil }

	h.AddHook(On(ContactChanged, "c1"), hnd, 0)
	h.AddHook(On(ContactChanged, "c1"), hnd, 0)
	h.AddHook(On(ContactChanged, "c2"), hnd, 0)

	halted, err := h.Run(context.Background(), On(ContactChanged, "c1"), nil)

	// then
	require.Nil(t, err)
	require.False(t, halted)

	require.Equal(t, 2, i)
}

func TestHooks_RunAnyKey(t *testing.T) {
	// given
	h := NewHooks()

	var order []string
	h.AddHook(All(ContactRemoved), func(ctx context.Context, execCtx *ExecutionContext) error {
		order = append(order, "any:"+execCtx.Topic.Key)
		return nil
	}, HighPriority)
	h.AddHook(On(ContactRemoved, "c1"), func(ctx context.Context, execCtx *ExecutionContext) error {
		order = append(order, "exact")
		return nil
	}, DefaultPriority)

	// when
	_, _ = h.Run(context.Background(), On(ContactRemoved, "c1"), nil)
	_, _ = h.Run(context.Background(), On(ContactRemoved, "c2"), nil)
	_, _ = h.Run(context.Background(), On(ContactChanged, "c1"), nil)

	// then
	require.Equal(t, []string{"any:c1", "exact", "any:c2"}, order)
}

func TestHooks_HaltedRun(t *testing.T) {
	// given
	h := NewHooks()
	topic := On(RosterLoaded, "")

	// when
	var i int
	var hnd1 Handler = func(ctx context.Context, execCtx *ExecutionContext) error { i++; return nil }
	var hnd2 Handler = func(ctx context.Context, execCtx *ExecutionContext) error { i++; return ErrStopped }
	var hnd3 Handler = func(ctx context.Context, execCtx *ExecutionContext) error { i++; return nil }

	h.AddHook(topic, hnd1, 10)
	h.AddHook(topic, hnd2, 5)
	h.AddHook(topic, hnd3, 0)

	halted, err := h.Run(context.Background(), topic, nil)

	// then
	require.Nil(t, err)
	require.True(t, halted)

	require.Equal(t, 2, i)
}

func TestHooks_RunError(t *testing.T) {
	// given
	h := NewHooks()
	topic := On(RosterLoaded, "")
	errFoo := errors.New("foo")

	h.AddHook(topic, func(ctx context.Context, execCtx *ExecutionContext) error { return errFoo }, 0)

	// when
	halted, err := h.Run(context.Background(), topic, nil)

	// then
	require.False(t, halted)
	require.Equal(t, errFoo, err)
}

func TestSubscriptions_ReleaseAll(t *testing.T) {
	// given
	h := NewHooks()
	var subs Subscriptions

	subs.Add(h.AddHook(On(ContactChanged, "c1"), nopHandler, 0))
	subs.Add(h.AddHook(All(ViewCleared), nopHandler, 0))

	// when
	subs.ReleaseAll()

	// then
	require.Equal(t, 0, subs.Len())
	require.Len(t, h.handlers, 0)
}

func TestBatch_Flush(t *testing.T) {
	// given
	h := NewHooks()

	var got []Kind
	h.AddHook(All(ContactChanged), func(ctx context.Context, execCtx *ExecutionContext) error {
		got = append(got, execCtx.Topic.Kind)
		return nil
	}, 0)
	h.AddHook(All(ViewItemUpdated), func(ctx context.Context, execCtx *ExecutionContext) error {
		got = append(got, execCtx.Topic.Kind)
		return nil
	}, 0)

	b := NewBatch(h, nil, kitlog.NewNopLogger())

	// when
	b.Emit(On(ViewItemUpdated, "ALL"), nil)
	b.Emit(On(ContactChanged, "c1"), nil)

	require.Len(t, got, 0)
	require.Equal(t, 2, b.Len())

	b.Flush(context.Background())

	// then
	require.Equal(t, []Kind{ViewItemUpdated, ContactChanged}, got)
	require.Equal(t, 0, b.Len())
}
