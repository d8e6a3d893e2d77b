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

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Emitter defines the sink a state owner posts its notifications to.
type Emitter interface {
	Emit(topic Topic, info interface{})
}

// Immediate returns an emitter that runs hooks as soon as they are emitted.
func Immediate(hk *Hooks, sender interface{}, logger kitlog.Logger) Emitter {
	return &immediate{hk: hk, sender: sender, logger: logger}
}

type immediate struct {
	hk     *Hooks
	sender interface{}
	logger kitlog.Logger
}

func (e *immediate) Emit(topic Topic, info interface{}) {
	run(context.Background(), e.hk, e.sender, e.logger, topic, info)
}

type pending struct {
	topic Topic
	info  interface{}
}

// Batch buffers emitted notifications until flushed, preserving emission order.
// It lets a state owner release its locks before any handler runs.
type Batch struct {
	hk      *Hooks
	sender  interface{}
	logger  kitlog.Logger
	pending []pending
}

// NewBatch returns a new buffering emitter over hk.
func NewBatch(hk *Hooks, sender interface{}, logger kitlog.Logger) *Batch {
	return &Batch{hk: hk, sender: sender, logger: logger}
}

// Emit enqueues a notification.
func (b *Batch) Emit(topic Topic, info interface{}) {
	b.pending = append(b.pending, pending{topic: topic, info: info})
}

// Len returns the number of buffered notifications.
func (b *Batch) Len() int { return len(b.pending) }

// Flush runs every buffered notification in emission order.
func (b *Batch) Flush(ctx context.Context) {
	for len(b.pending) > 0 {
		events := b.pending
		b.pending = nil
		for _, ev := range events {
			run(ctx, b.hk, b.sender, b.logger, ev.topic, ev.info)
		}
	}
}

func run(ctx context.Context, hk *Hooks, sender interface{}, logger kitlog.Logger, topic Topic, info interface{}) {
	_, err := hk.Run(ctx, topic, &ExecutionContext{
		Info:   info,
		Sender: sender,
	})
	if err != nil {
		level.Warn(logger).Log("msg", "hook handler failed", "kind", topic.Kind, "key", topic.Key, "err", err)
	}
}
