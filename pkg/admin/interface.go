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

	"github.com/ortuman/rostersync/pkg/hook"
	rostermodel "github.com/ortuman/rostersync/pkg/model/roster"
	"github.com/ortuman/rostersync/pkg/roster"
	"github.com/ortuman/rostersync/pkg/session"
)

//go:generate moq -out session.mock_test.go . rosterSession:sessionMock
type rosterSession interface {
	State() session.State
	SelfID() string
	SelfPresence() rostermodel.Presence
	IsInvisible() bool
	ViewNames() []string
	GetRoster(ctx context.Context, view string) (map[string]*rostermodel.Contact, error)
	WhoIsPlaying(gameID string) []string
	WhoHasPlayed(gameID string) []string
	PopularUnownedGames(owned []string) []roster.GamePopularity
	BlockList() []string
	Subscribe(topic hook.Topic, hnd hook.Handler, priority hook.Priority) *hook.Handle
}
