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

package roster

import (
	"sort"
	"time"
)

// GamePopularity represents a game along with the contacts currently playing it.
type GamePopularity struct {
	GameID            string   `json:"game_id"`
	PlayingContactIDs []string `json:"playing_contact_ids"`
}

// GameIndex maps game identifiers to the contacts playing them, and keeps
// a per-game record of contacts who stopped playing during the current session.
type GameIndex struct {
	playing map[string]map[string]struct{}
	current map[string]string
	played  map[string]map[string]time.Time
	nowFn   func() time.Time
}

func newGameIndex(nowFn func() time.Time) *GameIndex {
	g := &GameIndex{nowFn: nowFn}
	g.reset()
	return g
}

// WhoIsPlaying returns the sorted set of contacts currently playing gameID.
func (g *GameIndex) WhoIsPlaying(gameID string) []string {
	return sortedKeys(g.playing[gameID])
}

// WhoHasPlayed returns the sorted set of contacts who stopped playing gameID during this session.
func (g *GameIndex) WhoHasPlayed(gameID string) []string {
	played := g.played[gameID]
	ret := make([]string, 0, len(played))
	for id := range played {
		ret = append(ret, id)
	}
	sort.Strings(ret)
	return ret
}

// LastPlayed returns the time at which contactID was last seen stopping gameID.
func (g *GameIndex) LastPlayed(gameID, contactID string) (time.Time, bool) {
	tm, ok := g.played[gameID][contactID]
	return tm, ok
}

// CurrentGame returns the game contactID is playing, if any.
func (g *GameIndex) CurrentGame(contactID string) (string, bool) {
	gameID, ok := g.current[contactID]
	return gameID, ok
}

// PopularUnownedGames returns the games being played by contacts that are not in owned,
// sorted by descending player count.
func (g *GameIndex) PopularUnownedGames(owned []string) []GamePopularity {
	ownedSet := make(map[string]struct{}, len(owned))
	for _, gameID := range owned {
		ownedSet[gameID] = struct{}{}
	}
	ret := make([]GamePopularity, 0, len(g.playing))
	for gameID, players := range g.playing {
		if _, ok := ownedSet[gameID]; ok {
			continue
		}
		ret = append(ret, GamePopularity{
			GameID:            gameID,
			PlayingContactIDs: sortedKeys(players),
		})
	}
	sort.Slice(ret, func(i, j int) bool {
		ci, cj := len(ret[i].PlayingContactIDs), len(ret[j].PlayingContactIDs)
		if ci != cj {
			return ci > cj
		}
		return ret[i].GameID < ret[j].GameID
	})
	return ret
}

// reconcile moves contactID to nextGameID's live set (none if empty),
// recording a last-played stamp for the game it leaves.
func (g *GameIndex) reconcile(contactID, nextGameID string) {
	prevGameID, playing := g.current[contactID]
	if playing && prevGameID == nextGameID {
		return
	}
	if playing {
		players := g.playing[prevGameID]
		delete(players, contactID)
		if len(players) == 0 {
			delete(g.playing, prevGameID)
		}
		played := g.played[prevGameID]
		if played == nil {
			played = make(map[string]time.Time)
			g.played[prevGameID] = played
		}
		played[contactID] = g.nowFn()
		delete(g.current, contactID)
	}
	if len(nextGameID) == 0 {
		return
	}
	players := g.playing[nextGameID]
	if players == nil {
		players = make(map[string]struct{})
		g.playing[nextGameID] = players
	}
	players[contactID] = struct{}{}
	g.current[contactID] = nextGameID
}

func (g *GameIndex) reset() {
	g.playing = make(map[string]map[string]struct{})
	g.current = make(map[string]string)
	g.played = make(map[string]map[string]time.Time)
}

func sortedKeys(m map[string]struct{}) []string {
	ret := make([]string, 0, len(m))
	for k := range m {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}
