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
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ortuman/rostersync/pkg/roster"
)

const (
	sortByID   = "id"
	sortByName = "name"
)

func (s *Server) handleGetSelf(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &selfJSON{
		ID:        s.sess.SelfID(),
		State:     s.sess.State().String(),
		Invisible: s.sess.IsInvisible(),
		Presence:  toPresenceJSON(s.sess.SelfPresence()),
		Views:     s.sess.ViewNames(),
	})
}

func (s *Server) handleGetViews(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.sess.ViewNames())
}

func (s *Server) handleGetRoster(w http.ResponseWriter, r *http.Request) {
	view := chi.URLParam(r, "view")

	sortBy := r.URL.Query().Get("sort")
	switch sortBy {
	case "":
		sortBy = sortByID
	case sortByID, sortByName:
		break
	default:
		respondError(w, http.StatusBadRequest, errors.Errorf("admin: unsupported sort key %q", sortBy))
		return
	}
	members, err := s.sess.GetRoster(r.Context(), view)
	switch {
	case err == nil:
		break
	case errors.Is(err, roster.ErrUnknownView):
		respondError(w, http.StatusNotFound, err)
		return
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		respondError(w, http.StatusServiceUnavailable, err)
		return
	default:
		level.Warn(s.logger).Log("msg", "failed to fetch roster view", "view", view, "err", err)
		respondError(w, http.StatusBadGateway, err)
		return
	}
	ret := &rosterJSON{View: view, Contacts: make([]*contactJSON, 0, len(members))}
	for _, c := range members {
		ret.Contacts = append(ret.Contacts, toContactJSON(c))
	}
	sortContacts(ret.Contacts, sortBy)

	respondJSON(w, http.StatusOK, ret)
}

func (s *Server) handleGetBlockList(w http.ResponseWriter, _ *http.Request) {
	ids := s.sess.BlockList()
	if ids == nil {
		ids = []string{}
	}
	sort.Strings(ids)
	respondJSON(w, http.StatusOK, ids)
}

func (s *Server) handleGetPlaying(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	respondJSON(w, http.StatusOK, &gameJSON{GameID: gameID, ContactIDs: nonNil(s.sess.WhoIsPlaying(gameID))})
}

func (s *Server) handleGetPlayed(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	respondJSON(w, http.StatusOK, &gameJSON{GameID: gameID, ContactIDs: nonNil(s.sess.WhoHasPlayed(gameID))})
}

func (s *Server) handleGetPopularGames(w http.ResponseWriter, r *http.Request) {
	var owned []string
	for _, v := range r.URL.Query()["owned"] {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); len(id) > 0 {
				owned = append(owned, id)
			}
		}
	}
	respondJSON(w, http.StatusOK, toGamesJSON(s.sess.PopularUnownedGames(owned)))
}

// sortContacts orders contacts by id, or by locale aware display name falling back to id.
func sortContacts(contacts []*contactJSON, sortBy string) {
	if sortBy != sortByName {
		sort.Slice(contacts, func(i, j int) bool { return contacts[i].ID < contacts[j].ID })
		return
	}
	cl := collate.New(language.Und, collate.IgnoreCase, collate.IgnoreDiacritics)
	sort.SliceStable(contacts, func(i, j int) bool {
		ni, nj := displayName(contacts[i]), displayName(contacts[j])
		if c := cl.CompareString(ni, nj); c != 0 {
			return c < 0
		}
		return contacts[i].ID < contacts[j].ID
	})
}

func displayName(c *contactJSON) string {
	if len(c.DisplayName) > 0 {
		return c.DisplayName
	}
	return c.ID
}

func nonNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, &errorJSON{Error: err.Error()})
}
