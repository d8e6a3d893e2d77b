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

package session

import (
	"context"
	"sort"

	"github.com/go-kit/log/level"
	"github.com/ortuman/rostersync/pkg/hook"
	rostermodel "github.com/ortuman/rostersync/pkg/model/roster"
)

type profileRequest struct {
	gen     uint64
	id      string
	address string
}

func (c *Controller) onContactChanged(_ context.Context, execCtx *hook.ExecutionContext) error {
	if execCtx.Sender != c {
		return nil
	}
	inf, ok := execCtx.Info.(*hook.ContactInfo)
	if !ok || inf.Previous != nil {
		return nil
	}
	req := profileRequest{
		gen:     c.generation,
		id:      inf.Contact.ID,
		address: inf.Contact.Address,
	}
	select {
	case c.profileCh <- req:
	default:
		level.Debug(c.logger).Log("msg", "profile queue full", "contact_id", req.id)
	}
	return nil
}

func (c *Controller) profileWorker() {
	for req := range c.profileCh {
		ctx, cancel := context.WithTimeout(context.Background(), c.cfg.CommandTimeout)
		p, err := c.rs.Resolve(ctx, req.address)
		cancel()
		if err != nil {
			level.Debug(c.logger).Log("msg", "failed to resolve profile", "contact_id", req.id, "err", err)
			continue
		}
		req := req
		c.rq.Run(func() {
			c.applyProfile(req, p)
		})
	}
}

func (c *Controller) applyProfile(req profileRequest, p rostermodel.Profile) {
	if req.gen != c.generation {
		return
	}
	c.mutate(func() {
		if _, ok := c.store.Get(req.id); !ok {
			return
		}
		patch := rostermodel.NewPatch().
			WithGivenName(p.GivenName).
			WithFamilyName(p.FamilyName).
			WithVoiceCapable(p.VoiceCapable)
		if len(p.DisplayName) > 0 {
			patch.WithDisplayName(p.DisplayName)
		}
		c.store.Upsert(req.id, patch)
	})
}

func sortedIDs(set map[string]struct{}) []string {
	ret := make([]string, 0, len(set))
	for id := range set {
		ret = append(ret, id)
	}
	sort.Strings(ret)
	return ret
}
