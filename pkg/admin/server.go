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
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var netListen = net.Listen

// Config contains Server configuration parameters.
type Config struct {
	BindAddr       string        `fig:"bind_addr"`
	Port           int           `fig:"port" default:"15280"`
	Disabled       bool          `fig:"disabled"`
	RequestTimeout time.Duration `fig:"request_timeout" default:"10s"`
	AllowedOrigins []string      `fig:"allowed_origins"`
	EventQueueSize int           `fig:"event_queue_size" default:"64"`
}

// Server exposes a read-only HTTP view over a roster session, plus a websocket
// feed of every session hook event.
type Server struct {
	cfg    Config
	sess   rosterSession
	hub    *eventHub
	srv    *http.Server
	ln     net.Listener
	active int32
	logger kitlog.Logger
}

// New returns a new initialized admin server. It returns nil if the server has been disabled.
func New(cfg Config, sess rosterSession, logger kitlog.Logger) *Server {
	if cfg.Disabled {
		return nil
	}
	logger = kitlog.With(logger, "component", "admin")
	return &Server{
		cfg:    cfg,
		sess:   sess,
		hub:    newEventHub(cfg.EventQueueSize, logger),
		logger: logger,
	}
}

// Start starts admin server.
func (s *Server) Start(_ context.Context) error {
	addr := s.getAddress()

	ln, err := netListen("tcp", addr)
	if err != nil {
		return err
	}
	s.ln = ln
	atomic.StoreInt32(&s.active, 1)

	s.hub.subscribe(s.sess)
	s.srv = &http.Server{Handler: s.router()}

	go func() {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			if atomic.LoadInt32(&s.active) == 1 {
				level.Error(s.logger).Log("msg", "admin server error", "err", err)
			}
		}
	}()
	level.Info(s.logger).Log("msg", "started admin server", "addr", ln.Addr().String())
	return nil
}

// Stop stops admin server.
func (s *Server) Stop(ctx context.Context) error {
	atomic.StoreInt32(&s.active, 0)
	s.hub.close()

	if err := s.srv.Shutdown(ctx); err != nil {
		return err
	}
	level.Info(s.logger).Log("msg", "closed admin server", "addr", s.getAddress())
	return nil
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() string {
	if s.ln == nil {
		return s.getAddress()
	}
	return s.ln.Addr().String()
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Handle("/metrics", promhttp.HandlerFor(
		prometheus.DefaultGatherer,
		promhttp.HandlerOpts{EnableOpenMetrics: true},
	))

	// the event feed is long lived, so it stays outside the request timeout group
	r.Get("/events", s.hub.serveWS)

	r.Group(func(r chi.Router) {
		if s.cfg.RequestTimeout > 0 {
			r.Use(middleware.Timeout(s.cfg.RequestTimeout))
		}
		r.Get("/self", s.handleGetSelf)
		r.Get("/views", s.handleGetViews)
		r.Get("/roster/{view}", s.handleGetRoster)
		r.Get("/blocklist", s.handleGetBlockList)

		r.Route("/games", func(r chi.Router) {
			r.Get("/popular", s.handleGetPopularGames)
			r.Get("/{gameID}/playing", s.handleGetPlaying)
			r.Get("/{gameID}/played", s.handleGetPlayed)
		})
	})
	return r
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t0 := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		reportRequest(route, status, time.Since(t0).Seconds())
		level.Debug(s.logger).Log("msg", "served admin request", "route", route, "status", status, "req_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) getAddress() string {
	return s.cfg.BindAddr + ":" + strconv.Itoa(s.cfg.Port)
}
