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

package app

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/ortuman/rostersync/pkg/admin"
	"github.com/ortuman/rostersync/pkg/hook"
	"github.com/ortuman/rostersync/pkg/log"
	"github.com/ortuman/rostersync/pkg/profile"
	"github.com/ortuman/rostersync/pkg/scenario"
	"github.com/ortuman/rostersync/pkg/session"
	"github.com/ortuman/rostersync/pkg/shaper"
	"github.com/ortuman/rostersync/pkg/transport/xmpp"
	"github.com/ortuman/rostersync/pkg/version"
)

const (
	defaultBootstrapTimeout = time.Minute
	defaultShutdownTimeout  = time.Second * 30

	envConfigFile = "ROSTERSIM_CONFIG_FILE"
)

const usageStr = `
Usage: rostersim [options]
Simulator Options:
    --config <file>    Configuration file path
Common Options:
    --help             Show this message
    --version          Print version information
`

type starter interface {
	Start(ctx context.Context) error
}

type stopper interface {
	Stop(ctx context.Context) error
}

type startStopper interface {
	starter
	stopper
}

// App is the root data structure of the roster simulator.
type App struct {
	output io.Writer
	args   []string

	hk       *hook.Hooks
	lb       *xmpp.Loopback
	scSrv    *scenario.Server
	adapter  *xmpp.Adapter
	resolver *profile.Cached
	shapers  shaper.Shapers
	sess     *session.Controller
	adm      *admin.Server
	httpSrv  *httpServer

	starters []starter
	stoppers []stopper

	waitStopCh chan os.Signal
	readyCh    chan struct{}

	logger kitlog.Logger
}

// New makes a new App.
func New(output io.Writer, args []string) *App {
	return &App{
		output:     output,
		args:       args,
		waitStopCh: make(chan os.Signal, 1),
		readyCh:    make(chan struct{}),
	}
}

// Run starts the simulator, and blocks until a stop signal is received.
func (a *App) Run() error {
	fs := flag.NewFlagSet("rostersim", flag.ContinueOnError)
	fs.SetOutput(a.output)

	var configFile string
	var showVersion, showUsage bool

	fs.BoolVar(&showUsage, "help", false, "Show this message")
	fs.BoolVar(&showVersion, "version", false, "Print version information.")
	fs.StringVar(&configFile, "config", "config.yaml", "Configuration file path.")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(a.output, "%s\n", usageStr)
	}
	if err := fs.Parse(a.args[1:]); err != nil {
		return err
	}
	// print usage
	if showUsage {
		fs.Usage()
		return nil
	}
	// print version
	if showVersion {
		_, _ = fmt.Fprintf(a.output, "rostersim version: %v\n", version.Version)
		return nil
	}
	// if present, override config file url with env var
	if envCfgFile := os.Getenv(envConfigFile); len(envCfgFile) > 0 {
		configFile = envCfgFile
	}
	// load configuration
	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	// init logger
	if a.logger == nil {
		a.logger = log.NewDefaultLogger(cfg.Logger.Level, cfg.Logger.Format)
	}
	level.Info(a.logger).Log("msg", "rostersim is starting...",
		"version", version.Version,
		"go_ver", runtime.Version(),
		"go_os", runtime.GOOS,
		"go_arch", runtime.GOARCH,
	)
	// init hooks
	a.hk = hook.NewHooks()

	if err := a.initScenario(cfg.Scenario, cfg.Transport.UserJID); err != nil {
		return err
	}
	if err := a.initTransport(cfg.Transport); err != nil {
		return err
	}
	if err := a.initProfileResolver(cfg.Profile); err != nil {
		return err
	}
	if err := a.initShapers(cfg.Shapers); err != nil {
		return err
	}
	a.initSession(cfg.Transport.UserJID, cfg.Session)

	// init HTTP server
	a.httpSrv = newHTTPServer(cfg.HTTPPort, a.sessionReadiness, a.logger)
	a.registerStartStopper(a.httpSrv)

	// init admin server
	a.initAdminServer(cfg.Admin)

	if err := a.bootstrap(); err != nil {
		return err
	}
	close(a.readyCh)

	// ...wait for stop signal to shut down
	sig := a.waitForStopSignal()
	level.Info(a.logger).Log("msg", "received stop signal... shutting down...",
		"signal", sig.String(),
	)
	return a.shutdown()
}

func (a *App) initScenario(cfg ScenarioConfig, userJID string) error {
	sc, err := scenario.Load(cfg.File)
	if err != nil {
		return err
	}
	a.lb = xmpp.NewLoopback()

	a.scSrv, err = scenario.NewServer(sc, a.lb, userJID, a.logger)
	if err != nil {
		return err
	}
	a.registerStartStopper(&scenarioRunner{srv: a.scSrv, lb: a.lb, logger: a.logger})

	level.Info(a.logger).Log("msg", "loaded scenario",
		"file", cfg.File,
		"roster_items", len(sc.Roster),
		"events", len(sc.Events),
	)
	return nil
}

func (a *App) initTransport(cfg xmpp.Config) error {
	adapter, err := xmpp.New(a.lb, cfg, a.logger)
	if err != nil {
		return err
	}
	a.adapter = adapter
	return nil
}

func (a *App) initProfileResolver(cfg profile.Config) error {
	rs, err := profile.NewCached(a.adapter, cfg, a.logger)
	if err != nil {
		return err
	}
	a.resolver = rs
	return nil
}

func (a *App) initShapers(configs []shaper.Config) error {
	shapers, err := shaper.NewShapers(configs)
	if err != nil {
		return err
	}
	for _, cfg := range configs {
		level.Info(a.logger).Log("msg", "registered shaper configuration",
			"name", cfg.Name,
			"limit", cfg.Rate.Limit,
			"burst", cfg.Rate.Burst,
		)
	}
	a.shapers = shapers
	return nil
}

func (a *App) initSession(userJID string, cfg session.Config) {
	a.sess = session.New(userJID, a.adapter, a.resolver, a.shapers, a.hk, cfg, a.logger)

	a.hk.AddHook(hook.All(hook.SessionStateChanged), a.onSessionStateChanged, hook.DefaultPriority)
	a.hk.AddHook(hook.All(hook.RosterLoaded), a.onRosterLoaded, hook.DefaultPriority)
	a.hk.AddHook(hook.All(hook.RosterLoadFailed), a.onRosterLoaded, hook.DefaultPriority)

	a.registerStartStopper(a.sess)
}

func (a *App) initAdminServer(cfg admin.Config) {
	adm := admin.New(cfg, a.sess, a.logger)
	if adm == nil {
		return
	}
	a.adm = adm
	a.registerStartStopper(adm)
}

func (a *App) sessionReadiness() (bool, string) {
	st := a.sess.State()
	return st == session.Ready, st.String()
}

func (a *App) onSessionStateChanged(_ context.Context, execCtx *hook.ExecutionContext) error {
	inf := execCtx.Info.(*hook.SessionInfo)
	level.Info(a.logger).Log("msg", "session state changed", "from", inf.From, "to", inf.To)
	return nil
}

func (a *App) onRosterLoaded(_ context.Context, execCtx *hook.ExecutionContext) error {
	inf := execCtx.Info.(*hook.RosterInfo)
	if inf.Err != nil {
		level.Warn(a.logger).Log("msg", "roster load failed", "err", inf.Err)
		return nil
	}
	level.Info(a.logger).Log("msg", "roster loaded", "contacts", inf.Count, "blocked", len(a.sess.BlockList()))
	return nil
}

func (a *App) registerStartStopper(ss startStopper) {
	if ss == nil {
		return
	}
	a.starters = append(a.starters, ss)
	a.stoppers = append([]stopper{ss}, a.stoppers...)
}

func (a *App) bootstrap() error {
	// spin up all service subsystems
	ctx, cancel := context.WithTimeout(context.Background(), defaultBootstrapTimeout)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		// invoke all registered starters...
		for _, s := range a.starters {
			if err := s.Start(ctx); err != nil {
				errCh <- err
				return
			}
		}
		errCh <- nil
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *App) shutdown() error {
	// wait until shutdown has been completed
	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		// invoke all registered stoppers...
		for _, st := range a.stoppers {
			if err := st.Stop(ctx); err != nil {
				errCh <- err
				return
			}
		}
		errCh <- nil
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *App) waitForStopSignal() os.Signal {
	signal.Notify(a.waitStopCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	return <-a.waitStopCh
}

// scenarioRunner serves the scripted server side of the loopback stream.
type scenarioRunner struct {
	srv    *scenario.Server
	lb     *xmpp.Loopback
	cancel context.CancelFunc
	doneCh chan struct{}
	logger kitlog.Logger
}

func (r *scenarioRunner) Start(_ context.Context) error {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.doneCh = make(chan struct{})

	go func() {
		defer close(r.doneCh)
		if err := r.srv.Serve(ctx); err != nil {
			level.Error(r.logger).Log("msg", "scenario server error", "err", err)
		}
	}()
	return nil
}

func (r *scenarioRunner) Stop(ctx context.Context) error {
	r.cancel()
	if err := r.lb.Close(); err != nil {
		return err
	}
	select {
	case <-r.doneCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
