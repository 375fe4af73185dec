package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"subtrans/internal/config"
	"subtrans/internal/enhance"
	"subtrans/internal/logging"
	"subtrans/internal/workflow"
)

// Daemon owns the HTTP server and enforces single-instance execution.
type Daemon struct {
	cfg        *config.Config
	logger     *slog.Logger
	runner     *workflow.Runner
	translator workflow.Translator
	classifier *enhance.Classifier
	enhancing  bool
	api        *apiServer

	lockPath string
	lock     *flock.Flock

	running  atomic.Bool
	requests atomic.Int64
	ready    chan struct{}
	once     sync.Once

	mu        sync.RWMutex
	addr      string
	startedAt time.Time
}

// Status represents daemon runtime information.
type Status struct {
	Running         bool
	PID             int
	Bind            string
	Provider        string
	Enhancement     bool
	ClassifierReady bool
	LockFilePath    string
	StartedAt       time.Time
	Requests        int64
}

// New constructs a daemon around translator. A nil enhancer disables the
// enhancement pass.
func New(cfg *config.Config, translator workflow.Translator, enhancer workflow.Enhancer, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || translator == nil {
		return nil, errors.New("daemon requires config and translator")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	lockPath := cfg.LockPath()
	d := &Daemon{
		cfg:        cfg,
		logger:     logging.NewComponentLogger(logger, "daemon"),
		runner:     workflow.NewRunner(translator, enhancer, logger),
		translator: translator,
		classifier: enhance.SharedClassifier(),
		enhancing:  enhancer != nil,
		lockPath:   lockPath,
		lock:       flock.New(lockPath),
		ready:      make(chan struct{}),
	}
	d.api = newAPIServer(cfg, d, logger)
	return d, nil
}

// Run acquires the instance lock and serves the API until ctx is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	if !d.running.CompareAndSwap(false, true) {
		return errors.New("daemon already running")
	}
	defer d.running.Store(false)

	if err := d.cfg.EnsureDirectories(); err != nil {
		return err
	}
	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another subtrans server is already running (lock %s)", d.lockPath)
	}
	defer func() {
		if err := d.lock.Unlock(); err != nil {
			d.logger.Warn("failed to release daemon lock", logging.Error(err))
		}
	}()

	listener, err := net.Listen("tcp", d.cfg.Server.Bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}

	d.mu.Lock()
	d.addr = listener.Addr().String()
	d.startedAt = time.Now()
	d.mu.Unlock()
	d.once.Do(func() { close(d.ready) })

	d.logger.Info("subtrans server started",
		logging.String("address", listener.Addr().String()),
		logging.String("lock", d.lockPath),
		logging.String("provider", d.cfg.Translation.Provider),
		logging.Bool("enhancement", d.enhancing),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := d.api.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("api serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(d.cfg.Server.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		if err := d.api.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("api shutdown: %w", err)
		}
		return nil
	})
	if d.enhancing {
		g.Go(func() error {
			start := time.Now()
			d.classifier.Warm()
			d.logger.Debug("intent classifier ready", logging.Duration("elapsed", time.Since(start)))
			return nil
		})
	}

	err = g.Wait()
	d.logger.Info("subtrans server stopped")
	return err
}

// Ready is closed once the server is listening.
func (d *Daemon) Ready() <-chan struct{} {
	return d.ready
}

// Addr returns the listening address, or the configured bind before Run.
func (d *Daemon) Addr() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.addr != "" {
		return d.addr
	}
	return d.cfg.Server.Bind
}

// Status reports the daemon's runtime state.
func (d *Daemon) Status() Status {
	d.mu.RLock()
	startedAt := d.startedAt
	d.mu.RUnlock()
	return Status{
		Running:         d.running.Load(),
		PID:             os.Getpid(),
		Bind:            d.Addr(),
		Provider:        d.cfg.Translation.Provider,
		Enhancement:     d.enhancing,
		ClassifierReady: d.classifier.Ready(),
		LockFilePath:    d.lockPath,
		StartedAt:       startedAt,
		Requests:        d.requests.Load(),
	}
}

// Handler exposes the API routes, mainly for in-process use.
func (d *Daemon) Handler() http.Handler {
	return d.api.server.Handler
}
