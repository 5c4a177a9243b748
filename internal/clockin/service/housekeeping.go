package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/clockin/internal/clockin/metrics"
	"github.com/aussiebroadwan/clockin/internal/clockin/store"
)

// HousekeepingService periodically purges spent login links and dead
// refresh tokens.
type HousekeepingService struct {
	Store    store.Store
	Links    store.LinkStore
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService returns a stopped service. A non positive interval
// defaults to one hour.
func NewHousekeepingService(
	st store.Store,
	links store.LinkStore,
	logger *slog.Logger,
	m *metrics.Metrics,
	interval time.Duration,
) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	if links == nil {
		links = st.LoginLinks()
	}

	return &HousekeepingService{
		Store:    st,
		Links:    links,
		Logger:   logger,
		Metrics:  m,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the worker in the background until Stop.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until an in progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup runs one purge. Each table is independent; a failure in one does
// not stop the other.
func (s *HousekeepingService) Cleanup(ctx context.Context) {
	now := time.Now().UTC()

	links, err := s.Links.DeleteStaleLinks(ctx, now)
	if err != nil {
		s.Logger.Error("failed to delete stale login links", "error", err)
	} else {
		s.Metrics.Purged("login_links", links)
	}

	tokens, err := s.Store.RefreshTokens().DeleteStaleRefreshTokens(ctx, now)
	if err != nil {
		s.Logger.Error("failed to delete stale refresh tokens", "error", err)
	} else {
		s.Metrics.Purged("refresh_tokens", tokens)
	}

	s.Logger.Debug("housekeeping cleanup completed",
		"login_links", links,
		"refresh_tokens", tokens,
	)
}
