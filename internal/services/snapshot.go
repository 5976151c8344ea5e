package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/leads-dashboard/internal/dto"
	"github.com/GregMSThompson/leads-dashboard/internal/models"
	"github.com/GregMSThompson/leads-dashboard/pkg/logger"
)

// leadFeed is the upstream source of lead rows.
type leadFeed interface {
	FetchLeads(ctx context.Context) ([]models.Lead, error)
}

// Snapshot is everything derived from one successful fetch.
type Snapshot struct {
	RefreshID   string
	RefreshedAt time.Time
	Leads       []models.Lead
	Stats       dto.DashboardStats
	Funnel      []dto.FunnelStep
	FollowUps   dto.FollowUpStats
	Charts      dto.ChartData
}

// BuildSnapshot recomputes every aggregate from leads.
func BuildSnapshot(leads []models.Lead, now time.Time) *Snapshot {
	if leads == nil {
		leads = []models.Lead{}
	}
	stats := ComputeStats(leads)
	return &Snapshot{
		RefreshedAt: now,
		Leads:       leads,
		Stats:       stats,
		Funnel:      ComputeFunnel(stats),
		FollowUps:   ComputeFollowUps(leads, now),
		Charts:      ComputeChartData(leads),
	}
}

type snapshotService struct {
	feed leadFeed
	now  func() time.Time

	issued   atomic.Uint64
	inFlight atomic.Int32

	mu      sync.RWMutex
	current *Snapshot
	lastErr error
}

func NewSnapshotService(feed leadFeed, now func() time.Time) *snapshotService {
	if now == nil {
		now = time.Now
	}
	return &snapshotService{feed: feed, now: now}
}

// Refresh fetches the feed and replaces the snapshot. Each call takes a new
// token; a result is applied only if no newer refresh has started since,
// otherwise it is dropped. Feed errors are returned and recorded for State,
// and the previous snapshot stays in place. A fetch that fails because ctx
// was cancelled is discarded without touching State and gives its token back.
func (s *snapshotService) Refresh(ctx context.Context) error {
	token := s.issued.Add(1)
	refreshID := uuid.NewString()
	log, ctx := logger.With(ctx, "refresh_id", refreshID, "token", token)

	s.inFlight.Add(1)
	defer s.inFlight.Add(-1)

	started := s.now()
	leads, err := s.feed.FetchLeads(ctx)
	if err != nil {
		if ctx.Err() != nil {
			s.withdraw(token)
			log.Debug("cancelled lead refresh discarded", "error", err)
			return err
		}
		if s.apply(token, func() { s.lastErr = err }) {
			log.Warn("lead refresh failed", "error", err)
		} else {
			log.Debug("stale lead refresh failure discarded", "error", err)
		}
		return err
	}

	snap := BuildSnapshot(leads, s.now())
	snap.RefreshID = refreshID

	if !s.apply(token, func() {
		s.current = snap
		s.lastErr = nil
	}) {
		log.Debug("stale lead refresh discarded", "leads", len(leads))
		return nil
	}

	log.Info("lead snapshot refreshed",
		"leads", len(leads),
		"duration_ms", snap.RefreshedAt.Sub(started).Milliseconds())
	return nil
}

func (s *snapshotService) apply(token uint64, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.issued.Load() {
		return false
	}
	fn()
	return true
}

// withdraw returns token if nothing newer was issued, so an older refresh
// still in flight can be applied.
func (s *snapshotService) withdraw(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued.CompareAndSwap(token, token-1)
}

// Run refreshes immediately and then every interval until ctx is done.
func (s *snapshotService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		_ = s.Refresh(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Current returns the latest applied snapshot, nil before the first success.
func (s *snapshotService) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Leads returns the rows of the current snapshot.
func (s *snapshotService) Leads() []models.Lead {
	if snap := s.Current(); snap != nil {
		return snap.Leads
	}
	return []models.Lead{}
}

func (s *snapshotService) State() dto.DashboardState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := dto.DashboardState{Refreshing: s.inFlight.Load() > 0}
	if s.current != nil {
		refreshed := s.current.RefreshedAt
		state.LastRefresh = &refreshed
		state.RefreshID = s.current.RefreshID
		state.LeadCount = len(s.current.Leads)
	}

	switch {
	case s.lastErr != nil:
		state.Status = dto.StatusError
		state.Error = s.lastErr.Error()
	case s.current == nil:
		state.Status = dto.StatusLoading
	case len(s.current.Leads) == 0:
		state.Status = dto.StatusEmpty
	default:
		state.Status = dto.StatusPopulated
	}
	return state
}

// Dashboard assembles the dashboard payload from the current snapshot.
func (s *snapshotService) Dashboard(ctx context.Context) dto.DashboardResponse {
	snap := s.Current()
	if snap == nil {
		snap = BuildSnapshot(nil, s.now())
	}
	return dto.DashboardResponse{
		State:     s.State(),
		Stats:     snap.Stats,
		Funnel:    snap.Funnel,
		FollowUps: snap.FollowUps,
		Charts:    snap.Charts,
	}
}
