package hub

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kiryu-dev/sea-battle/internal/config"
	"github.com/kiryu-dev/sea-battle/internal/domain"
	"github.com/kiryu-dev/sea-battle/internal/usecase/match"
	"github.com/kiryu-dev/sea-battle/internal/usecase/opponent"
	"github.com/kiryu-dev/sea-battle/internal/usecase/placement"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

type useCase struct {
	game        domain.GameUseCase
	fleet       []int
	maxAttempts int
	seed        int64
	matches     map[string]domain.Match
	mu          *sync.RWMutex
	active      *atomic.Int64
	started     *atomic.Int64
	finished    *atomic.Int64
	logger      *zap.Logger
}

func New(game domain.GameUseCase, cfg config.Config, logger *zap.Logger) (*useCase, error) {
	if err := placement.Validate(cfg.Fleet); err != nil {
		return nil, errors.WithMessage(err, "validate fleet")
	}
	return &useCase{
		game:        game,
		fleet:       cfg.Fleet,
		maxAttempts: cfg.Placement.MaxAttempts,
		seed:        cfg.Opponent.Seed,
		matches:     make(map[string]domain.Match),
		mu:          &sync.RWMutex{},
		active:      atomic.NewInt64(0),
		started:     atomic.NewInt64(0),
		finished:    atomic.NewInt64(0),
		logger:      logger,
	}, nil
}

func (u *useCase) Handle(ctx context.Context, client domain.Client) error {
	matchUuid, m, err := u.createMatch()
	if err != nil {
		return errors.WithMessage(err, "create match")
	}
	defer u.removeMatch(matchUuid)
	u.logger.Info("match started",
		zap.String("match uuid", matchUuid),
		zap.String("client uuid", client.Uuid()),
	)
	if err := u.game.Play(ctx, domain.NewPlayer(matchUuid, client), m); err != nil {
		return errors.WithMessage(err, "play match")
	}
	return nil
}

func (u *useCase) Stats() domain.HubStats {
	return domain.HubStats{
		ActiveMatches:   u.active.Load(),
		StartedMatches:  u.started.Load(),
		FinishedMatches: u.finished.Load(),
	}
}

// Match looks up a live match by its uuid.
func (u *useCase) Match(matchUuid string) (domain.Match, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	m, ok := u.matches[matchUuid]
	return m, ok
}

func (u *useCase) createMatch() (string, domain.Match, error) {
	// each match owns its random source; *rand.Rand is not safe for concurrent use
	rnd := rand.New(rand.NewSource(u.nextSeed()))
	planner, err := placement.New(u.fleet, u.maxAttempts, rnd)
	if err != nil {
		return "", nil, errors.WithMessage(err, "new placement planner")
	}
	m := match.New(planner, opponent.New(rnd, u.logger), u.logger)
	if err := m.Start(); err != nil {
		return "", nil, errors.WithMessage(err, "start match")
	}
	matchUuid := uuid.NewString()
	u.mu.Lock()
	u.matches[matchUuid] = m
	u.mu.Unlock()
	u.active.Inc()
	u.started.Inc()
	return matchUuid, m, nil
}

func (u *useCase) removeMatch(matchUuid string) {
	u.mu.Lock()
	m, ok := u.matches[matchUuid]
	delete(u.matches, matchUuid)
	u.mu.Unlock()
	if !ok {
		return
	}
	u.active.Dec()
	if m.State().IsTerminal() {
		u.finished.Inc()
	}
	u.logger.Info("match closed", zap.String("match uuid", matchUuid), zap.Stringer("state", m.State()))
}

func (u *useCase) nextSeed() int64 {
	if u.seed != 0 {
		return u.seed + u.started.Load()
	}
	return time.Now().UnixNano()
}
