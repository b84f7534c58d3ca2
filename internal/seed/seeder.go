// Package seed fills the store with a synthetic study: players with a
// baseline mood, the game catalog and gaming sessions with predicted
// after-states.
package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/glebk/playmood/internal/domain"
	"github.com/glebk/playmood/internal/llm"
)

const (
	maxDaysAgo      = 30
	minDuration     = 5
	durationSpread  = 0.4
	minPlayerAge    = 18
	maxPlayerAge    = 65
	defaultPlayers  = 50
	defaultSessions = 5
)

// Options tunes a seeding run
type Options struct {
	Players           int
	SessionsPerPlayer int
	Concurrency       int
	// RandomSeed makes a run reproducible. Zero draws a fresh seed.
	RandomSeed uint64
}

// Summary reports what a run stored
type Summary struct {
	Players           int
	Games             int
	Sessions          int
	ModelOutcomes     int
	HeuristicOutcomes int
	ByGenre           []domain.GenreCount
	Transitions       []domain.TransitionCount
}

// Seeder generates and stores a synthetic data set
type Seeder struct {
	players  domain.PlayerRepository
	games    domain.GameRepository
	sessions domain.SessionRepository
	catalog  *Catalog
	client   llm.Client
	opts     Options
	logger   *zap.Logger
	now      func() time.Time
}

// New creates a Seeder. A nil client predicts every outcome with the
// heuristic table.
func New(
	players domain.PlayerRepository,
	games domain.GameRepository,
	sessions domain.SessionRepository,
	catalog *Catalog,
	client llm.Client,
	opts Options,
	logger *zap.Logger,
) *Seeder {
	if opts.Players <= 0 {
		opts.Players = defaultPlayers
	}
	if opts.SessionsPerPlayer <= 0 {
		opts.SessionsPerPlayer = defaultSessions
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		players:  players,
		games:    games,
		sessions: sessions,
		catalog:  catalog,
		client:   client,
		opts:     opts,
		logger:   logger.Named("seed"),
		now:      time.Now,
	}
}

// plannedSession holds every random draw a session needs, so outcome
// prediction can run concurrently without sharing the generator.
type plannedSession struct {
	player   *domain.Player
	game     *domain.Game
	date     time.Time
	duration int
	roll     float64
	notePick int
}

// Run clears the store and writes a fresh data set
func (s *Seeder) Run(ctx context.Context) (*Summary, error) {
	seed := s.opts.RandomSeed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	s.logger.Info("starting data generation",
		zap.Int("players", s.opts.Players),
		zap.Int("sessions_per_player", s.opts.SessionsPerPlayer),
		zap.Bool("model_outcomes", s.client != nil),
		zap.Uint64("seed", seed),
	)

	if err := s.clear(ctx); err != nil {
		return nil, err
	}

	players, err := s.createPlayers(ctx, rng)
	if err != nil {
		return nil, err
	}
	games, err := s.createGames(ctx)
	if err != nil {
		return nil, err
	}

	plan := s.planSessions(rng, players, games)
	outcomes, err := s.predict(ctx, plan)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Players: len(players), Games: len(games)}
	for i, p := range plan {
		o := outcomes[i]
		session := &domain.Session{
			PlayerID:        p.player.ID,
			GameID:          p.game.ID,
			SessionDate:     p.date,
			DurationMinutes: p.duration,
			MoodAfter:       o.After,
			Notes:           o.Notes,
		}
		if err := s.sessions.Create(ctx, session); err != nil {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}
		summary.Sessions++
		if o.FromModel {
			summary.ModelOutcomes++
		} else {
			summary.HeuristicOutcomes++
		}
	}

	if summary.ByGenre, err = s.sessions.CountByGenre(ctx); err != nil {
		return nil, fmt.Errorf("failed to count sessions by genre: %w", err)
	}
	if summary.Transitions, err = s.sessions.CountTransitions(ctx); err != nil {
		return nil, fmt.Errorf("failed to count transitions: %w", err)
	}

	s.logSummary(summary)
	return summary, nil
}

func (s *Seeder) clear(ctx context.Context) error {
	if err := s.sessions.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}
	if err := s.players.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear players: %w", err)
	}
	if err := s.games.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear games: %w", err)
	}
	return nil
}

func (s *Seeder) createPlayers(ctx context.Context, rng *rand.Rand) ([]*domain.Player, error) {
	c := s.catalog
	players := make([]*domain.Player, 0, s.opts.Players)

	for i := 0; i < s.opts.Players; i++ {
		gender := "Male"
		first := c.MaleNames[rng.IntN(len(c.MaleNames))]
		if rng.IntN(2) == 1 {
			gender = "Female"
			first = c.FemaleNames[rng.IntN(len(c.FemaleNames))]
		}

		p := &domain.Player{
			FirstName: first,
			LastName:  c.LastNames[rng.IntN(len(c.LastNames))],
			Age:       minPlayerAge + rng.IntN(maxPlayerAge-minPlayerAge+1),
			Gender:    gender,
			Baseline:  domain.MentalStates[rng.IntN(len(domain.MentalStates))],
		}
		if err := s.players.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("failed to create player: %w", err)
		}
		players = append(players, p)
	}

	s.logger.Info("players created", zap.Int("count", len(players)))
	return players, nil
}

func (s *Seeder) createGames(ctx context.Context) ([]*domain.Game, error) {
	games := make([]*domain.Game, 0, len(s.catalog.Games))
	for _, spec := range s.catalog.Games {
		g := &domain.Game{
			Name:                      spec.Name,
			Genre:                     spec.Genre,
			Type:                      spec.Type,
			Difficulty:                spec.Difficulty,
			AvgSessionDurationMinutes: spec.AvgSessionDurationMinutes,
		}
		if err := s.games.Create(ctx, g); err != nil {
			return nil, fmt.Errorf("failed to create game %s: %w", spec.Name, err)
		}
		games = append(games, g)
	}

	s.logger.Info("games created", zap.Int("count", len(games)))
	return games, nil
}

func (s *Seeder) planSessions(rng *rand.Rand, players []*domain.Player, games []*domain.Game) []plannedSession {
	perPlayer := min(s.opts.SessionsPerPlayer, len(games))
	now := s.now().UTC()
	plan := make([]plannedSession, 0, len(players)*perPlayer)

	for _, p := range players {
		for _, idx := range rng.Perm(len(games))[:perPlayer] {
			g := games[idx]
			daysAgo := rng.IntN(maxDaysAgo + 1)
			plan = append(plan, plannedSession{
				player:   p,
				game:     g,
				date:     now.AddDate(0, 0, -daysAgo),
				duration: SessionDuration(g.AvgSessionDurationMinutes, rng.Float64()),
				roll:     rng.Float64(),
				notePick: rng.IntN(1 << 16),
			})
		}
	}
	return plan
}

// SessionDuration spreads base by up to 40% either way, with u in [0,1),
// and never returns less than five minutes.
func SessionDuration(base int, u float64) int {
	spread := float64(base) * durationSpread
	d := int(float64(base) + (u*2-1)*spread)
	return max(minDuration, d)
}

func (s *Seeder) predict(ctx context.Context, plan []plannedSession) ([]Outcome, error) {
	outcomes := make([]Outcome, len(plan))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)

	for i := range plan {
		g.Go(func() error {
			o, err := s.predictOne(gctx, &plan[i])
			if err != nil {
				return err
			}
			outcomes[i] = *o
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (s *Seeder) predictOne(ctx context.Context, p *plannedSession) (*Outcome, error) {
	baseline := p.player.Baseline

	if s.client != nil {
		o, err := predictWithModel(ctx, s.client, baseline, p.game, p.duration)
		if err == nil {
			return o, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logger.Debug("model outcome unusable, using heuristics",
			zap.String("game", p.game.Name),
			zap.Error(err),
		)
	}

	after := PredictHeuristic(s.catalog, baseline, p.game, p.duration, p.roll)
	notes, err := s.catalog.Note(p.game, baseline, after, p.duration, p.notePick)
	if err != nil {
		return nil, err
	}
	return &Outcome{After: after, Notes: notes}, nil
}

func (s *Seeder) logSummary(sum *Summary) {
	s.logger.Info("data generation complete",
		zap.Int("players", sum.Players),
		zap.Int("games", sum.Games),
		zap.Int("sessions", sum.Sessions),
		zap.Int("model_outcomes", sum.ModelOutcomes),
		zap.Int("heuristic_outcomes", sum.HeuristicOutcomes),
	)
	for _, gc := range sum.ByGenre {
		s.logger.Info("sessions by genre", zap.String("genre", gc.Genre), zap.Int("sessions", gc.Count))
	}
	for _, tc := range sum.Transitions {
		s.logger.Info("mental health transition",
			zap.String("before", tc.Before.String()),
			zap.String("after", tc.After.String()),
			zap.Int("instances", tc.Count),
		)
	}
}
