package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/glebk/playmood/internal/domain"
	"github.com/glebk/playmood/internal/impact"
	"github.com/glebk/playmood/internal/observability"
)

// Narrator produces the narrative part of an analysis
type Narrator interface {
	Generate(ctx context.Context, report *impact.Report) (*domain.Narrative, error)
}

// ImpactPercentages is the normalized impact split of an analysis
type ImpactPercentages struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

// Analysis is the full answer for one game
type Analysis struct {
	GameName           string            `json:"game_name"`
	Summary            string            `json:"summary"`
	MentalHealthImpact ImpactPercentages `json:"mental_health_impact"`
	Recommendations    []string          `json:"recommendations"`
	Charts             []impact.Chart    `json:"charts"`
	NoData             bool              `json:"no_data"`
}

// AnalysisService handles business logic for game analyses
type AnalysisService struct {
	gameRepo    domain.GameRepository
	sessionRepo domain.SessionRepository
	narrator    Narrator
	metrics     *observability.Metrics
	logger      *zap.Logger
}

// NewAnalysisService creates a new AnalysisService
func NewAnalysisService(
	gameRepo domain.GameRepository,
	sessionRepo domain.SessionRepository,
	narrator Narrator,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *AnalysisService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalysisService{
		gameRepo:    gameRepo,
		sessionRepo: sessionRepo,
		narrator:    narrator,
		metrics:     metrics,
		logger:      logger.Named("analysis"),
	}
}

// ListGames returns every catalog game name in alphabetical order
func (s *AnalysisService) ListGames(ctx context.Context) ([]string, error) {
	games, err := s.gameRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	names := make([]string, 0, len(games))
	for _, g := range games {
		names = append(names, g.Name)
	}
	sort.Strings(names)
	return names, nil
}

// Games returns every catalog game ordered by name
func (s *AnalysisService) Games(ctx context.Context) ([]*domain.Game, error) {
	games, err := s.gameRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	sort.SliceStable(games, func(i, j int) bool { return games[i].Name < games[j].Name })
	return games, nil
}

// Report computes the statistics for a game looked up by exact name
func (s *AnalysisService) Report(ctx context.Context, name string) (*impact.Report, error) {
	game, err := s.gameRepo.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrGameNotFound, name)
	}
	return s.report(ctx, game)
}

// AnalyzeGame runs the full analysis for a game looked up by exact name
func (s *AnalysisService) AnalyzeGame(ctx context.Context, name string) (*Analysis, error) {
	start := time.Now()

	report, err := s.Report(ctx, name)
	if err != nil {
		s.observe(name, start, err, false)
		return nil, err
	}
	return s.analyze(ctx, report, start)
}

// AnalyzeGameByID runs the full analysis for a game looked up by id
func (s *AnalysisService) AnalyzeGameByID(ctx context.Context, id int64) (*Analysis, error) {
	start := time.Now()

	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		err = fmt.Errorf("failed to get game: %w", err)
		s.observe(fmt.Sprint(id), start, err, false)
		return nil, err
	}
	if game == nil {
		err = fmt.Errorf("%w: id %d", domain.ErrGameNotFound, id)
		s.observe(fmt.Sprint(id), start, err, false)
		return nil, err
	}

	report, err := s.report(ctx, game)
	if err != nil {
		s.observe(game.Name, start, err, false)
		return nil, err
	}
	return s.analyze(ctx, report, start)
}

func (s *AnalysisService) report(ctx context.Context, game *domain.Game) (*impact.Report, error) {
	records, err := s.sessionRepo.ListRecordsByGame(ctx, game.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	report, err := impact.NewReport(game, records)
	if err != nil {
		return nil, fmt.Errorf("failed to compute statistics for %s: %w", game.Name, err)
	}
	return report, nil
}

func (s *AnalysisService) analyze(ctx context.Context, report *impact.Report, start time.Time) (*Analysis, error) {
	name := report.Game.Name

	narrative, err := s.narrator.Generate(ctx, report)
	if err != nil {
		err = fmt.Errorf("failed to generate narrative: %w", err)
		s.observe(name, start, err, false)
		return nil, err
	}

	analysis := &Analysis{
		GameName:        name,
		Summary:         narrative.Summary,
		Recommendations: narrative.Recommendations,
		Charts:          []impact.Chart{},
		NoData:          report.NoData,
	}
	if !report.NoData {
		p := report.Stats.Impact.Percentages
		analysis.MentalHealthImpact = ImpactPercentages{
			Positive: p.Positive,
			Negative: p.Negative,
			Neutral:  p.Neutral,
		}
		analysis.Charts = impact.BuildCharts(report.Stats)

		c := report.Stats.Impact.Counts
		s.metrics.RecordBuckets(c.Positive, c.Negative, c.Neutral)
	}

	s.observe(name, start, nil, report.NoData)
	return analysis, nil
}

func (s *AnalysisService) observe(game string, start time.Time, err error, noData bool) {
	elapsed := time.Since(start)

	outcome := observability.OutcomeOK
	switch {
	case errors.Is(err, domain.ErrGameNotFound):
		outcome = observability.OutcomeNotFound
	case err != nil:
		outcome = observability.OutcomeError
	case noData:
		outcome = observability.OutcomeNoData
	}
	s.metrics.RecordAnalysis(outcome, elapsed)

	fields := []zap.Field{
		zap.String("game", game),
		zap.String("outcome", outcome),
		zap.Duration("elapsed", elapsed),
	}
	if outcome == observability.OutcomeError {
		s.logger.Error("analysis failed", append(fields, zap.Error(err))...)
		return
	}
	s.logger.Info("analysis finished", fields...)
}
