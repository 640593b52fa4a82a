package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Dosada05/tournament-admin/models"
	"github.com/Dosada05/tournament-admin/repositories"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const TopLimit = 5

// AggregationStrategy - где группируются события: в SQL или в памяти.
type AggregationStrategy string

const (
	// DatabaseGrouping - COUNT/array_agg в SQL; GROUP BY включает все выбранные колонки.
	DatabaseGrouping AggregationStrategy = "database"
	// ApplicationGrouping - плоская выборка и группировка в памяти по player_id.
	ApplicationGrouping AggregationStrategy = "application"
)

type LeaderboardService interface {
	TopScorers(ctx context.Context) ([]models.ScorerEntry, error)
	TopFiveScorers(ctx context.Context) ([]models.ScorerEntry, error)
	TopScorersByMatch(ctx context.Context, matchID uuid.UUID) ([]models.ScorerEntry, error)
	TopScorersByTeam(ctx context.Context, teamID uuid.UUID) ([]models.ScorerEntry, error)

	SanctionsByType(ctx context.Context, typeID uuid.UUID) ([]models.SanctionEntry, error)
	SanctionsByTypeAndTeam(ctx context.Context, typeID, teamID uuid.UUID) ([]models.SanctionEntry, error)
	SanctionsByTypeAndMatch(ctx context.Context, typeID, matchID uuid.UUID) ([]models.SanctionEntry, error)
	TopFiveSanctionedByType(ctx context.Context, typeID uuid.UUID) ([]models.SanctionEntry, error)

	// ExportTopScorers строит xlsx-таблицу бомбардиров.
	ExportTopScorers(ctx context.Context) ([]byte, error)
}

type leaderboardService struct {
	goals         repositories.GoalRepository
	sanctions     repositories.SanctionRepository
	sanctionTypes repositories.SanctionTypeRepository
	teams         repositories.TeamRepository
	matches       repositories.MatchRepository
	log           zerolog.Logger
}

func NewLeaderboardService(
	goals repositories.GoalRepository,
	sanctions repositories.SanctionRepository,
	sanctionTypes repositories.SanctionTypeRepository,
	teams repositories.TeamRepository,
	matches repositories.MatchRepository,
	logger zerolog.Logger,
) LeaderboardService {
	return &leaderboardService{
		goals:         goals,
		sanctions:     sanctions,
		sanctionTypes: sanctionTypes,
		teams:         teams,
		matches:       matches,
		log:           logger.With().Str("component", "leaderboard_service").Logger(),
	}
}

// scorers - database grouping, затем стабильная пересортировка и обрезка по limit.
func (s *leaderboardService) scorers(ctx context.Context, filter repositories.ScorerFilter, limit int) ([]models.ScorerEntry, error) {
	entries, err := s.goals.CountByPlayer(ctx, filter, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to count goals by player: %w", err)
	}
	s.log.Debug().Str("strategy", string(DatabaseGrouping)).Int("groups", len(entries)).Msg("scorers aggregated")
	return rankScorers(entries, limit), nil
}

func (s *leaderboardService) TopScorers(ctx context.Context) ([]models.ScorerEntry, error) {
	return s.scorers(ctx, repositories.ScorerFilter{}, 0)
}

func (s *leaderboardService) TopFiveScorers(ctx context.Context) ([]models.ScorerEntry, error) {
	return s.scorers(ctx, repositories.ScorerFilter{}, TopLimit)
}

func (s *leaderboardService) TopScorersByMatch(ctx context.Context, matchID uuid.UUID) ([]models.ScorerEntry, error) {
	return s.scorers(ctx, repositories.ScorerFilter{MatchID: &matchID}, 0)
}

func (s *leaderboardService) TopScorersByTeam(ctx context.Context, teamID uuid.UUID) ([]models.ScorerEntry, error) {
	return s.scorers(ctx, repositories.ScorerFilter{TeamID: &teamID}, 0)
}

// rankScorers сортирует по goal_count по убыванию; limit > 0 обрезает хвост,
// равные за границей отбрасываются.
func rankScorers(entries []models.ScorerEntry, limit int) []models.ScorerEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].GoalCount > entries[j].GoalCount
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// checkSanctionFilter проверяет, что тип санкции (и команда/матч, если заданы) существуют.
func (s *leaderboardService) checkSanctionFilter(ctx context.Context, filter repositories.SanctionFilter) error {
	if _, err := s.sanctionTypes.GetByID(ctx, filter.TypeID); err != nil {
		if errors.Is(err, repositories.ErrSanctionTypeNotFound) {
			return ErrSanctionTypeNotFound
		}
		return fmt.Errorf("failed to get sanction type %s: %w", filter.TypeID, err)
	}
	if filter.TeamID != nil {
		if _, err := s.teams.GetByID(ctx, *filter.TeamID); err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return ErrTeamNotFound
			}
			return fmt.Errorf("failed to get team %s: %w", *filter.TeamID, err)
		}
	}
	if filter.MatchID != nil {
		if _, err := s.matches.GetByID(ctx, *filter.MatchID); err != nil {
			if errors.Is(err, repositories.ErrMatchNotFound) {
				return ErrMatchNotFound
			}
			return fmt.Errorf("failed to get match %s: %w", *filter.MatchID, err)
		}
	}
	return nil
}

func (s *leaderboardService) groupedSanctions(ctx context.Context, filter repositories.SanctionFilter) ([]models.SanctionEntry, error) {
	if err := s.checkSanctionFilter(ctx, filter); err != nil {
		return nil, err
	}
	rows, err := s.sanctions.ListRows(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list sanctions of type %s: %w", filter.TypeID, err)
	}
	entries := groupSanctionRows(rows)
	s.log.Debug().Str("strategy", string(ApplicationGrouping)).Int("rows", len(rows)).Int("groups", len(entries)).Msg("sanctions aggregated")
	return entries, nil
}

func (s *leaderboardService) SanctionsByType(ctx context.Context, typeID uuid.UUID) ([]models.SanctionEntry, error) {
	return s.groupedSanctions(ctx, repositories.SanctionFilter{TypeID: typeID})
}

func (s *leaderboardService) SanctionsByTypeAndTeam(ctx context.Context, typeID, teamID uuid.UUID) ([]models.SanctionEntry, error) {
	return s.groupedSanctions(ctx, repositories.SanctionFilter{TypeID: typeID, TeamID: &teamID})
}

func (s *leaderboardService) SanctionsByTypeAndMatch(ctx context.Context, typeID, matchID uuid.UUID) ([]models.SanctionEntry, error) {
	return s.groupedSanctions(ctx, repositories.SanctionFilter{TypeID: typeID, MatchID: &matchID})
}

// TopFiveSanctionedByType - database grouping (COUNT + array_agg), не больше пяти строк.
func (s *leaderboardService) TopFiveSanctionedByType(ctx context.Context, typeID uuid.UUID) ([]models.SanctionEntry, error) {
	if err := s.checkSanctionFilter(ctx, repositories.SanctionFilter{TypeID: typeID}); err != nil {
		return nil, err
	}
	entries, err := s.sanctions.TopByType(ctx, typeID, TopLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sanctions of type %s: %w", typeID, err)
	}
	s.log.Debug().Str("strategy", string(DatabaseGrouping)).Int("groups", len(entries)).Msg("top sanctions aggregated")
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SanctionsCount > entries[j].SanctionsCount
	})
	if len(entries) > TopLimit {
		entries = entries[:TopLimit]
	}
	return entries, nil
}

// groupSanctionRows - application grouping. Строки приходят в порядке создания санкций,
// поэтому match_ids каждого игрока упорядочены, а среди равных по счёту сохраняется
// порядок первого появления игрока.
func groupSanctionRows(rows []models.SanctionRow) []models.SanctionEntry {
	index := make(map[uuid.UUID]int, len(rows))
	entries := make([]models.SanctionEntry, 0)
	for _, r := range rows {
		i, ok := index[r.PlayerID]
		if !ok {
			i = len(entries)
			index[r.PlayerID] = i
			entries = append(entries, models.SanctionEntry{
				TeamID:       r.TeamID,
				TeamName:     r.TeamName,
				TeamLogo:     r.TeamLogo,
				PlayerID:     r.PlayerID,
				PlayerName:   r.PlayerName,
				PlayerNumber: r.PlayerNumber,
				MatchIDs:     []uuid.UUID{},
			})
		}
		entries[i].SanctionsCount++
		entries[i].MatchIDs = append(entries[i].MatchIDs, r.MatchID)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SanctionsCount > entries[j].SanctionsCount
	})
	return entries
}

func (s *leaderboardService) ExportTopScorers(ctx context.Context) ([]byte, error) {
	entries, err := s.TopScorers(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.log.Warn().Err(err).Msg("failed to close xlsx file")
		}
	}()

	sheet := "Goleadores"
	if _, err := f.NewSheet(sheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}

	headers := []string{"#", "Player", "Number", "Team", "Goals"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, e := range entries {
		row := i + 2
		values := []interface{}{i + 1, e.PlayerName, derefString(e.PlayerNumber), e.TeamName, e.GoalCount}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 6)
	_ = f.SetColWidth(sheet, "B", "B", 28)
	_ = f.SetColWidth(sheet, "C", "C", 10)
	_ = f.SetColWidth(sheet, "D", "D", 24)
	_ = f.SetColWidth(sheet, "E", "E", 10)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
