package services

import (
	"context"
	"time"

	"github.com/yungbote/ecotrack-backend/internal/data/repos"
	"github.com/yungbote/ecotrack-backend/internal/footprint"
	"github.com/yungbote/ecotrack-backend/internal/leaderboard"
	"github.com/yungbote/ecotrack-backend/internal/pkg/dbctx"
	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
)

type LeaderboardService interface {
	// Users ranks users by footprint for one calendar month. A zero month or
	// year falls back to the current one.
	Users(ctx context.Context, month, year int) ([]leaderboard.UserEntry, error)
	Regions(ctx context.Context, month, year int) ([]leaderboard.RegionEntry, error)
	// Emissions ranks users over their entire history.
	Emissions(ctx context.Context) ([]leaderboard.UserEntry, error)
	MonthlyProgress(ctx context.Context) ([]leaderboard.ProgressEntry, error)
}

type leaderboardService struct {
	log         *logger.Logger
	userRepo    repos.UserRepo
	readingRepo repos.ReadingRepo
	factors     footprint.FactorSet
	now         func() time.Time
}

// NewLeaderboardService ranks with the primary factor set whatever
// EMISSION_FACTOR_SET says, so rankings stay comparable across deployments.
func NewLeaderboardService(
	log *logger.Logger,
	userRepo repos.UserRepo,
	readingRepo repos.ReadingRepo,
) LeaderboardService {
	serviceLog := log.With("service", "LeaderboardService")
	return &leaderboardService{
		log:         serviceLog,
		userRepo:    userRepo,
		readingRepo: readingRepo,
		factors:     footprint.Primary(),
		now:         time.Now,
	}
}

func (ls *leaderboardService) window(month, year int) (time.Time, time.Time, error) {
	now := ls.now().UTC()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	return leaderboard.MonthWindow(year, time.Month(month))
}

func (ls *leaderboardService) Users(ctx context.Context, month, year int) ([]leaderboard.UserEntry, error) {
	start, end, err := ls.window(month, year)
	if err != nil {
		return nil, err
	}
	dbc := dbctx.From(ctx)
	users, err := ls.userRepo.ListAll(dbc)
	if err != nil {
		return nil, persistenceErr("list users", err)
	}
	readings, err := ls.readingRepo.ListInRange(dbc, start, end)
	if err != nil {
		return nil, persistenceErr("list readings", err)
	}
	return leaderboard.RankUsers(users, readings, ls.factors), nil
}

func (ls *leaderboardService) Regions(ctx context.Context, month, year int) ([]leaderboard.RegionEntry, error) {
	start, end, err := ls.window(month, year)
	if err != nil {
		return nil, err
	}
	dbc := dbctx.From(ctx)
	users, err := ls.userRepo.ListWithRegion(dbc)
	if err != nil {
		return nil, persistenceErr("list users", err)
	}
	readings, err := ls.readingRepo.ListInRange(dbc, start, end)
	if err != nil {
		return nil, persistenceErr("list readings", err)
	}
	return leaderboard.RankRegions(users, readings, ls.factors), nil
}

func (ls *leaderboardService) Emissions(ctx context.Context) ([]leaderboard.UserEntry, error) {
	dbc := dbctx.From(ctx)
	users, err := ls.userRepo.ListAll(dbc)
	if err != nil {
		return nil, persistenceErr("list users", err)
	}
	readings, err := ls.readingRepo.ListAll(dbc)
	if err != nil {
		return nil, persistenceErr("list readings", err)
	}
	return leaderboard.RankUsers(users, readings, ls.factors), nil
}

func (ls *leaderboardService) MonthlyProgress(ctx context.Context) ([]leaderboard.ProgressEntry, error) {
	dbc := dbctx.From(ctx)
	users, err := ls.userRepo.ListAll(dbc)
	if err != nil {
		return nil, persistenceErr("list users", err)
	}
	readings, err := ls.readingRepo.ListAll(dbc)
	if err != nil {
		return nil, persistenceErr("list readings", err)
	}
	return leaderboard.MonthlyProgress(users, readings, ls.factors), nil
}
