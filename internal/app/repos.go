package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/ecotrack-backend/internal/data/repos"
	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
)

type Repos struct {
	User           repos.UserRepo
	Reading        repos.ReadingRepo
	Prediction     repos.PredictionRepo
	Recommendation repos.RecommendationRepo
	Insight        repos.InsightRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:           repos.NewUserRepo(db, log),
		Reading:        repos.NewReadingRepo(db, log),
		Prediction:     repos.NewPredictionRepo(db, log),
		Recommendation: repos.NewRecommendationRepo(db, log),
		Insight:        repos.NewInsightRepo(db, log),
	}
}
