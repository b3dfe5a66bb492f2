package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/ecotrack-backend/internal/data/repos/advice"
	"github.com/yungbote/ecotrack-backend/internal/data/repos/consumption"
	"github.com/yungbote/ecotrack-backend/internal/data/repos/user"
	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo

type ReadingRepo = consumption.ReadingRepo
type PredictionRepo = consumption.PredictionRepo

type RecommendationRepo = advice.RecommendationRepo
type InsightRepo = advice.InsightRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return user.NewUserRepo(db, baseLog)
}

func NewReadingRepo(db *gorm.DB, baseLog *logger.Logger) ReadingRepo {
	return consumption.NewReadingRepo(db, baseLog)
}

func NewPredictionRepo(db *gorm.DB, baseLog *logger.Logger) PredictionRepo {
	return consumption.NewPredictionRepo(db, baseLog)
}

func NewRecommendationRepo(db *gorm.DB, baseLog *logger.Logger) RecommendationRepo {
	return advice.NewRecommendationRepo(db, baseLog)
}

func NewInsightRepo(db *gorm.DB, baseLog *logger.Logger) InsightRepo {
	return advice.NewInsightRepo(db, baseLog)
}
