package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/delibrium-backend/internal/data/repos/deliberation"
	"github.com/yungbote/delibrium-backend/internal/pkg/logger"
)

type DimensionRepo = deliberation.DimensionRepo
type CommentRepo = deliberation.CommentRepo
type StanceVectorRepo = deliberation.StanceVectorRepo

func NewDimensionRepo(db *gorm.DB, baseLog *logger.Logger) DimensionRepo {
	return deliberation.NewDimensionRepo(db, baseLog)
}

func NewCommentRepo(db *gorm.DB, baseLog *logger.Logger) CommentRepo {
	return deliberation.NewCommentRepo(db, baseLog)
}

func NewStanceVectorRepo(db *gorm.DB, baseLog *logger.Logger) StanceVectorRepo {
	return deliberation.NewStanceVectorRepo(db, baseLog)
}
