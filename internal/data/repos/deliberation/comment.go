package deliberation

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/delibrium-backend/internal/domain"
	"github.com/yungbote/delibrium-backend/internal/pkg/dbctx"
	"github.com/yungbote/delibrium-backend/internal/pkg/logger"
)

type CommentRepo interface {
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Comment, error)
	ListPublishedIDsByPost(dbc dbctx.Context, postID uuid.UUID) ([]uuid.UUID, error)
}

type commentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCommentRepo(db *gorm.DB, baseLog *logger.Logger) CommentRepo {
	return &commentRepo{db: db, log: baseLog.With("repo", "CommentRepo")}
}

func (r *commentRepo) dbx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *commentRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Comment, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Comment
	err := r.dbx(dbc).WithContext(dbc.Ctx).Where("id = ?", id).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *commentRepo) ListPublishedIDsByPost(dbc dbctx.Context, postID uuid.UUID) ([]uuid.UUID, error) {
	out := []uuid.UUID{}
	if postID == uuid.Nil {
		return out, nil
	}
	if err := r.dbx(dbc).WithContext(dbc.Ctx).
		Model(&types.Comment{}).
		Where("post_id = ? AND deleted = ? AND status = ?", postID, false, types.CommentStatusPublished).
		Order("created_at ASC").
		Pluck("id", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
