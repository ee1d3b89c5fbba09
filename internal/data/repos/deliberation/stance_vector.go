package deliberation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/delibrium-backend/internal/domain"
	"github.com/yungbote/delibrium-backend/internal/pkg/dbctx"
	"github.com/yungbote/delibrium-backend/internal/pkg/logger"
)

type StanceVectorRepo interface {
	Upsert(dbc dbctx.Context, row *types.StanceVector) error
	ListActiveByComment(dbc dbctx.Context, commentID uuid.UUID) ([]*types.StanceVector, error)
	ListActiveByComments(dbc dbctx.Context, commentIDs []uuid.UUID) ([]*types.StanceVector, error)
	DeleteByComment(dbc dbctx.Context, commentID uuid.UUID) error
}

type stanceVectorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStanceVectorRepo(db *gorm.DB, baseLog *logger.Logger) StanceVectorRepo {
	return &stanceVectorRepo{db: db, log: baseLog.With("repo", "StanceVectorRepo")}
}

func (r *stanceVectorRepo) dbx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

// Upsert writes one scored dimension for a comment. Conflicts on the
// (comment_id, dimension_id) unique index overwrite in place so repeated
// calculation never duplicates rows.
func (r *stanceVectorRepo) Upsert(dbc dbctx.Context, row *types.StanceVector) error {
	if row == nil || row.CommentID == uuid.Nil || row.DimensionID == uuid.Nil {
		return nil
	}
	now := time.Now().UTC()
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}
	row.UpdatedAt = now

	return r.dbx(dbc).WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "comment_id"},
				{Name: "dimension_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"stance_value", "confidence", "explanation", "raw_response", "processing_time_ms", "updated_at",
			}),
		}).
		Create(row).Error
}

// ListActiveByComment returns the comment's stored vector restricted to
// active dimensions, ordered by dimension position.
func (r *stanceVectorRepo) ListActiveByComment(dbc dbctx.Context, commentID uuid.UUID) ([]*types.StanceVector, error) {
	out := []*types.StanceVector{}
	if commentID == uuid.Nil {
		return out, nil
	}
	if err := r.dbx(dbc).WithContext(dbc.Ctx).
		Joins("JOIN deliberation_dimension d ON d.id = comment_stance_vector.dimension_id AND d.active = true").
		Where("comment_stance_vector.comment_id = ?", commentID).
		Order("d.position ASC").
		Preload("Dimension").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *stanceVectorRepo) ListActiveByComments(dbc dbctx.Context, commentIDs []uuid.UUID) ([]*types.StanceVector, error) {
	out := []*types.StanceVector{}
	if len(commentIDs) == 0 {
		return out, nil
	}
	if err := r.dbx(dbc).WithContext(dbc.Ctx).
		Joins("JOIN deliberation_dimension d ON d.id = comment_stance_vector.dimension_id AND d.active = true").
		Where("comment_stance_vector.comment_id IN ?", commentIDs).
		Order("d.position ASC").
		Preload("Dimension").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *stanceVectorRepo) DeleteByComment(dbc dbctx.Context, commentID uuid.UUID) error {
	if commentID == uuid.Nil {
		return nil
	}
	return r.dbx(dbc).WithContext(dbc.Ctx).
		Where("comment_id = ?", commentID).
		Delete(&types.StanceVector{}).Error
}
