package deliberation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/delibrium-backend/internal/domain"
	"github.com/yungbote/delibrium-backend/internal/pkg/dbctx"
	"github.com/yungbote/delibrium-backend/internal/pkg/logger"
)

type DimensionRepo interface {
	Create(dbc dbctx.Context, rows []*types.Dimension) ([]*types.Dimension, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Dimension, error)
	ListActive(dbc dbctx.Context) ([]*types.Dimension, error)
	ListActiveByPost(dbc dbctx.Context, postID uuid.UUID) ([]*types.Dimension, error)
	ListActiveByGroup(dbc dbctx.Context, groupID uuid.UUID) ([]*types.Dimension, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, fields map[string]interface{}) error
}

type dimensionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDimensionRepo(db *gorm.DB, baseLog *logger.Logger) DimensionRepo {
	return &dimensionRepo{db: db, log: baseLog.With("repo", "DimensionRepo")}
}

func (r *dimensionRepo) dbx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *dimensionRepo) Create(dbc dbctx.Context, rows []*types.Dimension) ([]*types.Dimension, error) {
	if len(rows) == 0 {
		return rows, nil
	}
	now := time.Now().UTC()
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
		if row.CreatedAt.IsZero() {
			row.CreatedAt = now
		}
		row.UpdatedAt = now
	}
	if err := r.dbx(dbc).WithContext(dbc.Ctx).Create(rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *dimensionRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Dimension, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Dimension
	err := r.dbx(dbc).WithContext(dbc.Ctx).Where("id = ?", id).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *dimensionRepo) ListActive(dbc dbctx.Context) ([]*types.Dimension, error) {
	out := []*types.Dimension{}
	if err := r.dbx(dbc).WithContext(dbc.Ctx).
		Where("active = ?", true).
		Order("position ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *dimensionRepo) ListActiveByPost(dbc dbctx.Context, postID uuid.UUID) ([]*types.Dimension, error) {
	out := []*types.Dimension{}
	if postID == uuid.Nil {
		return out, nil
	}
	if err := r.dbx(dbc).WithContext(dbc.Ctx).
		Where("post_id = ? AND active = ?", postID, true).
		Order("position ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListActiveByGroup returns the group-level fallback set: dimensions attached
// to the group with no post assignment.
func (r *dimensionRepo) ListActiveByGroup(dbc dbctx.Context, groupID uuid.UUID) ([]*types.Dimension, error) {
	out := []*types.Dimension{}
	if groupID == uuid.Nil {
		return out, nil
	}
	if err := r.dbx(dbc).WithContext(dbc.Ctx).
		Where("group_id = ? AND post_id IS NULL AND active = ?", groupID, true).
		Order("position ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *dimensionRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, fields map[string]interface{}) error {
	if id == uuid.Nil || len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now().UTC()
	return r.dbx(dbc).WithContext(dbc.Ctx).
		Model(&types.Dimension{}).
		Where("id = ?", id).
		Updates(fields).Error
}
