package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// StanceVector is one comment's scored position on one dimension. The
// (comment_id, dimension_id) pair is unique; recalculation overwrites the
// row in place. StanceValue is clamped to [-1,1] and Confidence to [0,1]
// before storage regardless of what the oracle returned. RawResponse keeps
// the oracle payload for diagnostics only.
type StanceVector struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CommentID        uuid.UUID      `gorm:"type:uuid;not null;index;index:idx_comment_dimension,unique" json:"comment_id"`
	DimensionID      uuid.UUID      `gorm:"type:uuid;not null;index;index:idx_comment_dimension,unique" json:"dimension_id"`
	Dimension        *Dimension     `gorm:"foreignKey:DimensionID;references:ID" json:"dimension,omitempty"`
	StanceValue      float64        `gorm:"column:stance_value;not null" json:"stance_value"`
	Confidence       float64        `gorm:"column:confidence;not null" json:"confidence"`
	Explanation      string         `gorm:"type:text" json:"explanation"`
	RawResponse      datatypes.JSON `gorm:"type:jsonb;column:raw_response" json:"raw_response,omitempty"`
	ProcessingTimeMs int64          `gorm:"column:processing_time_ms" json:"processing_time_ms"`
	CreatedAt        time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (StanceVector) TableName() string { return "comment_stance_vector" }
