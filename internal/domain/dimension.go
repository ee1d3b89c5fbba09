package domain

import (
	"time"

	"github.com/google/uuid"
)

// Dimension is one axis of comparison for a deliberation. It is scoped to a
// post, or to a group when no post-level dimensions exist. Dimensions are
// never hard-deleted; retiring one flips Active off so stored stance vectors
// keep a valid reference.
type Dimension struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PostID        *uuid.UUID `gorm:"type:uuid;index" json:"post_id,omitempty"`
	GroupID       *uuid.UUID `gorm:"type:uuid;index" json:"group_id,omitempty"`
	Name          string     `gorm:"column:name;not null" json:"name"`
	Description   string     `gorm:"column:description;not null" json:"description"`
	NegativeLabel string     `gorm:"column:negative_label;not null" json:"negative_label"`
	PositiveLabel string     `gorm:"column:positive_label;not null" json:"positive_label"`
	Position      int        `gorm:"column:position;not null;default:0" json:"position"`
	Active        bool       `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt     time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Dimension) TableName() string { return "deliberation_dimension" }
