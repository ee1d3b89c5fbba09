package domain

import (
	"time"

	"github.com/google/uuid"
)

const CommentStatusPublished = "published"

// Comment is owned by the discussion platform; the stance engine only reads
// it. Only published, non-deleted comments participate in aggregates.
type Comment struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PostID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"post_id"`
	GroupID   *uuid.UUID `gorm:"type:uuid;index" json:"group_id,omitempty"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	Status    string     `gorm:"column:status;not null;default:'published'" json:"status"`
	Deleted   bool       `gorm:"column:deleted;not null;default:false" json:"deleted"`
	CreatedAt time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Comment) TableName() string { return "comment" }
