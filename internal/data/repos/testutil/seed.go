package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/delibrium-backend/internal/domain"
)

func SeedComment(tb testing.TB, ctx context.Context, tx *gorm.DB, postID uuid.UUID, content string) *types.Comment {
	tb.Helper()
	c := &types.Comment{
		ID:      uuid.New(),
		PostID:  postID,
		Content: content,
		Status:  types.CommentStatusPublished,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed comment: %v", err)
	}
	return c
}

func SeedDimension(tb testing.TB, ctx context.Context, tx *gorm.DB, postID *uuid.UUID, name string, position int) *types.Dimension {
	tb.Helper()
	d := &types.Dimension{
		ID:            uuid.New(),
		PostID:        postID,
		Name:          name,
		Description:   "desc",
		NegativeLabel: "neg",
		PositiveLabel: "pos",
		Position:      position,
		Active:        true,
	}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed dimension: %v", err)
	}
	return d
}

func SeedStanceVector(tb testing.TB, ctx context.Context, tx *gorm.DB, commentID, dimensionID uuid.UUID, value, confidence float64) *types.StanceVector {
	tb.Helper()
	sv := &types.StanceVector{
		ID:          uuid.New(),
		CommentID:   commentID,
		DimensionID: dimensionID,
		StanceValue: value,
		Confidence:  confidence,
		Explanation: "seeded",
	}
	if err := tx.WithContext(ctx).Create(sv).Error; err != nil {
		tb.Fatalf("seed stance vector: %v", err)
	}
	return sv
}

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }
