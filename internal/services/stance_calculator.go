package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/delibrium-backend/internal/data/repos"
	types "github.com/yungbote/delibrium-backend/internal/domain"
	"github.com/yungbote/delibrium-backend/internal/pkg/dbctx"
	apperrors "github.com/yungbote/delibrium-backend/internal/pkg/errors"
	"github.com/yungbote/delibrium-backend/internal/pkg/logger"
)

const stanceSystemPrompt = "You are an expert analyst providing structured JSON analysis of text positions on deliberation dimensions."

// DimensionScore is the per-dimension summary returned after calculation.
type DimensionScore struct {
	DimensionID uuid.UUID `json:"dimension_id"`
	Dimension   string    `json:"dimension"`
	StanceValue float64   `json:"stance_value"`
	Confidence  float64   `json:"confidence"`
	Explanation string    `json:"explanation"`
}

// StanceVectorResult reports one calculation run. Success is false for the
// expected "no dimensions configured" state; infrastructure trouble is an
// error instead.
type StanceVectorResult struct {
	Success               bool             `json:"success"`
	Message               string           `json:"message,omitempty"`
	CommentID             uuid.UUID        `json:"comment_id"`
	Dimensions            []DimensionScore `json:"dimensions,omitempty"`
	TotalProcessingTimeMs int64            `json:"total_processing_time_ms"`
	AvgTimePerDimensionMs int64            `json:"avg_time_per_dimension_ms"`
}

// StanceVectorEntry is one stored (dimension, value, confidence) pair.
type StanceVectorEntry struct {
	DimensionID uuid.UUID `json:"dimension_id"`
	Dimension   string    `json:"dimension"`
	StanceValue float64   `json:"stance_value"`
	Confidence  float64   `json:"confidence"`
	Explanation string    `json:"explanation"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CommentStanceVector struct {
	CommentID uuid.UUID           `json:"comment_id"`
	Vector    []StanceVectorEntry `json:"vector"`
}

type StanceCalculator interface {
	CalculateStanceVector(ctx context.Context, commentID uuid.UUID) (*StanceVectorResult, error)
	RecalculateStanceVector(ctx context.Context, commentID uuid.UUID) (*StanceVectorResult, error)
	GetStanceVector(ctx context.Context, commentID uuid.UUID) (*CommentStanceVector, error)
}

type stanceCalculator struct {
	commentRepo   repos.CommentRepo
	dimensionRepo repos.DimensionRepo
	vectorRepo    repos.StanceVectorRepo
	oracle        StanceOracle
	log           *logger.Logger
}

func NewStanceCalculator(
	commentRepo repos.CommentRepo,
	dimensionRepo repos.DimensionRepo,
	vectorRepo repos.StanceVectorRepo,
	oracle StanceOracle,
	log *logger.Logger,
) StanceCalculator {
	return &stanceCalculator{
		commentRepo:   commentRepo,
		dimensionRepo: dimensionRepo,
		vectorRepo:    vectorRepo,
		oracle:        oracle,
		log:           log.With("service", "StanceCalculator"),
	}
}

// CalculateStanceVector scores one comment against every applicable
// dimension and upserts a row per (comment, dimension) pair. Oracle calls
// run sequentially to bound concurrent external load; each call degrades
// independently to a neutral fallback on failure.
func (s *stanceCalculator) CalculateStanceVector(ctx context.Context, commentID uuid.UUID) (*StanceVectorResult, error) {
	overallStart := time.Now()
	dbc := dbctx.Context{Ctx: ctx}

	comment, err := s.commentRepo.GetByID(dbc, commentID)
	if err != nil {
		return nil, fmt.Errorf("load comment: %w", err)
	}
	if comment == nil {
		return nil, fmt.Errorf("comment %s: %w", commentID, apperrors.ErrNotFound)
	}

	dimensions, err := s.resolveDimensions(dbc, comment)
	if err != nil {
		return nil, fmt.Errorf("resolve dimensions: %w", err)
	}
	if len(dimensions) == 0 {
		s.log.Warn("No dimensions found for comment", "comment_id", commentID, "post_id", comment.PostID)
		return &StanceVectorResult{
			Success:   false,
			Message:   "No dimensions configured for this deliberation",
			CommentID: commentID,
		}, nil
	}

	scores := make([]DimensionScore, 0, len(dimensions))
	for _, dimension := range dimensions {
		rating, raw, elapsedMs := s.scoreDimension(ctx, comment.Content, dimension)

		row := &types.StanceVector{
			CommentID:        commentID,
			DimensionID:      dimension.ID,
			StanceValue:      rating.StanceValue,
			Confidence:       rating.Confidence,
			Explanation:      rating.Explanation,
			RawResponse:      raw,
			ProcessingTimeMs: elapsedMs,
		}
		if err := s.vectorRepo.Upsert(dbc, row); err != nil {
			return nil, fmt.Errorf("upsert stance vector: %w", err)
		}

		scores = append(scores, DimensionScore{
			DimensionID: dimension.ID,
			Dimension:   dimension.Name,
			StanceValue: rating.StanceValue,
			Confidence:  rating.Confidence,
			Explanation: rating.Explanation,
		})

		s.log.Info("Calculated stance for dimension",
			"comment_id", commentID,
			"dimension_id", dimension.ID,
			"dimension", dimension.Name,
			"stance_value", rating.StanceValue,
			"confidence", rating.Confidence,
		)
	}

	totalMs := time.Since(overallStart).Milliseconds()
	return &StanceVectorResult{
		Success:               true,
		CommentID:             commentID,
		Dimensions:            scores,
		TotalProcessingTimeMs: totalMs,
		AvgTimePerDimensionMs: totalMs / int64(len(dimensions)),
	}, nil
}

// RecalculateStanceVector drops the comment's stored rows first, then scores
// from scratch. Used when the applicable dimension set has changed.
func (s *stanceCalculator) RecalculateStanceVector(ctx context.Context, commentID uuid.UUID) (*StanceVectorResult, error) {
	if err := s.vectorRepo.DeleteByComment(dbctx.Context{Ctx: ctx}, commentID); err != nil {
		return nil, fmt.Errorf("delete stance vectors: %w", err)
	}
	return s.CalculateStanceVector(ctx, commentID)
}

func (s *stanceCalculator) GetStanceVector(ctx context.Context, commentID uuid.UUID) (*CommentStanceVector, error) {
	rows, err := s.vectorRepo.ListActiveByComment(dbctx.Context{Ctx: ctx}, commentID)
	if err != nil {
		return nil, fmt.Errorf("list stance vectors: %w", err)
	}

	vector := make([]StanceVectorEntry, 0, len(rows))
	for _, row := range rows {
		name := ""
		if row.Dimension != nil {
			name = row.Dimension.Name
		}
		vector = append(vector, StanceVectorEntry{
			DimensionID: row.DimensionID,
			Dimension:   name,
			StanceValue: row.StanceValue,
			Confidence:  row.Confidence,
			Explanation: row.Explanation,
			UpdatedAt:   row.UpdatedAt,
		})
	}
	return &CommentStanceVector{CommentID: commentID, Vector: vector}, nil
}

// resolveDimensions tries post-scoped active dimensions first, then the
// group-level fallback set when the comment belongs to a group.
func (s *stanceCalculator) resolveDimensions(dbc dbctx.Context, comment *types.Comment) ([]*types.Dimension, error) {
	dimensions, err := s.dimensionRepo.ListActiveByPost(dbc, comment.PostID)
	if err != nil {
		return nil, err
	}
	if len(dimensions) == 0 && comment.GroupID != nil {
		dimensions, err = s.dimensionRepo.ListActiveByGroup(dbc, *comment.GroupID)
		if err != nil {
			return nil, err
		}
	}
	return dimensions, nil
}

type stanceRating struct {
	StanceValue float64
	Confidence  float64
	Explanation string
}

// scoreDimension runs one oracle call and never fails: malformed output,
// timeouts, and transport errors all collapse to a neutral rating with a
// diagnostic explanation.
func (s *stanceCalculator) scoreDimension(ctx context.Context, content string, dimension *types.Dimension) (stanceRating, datatypes.JSON, int64) {
	start := time.Now()

	prompt := buildStancePrompt(content, dimension)
	obj, raw, err := s.oracle.GenerateJSON(ctx, stanceSystemPrompt, prompt, "stance_rating", stanceRatingSchema())
	elapsedMs := time.Since(start).Milliseconds()

	if err != nil {
		s.log.Error("Error analyzing stance on dimension",
			"dimension_id", dimension.ID,
			"comment_length", len(content),
			"error", err,
		)
		errPayload, _ := json.Marshal(map[string]string{"error": err.Error()})
		return stanceRating{
			StanceValue: 0,
			Confidence:  0,
			Explanation: fmt.Sprintf("Error during analysis: %v", err),
		}, datatypes.JSON(errPayload), elapsedMs
	}

	rating, parseErr := parseStanceRating(obj)
	if parseErr != nil {
		s.log.Error("Error parsing oracle response", "dimension_id", dimension.ID, "error", parseErr)
		return stanceRating{
			StanceValue: 0,
			Confidence:  0,
			Explanation: "Failed to parse oracle response",
		}, datatypes.JSON(raw), elapsedMs
	}

	return rating, datatypes.JSON(raw), elapsedMs
}

func buildStancePrompt(content string, dimension *types.Dimension) string {
	return fmt.Sprintf(`Analyze the following comment's stance on this specific dimension:

**Dimension**: %s
**Description**: %s
**Scale**:
- Negative (-1): %s
- Neutral (0): No clear stance or mixed
- Positive (+1): %s

**Comment to analyze**:
"%s"

Rules:
1. stance_value: Rate from -1.0 to +1.0 based on the comment's position on this dimension
2. confidence: How confident are you in this rating? (0 = not confident, 1 = very confident)
3. If the comment doesn't address this dimension, use stance_value: 0 and confidence: 0
4. explanation: Brief 1-2 sentence justification for your rating`,
		dimension.Name,
		dimension.Description,
		dimension.NegativeLabel,
		dimension.PositiveLabel,
		content,
	)
}

func stanceRatingSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"stance_value", "confidence", "explanation"},
		"properties": map[string]any{
			"stance_value": map[string]any{"type": "number"},
			"confidence":   map[string]any{"type": "number"},
			"explanation":  map[string]any{"type": "string"},
		},
	}
}

// parseStanceRating validates the oracle object and clamps both numbers into
// their domains. Wrong types are a parse failure, not a panic.
func parseStanceRating(obj map[string]any) (stanceRating, error) {
	value, ok := obj["stance_value"].(float64)
	if !ok {
		return stanceRating{}, fmt.Errorf("stance_value missing or not a number")
	}
	confidence, ok := obj["confidence"].(float64)
	if !ok {
		return stanceRating{}, fmt.Errorf("confidence missing or not a number")
	}
	explanation, ok := obj["explanation"].(string)
	if !ok {
		return stanceRating{}, fmt.Errorf("explanation missing or not a string")
	}
	return stanceRating{
		StanceValue: clamp(value, -1, 1),
		Confidence:  clamp(confidence, 0, 1),
		Explanation: explanation,
	}, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
