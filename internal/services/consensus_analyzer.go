package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/delibrium-backend/internal/data/repos"
	"github.com/yungbote/delibrium-backend/internal/pkg/dbctx"
	apperrors "github.com/yungbote/delibrium-backend/internal/pkg/errors"
	"github.com/yungbote/delibrium-backend/internal/pkg/logger"
)

// Agreement labels for a similarity score.
const (
	AgreementStrong     = "strong_agreement"
	AgreementPartial    = "partial_agreement"
	AgreementOrthogonal = "orthogonal"
	OppositionPartial   = "partial_opposition"
	OppositionStrong    = "strong_opposition"
)

// Consensus labels for the spread of stance values on one dimension.
const (
	ConsensusHigh     = "high"
	ConsensusModerate = "moderate"
	ConsensusLow      = "low"
)

const (
	defaultSimilarityThreshold = 0.7
	similarStanceConcurrency   = 4
)

// DimensionAgreement is one common dimension in a pairwise comparison.
type DimensionAgreement struct {
	DimensionID   uuid.UUID `json:"dimension_id"`
	Dimension     string    `json:"dimension"`
	StanceA       float64   `json:"stance_a"`
	StanceB       float64   `json:"stance_b"`
	Similarity    float64   `json:"similarity"`
	Agreement     string    `json:"agreement"`
	AvgConfidence float64   `json:"avg_confidence"`
}

type AgreementResult struct {
	Success            bool                 `json:"success"`
	Message            string               `json:"message,omitempty"`
	CommentA           uuid.UUID            `json:"comment_a"`
	CommentB           uuid.UUID            `json:"comment_b"`
	OverallSimilarity  float64              `json:"overall_similarity"`
	OverallAgreement   string               `json:"overall_agreement,omitempty"`
	Breakdown          []DimensionAgreement `json:"breakdown,omitempty"`
	CommonGround       []string             `json:"common_ground,omitempty"`
	PointsOfContention []string             `json:"points_of_contention,omitempty"`
	DimensionsAnalyzed int                  `json:"dimensions_analyzed"`
	AverageConfidence  float64              `json:"average_confidence"`
}

// AggregateStance is the derived community position on one dimension.
type AggregateStance struct {
	DimensionID    uuid.UUID `json:"dimension_id"`
	Dimension      string    `json:"dimension"`
	Position       int       `json:"position"`
	WeightedMean   float64   `json:"weighted_mean"`
	StdDev         float64   `json:"std_dev"`
	Consensus      string    `json:"consensus"`
	SampleSize     int       `json:"sample_size"`
	MeanConfidence float64   `json:"mean_confidence"`
}

type PostAggregateResult struct {
	Success            bool              `json:"success"`
	Message            string            `json:"message,omitempty"`
	PostID             uuid.UUID         `json:"post_id"`
	Aggregates         []AggregateStance `json:"aggregates,omitempty"`
	TotalComments      int               `json:"total_comments"`
	CommentsScored     int               `json:"comments_scored"`
	DimensionsAnalyzed int               `json:"dimensions_analyzed"`
}

type SimilarStance struct {
	CommentID    uuid.UUID `json:"comment_id"`
	Similarity   float64   `json:"similarity"`
	Agreement    string    `json:"agreement"`
	CommonGround []string  `json:"common_ground,omitempty"`
}

type SimilarStancesResult struct {
	Success         bool            `json:"success"`
	Message         string          `json:"message,omitempty"`
	TargetCommentID uuid.UUID       `json:"target_comment_id"`
	Threshold       float64         `json:"threshold"`
	Similar         []SimilarStance `json:"similar"`
}

type PolarizedDimension struct {
	Dimension string  `json:"dimension"`
	StdDev    float64 `json:"std_dev"`
}

type ConsensusDimension struct {
	Dimension    string  `json:"dimension"`
	WeightedMean float64 `json:"weighted_mean"`
	StdDev       float64 `json:"std_dev"`
}

type PolarizationRecommendation struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type PolarizationResult struct {
	Success             bool                         `json:"success"`
	Message             string                       `json:"message,omitempty"`
	PostID              uuid.UUID                    `json:"post_id"`
	OverallPolarization string                       `json:"overall_polarization,omitempty"`
	Polarized           []PolarizedDimension         `json:"polarized_dimensions"`
	Consensus           []ConsensusDimension         `json:"consensus_dimensions"`
	Recommendations     []PolarizationRecommendation `json:"recommendations"`
}

type ConsensusAnalyzer interface {
	AnalyzeAgreement(ctx context.Context, commentA, commentB uuid.UUID) (*AgreementResult, error)
	CalculatePostAggregate(ctx context.Context, postID uuid.UUID) (*PostAggregateResult, error)
	FindSimilarStances(ctx context.Context, commentID uuid.UUID, threshold float64) (*SimilarStancesResult, error)
	AnalyzePolarization(ctx context.Context, postID uuid.UUID) (*PolarizationResult, error)
}

type consensusAnalyzer struct {
	commentRepo repos.CommentRepo
	vectorRepo  repos.StanceVectorRepo
	log         *logger.Logger
}

func NewConsensusAnalyzer(commentRepo repos.CommentRepo, vectorRepo repos.StanceVectorRepo, log *logger.Logger) ConsensusAnalyzer {
	return &consensusAnalyzer{
		commentRepo: commentRepo,
		vectorRepo:  vectorRepo,
		log:         log.With("service", "ConsensusAnalyzer"),
	}
}

// CosineSimilarity is the standard dot-product-over-magnitudes formula.
// Mismatched lengths, empty input, and zero magnitude all return 0: no
// evidence of a relationship rather than an error.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := 0; i < len(a); i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// ClassifyAgreement maps a similarity score nominally in [-1,1] to a label.
// Checked top to bottom, first match wins.
func ClassifyAgreement(score float64) string {
	switch {
	case score >= 0.8:
		return AgreementStrong
	case score >= 0.5:
		return AgreementPartial
	case score >= -0.2:
		return AgreementOrthogonal
	case score >= -0.5:
		return OppositionPartial
	default:
		return OppositionStrong
	}
}

// commentVector is one comment's stored stance data keyed for alignment.
type commentVector struct {
	ordered []vectorEntry
	byDim   map[uuid.UUID]vectorEntry
}

type vectorEntry struct {
	dimensionID uuid.UUID
	name        string
	value       float64
	confidence  float64
}

func (s *consensusAnalyzer) loadCommentVector(dbc dbctx.Context, commentID uuid.UUID) (*commentVector, error) {
	rows, err := s.vectorRepo.ListActiveByComment(dbc, commentID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cv := &commentVector{byDim: make(map[uuid.UUID]vectorEntry, len(rows))}
	for _, row := range rows {
		name := ""
		if row.Dimension != nil {
			name = row.Dimension.Name
		}
		entry := vectorEntry{
			dimensionID: row.DimensionID,
			name:        name,
			value:       row.StanceValue,
			confidence:  row.Confidence,
		}
		cv.ordered = append(cv.ordered, entry)
		cv.byDim[row.DimensionID] = entry
	}
	return cv, nil
}

// AnalyzeAgreement compares two comments over the dimensions both were
// scored on. Per-dimension similarity maps the raw value difference into
// [0,1]; the overall score is the signed cosine of the aligned vectors, so
// only the overall label can reach the opposition categories.
func (s *consensusAnalyzer) AnalyzeAgreement(ctx context.Context, commentA, commentB uuid.UUID) (*AgreementResult, error) {
	dbc := dbctx.Context{Ctx: ctx}

	vecA, err := s.loadCommentVector(dbc, commentA)
	if err != nil {
		return nil, fmt.Errorf("load stance vector: %w", err)
	}
	vecB, err := s.loadCommentVector(dbc, commentB)
	if err != nil {
		return nil, fmt.Errorf("load stance vector: %w", err)
	}
	if vecA == nil || vecB == nil {
		return &AgreementResult{
			Success:  false,
			Message:  "One or both comments do not have stance vectors calculated",
			CommentA: commentA,
			CommentB: commentB,
		}, nil
	}

	alignedA := []float64{}
	alignedB := []float64{}
	breakdown := []DimensionAgreement{}

	// Intersection in A's (position) order.
	for _, entryA := range vecA.ordered {
		entryB, ok := vecB.byDim[entryA.dimensionID]
		if !ok {
			continue
		}
		alignedA = append(alignedA, entryA.value)
		alignedB = append(alignedB, entryB.value)

		// Value difference spans [0,2]; map it to a similarity in [0,1].
		similarity := 1 - math.Abs(entryA.value-entryB.value)/2
		breakdown = append(breakdown, DimensionAgreement{
			DimensionID:   entryA.dimensionID,
			Dimension:     entryA.name,
			StanceA:       entryA.value,
			StanceB:       entryB.value,
			Similarity:    similarity,
			Agreement:     ClassifyAgreement(similarity),
			AvgConfidence: (entryA.confidence + entryB.confidence) / 2,
		})
	}

	if len(breakdown) == 0 {
		return &AgreementResult{
			Success:  false,
			Message:  "No common dimensions between the two comments",
			CommentA: commentA,
			CommentB: commentB,
		}, nil
	}

	overall := CosineSimilarity(alignedA, alignedB)

	commonGround := []string{}
	contention := []string{}
	var confidenceSum float64
	for _, d := range breakdown {
		confidenceSum += d.AvgConfidence
		if d.Similarity >= 0.7 {
			commonGround = append(commonGround, d.Dimension)
		}
		if d.Similarity < 0.5 {
			contention = append(contention, d.Dimension)
		}
	}

	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Similarity > breakdown[j].Similarity
	})

	return &AgreementResult{
		Success:            true,
		CommentA:           commentA,
		CommentB:           commentB,
		OverallSimilarity:  overall,
		OverallAgreement:   ClassifyAgreement(overall),
		Breakdown:          breakdown,
		CommonGround:       commonGround,
		PointsOfContention: contention,
		DimensionsAnalyzed: len(breakdown),
		AverageConfidence:  confidenceSum / float64(len(breakdown)),
	}, nil
}

// CalculatePostAggregate computes the community position per dimension:
// confidence-weighted mean, population standard deviation of the raw values,
// and a consensus label from the spread.
func (s *consensusAnalyzer) CalculatePostAggregate(ctx context.Context, postID uuid.UUID) (*PostAggregateResult, error) {
	dbc := dbctx.Context{Ctx: ctx}

	commentIDs, err := s.commentRepo.ListPublishedIDsByPost(dbc, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	if len(commentIDs) == 0 {
		return &PostAggregateResult{
			Success: false,
			Message: "No comments found for this post",
			PostID:  postID,
		}, nil
	}

	rows, err := s.vectorRepo.ListActiveByComments(dbc, commentIDs)
	if err != nil {
		return nil, fmt.Errorf("list stance vectors: %w", err)
	}
	if len(rows) == 0 {
		return &PostAggregateResult{
			Success:       false,
			Message:       "No stance vectors calculated for this post yet",
			PostID:        postID,
			TotalComments: len(commentIDs),
		}, nil
	}

	type group struct {
		name       string
		position   int
		values     []float64
		confidence []float64
	}
	groups := map[uuid.UUID]*group{}
	scoredComments := map[uuid.UUID]struct{}{}

	for _, row := range rows {
		scoredComments[row.CommentID] = struct{}{}
		g, ok := groups[row.DimensionID]
		if !ok {
			g = &group{}
			if row.Dimension != nil {
				g.name = row.Dimension.Name
				g.position = row.Dimension.Position
			}
			groups[row.DimensionID] = g
		}
		g.values = append(g.values, row.StanceValue)
		g.confidence = append(g.confidence, row.Confidence)
	}

	aggregates := make([]AggregateStance, 0, len(groups))
	for dimensionID, g := range groups {
		var totalConfidence, weightedSum float64
		for i, v := range g.values {
			weightedSum += v * g.confidence[i]
			totalConfidence += g.confidence[i]
		}
		weightedMean := 0.0
		if totalConfidence > 0 {
			weightedMean = weightedSum / totalConfidence
		}

		mean := 0.0
		for _, v := range g.values {
			mean += v
		}
		mean /= float64(len(g.values))

		variance := 0.0
		for _, v := range g.values {
			variance += (v - mean) * (v - mean)
		}
		variance /= float64(len(g.values))
		stdDev := math.Sqrt(variance)

		aggregates = append(aggregates, AggregateStance{
			DimensionID:    dimensionID,
			Dimension:      g.name,
			Position:       g.position,
			WeightedMean:   weightedMean,
			StdDev:         stdDev,
			Consensus:      classifyConsensus(stdDev),
			SampleSize:     len(g.values),
			MeanConfidence: totalConfidence / float64(len(g.confidence)),
		})
	}

	sort.SliceStable(aggregates, func(i, j int) bool {
		return aggregates[i].Position < aggregates[j].Position
	})

	return &PostAggregateResult{
		Success:            true,
		PostID:             postID,
		Aggregates:         aggregates,
		TotalComments:      len(commentIDs),
		CommentsScored:     len(scoredComments),
		DimensionsAnalyzed: len(aggregates),
	}, nil
}

func classifyConsensus(stdDev float64) string {
	switch {
	case stdDev < 0.3:
		return ConsensusHigh
	case stdDev < 0.6:
		return ConsensusModerate
	default:
		return ConsensusLow
	}
}

// FindSimilarStances runs the pairwise comparison against every other
// published comment in the same post. The comparisons are read-only and
// independent, so they fan out under a small concurrency cap.
func (s *consensusAnalyzer) FindSimilarStances(ctx context.Context, commentID uuid.UUID, threshold float64) (*SimilarStancesResult, error) {
	if threshold <= 0 {
		threshold = defaultSimilarityThreshold
	}
	dbc := dbctx.Context{Ctx: ctx}

	target, err := s.loadCommentVector(dbc, commentID)
	if err != nil {
		return nil, fmt.Errorf("load stance vector: %w", err)
	}
	if target == nil {
		return &SimilarStancesResult{
			Success:         false,
			Message:         "Target comment does not have stance vectors",
			TargetCommentID: commentID,
			Threshold:       threshold,
			Similar:         []SimilarStance{},
		}, nil
	}

	comment, err := s.commentRepo.GetByID(dbc, commentID)
	if err != nil {
		return nil, fmt.Errorf("load comment: %w", err)
	}
	if comment == nil {
		return nil, fmt.Errorf("comment %s: %w", commentID, apperrors.ErrNotFound)
	}

	otherIDs, err := s.commentRepo.ListPublishedIDsByPost(dbc, comment.PostID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	var (
		mu      sync.Mutex
		similar []SimilarStance
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(similarStanceConcurrency)

	for _, otherID := range otherIDs {
		if otherID == commentID {
			continue
		}
		otherID := otherID
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			analysis, err := s.AnalyzeAgreement(gctx, commentID, otherID)
			if err != nil {
				return err
			}
			// Unscored neighbors and disjoint dimension sets are skipped, not
			// fatal.
			if !analysis.Success || analysis.OverallSimilarity < threshold {
				return nil
			}
			mu.Lock()
			similar = append(similar, SimilarStance{
				CommentID:    otherID,
				Similarity:   analysis.OverallSimilarity,
				Agreement:    analysis.OverallAgreement,
				CommonGround: analysis.CommonGround,
			})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compare stances: %w", err)
	}

	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].Similarity > similar[j].Similarity
	})
	if similar == nil {
		similar = []SimilarStance{}
	}

	return &SimilarStancesResult{
		Success:         true,
		TargetCommentID: commentID,
		Threshold:       threshold,
		Similar:         similar,
	}, nil
}

// AnalyzePolarization contrasts dimensions with high spread against those
// the community already agrees on, and names each set in a short
// recommendation.
func (s *consensusAnalyzer) AnalyzePolarization(ctx context.Context, postID uuid.UUID) (*PolarizationResult, error) {
	aggregate, err := s.CalculatePostAggregate(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !aggregate.Success {
		return &PolarizationResult{
			Success:         false,
			Message:         aggregate.Message,
			PostID:          postID,
			Polarized:       []PolarizedDimension{},
			Consensus:       []ConsensusDimension{},
			Recommendations: []PolarizationRecommendation{},
		}, nil
	}

	polarized := []PolarizedDimension{}
	consensus := []ConsensusDimension{}
	for _, agg := range aggregate.Aggregates {
		switch agg.Consensus {
		case ConsensusLow:
			polarized = append(polarized, PolarizedDimension{
				Dimension: agg.Dimension,
				StdDev:    agg.StdDev,
			})
		case ConsensusHigh:
			consensus = append(consensus, ConsensusDimension{
				Dimension:    agg.Dimension,
				WeightedMean: agg.WeightedMean,
				StdDev:       agg.StdDev,
			})
		}
	}

	overall := "low"
	if len(polarized) > len(consensus) {
		overall = "high"
	}

	recommendations := []PolarizationRecommendation{}
	if len(consensus) > 0 {
		names := make([]string, 0, len(consensus))
		for _, d := range consensus {
			names = append(names, d.Dimension)
		}
		recommendations = append(recommendations, PolarizationRecommendation{
			Type:    "common_ground",
			Message: fmt.Sprintf("Build on agreement in: %s", strings.Join(names, ", ")),
		})
	}
	if len(polarized) > 0 {
		names := make([]string, 0, len(polarized))
		for _, d := range polarized {
			names = append(names, d.Dimension)
		}
		recommendations = append(recommendations, PolarizationRecommendation{
			Type:    "bridge_building",
			Message: fmt.Sprintf("Focus dialogue on understanding differences in: %s", strings.Join(names, ", ")),
		})
	}

	return &PolarizationResult{
		Success:             true,
		PostID:              postID,
		OverallPolarization: overall,
		Polarized:           polarized,
		Consensus:           consensus,
		Recommendations:     recommendations,
	}, nil
}
