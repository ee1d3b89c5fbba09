package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/delibrium-backend/internal/data/repos"
	types "github.com/yungbote/delibrium-backend/internal/domain"
	"github.com/yungbote/delibrium-backend/internal/pkg/dbctx"
	apperrors "github.com/yungbote/delibrium-backend/internal/pkg/errors"
	"github.com/yungbote/delibrium-backend/internal/pkg/logger"
)

// CustomDimensionInput defines a caller-provided axis.
type CustomDimensionInput struct {
	PostID        *uuid.UUID
	GroupID       *uuid.UUID
	Name          string
	Description   string
	NegativeLabel string
	PositiveLabel string
	Position      int
}

// DimensionPatch applies partial updates; nil fields are left untouched.
type DimensionPatch struct {
	Name          *string
	Description   *string
	NegativeLabel *string
	PositiveLabel *string
	Position      *int
}

type DimensionRegistry interface {
	GetTemplates() map[string][]TemplateDimension
	CreateFromTemplate(ctx context.Context, templateName string, postID, groupID *uuid.UUID) ([]*types.Dimension, error)
	GetDimensions(ctx context.Context, postID, groupID *uuid.UUID) ([]*types.Dimension, error)
	GetDimensionByID(ctx context.Context, id uuid.UUID) (*types.Dimension, error)
	CreateCustomDimension(ctx context.Context, input CustomDimensionInput) (*types.Dimension, error)
	UpdateDimension(ctx context.Context, id uuid.UUID, patch DimensionPatch) (*types.Dimension, error)
	DeactivateDimension(ctx context.Context, id uuid.UUID) (*types.Dimension, error)
}

type dimensionRegistry struct {
	dimensionRepo repos.DimensionRepo
	log           *logger.Logger
}

func NewDimensionRegistry(dimensionRepo repos.DimensionRepo, log *logger.Logger) DimensionRegistry {
	return &dimensionRegistry{
		dimensionRepo: dimensionRepo,
		log:           log.With("service", "DimensionRegistry"),
	}
}

func (s *dimensionRegistry) GetTemplates() map[string][]TemplateDimension {
	out := make(map[string][]TemplateDimension, len(dimensionTemplates))
	for name, dims := range dimensionTemplates {
		out[name] = append([]TemplateDimension(nil), dims...)
	}
	return out
}

// CreateFromTemplate instantiates a named template's axes for a post or
// group. An unknown template name falls back to the general template; that
// is a deliberate default, not an error.
func (s *dimensionRegistry) CreateFromTemplate(ctx context.Context, templateName string, postID, groupID *uuid.UUID) ([]*types.Dimension, error) {
	template, ok := dimensionTemplates[templateName]
	if !ok {
		s.log.Debug("Unknown template name, using default", "template", templateName, "default", defaultTemplateName)
		template = dimensionTemplates[defaultTemplateName]
	}

	rows := make([]*types.Dimension, 0, len(template))
	for _, dim := range template {
		rows = append(rows, &types.Dimension{
			ID:            uuid.New(),
			PostID:        postID,
			GroupID:       groupID,
			Name:          dim.Name,
			Description:   dim.Description,
			NegativeLabel: dim.NegativeLabel,
			PositiveLabel: dim.PositiveLabel,
			Position:      dim.Position,
			Active:        true,
		})
	}

	dbc := dbctx.Context{Ctx: ctx}
	created, err := s.dimensionRepo.Create(dbc, rows)
	if err != nil {
		return nil, fmt.Errorf("create dimensions from template: %w", err)
	}

	s.log.Info("Created dimensions from template",
		"template", templateName,
		"post_id", postID,
		"group_id", groupID,
		"count", len(created),
	)
	return created, nil
}

// GetDimensions resolves the active axes for a scope: post-level when a post
// id is given, otherwise the group-level fallback set, otherwise all active.
func (s *dimensionRegistry) GetDimensions(ctx context.Context, postID, groupID *uuid.UUID) ([]*types.Dimension, error) {
	dbc := dbctx.Context{Ctx: ctx}
	switch {
	case postID != nil && *postID != uuid.Nil:
		return s.dimensionRepo.ListActiveByPost(dbc, *postID)
	case groupID != nil && *groupID != uuid.Nil:
		return s.dimensionRepo.ListActiveByGroup(dbc, *groupID)
	default:
		return s.dimensionRepo.ListActive(dbc)
	}
}

func (s *dimensionRegistry) GetDimensionByID(ctx context.Context, id uuid.UUID) (*types.Dimension, error) {
	row, err := s.dimensionRepo.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, fmt.Errorf("get dimension: %w", err)
	}
	if row == nil {
		return nil, fmt.Errorf("dimension %s: %w", id, apperrors.ErrNotFound)
	}
	return row, nil
}

func (s *dimensionRegistry) CreateCustomDimension(ctx context.Context, input CustomDimensionInput) (*types.Dimension, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("dimension name required: %w", apperrors.ErrInvalidArgument)
	}

	row := &types.Dimension{
		ID:            uuid.New(),
		PostID:        input.PostID,
		GroupID:       input.GroupID,
		Name:          input.Name,
		Description:   input.Description,
		NegativeLabel: input.NegativeLabel,
		PositiveLabel: input.PositiveLabel,
		Position:      input.Position,
		Active:        true,
	}

	created, err := s.dimensionRepo.Create(dbctx.Context{Ctx: ctx}, []*types.Dimension{row})
	if err != nil {
		return nil, fmt.Errorf("create custom dimension: %w", err)
	}

	s.log.Info("Created custom dimension", "dimension_id", row.ID, "name", row.Name)
	return created[0], nil
}

func (s *dimensionRegistry) UpdateDimension(ctx context.Context, id uuid.UUID, patch DimensionPatch) (*types.Dimension, error) {
	dbc := dbctx.Context{Ctx: ctx}

	existing, err := s.dimensionRepo.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("get dimension: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("dimension %s: %w", id, apperrors.ErrNotFound)
	}

	fields := map[string]interface{}{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.NegativeLabel != nil {
		fields["negative_label"] = *patch.NegativeLabel
	}
	if patch.PositiveLabel != nil {
		fields["positive_label"] = *patch.PositiveLabel
	}
	if patch.Position != nil {
		fields["position"] = *patch.Position
	}
	if len(fields) == 0 {
		return existing, nil
	}

	if err := s.dimensionRepo.UpdateFields(dbc, id, fields); err != nil {
		return nil, fmt.Errorf("update dimension: %w", err)
	}

	s.log.Info("Updated dimension", "dimension_id", id)
	return s.dimensionRepo.GetByID(dbc, id)
}

// DeactivateDimension retires an axis without deleting it. Stored stance
// vectors keep their reference; consensus reads exclude inactive dimensions.
func (s *dimensionRegistry) DeactivateDimension(ctx context.Context, id uuid.UUID) (*types.Dimension, error) {
	dbc := dbctx.Context{Ctx: ctx}

	existing, err := s.dimensionRepo.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("get dimension: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("dimension %s: %w", id, apperrors.ErrNotFound)
	}

	if err := s.dimensionRepo.UpdateFields(dbc, id, map[string]interface{}{"active": false}); err != nil {
		return nil, fmt.Errorf("deactivate dimension: %w", err)
	}

	s.log.Info("Deactivated dimension", "dimension_id", id)
	return s.dimensionRepo.GetByID(dbc, id)
}
