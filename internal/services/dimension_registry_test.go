package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	apperrors "github.com/yungbote/delibrium-backend/internal/pkg/errors"
)

func registryFixture(tb testing.TB) (*fakeDimensionRepo, DimensionRegistry) {
	tb.Helper()
	dims := &fakeDimensionRepo{}
	return dims, NewDimensionRegistry(dims, testLogger(tb))
}

func TestCreateFromTemplateKnownName(t *testing.T) {
	_, registry := registryFixture(t)

	postID := uuid.New()
	created, err := registry.CreateFromTemplate(context.Background(), "climate_policy", &postID, nil)
	if err != nil {
		t.Fatalf("CreateFromTemplate: %v", err)
	}
	if len(created) != 5 {
		t.Fatalf("expected 5 climate dimensions, got %d", len(created))
	}
	if created[0].Name != "economic_impact" || created[0].Position != 0 {
		t.Fatalf("unexpected first dimension: %+v", created[0])
	}
	for _, dim := range created {
		if !dim.Active {
			t.Fatalf("template dimension not active: %+v", dim)
		}
		if dim.PostID == nil || *dim.PostID != postID {
			t.Fatalf("template dimension not scoped to post: %+v", dim)
		}
	}
}

func TestCreateFromTemplateUnknownNameFallsBack(t *testing.T) {
	_, registry := registryFixture(t)

	postID := uuid.New()
	created, err := registry.CreateFromTemplate(context.Background(), "no_such_template", &postID, nil)
	if err != nil {
		t.Fatalf("unknown template must not error: %v", err)
	}
	if len(created) != len(dimensionTemplates[defaultTemplateName]) {
		t.Fatalf("expected the general template, got %d dimensions", len(created))
	}
	if created[0].Name != "feasibility" {
		t.Fatalf("unexpected fallback dimension: %+v", created[0])
	}
}

func TestGetDimensionsScopeResolution(t *testing.T) {
	_, registry := registryFixture(t)
	ctx := context.Background()

	postID := uuid.New()
	groupID := uuid.New()

	if _, err := registry.CreateFromTemplate(ctx, "public_health", &postID, nil); err != nil {
		t.Fatalf("seed post dimensions: %v", err)
	}
	if _, err := registry.CreateFromTemplate(ctx, "general", nil, &groupID); err != nil {
		t.Fatalf("seed group dimensions: %v", err)
	}

	byPost, err := registry.GetDimensions(ctx, &postID, &groupID)
	if err != nil {
		t.Fatalf("GetDimensions by post: %v", err)
	}
	if len(byPost) != 4 || byPost[0].Name != "public_safety" {
		t.Fatalf("post scope wrong: %+v", byPost)
	}

	byGroup, err := registry.GetDimensions(ctx, nil, &groupID)
	if err != nil {
		t.Fatalf("GetDimensions by group: %v", err)
	}
	if len(byGroup) != 4 || byGroup[0].Name != "feasibility" {
		t.Fatalf("group scope wrong: %+v", byGroup)
	}
	for _, dim := range byGroup {
		if dim.PostID != nil {
			t.Fatalf("group scope returned post-level dimension: %+v", dim)
		}
	}
}

func TestUpdateDimensionNotFound(t *testing.T) {
	_, registry := registryFixture(t)

	name := "renamed"
	_, err := registry.UpdateDimension(context.Background(), uuid.New(), DimensionPatch{Name: &name})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateDimensionAppliesPatch(t *testing.T) {
	_, registry := registryFixture(t)
	ctx := context.Background()

	postID := uuid.New()
	created, err := registry.CreateCustomDimension(ctx, CustomDimensionInput{
		PostID:        &postID,
		Name:          "local_jobs",
		Description:   "Effect on local employment",
		NegativeLabel: "Costs jobs",
		PositiveLabel: "Creates jobs",
		Position:      7,
	})
	if err != nil {
		t.Fatalf("CreateCustomDimension: %v", err)
	}

	desc := "Effect on regional employment"
	position := 2
	updated, err := registry.UpdateDimension(ctx, created.ID, DimensionPatch{
		Description: &desc,
		Position:    &position,
	})
	if err != nil {
		t.Fatalf("UpdateDimension: %v", err)
	}
	if updated.Description != desc || updated.Position != 2 {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.Name != "local_jobs" {
		t.Fatalf("untouched field changed: %+v", updated)
	}
}

func TestDeactivateDimensionHidesFromListing(t *testing.T) {
	_, registry := registryFixture(t)
	ctx := context.Background()

	postID := uuid.New()
	created, err := registry.CreateFromTemplate(ctx, "general", &postID, nil)
	if err != nil {
		t.Fatalf("seed dimensions: %v", err)
	}

	retired, err := registry.DeactivateDimension(ctx, created[0].ID)
	if err != nil {
		t.Fatalf("DeactivateDimension: %v", err)
	}
	if retired.Active {
		t.Fatalf("dimension still active: %+v", retired)
	}

	remaining, err := registry.GetDimensions(ctx, &postID, nil)
	if err != nil {
		t.Fatalf("GetDimensions: %v", err)
	}
	if len(remaining) != len(created)-1 {
		t.Fatalf("expected %d dimensions after deactivation, got %d", len(created)-1, len(remaining))
	}
	for _, dim := range remaining {
		if dim.ID == created[0].ID {
			t.Fatalf("deactivated dimension still listed")
		}
	}
}

func TestDeactivateDimensionNotFound(t *testing.T) {
	_, registry := registryFixture(t)

	_, err := registry.DeactivateDimension(context.Background(), uuid.New())
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetTemplatesReturnsCopy(t *testing.T) {
	_, registry := registryFixture(t)

	templates := registry.GetTemplates()
	if len(templates) != len(dimensionTemplates) {
		t.Fatalf("expected %d templates, got %d", len(dimensionTemplates), len(templates))
	}

	templates["climate_policy"][0].Name = "mutated"
	if dimensionTemplates["climate_policy"][0].Name != "economic_impact" {
		t.Fatalf("template registry was mutated through the returned copy")
	}
}
