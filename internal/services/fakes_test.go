package services

import (
	"context"
	"sort"

	"github.com/google/uuid"

	types "github.com/yungbote/delibrium-backend/internal/domain"
	"github.com/yungbote/delibrium-backend/internal/pkg/dbctx"
)

func dbcBG() dbctx.Context { return dbctx.Context{Ctx: context.Background()} }

type fakeDimensionRepo struct {
	rows []*types.Dimension
}

func (f *fakeDimensionRepo) Create(_ dbctx.Context, rows []*types.Dimension) ([]*types.Dimension, error) {
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
		f.rows = append(f.rows, row)
	}
	return rows, nil
}

func (f *fakeDimensionRepo) GetByID(_ dbctx.Context, id uuid.UUID) (*types.Dimension, error) {
	for _, row := range f.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, nil
}

func (f *fakeDimensionRepo) ListActive(_ dbctx.Context) ([]*types.Dimension, error) {
	out := []*types.Dimension{}
	for _, row := range f.rows {
		if row.Active {
			out = append(out, row)
		}
	}
	sortDimensions(out)
	return out, nil
}

func (f *fakeDimensionRepo) ListActiveByPost(_ dbctx.Context, postID uuid.UUID) ([]*types.Dimension, error) {
	out := []*types.Dimension{}
	for _, row := range f.rows {
		if row.Active && row.PostID != nil && *row.PostID == postID {
			out = append(out, row)
		}
	}
	sortDimensions(out)
	return out, nil
}

func (f *fakeDimensionRepo) ListActiveByGroup(_ dbctx.Context, groupID uuid.UUID) ([]*types.Dimension, error) {
	out := []*types.Dimension{}
	for _, row := range f.rows {
		if row.Active && row.PostID == nil && row.GroupID != nil && *row.GroupID == groupID {
			out = append(out, row)
		}
	}
	sortDimensions(out)
	return out, nil
}

func (f *fakeDimensionRepo) UpdateFields(_ dbctx.Context, id uuid.UUID, fields map[string]interface{}) error {
	for _, row := range f.rows {
		if row.ID != id {
			continue
		}
		if v, ok := fields["name"].(string); ok {
			row.Name = v
		}
		if v, ok := fields["description"].(string); ok {
			row.Description = v
		}
		if v, ok := fields["negative_label"].(string); ok {
			row.NegativeLabel = v
		}
		if v, ok := fields["positive_label"].(string); ok {
			row.PositiveLabel = v
		}
		if v, ok := fields["position"].(int); ok {
			row.Position = v
		}
		if v, ok := fields["active"].(bool); ok {
			row.Active = v
		}
	}
	return nil
}

func sortDimensions(rows []*types.Dimension) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Position < rows[j].Position })
}

type fakeCommentRepo struct {
	rows []*types.Comment
}

func (f *fakeCommentRepo) add(row *types.Comment) *types.Comment {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.Status == "" {
		row.Status = types.CommentStatusPublished
	}
	f.rows = append(f.rows, row)
	return row
}

func (f *fakeCommentRepo) GetByID(_ dbctx.Context, id uuid.UUID) (*types.Comment, error) {
	for _, row := range f.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, nil
}

func (f *fakeCommentRepo) ListPublishedIDsByPost(_ dbctx.Context, postID uuid.UUID) ([]uuid.UUID, error) {
	out := []uuid.UUID{}
	for _, row := range f.rows {
		if row.PostID == postID && !row.Deleted && row.Status == types.CommentStatusPublished {
			out = append(out, row.ID)
		}
	}
	return out, nil
}

type fakeStanceVectorRepo struct {
	dims *fakeDimensionRepo
	rows map[[2]uuid.UUID]*types.StanceVector
}

func newFakeStanceVectorRepo(dims *fakeDimensionRepo) *fakeStanceVectorRepo {
	return &fakeStanceVectorRepo{dims: dims, rows: map[[2]uuid.UUID]*types.StanceVector{}}
}

func (f *fakeStanceVectorRepo) Upsert(_ dbctx.Context, row *types.StanceVector) error {
	key := [2]uuid.UUID{row.CommentID, row.DimensionID}
	if existing, ok := f.rows[key]; ok {
		existing.StanceValue = row.StanceValue
		existing.Confidence = row.Confidence
		existing.Explanation = row.Explanation
		existing.RawResponse = row.RawResponse
		existing.ProcessingTimeMs = row.ProcessingTimeMs
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	f.rows[key] = row
	return nil
}

func (f *fakeStanceVectorRepo) ListActiveByComment(dbc dbctx.Context, commentID uuid.UUID) ([]*types.StanceVector, error) {
	return f.ListActiveByComments(dbc, []uuid.UUID{commentID})
}

func (f *fakeStanceVectorRepo) ListActiveByComments(_ dbctx.Context, commentIDs []uuid.UUID) ([]*types.StanceVector, error) {
	wanted := map[uuid.UUID]struct{}{}
	for _, id := range commentIDs {
		wanted[id] = struct{}{}
	}
	out := []*types.StanceVector{}
	for _, row := range f.rows {
		if _, ok := wanted[row.CommentID]; !ok {
			continue
		}
		dim, _ := f.dims.GetByID(dbctx.Context{}, row.DimensionID)
		if dim == nil || !dim.Active {
			continue
		}
		row.Dimension = dim
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Dimension.Position < out[j].Dimension.Position
	})
	return out, nil
}

func (f *fakeStanceVectorRepo) DeleteByComment(_ dbctx.Context, commentID uuid.UUID) error {
	for key := range f.rows {
		if key[0] == commentID {
			delete(f.rows, key)
		}
	}
	return nil
}

type fakeOracle struct {
	fn    func(user string) (map[string]any, []byte, error)
	calls int
}

func (f *fakeOracle) GenerateJSON(_ context.Context, _ string, user string, _ string, _ map[string]any) (map[string]any, []byte, error) {
	f.calls++
	return f.fn(user)
}
