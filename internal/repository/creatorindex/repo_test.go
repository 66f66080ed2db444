package creatorindex

import (
	"context"
	"errors"
	"testing"

	"github.com/brandpulse/creatorsearch/internal/db"
	"github.com/brandpulse/creatorsearch/internal/domain"
	"github.com/brandpulse/creatorsearch/internal/domain/creator"
	"github.com/brandpulse/creatorsearch/internal/domain/search/filter"
)

type mockStore struct {
	lastSpec   *db.IndexSpec
	lastKNN    *db.KNNQuery
	knnResult  *db.SearchResult
	knnErr     error
	setKey     string
	setFields  map[string]string
	setErr     error
	fetchBack  map[string]string
	fetchErr   error
	deletedKey string
}

func (m *mockStore) EnsureIndex(_ context.Context, spec *db.IndexSpec) error {
	m.lastSpec = spec
	return nil
}

func (m *mockStore) SearchKNN(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	m.lastKNN = q
	return m.knnResult, m.knnErr
}

func (m *mockStore) SetFields(_ context.Context, key string, fields map[string]string) error {
	m.setKey = key
	m.setFields = fields
	return m.setErr
}

func (m *mockStore) FetchFields(_ context.Context, _ string, _ []string) (map[string]string, error) {
	return m.fetchBack, m.fetchErr
}

func (m *mockStore) DeleteKey(_ context.Context, key string) error {
	m.deletedKey = key
	return nil
}

func (m *mockStore) Ping(_ context.Context) error { return nil }

func testCreator() creator.Creator {
	return creator.Reconstruct(
		"creator_1", "PixelPete", "tech_gaming", "macro", "youtube", "us", "bio",
		250_000, 4.2, 800, 4.5, 12,
	)
}

func TestEnsureIndex_SpecShape(t *testing.T) {
	ms := &mockStore{}
	repo := New(ms, 1536).WithHNSW(HNSWConfig{M: 16, EFConstruct: 200})

	if err := repo.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spec := ms.lastSpec
	if spec.Name != IndexName || spec.KeyPrefix != KeyPrefix {
		t.Errorf("unexpected index identity: %+v", spec)
	}
	if spec.VectorDim != 1536 || spec.HNSWM != 16 || spec.HNSWEFConstruct != 200 {
		t.Errorf("unexpected vector settings: %+v", spec)
	}
	if len(spec.TagFields) == 0 || len(spec.NumFields) == 0 {
		t.Error("expected tag and numeric schema fields")
	}
}

func TestQuery_ConvertsEntries(t *testing.T) {
	ms := &mockStore{knnResult: &db.SearchResult{
		Total: 7,
		Entries: []db.SearchEntry{
			{
				Key:   KeyPrefix + "creator_1",
				Score: 0.91,
				Fields: map[string]string{
					fieldName: "PixelPete", fieldNiche: "tech_gaming", fieldPlatform: "youtube",
				},
			},
		},
	}}
	repo := New(ms, 4)

	filters := filter.NewSet()
	filters.SetEquals(filter.AttrNiche, "tech_gaming")

	matches, total, err := repo.Query(context.Background(), []float32{1, 0, 0, 0}, filters, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 7 || len(matches) != 1 {
		t.Fatalf("unexpected result: total=%d matches=%d", total, len(matches))
	}
	m := matches[0]
	if m.CreatorID() != "creator_1" {
		t.Errorf("expected key prefix stripped, got %q", m.CreatorID())
	}
	if m.Score() != 0.91 || m.Metadata()[fieldName] != "PixelPete" {
		t.Errorf("unexpected match payload: %+v", m)
	}
	if ms.lastKNN.IndexName != IndexName || ms.lastKNN.K != 10 {
		t.Errorf("unexpected KNN query: %+v", ms.lastKNN)
	}
}

func TestQuery_EmptyResult(t *testing.T) {
	repo := New(&mockStore{knnResult: &db.SearchResult{}}, 4)

	matches, total, err := repo.Query(context.Background(), []float32{1, 0, 0, 0}, nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 0 || matches != nil {
		t.Errorf("expected empty result, got total=%d matches=%v", total, matches)
	}
}

func TestFetchVector_RoundTrip(t *testing.T) {
	vec := []float32{0.25, -1.5, 3.75}
	ms := &mockStore{fetchBack: map[string]string{fieldVector: vectorToBytes(vec)}}
	repo := New(ms, 3)

	got, err := repo.FetchVector(context.Background(), "creator_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(vec) {
		t.Fatalf("expected %d dims, got %d", len(vec), len(got))
	}
	for i := range vec {
		if got[i] != vec[i] {
			t.Errorf("dim %d: got %v, want %v", i, got[i], vec[i])
		}
	}
}

func TestFetchVector_MissingKey(t *testing.T) {
	ms := &mockStore{fetchErr: &db.Error{Op: db.OpHGetAll, Err: db.ErrKeyNotFound}}
	repo := New(ms, 3)

	_, err := repo.FetchVector(context.Background(), "creator_404")
	if !errors.Is(err, domain.ErrCreatorNotIndexed) {
		t.Errorf("expected ErrCreatorNotIndexed, got %v", err)
	}
}

func TestFetchVector_EmptyVectorField(t *testing.T) {
	ms := &mockStore{fetchBack: map[string]string{fieldVector: ""}}
	repo := New(ms, 3)

	_, err := repo.FetchVector(context.Background(), "creator_1")
	if !errors.Is(err, domain.ErrCreatorNotIndexed) {
		t.Errorf("expected ErrCreatorNotIndexed, got %v", err)
	}
}

func TestUpsert_WritesDocument(t *testing.T) {
	ms := &mockStore{}
	repo := New(ms, 4)
	c := testCreator()

	if err := repo.Upsert(context.Background(), &c, []float32{1, 2, 3, 4}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ms.setKey != KeyPrefix+"creator_1" {
		t.Errorf("unexpected document key %q", ms.setKey)
	}
	if ms.setFields[fieldName] != "PixelPete" || ms.setFields[fieldFollowers] != "250000" {
		t.Errorf("unexpected document fields: %v", ms.setFields)
	}
	if ms.setFields[fieldProfile] == "" || ms.setFields[fieldVector] == "" {
		t.Error("expected profile text and vector fields")
	}
}

func TestUpsert_DimensionMismatch(t *testing.T) {
	repo := New(&mockStore{}, 1536)
	c := testCreator()

	if err := repo.Upsert(context.Background(), &c, []float32{1, 2}); err == nil {
		t.Fatal("expected dimension mismatch error")
	}
}

func TestDelete(t *testing.T) {
	ms := &mockStore{}
	repo := New(ms, 4)

	if err := repo.Delete(context.Background(), "creator_1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ms.deletedKey != KeyPrefix+"creator_1" {
		t.Errorf("unexpected deleted key %q", ms.deletedKey)
	}
}

func TestBytesToVector_RejectsOddLength(t *testing.T) {
	if v := bytesToVector("abc"); v != nil {
		t.Errorf("expected nil for malformed payload, got %v", v)
	}
}
