package kb

import (
	"context"
	"strings"
	"testing"

	"github.com/Vovarama1992/mental_support/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	docs map[string]Document
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: map[string]Document{}}
}

func (f *fakeStore) Upsert(_ context.Context, doc Document, _ []float32) error {
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeStore) Search(_ context.Context, _ []float32, topK int) ([]Document, error) {
	var out []Document
	for _, d := range f.docs {
		if len(out) == topK {
			break
		}
		out = append(out, d)
	}
	return out, nil
}

type fakeEmbedder struct {
	dim int
}

func (f *fakeEmbedder) GetEmbedding(_ context.Context, _ string) ([]float32, error) {
	return make([]float32, f.dim), nil
}

func newTestService(store Store, dim int) Service {
	return NewService(store, &fakeEmbedder{dim: dim},
		config.VectorConfig{Table: "mental_health_kb", TopK: 5},
		config.EmbeddingConfig{Model: "text-embedding-3-small", Dimension: 4},
	)
}

func TestAddDocument(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, 4)

	id, err := svc.AddDocument(context.Background(), "Sleep hygiene improves mood.", "who.int")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(id, "doc_"))
	assert.Len(t, store.docs, 1)
	assert.Equal(t, "who.int", store.docs[id].Source)
}

func TestAddDocumentStableID(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, 4)
	ctx := context.Background()

	id1, err := svc.AddDocument(ctx, "Same content.", "a")
	require.NoError(t, err)
	id2, err := svc.AddDocument(ctx, "Same content.", "b")
	require.NoError(t, err)

	// одинаковый контент → upsert, не дубликат
	assert.Equal(t, id1, id2)
	assert.Len(t, store.docs, 1)
}

func TestAddDocumentDimensionMismatch(t *testing.T) {
	svc := newTestService(newFakeStore(), 3)

	_, err := svc.AddDocument(context.Background(), "bad", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dimension")
}

func TestSnippets(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, 4)
	ctx := context.Background()

	_, err := svc.AddDocument(ctx, "Grounding techniques reduce anxiety.", "nimh.nih.gov")
	require.NoError(t, err)

	snippets, err := svc.Snippets(ctx, "anxiety", 0)
	require.NoError(t, err)

	require.Len(t, snippets, 1)
	assert.Equal(t, "Grounding techniques reduce anxiety.", snippets[0])
}
