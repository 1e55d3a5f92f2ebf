package category

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock Repository
type mockRepo struct {
	addCategoryFunc func(ctx context.Context, c *Category) error
	replaceAllFunc  func(ctx context.Context, categories []*Category) error
}

func (m *mockRepo) AddCategory(ctx context.Context, c *Category) error {
	if m.addCategoryFunc != nil {
		return m.addCategoryFunc(ctx, c)
	}

	return nil
}

func (m *mockRepo) GetCategory(ctx context.Context, id string) (*Category, error) {
	return nil, ErrNotFound
}

func (m *mockRepo) UpdateCategory(ctx context.Context, id string, params UpdateParams) error {
	return nil
}

func (m *mockRepo) DeleteCategory(ctx context.Context, id string) error { return nil }

func (m *mockRepo) ListCategories(ctx context.Context) ([]*Category, error) { return nil, nil }

func (m *mockRepo) ReplaceAll(ctx context.Context, categories []*Category) error {
	if m.replaceAllFunc != nil {
		return m.replaceAllFunc(ctx, categories)
	}

	return nil
}

func TestService_Create(t *testing.T) {
	var added *Category

	repo := &mockRepo{
		addCategoryFunc: func(_ context.Context, c *Category) error {
			added = c
			return nil
		},
	}

	svc := NewService(repo)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 5, 10, 30, 0, 0, time.UTC)
	}

	got, err := svc.Create(context.Background(), CreateParams{Name: "Garden", Icon: "🌱", Color: "#00AA00"})
	require.NoError(t, err)
	require.NotNil(t, added)

	assert.Equal(t, "custom_1772706600000", got.ID, "id derives from the creation instant")
	assert.Equal(t, "Garden", got.Name)
	assert.False(t, got.IsDefault)
	assert.Same(t, added, got)
}

func TestService_ResetToDefaults(t *testing.T) {
	var replaced []*Category

	repo := &mockRepo{
		replaceAllFunc: func(_ context.Context, categories []*Category) error {
			replaced = categories
			return nil
		},
	}

	svc := NewService(repo)

	require.NoError(t, svc.ResetToDefaults(context.Background()))
	require.Len(t, replaced, len(Defaults()))

	for _, c := range replaced {
		assert.True(t, c.IsDefault)
	}
}

func TestDefaults(t *testing.T) {
	a := Defaults()
	b := Defaults()

	require.NotEmpty(t, a)
	assert.NotSame(t, a[0], b[0], "each call returns fresh values")

	ids := make(map[string]bool, len(a))
	for _, c := range a {
		ids[c.ID] = true
	}

	for _, id := range []string{"food", "transport", "shopping", "entertainment", "health", "housing", "utilities", OtherID} {
		assert.True(t, ids[id], id)
	}
}
