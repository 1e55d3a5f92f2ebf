package expense_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/akablan/wari/internal/expense"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    expense.CreateParams
		setupMock func(m *expense.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: expense.CreateParams{
				Amount:      12.5,
				Description: "Groceries",
				CategoryID:  "food",
				Date:        time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
			},
			setupMock: func(m *expense.MockRepository) {
				m.EXPECT().
					AddExpense(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *expense.Expense) error {
						e.CreatedAt = time.Now()
						e.UpdatedAt = e.CreatedAt
						return nil
					})
			},
			wantErr: false,
		},
		{
			name:   "RepoError",
			params: expense.CreateParams{Amount: 5},
			setupMock: func(m *expense.MockRepository) {
				m.EXPECT().
					AddExpense(gomock.Any(), gomock.Any()).
					Return(errors.New("disk error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := expense.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := expense.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEqual(t, uuid.Nil, got.ID)
			assert.Equal(t, tt.params.Amount, got.Amount)
			assert.Equal(t, tt.params.CategoryID, got.CategoryID)
		})
	}
}

func TestService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := expense.NewMockRepository(ctrl)
	svc := expense.NewService(repo)

	id := uuid.New()
	repo.EXPECT().
		GetExpense(gomock.Any(), id).
		Return(nil, expense.ErrNotFound)

	_, err := svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, expense.ErrNotFound)
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := expense.NewMockRepository(ctrl)
	svc := expense.NewService(repo)

	id := uuid.New()
	amount := 42.0

	repo.EXPECT().
		UpdateExpense(gomock.Any(), id, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, params expense.UpdateParams) error {
			require.NotNil(t, params.Amount)
			assert.Equal(t, amount, *params.Amount)
			assert.Nil(t, params.Description)
			return nil
		})

	err := svc.Update(context.Background(), id, expense.UpdateParams{Amount: &amount})
	assert.NoError(t, err)
}

func TestService_ReassignCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := expense.NewMockRepository(ctrl)
	svc := expense.NewService(repo)

	matching1 := &expense.Expense{ID: uuid.New(), CategoryID: "custom_123"}
	matching2 := &expense.Expense{ID: uuid.New(), CategoryID: "custom_123"}
	other := &expense.Expense{ID: uuid.New(), CategoryID: "food"}

	repo.EXPECT().
		ListExpenses(gomock.Any()).
		Return([]*expense.Expense{matching1, other, matching2}, nil)

	for _, e := range []*expense.Expense{matching1, matching2} {
		repo.EXPECT().
			UpdateExpense(gomock.Any(), e.ID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, params expense.UpdateParams) error {
				require.NotNil(t, params.CategoryID)
				assert.Equal(t, "other", *params.CategoryID)
				return nil
			})
	}

	err := svc.ReassignCategory(context.Background(), "custom_123", "other")
	assert.NoError(t, err)
}
