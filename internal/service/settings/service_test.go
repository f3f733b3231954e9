package settings

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/commodity-costing/internal/domain/models"
	"github.com/mamadbah2/commodity-costing/internal/repository"
)

type fakeRepo struct {
	stored map[string]models.Settings
	err    error
}

func (f *fakeRepo) GetSettings(_ context.Context, userID string) (models.Settings, error) {
	if f.err != nil {
		return models.Settings{}, f.err
	}
	s, ok := f.stored[userID]
	if !ok {
		return models.Settings{}, repository.ErrNotFound
	}
	return s, nil
}

func (f *fakeRepo) SaveSettings(_ context.Context, s models.Settings) error {
	if f.err != nil {
		return f.err
	}
	if f.stored == nil {
		f.stored = map[string]models.Settings{}
	}
	f.stored[s.UserID] = s
	return nil
}

func TestGetReturnsDefaults(t *testing.T) {
	svc := NewService(&fakeRepo{}, 150, nil)

	got, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, 150.0, got.DefaultExpenses)
	require.Equal(t, models.FontMedium, got.FontSize)
}

func TestUpdateAndExpensesSnapshot(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, 150, nil)
	ctx := context.Background()

	updated, err := svc.Update(ctx, "u1", 180, models.FontLarge)
	require.NoError(t, err)
	require.Equal(t, 180.0, updated.DefaultExpenses)
	require.False(t, updated.UpdatedAt.IsZero())

	require.Equal(t, 180.0, svc.Expenses(ctx, "u1"))
	require.Equal(t, 150.0, svc.Expenses(ctx, "u2"))
	require.Equal(t, 150.0, svc.Expenses(ctx, ""))

	zero, err := svc.Update(ctx, "u3", 0, "")
	require.NoError(t, err)
	require.Equal(t, models.FontMedium, zero.FontSize)
	require.Equal(t, 0.0, svc.Expenses(ctx, "u3"))
}

func TestUpdateValidation(t *testing.T) {
	svc := NewService(&fakeRepo{}, 150, nil)
	ctx := context.Background()

	_, err := svc.Update(ctx, "u1", -1, models.FontMedium)
	require.ErrorIs(t, err, ErrInvalidExpenses)

	_, err = svc.Update(ctx, "u1", math.NaN(), models.FontMedium)
	require.ErrorIs(t, err, ErrInvalidExpenses)

	_, err = svc.Update(ctx, "u1", 100, "huge")
	require.ErrorIs(t, err, ErrInvalidFontSize)

	_, err = svc.Update(ctx, "", 100, models.FontMedium)
	require.ErrorIs(t, err, ErrMissingUser)
}

func TestExpensesFallsBackOnStorageError(t *testing.T) {
	svc := NewService(&fakeRepo{err: errors.New("timeout")}, 125, nil)

	require.Equal(t, 125.0, svc.Expenses(context.Background(), "u1"))

	_, err := svc.Get(context.Background(), "u1")
	require.Error(t, err)
}
