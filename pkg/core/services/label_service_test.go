package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddLabel(t *testing.T) {
	repo := newFakeRepo()
	svc := NewLabelService(repo)

	label, err := svc.AddLabel(context.Background(), "Eco Tourism")
	require.NoError(t, err)
	assert.Equal(t, "Eco Tourism", label.LabelName)
	assert.True(t, label.IsActive, "new labels default to active")

	labels, total, err := svc.ListLabels(context.Background(), 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, labels, 1)
	assert.Equal(t, "Eco Tourism", labels[0].LabelName)
}

func TestAddLabelRejectsBlankName(t *testing.T) {
	repo := newFakeRepo()
	svc := NewLabelService(repo)

	for _, name := range []string{"", "   ", "\t"} {
		_, err := svc.AddLabel(context.Background(), name)
		assert.ErrorIs(t, err, ErrBlankLabelName)
	}
	assert.Zero(t, repo.labelWrites, "blank input must never reach the gateway")
}

func TestRenameLabel(t *testing.T) {
	repo := newFakeRepo()
	svc := NewLabelService(repo)

	label, err := svc.AddLabel(context.Background(), "Beachs")
	require.NoError(t, err)

	require.NoError(t, svc.RenameLabel(context.Background(), label.ID, "Beaches"))

	got, err := repo.GetLabelByID(context.Background(), label.ID)
	require.NoError(t, err)
	assert.Equal(t, "Beaches", got.LabelName)

	assert.ErrorIs(t, svc.RenameLabel(context.Background(), label.ID, " "), ErrBlankLabelName)
}

func TestToggleActiveTwiceRestoresOriginal(t *testing.T) {
	repo := newFakeRepo()
	svc := NewLabelService(repo)

	label, err := svc.AddLabel(context.Background(), "Seasonal")
	require.NoError(t, err)
	require.True(t, label.IsActive)

	writesBefore := repo.labelWrites

	require.NoError(t, svc.ToggleActive(context.Background(), label.ID, true))
	got, _ := repo.GetLabelByID(context.Background(), label.ID)
	assert.False(t, got.IsActive)

	require.NoError(t, svc.ToggleActive(context.Background(), label.ID, got.IsActive))
	got, _ = repo.GetLabelByID(context.Background(), label.ID)
	assert.True(t, got.IsActive)

	assert.Equal(t, 2, repo.labelWrites-writesBefore, "exactly two write calls")
	assert.Equal(t, []bool{false, true}, repo.activeWrites)
}

func TestListLabelsPagination(t *testing.T) {
	repo := newFakeRepo()
	svc := NewLabelService(repo)

	for i := 0; i < 23; i++ {
		_, err := svc.AddLabel(context.Background(), "label")
		require.NoError(t, err)
	}

	// totalPages = ceil(23/10) = 3
	page1, total, err := svc.ListLabels(context.Background(), 1)
	require.NoError(t, err)
	assert.EqualValues(t, 23, total)
	assert.Len(t, page1, 10)
	assert.EqualValues(t, 23, page1[0].ID, "ordered by id descending")

	page3, _, err := svc.ListLabels(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, page3, 3)
	assert.EqualValues(t, 3, page3[0].ID)

	// out-of-range pages clamp to the first page
	clamped, _, err := svc.ListLabels(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, clamped, 10)
}
