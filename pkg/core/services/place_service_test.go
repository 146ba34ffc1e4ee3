package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelviet/places-admin/pkg/core/domain"
	"github.com/travelviet/places-admin/pkg/ports"
)

// fakeRepo is an in-memory ports.Repository recording write calls.
type fakeRepo struct {
	places map[int64]*domain.Place
	labels map[int64]*domain.Label

	nextPlaceID int64
	nextLabelID int64

	placeWrites  int
	labelWrites  int
	activeWrites []bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		places: map[int64]*domain.Place{},
		labels: map[int64]*domain.Label{},
	}
}

func (f *fakeRepo) CreatePlace(ctx context.Context, place *domain.Place) error {
	f.nextPlaceID++
	place.ID = f.nextPlaceID
	copied := *place
	f.places[place.ID] = &copied
	f.placeWrites++
	return nil
}

func (f *fakeRepo) GetPlaceByID(ctx context.Context, id int64) (*domain.Place, error) {
	place, ok := f.places[id]
	if !ok {
		return nil, nil
	}
	copied := *place
	return &copied, nil
}

func (f *fakeRepo) UpdatePlace(ctx context.Context, place *domain.Place) error {
	copied := *place
	f.places[place.ID] = &copied
	f.placeWrites++
	return nil
}

func (f *fakeRepo) ListPlaces(ctx context.Context, limit, offset int) ([]domain.Place, error) {
	out := []domain.Place{}
	for id := f.nextPlaceID - int64(offset); id > 0 && len(out) < limit; id-- {
		if p, ok := f.places[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeRepo) CountPlaces(ctx context.Context) (int64, error) {
	return int64(len(f.places)), nil
}

func (f *fakeRepo) DumpPlaces(ctx context.Context) ([]domain.Place, error) {
	return f.ListPlaces(ctx, len(f.places), 0)
}

func (f *fakeRepo) CreateLabel(ctx context.Context, label *domain.Label) error {
	f.nextLabelID++
	label.ID = f.nextLabelID
	copied := *label
	f.labels[label.ID] = &copied
	f.labelWrites++
	return nil
}

func (f *fakeRepo) GetLabelByID(ctx context.Context, id int64) (*domain.Label, error) {
	label, ok := f.labels[id]
	if !ok {
		return nil, nil
	}
	copied := *label
	return &copied, nil
}

func (f *fakeRepo) UpdateLabelName(ctx context.Context, id int64, name string) error {
	if label, ok := f.labels[id]; ok {
		label.LabelName = name
	}
	f.labelWrites++
	return nil
}

func (f *fakeRepo) SetLabelActive(ctx context.Context, id int64, active bool) error {
	if label, ok := f.labels[id]; ok {
		label.IsActive = active
	}
	f.labelWrites++
	f.activeWrites = append(f.activeWrites, active)
	return nil
}

func (f *fakeRepo) ListLabels(ctx context.Context, limit, offset int) ([]domain.Label, error) {
	out := []domain.Label{}
	for id := f.nextLabelID - int64(offset); id > 0 && len(out) < limit; id-- {
		if l, ok := f.labels[id]; ok {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeRepo) CountLabels(ctx context.Context) (int64, error) {
	return int64(len(f.labels)), nil
}

func (f *fakeRepo) DumpLabels(ctx context.Context) ([]domain.Label, error) {
	return f.ListLabels(ctx, len(f.labels), 0)
}

// fakeStore counts uploads and can be told to fail.
type fakeStore struct {
	mu      sync.Mutex
	uploads int
	failOn  string
}

func (f *fakeStore) Upload(ctx context.Context, folder, filename string, size int64, body io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if filename == f.failOn {
		return "", errors.New("storage rejected upload")
	}
	f.uploads++
	return fmt.Sprintf("https://cdn.example.com/places/%s/%d-%s", folder, f.uploads, filename), nil
}

func validInput() ports.PlaceInput {
	return ports.PlaceInput{
		PlaceName:        "Ha Long Bay",
		PlaceLabel:       []string{"beach", "nature"},
		PhoneNumber:      "+84 123 456 789",
		VisitTime:        "2-3 hours",
		OpenCloseHour:    "07:00 - 18:00",
		Address:          "Quang Ninh",
		Description:      "UNESCO World Heritage bay",
		Latitude:         20.9101,
		Longitude:        107.1839,
		PlaceImageFolder: "ha-long-bay",
	}
}

func TestCreatePlaceRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ports.PlaceInput)
		field  string
	}{
		{"missing name", func(i *ports.PlaceInput) { i.PlaceName = "" }, "place_name"},
		{"missing phone", func(i *ports.PlaceInput) { i.PhoneNumber = " " }, "phone_number"},
		{"missing visit time", func(i *ports.PlaceInput) { i.VisitTime = "" }, "visit_time"},
		{"missing hours", func(i *ports.PlaceInput) { i.OpenCloseHour = "" }, "open_close_hour"},
		{"missing address", func(i *ports.PlaceInput) { i.Address = "" }, "address"},
		{"missing description", func(i *ports.PlaceInput) { i.Description = "" }, "description"},
		{"missing image folder", func(i *ports.PlaceInput) { i.PlaceImageFolder = "" }, "place_image_folder"},
		{"no labels", func(i *ports.PlaceInput) { i.PlaceLabel = nil }, "place_label"},
		{"blank labels", func(i *ports.PlaceInput) { i.PlaceLabel = []string{" ", ""} }, "place_label"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			store := &fakeStore{}
			svc := NewPlaceService(repo, store)

			input := validInput()
			tt.mutate(&input)

			_, err := svc.CreatePlace(context.Background(), input, nil)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
			assert.Zero(t, repo.placeWrites, "gateway must not be called on validation failure")
			assert.Zero(t, store.uploads, "storage must not be called on validation failure")
		})
	}
}

func TestCreatePlaceCoordinateRanges(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		field    string
	}{
		{"latitude too low", -90.5, 0, "latitude"},
		{"latitude too high", 91, 0, "latitude"},
		{"longitude too low", 0, -180.1, "longitude"},
		{"longitude too high", 0, 181, "longitude"},
		{"latitude not a number", math.NaN(), 0, "latitude"},
		{"longitude not a number", 0, math.NaN(), "longitude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			store := &fakeStore{}
			svc := NewPlaceService(repo, store)

			input := validInput()
			input.Latitude = tt.lat
			input.Longitude = tt.lon

			_, err := svc.CreatePlace(context.Background(), input, []ports.ImageFile{
				{Name: "one.jpg", Size: 100},
			})

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
			assert.Zero(t, repo.placeWrites)
			assert.Zero(t, store.uploads)
		})
	}
}

func TestCreatePlaceUploadsThenInserts(t *testing.T) {
	repo := newFakeRepo()
	store := &fakeStore{}
	svc := NewPlaceService(repo, store)

	files := []ports.ImageFile{
		{Name: "one.jpg", Size: 100, Body: nil},
		{Name: "two.png", Size: 200, Body: nil},
	}

	place, err := svc.CreatePlace(context.Background(), validInput(), files)
	require.NoError(t, err)

	assert.Equal(t, 2, store.uploads)
	assert.Equal(t, 1, repo.placeWrites)
	assert.Len(t, place.Images, 2)
	for _, url := range place.Images {
		assert.NotEmpty(t, url)
	}
}

func TestCreatePlaceAbortsOnUploadFailure(t *testing.T) {
	repo := newFakeRepo()
	store := &fakeStore{failOn: "two.png"}
	svc := NewPlaceService(repo, store)

	files := []ports.ImageFile{
		{Name: "one.jpg", Size: 100, Body: nil},
		{Name: "two.png", Size: 200, Body: nil},
	}

	_, err := svc.CreatePlace(context.Background(), validInput(), files)
	require.Error(t, err)
	assert.Zero(t, repo.placeWrites, "record write must not happen when an upload fails")
}

func TestCreatePlaceNormalizesCommaJoinedLabels(t *testing.T) {
	repo := newFakeRepo()
	svc := NewPlaceService(repo, &fakeStore{})

	input := validInput()
	input.PlaceLabel = []string{"beach, mountain ,food"}

	place, err := svc.CreatePlace(context.Background(), input, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"beach", "mountain", "food"}, place.PlaceLabel)
}

func TestUpdatePlaceKeepsExistingImages(t *testing.T) {
	repo := newFakeRepo()
	store := &fakeStore{}
	svc := NewPlaceService(repo, store)

	created, err := svc.CreatePlace(context.Background(), validInput(), []ports.ImageFile{
		{Name: "one.jpg", Size: 100},
	})
	require.NoError(t, err)
	require.Len(t, created.Images, 1)

	input := validInput()
	input.Description = "Updated description"

	updated, err := svc.UpdatePlace(context.Background(), created.ID, input, []ports.ImageFile{
		{Name: "two.png", Size: 100},
	})
	require.NoError(t, err)

	assert.Equal(t, "Updated description", updated.Description)
	assert.Len(t, updated.Images, 2)
	assert.Equal(t, created.Images[0], updated.Images[0])
}

func TestUpdatePlaceNotFound(t *testing.T) {
	svc := NewPlaceService(newFakeRepo(), &fakeStore{})

	_, err := svc.UpdatePlace(context.Background(), 99, validInput(), nil)
	assert.ErrorIs(t, err, ErrPlaceNotFound)
}

func TestListPlacesPagination(t *testing.T) {
	repo := newFakeRepo()
	svc := NewPlaceService(repo, &fakeStore{})

	for i := 0; i < 15; i++ {
		input := validInput()
		input.PlaceName = fmt.Sprintf("Place %d", i+1)
		_, err := svc.CreatePlace(context.Background(), input, nil)
		require.NoError(t, err)
	}

	places, total, err := svc.ListPlaces(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 15, total)
	assert.Len(t, places, 5)
	// id descending: page 2 starts after the 10 newest
	assert.Equal(t, "Place 5", places[0].PlaceName)
}
