package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/travelviet/places-admin/pkg/core/domain"
	"github.com/travelviet/places-admin/pkg/ports"
)

// ErrPlaceNotFound reports a lookup for an id with no record. Callers use it
// to tell a missing place apart from a storage failure.
var ErrPlaceNotFound = errors.New("place not found")

// ValidationError carries field-level messages for a rejected submission.
// No storage or gateway call is made when validation fails.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("validation failed: %s", strings.Join(keys, ", "))
}

type PlaceService struct {
	repo  ports.Repository
	store ports.ImageStore
}

func NewPlaceService(repo ports.Repository, store ports.ImageStore) *PlaceService {
	return &PlaceService{repo: repo, store: store}
}

func validatePlace(input ports.PlaceInput) *ValidationError {
	fields := map[string]string{}

	required := map[string]string{
		"place_name":         input.PlaceName,
		"phone_number":       input.PhoneNumber,
		"visit_time":         input.VisitTime,
		"open_close_hour":    input.OpenCloseHour,
		"address":            input.Address,
		"description":        input.Description,
		"place_image_folder": input.PlaceImageFolder,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			fields[field] = field + " is required"
		}
	}

	if len(domain.NormalizeLabels(input.PlaceLabel)) == 0 {
		fields["place_label"] = "at least one label is required"
	}
	// Negated form so NaN fails the check too.
	if !(input.Latitude >= -90 && input.Latitude <= 90) {
		fields["latitude"] = "latitude must be between -90 and 90"
	}
	if !(input.Longitude >= -180 && input.Longitude <= 180) {
		fields["longitude"] = "longitude must be between -180 and 180"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// uploadImages pushes all attached files concurrently. The first failure
// aborts the whole submission; objects already written stay in storage.
func (s *PlaceService) uploadImages(ctx context.Context, folder string, files []ports.ImageFile) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}

	urls := make([]string, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			url, err := s.store.Upload(ctx, folder, f.Name, f.Size, f.Body)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

func (s *PlaceService) CreatePlace(ctx context.Context, input ports.PlaceInput, files []ports.ImageFile) (*domain.Place, error) {
	if verr := validatePlace(input); verr != nil {
		return nil, verr
	}

	urls, err := s.uploadImages(ctx, input.PlaceImageFolder, files)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	place := &domain.Place{
		PlaceName:        input.PlaceName,
		PlaceLabel:       domain.NormalizeLabels(input.PlaceLabel),
		PhoneNumber:      input.PhoneNumber,
		VisitTime:        input.VisitTime,
		OpenCloseHour:    input.OpenCloseHour,
		Address:          input.Address,
		Description:      input.Description,
		LikeNumber:       input.LikeNumber,
		Comment:          input.Comment,
		ViewNumber:       input.ViewNumber,
		Latitude:         input.Latitude,
		Longitude:        input.Longitude,
		PlaceImageFolder: input.PlaceImageFolder,
		PriceFrom:        input.PriceFrom,
		PriceTo:          input.PriceTo,
		Ticket:           input.Ticket,
		Images:           urls,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.CreatePlace(ctx, place); err != nil {
		return nil, err
	}
	return place, nil
}

func (s *PlaceService) UpdatePlace(ctx context.Context, id int64, input ports.PlaceInput, files []ports.ImageFile) (*domain.Place, error) {
	if verr := validatePlace(input); verr != nil {
		return nil, verr
	}

	place, err := s.repo.GetPlaceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, ErrPlaceNotFound
	}

	urls, err := s.uploadImages(ctx, input.PlaceImageFolder, files)
	if err != nil {
		return nil, err
	}

	place.PlaceName = input.PlaceName
	place.PlaceLabel = domain.NormalizeLabels(input.PlaceLabel)
	place.PhoneNumber = input.PhoneNumber
	place.VisitTime = input.VisitTime
	place.OpenCloseHour = input.OpenCloseHour
	place.Address = input.Address
	place.Description = input.Description
	place.LikeNumber = input.LikeNumber
	place.Comment = input.Comment
	place.ViewNumber = input.ViewNumber
	place.Latitude = input.Latitude
	place.Longitude = input.Longitude
	place.PlaceImageFolder = input.PlaceImageFolder
	place.PriceFrom = input.PriceFrom
	place.PriceTo = input.PriceTo
	place.Ticket = input.Ticket
	// New uploads extend the existing image list rather than replacing it.
	place.Images = append(place.Images, urls...)
	place.UpdatedAt = time.Now()

	if err := s.repo.UpdatePlace(ctx, place); err != nil {
		return nil, err
	}
	return place, nil
}

func (s *PlaceService) GetPlace(ctx context.Context, id int64) (*domain.Place, error) {
	place, err := s.repo.GetPlaceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, ErrPlaceNotFound
	}
	return place, nil
}

func (s *PlaceService) ListPlaces(ctx context.Context, page, limit int) ([]domain.Place, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	places, err := s.repo.ListPlaces(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	count, err := s.repo.CountPlaces(ctx)
	if err != nil {
		return nil, 0, err
	}

	return places, count, nil
}
