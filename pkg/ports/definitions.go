package ports

import (
	"context"
	"io"

	"github.com/travelviet/places-admin/pkg/core/domain"
)

// Repository defines storage operations for places and labels
type Repository interface {
	CreatePlace(ctx context.Context, place *domain.Place) error
	GetPlaceByID(ctx context.Context, id int64) (*domain.Place, error)
	UpdatePlace(ctx context.Context, place *domain.Place) error
	ListPlaces(ctx context.Context, limit, offset int) ([]domain.Place, error)
	CountPlaces(ctx context.Context) (int64, error)
	DumpPlaces(ctx context.Context) ([]domain.Place, error) // For migration

	CreateLabel(ctx context.Context, label *domain.Label) error
	GetLabelByID(ctx context.Context, id int64) (*domain.Label, error)
	UpdateLabelName(ctx context.Context, id int64, name string) error
	SetLabelActive(ctx context.Context, id int64, active bool) error
	ListLabels(ctx context.Context, limit, offset int) ([]domain.Label, error)
	CountLabels(ctx context.Context) (int64, error)
	DumpLabels(ctx context.Context) ([]domain.Label, error) // For migration
}

// ImageStore defines object storage operations for place images
type ImageStore interface {
	// Upload writes one image under the given folder and returns its public URL.
	Upload(ctx context.Context, folder, filename string, size int64, body io.Reader) (string, error)
}

// ImageFile is an in-memory image attached to a form submission
type ImageFile struct {
	Name string
	Size int64
	Body io.Reader
}

// PlaceInput carries the editable place fields as submitted by the form
type PlaceInput struct {
	PlaceName        string
	PlaceLabel       []string
	PhoneNumber      string
	VisitTime        string
	OpenCloseHour    string
	Address          string
	Description      string
	LikeNumber       int64
	Comment          string
	ViewNumber       int64
	Latitude         float64
	Longitude        float64
	PlaceImageFolder string
	PriceFrom        float64
	PriceTo          float64
	Ticket           string
}

// PlaceService defines the business logic for place records
type PlaceService interface {
	CreatePlace(ctx context.Context, input PlaceInput, files []ImageFile) (*domain.Place, error)
	UpdatePlace(ctx context.Context, id int64, input PlaceInput, files []ImageFile) (*domain.Place, error)
	GetPlace(ctx context.Context, id int64) (*domain.Place, error)
	ListPlaces(ctx context.Context, page, limit int) ([]domain.Place, int64, error)
}

// LabelService defines the business logic for label management
type LabelService interface {
	ListLabels(ctx context.Context, page int) ([]domain.Label, int64, error)
	AddLabel(ctx context.Context, name string) (*domain.Label, error)
	RenameLabel(ctx context.Context, id int64, name string) error
	ToggleActive(ctx context.Context, id int64, current bool) error
}
