package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/travelviet/places-admin/pkg/core/domain"
	"github.com/travelviet/places-admin/pkg/ports"
)

// LabelPageSize is the fixed page size of the label manager.
const LabelPageSize = 10

var ErrBlankLabelName = errors.New("label name is required")

type LabelService struct {
	repo ports.Repository
}

func NewLabelService(repo ports.Repository) *LabelService {
	return &LabelService{repo: repo}
}

// ListLabels returns one page of labels ordered by id descending plus the
// total count, so callers can compute ceil(total/LabelPageSize) pages.
func (s *LabelService) ListLabels(ctx context.Context, page int) ([]domain.Label, int64, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * LabelPageSize

	labels, err := s.repo.ListLabels(ctx, LabelPageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	count, err := s.repo.CountLabels(ctx)
	if err != nil {
		return nil, 0, err
	}

	return labels, count, nil
}

func (s *LabelService) AddLabel(ctx context.Context, name string) (*domain.Label, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBlankLabelName
	}

	label := &domain.Label{
		LabelName: name,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if err := s.repo.CreateLabel(ctx, label); err != nil {
		return nil, err
	}
	return label, nil
}

func (s *LabelService) RenameLabel(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrBlankLabelName
	}
	return s.repo.UpdateLabelName(ctx, id, name)
}

// ToggleActive writes the negation of the flag the caller currently sees.
// Two concurrent edits of the same label are last-writer-wins.
func (s *LabelService) ToggleActive(ctx context.Context, id int64, current bool) error {
	return s.repo.SetLabelActive(ctx, id, !current)
}
