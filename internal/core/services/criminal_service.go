package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/intelicop/console/internal/core/domain"
	"github.com/intelicop/console/internal/core/ports"
)

type CriminalService struct {
	api ports.CriminalAPI
}

var _ ports.CriminalService = (*CriminalService)(nil)

func NewCriminalService(api ports.CriminalAPI) *CriminalService {
	return &CriminalService{api: api}
}

func (s *CriminalService) List(ctx context.Context) ([]domain.Criminal, error) {
	return s.api.ListCriminals(ctx)
}

func (s *CriminalService) Get(ctx context.Context, id int64) (domain.Criminal, error) {
	c, err := s.api.GetCriminal(ctx, id)
	if err != nil {
		return domain.Criminal{}, fmt.Errorf("load criminal %d: %w", id, err)
	}
	return c, nil
}

func (s *CriminalService) Search(ctx context.Context, name string) ([]domain.Criminal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ValidationErrors{{Field: "name", Message: "search name is required"}}
	}
	return s.api.SearchCriminals(ctx, name)
}

// Add fills the record defaults, validates and creates it.
func (s *CriminalService) Add(ctx context.Context, u domain.CriminalUpload) (domain.Criminal, error) {
	if err := prepareCriminal(&u.Criminal); err != nil {
		return domain.Criminal{}, err
	}
	c, err := s.api.AddCriminal(ctx, u)
	if err != nil {
		return domain.Criminal{}, fmt.Errorf("add criminal %q: %w", u.Criminal.Name, err)
	}
	log.Printf("criminals: added %q (id %d)", c.Name, c.ID)
	return c, nil
}

func (s *CriminalService) Update(ctx context.Context, id int64, u domain.CriminalUpload) (domain.Criminal, error) {
	if err := prepareCriminal(&u.Criminal); err != nil {
		return domain.Criminal{}, err
	}
	c, err := s.api.UpdateCriminal(ctx, id, u)
	if err != nil {
		return domain.Criminal{}, fmt.Errorf("update criminal %d: %w", id, err)
	}
	log.Printf("criminals: updated %d", id)
	return c, nil
}

func (s *CriminalService) Delete(ctx context.Context, id int64, confirm ports.Confirmer) error {
	if confirm == nil {
		return domain.ErrNotConfirmed
	}
	ok, err := confirm.Confirm(ctx, fmt.Sprintf("Delete criminal record %d permanently?", id))
	if err != nil {
		return fmt.Errorf("confirm delete: %w", err)
	}
	if !ok {
		return domain.ErrNotConfirmed
	}
	if err := s.api.DeleteCriminal(ctx, id); err != nil {
		return fmt.Errorf("delete criminal %d: %w", id, err)
	}
	log.Printf("criminals: deleted %d", id)
	return nil
}

func prepareCriminal(c *domain.Criminal) error {
	if err := c.Normalize(); err != nil {
		return err
	}
	return c.Validate()
}
