package services

import (
	"context"
	"fmt"
	"io"

	"github.com/intelicop/console/internal/core/domain"
	"github.com/intelicop/console/internal/core/ports"
)

type HealthService struct {
	api ports.HealthAPI
}

var _ ports.HealthService = (*HealthService)(nil)

func NewHealthService(api ports.HealthAPI) *HealthService {
	return &HealthService{api: api}
}

func (s *HealthService) Database(ctx context.Context) (domain.DatabaseHealth, error) {
	return s.api.DatabaseHealth(ctx)
}

// Report streams the PDF health report into w.
func (s *HealthService) Report(ctx context.Context, w io.Writer) (int64, error) {
	n, err := s.api.DatabaseReport(ctx, w)
	if err != nil {
		return n, fmt.Errorf("download health report: %w", err)
	}
	return n, nil
}
