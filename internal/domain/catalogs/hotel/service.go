package hotel

import (
	"context"
	"fmt"

	"laundrydesk/internal/core/tx"
	"laundrydesk/internal/domain"
	"laundrydesk/pkg/logger"
)

// CodePrefix is the prefix of generated hotel codes.
const CodePrefix = "HTL"

// CodeGenerator allocates sequential catalog codes.
type CodeGenerator interface {
	Next(ctx context.Context, prefix string) (string, error)
}

// Service provides business logic for Hotel catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Hotel]
	repo  Repository
	codes CodeGenerator
}

// NewService creates a new Hotel service.
func NewService(repo Repository, txManager tx.Manager, codes CodeGenerator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Hotel]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "hotel",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		codes:          codes,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.prepareForUpdate)
	base.Hooks().OnAfterCreate(logZone("hotel created"))
	base.Hooks().OnAfterUpdate(logZone("hotel updated"))

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, h *Hotel) error {
	if h.Code == "" && s.codes != nil {
		code, err := s.codes.Next(ctx, CodePrefix)
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		h.Code = code
	}
	h.ClassifyZone()
	return nil
}

func (s *Service) prepareForUpdate(_ context.Context, h *Hotel) error {
	h.ClassifyZone()
	return nil
}

func logZone(msg string) func(ctx context.Context, h *Hotel) error {
	return func(ctx context.Context, h *Hotel) error {
		logger.Info(ctx, msg, "hotel_id", h.ID, "code", h.Code, "zone", h.Zone)
		return nil
	}
}

// ListAll returns every hotel not marked for deletion.
func (s *Service) ListAll(ctx context.Context) ([]*Hotel, error) {
	return s.repo.ListAll(ctx)
}
