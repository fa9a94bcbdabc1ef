package service

import (
	"context"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

type Dashboard struct {
	Products   int               `json:"products"`
	Categories int               `json:"categories"`
	Orders     domain.OrderStats `json:"orders"`
}

// AdminService backs the admin shell. Every call requires an admin session.
type AdminService struct {
	session port.SessionReader
	catalog port.CatalogReader
	stats   port.OrderStatsReader
}

func NewAdminService(
	s port.SessionReader, c port.CatalogReader, st port.OrderStatsReader,
) AdminService {
	return AdminService{session: s, catalog: c, stats: st}
}

func (s AdminService) Dashboard(ctx context.Context) (Dashboard, error) {
	const op = "AdminService.Dashboard"

	u, ok := s.session.Current()
	if !ok {
		return Dashboard{}, fmt.Errorf("%s: %w", op, domain.ErrNoSession)
	}
	if !u.IsAdmin() {
		return Dashboard{}, fmt.Errorf("%s: %w", op, domain.ErrForbidden)
	}

	stats, err := s.stats.OrderStats(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("%s: %w", op, err)
	}

	return Dashboard{
		Products:   len(s.catalog.Products()),
		Categories: len(s.catalog.Categories()),
		Orders:     stats,
	}, nil
}
