package out

import (
	"context"

	"portfolio_server/core/domain"
)

// ProjectRepository defines the interface for project persistence.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	// FindByID returns nil without error when no project matches.
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	FindAll(ctx context.Context) ([]*domain.Project, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*domain.Project, error)
	Update(ctx context.Context, id string, update domain.ProjectUpdate) (*domain.Project, error)
	// Delete returns the number of removed documents.
	Delete(ctx context.Context, id string) (int64, error)
}
