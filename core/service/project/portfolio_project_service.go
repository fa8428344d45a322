// Package project implements the project registry: owner-scoped CRUD over
// project records with cover images.
package project

import (
	"context"
	"strings"

	"portfolio_server/core/domain"
	"portfolio_server/core/port/out"
	"portfolio_server/pkg/apperr"

	"github.com/google/uuid"
)

// OwnerDirectory is the narrow read interface of the user directory used to
// populate owner summaries on project reads.
type OwnerDirectory interface {
	Summaries(ctx context.Context, ids []string) (map[string]domain.OwnerSummary, error)
}

// Service implements the project registry.
type Service struct {
	projects out.ProjectRepository
	owners   OwnerDirectory
	files    out.FileStore
}

// NewService creates a project registry service.
func NewService(projects out.ProjectRepository, owners OwnerDirectory, files out.FileStore) *Service {
	return &Service{
		projects: projects,
		owners:   owners,
		files:    files,
	}
}

// populateOwners attaches owner summaries with one lookup across the result
// set, keeping the registry decoupled from user persistence.
func (s *Service) populateOwners(ctx context.Context, projects []*domain.Project) error {
	if len(projects) == 0 {
		return nil
	}
	seen := make(map[string]bool)
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		if p.OwnerID != "" && !seen[p.OwnerID] {
			seen[p.OwnerID] = true
			ids = append(ids, p.OwnerID)
		}
	}
	summaries, err := s.owners.Summaries(ctx, ids)
	if err != nil {
		return err
	}
	for _, p := range projects {
		if summary, ok := summaries[p.OwnerID]; ok {
			owner := summary
			p.Owner = &owner
		}
	}
	return nil
}

// ListAll returns every project with its owner summary populated. No
// authentication is required for this read.
func (s *Service) ListAll(ctx context.Context) ([]*domain.Project, error) {
	projects, err := s.projects.FindAll(ctx)
	if err != nil {
		return nil, apperr.DatabaseError("list projects", err)
	}
	if err := s.populateOwners(ctx, projects); err != nil {
		return nil, apperr.DatabaseError("populate owners", err)
	}
	return projects, nil
}

// ListMine returns the caller's projects with owner summaries populated.
func (s *Service) ListMine(ctx context.Context, userID string) ([]*domain.Project, error) {
	if userID == "" {
		return nil, apperr.ValidationFailed("User id is missing")
	}
	projects, err := s.projects.FindByOwner(ctx, userID)
	if err != nil {
		return nil, apperr.DatabaseError("list projects", err)
	}
	if err := s.populateOwners(ctx, projects); err != nil {
		return nil, apperr.DatabaseError("populate owners", err)
	}
	return projects, nil
}

// CreateInput is the project creation payload. CoverImage is the stored-file
// name produced by the upload intake.
type CreateInput struct {
	Title       string
	Status      domain.ProjectStatus
	Domain      string
	ShortDesc   string
	Description []any
	StartOn     domain.Date
	CompletedOn *domain.Date
	CoverImage  string
}

func validateProjectFields(title string, status domain.ProjectStatus, domainTag string, startOn domain.Date) error {
	if domainTag == "" {
		return apperr.MissingField("domain")
	}
	if title == "" {
		return apperr.MissingField("title")
	}
	if status == "" {
		return apperr.MissingField("status")
	}
	if !status.Valid() {
		return apperr.ValidationFailed("status must be one of Completed, In Progress, On Hold")
	}
	if startOn.IsZero() {
		return apperr.MissingField("startOn")
	}
	return nil
}

// Create persists a new project owned by the caller.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*domain.Project, error) {
	if in.CoverImage == "" {
		return nil, apperr.ValidationFailed("Cover image is missing")
	}
	if userID == "" {
		return nil, apperr.ValidationFailed("User id is missing")
	}
	if err := validateProjectFields(in.Title, in.Status, in.Domain, in.StartOn); err != nil {
		return nil, err
	}

	project := &domain.Project{
		ID:          uuid.NewString(),
		Title:       in.Title,
		CoverImage:  in.CoverImage,
		Status:      in.Status,
		Domain:      in.Domain,
		ShortDesc:   in.ShortDesc,
		StartOn:     in.StartOn,
		CompletedOn: in.CompletedOn,
		Description: in.Description,
		OwnerID:     userID,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, apperr.DatabaseError("create project", err)
	}
	return project, nil
}

// GetByID returns a single project with its owner populated. An empty lookup
// reports an internal error; the registry keeps that contract as published.
func (s *Service) GetByID(ctx context.Context, projectID string) (*domain.Project, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, apperr.ValidationFailed("Project Id is missing")
	}
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, apperr.DatabaseError("find project", err)
	}
	if project == nil {
		return nil, apperr.Internal("Something went wrong while getting project detail by id")
	}
	if err := s.populateOwners(ctx, []*domain.Project{project}); err != nil {
		return nil, apperr.DatabaseError("populate owners", err)
	}
	return project, nil
}

// UpdateInput is the project update payload; every field is replaced.
type UpdateInput struct {
	ID          string
	Title       string
	Status      domain.ProjectStatus
	Domain      string
	ShortDesc   string
	Description []any
	StartOn     domain.Date
	CompletedOn *domain.Date
	CoverImage  string
}

// Update replaces all mutable project fields. The new cover reference is
// persisted before the stale blob is removed.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*domain.Project, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, apperr.ValidationFailed("Project Id is missing")
	}
	if err := validateProjectFields(in.Title, in.Status, in.Domain, in.StartOn); err != nil {
		return nil, err
	}
	if in.CoverImage == "" {
		return nil, apperr.ValidationFailed("Project file is missing")
	}

	existing, err := s.projects.FindByID(ctx, in.ID)
	if err != nil {
		return nil, apperr.DatabaseError("find project", err)
	}
	if existing == nil {
		return nil, apperr.NotFound("Project does not exist")
	}

	updated, err := s.projects.Update(ctx, in.ID, domain.ProjectUpdate{
		Title:       in.Title,
		CoverImage:  in.CoverImage,
		Status:      in.Status,
		Domain:      in.Domain,
		ShortDesc:   in.ShortDesc,
		StartOn:     in.StartOn,
		CompletedOn: in.CompletedOn,
		Description: in.Description,
	})
	if err != nil {
		return nil, apperr.DatabaseError("update project", err)
	}
	if existing.CoverImage != "" && existing.CoverImage != in.CoverImage {
		_ = s.files.Remove(out.CategoryProjectImage, existing.CoverImage)
	}
	return updated, nil
}

// Delete removes the project document by id. The cover-image blob is left on
// disk.
func (s *Service) Delete(ctx context.Context, projectID string) (int64, error) {
	if strings.TrimSpace(projectID) == "" {
		return 0, apperr.ValidationFailed("Id is missing")
	}
	deleted, err := s.projects.Delete(ctx, projectID)
	if err != nil {
		return 0, apperr.DatabaseError("delete project", err)
	}
	return deleted, nil
}
