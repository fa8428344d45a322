package project

import (
	"context"
	"mime/multipart"
	"strconv"
	"testing"

	"portfolio_server/core/domain"
	"portfolio_server/pkg/apperr"
)

// memProjectRepo is an in-memory project store.
type memProjectRepo struct {
	projects map[string]*domain.Project
	order    []string
}

func newMemProjectRepo() *memProjectRepo {
	return &memProjectRepo{projects: make(map[string]*domain.Project)}
}

func (r *memProjectRepo) clone(p *domain.Project) *domain.Project {
	if p == nil {
		return nil
	}
	c := *p
	c.Owner = nil
	return &c
}

func (r *memProjectRepo) Create(ctx context.Context, project *domain.Project) error {
	r.projects[project.ID] = r.clone(project)
	r.order = append(r.order, project.ID)
	return nil
}

func (r *memProjectRepo) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	return r.clone(r.projects[id]), nil
}

func (r *memProjectRepo) FindAll(ctx context.Context) ([]*domain.Project, error) {
	result := make([]*domain.Project, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.clone(r.projects[id]))
	}
	return result, nil
}

func (r *memProjectRepo) FindByOwner(ctx context.Context, ownerID string) ([]*domain.Project, error) {
	var result []*domain.Project
	for _, id := range r.order {
		if r.projects[id].OwnerID == ownerID {
			result = append(result, r.clone(r.projects[id]))
		}
	}
	return result, nil
}

func (r *memProjectRepo) Update(ctx context.Context, id string, update domain.ProjectUpdate) (*domain.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, nil
	}
	p.Title = update.Title
	p.CoverImage = update.CoverImage
	p.Status = update.Status
	p.Domain = update.Domain
	p.ShortDesc = update.ShortDesc
	p.StartOn = update.StartOn
	p.CompletedOn = update.CompletedOn
	p.Description = update.Description
	return r.clone(p), nil
}

func (r *memProjectRepo) Delete(ctx context.Context, id string) (int64, error) {
	if _, ok := r.projects[id]; !ok {
		return 0, nil
	}
	delete(r.projects, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return 1, nil
}

// memOwnerDirectory resolves a fixed owner set.
type memOwnerDirectory struct {
	owners map[string]domain.OwnerSummary
	calls  int
}

func (d *memOwnerDirectory) Summaries(ctx context.Context, ids []string) (map[string]domain.OwnerSummary, error) {
	d.calls++
	result := make(map[string]domain.OwnerSummary)
	for _, id := range ids {
		if owner, ok := d.owners[id]; ok {
			result[id] = owner
		}
	}
	return result, nil
}

// memFileStore records saves and removals instead of touching disk.
type memFileStore struct {
	saved   []string
	removed []string
	nextID  int
}

func (f *memFileStore) Save(category string, file *multipart.FileHeader) (string, error) {
	f.nextID++
	name := category + "-" + strconv.Itoa(f.nextID)
	f.saved = append(f.saved, name)
	return name, nil
}

func (f *memFileStore) Remove(category, name string) error {
	f.removed = append(f.removed, name)
	return nil
}

func newTestRegistry() (*Service, *memProjectRepo, *memOwnerDirectory, *memFileStore) {
	repo := newMemProjectRepo()
	owners := &memOwnerDirectory{owners: map[string]domain.OwnerSummary{
		"owner-1": {ID: "owner-1", Username: "jane", FullName: "Jane Doe"},
		"owner-2": {ID: "owner-2", Username: "john", FullName: "John Roe"},
	}}
	files := &memFileStore{}
	return NewService(repo, owners, files), repo, owners, files
}

func validCreateInput() CreateInput {
	start, _ := domain.ParseDate("2024-01-10")
	return CreateInput{
		Title:      "Portfolio Site",
		Status:     domain.ProjectInProgress,
		Domain:     "Web",
		ShortDesc:  "Personal site",
		StartOn:    start,
		CoverImage: "cover-1.png",
	}
}

func TestCreateProject(t *testing.T) {
	svc, repo, _, _ := newTestRegistry()

	created, err := svc.Create(context.Background(), "owner-1", validCreateInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" {
		t.Error("create must assign an id")
	}
	if created.OwnerID != "owner-1" {
		t.Errorf("OwnerID = %q, want owner-1", created.OwnerID)
	}
	if repo.projects[created.ID] == nil {
		t.Error("project must be persisted")
	}
}

func TestCreateProjectValidation(t *testing.T) {
	svc, _, _, _ := newTestRegistry()

	tests := []struct {
		name     string
		userID   string
		mutil    func(*CreateInput)
		wantCode string
	}{
		{"missing cover", "owner-1", func(in *CreateInput) { in.CoverImage = "" }, apperr.CodeValidationFailed},
		{"missing user", "", func(in *CreateInput) {}, apperr.CodeValidationFailed},
		{"missing title", "owner-1", func(in *CreateInput) { in.Title = "" }, apperr.CodeMissingField},
		{"missing status", "owner-1", func(in *CreateInput) { in.Status = "" }, apperr.CodeMissingField},
		{"missing domain", "owner-1", func(in *CreateInput) { in.Domain = "" }, apperr.CodeMissingField},
		{"missing start date", "owner-1", func(in *CreateInput) { in.StartOn = domain.Date{} }, apperr.CodeMissingField},
		{"unknown status", "owner-1", func(in *CreateInput) { in.Status = "Shipped" }, apperr.CodeValidationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCreateInput()
			tt.mutil(&in)
			_, err := svc.Create(context.Background(), tt.userID, in)
			if !apperr.IsCode(err, tt.wantCode) {
				t.Errorf("want %s, got %v", tt.wantCode, err)
			}
		})
	}
}

func TestListAllPopulatesOwners(t *testing.T) {
	svc, _, owners, _ := newTestRegistry()
	ctx := context.Background()

	if _, err := svc.Create(ctx, "owner-1", validCreateInput()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second := validCreateInput()
	second.Title = "Second"
	if _, err := svc.Create(ctx, "owner-1", second); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	third := validCreateInput()
	third.Title = "Third"
	if _, err := svc.Create(ctx, "owner-2", third); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	owners.calls = 0
	list, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	for _, p := range list {
		if p.Owner == nil || p.Owner.ID != p.OwnerID {
			t.Errorf("project %q owner not populated", p.Title)
		}
	}
	if owners.calls != 1 {
		t.Errorf("owner lookup should batch into one call, got %d", owners.calls)
	}
}

func TestListMineScopesToOwner(t *testing.T) {
	svc, _, _, _ := newTestRegistry()
	ctx := context.Background()

	if _, err := svc.Create(ctx, "owner-1", validCreateInput()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	other := validCreateInput()
	other.Title = "Other"
	if _, err := svc.Create(ctx, "owner-2", other); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	mine, err := svc.ListMine(ctx, "owner-1")
	if err != nil {
		t.Fatalf("ListMine failed: %v", err)
	}
	if len(mine) != 1 || mine[0].OwnerID != "owner-1" {
		t.Errorf("unexpected scope result: %+v", mine)
	}

	if _, err := svc.ListMine(ctx, ""); !apperr.IsCode(err, apperr.CodeValidationFailed) {
		t.Errorf("empty user id: want VALIDATION_FAILED, got %v", err)
	}
}

func TestGetByID(t *testing.T) {
	svc, _, _, _ := newTestRegistry()
	ctx := context.Background()

	created, err := svc.Create(ctx, "owner-1", validCreateInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Owner == nil || got.Owner.Username != "jane" {
		t.Error("owner must be populated on detail reads")
	}

	if _, err := svc.GetByID(ctx, " "); !apperr.IsCode(err, apperr.CodeValidationFailed) {
		t.Errorf("blank id: want VALIDATION_FAILED, got %v", err)
	}
	// Missing project surfaces as an internal error, the published contract.
	if _, err := svc.GetByID(ctx, "missing"); !apperr.IsCode(err, apperr.CodeInternalError) {
		t.Errorf("missing project: want INTERNAL_ERROR, got %v", err)
	}
}

func TestUpdateProjectReplacesCover(t *testing.T) {
	svc, _, _, files := newTestRegistry()
	ctx := context.Background()

	created, err := svc.Create(ctx, "owner-1", validCreateInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	start, _ := domain.ParseDate("2024-02-01")
	updated, err := svc.Update(ctx, UpdateInput{
		ID:         created.ID,
		Title:      "Renamed",
		Status:     domain.ProjectCompleted,
		Domain:     "Web",
		StartOn:    start,
		CoverImage: "cover-2.png",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Title != "Renamed" || updated.CoverImage != "cover-2.png" {
		t.Errorf("update not applied: %+v", updated)
	}
	if len(files.removed) != 1 || files.removed[0] != "cover-1.png" {
		t.Errorf("stale cover should be removed after the new reference persists, removed=%v", files.removed)
	}
}

func TestUpdateProjectValidation(t *testing.T) {
	svc, _, _, _ := newTestRegistry()
	ctx := context.Background()

	created, err := svc.Create(ctx, "owner-1", validCreateInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	start, _ := domain.ParseDate("2024-02-01")

	t.Run("missing cover", func(t *testing.T) {
		_, err := svc.Update(ctx, UpdateInput{
			ID: created.ID, Title: "T", Status: domain.ProjectCompleted, Domain: "Web", StartOn: start,
		})
		if !apperr.IsCode(err, apperr.CodeValidationFailed) {
			t.Errorf("want VALIDATION_FAILED, got %v", err)
		}
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := svc.Update(ctx, UpdateInput{
			ID: "missing", Title: "T", Status: domain.ProjectCompleted, Domain: "Web", StartOn: start, CoverImage: "c.png",
		})
		if !apperr.IsCode(err, apperr.CodeNotFound) {
			t.Errorf("want NOT_FOUND, got %v", err)
		}
	})
}

func TestDeleteProject(t *testing.T) {
	svc, repo, _, files := newTestRegistry()
	ctx := context.Background()

	created, err := svc.Create(ctx, "owner-1", validCreateInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	deleted, err := svc.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}
	if repo.projects[created.ID] != nil {
		t.Error("project must be gone")
	}
	// The cover blob stays on disk; only the record is removed.
	if len(files.removed) != 0 {
		t.Errorf("delete must not touch blobs, removed=%v", files.removed)
	}

	// Deleting an unknown id succeeds with a zero count.
	deleted, err = svc.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, want 0", deleted)
	}

	if _, err := svc.Delete(ctx, ""); !apperr.IsCode(err, apperr.CodeValidationFailed) {
		t.Errorf("empty id: want VALIDATION_FAILED, got %v", err)
	}
}
