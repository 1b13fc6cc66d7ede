package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"rodneysbrain/internal/models/db_models"
	"rodneysbrain/internal/models/request_models"
	"rodneysbrain/pkg/utils"
)

type memProjectRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*db_models.Project
}

func newMemProjectRepo() *memProjectRepo {
	return &memProjectRepo{rows: make(map[uuid.UUID]*db_models.Project)}
}

func (r *memProjectRepo) Insert(ctx context.Context, project *db_models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	cp := *project
	r.rows[project.ID] = &cp
	return nil
}

func (r *memProjectRepo) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*db_models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok || p.AccountID != ownerID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProjectRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]db_models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []db_models.Project
	for _, p := range r.rows {
		if p.AccountID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProjectRepo) UpdateFields(ctx context.Context, id, ownerID uuid.UUID, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok || p.AccountID != ownerID {
		return gorm.ErrRecordNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			p.Name = v.(string)
		case "status":
			p.Status = v.(db_models.ProjectStatus)
		case "preview_html":
			p.PreviewHTML = v.(string)
		case "files":
			p.Files = datatypes.JSON(v.([]byte))
		}
	}
	return nil
}

func (r *memProjectRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok || p.AccountID != ownerID {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}

func (r *memProjectRepo) MarkGenerating(ctx context.Context, id, ownerID uuid.UUID) error {
	return r.UpdateFields(ctx, id, ownerID, map[string]interface{}{"status": db_models.ProjectStatusGenerating})
}

func (r *memProjectRepo) SaveGenerationResult(ctx context.Context, id, ownerID uuid.UUID, files map[string]string, previewHTML string) error {
	raw, err := json.Marshal(files)
	if err != nil {
		return err
	}
	return r.UpdateFields(ctx, id, ownerID, map[string]interface{}{
		"status":       db_models.ProjectStatusCompleted,
		"files":        raw,
		"preview_html": previewHTML,
	})
}

func (r *memProjectRepo) MarkGenerationError(ctx context.Context, id, ownerID uuid.UUID) error {
	return r.UpdateFields(ctx, id, ownerID, map[string]interface{}{"status": db_models.ProjectStatusError})
}

func TestCreateProject(t *testing.T) {
	svc := NewProjectService(newMemProjectRepo())
	owner := uuid.New()

	project, err := svc.CreateProject(context.Background(), owner, request_models.CreateProjectRequest{
		Name:   "Landing page",
		Prompt: "a landing page for a bakery",
	})

	require.NoError(t, err)
	assert.Equal(t, "Landing page", project.Name)
	assert.Equal(t, string(db_models.ProjectStatusCreated), project.Status)
	assert.Equal(t, owner.String(), project.UserID)
	assert.Empty(t, project.Files)
}

func TestGetProject_OwnershipEnforced(t *testing.T) {
	repo := newMemProjectRepo()
	svc := NewProjectService(repo)
	owner := uuid.New()

	created, err := svc.CreateProject(context.Background(), owner, request_models.CreateProjectRequest{Name: "mine"})
	require.NoError(t, err)
	projectID := uuid.MustParse(created.ID)

	_, err = svc.GetProject(context.Background(), projectID, owner)
	assert.NoError(t, err)

	_, err = svc.GetProject(context.Background(), projectID, uuid.New())
	assert.ErrorIs(t, err, utils.ErrProjectNotFound, "someone else's project reads as absent")
}

func TestUpdateProject_RenameAndFiles(t *testing.T) {
	repo := newMemProjectRepo()
	svc := NewProjectService(repo)
	owner := uuid.New()

	created, err := svc.CreateProject(context.Background(), owner, request_models.CreateProjectRequest{Name: "old"})
	require.NoError(t, err)
	projectID := uuid.MustParse(created.ID)

	newName := "new"
	files := map[string]string{"index.html": "<html/>"}
	updated, err := svc.UpdateProject(context.Background(), projectID, owner, request_models.UpdateProjectRequest{
		Name:  &newName,
		Files: &files,
	})

	require.NoError(t, err)
	assert.Equal(t, "new", updated.Name)
	assert.Equal(t, files, updated.Files)
}

func TestDeleteProject(t *testing.T) {
	repo := newMemProjectRepo()
	svc := NewProjectService(repo)
	owner := uuid.New()

	created, err := svc.CreateProject(context.Background(), owner, request_models.CreateProjectRequest{Name: "gone soon"})
	require.NoError(t, err)
	projectID := uuid.MustParse(created.ID)

	assert.ErrorIs(t, svc.DeleteProject(context.Background(), projectID, uuid.New()), utils.ErrProjectNotFound)
	assert.NoError(t, svc.DeleteProject(context.Background(), projectID, owner))
	assert.ErrorIs(t, svc.DeleteProject(context.Background(), projectID, owner), utils.ErrProjectNotFound)
}

func TestGetPreview_PublicAcrossOwners(t *testing.T) {
	repo := newMemProjectRepo()
	svc := NewProjectService(repo)
	owner := uuid.New()

	created, err := svc.CreateProject(context.Background(), owner, request_models.CreateProjectRequest{Name: "shared"})
	require.NoError(t, err)
	projectID := uuid.MustParse(created.ID)

	require.NoError(t, repo.SaveGenerationResult(context.Background(), projectID, owner,
		map[string]string{"index.html": "<html/>"}, "<html>preview</html>"))

	preview, err := svc.GetPreview(context.Background(), projectID)
	require.NoError(t, err)
	assert.Equal(t, "<html>preview</html>", preview.PreviewHTML)
}

func TestGetPreview_NotFound(t *testing.T) {
	svc := NewProjectService(newMemProjectRepo())

	_, err := svc.GetPreview(context.Background(), uuid.New())
	assert.ErrorIs(t, err, utils.ErrProjectNotFound)
}
