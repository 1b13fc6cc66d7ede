package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"rodneysbrain/internal/models/db_models"
	"rodneysbrain/internal/models/request_models"
	"rodneysbrain/internal/models/response_models"
	"rodneysbrain/internal/repositories"
	"rodneysbrain/pkg/utils"
)

type ProjectServiceInterface interface {
	CreateProject(ctx context.Context, ownerID uuid.UUID, request request_models.CreateProjectRequest) (*response_models.ProjectResponse, error)
	ListProjects(ctx context.Context, ownerID uuid.UUID) ([]response_models.ProjectResponse, error)
	GetProject(ctx context.Context, projectID, ownerID uuid.UUID) (*response_models.ProjectResponse, error)
	UpdateProject(ctx context.Context, projectID, ownerID uuid.UUID, request request_models.UpdateProjectRequest) (*response_models.ProjectResponse, error)
	DeleteProject(ctx context.Context, projectID, ownerID uuid.UUID) error
	GetPreview(ctx context.Context, projectID uuid.UUID) (*response_models.PreviewResponse, error)
}

type ProjectService struct {
	projectRepo repositories.ProjectRepository
}

func NewProjectService(projectRepo repositories.ProjectRepository) ProjectServiceInterface {
	return &ProjectService{
		projectRepo: projectRepo,
	}
}

func (s *ProjectService) CreateProject(ctx context.Context, ownerID uuid.UUID, request request_models.CreateProjectRequest) (*response_models.ProjectResponse, error) {
	project := &db_models.Project{
		AccountID: ownerID,
		Name:      request.Name,
		Prompt:    request.Prompt,
		Status:    db_models.ProjectStatusCreated,
	}
	project.SetFileSet(nil)

	if err := s.projectRepo.Insert(ctx, project); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := projectResponse(project)
	return &resp, nil
}

func (s *ProjectService) ListProjects(ctx context.Context, ownerID uuid.UUID) ([]response_models.ProjectResponse, error) {
	projects, err := s.projectRepo.ListByOwner(ctx, ownerID, 100)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, projectResponse(&projects[i]))
	}
	return out, nil
}

func (s *ProjectService) GetProject(ctx context.Context, projectID, ownerID uuid.UUID) (*response_models.ProjectResponse, error) {
	project, err := s.projectRepo.FindByIDAndOwner(ctx, projectID, ownerID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if project == nil {
		return nil, utils.ErrProjectNotFound
	}

	resp := projectResponse(project)
	return &resp, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, projectID, ownerID uuid.UUID, request request_models.UpdateProjectRequest) (*response_models.ProjectResponse, error) {
	fields := map[string]interface{}{}
	if request.Name != nil {
		fields["name"] = *request.Name
	}
	if request.Files != nil {
		raw, err := json.Marshal(*request.Files)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		fields["files"] = raw
	}

	if len(fields) > 0 {
		if err := s.projectRepo.UpdateFields(ctx, projectID, ownerID, fields); err != nil {
			return nil, utils.ErrProjectNotFound
		}
	}

	return s.GetProject(ctx, projectID, ownerID)
}

func (s *ProjectService) DeleteProject(ctx context.Context, projectID, ownerID uuid.UUID) error {
	deleted, err := s.projectRepo.Delete(ctx, projectID, ownerID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if !deleted {
		return utils.ErrProjectNotFound
	}
	return nil
}

// GetPreview is intentionally unauthenticated: previews are rendered in an
// iframe by share links.
func (s *ProjectService) GetPreview(ctx context.Context, projectID uuid.UUID) (*response_models.PreviewResponse, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if project == nil {
		return nil, utils.ErrProjectNotFound
	}

	return &response_models.PreviewResponse{PreviewHTML: project.PreviewHTML}, nil
}

func projectResponse(project *db_models.Project) response_models.ProjectResponse {
	return response_models.ProjectResponse{
		ID:          project.ID.String(),
		UserID:      project.AccountID.String(),
		Name:        project.Name,
		Prompt:      project.Prompt,
		Status:      string(project.Status),
		Files:       project.FileSet(),
		PreviewHTML: project.PreviewHTML,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}
