package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"rodneysbrain/internal/models/db_models"
)

type ProjectRepository interface {
	Insert(ctx context.Context, project *db_models.Project) error
	FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*db_models.Project, error)
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Project, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]db_models.Project, error)
	UpdateFields(ctx context.Context, id, ownerID uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) (bool, error)

	MarkGenerating(ctx context.Context, id, ownerID uuid.UUID) error
	SaveGenerationResult(ctx context.Context, id, ownerID uuid.UUID, files map[string]string, previewHTML string) error
	MarkGenerationError(ctx context.Context, id, ownerID uuid.UUID) error
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{
		db: db,
	}
}

func (r *projectRepository) Insert(ctx context.Context, project *db_models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*db_models.Project, error) {
	var project db_models.Project
	err := r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, ownerID).
		First(&project).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &project, nil
}

func (r *projectRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Project, error) {
	var project db_models.Project
	err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &project, nil
}

func (r *projectRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]db_models.Project, error) {
	if limit <= 0 {
		limit = 100
	}

	var projects []db_models.Project
	err := r.db.WithContext(ctx).
		Where("account_id = ?", ownerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&projects).Error

	return projects, err
}

func (r *projectRepository) UpdateFields(ctx context.Context, id, ownerID uuid.UUID, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&db_models.Project{}).
		Where("id = ? AND account_id = ?", id, ownerID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, ownerID).
		Delete(&db_models.Project{})
	return res.RowsAffected > 0, res.Error
}

func (r *projectRepository) MarkGenerating(ctx context.Context, id, ownerID uuid.UUID) error {
	return r.UpdateFields(ctx, id, ownerID, map[string]interface{}{
		"status": db_models.ProjectStatusGenerating,
	})
}

// SaveGenerationResult replaces the whole generated bundle in one write. A
// repeated generation overwrites prior output, it never merges.
func (r *projectRepository) SaveGenerationResult(ctx context.Context, id, ownerID uuid.UUID, files map[string]string, previewHTML string) error {
	if files == nil {
		files = map[string]string{}
	}
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

func (r *projectRepository) MarkGenerationError(ctx context.Context, id, ownerID uuid.UUID) error {
	return r.UpdateFields(ctx, id, ownerID, map[string]interface{}{
		"status": db_models.ProjectStatusError,
	})
}
