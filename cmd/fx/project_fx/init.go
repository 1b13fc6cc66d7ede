package project_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"rodneysbrain/internal/repositories"
	"rodneysbrain/internal/services"
)

var Module = fx.Provide(
	provideProjectService, provideProjectRepo)

func provideProjectRepo(db *gorm.DB) repositories.ProjectRepository {
	return repositories.NewProjectRepository(db)
}

func provideProjectService(projectRepo repositories.ProjectRepository) services.ProjectServiceInterface {
	return services.NewProjectService(projectRepo)
}
