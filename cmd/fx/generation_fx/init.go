package generation_fx

import (
	"log"
	"os"

	"go.uber.org/fx"
	"rodneysbrain/internal/repositories"
	"rodneysbrain/internal/services"
	"rodneysbrain/pkg/utils"
)

var Module = fx.Provide(
	provideGenerationClient, provideGenerationService)

func provideGenerationClient() utils.GenerationClientInterface {
	provider := os.Getenv("AI_PROVIDER")

	apiKey := os.Getenv("OPENAI_API_KEY")
	if provider == "gemini" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	client, err := utils.NewGenerationClient(provider, apiKey, os.Getenv("AI_MODEL"))
	if err != nil {
		log.Fatalf("Failed to initialize generation client: %v", err)
	}

	return client
}

func provideGenerationService(
	projectRepo repositories.ProjectRepository,
	aiClient utils.GenerationClientInterface,
) services.GenerationServiceInterface {
	return services.NewGenerationService(projectRepo, aiClient)
}
