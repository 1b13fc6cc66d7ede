package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"rodneysbrain/cmd/fx/account_fx"
	"rodneysbrain/cmd/fx/controllers_fx"
	"rodneysbrain/cmd/fx/db_fx"
	"rodneysbrain/cmd/fx/generation_fx"
	"rodneysbrain/cmd/fx/mail_fx"
	"rodneysbrain/cmd/fx/payment_fx"
	"rodneysbrain/cmd/fx/project_fx"
	"rodneysbrain/internal/api/controllers"
	"rodneysbrain/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	app := fx.New(
		db_fx.Module,
		account_fx.Module,
		project_fx.Module,
		generation_fx.Module,
		mail_fx.Module,
		payment_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			go func() {
				log.Printf("Starting HTTP server on :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	projectController *controllers.ProjectController,
	generationController *controllers.GenerationController,
	paymentController *controllers.PaymentController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	RegisterRoutes(r, accountController, projectController, generationController, paymentController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	projectController *controllers.ProjectController,
	generationController *controllers.GenerationController,
	paymentController *controllers.PaymentController) {

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Famous AI API", "status": "running"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	authGroup := r.Group("/auth")
	authGroup.POST("/register", accountController.Register)
	authGroup.POST("/login", accountController.Login)
	authGroup.GET("/me", middleware.JWTAuthMiddleware(), accountController.Me)

	projectGroup := r.Group("/projects")
	projectGroup.Use(middleware.JWTAuthMiddleware())
	projectGroup.POST("", projectController.CreateProject)
	projectGroup.GET("", projectController.ListProjects)
	projectGroup.GET("/:id", projectController.GetProject)
	projectGroup.PUT("/:id", projectController.UpdateProject)
	projectGroup.DELETE("/:id", projectController.DeleteProject)

	r.POST("/generate", middleware.JWTAuthMiddleware(), generationController.Generate)

	// Public: preview documents are meant to be iframed and shared.
	r.GET("/preview/:id", projectController.GetPreview)

	paymentGroup := r.Group("/payments")
	paymentGroup.GET("/plans", paymentController.ListPlans)
	paymentGroup.POST("/checkout/session", paymentController.CreateCheckoutSession)
	paymentGroup.GET("/checkout/status/:sessionId", paymentController.GetCheckoutStatus)

	r.POST("/webhook/payment", paymentController.HandleWebhook)
}
