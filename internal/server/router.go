package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/hireloop/hireloop-backend/internal/handlers"
)

type RouterConfig struct {
	ServiceName      string
	CandidateHandler *handlers.CandidateHandler
	IngestHandler    *handlers.IngestHandler
	ProjectHandler   *handlers.ProjectHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "hireloop-backend"
	}
	router.Use(otelgin.Middleware(serviceName))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Candidates
		api.POST("/candidates", cfg.CandidateHandler.CreateCandidate)
		api.DELETE("/candidates/:id", cfg.CandidateHandler.DeleteCandidate)
		api.POST("/candidates/:id/projects", cfg.IngestHandler.IngestProjects)

		// Projects
		api.GET("/projects", cfg.ProjectHandler.ListProjects)
		api.GET("/projects/:id", cfg.ProjectHandler.GetProject)
		api.POST("/projects/merge", cfg.ProjectHandler.MergeProjects)
		api.POST("/projects/unmerge", cfg.ProjectHandler.UnmergeProjects)
		api.POST("/projects/merge/suggest", cfg.ProjectHandler.SuggestMerges)
		api.GET("/merges", cfg.ProjectHandler.ListMerges)
	}

	return router
}
