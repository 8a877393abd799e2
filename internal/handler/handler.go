package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maxviazov/users-service/internal/service"
)

// Register mounts all public routes on the given engine.
func Register(r *gin.Engine, repo Pinger, userSvc service.UserService) {
	h := NewHealthHandler(repo)
	users := NewUserHandler(userSvc)

	r.GET(livePath, h.Liveness)
	r.GET(readyPath, h.Readiness)

	RegisterDocs(r)

	users.Register(r.Group(""))

	api := r.Group(APIV1Prefix)
	{
		health := api.Group("/health")
		{
			health.GET(livePath, h.Liveness)
			health.GET(readyPath, h.Readiness)
		}
		users.Register(api)
	}
}
