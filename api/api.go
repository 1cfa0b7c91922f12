package api

import (
	"time"

	"ucode/ucode_go_task_service/api/handlers"
	"ucode/ucode_go_task_service/config"
	"ucode/ucode_go_task_service/pkg/logger"
	"ucode/ucode_go_task_service/storage"

	"github.com/gin-gonic/gin"
)

func SetUpRouter(cfg config.Config, log logger.LoggerI, strg storage.StorageI) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	h := handlers.NewHandler(cfg, log, strg)

	r.GET("/ping", h.Ping)

	v1 := r.Group("/v1")
	{
		v1.POST("/users", h.CreateUser)
		v1.GET("/users", h.GetUserList)
		v1.GET("/users/:id", h.GetUserByID)

		v1.POST("/groups", h.CreateGroup)
		v1.GET("/groups", h.GetGroupList)
		v1.GET("/groups/:id", h.GetGroupByID)
		v1.POST("/groups/:id/users", h.AddGroupUser)
	}

	scoped := v1.Group("", h.GroupScope())
	{
		scoped.POST("/projects", h.CreateProject)
		scoped.GET("/projects", h.GetProjectList)
		scoped.GET("/projects/:id", h.GetProjectByID)
		scoped.PUT("/projects/:id", h.UpdateProject)
		scoped.DELETE("/projects/:id", h.DeleteProject)
		scoped.GET("/projects/:id/tasks/export", h.ExportProjectTasks)

		scoped.POST("/tasks", h.CreateTask)
		scoped.GET("/tasks", h.GetTaskList)
		scoped.GET("/tasks/:id", h.GetTaskByID)
		scoped.PUT("/tasks/:id", h.UpdateTask)
		scoped.DELETE("/tasks/:id", h.DeleteTask)

		scoped.POST("/steps", h.CreateStep)
		scoped.GET("/steps", h.GetStepList)
		scoped.PUT("/steps/:id", h.UpdateStep)
		scoped.DELETE("/steps/:id", h.DeleteStep)
	}

	return r
}

func requestLogger(log logger.LoggerI) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		log.Debug("http request",
			logger.String("method", c.Request.Method),
			logger.String("path", c.FullPath()),
			logger.Int("status", c.Writer.Status()),
			logger.Duration("latency", time.Since(start)),
		)
	}
}
