package handlers

import (
	"ucode/ucode_go_task_service/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GroupScope requires the tenant header and stores the group id for the
// handlers below it.
func (h *Handler) GroupScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(config.GroupHeader)
		if id == "" {
			h.handleResponse(c, BadRequest, config.ErrGroupHeaderMissing)
			c.Abort()
			return
		}

		if _, err := uuid.Parse(id); err != nil {
			h.handleResponse(c, BadRequest, config.GroupHeader+" must be a uuid")
			c.Abort()
			return
		}

		c.Set(groupIdKey, id)
		c.Next()
	}
}

func (h *Handler) validId(c *gin.Context, id string) bool {
	if _, err := uuid.Parse(id); err != nil {
		h.handleResponse(c, BadRequest, "id must be a uuid")
		return false
	}

	return true
}
