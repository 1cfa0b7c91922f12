package handlers

import (
	"ucode/ucode_go_task_service/models"
	"ucode/ucode_go_task_service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// CreateGroup godoc
// @Summary	create group, the owner becomes its first member
// @Router	/v1/groups [POST]
func (h *Handler) CreateGroup(c *gin.Context) {
	var req models.CreateGroupRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleResponse(c, BadRequest, err.Error())
		return
	}

	h.log.Info("---CreateGroup--->>>", logger.Any("req", req))

	resp, err := h.strg.Group().Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, "CreateGroup", err)
		return
	}

	h.handleResponse(c, Created, resp)
}

// GetGroupByID godoc
// @Router	/v1/groups/{id} [GET]
func (h *Handler) GetGroupByID(c *gin.Context) {
	id := c.Param("id")
	if !h.validId(c, id) {
		return
	}

	h.log.Info("---GetGroupByID--->>>", logger.String("id", id))

	resp, err := h.strg.Group().GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, "GetGroupByID", err)
		return
	}

	h.handleResponse(c, OK, resp)
}

// GetGroupList godoc
// @Summary	list groups, optionally only those user_id belongs to
// @Router	/v1/groups [GET]
func (h *Handler) GetGroupList(c *gin.Context) {
	limit, offset := h.pagination(c)

	req := &models.GetListGroupsRequest{
		UserId: c.Query("user_id"),
		Limit:  limit,
		Offset: offset,
	}
	if req.UserId != "" && !h.validId(c, req.UserId) {
		return
	}

	h.log.Info("---GetGroupList--->>>", logger.Any("req", req))

	resp, err := h.strg.Group().GetList(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, "GetGroupList", err)
		return
	}

	h.handleResponse(c, OK, resp)
}

// AddGroupUser godoc
// @Router	/v1/groups/{id}/users [POST]
func (h *Handler) AddGroupUser(c *gin.Context) {
	var req models.AddGroupUserRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleResponse(c, BadRequest, err.Error())
		return
	}

	req.GroupId = c.Param("id")
	if !h.validId(c, req.GroupId) {
		return
	}

	h.log.Info("---AddGroupUser--->>>", logger.Any("req", req))

	if err := h.strg.Group().AddUser(c.Request.Context(), &req); err != nil {
		h.handleError(c, "AddGroupUser", err)
		return
	}

	h.handleResponse(c, NoContent, nil)
}
