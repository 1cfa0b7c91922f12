package handlers

import (
	"ucode/ucode_go_task_service/config"
	"ucode/ucode_go_task_service/models"
	"ucode/ucode_go_task_service/pkg/logger"
	"ucode/ucode_go_task_service/pkg/util"

	"github.com/gin-gonic/gin"
)

// CreateUser godoc
// @Summary	create user
// @Router	/v1/users [POST]
func (h *Handler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleResponse(c, BadRequest, err.Error())
		return
	}

	if err := util.ValidStrongPassword(req.Password); err != nil {
		h.handleResponse(c, BadRequest, err.Error())
		return
	}

	h.log.Info("---CreateUser--->>>", logger.String("email", req.Email))

	resp, err := h.strg.User().Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, "CreateUser", err)
		return
	}

	h.handleResponse(c, Created, resp)
}

// GetUserByID godoc
// @Router	/v1/users/{id} [GET]
func (h *Handler) GetUserByID(c *gin.Context) {
	id := c.Param("id")
	if !h.validId(c, id) {
		return
	}

	h.log.Info("---GetUserByID--->>>", logger.String("id", id))

	resp, err := h.strg.User().GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, "GetUserByID", err)
		return
	}

	h.handleResponse(c, OK, resp)
}

// GetUserList godoc
// @Summary	list users, members of the group in X-Group-Id when the header is set
// @Router	/v1/users [GET]
func (h *Handler) GetUserList(c *gin.Context) {
	limit, offset := h.pagination(c)

	req := &models.GetListUsersRequest{
		GroupId: c.GetHeader(config.GroupHeader),
		Search:  c.Query("search"),
		Limit:   limit,
		Offset:  offset,
	}
	if req.GroupId != "" && !h.validId(c, req.GroupId) {
		return
	}

	h.log.Info("---GetUserList--->>>", logger.Any("req", req))

	resp, err := h.strg.User().GetList(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, "GetUserList", err)
		return
	}

	h.handleResponse(c, OK, resp)
}
