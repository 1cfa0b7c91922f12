package handlers

import (
	"ucode/ucode_go_task_service/config"
	"ucode/ucode_go_task_service/models"
	"ucode/ucode_go_task_service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// CreateTask godoc
// @Router	/v1/tasks [POST]
func (h *Handler) CreateTask(c *gin.Context) {
	var req models.CreateTaskRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleResponse(c, BadRequest, err.Error())
		return
	}

	req.GroupId = groupId(c)
	if !h.groupMember(c, "CreateTask", req.AssigneeId) {
		return
	}

	h.log.Info("---CreateTask--->>>", logger.Any("req", req))

	resp, err := h.strg.Task().Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, "CreateTask", err)
		return
	}

	h.handleResponse(c, Created, resp)
}

// GetTaskByID godoc
// @Router	/v1/tasks/{id} [GET]
func (h *Handler) GetTaskByID(c *gin.Context) {
	req := &models.TaskPrimaryKey{Id: c.Param("id"), GroupId: groupId(c)}
	if !h.validId(c, req.Id) {
		return
	}

	h.log.Info("---GetTaskByID--->>>", logger.Any("req", req))

	resp, err := h.strg.Task().GetByID(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, "GetTaskByID", err)
		return
	}

	h.handleResponse(c, OK, resp)
}

// GetTaskList godoc
// @Summary	list tasks with their project, group and assignee nested
// @Param	project_id	query	string	false	"project"
// @Param	status		query	string	false	"TODO, IN_PROGRESS or DONE"
// @Param	assignee_id	query	string	false	"assignee"
// @Param	search		query	string	false	"title contains"
// @Router	/v1/tasks [GET]
func (h *Handler) GetTaskList(c *gin.Context) {
	limit, offset := h.pagination(c)

	req := &models.GetListTasksRequest{
		GroupId:    groupId(c),
		ProjectId:  c.Query("project_id"),
		Status:     c.Query("status"),
		AssigneeId: c.Query("assignee_id"),
		Search:     c.Query("search"),
		Limit:      limit,
		Offset:     offset,
	}

	if req.ProjectId != "" && !h.validId(c, req.ProjectId) {
		return
	}
	if req.AssigneeId != "" && !h.validId(c, req.AssigneeId) {
		return
	}
	if req.Status != "" && !config.TASK_STATUSES[req.Status] {
		h.handleResponse(c, BadRequest, "unknown status "+req.Status)
		return
	}

	h.log.Info("---GetTaskList--->>>", logger.Any("req", req))

	resp, err := h.strg.Task().GetList(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, "GetTaskList", err)
		return
	}

	h.handleResponse(c, OK, resp)
}

// UpdateTask godoc
// @Router	/v1/tasks/{id} [PUT]
func (h *Handler) UpdateTask(c *gin.Context) {
	var req models.UpdateTaskRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleResponse(c, BadRequest, err.Error())
		return
	}

	req.Id, req.GroupId = c.Param("id"), groupId(c)
	if !h.validId(c, req.Id) {
		return
	}

	if req.AssigneeId != nil && !h.groupMember(c, "UpdateTask", *req.AssigneeId) {
		return
	}

	h.log.Info("---UpdateTask--->>>", logger.Any("req", req))

	resp, err := h.strg.Task().Update(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, "UpdateTask", err)
		return
	}

	h.handleResponse(c, OK, resp)
}

// DeleteTask godoc
// @Router	/v1/tasks/{id} [DELETE]
func (h *Handler) DeleteTask(c *gin.Context) {
	req := &models.TaskPrimaryKey{Id: c.Param("id"), GroupId: groupId(c)}
	if !h.validId(c, req.Id) {
		return
	}

	h.log.Info("---DeleteTask--->>>", logger.Any("req", req))

	if err := h.strg.Task().Delete(c.Request.Context(), req); err != nil {
		h.handleError(c, "DeleteTask", err)
		return
	}

	h.handleResponse(c, NoContent, nil)
}
