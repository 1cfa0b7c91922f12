package handlers

import (
	"ucode/ucode_go_task_service/models"
	"ucode/ucode_go_task_service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

// CreateStep godoc
// @Router	/v1/steps [POST]
func (h *Handler) CreateStep(c *gin.Context) {
	var req models.CreateStepRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleResponse(c, BadRequest, err.Error())
		return
	}

	req.GroupId = groupId(c)

	h.log.Info("---CreateStep--->>>", logger.Any("req", req))

	resp, err := h.strg.Step().Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, "CreateStep", err)
		return
	}

	h.handleResponse(c, Created, resp)
}

// GetStepList godoc
// @Param	task_id	query	string	false	"task"
// @Param	done	query	bool	false	"done filter"
// @Router	/v1/steps [GET]
func (h *Handler) GetStepList(c *gin.Context) {
	limit, offset := h.pagination(c)

	req := &models.GetListStepsRequest{
		GroupId: groupId(c),
		TaskId:  c.Query("task_id"),
		Limit:   limit,
		Offset:  offset,
	}
	if req.TaskId != "" && !h.validId(c, req.TaskId) {
		return
	}

	if raw, ok := c.GetQuery("done"); ok {
		done, err := cast.ToBoolE(raw)
		if err != nil {
			h.handleResponse(c, BadRequest, "done must be a boolean")
			return
		}
		req.Done = &done
	}

	h.log.Info("---GetStepList--->>>", logger.Any("req", req))

	resp, err := h.strg.Step().GetList(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, "GetStepList", err)
		return
	}

	h.handleResponse(c, OK, resp)
}

// UpdateStep godoc
// @Router	/v1/steps/{id} [PUT]
func (h *Handler) UpdateStep(c *gin.Context) {
	var req models.UpdateStepRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleResponse(c, BadRequest, err.Error())
		return
	}

	req.Id, req.GroupId = c.Param("id"), groupId(c)
	if !h.validId(c, req.Id) {
		return
	}

	h.log.Info("---UpdateStep--->>>", logger.Any("req", req))

	resp, err := h.strg.Step().Update(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, "UpdateStep", err)
		return
	}

	h.handleResponse(c, OK, resp)
}

// DeleteStep godoc
// @Router	/v1/steps/{id} [DELETE]
func (h *Handler) DeleteStep(c *gin.Context) {
	req := &models.StepPrimaryKey{Id: c.Param("id"), GroupId: groupId(c)}
	if !h.validId(c, req.Id) {
		return
	}

	h.log.Info("---DeleteStep--->>>", logger.Any("req", req))

	if err := h.strg.Step().Delete(c.Request.Context(), req); err != nil {
		h.handleError(c, "DeleteStep", err)
		return
	}

	h.handleResponse(c, NoContent, nil)
}
