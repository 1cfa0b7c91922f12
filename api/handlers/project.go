package handlers

import (
	"bytes"
	"fmt"
	"time"

	"ucode/ucode_go_task_service/models"
	"ucode/ucode_go_task_service/pkg/excel"
	"ucode/ucode_go_task_service/pkg/logger"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CreateProject godoc
// @Router	/v1/projects [POST]
func (h *Handler) CreateProject(c *gin.Context) {
	var req models.CreateProjectRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleResponse(c, BadRequest, err.Error())
		return
	}

	req.GroupId = groupId(c)
	if !h.groupMember(c, "CreateProject", req.OwnerId) {
		return
	}

	h.log.Info("---CreateProject--->>>", logger.Any("req", req))

	resp, err := h.strg.Project().Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, "CreateProject", err)
		return
	}

	h.handleResponse(c, Created, resp)
}

// GetProjectByID godoc
// @Router	/v1/projects/{id} [GET]
func (h *Handler) GetProjectByID(c *gin.Context) {
	req := &models.ProjectPrimaryKey{Id: c.Param("id"), GroupId: groupId(c)}
	if !h.validId(c, req.Id) {
		return
	}

	h.log.Info("---GetProjectByID--->>>", logger.Any("req", req))

	resp, err := h.strg.Project().GetByID(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, "GetProjectByID", err)
		return
	}

	h.handleResponse(c, OK, resp)
}

// GetProjectList godoc
// @Router	/v1/projects [GET]
func (h *Handler) GetProjectList(c *gin.Context) {
	limit, offset := h.pagination(c)

	req := &models.GetListProjectsRequest{
		GroupId: groupId(c),
		OwnerId: c.Query("owner_id"),
		Search:  c.Query("search"),
		Limit:   limit,
		Offset:  offset,
	}
	if req.OwnerId != "" && !h.validId(c, req.OwnerId) {
		return
	}

	h.log.Info("---GetProjectList--->>>", logger.Any("req", req))

	resp, err := h.strg.Project().GetList(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, "GetProjectList", err)
		return
	}

	h.handleResponse(c, OK, resp)
}

// UpdateProject godoc
// @Router	/v1/projects/{id} [PUT]
func (h *Handler) UpdateProject(c *gin.Context) {
	var req models.UpdateProjectRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleResponse(c, BadRequest, err.Error())
		return
	}

	req.Id, req.GroupId = c.Param("id"), groupId(c)
	if !h.validId(c, req.Id) {
		return
	}

	if req.OwnerId != nil && !h.groupMember(c, "UpdateProject", *req.OwnerId) {
		return
	}

	h.log.Info("---UpdateProject--->>>", logger.Any("req", req))

	resp, err := h.strg.Project().Update(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, "UpdateProject", err)
		return
	}

	h.handleResponse(c, OK, resp)
}

// DeleteProject godoc
// @Router	/v1/projects/{id} [DELETE]
func (h *Handler) DeleteProject(c *gin.Context) {
	req := &models.ProjectPrimaryKey{Id: c.Param("id"), GroupId: groupId(c)}
	if !h.validId(c, req.Id) {
		return
	}

	h.log.Info("---DeleteProject--->>>", logger.Any("req", req))

	if err := h.strg.Project().Delete(c.Request.Context(), req); err != nil {
		h.handleError(c, "DeleteProject", err)
		return
	}

	h.handleResponse(c, NoContent, nil)
}

// ExportProjectTasks godoc
// @Summary	every live task of the project as an xlsx workbook
// @Router	/v1/projects/{id}/tasks/export [GET]
func (h *Handler) ExportProjectTasks(c *gin.Context) {
	project := &models.ProjectPrimaryKey{Id: c.Param("id"), GroupId: groupId(c)}
	if !h.validId(c, project.Id) {
		return
	}

	h.log.Info("---ExportProjectTasks--->>>", logger.Any("req", project))

	ctx := c.Request.Context()

	if _, err := h.strg.Project().GetByID(ctx, project); err != nil {
		h.handleError(c, "ExportProjectTasks", err)
		return
	}

	var (
		tasks = []*models.Task{}
		req   = &models.GetListTasksRequest{GroupId: project.GroupId, ProjectId: project.Id, Limit: h.cfg.MaxLimit}
	)

	for {
		resp, err := h.strg.Task().GetList(ctx, req)
		if err != nil {
			h.handleError(c, "ExportProjectTasks", err)
			return
		}

		tasks = append(tasks, resp.Tasks...)
		req.Offset += len(resp.Tasks)

		if len(resp.Tasks) == 0 || req.Offset >= resp.Count {
			break
		}
	}

	var buf bytes.Buffer
	if err := excel.WriteTasks(&buf, tasks); err != nil {
		h.handleError(c, "ExportProjectTasks", err)
		return
	}

	filename := fmt.Sprintf("tasks_%s_%d.xlsx", project.Id, time.Now().Unix())

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(OK.Code, xlsxContentType, buf.Bytes())
}
