package handlers

import (
	"ucode/ucode_go_task_service/config"
	"ucode/ucode_go_task_service/models"
	"ucode/ucode_go_task_service/pkg/helper"
	"ucode/ucode_go_task_service/pkg/logger"
	"ucode/ucode_go_task_service/storage"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/status"
)

const groupIdKey = "group_id"

type Handler struct {
	cfg  config.Config
	log  logger.LoggerI
	strg storage.StorageI
}

func NewHandler(cfg config.Config, log logger.LoggerI, strg storage.StorageI) *Handler {
	return &Handler{
		cfg:  cfg,
		log:  log,
		strg: strg,
	}
}

func (h *Handler) handleResponse(c *gin.Context, st Status, data any) {
	if st.Code == NoContent.Code {
		c.Status(st.Code)
		return
	}

	c.JSON(st.Code, models.Response{
		Status:      st.Status,
		Description: st.Description,
		Data:        data,
	})
}

// handleError answers with the status the error maps to. Internal details
// stay in the log.
func (h *Handler) handleError(c *gin.Context, method string, err error) {
	st := statusFromError(err)

	h.log.Error("---"+method+"--->>>", logger.Error(err), logger.Int("status", st.Code))

	if st.Code == InternalServerError.Code {
		h.handleResponse(c, st, "internal error")
		return
	}

	h.handleResponse(c, st, status.Convert(err).Message())
}

func (h *Handler) pagination(c *gin.Context) (int, int) {
	return helper.Pagination(c.Query("limit"), c.Query("offset"), h.cfg.DefaultLimit, h.cfg.MaxLimit)
}

func groupId(c *gin.Context) string {
	return c.GetString(groupIdKey)
}

// groupMember answers 422 when userId is set but does not belong to the
// caller's group.
func (h *Handler) groupMember(c *gin.Context, method, userId string) bool {
	if userId == "" {
		return true
	}

	ok, err := h.strg.Group().HasUser(c.Request.Context(), groupId(c), userId)
	if err != nil {
		h.handleError(c, method, err)
		return false
	}

	if !ok {
		h.handleResponse(c, UnprocessableEntity, "user "+userId+" is not a member of the group")
		return false
	}

	return true
}

// Ping godoc
// @Summary	health check
// @Router	/ping [GET]
func (h *Handler) Ping(c *gin.Context) {
	h.handleResponse(c, OK, "pong")
}
