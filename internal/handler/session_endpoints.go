package handler

import (
	"net/http"

	"genstory-server/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listSessions(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	skip, limit := paginationParams(c)

	sessions, err := h.sessions.ListSessions(c.Request.Context(), userID, skip, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func (h *Handler) getSession(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	session, err := h.sessions.GetSession(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// @Summary Лог сообщений сессии
// @Description Возвращает сообщения сессии в порядке sequence_number.
// @Tags session
// @Produce json
// @Param id path string true "UUID сессии"
// @Success 200 {array} models.SessionMessage
// @Failure 404 {object} models.ErrorResponse
// @Router /session/{id}/messages [get]
func (h *Handler) getSessionMessages(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	messages, err := h.sessions.GetMessages(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *Handler) getSessionToolUsage(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	usages, err := h.sessions.GetToolUsage(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, usages)
}

func (h *Handler) getSessionStats(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	stats, err := h.sessions.GetSessionStats(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) closeSession(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.sessions.CloseSession(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Session closed"})
}

func (h *Handler) registerTool(c *gin.Context) {
	var req registerToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	tool := models.Tool{
		Name:        req.Name,
		Description: req.Description,
		Version:     req.Version,
		IsActive:    true,
	}
	if err := h.sessions.RegisterTool(c.Request.Context(), &tool); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tool)
}

func (h *Handler) getTool(c *gin.Context) {
	name := c.Param("name")

	tool, err := h.sessions.GetToolByName(c.Request.Context(), name)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tool)
}

func (h *Handler) recordToolUsage(c *gin.Context) {
	var req recordToolUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	usage := models.ToolUsage{
		SessionID:       req.SessionID,
		ToolID:          req.ToolID,
		MessageID:       req.MessageID,
		ExecutionTimeMs: req.ExecutionTimeMs,
		Success:         req.Success,
		ErrorMessage:    req.ErrorMessage,
	}
	if err := h.sessions.RecordToolUsage(c.Request.Context(), &usage); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, usage)
}
