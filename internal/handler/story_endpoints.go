package handler

import (
	"net/http"
	"strconv"

	"genstory-server/internal/models"

	"github.com/gin-gonic/gin"
)

// @Summary Создание истории
// @Tags story
// @Accept json
// @Produce json
// @Param request body models.StoryCreate true "Данные истории"
// @Success 201 {object} models.Story
// @Failure 400 {object} models.ErrorResponse
// @Router /story/create/ [post]
func (h *Handler) createStory(c *gin.Context) {
	var req models.StoryCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	story, err := h.stories.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, story)
}

func (h *Handler) getStory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	story, err := h.stories.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, story)
}

func (h *Handler) listStories(c *gin.Context) {
	skip, limit := paginationParams(c)

	stories, err := h.stories.List(c.Request.Context(), skip, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stories)
}

func (h *Handler) updateStory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req models.StoryUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	story, err := h.stories.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, story)
}

func (h *Handler) deleteStory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.stories.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Story deleted"})
}

// @Summary Генерация плана истории
// @Description Генерирует план по данным истории. Результат не сохраняется:
// @Description сохранение выполняется явным PUT /story/{id}.
// @Tags story
// @Produce json
// @Param story_id query int true "ID истории"
// @Success 200 {object} models.StoryOutline
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /story/generate_outline/ [post]
func (h *Handler) generateOutline(c *gin.Context) {
	storyID, err := strconv.ParseInt(c.Query("story_id"), 10, 64)
	if err != nil || storyID <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid story_id parameter"})
		return
	}

	result, err := h.stories.GenerateOutline(c.Request.Context(), storyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result.Outline)
}
