package handler

import (
	"net/http"
	"strings"

	"genstory-server/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) createStoryContent(c *gin.Context) {
	var req models.StoryContentCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	content, err := h.contents.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, content)
}

func (h *Handler) getStoryContent(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	content, err := h.contents.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, content)
}

func (h *Handler) listStoryContents(c *gin.Context) {
	skip, limit := paginationParams(c)

	contents, err := h.contents.List(c.Request.Context(), skip, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, contents)
}

func (h *Handler) listStoryContentsByStory(c *gin.Context) {
	storyID, ok := idParam(c, "story_id")
	if !ok {
		return
	}

	contents, err := h.contents.ListByStory(c.Request.Context(), storyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, contents)
}

func (h *Handler) updateStoryContent(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req models.StoryContentUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	content, err := h.contents.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, content)
}

func (h *Handler) deleteStoryContent(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.contents.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Story content deleted"})
}

// @Summary Генерация текста раздела
// @Description Генерирует прозу для пункта плана, сохраняет StoryContent
// @Description и проставляет ссылку на него в плане истории.
// @Tags story_content
// @Produce json
// @Param story_id path int true "ID истории"
// @Param outline_title query string true "Заголовок пункта плана"
// @Success 201 {object} models.StoryContent
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /story_content/generate/{story_id} [post]
func (h *Handler) generateStoryContent(c *gin.Context) {
	storyID, ok := idParam(c, "story_id")
	if !ok {
		return
	}
	outlineTitle := strings.TrimSpace(c.Query("outline_title"))
	if outlineTitle == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "outline_title parameter is required"})
		return
	}

	content, _, err := h.contents.Generate(c.Request.Context(), storyID, outlineTitle)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, content)
}
