package handler

import (
	"net/http"
	"strconv"
	"strings"

	"genstory-server/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) createCharacter(c *gin.Context) {
	var req models.CharacterCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	character, err := h.characters.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, character)
}

func (h *Handler) getCharacter(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	character, err := h.characters.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, character)
}

func (h *Handler) listCharacters(c *gin.Context) {
	skip, limit := paginationParams(c)

	characters, err := h.characters.List(c.Request.Context(), skip, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, characters)
}

func (h *Handler) listCharactersByStory(c *gin.Context) {
	storyID, ok := idParam(c, "story_id")
	if !ok {
		return
	}

	characters, err := h.characters.ListByStory(c.Request.Context(), storyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, characters)
}

func (h *Handler) updateCharacter(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req models.CharacterUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	character, err := h.characters.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, character)
}

func (h *Handler) deleteCharacter(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.characters.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Character deleted"})
}

// @Summary Генерация персонажа
// @Description Генерирует персонажа по свободному описанию. Результат
// @Description не сохраняется: клиент создает персонажа отдельным запросом.
// @Tags character
// @Produce json
// @Param user_prompt query string true "Описание персонажа"
// @Param story_id query int true "ID истории"
// @Success 200 {object} models.CharacterCreate
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /character/generate/ [post]
func (h *Handler) generateCharacter(c *gin.Context) {
	storyID, err := strconv.ParseInt(c.Query("story_id"), 10, 64)
	if err != nil || storyID <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid story_id parameter"})
		return
	}
	userPrompt := strings.TrimSpace(c.Query("user_prompt"))
	if userPrompt == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "user_prompt parameter is required"})
		return
	}

	result, err := h.characters.Generate(c.Request.Context(), storyID, userPrompt)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result.Character)
}

func (h *Handler) linkCharacterEvent(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req characterEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	link := models.CharacterEvent{
		CharacterID: id,
		EventID:     req.EventID,
		Role:        req.Role,
		Importance:  req.Importance,
		Actions:     req.Actions,
		Emotions:    req.Emotions,
	}
	if err := h.characters.LinkEvent(c.Request.Context(), &link); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

func (h *Handler) listCharacterEvents(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	links, err := h.characters.ListEventLinks(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, links)
}

func (h *Handler) setCharacterRelationship(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req characterRelationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	rel := models.CharacterRelationship{
		CharacterID:        id,
		RelatedCharacterID: req.RelatedCharacterID,
		RelationshipType:   req.RelationshipType,
		Description:        req.Description,
		Strength:           req.Strength,
	}
	if err := h.characters.SetRelationship(c.Request.Context(), &rel); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rel)
}

func (h *Handler) listCharacterRelationships(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	rels, err := h.characters.ListRelationships(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rels)
}
