package handler

import (
	"net/http"
	"strconv"

	"genstory-server/internal/models"
	"genstory-server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler объединяет все HTTP-обработчики приложения.
type Handler struct {
	stories    *service.StoryService
	characters *service.CharacterService
	contents   *service.StoryContentService
	events     *service.EventService
	timelines  *service.TimelineService
	locations  *service.LocationService
	sessions   *service.SessionService
	users      *service.UserService
}

func NewHandler(
	stories *service.StoryService,
	characters *service.CharacterService,
	contents *service.StoryContentService,
	events *service.EventService,
	timelines *service.TimelineService,
	locations *service.LocationService,
	sessions *service.SessionService,
	users *service.UserService,
) *Handler {
	return &Handler{
		stories:    stories,
		characters: characters,
		contents:   contents,
		events:     events,
		timelines:  timelines,
		locations:  locations,
		sessions:   sessions,
		users:      users,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	storyGroup := router.Group("/story")
	{
		storyGroup.POST("/create/", h.createStory)
		storyGroup.GET("/", h.listStories)
		storyGroup.GET("/:id", h.getStory)
		storyGroup.PUT("/:id", h.updateStory)
		storyGroup.DELETE("/:id", h.deleteStory)
		storyGroup.POST("/generate_outline/", h.generateOutline)
	}

	characterGroup := router.Group("/character")
	{
		characterGroup.POST("/create/", h.createCharacter)
		characterGroup.GET("/", h.listCharacters)
		characterGroup.GET("/:id", h.getCharacter)
		characterGroup.PUT("/:id", h.updateCharacter)
		characterGroup.DELETE("/:id", h.deleteCharacter)
		characterGroup.GET("/story/:story_id", h.listCharactersByStory)
		characterGroup.POST("/generate/", h.generateCharacter)
		characterGroup.POST("/:id/events", h.linkCharacterEvent)
		characterGroup.GET("/:id/events", h.listCharacterEvents)
		characterGroup.POST("/:id/relationships", h.setCharacterRelationship)
		characterGroup.GET("/:id/relationships", h.listCharacterRelationships)
	}

	contentGroup := router.Group("/story_content")
	{
		contentGroup.POST("/create/", h.createStoryContent)
		contentGroup.GET("/", h.listStoryContents)
		contentGroup.GET("/:id", h.getStoryContent)
		contentGroup.PUT("/:id", h.updateStoryContent)
		contentGroup.DELETE("/:id", h.deleteStoryContent)
		contentGroup.GET("/story/:story_id", h.listStoryContentsByStory)
		contentGroup.POST("/generate/:story_id", h.generateStoryContent)
	}

	eventGroup := router.Group("/event")
	{
		eventGroup.POST("/create/", h.createEvent)
		eventGroup.GET("/", h.listEvents)
		eventGroup.GET("/:id", h.getEvent)
		eventGroup.PUT("/:id", h.updateEvent)
		eventGroup.DELETE("/:id", h.deleteEvent)
		eventGroup.GET("/story/:story_id", h.listEventsByStory)
	}

	timelineGroup := router.Group("/timeline")
	{
		timelineGroup.POST("/create/", h.createTimeline)
		timelineGroup.GET("/", h.listTimelines)
		timelineGroup.GET("/:id", h.getTimeline)
		timelineGroup.PUT("/:id", h.updateTimeline)
		timelineGroup.DELETE("/:id", h.deleteTimeline)
		timelineGroup.GET("/story/:story_id", h.getTimelineByStory)
	}

	locationGroup := router.Group("/location")
	{
		locationGroup.POST("/create/", h.createLocation)
		locationGroup.GET("/", h.listLocations)
		locationGroup.GET("/:id", h.getLocation)
		locationGroup.PUT("/:id", h.updateLocation)
		locationGroup.DELETE("/:id", h.deleteLocation)
		locationGroup.GET("/story/:story_id", h.listLocationsByStory)
	}

	sessionGroup := router.Group("/session")
	{
		sessionGroup.GET("/", h.AuthMiddleware(), h.listSessions)
		sessionGroup.GET("/:id", h.getSession)
		sessionGroup.GET("/:id/messages", h.getSessionMessages)
		sessionGroup.GET("/:id/tool_usage", h.getSessionToolUsage)
		sessionGroup.GET("/:id/stats", h.getSessionStats)
		sessionGroup.POST("/:id/close", h.closeSession)
		sessionGroup.POST("/tools", h.registerTool)
		sessionGroup.GET("/tools/:name", h.getTool)
		sessionGroup.POST("/tool_usage", h.recordToolUsage)
	}

	userGroup := router.Group("/user")
	{
		userGroup.POST("/register", h.register)
		userGroup.POST("/token", h.token)
		userGroup.GET("/verify-email", h.verifyEmail)
		userGroup.POST("/resend-verification", h.resendVerification)
		userGroup.GET("/users/me/", h.AuthMiddleware(), h.getMe)
		userGroup.GET("/users/", h.listUsers)
		userGroup.GET("/users/:id", h.getUser)
		userGroup.PUT("/users/:id", h.updateUser)
		userGroup.DELETE("/users/:id", h.deleteUser)
	}
}

// idParam читает целочисленный идентификатор из path-параметра.
// При ошибке пишет 400 в ответ и возвращает ok=false.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    models.ErrCodeBadRequest,
			Message: "Invalid " + name + " parameter",
		})
		return 0, false
	}
	return id, true
}

// uuidParam читает UUID из path-параметра.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    models.ErrCodeBadRequest,
			Message: "Invalid " + name + " parameter",
		})
		return uuid.Nil, false
	}
	return id, true
}

// paginationParams читает skip/limit из query с дефолтами 0/100.
func paginationParams(c *gin.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	return skip, limit
}
