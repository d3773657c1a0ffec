package http

import (
	"net/http"
	"strconv"

	"github.com/comitanigiacomo/kanso-timetable/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-timetable/internal/core/domain"
	"github.com/comitanigiacomo/kanso-timetable/internal/core/services"
	"github.com/gin-gonic/gin"
)

type TimetableHandler struct {
	svc *services.TimetableService
}

func NewTimetableHandler(svc *services.TimetableService) *TimetableHandler {
	return &TimetableHandler{
		svc: svc,
	}
}

type createTimetableRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Timezone    string            `json:"timezone"`
	Activities  []domain.Activity `json:"default_activities"`
}

type updateTimetableRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Timezone    *string `json:"timezone"`
	IsActive    *bool   `json:"is_active"`
}

type toggleStatusRequest struct {
	ActivityID string `json:"activity_id" binding:"required"`
	DayIndex   *int   `json:"day_index" binding:"required"`
}

type updateActivitiesRequest struct {
	Activities []domain.Activity `json:"activities" binding:"required"`
}

type currentWeekResponse struct {
	TimetableID   string       `json:"timetable_id"`
	TimetableName string       `json:"timetable_name"`
	Timezone      string       `json:"timezone"`
	Week          *domain.Week `json:"current_week"`
}

func newCurrentWeekResponse(t *domain.Timetable) currentWeekResponse {
	return currentWeekResponse{
		TimetableID:   t.ID,
		TimetableName: t.Name,
		Timezone:      t.Timezone,
		Week:          t.CurrentWeek,
	}
}

func (h *TimetableHandler) RegisterRoutes(router *gin.RouterGroup) {
	timetables := router.Group("/timetables", noStore)
	{
		timetables.GET("", h.List)
		timetables.POST("", h.Create)
		timetables.GET("/current-week", h.CurrentWeek)
		timetables.GET("/categories", h.Categories)
		timetables.GET("/:id", h.Get)
		timetables.PUT("/:id", h.Update)
		timetables.DELETE("/:id", h.Delete)
		timetables.GET("/:id/current-week", h.CurrentWeek)
		timetables.GET("/:id/history", h.History)
		timetables.POST("/:id/toggle", h.ToggleStatus)
		timetables.PUT("/:id/activities", h.UpdateActivities)
		timetables.POST("/:id/new-week", h.ForceNewWeek)
	}
}

func currentUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return "", false
	}
	return userID, true
}

// Create godoc
// @Summary      Create a timetable
// @Description  An empty activity list gets the default catalog. The first timetable of a user becomes active.
// @Tags         timetables
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTimetableRequest  true  "Timetable"
// @Success      201   {object}  domain.Timetable
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /timetables [post]
func (h *TimetableHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req createTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	t, err := h.svc.Create(c.Request.Context(), services.CreateTimetableInput{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Timezone:    req.Timezone,
		Activities:  req.Activities,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, t)
}

// List godoc
// @Summary  List the caller's timetables, oldest first
// @Tags     timetables
// @Produce  json
// @Security BearerAuth
// @Success  200  {array}  domain.TimetableSummary
// @Router   /timetables [get]
func (h *TimetableHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	list, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// Get godoc
// @Summary  Get a timetable with its full history
// @Tags     timetables
// @Produce  json
// @Security BearerAuth
// @Param    id   path      string  true  "Timetable ID"
// @Success  200  {object}  domain.Timetable
// @Failure  404  {object}  errorResponse
// @Router   /timetables/{id} [get]
func (h *TimetableHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	t, err := h.svc.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

// Update godoc
// @Summary  Rename, describe, move to another timezone or activate a timetable
// @Tags     timetables
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id    path      string                  true  "Timetable ID"
// @Param    body  body      updateTimetableRequest  true  "Fields to change"
// @Success  200   {object}  domain.Timetable
// @Failure  400   {object}  errorResponse
// @Failure  404   {object}  errorResponse
// @Failure  409   {object}  errorResponse
// @Router   /timetables/{id} [put]
func (h *TimetableHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req updateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	t, err := h.svc.Update(c.Request.Context(), services.UpdateTimetableInput{
		ID:          c.Param("id"),
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Timezone:    req.Timezone,
		IsActive:    req.IsActive,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

// Delete godoc
// @Summary  Delete a timetable
// @Description  The last remaining timetable cannot be deleted. Deleting the active one activates the oldest remaining.
// @Tags     timetables
// @Security BearerAuth
// @Param    id  path  string  true  "Timetable ID"
// @Success  204
// @Failure  404  {object}  errorResponse
// @Failure  409  {object}  errorResponse
// @Router   /timetables/{id} [delete]
func (h *TimetableHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CurrentWeek godoc
// @Summary      Get the current week
// @Description  Rolls the week over first when it has ended. Without an id the active timetable is used.
// @Tags         weeks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  false  "Timetable ID"
// @Success      200  {object}  currentWeekResponse
// @Failure      404  {object}  errorResponse
// @Router       /timetables/{id}/current-week [get]
// @Router       /timetables/current-week [get]
func (h *TimetableHandler) CurrentWeek(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	t, err := h.svc.CurrentWeek(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newCurrentWeekResponse(t))
}

// ToggleStatus godoc
// @Summary  Flip one day of one activity in the current week
// @Tags     weeks
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id    path      string               true  "Timetable ID"
// @Param    body  body      toggleStatusRequest  true  "Activity and day (0 = Monday)"
// @Success  200   {object}  domain.Week
// @Failure  400   {object}  errorResponse
// @Failure  404   {object}  errorResponse
// @Router   /timetables/{id}/toggle [post]
func (h *TimetableHandler) ToggleStatus(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req toggleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	week, err := h.svc.ToggleStatus(c.Request.Context(), services.ToggleStatusInput{
		TimetableID: c.Param("id"),
		UserID:      userID,
		ActivityID:  req.ActivityID,
		DayIndex:    *req.DayIndex,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, week)
}

// UpdateActivities godoc
// @Summary      Replace the activity catalog
// @Description  Unchanged activities keep their progress in the current week.
// @Tags         weeks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Timetable ID"
// @Param        body  body      updateActivitiesRequest  true  "New catalog"
// @Success      200   {object}  domain.Timetable
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /timetables/{id}/activities [put]
func (h *TimetableHandler) UpdateActivities(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req updateActivitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	t, err := h.svc.UpdateActivities(c.Request.Context(), c.Param("id"), userID, req.Activities)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

// ForceNewWeek godoc
// @Summary  Archive the current week and start a new one
// @Tags     weeks
// @Produce  json
// @Security BearerAuth
// @Param    id   path      string  true  "Timetable ID"
// @Success  200  {object}  domain.Week
// @Failure  404  {object}  errorResponse
// @Router   /timetables/{id}/new-week [post]
func (h *TimetableHandler) ForceNewWeek(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	week, err := h.svc.ForceNewWeek(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, week)
}

// History godoc
// @Summary  Archived weeks, oldest first
// @Tags     weeks
// @Produce  json
// @Security BearerAuth
// @Param    id     path      string  true   "Timetable ID"
// @Param    page   query     int     false  "Page (default 1)"
// @Param    limit  query     int     false  "Page size (default 10, max 100)"
// @Success  200    {object}  services.HistoryPage
// @Failure  400    {object}  errorResponse
// @Failure  404    {object}  errorResponse
// @Router   /timetables/{id}/history [get]
func (h *TimetableHandler) History(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	page, err := queryInt(c, "page")
	if err != nil {
		writeError(c, err)
		return
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		writeError(c, err)
		return
	}

	result, err := h.svc.History(c.Request.Context(), services.HistoryInput{
		TimetableID: c.Param("id"),
		UserID:      userID,
		Page:        page,
		PageSize:    limit,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Categories godoc
// @Summary  Distinct activity categories across the caller's timetables
// @Tags     timetables
// @Produce  json
// @Security BearerAuth
// @Success  200  {array}  string
// @Router   /timetables/categories [get]
func (h *TimetableHandler) Categories(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	categories, err := h.svc.Categories(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// queryInt reads an optional integer query parameter; absent means 0.
func queryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(name, name+" must be an integer")
	}
	return v, nil
}
