package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-timetable/internal/core/services"
)

type StatsHandler struct {
	svc *services.StatsService
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/timetables/:id/stats", noStore, h.GetStats)
}

// GetStats godoc
// @Summary  Completion statistics for a timetable
// @Tags     stats
// @Produce  json
// @Security BearerAuth
// @Param    id   path      string  true  "Timetable ID"
// @Success  200  {object}  domain.TimetableStats
// @Failure  404  {object}  errorResponse
// @Router   /timetables/{id}/stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	stats, err := h.svc.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
