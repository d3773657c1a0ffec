package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGinMiddleware_CountsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/timetables/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/timetables/:id", "204"))

	for _, id := range []string{"a", "b", "c"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/timetables/"+id, nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	}

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/timetables/:id", "204"))
	assert.Equal(t, 3.0, after-before)
	assert.Equal(t, 0.0, testutil.ToFloat64(httpRequestsInFlight))
}

func TestObserveRollover(t *testing.T) {
	lazy := testutil.ToFloat64(weekRollovers.WithLabelValues("lazy"))
	archived := testutil.ToFloat64(weeksArchived)

	ObserveRollover("lazy", true)
	ObserveRollover("lazy", false)

	assert.Equal(t, 2.0, testutil.ToFloat64(weekRollovers.WithLabelValues("lazy"))-lazy)
	assert.Equal(t, 1.0, testutil.ToFloat64(weeksArchived)-archived)
}
