package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torvik/mapwiki-backend-go/internal/heatmap"
	"github.com/torvik/mapwiki-backend-go/internal/models"
	"github.com/torvik/mapwiki-backend-go/internal/service"
)

type stubSource struct {
	points []models.RawPoint
	err    error
}

func (s *stubSource) FetchPoints(mapID, itemID int64, bbox models.BoundingBox) ([]models.RawPoint, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.points, nil
}

func newTestRouter(source service.PointSource) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := service.NewHeatmapService(source, heatmap.NewStyleResolver())
	h := NewHeatmapHandler(svc)

	r := gin.New()
	r.GET("/api/v1/maps/:mapId/heatmap", h.GetHeatmap)
	r.GET("/api/v1/maps/:mapId/heatmap/batch", h.GetHeatmapBatch)
	r.GET("/api/v1/heatmap/style", h.GetStyle)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, url string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	r.ServeHTTP(w, req)

	var envelope struct {
		Code    int             `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))

	payload := map[string]json.RawMessage{}
	if len(envelope.Data) > 0 {
		json.Unmarshal(envelope.Data, &payload)
	}
	return w, payload
}

func TestGetHeatmapOK(t *testing.T) {
	source := &stubSource{points: []models.RawPoint{{X: 10, Y: 20}}}
	r := newTestRouter(source)

	w, _ := doRequest(t, r, "/api/v1/maps/1/heatmap?itemId=7&zoom=4&minX=0&minY=0&maxX=1024&maxY=1024")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.HeatmapResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Points, 1)
	assert.Equal(t, 10.0, resp.Data.Points[0].X)
	assert.Equal(t, 1.0, resp.Data.Points[0].Weight)
	assert.Equal(t, 4, resp.Data.Zoom)
	assert.Greater(t, resp.Data.Style.Radius, 0.0)
}

func TestGetHeatmapEmptyIsOK(t *testing.T) {
	r := newTestRouter(&stubSource{})

	w, _ := doRequest(t, r, "/api/v1/maps/1/heatmap?itemId=7&zoom=2&minX=0&minY=0&maxX=100&maxY=100")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.HeatmapResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data.Points, "empty result must serialize as [], not null")
	assert.Empty(t, resp.Data.Points)
}

func TestGetHeatmapInvalidViewport(t *testing.T) {
	r := newTestRouter(&stubSource{})

	// minX > maxX
	w, _ := doRequest(t, r, "/api/v1/maps/1/heatmap?itemId=7&zoom=2&minX=100&minY=0&maxX=0&maxY=100")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// negative zoom
	w, _ = doRequest(t, r, "/api/v1/maps/1/heatmap?itemId=7&zoom=-1&minX=0&minY=0&maxX=100&maxY=100")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// bad map id
	w, _ = doRequest(t, r, "/api/v1/maps/abc/heatmap?itemId=7&zoom=2&minX=0&minY=0&maxX=100&maxY=100")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetHeatmapSourceUnavailable(t *testing.T) {
	r := newTestRouter(&stubSource{err: errors.New("db is down")})

	w, _ := doRequest(t, r, "/api/v1/maps/1/heatmap?itemId=7&zoom=2&minX=0&minY=0&maxX=100&maxY=100")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGetHeatmapBatch(t *testing.T) {
	source := &stubSource{points: []models.RawPoint{{X: 50, Y: 50}}}
	r := newTestRouter(source)

	w, payload := doRequest(t, r, "/api/v1/maps/1/heatmap/batch?itemIds=1,2&zoom=3&minX=0&minY=0&maxX=1024&maxY=1024")
	require.Equal(t, http.StatusOK, w.Code)

	var heatmaps map[string]models.HeatmapResponse
	require.NoError(t, json.Unmarshal(payload["heatmaps"], &heatmaps))
	assert.Len(t, heatmaps, 2)

	// Missing itemIds
	w, _ = doRequest(t, r, "/api/v1/maps/1/heatmap/batch?zoom=3&minX=0&minY=0&maxX=10&maxY=10")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed itemIds
	w, _ = doRequest(t, r, "/api/v1/maps/1/heatmap/batch?itemIds=1,x&zoom=3&minX=0&minY=0&maxX=10&maxY=10")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetStyle(t *testing.T) {
	r := newTestRouter(&stubSource{})

	w, _ := doRequest(t, r, "/api/v1/heatmap/style?zoom=5")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.StyleParams `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, heatmap.NewStyleResolver().Resolve(5), resp.Data)

	w, _ = doRequest(t, r, "/api/v1/heatmap/style?zoom=-2")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doRequest(t, r, "/api/v1/heatmap/style?zoom=x")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
