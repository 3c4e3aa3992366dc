package server

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"general-transcriber/internal/api/apitest"
	"general-transcriber/internal/api/v1/dto"
	v1routes "general-transcriber/internal/api/v1/routes"
	"general-transcriber/internal/config"
)

func newTestServer(svc *apitest.MockTranscriptService) *Server {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	return NewServer(
		Config{ServerConfig: config.ServerConfig{Host: "127.0.0.1", Port: "0"}, Environment: "test"},
		&v1routes.ServiceContainer{TranscriptService: svc},
		reg,
		slog.Default(),
	)
}

func TestServerRoutes(t *testing.T) {
	svc := &apitest.MockTranscriptService{}
	svc.On("List", mock.Anything, mock.Anything, 50).
		Return(&dto.TranscriptListResponse{Success: true, Transcripts: []dto.TranscriptSummary{}}, nil)
	s := newTestServer(svc)

	tests := []struct {
		name       string
		path       string
		header     map[string]string
		wantStatus int
		wantBody   string
	}{
		{"health", "/health", nil, http.StatusOK, `"status":"healthy"`},
		{"metrics", "/metrics", nil, http.StatusOK, "go_goroutines"},
		{"index", "/", nil, http.StatusOK, "/api/v1/transcripts"},
		{"swagger", "/swagger/doc.json", nil, http.StatusOK, "/transcripts/{id}/start"},
		{"api requires identity", "/api/v1/transcripts", nil, http.StatusUnauthorized, "Not logged in"},
		{"api with identity", "/api/v1/transcripts", map[string]string{"X-User-Email": "alice@example.com"}, http.StatusOK, `"success":true`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			s.Router().ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}
