package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vslstudio/vsl-backend/internal/autocomplete/domain"
)

type stubSuggester struct {
	suggestion string
	err        error
	gotKey     string
	gotPrompt  string
}

func (s *stubSuggester) Suggest(ctx context.Context, clientKey, fragment string) (string, error) {
	s.gotKey = clientKey
	s.gotPrompt = fragment
	return s.suggestion, s.err
}

func setupRouter(svc Suggester) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(svc).Register(r.Group("/api"))
	return r
}

func post(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/autocomplete", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestComplete_Success(t *testing.T) {
	svc := &stubSuggester{suggestion: "á, tudo bem?"}
	rr := post(setupRouter(svc), `{"prompt":"Ol"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp domain.CompletionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "á, tudo bem?", resp.Suggestion)
	assert.Equal(t, "Ol", svc.gotPrompt)
	assert.NotEmpty(t, svc.gotKey)
}

func TestComplete_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"malformed body", `{"prompt":`, nil, http.StatusBadRequest},
		{"empty prompt", `{"prompt":""}`, domain.ErrEmptyPrompt, http.StatusBadRequest},
		{"too long", `{"prompt":"x"}`, domain.ErrPromptTooLong, http.StatusBadRequest},
		{"rate limited", `{"prompt":"ola"}`, domain.ErrRateLimited, http.StatusTooManyRequests},
		{"generator failure", `{"prompt":"ola"}`, fmt.Errorf("%w: boom", domain.ErrCompletionFailed), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := post(setupRouter(&stubSuggester{err: tt.err}), tt.body)
			assert.Equal(t, tt.status, rr.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}
