package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autofix/internal/api/auth"
	"github.com/autofix/internal/config"
	"github.com/autofix/pkg/models"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Port = 8888
	cfg.Server.BodyLimit = "1M"
	cfg.Engine.MaxFiles = 10
	cfg.Engine.MaxErrors = 10
	return cfg
}

func doRequest(t *testing.T, srv *Server, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestAutofixEndpoint_EndToEnd(t *testing.T) {
	srv := NewServer(testConfig(), zerolog.Nop())
	body := `{"files":[{"path":"Main.java","content":"public class Main { void f(){} "}],"errors":["Main.java:1: error: '}' expected"],"projectName":"demo"}`

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/autofix", body, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got models.FixResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	want := models.FixResponse{
		Success:     true,
		FixedFiles:  []models.SourceFile{{Path: "Main.java", Content: "public class Main { void f(){} }\n"}},
		Changes:     []string{"Added 1 missing closing brace(s)"},
		Suggestions: []string{},
		Message:     "Applied 1 fix(es). Attempting rebuild…",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected response (-want +got):\n%s", diff)
	}
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestAutofixEndpoint_EmptyListsAreArrays(t *testing.T) {
	srv := NewServer(testConfig(), zerolog.Nop())

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/autofix", `{"files":[],"errors":[]}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.JSONEq(t, `{
		"success": true,
		"fixedFiles": [],
		"changes": [],
		"suggestions": [],
		"message": "No automatic fixes available. Please review errors manually."
	}`, rec.Body.String())
}

func TestAutofixEndpoint_MalformedRequests(t *testing.T) {
	srv := NewServer(testConfig(), zerolog.Nop())

	tooMany := `{"files":[],"errors":[` + strings.TrimSuffix(strings.Repeat(`"x",`, 11), ",") + `]}`

	cases := map[string]string{
		"not json":       `{"files":`,
		"missing files":  `{"errors":["x"]}`,
		"missing errors": `{"files":[{"path":"A.java","content":""}]}`,
		"empty path":     `{"files":[{"path":" ","content":""}],"errors":[]}`,
		"too many":       tooMany,
		"empty body":     ``,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodPost, "/api/v1/autofix", body, nil)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

			var got models.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.False(t, got.Success)
			assert.NotEmpty(t, got.Error)
			assert.Equal(t, "Invalid autofix request.", got.Message)
		})
	}
}

func TestAutofixEndpoint_RequiresTokenWhenConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.JWTSecret = "test-secret"
	srv := NewServer(cfg, zerolog.Nop())
	body := `{"files":[],"errors":[]}`

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/autofix", body, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)

	token, err := auth.NewTokenService("test-secret", "").IssueToken("tester", time.Minute)
	require.NoError(t, err)
	rec = doRequest(t, srv, http.MethodPost, "/api/v1/autofix", body, map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, rec.Code)

	// health stays public
	rec = doRequest(t, srv, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAutofixEndpoint_RateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.RequestsPerSecond = 1.0 / 3600
	cfg.RateLimit.Burst = 1
	srv := NewServer(cfg, zerolog.Nop())
	body := `{"files":[],"errors":[]}`

	assert.Equal(t, http.StatusOK, doRequest(t, srv, http.MethodPost, "/api/v1/autofix", body, nil).Code)

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/autofix", body, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "Too many requests")
}

func TestSymbolsEndpoint(t *testing.T) {
	srv := NewServer(testConfig(), zerolog.Nop())

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/autofix/symbols", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []models.ImportEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	assert.Contains(t, entries, models.ImportEntry{Symbol: "Player", Statement: "import org.bukkit.entity.Player;"})
}

func TestPanicBecomesErrorEnvelope(t *testing.T) {
	srv := NewServer(testConfig(), zerolog.Nop())
	srv.echo.GET("/boom", func(c echo.Context) error {
		panic("kaboom")
	})

	rec := doRequest(t, srv, http.MethodGet, "/boom", "", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var got models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.False(t, got.Success)
	assert.Equal(t, "internal server error", got.Error)
	assert.Equal(t, "Autofix failed. Please review errors manually.", got.Message)
}
