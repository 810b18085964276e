package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/watchlist/internal/logging"
	"github.com/dmitrijs2005/watchlist/internal/server/auth"
	"github.com/dmitrijs2005/watchlist/internal/server/config"
	"github.com/dmitrijs2005/watchlist/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/watchlist/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "test-secret"

func newTestRouter(t *testing.T) (*gin.Engine, repomanager.RepositoryManager) {
	t.Helper()
	cfg := &config.Config{
		DatabaseDSN:  repomanager.MemoryDSN,
		SecretKey:    testSecret,
		StoreTimeout: time.Second,
		AuthScheme:   "jwt",
	}
	return newRouterFromConfig(t, cfg)
}

// newRouterFromConfig wires the router the way the server does for cfg.
func newRouterFromConfig(t *testing.T, cfg *config.Config) (*gin.Engine, repomanager.RepositoryManager) {
	t.Helper()
	logger, err := logging.New(cfg.LogBackend, io.Discard)
	require.NoError(t, err)

	m, err := repomanager.Open(context.Background(), cfg.DatabaseDSN)
	require.NoError(t, err)

	return NewRouter(logger, Dependencies{
		Users:        services.NewUserService(m, cfg),
		Lists:        services.NewListService(m, cfg),
		Tokens:       auth.NewTokenIssuer([]byte(cfg.SecretKey), cfg.TokenValidityDuration),
		Store:        m,
		AuthScheme:   cfg.AuthScheme,
		StoreTimeout: cfg.StoreTimeout,
	}), m
}

func do(t *testing.T, h http.Handler, method, path string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func bearer(token string) http.Header {
	return withScheme("jwt", token)
}

func withScheme(scheme, token string) http.Header {
	return http.Header{"Authorization": []string{scheme + " " + token}}
}

func registerAndLogin(t *testing.T, h http.Handler, user, pw string) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/user/register", map[string]string{"userName": user, "password": pw}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/user/login", map[string]string{"userName": user, "password": pw}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[map[string]string](t, rec)["token"]
}
