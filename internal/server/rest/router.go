package rest

import (
	"context"
	"time"

	"github.com/dmitrijs2005/watchlist/internal/logging"
	"github.com/dmitrijs2005/watchlist/internal/server/auth"
	"github.com/dmitrijs2005/watchlist/internal/server/models"
	"github.com/gin-gonic/gin"
)

// Authenticator registers users and checks credentials.
type Authenticator interface {
	Register(ctx context.Context, userName, secret string) (*models.User, error)
	Login(ctx context.Context, userName, secret string) (auth.Identity, error)
}

// ListManager maintains per-user lists.
type ListManager interface {
	Add(ctx context.Context, userID string, list models.ListKind, itemID string) ([]string, error)
	Remove(ctx context.Context, userID string, list models.ListKind, itemID string) ([]string, error)
	Get(ctx context.Context, userID string, list models.ListKind) ([]string, error)
}

// Tokens issues and verifies session tokens.
type Tokens interface {
	Issue(id auth.Identity) (string, error)
	Verify(token string) (auth.Identity, error)
}

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies are the collaborators the router dispatches to.
type Dependencies struct {
	Users      Authenticator
	Lists      ListManager
	Tokens     Tokens
	Store      Pinger
	AuthScheme string

	// StoreTimeout bounds the health check ping; zero means no bound.
	StoreTimeout time.Duration
}

// NewRouter builds the gin engine with every route of the API.
func NewRouter(logger logging.Logger, deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestID(), accessLog(logger))

	h := &handler{logger: logger, deps: deps}

	api := router.Group("/api")
	api.GET("/health", h.health)

	user := api.Group("/user")
	user.POST("/register", h.register)
	user.POST("/login", h.login)

	protected := user.Group("")
	protected.Use(accessGate(deps.Tokens, deps.AuthScheme, logger))
	for _, list := range []models.ListKind{models.ListFavourites, models.ListHistory} {
		path := "/" + string(list)
		protected.GET(path, h.getList(list))
		protected.PUT(path+"/:id", h.addItem(list))
		protected.DELETE(path+"/:id", h.removeItem(list))
	}

	return router
}
