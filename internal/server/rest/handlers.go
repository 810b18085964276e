package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/watchlist/internal/common"
	"github.com/dmitrijs2005/watchlist/internal/logging"
	"github.com/dmitrijs2005/watchlist/internal/server/auth"
	"github.com/dmitrijs2005/watchlist/internal/server/models"
	"github.com/gin-gonic/gin"
)

type handler struct {
	logger logging.Logger
	deps   Dependencies
}

// RegisterRequest is the body of POST /api/user/register. Password2 is an
// optional confirmation that must match Password when sent.
type RegisterRequest struct {
	UserName  string  `json:"userName"`
	Password  string  `json:"password"`
	Password2 *string `json:"password2"`
}

// LoginRequest is the body of POST /api/user/login.
type LoginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

func (h *handler) register(c *gin.Context) {
	ctx := c.Request.Context()

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "invalid request body"})
		return
	}
	if req.Password2 != nil && *req.Password2 != req.Password {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Passwords do not match"})
		return
	}

	user, err := h.deps.Users.Register(ctx, req.UserName, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "User Name already taken"})
		case errors.Is(err, common.ErrorValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": validationMessage(err)})
		default:
			h.logger.Error(ctx, "registration failed", "error", err, requestIDKey, c.GetString(requestIDKey))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "There was an error creating the user"})
		}
		return
	}

	h.logger.Info(ctx, "Registered", "username", user.UserName, "user_id", user.ID)
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("User %s successfully registered", user.UserName)})
}

func (h *handler) login(c *gin.Context) {
	ctx := c.Request.Context()

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "invalid request body"})
		return
	}

	id, err := h.deps.Users.Login(ctx, req.UserName, req.Password)
	if err != nil {
		if !errors.Is(err, common.ErrInvalidCredentials) {
			h.logger.Error(ctx, "login failed", "error", err, requestIDKey, c.GetString(requestIDKey))
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Incorrect user name or password"})
		return
	}

	token, err := h.deps.Tokens.Issue(id)
	if err != nil {
		h.logger.Error(ctx, "token issue failed", "error", err, requestIDKey, c.GetString(requestIDKey))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "unable to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "login successful", "token": token})
}

func (h *handler) getList(list models.ListKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.identity(c)
		if !ok {
			return
		}
		items, err := h.deps.Lists.Get(c.Request.Context(), id.UserID, list)
		h.renderList(c, items, err)
	}
}

func (h *handler) addItem(list models.ListKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.identity(c)
		if !ok {
			return
		}
		items, err := h.deps.Lists.Add(c.Request.Context(), id.UserID, list, c.Param("id"))
		h.renderList(c, items, err)
	}
}

func (h *handler) removeItem(list models.ListKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.identity(c)
		if !ok {
			return
		}
		items, err := h.deps.Lists.Remove(c.Request.Context(), id.UserID, list, c.Param("id"))
		h.renderList(c, items, err)
	}
}

func (h *handler) health(c *gin.Context) {
	ctx := c.Request.Context()
	if h.deps.StoreTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.deps.StoreTimeout)
		defer cancel()
	}
	if err := h.deps.Store.Ping(ctx); err != nil {
		h.logger.Error(c.Request.Context(), "store ping failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) identity(c *gin.Context) (auth.Identity, bool) {
	id, ok := auth.IdentityFromContext(c.Request.Context())
	if !ok {
		abortUnauthorized(c)
	}
	return id, ok
}

func (h *handler) renderList(c *gin.Context, items []string, err error) {
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": validationMessage(err)})
			return
		}
		h.logger.Error(c.Request.Context(), "list operation failed", "error", err, requestIDKey, c.GetString(requestIDKey))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Unable to complete the operation"})
		return
	}
	if items == nil {
		items = []string{}
	}
	c.JSON(http.StatusOK, items)
}

// validationMessage strips the sentinel prefix from a wrapped validation error.
func validationMessage(err error) string {
	msg, _ := strings.CutPrefix(err.Error(), common.ErrorValidation.Error()+": ")
	return msg
}
