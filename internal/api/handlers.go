package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/belindamak/japan-trip-chat/internal/auth"
	"github.com/belindamak/japan-trip-chat/internal/models"
)

// chatRequestTimeout bounds one full chat flow including search augmentation
// and the completion call.
const chatRequestTimeout = 3 * time.Minute

// Planner runs the chat and translate flows against the hosted services.
type Planner interface {
	Chat(ctx context.Context, message string, history []models.ChatTurn) (string, error)
	Translate(ctx context.Context, text string) (string, error)
}

// Handler wires HTTP routes to the planner service.
type Handler struct {
	planner Planner
	auth    *auth.Service
	limiter *rateLimiter
}

// NewHandler constructs a Handler instance.
func NewHandler(planner Planner, authService *auth.Service, rateLimit int, rateWindow time.Duration) *Handler {
	return &Handler{
		planner: planner,
		auth:    authService,
		limiter: newRateLimiter(rateLimit, rateWindow),
	}
}

// RegisterRoutes attaches all HTTP routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(RequestLogger())
	api := router.Group("/api")
	api.GET("/healthz", h.health)
	api.POST("/login", h.login)

	authed := api.Group("")
	authed.Use(h.auth.Middleware(), h.auth.CSRFMiddleware())
	authed.POST("/logout", h.logout)
	authed.POST("/chat", h.rateLimited(), h.chat)
	authed.POST("/translate", h.rateLimited(), h.translate)
}

func (h *Handler) rateLimited() gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := auth.UsernameFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required", "success": false})
			return
		}
		if !h.limiter.Allow(username) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded, please retry later", "success": false})
			return
		}
		c.Next()
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "success": false})
		return
	}
	if err := h.auth.Authenticate(req.Username, req.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "success": false})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "success": false})
		return
	}
	authToken, err := h.auth.IssueToken(c.Request.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "issue token failed", "success": false})
		return
	}
	csrfToken, err := h.auth.NewCSRFToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "issue token failed", "success": false})
		return
	}
	h.setAuthCookies(c, authToken, csrfToken)
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"username":   strings.TrimSpace(req.Username),
		"auth_token": authToken,
	})
}

func (h *Handler) logout(c *gin.Context) {
	if authToken, ok := auth.AuthTokenFromContext(c); ok {
		_ = h.auth.RevokeToken(c.Request.Context(), authToken)
	}
	h.clearAuthCookies(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type chatRequest struct {
	Message string            `json:"message"`
	History []models.ChatTurn `json:"history"`
}

func (h *Handler) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "success": false})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required", "success": false})
		return
	}
	for _, turn := range req.History {
		if !turn.Role.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid history role", "success": false})
			return
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), chatRequestTimeout)
	defer cancel()
	answer, err := h.planner.Chat(ctx, req.Message, req.History)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "success": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": answer, "success": true})
}

type translateRequest struct {
	Text string `json:"text"`
}

func (h *Handler) translate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "success": false})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required", "success": false})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), chatRequestTimeout)
	defer cancel()
	translation, err := h.planner.Translate(ctx, req.Text)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "success": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"translation": translation, "success": true})
}

func (h *Handler) setAuthCookies(c *gin.Context, authToken, csrfToken string) {
	ttl := int(h.auth.TokenTTL().Seconds())
	if ttl <= 0 {
		ttl = 3600
	}
	secure := gin.Mode() == gin.ReleaseMode
	setCookie(c, &http.Cookie{
		Name:     h.auth.AuthCookieName(),
		Value:    authToken,
		MaxAge:   ttl,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	setCookie(c, &http.Cookie{
		Name:     h.auth.CSRFCookieName(),
		Value:    csrfToken,
		MaxAge:   ttl,
		Path:     "/",
		Secure:   secure,
		HttpOnly: false,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *Handler) clearAuthCookies(c *gin.Context) {
	for _, name := range []string{h.auth.AuthCookieName(), h.auth.CSRFCookieName()} {
		setCookie(c, &http.Cookie{
			Name:     name,
			Value:    "",
			MaxAge:   -1,
			Path:     "/",
			Secure:   gin.Mode() == gin.ReleaseMode,
			HttpOnly: name == h.auth.AuthCookieName(),
			SameSite: http.SameSiteStrictMode,
		})
	}
}

func setCookie(c *gin.Context, ck *http.Cookie) {
	if ck == nil {
		return
	}
	http.SetCookie(c.Writer, ck)
}
