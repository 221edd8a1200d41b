package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler serves the login endpoint. Credentials are checked against the
// configured back-office account; a successful login returns a bearer token
// carrying the admin role.
type Handler struct {
	cfg       Config
	adminUser string
	adminPass string
}

func NewHandler(cfg Config, adminUser, adminPass string) *Handler {
	return &Handler{cfg: cfg, adminUser: adminUser, adminPass: adminPass}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/auth/login", h.Login)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if h.adminPass == "" || !CredentialsMatch(req.Username, req.Password, h.adminUser, h.adminPass) {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	token, err := Issue(h.cfg, req.Username, []string{"admin"})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "issue token")
	}
	return c.JSON(http.StatusOK, loginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(h.cfg.TokenTTL),
	})
}
