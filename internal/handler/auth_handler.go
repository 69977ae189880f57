package handler

import (
	"time"

	"quizly/internal/config"
	"quizly/internal/domain"
	"quizly/internal/dto"
	"quizly/internal/middleware"
	"quizly/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles registration, login, logout and token refresh.
type AuthHandler struct {
	service   service.AuthService
	appConfig *config.Config
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(service service.AuthService, appConfig *config.Config) *AuthHandler {
	return &AuthHandler{service: service, appConfig: appConfig}
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration payload"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /register/ [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	user, err := h.service.Register(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary Log in with username and password
// @Description Sets access_token and refresh_token HTTP-only cookies
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /login/ [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return domain.NewInvalidInputError("Username and password are required")
	}

	accessToken, refreshToken, user, err := h.service.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	h.setAuthCookie(c, middleware.AccessTokenCookie, accessToken, h.appConfig.JWT.AccessTokenTTL)
	h.setAuthCookie(c, middleware.RefreshTokenCookie, refreshToken, h.appConfig.JWT.RefreshTokenTTL)

	return c.JSON(dto.LoginResponse{
		Detail: "Login successful",
		User:   *user,
	})
}

// Logout godoc
// @Summary Log out
// @Description Blacklists the refresh token and clears the auth cookies
// @Tags auth
// @Produce json
// @Success 200 {object} dto.DetailResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /logout/ [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if refreshToken := c.Cookies(middleware.RefreshTokenCookie); refreshToken != "" {
		if err := h.service.Logout(c.Context(), refreshToken); err != nil {
			return err
		}
	}

	h.clearAuthCookie(c, middleware.AccessTokenCookie)
	h.clearAuthCookie(c, middleware.RefreshTokenCookie)

	return c.JSON(dto.DetailResponse{Detail: "Logged out"})
}

// RefreshToken godoc
// @Summary Refresh the access token
// @Description Reads the refresh_token cookie and issues a new access_token cookie
// @Tags auth
// @Produce json
// @Success 200 {object} dto.DetailResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /token/refresh/ [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	refreshToken := c.Cookies(middleware.RefreshTokenCookie)
	if refreshToken == "" {
		return domain.NewUnauthorizedError("Refresh token cookie is missing")
	}

	accessToken, err := h.service.Refresh(c.Context(), refreshToken)
	if err != nil {
		return err
	}

	h.setAuthCookie(c, middleware.AccessTokenCookie, accessToken, h.appConfig.JWT.AccessTokenTTL)
	return c.JSON(dto.DetailResponse{Detail: "Access token refreshed"})
}

func (h *AuthHandler) setAuthCookie(c *fiber.Ctx, name, value string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   h.appConfig.Logger.Env == "production",
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

func (h *AuthHandler) clearAuthCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}
