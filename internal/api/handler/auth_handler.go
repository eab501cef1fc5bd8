package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/globetrotter/trip-planner-api/internal/api/metrics"
	"github.com/globetrotter/trip-planner-api/internal/api/middleware"
	"github.com/globetrotter/trip-planner-api/internal/core/domain"
	"github.com/globetrotter/trip-planner-api/internal/core/ports"
)

const refreshCookieName = "refresh_token"

// AuthHandler handles the credential and session lifecycle endpoints.
type AuthHandler struct {
	service    ports.AuthService
	env        string
	refreshTTL time.Duration
}

func NewAuthHandler(service ports.AuthService, env string, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{service: service, env: env, refreshTTL: refreshTTL}
}

// Signup registers a new account and triggers a verification email.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Registration details"
// @Success      201   {object}  signupResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Country:  req.Country,
		City:     req.City,
	})
	if err != nil {
		metrics.SignupsTotal.WithLabelValues(signupResult(err)).Inc()
		return err
	}

	metrics.SignupsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, signupResponse{User: user})
}

// VerifyEmail consumes a one-time verification token.
//
// @Summary      Verify an email address
// @Tags         auth
// @Produce      json
// @Param        token  query     string  true  "Verification token"
// @Success      200    {object}  messageResponse
// @Failure      400    {object}  errorResponse
// @Router       /auth/verify-email [get]
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	if err := h.service.VerifyEmail(c.Request().Context(), c.QueryParam("token")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "email verified"})
}

// Login authenticates credentials and issues an access+refresh token pair.
// The refresh token travels only in an HTTP-only cookie; the access token is
// returned in the body for the client to hold in memory.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	c.SetCookie(h.refreshCookie(result.RefreshToken, h.refreshTTL))
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		User:        result.User,
		AccessToken: result.AccessToken,
	})
}

// Refresh mints a new access token from the refresh cookie. The refresh
// token itself is not rotated.
//
// @Summary      Renew the access token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  refreshResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		metrics.TokenRefreshesTotal.WithLabelValues("rejected").Inc()
		return domain.ErrInvalidSession
	}

	accessToken, err := h.service.Refresh(c.Request().Context(), cookie.Value)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("rejected").Inc()
		return err
	}

	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, refreshResponse{AccessToken: accessToken})
}

// Logout revokes the caller's session and clears the refresh cookie.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	err = h.service.Logout(c.Request().Context(), ports.LogoutInput{
		UserID:    user.ID,
		JTI:       middleware.TokenJTI(c),
		ExpiresAt: middleware.TokenExpiry(c),
	})
	if err != nil {
		return err
	}

	c.SetCookie(h.clearedRefreshCookie())
	return c.NoContent(http.StatusNoContent)
}

// ForgotPassword starts the reset flow. The acknowledgement is identical
// whether or not the address belongs to an account.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      202   {object}  messageResponse
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("requested").Inc()
	return c.JSON(http.StatusAccepted, messageResponse{
		Message: "if the account exists, a reset email has been sent",
	})
}

// ResetPassword consumes a reset token and installs a new password. Every
// existing session for the account is revoked.
//
// @Summary      Complete a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Token and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.ResetPassword(c.Request().Context(), req.Token, req.Password); err != nil {
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("completed").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "password updated"})
}

// refreshCookie builds the session cookie: HTTP-only always, Secure and
// SameSite=None in production (the SPA is served from another origin there),
// Lax elsewhere so local development works without TLS.
func (h *AuthHandler) refreshCookie(value string, ttl time.Duration) *http.Cookie {
	secure := h.env == "production"
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     refreshCookieName,
		Value:    value,
		Path:     "/auth",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	}
}

func (h *AuthHandler) clearedRefreshCookie() *http.Cookie {
	cookie := h.refreshCookie("", 0)
	cookie.MaxAge = -1
	return cookie
}

func signupResult(err error) string {
	if errors.Is(err, domain.ErrEmailTaken) {
		return "conflict"
	}
	return "error"
}

func loginResult(err error) string {
	if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrEmailNotVerified) {
		return "unauthorized"
	}
	return "error"
}
