package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/RoiCoDA/AbsoluteCinema/internal/service"
)

// AuthHandler serves phone login and profile registration.
type AuthHandler struct {
	Auth  *service.AuthService
	Users *service.UserService
}

type requestCodeReq struct {
	Phone string `json:"phone"`
}

// RequestCode handles POST /v1/auth/request-code. It always answers
// 200 on a well-formed phone so callers cannot probe which numbers
// already have accounts.
func (h *AuthHandler) RequestCode(c echo.Context) error {
	var req requestCodeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.Auth.RequestCode(c.Request().Context(), req.Phone); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "code sent"})
}

type verifyCodeReq struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// VerifyCode handles POST /v1/auth/verify. A correct code consumes
// itself, finds or creates the account and returns an access token.
func (h *AuthHandler) VerifyCode(c echo.Context) error {
	var req verifyCodeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	res, err := h.Auth.VerifyCode(c.Request().Context(), req.Phone, req.Code)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

type registerReq struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// Register handles POST /v1/auth/register. The caller must already be
// logged in; registration only claims a username and display name for
// the phone-created account.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	u, err := h.Users.Register(c.Request().Context(), currentUserID(c), req.Username, req.FullName)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": u})
}

// Me handles GET /v1/me and returns the caller's own record.
func (h *AuthHandler) Me(c echo.Context) error {
	u, err := h.Users.Get(c.Request().Context(), currentUserID(c))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": u})
}
