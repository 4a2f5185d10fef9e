package v1

import (
	"net/http"
	"time"

	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// CookieConfig controls the session cookie written on every token response.
type CookieConfig struct {
	ExpireDays int
	Secure     bool
}

// tokenWriter sets the session cookie and returns the token in the body.
type tokenWriter struct {
	cookie CookieConfig
	now    func() time.Time
}

func (w tokenWriter) send(c *gin.Context, status int, message, token string) {
	w.setCookie(c, token)
	response.Success(c, status, message, gin.H{"token": token})
}

func (w tokenWriter) setCookie(c *gin.Context, token string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  w.now().Add(time.Duration(w.cookie.ExpireDays) * 24 * time.Hour),
		HttpOnly: true,
		Secure:   w.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (w tokenWriter) clear(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "none",
		Path:     "/",
		Expires:  w.now().Add(-time.Hour),
		HttpOnly: true,
		Secure:   w.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

type AuthHandler struct {
	kind   domain.AccountKind
	authUC domain.AuthUsecase
	tokens tokenWriter
}

// AuthRoutes are the middleware an auth handler is mounted with.
type AuthRoutes struct {
	Protect       gin.HandlerFunc
	LoginLimit    gin.HandlerFunc
	PasswordLimit gin.HandlerFunc
}

// NewAuthHandler mounts login and password routes on an account group
// (/users or /recruiters).
func NewAuthHandler(group *gin.RouterGroup, kind domain.AccountKind, routes AuthRoutes, authUC domain.AuthUsecase, cookie CookieConfig) {
	handler := &AuthHandler{
		kind:   kind,
		authUC: authUC,
		tokens: tokenWriter{cookie: cookie, now: time.Now},
	}

	group.POST("/login", routes.LoginLimit, handler.Login)
	group.POST("/forgotpassword", routes.PasswordLimit, handler.ForgotPassword)
	group.PUT("/resetpassword", routes.PasswordLimit, handler.ResetPassword)
	group.PUT("/updatepassword", routes.Protect, handler.UpdatePassword)
	group.GET("/logout", handler.Logout)
	group.GET("/me", routes.Protect, handler.Me)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,strong_password"`
}

type UpdatePasswordRequest struct {
	Password    string `json:"password" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,strong_password"`
}

// Login godoc
// @Summary      Log in
// @Description  Verify email and password, set the token cookie and return the token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Login Credentials"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Failure      429    {object}  response.Response
// @Router       /users/login [post]
// @Router       /recruiters/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	// An empty body falls through to the usecase's missing-field message.
	_ = c.ShouldBindJSON(&req)

	token, err := h.authUC.Login(c.Request.Context(), domain.LoginRequest{
		Email:     req.Email,
		Password:  req.Password,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: response.RequestID(c),
	})
	if err != nil {
		c.Error(err)
		return
	}

	h.tokens.send(c, http.StatusOK, "Login successful", token)
}

// ForgotPassword godoc
// @Summary      Request a password reset token
// @Description  Stores a hashed reset token valid for ten minutes and returns the plain token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      ForgotPasswordRequest  true  "Account email"
// @Success      200   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      500   {object}  response.Response
// @Router       /users/forgotpassword [post]
// @Router       /recruiters/forgotpassword [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	_ = c.ShouldBindJSON(&req)

	resetToken, err := h.authUC.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Password has been reset with token: "+resetToken, gin.H{"resetToken": resetToken})
}

// ResetPassword godoc
// @Summary      Reset password with a reset token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        resetToken  query     string                true  "Plain reset token"
// @Param        body        body      ResetPasswordRequest  true  "New password"
// @Success      200         {object}  response.Response
// @Failure      400         {object}  response.Response
// @Router       /users/resetpassword [put]
// @Router       /recruiters/resetpassword [put]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", validation.FormatValidationErrors(err))
		return
	}

	token, err := h.authUC.ResetPassword(c.Request.Context(), c.Query("resetToken"), req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	h.tokens.send(c, http.StatusOK, "Password reset successful", token)
}

// UpdatePassword godoc
// @Summary      Change password
// @Description  Re-verifies the current password before storing the new one
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      UpdatePasswordRequest  true  "Current and new password"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Router       /users/updatepassword [put]
// @Router       /recruiters/updatepassword [put]
// @Security     BearerAuth
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", validation.FormatValidationErrors(err))
		return
	}

	token, err := h.authUC.UpdatePassword(c.Request.Context(), middleware.PrincipalFrom(c), req.Password, req.NewPassword)
	if err != nil {
		c.Error(err)
		return
	}

	h.tokens.send(c, http.StatusOK, "Password updated", token)
}

// Logout godoc
// @Summary      Log out
// @Description  Overwrites the token cookie with an expired placeholder
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /users/logout [get]
// @Router       /recruiters/logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.tokens.clear(c)
	response.Success(c, http.StatusOK, "Successfully logged out!", nil)
}

// Me godoc
// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /users/me [get]
// @Router       /recruiters/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	if p.Kind != h.kind {
		c.Error(apperror.Unauthorized("Not authorized to access this route"))
		return
	}

	acc, err := h.authUC.CurrentAccount(c.Request.Context(), p.ID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Current account", acc)
}
