package handlers

import (
	"errors"
	"net/http"

	"medibook/middleware"
	"medibook/services/auth"
	"medibook/services/theme"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	Service *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{Service: svc}
}

// writeAuthError maps auth service errors to responses.
func writeAuthError(c *gin.Context, err error) {
	var ve *auth.ValidationError
	var ae *auth.AuthError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "field": ve.Field})
	case errors.As(err, &ae):
		code := http.StatusUnauthorized
		if ae.Conflict {
			code = http.StatusConflict
		}
		c.JSON(code, gin.H{"error": auth.FriendlyMessage(err)})
	case errors.Is(err, auth.ErrInvalidState), errors.Is(err, auth.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		getLogger(c).Error("auth request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again."})
	}
}

// LoginSelectionHandler handles GET /api/auth/login-selection.
func (h *AuthHandler) LoginSelectionHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"options": theme.All()})
}

// SignUpHandler handles POST /api/auth/signup.
func (h *AuthHandler) SignUpHandler(c *gin.Context) {
	var input auth.SignUpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	sess, err := h.Service.SignUp(c.Request.Context(), input)
	if err != nil {
		writeAuthError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

// SignInHandler handles POST /api/auth/signin.
func (h *AuthHandler) SignInHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}
	sess, err := h.Service.SignIn(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		writeAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// SignInPhoneHandler handles POST /api/auth/signin/phone.
func (h *AuthHandler) SignInPhoneHandler(c *gin.Context) {
	var input struct {
		Phone    string `json:"phone" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number and password are required"})
		return
	}
	sess, err := h.Service.SignInWithPhone(c.Request.Context(), input.Phone, input.Password)
	if err != nil {
		writeAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// GoogleStartHandler handles GET /api/auth/google?type=<role>.
func (h *AuthHandler) GoogleStartHandler(c *gin.Context) {
	url, state, err := h.Service.BeginGoogleSignIn(c.Query("type"))
	if err != nil {
		writeAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url, "state": state})
}

// GoogleCallbackHandler handles GET /api/auth/google/callback.
func (h *AuthHandler) GoogleCallbackHandler(c *gin.Context) {
	state, idToken := c.Query("state"), c.Query("id_token")
	if state == "" || idToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "state and id_token are required"})
		return
	}
	sess, err := h.Service.CompleteGoogleSignIn(c.Request.Context(), state, idToken)
	if err != nil {
		writeAuthError(c, err)
		return
	}
	variant, _ := theme.For(sess.User.Role)
	c.JSON(http.StatusOK, gin.H{"session": sess, "redirect": variant.HomePath})
}

// SignOutHandler handles POST /api/auth/signout.
func (h *AuthHandler) SignOutHandler(c *gin.Context) {
	if err := h.Service.SignOut(c.Request.Context(), c.GetString(middleware.ContextToken)); err != nil {
		writeAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// MeHandler handles GET /api/auth/me.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	user, profile, err := h.Service.Current(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		writeAuthError(c, err)
		return
	}
	variant, err := theme.For(user.Role)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"user": user, "profile": profile})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "profile": profile, "theme": variant})
}
