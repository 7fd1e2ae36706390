package handlers

import (
	"net/http"

	"salonhub/middleware"
	"salonhub/models"
	"salonhub/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler serves sign-up, session exchange and user administration.
type UserHandler struct {
	Users user.UserService
}

func NewUserHandler(svc user.UserService) *UserHandler {
	return &UserHandler{Users: svc}
}

// Register handles POST /api/auth/register.
func (h *UserHandler) Register(c *gin.Context) {
	logger := getLogger(c)

	var req models.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Debug("Invalid registration request", zap.Error(err))
		badRequest(c, err)
		return
	}
	if err := user.VerifyPasswordComplexity(req.Password); err != nil {
		badRequest(c, err)
		return
	}

	session, err := h.Users.Register(c.Request.Context(), req)
	if err != nil {
		logger.Warn("Registration failed", zap.String("email", req.Email), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// ExchangeSession handles POST /api/auth/session with a Firebase ID token.
func (h *UserHandler) ExchangeSession(c *gin.Context) {
	var req struct {
		IDToken string `json:"idToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	session, err := h.Users.ExchangeSession(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// RevokeSession handles DELETE /api/auth/session.
func (h *UserHandler) RevokeSession(c *gin.Context) {
	if err := h.Users.RevokeSession(c.Request.Context(), c.GetString(middleware.CtxToken)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session revoked"})
}

func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.Users.GetUser(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// SetFCMToken registers the caller's push token.
func (h *UserHandler) SetFCMToken(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.Users.SetFCMToken(c.Request.Context(), c.GetString(middleware.CtxUserID), req.Token); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Push token saved"})
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Users.ListUsers(c.Request.Context(), c.Query("role"))
	if err != nil {
		respondError(c, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Users.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) SetRole(c *gin.Context) {
	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.Users.SetRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("role changed",
		zap.String("userID", u.ID), zap.String("role", u.Role),
		zap.String("by", c.GetString(middleware.CtxUserID)))
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == c.GetString(middleware.CtxUserID) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "You cannot delete your own account"})
		return
	}
	if err := h.Users.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
