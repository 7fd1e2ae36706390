package handlers

import (
	"net/http"

	"salonhub/models"
	"salonhub/services/settings"

	"github.com/gin-gonic/gin"
)

// SettingsHandler serves branding, notification switches and payment methods.
type SettingsHandler struct {
	Settings settings.SettingsService
}

func NewSettingsHandler(svc settings.SettingsService) *SettingsHandler {
	return &SettingsHandler{Settings: svc}
}

func (h *SettingsHandler) GetBranding(c *gin.Context) {
	b, err := h.Settings.GetBranding(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *SettingsHandler) SaveBranding(c *gin.Context) {
	var b models.Branding
	if err := c.ShouldBindJSON(&b); err != nil {
		badRequest(c, err)
		return
	}
	saved, err := h.Settings.SaveBranding(c.Request.Context(), b)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *SettingsHandler) GetNotifications(c *gin.Context) {
	n, err := h.Settings.GetNotificationSettings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *SettingsHandler) SaveNotifications(c *gin.Context) {
	var n models.NotificationSettings
	if err := c.ShouldBindJSON(&n); err != nil {
		badRequest(c, err)
		return
	}
	saved, err := h.Settings.SaveNotificationSettings(c.Request.Context(), n)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// Payment method secrets are returned masked by the service.

func (h *SettingsHandler) ListPaymentMethods(c *gin.Context) {
	methods, err := h.Settings.ListPaymentMethods(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if methods == nil {
		methods = []models.PaymentMethod{}
	}
	c.JSON(http.StatusOK, methods)
}

func (h *SettingsHandler) CreatePaymentMethod(c *gin.Context) {
	var pm models.PaymentMethod
	if err := c.ShouldBindJSON(&pm); err != nil {
		badRequest(c, err)
		return
	}
	created, err := h.Settings.CreatePaymentMethod(c.Request.Context(), pm)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *SettingsHandler) UpdatePaymentMethod(c *gin.Context) {
	var pm models.PaymentMethod
	if err := c.ShouldBindJSON(&pm); err != nil {
		badRequest(c, err)
		return
	}
	updated, err := h.Settings.UpdatePaymentMethod(c.Request.Context(), c.Param("id"), pm)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *SettingsHandler) DeletePaymentMethod(c *gin.Context) {
	if err := h.Settings.DeletePaymentMethod(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment method deleted"})
}
