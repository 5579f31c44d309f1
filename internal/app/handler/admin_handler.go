package handler

import (
	"net/http"
	"strings"

	"shopfront/internal/app/dto"
	"shopfront/internal/app/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func (h *Handler) GetLogin(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "login.html", nil)
}

// PostLogin starts an admin session when the submitted pair matches the configured account.
func (h *Handler) PostLogin(ctx *gin.Context) {
	var form dto.LoginForm
	if err := ctx.ShouldBind(&form); err != nil {
		ctx.HTML(http.StatusOK, "login.html", gin.H{"error": "Invalid credentials"})
		return
	}

	if !h.Auth.CheckCredentials(strings.TrimSpace(form.Username), strings.TrimSpace(form.Password)) {
		logrus.WithField("ip", ctx.ClientIP()).Warn("admin login failed")
		ctx.HTML(http.StatusOK, "login.html", gin.H{"error": "Invalid credentials"})
		return
	}

	if err := h.Auth.StartSession(ctx); err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	logrus.Info("admin logged in")
	ctx.Redirect(http.StatusFound, panelPath)
}

func (h *Handler) Logout(ctx *gin.Context) {
	h.Auth.EndSession(ctx)
	ctx.Redirect(http.StatusFound, middleware.LoginPath)
}

// GetPanel renders the whole catalog with edit forms plus the shop status controls.
func (h *Handler) GetPanel(ctx *gin.Context) {
	snapshot, err := h.Repository.GetCatalogSnapshot(ctx.Request.Context())
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	status, err := h.Repository.GetShopStatus(ctx.Request.Context())
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.HTML(http.StatusOK, "admin.html", gin.H{
		"catalog": snapshot,
		"status":  status,
		"admin":   middleware.IsAdmin(ctx),
	})
}

func (h *Handler) ToggleShopStatus(ctx *gin.Context) {
	status, err := h.Repository.ToggleShopStatus(ctx.Request.Context())
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	h.Metrics.Mutation("shop_status", "toggle")
	logrus.WithField("open", status.IsOpen).Info("shop status toggled")
	redirectPanel(ctx, "", 0)
}

// UpdateClosedMessage ignores an empty message.
func (h *Handler) UpdateClosedMessage(ctx *gin.Context) {
	var form dto.ClosedMessageForm
	_ = ctx.ShouldBind(&form)

	message := strings.TrimSpace(form.Message)
	if message != "" {
		if err := h.Repository.UpdateClosedMessage(ctx.Request.Context(), message); err != nil {
			h.errorHandler(ctx, http.StatusInternalServerError, err)
			return
		}
		h.Metrics.Mutation("shop_status", "message")
	}
	redirectPanel(ctx, "", 0)
}
