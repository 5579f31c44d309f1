package handler

import (
	"net/http"

	"shopfront/internal/app/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func (h *Handler) errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{
		Status:  "fail",
		Message: message,
	})
}

func (h *Handler) successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	response := dto.SuccessResponse{
		Status:  "success",
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(statusCode, response)
}

// GetCatalog возвращает полный снимок каталога
// @Summary Снимок каталога
// @Tags Catalog
// @Produce json
// @Success 200 {object} dto.CatalogSnapshot
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/catalog [get]
func (h *Handler) GetCatalog(c *gin.Context) {
	snapshot, err := h.Repository.GetCatalogSnapshot(c.Request.Context())
	if err != nil {
		logrus.Error("Error getting catalog: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "failed to load catalog")
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// GetShopStatus сообщает, открыт ли магазин
// @Summary Статус магазина
// @Tags Catalog
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Router /api/shop-status [get]
func (h *Handler) GetShopStatus(c *gin.Context) {
	status, err := h.Repository.GetShopStatus(c.Request.Context())
	if err != nil {
		logrus.Error("Error getting shop status: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "failed to load shop status")
		return
	}

	h.successResponse(c, http.StatusOK, "", gin.H{
		"is_open": status.IsOpen,
		"message": status.Message,
	})
}

// Ping проверяет работоспособность сервиса и базы
// @Summary Проверка работоспособности
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *Handler) Ping(c *gin.Context) {
	if err := h.Repository.Ping(); err != nil {
		logrus.Error("database ping failed: ", err)
		h.errorResponse(c, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
