package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"shopfront/internal/app/metrics"
	"shopfront/internal/app/middleware"
	"shopfront/internal/app/order"
	"shopfront/internal/app/repository"
	"shopfront/internal/app/storage"
	"shopfront/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const panelPath = "/admin/panel"

type Handler struct {
	Repository *repository.Repository
	Blobs      storage.BlobStore
	Auth       *middleware.AuthMiddleware
	Composer   *order.Composer
	Metrics    *metrics.Metrics
}

func NewHandler(r *repository.Repository, blobs storage.BlobStore, auth *middleware.AuthMiddleware,
	composer *order.Composer, m *metrics.Metrics) *Handler {
	return &Handler{
		Repository: r,
		Blobs:      blobs,
		Auth:       auth,
		Composer:   composer,
		Metrics:    m,
	}
}

// Регистрация шаблонов и статических файлов
func (h *Handler) RegisterStatic(router *gin.Engine) {
	router.SetHTMLTemplate(web.Templates())
	router.StaticFS("/static", web.Static())
}

// Регистрация маршрутов
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	// Витрина
	router.GET("/", h.GetIndex)
	router.POST("/submit_order", h.SubmitOrder)
	router.GET("/menu", h.staticPage("menu.html"))
	router.GET("/terms", h.staticPage("terms.html"))
	router.GET("/about", h.staticPage("about.html"))
	router.GET("/images/:folder/:name", h.GetImage)

	// Вход администратора
	router.GET("/admin", h.GetLogin)
	router.POST("/admin", h.PostLogin)
	router.GET("/admin/logout", h.Logout)

	admin := router.Group("/admin")
	admin.Use(h.Auth.WithAdminCheck())
	{
		admin.GET("/panel", h.GetPanel)

		admin.POST("/add_category", h.AddCategory)
		admin.POST("/update_category/:category_id", h.UpdateCategory)
		admin.POST("/delete_category/:category_id", h.DeleteCategory)

		admin.POST("/add_subcategory/:category_id", h.AddSubcategory)
		admin.POST("/update_subcategory/:category_id/:subcategory_id", h.UpdateSubcategory)
		admin.POST("/delete_subcategory/:category_id/:subcategory_id", h.DeleteSubcategory)

		admin.POST("/add_service/:category_id/:subcategory_id", h.AddService)
		admin.POST("/update_service/:category_id/:subcategory_id/:service_id", h.UpdateService)
		admin.POST("/delete_service/:category_id/:subcategory_id/:service_id", h.DeleteService)
		admin.POST("/upload_service_image/:service_id", h.UploadServiceImage)

		admin.POST("/add_variant/:service_id", h.AddVariant)
		admin.POST("/update_variant/:variant_id", h.UpdateVariant)
		admin.POST("/delete_variant/:variant_id", h.DeleteVariant)

		admin.POST("/toggle_shop_status", h.ToggleShopStatus)
		admin.POST("/update_closed_message", h.UpdateClosedMessage)
	}

	api := router.Group("/api")
	api.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet},
		MaxAge:          12 * time.Hour,
	}))
	{
		api.GET("/catalog", h.GetCatalog)
		api.GET("/shop-status", h.GetShopStatus)
	}

	router.GET("/ping", h.Ping)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.Metrics.Registry, promhttp.HandlerOpts{})))
}

// Централизованная обработка ошибок для HTML страниц
func (h *Handler) errorHandler(ctx *gin.Context, errorStatusCode int, err error) {
	logrus.Error(err.Error())
	ctx.HTML(errorStatusCode, "error.html", gin.H{
		"status": errorStatusCode,
	})
}

// failOrNotFound answers 404 for missing rows and 500 for everything else.
func (h *Handler) failOrNotFound(ctx *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		h.notFound(ctx)
		return
	}
	h.errorHandler(ctx, http.StatusInternalServerError, err)
}

func (h *Handler) notFound(ctx *gin.Context) {
	ctx.HTML(http.StatusNotFound, "not_found.html", nil)
}

// idParam parses a positive id path parameter. On failure it answers 404 and returns false.
func (h *Handler) idParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		h.notFound(ctx)
		return 0, false
	}
	return uint(id), true
}

// redirectPanel returns to the admin panel, optionally scrolled to an element.
func redirectPanel(ctx *gin.Context, anchor string, id uint) {
	target := panelPath
	if anchor != "" {
		target = fmt.Sprintf("%s#%s-%d", panelPath, anchor, id)
	}
	ctx.Redirect(http.StatusFound, target)
}

func (h *Handler) staticPage(name string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.HTML(http.StatusOK, name, nil)
	}
}
