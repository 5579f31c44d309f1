package handler

import (
	"errors"
	"net/http"
	"path"

	"shopfront/internal/app/order"
	"shopfront/internal/app/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const maxFormMemory = 8 << 20

// GetIndex shows the catalog while the shop is open and the closed notice otherwise.
func (h *Handler) GetIndex(ctx *gin.Context) {
	status, err := h.Repository.GetShopStatus(ctx.Request.Context())
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}
	if !status.IsOpen {
		ctx.HTML(http.StatusOK, "closed.html", gin.H{"message": status.Message})
		return
	}

	snapshot, err := h.Repository.GetCatalogSnapshot(ctx.Request.Context())
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.HTML(http.StatusOK, "index.html", gin.H{
		"catalog": snapshot,
	})
}

// SubmitOrder turns the order form into a chat message and redirects the customer to it.
// Incomplete or empty submissions go back to the catalog without any side effect.
func (h *Handler) SubmitOrder(ctx *gin.Context) {
	err := ctx.Request.ParseMultipartForm(maxFormMemory)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.discardOrder(ctx, "bad_form")
		return
	}
	form := ctx.Request.PostForm

	customer := h.Composer.CustomerFromForm(form)
	if _, err := customer.Normalize(); err != nil {
		h.discardOrder(ctx, "missing_customer")
		return
	}

	selections := order.ParseSelections(form)
	if len(selections) == 0 {
		h.discardOrder(ctx, "no_items")
		return
	}

	snapshot, err := h.Repository.GetCatalogSnapshot(ctx.Request.Context())
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	o, err := h.Composer.Compose(snapshot, selections, customer)
	switch {
	case errors.Is(err, order.ErrMissingCustomer):
		h.discardOrder(ctx, "missing_customer")
		return
	case errors.Is(err, order.ErrNoItems):
		h.discardOrder(ctx, "no_items")
		return
	case errors.Is(err, order.ErrOrderTooLarge):
		h.discardOrder(ctx, "too_large")
		return
	case err != nil:
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	target := h.Composer.Target(h.Composer.Message(o))

	h.Metrics.OrdersComposed.Inc()
	h.Metrics.OrderAmount.Add(float64(o.Total))
	logrus.WithFields(logrus.Fields{
		"items": len(o.Items),
		"total": o.Total,
	}).Info("order composed")

	ctx.Redirect(http.StatusFound, target)
}

func (h *Handler) discardOrder(ctx *gin.Context, reason string) {
	h.Metrics.OrdersDiscarded.WithLabelValues(reason).Inc()
	logrus.WithField("reason", reason).Debug("order discarded")
	ctx.Redirect(http.StatusFound, "/")
}

// GetImage streams a stored category or service image.
func (h *Handler) GetImage(ctx *gin.Context) {
	folder := ctx.Param("folder")
	name := ctx.Param("name")
	if !storage.ValidFolder(folder) || name == "" || path.Base(name) != name {
		h.notFound(ctx)
		return
	}

	body, info, err := h.Blobs.Get(ctx.Request.Context(), storage.Key(folder, name))
	if errors.Is(err, storage.ErrObjectNotFound) {
		h.notFound(ctx)
		return
	}
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}
	defer body.Close()

	ctx.DataFromReader(http.StatusOK, info.Size, info.ContentType, body, nil)
}
