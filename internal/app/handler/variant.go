package handler

import (
	"strconv"
	"strings"

	"shopfront/internal/app/ds"
	"shopfront/internal/app/dto"
	"shopfront/internal/app/repository"

	"github.com/gin-gonic/gin"
)

// parsePrice accepts non-negative integers only.
func parsePrice(raw string) (int, bool) {
	price, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || price < 0 {
		return 0, false
	}
	return price, true
}

func optional(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

// AddVariant creates a priced option. A missing or invalid price becomes 0.
func (h *Handler) AddVariant(ctx *gin.Context) {
	serviceID, ok := h.idParam(ctx, "service_id")
	if !ok {
		return
	}

	if _, err := h.Repository.GetServiceByID(ctx.Request.Context(), serviceID); err != nil {
		h.failOrNotFound(ctx, err)
		return
	}

	var form dto.VariantForm
	_ = ctx.ShouldBind(&form)

	fields := repository.VariantFields{
		Name:      optional(form.Name),
		Unit:      optional(form.Unit),
		Available: dto.Checked(form.Available),
	}
	if fields.Name == "" {
		redirectPanel(ctx, "service", serviceID)
		return
	}
	if price, ok := parsePrice(optional(form.Price)); ok {
		fields.Price = price
	}
	if fields.Unit == "" {
		fields.Unit = ds.DefaultVariantUnit
	}

	variant, err := h.Repository.CreateVariant(ctx.Request.Context(), serviceID, fields)
	if err != nil {
		h.failOrNotFound(ctx, err)
		return
	}
	h.Metrics.Mutation("variant", "add")

	redirectPanel(ctx, "variant", variant.ID)
}

// UpdateVariant keeps stored values for absent fields. An invalid price keeps the stored
// price while the remaining fields are still applied.
func (h *Handler) UpdateVariant(ctx *gin.Context) {
	id, ok := h.idParam(ctx, "variant_id")
	if !ok {
		return
	}

	variant, err := h.Repository.GetVariantByID(ctx.Request.Context(), id)
	if err != nil {
		h.failOrNotFound(ctx, err)
		return
	}

	var form dto.VariantForm
	_ = ctx.ShouldBind(&form)

	fields := repository.VariantFields{
		Name:      variant.Name,
		Price:     variant.Price,
		Unit:      variant.Unit,
		Available: dto.Checked(form.Available),
	}
	if form.Name != nil {
		fields.Name = optional(form.Name)
	}
	if form.Unit != nil {
		fields.Unit = optional(form.Unit)
	}
	if form.Price != nil {
		if price, ok := parsePrice(*form.Price); ok {
			fields.Price = price
		}
	}

	if fields.Name == "" {
		redirectPanel(ctx, "variant", id)
		return
	}

	if err := h.Repository.UpdateVariant(ctx.Request.Context(), id, fields); err != nil {
		h.failOrNotFound(ctx, err)
		return
	}
	h.Metrics.Mutation("variant", "update")

	redirectPanel(ctx, "variant", id)
}

func (h *Handler) DeleteVariant(ctx *gin.Context) {
	id, ok := h.idParam(ctx, "variant_id")
	if !ok {
		return
	}

	variant, err := h.Repository.GetVariantByID(ctx.Request.Context(), id)
	if err != nil {
		h.failOrNotFound(ctx, err)
		return
	}

	if err := h.Repository.DeleteVariant(ctx.Request.Context(), id); err != nil {
		h.failOrNotFound(ctx, err)
		return
	}
	h.Metrics.Mutation("variant", "delete")

	redirectPanel(ctx, "service", variant.ServiceID)
}
