package handler

import (
	"net/http"
	"strings"

	"shopfront/internal/app/dto"
	"shopfront/internal/app/storage"

	"github.com/gin-gonic/gin"
)

func (h *Handler) AddSubcategory(ctx *gin.Context) {
	categoryID, ok := h.idParam(ctx, "category_id")
	if !ok {
		return
	}

	if _, err := h.Repository.GetCategoryByID(ctx.Request.Context(), categoryID); err != nil {
		h.failOrNotFound(ctx, err)
		return
	}

	var form dto.NameForm
	_ = ctx.ShouldBind(&form)

	name := strings.TrimSpace(form.Name)
	if name == "" {
		redirectPanel(ctx, "", 0)
		return
	}

	sub, err := h.Repository.CreateSubcategory(ctx.Request.Context(), categoryID, name)
	if err != nil {
		h.failOrNotFound(ctx, err)
		return
	}
	h.Metrics.Mutation("subcategory", "add")

	redirectPanel(ctx, "subcat", sub.ID)
}

func (h *Handler) UpdateSubcategory(ctx *gin.Context) {
	id, ok := h.idParam(ctx, "subcategory_id")
	if !ok {
		return
	}

	if _, err := h.Repository.GetSubcategoryByID(ctx.Request.Context(), id); err != nil {
		h.failOrNotFound(ctx, err)
		return
	}

	var form dto.NameForm
	_ = ctx.ShouldBind(&form)

	name := strings.TrimSpace(form.Name)
	if name != "" {
		if err := h.Repository.UpdateSubcategoryName(ctx.Request.Context(), id, name); err != nil {
			h.failOrNotFound(ctx, err)
			return
		}
		h.Metrics.Mutation("subcategory", "update")
	}

	redirectPanel(ctx, "subcat", id)
}

func (h *Handler) DeleteSubcategory(ctx *gin.Context) {
	id, ok := h.idParam(ctx, "subcategory_id")
	if !ok {
		return
	}

	sub, err := h.Repository.GetSubcategoryByID(ctx.Request.Context(), id)
	if err != nil {
		h.failOrNotFound(ctx, err)
		return
	}

	serviceImages, err := h.Repository.ServiceImagesInSubcategory(ctx.Request.Context(), id)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	if err := h.Repository.DeleteSubcategory(ctx.Request.Context(), id); err != nil {
		h.failOrNotFound(ctx, err)
		return
	}
	h.Metrics.Mutation("subcategory", "delete")
	h.removeImages(ctx.Request.Context(), storage.ServiceFolder, serviceImages...)

	redirectPanel(ctx, "category", sub.CategoryID)
}
