package handler

import (
	"net/http"
	"strings"

	"shopfront/internal/app/dto"
	"shopfront/internal/app/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AddCategory creates a category and attaches the optional image. A disallowed image
// is ignored, the category is still created.
func (h *Handler) AddCategory(ctx *gin.Context) {
	var form dto.NameForm
	_ = ctx.ShouldBind(&form)

	name := strings.TrimSpace(form.Name)
	if name == "" {
		redirectPanel(ctx, "", 0)
		return
	}

	category, err := h.Repository.CreateCategory(ctx.Request.Context(), name)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}
	h.Metrics.Mutation("category", "add")

	if err := h.attachCategoryImage(ctx, category.ID, category.ImageFilename); err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	redirectPanel(ctx, "", 0)
}

func (h *Handler) UpdateCategory(ctx *gin.Context) {
	id, ok := h.idParam(ctx, "category_id")
	if !ok {
		return
	}

	category, err := h.Repository.GetCategoryByID(ctx.Request.Context(), id)
	if err != nil {
		h.failOrNotFound(ctx, err)
		return
	}

	var form dto.NameForm
	_ = ctx.ShouldBind(&form)

	name := strings.TrimSpace(form.Name)
	if name == "" {
		redirectPanel(ctx, "category", id)
		return
	}

	if err := h.Repository.UpdateCategoryName(ctx.Request.Context(), id, name); err != nil {
		h.failOrNotFound(ctx, err)
		return
	}
	h.Metrics.Mutation("category", "update")

	if err := h.attachCategoryImage(ctx, id, category.ImageFilename); err != nil {
		h.failOrNotFound(ctx, err)
		return
	}

	redirectPanel(ctx, "category", id)
}

// attachCategoryImage handles the optional "image" part of a category form.
func (h *Handler) attachCategoryImage(ctx *gin.Context, id uint, prior *string) error {
	fh, err := ctx.FormFile("image")
	if err != nil || fh.Filename == "" {
		return nil
	}
	if !storage.AllowedImage(fh.Filename) {
		h.Metrics.ImageUploads.WithLabelValues("category", "rejected").Inc()
		logrus.WithField("file", fh.Filename).Warn("category image rejected")
		return nil
	}

	name := storage.CategoryImageName(id)
	if err := h.storeImage(ctx.Request.Context(), storage.CategoryFolder, prior, name, fh); err != nil {
		h.Metrics.ImageUploads.WithLabelValues("category", "failed").Inc()
		return err
	}
	if err := h.Repository.SetCategoryImage(ctx.Request.Context(), id, name); err != nil {
		return err
	}
	h.Metrics.ImageUploads.WithLabelValues("category", "stored").Inc()
	return nil
}

// DeleteCategory removes the category with everything below it, then the orphaned images.
func (h *Handler) DeleteCategory(ctx *gin.Context) {
	id, ok := h.idParam(ctx, "category_id")
	if !ok {
		return
	}

	category, err := h.Repository.GetCategoryByID(ctx.Request.Context(), id)
	if err != nil {
		h.failOrNotFound(ctx, err)
		return
	}

	serviceImages, err := h.Repository.ServiceImagesInCategory(ctx.Request.Context(), id)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	if err := h.Repository.DeleteCategory(ctx.Request.Context(), id); err != nil {
		h.failOrNotFound(ctx, err)
		return
	}
	h.Metrics.Mutation("category", "delete")

	if category.ImageFilename != nil {
		h.removeImages(ctx.Request.Context(), storage.CategoryFolder, *category.ImageFilename)
	}
	h.removeImages(ctx.Request.Context(), storage.ServiceFolder, serviceImages...)

	redirectPanel(ctx, "", 0)
}
