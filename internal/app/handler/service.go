package handler

import (
	"net/http"
	"strings"

	"shopfront/internal/app/dto"
	"shopfront/internal/app/repository"
	"shopfront/internal/app/storage"

	"github.com/gin-gonic/gin"
)

func serviceFields(form dto.ServiceForm) repository.ServiceFields {
	return repository.ServiceFields{
		Name:        strings.TrimSpace(form.Name),
		Description: strings.TrimSpace(form.Description),
		Available:   dto.Checked(form.Available),
	}
}

func (h *Handler) AddService(ctx *gin.Context) {
	subcategoryID, ok := h.idParam(ctx, "subcategory_id")
	if !ok {
		return
	}

	if _, err := h.Repository.GetSubcategoryByID(ctx.Request.Context(), subcategoryID); err != nil {
		h.failOrNotFound(ctx, err)
		return
	}

	var form dto.ServiceForm
	_ = ctx.ShouldBind(&form)

	fields := serviceFields(form)
	if fields.Name == "" {
		redirectPanel(ctx, "", 0)
		return
	}

	service, err := h.Repository.CreateService(ctx.Request.Context(), subcategoryID, fields)
	if err != nil {
		h.failOrNotFound(ctx, err)
		return
	}
	h.Metrics.Mutation("service", "add")

	redirectPanel(ctx, "service", service.ID)
}

func (h *Handler) UpdateService(ctx *gin.Context) {
	id, ok := h.idParam(ctx, "service_id")
	if !ok {
		return
	}

	if _, err := h.Repository.GetServiceByID(ctx.Request.Context(), id); err != nil {
		h.failOrNotFound(ctx, err)
		return
	}

	var form dto.ServiceForm
	_ = ctx.ShouldBind(&form)

	fields := serviceFields(form)
	if fields.Name != "" {
		if err := h.Repository.UpdateService(ctx.Request.Context(), id, fields); err != nil {
			h.failOrNotFound(ctx, err)
			return
		}
		h.Metrics.Mutation("service", "update")
	}

	redirectPanel(ctx, "service", id)
}

// UploadServiceImage replaces the service picture. Unlike the category forms the file
// is mandatory here, so problems are reported with 400.
func (h *Handler) UploadServiceImage(ctx *gin.Context) {
	id, ok := h.idParam(ctx, "service_id")
	if !ok {
		return
	}

	fh, err := ctx.FormFile("file")
	if err != nil {
		ctx.String(http.StatusBadRequest, "No file part")
		return
	}
	if fh.Filename == "" {
		ctx.String(http.StatusBadRequest, "No selected file")
		return
	}
	if !storage.AllowedImage(fh.Filename) {
		h.Metrics.ImageUploads.WithLabelValues("service", "rejected").Inc()
		ctx.String(http.StatusBadRequest, "Invalid file type")
		return
	}

	service, err := h.Repository.GetServiceByID(ctx.Request.Context(), id)
	if err != nil {
		h.failOrNotFound(ctx, err)
		return
	}

	name := storage.ServiceImageName(id)
	if err := h.storeImage(ctx.Request.Context(), storage.ServiceFolder, service.ImageFilename, name, fh); err != nil {
		h.Metrics.ImageUploads.WithLabelValues("service", "failed").Inc()
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}
	if err := h.Repository.SetServiceImage(ctx.Request.Context(), id, name); err != nil {
		h.failOrNotFound(ctx, err)
		return
	}
	h.Metrics.ImageUploads.WithLabelValues("service", "stored").Inc()

	redirectPanel(ctx, "service", id)
}

func (h *Handler) DeleteService(ctx *gin.Context) {
	id, ok := h.idParam(ctx, "service_id")
	if !ok {
		return
	}

	service, err := h.Repository.GetServiceByID(ctx.Request.Context(), id)
	if err != nil {
		h.failOrNotFound(ctx, err)
		return
	}

	if err := h.Repository.DeleteService(ctx.Request.Context(), id); err != nil {
		h.failOrNotFound(ctx, err)
		return
	}
	h.Metrics.Mutation("service", "delete")

	if service.ImageFilename != nil {
		h.removeImages(ctx.Request.Context(), storage.ServiceFolder, *service.ImageFilename)
	}

	redirectPanel(ctx, "subcat", service.SubcategoryID)
}
