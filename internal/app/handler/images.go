package handler

import (
	"context"
	"fmt"
	"mime/multipart"

	"shopfront/internal/app/storage"

	"github.com/sirupsen/logrus"
)

// storeImage replaces the owner's image: the prior blob, if still stored, is removed first,
// then the upload is written under the owner's fixed name.
func (h *Handler) storeImage(ctx context.Context, folder string, prior *string, name string, fh *multipart.FileHeader) error {
	file, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	if prior != nil && *prior != "" {
		priorKey := storage.Key(folder, *prior)
		exists, err := h.Blobs.Exists(ctx, priorKey)
		switch {
		case err != nil:
			logrus.Warnf("Failed to check old image %s: %v", *prior, err)
		case !exists:
			logrus.Warnf("Old image %s is already gone", *prior)
		default:
			if err := h.Blobs.Delete(ctx, priorKey); err != nil {
				logrus.Warnf("Failed to delete old image %s: %v", *prior, err)
			}
		}
	}

	return h.Blobs.Put(ctx, storage.Key(folder, name), file, fh.Size, storage.ContentType(name))
}

// removeImages drops blobs of deleted rows. Failures are only logged.
func (h *Handler) removeImages(ctx context.Context, folder string, names ...string) {
	for _, name := range names {
		if name == "" {
			continue
		}
		if err := h.Blobs.Delete(ctx, storage.Key(folder, name)); err != nil {
			logrus.Warnf("Failed to delete image %s: %v", name, err)
		}
	}
}
