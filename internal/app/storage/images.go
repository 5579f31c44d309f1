package storage

import (
	"fmt"
	"path"
	"strings"
)

const (
	CategoryFolder = "categories"
	ServiceFolder  = "services"
)

var allowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
}

// AllowedImage reports whether the uploaded filename carries an accepted image extension.
func AllowedImage(filename string) bool {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return false
	}
	_, ok := allowedExtensions[strings.ToLower(filename[i+1:])]
	return ok
}

// Image names derive from the owner id only, so a re-upload lands on the same key.
func CategoryImageName(id uint) string {
	return fmt.Sprintf("category_%d.jpg", id)
}

func ServiceImageName(id uint) string {
	return fmt.Sprintf("service_%d.jpg", id)
}

func Key(folder, filename string) string {
	return path.Join(folder, filename)
}

// ValidFolder guards the public image route against arbitrary prefixes.
func ValidFolder(folder string) bool {
	return folder == CategoryFolder || folder == ServiceFolder
}
