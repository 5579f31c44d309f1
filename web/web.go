// Package web embeds the HTML templates and static assets of the shop.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"shopfront/internal/app/order"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

var funcs = template.FuncMap{
	"imageURL": func(folder, name string) string {
		if name == "" {
			return ""
		}
		return fmt.Sprintf("/images/%s/%s", folder, name)
	},
	"fieldName": func(serviceID, variantID uint) string {
		return order.SelectionKey{ServiceID: serviceID, VariantID: variantID}.FieldName()
	},
}

// Templates parses every page template. It panics on a broken template since they are compiled in.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
