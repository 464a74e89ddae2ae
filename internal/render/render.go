package render

import (
	"embed"
	"html/template"
	"log"
	"net/http"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// Data is the payload every page template receives
type Data struct {
	LoggedIn bool
	Name     string // display name of the authenticated user
	Flash    string // one-shot inline message, empty when none
}

// Page renders the named template with the given status code
func Page(w http.ResponseWriter, name string, statusCode int, data Data) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("ERROR: failed to render template %s: %v", name, err)
	}
}
