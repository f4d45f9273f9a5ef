package controllers

import (
	"html/template"
	"log"
	"net/http"
	"path/filepath"
)

// LoadTemplates loads and parses all page templates relative to basePath.
func LoadTemplates(basePath string) map[string]*template.Template {
	layout := filepath.Join(basePath, "app/views/layout.html")

	page := func(names ...string) *template.Template {
		files := []string{layout}
		for _, name := range names {
			files = append(files, filepath.Join(basePath, "app/views", name))
		}
		return template.Must(template.ParseFiles(files...))
	}

	templates := make(map[string]*template.Template)
	templates["index"] = page("posts/index.html", "shared/pagination.html")
	templates["category"] = page("posts/category.html", "shared/pagination.html")
	templates["profile"] = page("posts/profile.html", "shared/pagination.html")
	templates["detail"] = page("posts/detail.html")
	templates["post_form"] = page("posts/form.html")
	templates["comment_form"] = page("comments/form.html")
	templates["profile_form"] = page("users/profile_form.html")
	templates["login"] = page("users/login.html")
	templates["registration"] = page("users/registration.html")
	return templates
}

func render(w http.ResponseWriter, tpl *template.Template, data any) {
	if err := tpl.ExecuteTemplate(w, "layout", data); err != nil {
		log.Printf("template error: %v", err)
	}
}
