// Package web embeds the HTML templates.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	"time"

	"yatube/internal/utils"

	"github.com/gin-contrib/multitemplate"
)

//go:embed templates
var templatesFS embed.FS

const viewsDir = "templates/views/"

// FuncMap is shared by every page.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"add": func(a, b int) int {
			return a + b
		},
		"markdown": utils.RenderMarkdown,
		"date": func(t time.Time) string {
			return t.Format("02.01.2006 15:04")
		},
		"media": func(rel string) string {
			return "/media/" + rel
		},
		"year": func() int {
			return time.Now().Year()
		},
	}
}

// LoadTemplates registers every view under its path below views/, e.g.
// "posts/index.html", composed with the base layout and the includes.
func LoadTemplates() (multitemplate.Render, error) {
	r := multitemplate.New()
	funcMap := FuncMap()

	err := fs.WalkDir(templatesFS, strings.TrimSuffix(viewsDir, "/"), func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".html") {
			return err
		}
		name := strings.TrimPrefix(path, viewsDir)

		tmpl, err := template.New("base.html").Funcs(funcMap).ParseFS(templatesFS,
			"templates/layouts/base.html",
			"templates/includes/*.html",
			path,
		)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		r.Add(name, tmpl)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}
