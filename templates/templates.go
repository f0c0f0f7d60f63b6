// Package templates holds the server rendered pages.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/navbryce/yatube/routepath"
)

//go:embed html
var files embed.FS

// Load parses every page. Pages are named by their {{define}}, e.g. "posts/index.html".
func Load(funcs template.FuncMap) (*template.Template, error) {
	return template.New("").
		Funcs(template.FuncMap{
			"date": func(t time.Time) string {
				return t.Format("2 Jan 2006")
			},
			"deref": func(val *int64) int64 {
				if val == nil {
					return 0
				}
				return *val
			},
			"imageURL": func(string) string { return "" },
			"path": func(name string) (string, error) {
				path, ok := routepath.Static[name]
				if !ok {
					return "", fmt.Errorf("unknown path %q", name)
				}
				return path, nil
			},
			"groupURL":    routepath.Group,
			"profileURL":  routepath.Profile,
			"followURL":   routepath.ProfileFollow,
			"unfollowURL": routepath.ProfileUnfollow,
			"postURL":     routepath.PostDetail,
			"editURL":     routepath.PostEdit,
			"commentURL":  routepath.PostComment,
		}).
		Funcs(funcs).
		ParseFS(files, "html/*.html", "html/*/*.html")
}
