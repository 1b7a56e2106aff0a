package web

import (
	"html/template"
	"strings"
	"time"
)

var templateFuncs = template.FuncMap{
	"join":  strings.Join,
	"lower": strings.ToLower,
	"days": func(d time.Duration) int {
		return int(d.Hours() / 24)
	},
	"date": func(t time.Time) string {
		return t.UTC().Format("2006-01-02 15:04")
	},
}
