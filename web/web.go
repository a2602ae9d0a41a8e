package web

import (
	"embed"
	"html/template"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mergestat/timediff"
)

//go:embed templates/*.html
var templatesFS embed.FS

// expiringSoonWindow is how close to its expiration date a product is
// flagged as expiring soon.
const expiringSoonWindow = 3 * 24 * time.Hour

// Templates parses all embedded page templates with the shared func map.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs()).ParseFS(templatesFS, "templates/*.html")
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"date":         formatDate,
		"reltime":      formatRelativeTime,
		"humantime":    humanize.Time,
		"expired":      expired,
		"expiringSoon": expiringSoon,
	}
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// formatRelativeTime formats a time.Time as a relative string like "in 3 days".
func formatRelativeTime(t time.Time) string {
	return timediff.TimeDiff(t)
}

func expired(expiration, today time.Time) bool {
	return expiration.Before(today.Truncate(24 * time.Hour))
}

func expiringSoon(expiration, today time.Time) bool {
	if expired(expiration, today) {
		return false
	}
	return expiration.Sub(today) <= expiringSoonWindow
}
