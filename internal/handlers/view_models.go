package handlers

import (
	"net/http"

	"sunescape/internal/models"
	"sunescape/internal/security"
)

// basePage carries the fields every template expects
type basePage struct {
	Title     string
	User      *models.User
	CSRFToken string
	Error     string
	Success   string
}

// newBasePage builds the shared page data from the request context
func newBasePage(r *http.Request, csrf *security.CSRFGenerator, title string) basePage {
	page := basePage{Title: title}
	page.User = GetUserFromContext(r.Context())
	if session := GetSessionFromContext(r.Context()); session != nil {
		page.CSRFToken = csrf.GenerateToken(session.ID)
	}
	// One-shot flash messages arrive as query parameters after redirects
	page.Error = r.URL.Query().Get("error")
	page.Success = r.URL.Query().Get("success")
	return page
}
