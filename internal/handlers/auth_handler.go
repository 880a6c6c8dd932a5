package handlers

import (
	"html/template"
	"log"
	"net/http"
	"net/url"

	"sunescape/internal/security"
	"sunescape/internal/service"
)

// AuthHandler serves login, registration, password recovery and profile
type AuthHandler struct {
	authService          *service.AuthService
	sessions             *security.SessionManager
	csrf                 *security.CSRFGenerator
	templates            *template.Template
	oauthProviders       map[string]OAuthProvider
	oauthRedirectBaseURL string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	authService *service.AuthService,
	sessions *security.SessionManager,
	csrf *security.CSRFGenerator,
	templates *template.Template,
	oauthProviders map[string]OAuthProvider,
	oauthRedirectBaseURL string,
) *AuthHandler {
	return &AuthHandler{
		authService:          authService,
		sessions:             sessions,
		csrf:                 csrf,
		templates:            templates,
		oauthProviders:       oauthProviders,
		oauthRedirectBaseURL: oauthRedirectBaseURL,
	}
}

// Home redirects to the dashboard or the login page
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	session, err := h.sessions.Get(r)
	if err == nil && session != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// ShowLogin renders the login form
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	h.renderAuthPage(w, r, tmplLogin, "Log in", "")
}

// Login handles the login form
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form", "", err)
		return
	}

	user, err := h.authService.Login(r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		h.renderAuthPage(w, r, tmplLogin, "Log in", userMessageFor(err))
		return
	}

	if _, err := h.sessions.Create(w, user.ID); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "failed to create session", err)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// ShowRegister renders the registration form
func (h *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	h.renderAuthPage(w, r, tmplRegister, "Create account", "")
}

// Register handles the registration form
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form", "", err)
		return
	}

	user, err := h.authService.Register(
		r.FormValue("email"),
		r.FormValue("password"),
		r.FormValue("first_name"),
		r.FormValue("full_name"),
	)
	if err != nil {
		h.renderAuthPage(w, r, tmplRegister, "Create account", userMessageFor(err))
		return
	}

	if _, err := h.sessions.Create(w, user.ID); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "failed to create session", err)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout destroys the session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(w, r); err != nil {
		log.Printf("Failed to destroy session: %v", err)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// ShowForgotPassword renders the reset-request form
func (h *AuthHandler) ShowForgotPassword(w http.ResponseWriter, r *http.Request) {
	h.renderAuthPage(w, r, tmplForgotPassword, "Forgot password", "")
}

// ForgotPassword mails a reset link. The response is the same whether or
// not the address matched an account.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form", "", err)
		return
	}
	if err := h.authService.RequestPasswordReset(r.Context(), r.FormValue("email")); err != nil {
		log.Printf("Password reset request failed: %v", err)
	}
	http.Redirect(w, r, "/login?"+url.Values{"success": {"If that address has an account, a reset link is on its way."}}.Encode(), http.StatusSeeOther)
}

// ShowResetPassword renders the new-password form for a token link
func (h *AuthHandler) ShowResetPassword(w http.ResponseWriter, r *http.Request) {
	data := struct {
		basePage
		Token          string
		OAuthProviders []OAuthProviderView
	}{
		basePage: newBasePage(r, h.csrf, "Choose a new password"),
		Token:    r.URL.Query().Get("token"),
	}
	h.render(w, tmplResetPassword, data)
}

// ResetPassword applies the new password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form", "", err)
		return
	}
	if err := h.authService.ResetPassword(r.FormValue("token"), r.FormValue("password")); err != nil {
		http.Redirect(w, r, "/auth/reset-password?"+url.Values{
			"token": {r.FormValue("token")},
			"error": {userMessageFor(err)},
		}.Encode(), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login?"+url.Values{"success": {"Password updated, log in with the new one."}}.Encode(), http.StatusSeeOther)
}

// ShowProfile renders the profile form
func (h *AuthHandler) ShowProfile(w http.ResponseWriter, r *http.Request) {
	data := struct {
		basePage
	}{
		basePage: newBasePage(r, h.csrf, "Profile"),
	}
	h.render(w, tmplProfile, data)
}

// UpdateProfile saves the profile form
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form", "", err)
		return
	}
	if err := h.authService.UpdateProfile(user.ID, r.FormValue("first_name"), r.FormValue("full_name")); err != nil {
		http.Redirect(w, r, "/profile?"+url.Values{"error": {userMessageFor(err)}}.Encode(), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/profile?"+url.Values{"success": {"Profile updated."}}.Encode(), http.StatusSeeOther)
}

// renderAuthPage renders one of the public auth forms with the OAuth
// provider buttons
func (h *AuthHandler) renderAuthPage(w http.ResponseWriter, r *http.Request, tmpl, title, errMsg string) {
	data := struct {
		basePage
		OAuthProviders []OAuthProviderView
	}{
		basePage:       newBasePage(r, h.csrf, title),
		OAuthProviders: h.oauthProviderViews(),
	}
	if errMsg != "" {
		data.Error = errMsg
	}
	h.render(w, tmpl, data)
}

func (h *AuthHandler) render(w http.ResponseWriter, tmpl string, data interface{}) {
	if err := h.templates.ExecuteTemplate(w, tmpl, data); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "template render failed", err)
	}
}
