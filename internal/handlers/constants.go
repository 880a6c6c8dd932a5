package handlers

// Template names rendered by the handlers
const (
	tmplLogin          = "login.tmpl"
	tmplRegister       = "register.tmpl"
	tmplForgotPassword = "forgot_password.tmpl"
	tmplResetPassword  = "reset_password.tmpl"
	tmplDashboard      = "dashboard.tmpl"
	tmplReservation    = "reservation.tmpl"
	tmplInvites        = "invites.tmpl"
	tmplRequests       = "requests.tmpl"
	tmplLists          = "lists.tmpl"
	tmplSettings       = "settings.tmpl"
	tmplProfile        = "profile.tmpl"
)
