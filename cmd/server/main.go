package main

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"sunescape/internal/config"
	"sunescape/internal/database"
	"sunescape/internal/handlers"
	"sunescape/internal/repository"
	"sunescape/internal/security"
	"sunescape/internal/service"

	"github.com/robfig/cron/v3"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Load templates
	templates, err := loadTemplates(cfg.TemplatesPath)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	log.Println("Templates loaded successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	inviteRepo := repository.NewInviteRepository(db)
	joinRequestRepo := repository.NewJoinRequestRepository(db)
	checklistRepo := repository.NewChecklistRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Make sure the house has a capacity before the first admin sets one
	if err := settingsRepo.EnsureDefaults(cfg.TotalRoomsDefault); err != nil {
		log.Fatalf("Failed to seed settings: %v", err)
	}

	// Security plumbing
	secureCookies := strings.HasPrefix(cfg.AppBaseURL, "https://")
	sessions := security.NewSessionManager(userRepo, cfg.SessionDuration, secureCookies)
	csrf := security.NewCSRFGenerator(cfg.SecretKey)
	limiter := security.NewRateLimiter(10, 0.5)
	resets := security.NewResetTokenIssuer(cfg.SecretKey)

	// Notification channels
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	pushService := service.NewPushService(cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey, cfg.VAPIDSubject)
	notifier := service.NewNotifier(userRepo, emailService, pushService)

	// Initialize services
	authService := service.NewAuthService(userRepo, resets, notifier)
	reservationService := service.NewReservationService(reservationRepo, inviteRepo, settingsRepo, userRepo, notifier)
	inviteService := service.NewInviteService(inviteRepo, reservationRepo, settingsRepo, userRepo, notifier)
	joinRequestService := service.NewJoinRequestService(joinRequestRepo, reservationRepo, settingsRepo, userRepo, notifier)
	checklistService := service.NewChecklistService(checklistRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	icalService := service.NewICalService(cfg.AppName, cfg.AppBaseURL)

	oauthProviders := map[string]handlers.OAuthProvider{
		"google": {
			Name:  "google",
			Label: "Google",
			Config: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				Endpoint:     google.Endpoint,
				Scopes:       []string{"openid", "email", "profile"},
			},
			UserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		},
		"facebook": {
			Name:  "facebook",
			Label: "Facebook",
			Config: &oauth2.Config{
				ClientID:     cfg.FacebookClientID,
				ClientSecret: cfg.FacebookClientSecret,
				Endpoint:     facebook.Endpoint,
				Scopes:       []string{"email", "public_profile"},
			},
			UserInfoURL: "https://graph.facebook.com/me?fields=id,name,email",
		},
	}

	// Initialize handlers
	middleware := handlers.NewMiddleware(sessions, userRepo, csrf, limiter)
	authHandler := handlers.NewAuthHandler(authService, sessions, csrf, templates, oauthProviders, cfg.OAuthRedirectBaseURL)
	calendarHandler := handlers.NewCalendarHandler(reservationService, inviteService, joinRequestService, icalService, csrf, templates)
	reservationHandler := handlers.NewReservationHandler(reservationService, joinRequestService, csrf, templates)
	inviteHandler := handlers.NewInviteHandler(inviteService, reservationService, csrf, templates)
	joinRequestHandler := handlers.NewJoinRequestHandler(joinRequestService, reservationService, csrf, templates)
	checklistHandler := handlers.NewChecklistHandler(checklistService, csrf, templates)
	adminHandler := handlers.NewAdminHandler(settingsService, csrf, templates)
	pushHandler := handlers.NewPushHandler(pushService, userRepo)

	// Setup routes
	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))
	mux.HandleFunc("GET /sw.js", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(cfg.StaticFilesPath, "sw.js"))
	})

	// Public routes
	mux.HandleFunc("GET /", authHandler.Home)
	mux.HandleFunc("GET /login", authHandler.ShowLogin)
	mux.HandleFunc("POST /login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("GET /register", authHandler.ShowRegister)
	mux.HandleFunc("POST /register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /logout", authHandler.Logout)
	mux.HandleFunc("GET /auth/{provider}/start", authHandler.StartOAuth)
	mux.HandleFunc("GET /auth/{provider}/callback", authHandler.OAuthCallback)
	mux.HandleFunc("GET /auth/forgot-password", authHandler.ShowForgotPassword)
	mux.HandleFunc("POST /auth/forgot-password", middleware.RateLimit(authHandler.ForgotPassword))
	mux.HandleFunc("GET /auth/reset-password", authHandler.ShowResetPassword)
	mux.HandleFunc("POST /auth/reset-password", middleware.RateLimit(authHandler.ResetPassword))

	// Profile
	mux.HandleFunc("GET /profile", middleware.RequireAuth(authHandler.ShowProfile))
	mux.HandleFunc("POST /profile", middleware.RequireAuth(middleware.CSRFProtect(authHandler.UpdateProfile)))

	// Calendar
	mux.HandleFunc("GET /dashboard", middleware.RequireAuth(calendarHandler.Dashboard))
	mux.HandleFunc("GET /calendar.ics", middleware.RequireAuth(calendarHandler.ICalFeed))

	// Reservations, guests and notes
	mux.HandleFunc("POST /reservations", middleware.RequireAuth(middleware.CSRFProtect(reservationHandler.Create)))
	mux.HandleFunc("GET /reservations/{id}", middleware.RequireAuth(reservationHandler.Show))
	mux.HandleFunc("POST /reservations/{id}/update", middleware.RequireAuth(middleware.CSRFProtect(reservationHandler.Update)))
	mux.HandleFunc("POST /reservations/{id}/guests", middleware.RequireAuth(middleware.CSRFProtect(reservationHandler.AddGuest)))
	mux.HandleFunc("POST /reservations/{id}/guests/{guestID}/delete", middleware.RequireAuth(middleware.CSRFProtect(reservationHandler.RemoveGuest)))
	mux.HandleFunc("POST /reservations/{id}/notes", middleware.RequireAuth(middleware.CSRFProtect(reservationHandler.AddNote)))
	mux.HandleFunc("POST /reservations/{id}/notes/{noteID}/delete", middleware.RequireAuth(middleware.CSRFProtect(reservationHandler.RemoveNote)))

	// Invites
	mux.HandleFunc("GET /invites", middleware.RequireAuth(inviteHandler.Inbox))
	mux.HandleFunc("POST /invites/{id}/accept", middleware.RequireAuth(middleware.CSRFProtect(inviteHandler.Accept)))
	mux.HandleFunc("POST /invites/{id}/decline", middleware.RequireAuth(middleware.CSRFProtect(inviteHandler.Decline)))

	// Join requests
	mux.HandleFunc("GET /requests", middleware.RequireAuth(joinRequestHandler.Show))
	mux.HandleFunc("POST /reservations/{id}/join-requests", middleware.RequireAuth(middleware.CSRFProtect(joinRequestHandler.Create)))
	mux.HandleFunc("POST /join-requests/{id}/approve", middleware.RequireAuth(middleware.CSRFProtect(joinRequestHandler.Approve)))
	mux.HandleFunc("POST /join-requests/{id}/deny", middleware.RequireAuth(middleware.CSRFProtect(joinRequestHandler.Deny)))

	// Shared lists
	mux.HandleFunc("GET /lists", middleware.RequireAuth(checklistHandler.Show))
	mux.HandleFunc("POST /lists/{kind}/items", middleware.RequireAuth(middleware.CSRFProtect(checklistHandler.Add)))
	mux.HandleFunc("POST /lists/{kind}/items/{id}/toggle", middleware.RequireAuth(middleware.CSRFProtect(checklistHandler.Toggle)))
	mux.HandleFunc("POST /lists/{kind}/items/{id}/delete", middleware.RequireAuth(middleware.CSRFProtect(checklistHandler.Delete)))
	mux.HandleFunc("POST /lists/{kind}/clear-done", middleware.RequireAuth(middleware.CSRFProtect(checklistHandler.ClearDone)))

	// Push notifications
	mux.HandleFunc("GET /push/vapid-key", middleware.RequireAuth(pushHandler.VAPIDKey))
	mux.HandleFunc("POST /push/subscribe", middleware.RequireAuth(middleware.CSRFProtect(pushHandler.Subscribe)))
	mux.HandleFunc("POST /push/unsubscribe", middleware.RequireAuth(middleware.CSRFProtect(pushHandler.Unsubscribe)))

	// Admin routes
	mux.HandleFunc("GET /admin/settings", middleware.RequireAdmin(adminHandler.ShowSettings))
	mux.HandleFunc("POST /admin/settings", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.UpdateSettings)))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Background housekeeping
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@hourly", func() {
		if count, err := sessions.CleanupExpired(); err != nil {
			log.Printf("Session cleanup failed: %v", err)
		} else if count > 0 {
			log.Printf("Cleaned up %d expired sessions", count)
		}
		limiter.Cleanup(30 * time.Minute)
	}); err != nil {
		log.Fatalf("Failed to schedule cleanup: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// loadTemplates loads all template files
func loadTemplates(templatesPath string) (*template.Template, error) {
	files, err := filepath.Glob(filepath.Join(templatesPath, "*.tmpl"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob templates: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found in %s", templatesPath)
	}

	// Define template functions
	funcMap := template.FuncMap{
		"formatDate": func(iso string) string {
			t, err := time.Parse("2006-01-02", iso)
			if err != nil {
				return iso
			}
			return t.Format("Jan 2, 2006")
		},
		"formatTimestamp": func(t time.Time) string {
			return t.Format("Jan 2, 2006 15:04")
		},
		"dayOfMonth": func(iso string) string {
			t, err := time.Parse("2006-01-02", iso)
			if err != nil {
				return ""
			}
			return fmt.Sprintf("%d", t.Day())
		},
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"clampAvailable": clampAvailable,
	}

	return template.New("").Funcs(funcMap).ParseFiles(files...)
}

// clampAvailable floors a room count at zero for display. Overbooked
// days carry a negative count in the calendar model.
func clampAvailable(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
