package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/saxansaxo/backend/internal/config"
	"github.com/saxansaxo/backend/internal/db"
	"github.com/saxansaxo/backend/internal/repository/sqlite"
	"github.com/saxansaxo/backend/internal/storage"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, db *db.DB, media *storage.Store) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)
	r.Use(IdentityMiddleware(cfg.JWTSecret))

	// Repository
	repo := sqlite.New(db)

	// Anonymous write endpoints get a per-IP throttle.
	limiter := NewIPRateLimiter(cfg.RateRPS, cfg.RateBurst)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	contactHandler := NewContactHandler(repo)
	servicesHandler := NewServicesHandler(repo)
	teamHandler := NewTeamHandler(repo, media)
	jobsHandler := NewJobsHandler(repo)
	applicationsHandler := NewApplicationsHandler(repo, repo, media)
	profilesHandler := NewProfilesHandler(repo, repo, media)
	companyHandler := NewCompanyHandler(repo, media)
	usersHandler := NewUsersHandler(repo)

	// System endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")

	// Auth endpoints
	r.HandleFunc("/auth/register", limiter.Wrap(authHandler.Register)).Methods("POST")
	r.HandleFunc("/auth/login", limiter.Wrap(authHandler.Login)).Methods("POST")
	r.HandleFunc("/auth/refresh", limiter.Wrap(authHandler.Refresh)).Methods("POST")
	r.HandleFunc("/auth/me", authHandler.Me).Methods("GET")

	// Contact messages
	r.HandleFunc("/contact", limiter.Wrap(contactHandler.Create)).Methods("POST")
	r.HandleFunc("/contact", contactHandler.List).Methods("GET")
	r.HandleFunc("/contact/{id:[0-9]+}", contactHandler.Get).Methods("GET")
	r.HandleFunc("/contact/{id:[0-9]+}", contactHandler.Update).Methods("PUT", "PATCH")
	r.HandleFunc("/contact/{id:[0-9]+}", contactHandler.Delete).Methods("DELETE")

	// Services
	r.HandleFunc("/services", servicesHandler.List).Methods("GET")
	r.HandleFunc("/services", servicesHandler.Create).Methods("POST")
	r.HandleFunc("/services/{id:[0-9]+}", servicesHandler.Get).Methods("GET")
	r.HandleFunc("/services/{id:[0-9]+}", servicesHandler.Update).Methods("PUT", "PATCH")
	r.HandleFunc("/services/{id:[0-9]+}", servicesHandler.Delete).Methods("DELETE")

	// Team members
	r.HandleFunc("/team", teamHandler.List).Methods("GET")
	r.HandleFunc("/team", teamHandler.Create).Methods("POST")
	r.HandleFunc("/team/{id:[0-9]+}", teamHandler.Get).Methods("GET")
	r.HandleFunc("/team/{id:[0-9]+}", teamHandler.Update).Methods("PUT", "PATCH")
	r.HandleFunc("/team/{id:[0-9]+}", teamHandler.Delete).Methods("DELETE")

	// Jobs
	r.HandleFunc("/jobs", jobsHandler.List).Methods("GET")
	r.HandleFunc("/jobs", jobsHandler.Create).Methods("POST")
	r.HandleFunc("/jobs/{id:[0-9]+}", jobsHandler.Get).Methods("GET")
	r.HandleFunc("/jobs/{id:[0-9]+}", jobsHandler.Update).Methods("PUT", "PATCH")
	r.HandleFunc("/jobs/{id:[0-9]+}", jobsHandler.Delete).Methods("DELETE")

	// Job applications
	r.HandleFunc("/applications", limiter.Wrap(applicationsHandler.Create)).Methods("POST")
	r.HandleFunc("/applications", applicationsHandler.List).Methods("GET")
	r.HandleFunc("/applications/{id:[0-9]+}", applicationsHandler.Get).Methods("GET")
	r.HandleFunc("/applications/{id:[0-9]+}", applicationsHandler.Update).Methods("PUT", "PATCH")
	r.HandleFunc("/applications/{id:[0-9]+}/update_status", applicationsHandler.UpdateStatus).Methods("PATCH")
	r.HandleFunc("/applications/{id:[0-9]+}", applicationsHandler.Delete).Methods("DELETE")

	// User profiles
	r.HandleFunc("/profiles", profilesHandler.List).Methods("GET")
	r.HandleFunc("/profiles", profilesHandler.Create).Methods("POST")
	r.HandleFunc("/profiles/{id:[0-9]+}", profilesHandler.Get).Methods("GET")
	r.HandleFunc("/profiles/{id:[0-9]+}", profilesHandler.Update).Methods("PUT", "PATCH")
	r.HandleFunc("/profiles/{id:[0-9]+}", profilesHandler.Delete).Methods("DELETE")

	// Company info singleton
	r.HandleFunc("/company", companyHandler.List).Methods("GET")
	r.HandleFunc("/company", companyHandler.Create).Methods("POST")
	r.HandleFunc("/company/{id:[0-9]+}", companyHandler.Get).Methods("GET")
	r.HandleFunc("/company/{id:[0-9]+}", companyHandler.Update).Methods("PUT", "PATCH")

	// Users admin
	r.HandleFunc("/users", usersHandler.List).Methods("GET")
	r.HandleFunc("/users/{id:[0-9]+}", usersHandler.Get).Methods("GET")
	r.HandleFunc("/users/{id:[0-9]+}", usersHandler.Update).Methods("PUT", "PATCH")
	r.HandleFunc("/users/{id:[0-9]+}", usersHandler.Delete).Methods("DELETE")

	// Uploaded files
	r.PathPrefix("/media/").Handler(http.StripPrefix("/media/", http.FileServer(http.Dir(media.Root()))))

	return r
}
