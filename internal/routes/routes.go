package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"PROFILEHUB_BACK-END/internal/handlers"
)

// SetupRoutes configures all application routes
func SetupRoutes(mux *http.ServeMux, profileHandler *handlers.ProfileHandler, emailHandler *handlers.EmailValidationHandler, healthHandler *handlers.HealthHandler) {
	// Health check routes
	mux.HandleFunc("/healthz", healthHandler.HealthCheck)
	mux.HandleFunc("/livez", healthHandler.LivenessCheck)
	mux.HandleFunc("/readyz", healthHandler.ReadinessCheck)

	// Profile routes; the literal /profiles/recent pattern takes precedence
	// over the {id} wildcard.
	mux.HandleFunc("GET /profiles", profileHandler.List)
	mux.HandleFunc("GET /profiles/recent", profileHandler.GetRecent)
	mux.HandleFunc("GET /profiles/{id}", profileHandler.GetByID)
	mux.HandleFunc("POST /profiles", profileHandler.Create)
	mux.HandleFunc("PUT /profiles/{id}", profileHandler.Update)
	mux.HandleFunc("DELETE /profiles/{id}", profileHandler.Delete)

	// Email deliverability check used by the form UI
	mux.HandleFunc("POST /api/validate-email", emailHandler.ValidateEmail)

	// API documentation
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Root route
	mux.HandleFunc("GET /{$}", rootHandler)
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"message":"Profile API is running successfully!"}`))
}
