package http

import (
	"net/http"

	"borewell-booking/internal/delivery/http/handler"
	"borewell-booking/internal/delivery/http/middleware"
	"borewell-booking/pkg/response"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	healthHandler      *handler.HealthHandler
	bookingHandler     *handler.BookingHandler
	auditLogHandler    *handler.AuditLogHandler
	corsMiddleware     *middleware.CORSMiddleware
	loggingMiddleware  *middleware.LoggingMiddleware
	recoveryMiddleware *middleware.RecoveryMiddleware
}

func NewRouter(
	healthHandler *handler.HealthHandler,
	bookingHandler *handler.BookingHandler,
	auditLogHandler *handler.AuditLogHandler,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	recoveryMiddleware *middleware.RecoveryMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		healthHandler:      healthHandler,
		bookingHandler:     bookingHandler,
		auditLogHandler:    auditLogHandler,
		corsMiddleware:     corsMiddleware,
		loggingMiddleware:  loggingMiddleware,
		recoveryMiddleware: recoveryMiddleware,
	}
}

// Setup registers every route. Middleware wraps the whole router so that
// preflight requests and unknown routes are covered too.
func (r *Router) Setup() http.Handler {
	api := r.router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthHandler.Check).Methods(http.MethodGet)

	// Bookings
	api.HandleFunc("/bookings", r.bookingHandler.CreateBooking).Methods(http.MethodPost)
	api.HandleFunc("/bookings", r.bookingHandler.GetAllBookings).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}", r.bookingHandler.GetBooking).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}/status", r.bookingHandler.UpdateBookingStatus).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{id}/history", r.auditLogHandler.GetBookingHistory).Methods(http.MethodGet)

	// Audit trail
	api.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	api.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	r.router.NotFoundHandler = http.HandlerFunc(routeNotFound)
	r.router.MethodNotAllowedHandler = http.HandlerFunc(routeNotFound)

	return r.loggingMiddleware.Handle(
		r.recoveryMiddleware.Handle(
			r.corsMiddleware.Handle(r.router),
		),
	)
}

func routeNotFound(w http.ResponseWriter, req *http.Request) {
	response.NotFound(w, "Route not found")
}
