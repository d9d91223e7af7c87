package http

import (
	"net/http"

	"go-clinic-scheduling/internal/delivery/http/handler"
	"go-clinic-scheduling/internal/delivery/http/middleware"
	"go-clinic-scheduling/internal/domain/entity"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	doctorHandler       *handler.DoctorHandler
	appointmentHandler  *handler.AppointmentHandler
	availabilityHandler *handler.AvailabilityHandler
	holidayHandler      *handler.HolidayHandler
	ruleHandler         *handler.RuleHandler
	departmentHandler   *handler.DepartmentHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	doctorHandler *handler.DoctorHandler,
	appointmentHandler *handler.AppointmentHandler,
	availabilityHandler *handler.AvailabilityHandler,
	holidayHandler *handler.HolidayHandler,
	ruleHandler *handler.RuleHandler,
	departmentHandler *handler.DepartmentHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		doctorHandler:       doctorHandler,
		appointmentHandler:  appointmentHandler,
		availabilityHandler: availabilityHandler,
		holidayHandler:      holidayHandler,
		ruleHandler:         ruleHandler,
		departmentHandler:   departmentHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Authenticated routes (any role)
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	// Doctor directory and slot listing
	protected.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{doctorId}/slots", r.appointmentHandler.ListSlots).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{doctorId}/availabilities", r.availabilityHandler.GetByDoctor).Methods(http.MethodGet)
	protected.HandleFunc("/departments", r.departmentHandler.GetAll).Methods(http.MethodGet)
	protected.HandleFunc("/departments/{id}", r.departmentHandler.GetByID).Methods(http.MethodGet)

	// Appointments
	protected.HandleFunc("/appointments", r.appointmentHandler.ListAppointments).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.Cancel).Methods(http.MethodPost)

	// Booking and rescheduling (patient)
	patient := api.NewRoute().Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequireRole(entity.RoleIDPatient, entity.RoleIDAdmin))
	patient.HandleFunc("/appointments", r.appointmentHandler.Book).Methods(http.MethodPost)
	patient.HandleFunc("/appointments/{id}/reschedule", r.appointmentHandler.Reschedule).Methods(http.MethodPost)

	// Front-desk transitions (doctor or admin)
	frontdesk := api.NewRoute().Subrouter()
	frontdesk.Use(r.authMiddleware.Authenticate)
	frontdesk.Use(middleware.RequireAdminOrDoctor)
	frontdesk.HandleFunc("/appointments/{id}/check-in", r.appointmentHandler.CheckIn).Methods(http.MethodPost)
	frontdesk.HandleFunc("/appointments/{id}/complete", r.appointmentHandler.Complete).Methods(http.MethodPost)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// Availability management
	admin.HandleFunc("/availabilities", r.availabilityHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/availabilities/{id}", r.availabilityHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/availabilities/{id}", r.availabilityHandler.Deactivate).Methods(http.MethodDelete)

	// Holiday management
	admin.HandleFunc("/holidays", r.holidayHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/holidays", r.holidayHandler.GetAll).Methods(http.MethodGet)
	admin.HandleFunc("/holidays/{id}", r.holidayHandler.Delete).Methods(http.MethodDelete)

	// Booking rule management
	admin.HandleFunc("/rules", r.ruleHandler.Upsert).Methods(http.MethodPut)
	admin.HandleFunc("/rules", r.ruleHandler.GetAll).Methods(http.MethodGet)
	admin.HandleFunc("/rules/{departmentId}", r.ruleHandler.GetByDepartment).Methods(http.MethodGet)
	admin.HandleFunc("/rules/{departmentId}", r.ruleHandler.Delete).Methods(http.MethodDelete)

	// Department management
	admin.HandleFunc("/departments", r.departmentHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/departments/{id}", r.departmentHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/departments/{id}", r.departmentHandler.Delete).Methods(http.MethodDelete)

	// Audit trail
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
