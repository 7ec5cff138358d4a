package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hr-portal/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hr-portal/internal/handler/http/response"
	"github.com/cmlabs-hris/hr-portal/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Session  SessionHandler
	TimeOff  TimeOffHandler
	Employee EmployeeHandler
	Holiday  HolidayHandler
	Report   ReportHandler
}

type RouterOptions struct {
	AllowedOrigins []string
	Logger         *slog.Logger
	LogLevel       slog.Level
}

func NewRouter(JWTService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.CSRFHeader},
		ExposedHeaders:   []string{"Link", "Content-Disposition", "X-Export-Rows", "X-Export-Truncated"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)
			r.Use(middleware.CSRFProtect)

			r.Get("/session", h.Session.Current)

			r.Route("/time-off", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionTimeOffViewOwn)).Get("/balance", h.TimeOff.Balance)
				r.With(middleware.RequirePermission(user.PermissionTimeOffCreate)).Get("/preview", h.TimeOff.Preview)
				r.With(middleware.RequirePermission(user.PermissionTimeOffViewOwn)).Get("/my-requests", h.TimeOff.MyRequests)

				// Permissions are checked per action by the service
				r.Post("/actions", h.TimeOff.Actions)

				r.Route("/requests", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionTimeOffCreate)).Post("/", h.TimeOff.Submit)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionTimeOffViewAll))
						r.Get("/", h.TimeOff.ListRequests)
						r.Get("/pending", h.TimeOff.ListPending)
					})

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionTimeOffApprove))
						r.Post("/bulk-approve", h.TimeOff.BulkApprove)
						r.Post("/{id}/approve", h.TimeOff.Approve)
						r.Post("/{id}/reject", h.TimeOff.Reject)
					})

					r.With(middleware.RequirePermission(user.PermissionTimeOffViewOwn)).Get("/{id}", h.TimeOff.GetRequest)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeViewAll))
					r.Get("/", h.Employee.ListEmployees)
					r.Get("/departments", h.Employee.ListDepartments)
				})
				r.With(middleware.RequirePermission(user.PermissionEmployeeManage)).Post("/", h.Employee.CreateEmployee)

				r.Route("/{id}", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionViewOwnProfile)).Get("/", h.Employee.GetEmployee)
					r.With(middleware.RequirePermission(user.PermissionTimeOffViewOwn)).Get("/balance", h.Employee.GetBalance)
					r.With(middleware.RequirePermission(user.PermissionTimeOffViewOwn)).Get("/allowances", h.Employee.ListAllowances)
					r.With(middleware.RequirePermission(user.PermissionAllowancesManage)).Put("/allowances", h.Employee.SetAllowance)
				})
			})

			r.Route("/holidays", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionHolidayView)).Get("/", h.Holiday.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionHolidayManage))
					r.Post("/", h.Holiday.Create)
					r.Delete("/{id}", h.Holiday.Delete)
				})
			})

			r.Route("/reports/time-off", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportsView))
				r.Get("/summary", h.Report.GetTimeOffSummary)
				r.Get("/balances", h.Report.GetLeaveBalanceReport)
				r.Get("/export", h.Report.ExportTimeOffRequests)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r
}
