package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/attendance-policy-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-policy-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	env string,
	allowedOrigins []string,
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	latenessHandler LatenessHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-policy"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Post("/punches", attendanceHandler.RecordPunch)

			r.Route("/attendances", func(r chi.Router) {
				r.Get("/my", attendanceHandler.GetMyAttendance)
				r.Get("/{id}", attendanceHandler.Get)

				// Approver only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireApprover)
					r.Get("/", attendanceHandler.List)
				})
			})

			r.Route("/late-applications", func(r chi.Router) {
				r.Post("/", latenessHandler.Apply)
				r.Get("/my", latenessHandler.GetMyApplications)

				// Approver only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireApprover)
					r.Post("/{id}/approve", latenessHandler.Approve)
					r.Post("/{id}/reject", latenessHandler.Reject)
				})
			})

			r.Get("/late-reports", latenessHandler.MonthlyReport)

			r.Route("/late-settings", func(r chi.Router) {
				r.Get("/", latenessHandler.GetSettings)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Put("/", latenessHandler.UpdateSettings)
				})
			})
		})
	})

	return r
}
