package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/nominahr/nomina-backend-go/internal/handler/http/middleware"
	"github.com/nominahr/nomina-backend-go/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	payrollHandler PayrollHandler,
	rulesHandler RulesHandler,
	env string,
	allowedOrigins []string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "nomina-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
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

	r.Route("/api/v1/payroll", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
		r.Use(middleware.RequireOrganization)

		r.Route("/periods", func(r chi.Router) {
			r.Post("/", payrollHandler.CreatePeriod)
			r.Get("/", payrollHandler.ListPeriods)
			r.Route("/{periodID}", func(r chi.Router) {
				r.Get("/runs", payrollHandler.ListPeriodRuns)
				r.Get("/runs/current", payrollHandler.GetCurrentRun)
			})
		})

		r.Route("/runs", func(r chi.Router) {
			r.Post("/", payrollHandler.ExecuteRun)
			r.Route("/{runID}", func(r chi.Router) {
				r.Get("/", payrollHandler.GetRun)
				r.Post("/finalize", payrollHandler.FinalizeRun)
				r.Get("/payslips", payrollHandler.ListRunPayslips)
				r.Get("/events", payrollHandler.ListRunEvents)
			})
		})

		r.Route("/rules", func(r chi.Router) {
			r.Post("/", rulesHandler.CreateRules)
			r.Get("/resolve", rulesHandler.ResolveRules)
		})
	})

	return r
}
