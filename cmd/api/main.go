package main

import (
	"fmt"
	"net/http"

	"github.com/nominahr/nomina-backend-go/internal/config"
	appHTTP "github.com/nominahr/nomina-backend-go/internal/handler/http"
	"github.com/nominahr/nomina-backend-go/internal/pkg/database"
	"github.com/nominahr/nomina-backend-go/internal/pkg/jwt"
	"github.com/nominahr/nomina-backend-go/internal/pkg/periodlock"
	"github.com/nominahr/nomina-backend-go/internal/repository/postgresql"
	payrollService "github.com/nominahr/nomina-backend-go/internal/service/payroll"
	rulesService "github.com/nominahr/nomina-backend-go/internal/service/rules"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	periodRepo := postgresql.NewPeriodRepository(db)
	employmentRepo := postgresql.NewEmploymentRepository(db)
	rulesRepo := postgresql.NewRulesRepository(db)
	runRepo := postgresql.NewRunRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)
	txManager := postgresql.NewTxManager(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	registry := rulesService.NewRegistry(rulesRepo)
	rulesSvc := rulesService.NewRulesService(rulesRepo, registry)
	payrollSvc := payrollService.NewPayrollService(
		txManager,
		periodlock.New(),
		periodRepo,
		employmentRepo,
		runRepo,
		auditRepo,
		registry,
	)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	rulesHandler := appHTTP.NewRulesHandler(rulesSvc)

	router := appHTTP.NewRouter(
		JWTService,
		payrollHandler,
		rulesHandler,
		cfg.App.Env,
		cfg.App.AllowedOrigins,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
