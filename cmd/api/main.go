package main

import (
	"fmt"
	"net/http"

	"github.com/cordia-hr/leave-planner-go/internal/config"
	appHTTP "github.com/cordia-hr/leave-planner-go/internal/handler/http"
	"github.com/cordia-hr/leave-planner-go/internal/pkg/database"
	"github.com/cordia-hr/leave-planner-go/internal/pkg/jwt"
	"github.com/cordia-hr/leave-planner-go/internal/repository/postgresql"
	serviceAuth "github.com/cordia-hr/leave-planner-go/internal/service/auth"
	serviceLeave "github.com/cordia-hr/leave-planner-go/internal/service/leave"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveQuotaRepo := postgresql.NewLeaveQuotaRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	authService := serviceAuth.NewAuthService(userRepo, jwtService)
	txManager := postgresql.NewTxManager(db)
	bulkService := serviceLeave.NewBulkService(txManager, leaveTypeRepo, leaveQuotaRepo, leaveRequestRepo, holidayRepo, userRepo)

	authHandler := appHTTP.NewAuthHandler(jwtService, authService)
	leaveHandler := appHTTP.NewLeaveHandler(bulkService)

	router := appHTTP.NewRouter(jwtService, authHandler, leaveHandler, cfg.App.FrontendURL, cfg.App.Env)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
