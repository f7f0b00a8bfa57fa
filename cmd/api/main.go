package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/partflow/partflow-backend-go/internal/config"
	appHTTP "github.com/partflow/partflow-backend-go/internal/handler/http"
	"github.com/partflow/partflow-backend-go/internal/pkg/cron"
	"github.com/partflow/partflow-backend-go/internal/pkg/database"
	"github.com/partflow/partflow-backend-go/internal/pkg/email"
	"github.com/partflow/partflow-backend-go/internal/pkg/jwt"
	"github.com/partflow/partflow-backend-go/internal/pkg/sse"
	"github.com/partflow/partflow-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/partflow/partflow-backend-go/internal/service/auth"
	serviceCompany "github.com/partflow/partflow-backend-go/internal/service/company"
	serviceInvitation "github.com/partflow/partflow-backend-go/internal/service/invitation"
	serviceMembership "github.com/partflow/partflow-backend-go/internal/service/membership"
	serviceNotification "github.com/partflow/partflow-backend-go/internal/service/notification"
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
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	invitationRepo := postgresql.NewInvitationRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	hub := sse.NewHub()
	notificationService := serviceNotification.NewNotificationService(notificationRepo, hub, cfg.Notification)
	defer notificationService.Stop()

	authService := serviceAuth.NewAuthService(db, userRepo, jwtService, jwtRepo)
	companyService := serviceCompany.NewCompanyService(companyRepo)
	invitationService := serviceInvitation.NewInvitationService(
		db,
		invitationRepo,
		userRepo,
		notificationService,
		emailService,
		cfg.Invitation,
	)
	membershipService := serviceMembership.NewMembershipService(db, userRepo, notificationService)

	sweeper := cron.NewSessionSweeper(db)
	sweeper.Start()
	defer sweeper.Stop()

	router := appHTTP.NewRouter(cfg.App, jwtService, userRepo, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(jwtService, authService),
		Me:           appHTTP.NewMeHandler(authService, userRepo),
		Invitation:   appHTTP.NewInvitationHandler(invitationService),
		PM:           appHTTP.NewPMHandler(invitationService, membershipService, companyService, userRepo),
		Mobile:       appHTTP.NewMobileHandler(authService, invitationService, userRepo),
		Supplier:     appHTTP.NewSupplierHandler(companyService, userRepo),
		Company:      appHTTP.NewCompanyHandler(companyService),
		Notification: appHTTP.NewNotificationHandler(notificationService, jwtService),
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: addr, Handler: router}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("Forced shutdown:", err)
	}
}
