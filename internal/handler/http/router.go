package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/partflow/partflow-backend-go/internal/config"
	"github.com/partflow/partflow-backend-go/internal/domain/user"
	"github.com/partflow/partflow-backend-go/internal/handler/http/middleware"
	"github.com/partflow/partflow-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth         AuthHandler
	Me           MeHandler
	Invitation   InvitationHandler
	PM           PMHandler
	Mobile       MobileHandler
	Supplier     SupplierHandler
	Company      CompanyHandler
	Notification NotificationHandler
}

func NewRouter(cfg config.AppConfig, jwtService jwt.Service, userRepo user.UserRepository, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "partflow-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
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

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/verify-email", h.Auth.VerifyEmail)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// The SSE stream authenticates via a short-lived token in the query
		// string, so it sits outside the JWT verifier.
		r.Get("/notifications/stream", h.Notification.Stream)

		r.Route("/invitations", func(r chi.Router) {
			// Public: invitees follow the emailed link before logging in.
			r.Get("/{token}", h.Invitation.GetByToken)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

				r.Post("/{token}/accept", h.Invitation.Accept)
				r.Post("/{token}/reject", h.Invitation.Reject)
				r.Get("/my", h.Invitation.ListMy)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/me", func(r chi.Router) {
				r.Get("/", h.Me.Profile)
				r.Get("/permissions", h.Me.Permissions)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Post("/read", h.Notification.MarkAsRead)
				r.Post("/read-all", h.Notification.MarkAllAsRead)
				r.Get("/sse-token", h.Notification.GetSSEToken)
			})

			// Project manager surface
			r.Route("/pm", func(r chi.Router) {
				r.Use(middleware.RequireSurface(user.RoleProjectManager, user.RoleAdmin))

				r.Route("/invitations", func(r chi.Router) {
					r.Get("/", h.PM.ListInvitations)
					r.Post("/", h.PM.IssueInvitation)
					r.Post("/{id}/resend", h.PM.ResendInvitation)
					r.Post("/{id}/cancel", h.PM.CancelInvitation)
				})

				r.Route("/tradies", func(r chi.Router) {
					r.Get("/", h.PM.ListTradies)
					r.Post("/{id}/revoke", h.PM.RevokeTradie)
				})

				r.Get("/company", h.PM.GetCompany)

				// Admin only
				r.Route("/companies", func(r chi.Router) {
					r.Use(middleware.RequireSurface(user.RoleAdmin))
					r.Get("/", h.Company.List)
					r.Post("/", h.Company.Create)
					r.Get("/{id}", h.Company.GetByID)
				})
			})

			// Supplier surface
			r.Route("/supplier", func(r chi.Router) {
				r.Use(middleware.RequireSurface(user.RoleSupplier, user.RoleAdmin))

				r.Get("/company", h.Supplier.GetCompany)
				r.Get("/companies", h.Supplier.ListCompanies)
				r.Get("/catalog", h.Supplier.Catalog)
			})

			// Tradie surface
			r.Route("/mobile", func(r chi.Router) {
				r.Use(middleware.RequireSurface(user.RoleTradie))
				r.Use(middleware.TradieApprovalGate(userRepo, "/api/v1/mobile"))

				r.Get("/home", h.Mobile.Home)
				r.Get("/account", h.Mobile.Account)
				r.Get("/parts", h.Mobile.Parts)
				r.Get("/parts/popular", h.Mobile.PopularParts)
				r.Get("/search", h.Mobile.Search)
				r.Get("/pending-approval", h.Mobile.PendingApproval)

				// Approved members only, via the gate above
				r.Get("/cart", h.Mobile.Cart)
				r.Get("/orders", h.Mobile.Orders)
				r.Get("/jobs", h.Mobile.Jobs)
				r.Get("/favorites", h.Mobile.Favorites)
			})
		})
	})
	return r
}
