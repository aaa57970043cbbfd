// Package router assembles the HTTP application.
package router

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"visitor-backend/internal/admin"
	"visitor-backend/internal/audit"
	"visitor-backend/internal/auth"
	"visitor-backend/internal/dashboard"
	"visitor-backend/internal/invite"
	"visitor-backend/internal/logging"
	"visitor-backend/internal/middleware"
	"visitor-backend/internal/models"
	"visitor-backend/internal/navigation"
	"visitor-backend/internal/notify"
	"visitor-backend/internal/session"
	"visitor-backend/internal/store"
	"visitor-backend/internal/verify"
	"visitor-backend/internal/view"
	"visitor-backend/internal/visitlog"
)

type Deps struct {
	Auth        *auth.Authenticator
	Sessions    session.Store
	Store       store.Store
	Publisher   notify.Publisher
	CORSOrigins string
	VisitWindow time.Duration
}

func errorHandler(c *fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
		})
	}
	logging.Error("Unexpected error", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Unexpected server error",
	})
}

func New(d Deps) *fiber.App {
	if d.Publisher == nil {
		d.Publisher = notify.Nop{}
	}

	auditSvc := audit.NewService(d.Store)
	adminSvc := admin.NewService(d.Store, auditSvc)
	inviteSvc := invite.NewService(d.Store, auditSvc, d.Publisher)
	verifySvc := verify.NewService(d.Store, verify.NewRecent(), d.VisitWindow)
	visitSvc := visitlog.NewService(d.Store)
	dashSvc := dashboard.NewService(d.Store, inviteSvc, visitSvc)
	views := view.NewRouter(d.Sessions, renderers(adminSvc, inviteSvc, verifySvc, visitSvc, dashSvc))

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: d.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/login", auth.LoginHandler(d.Auth))

	// Protected
	protected := api.Group("")
	protected.Use(auth.SessionMiddleware(d.Auth))

	protected.Post("/auth/logout", auth.LogoutHandler(d.Auth))
	protected.Get("/auth/me", auth.MeHandler())
	protected.Get("/navigation", navigation.Handler(auth.CurrentRole))
	protected.Get("/view", view.GetHandler(views))
	protected.Put("/view", view.SetHandler(views))
	protected.Get("/dashboard", dashboard.Handler(dashSvc))

	// Admin
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	adminRoutes.Get("/guards", admin.ListGuardsHandler(adminSvc))
	adminRoutes.Post("/guards", admin.CreateGuardHandler(adminSvc))
	adminRoutes.Delete("/guards/:id", admin.DeleteGuardHandler(adminSvc))
	adminRoutes.Get("/residents", admin.ListResidentsHandler(adminSvc))
	adminRoutes.Post("/residents", admin.CreateResidentHandler(adminSvc))
	adminRoutes.Post("/residents/import", admin.ImportResidentsHandler(adminSvc))
	adminRoutes.Delete("/residents/:id", admin.DeleteResidentHandler(adminSvc))

	protected.Get("/audit-logs", auth.RequireRole(models.RoleAdmin), audit.ListAuditLogsHandler(auditSvc))

	// Resident
	invites := protected.Group("/invites")
	invites.Use(auth.RequireRole(models.RoleResident))

	invites.Get("/", invite.ListInvitesHandler(inviteSvc))
	invites.Post("/", invite.CreateInviteHandler(inviteSvc))
	invites.Post("/:id/cancel", invite.CancelInviteHandler(inviteSvc))

	// Guard
	verifyRoutes := protected.Group("/verify")
	verifyRoutes.Use(auth.RequireRole(models.RoleGuard))

	verifyRoutes.Post("/code", verify.VerifyCodeHandler(verifySvc))
	verifyRoutes.Post("/otp", verify.VerifyOTPHandler(verifySvc))
	verifyRoutes.Get("/recent", verify.RecentHandler(verifySvc))

	history := protected.Group("/history")
	history.Use(auth.RequireRole(models.RoleAdmin, models.RoleResident))

	history.Get("/", visitlog.HistoryHandler(visitSvc))
	history.Get("/export", visitlog.ExportHandler(visitSvc))

	return app
}

func renderers(
	adminSvc *admin.Service,
	inviteSvc *invite.Service,
	verifySvc *verify.Service,
	visitSvc *visitlog.Service,
	dashSvc *dashboard.Service,
) map[string]view.Renderer {
	return map[string]view.Renderer{
		navigation.ViewDashboard: func(ctx context.Context, s *session.Session) (any, error) {
			return dashSvc.Summary(ctx, s)
		},
		navigation.ViewGuards: func(ctx context.Context, _ *session.Session) (any, error) {
			return adminSvc.ListGuards(ctx, admin.GuardQuery{})
		},
		navigation.ViewResidents: func(ctx context.Context, _ *session.Session) (any, error) {
			return adminSvc.ListResidents(ctx, admin.ResidentQuery{})
		},
		navigation.ViewHistory: func(ctx context.Context, s *session.Session) (any, error) {
			return visitSvc.History(ctx, s, visitlog.Query{})
		},
		navigation.ViewScanCode: func(_ context.Context, s *session.Session) (any, error) {
			return fiber.Map{"recent": verifySvc.Recent().List(s.UserID, verify.MethodCode)}, nil
		},
		navigation.ViewVerifyOTP: func(_ context.Context, s *session.Session) (any, error) {
			return fiber.Map{"recent": verifySvc.Recent().List(s.UserID, verify.MethodOTP)}, nil
		},
		navigation.ViewInviteVisitor: func(context.Context, *session.Session) (any, error) {
			return fiber.Map{"purposes": models.VisitPurposes}, nil
		},
		navigation.ViewMyInvites: func(ctx context.Context, s *session.Session) (any, error) {
			return inviteSvc.List(ctx, s.UserID, invite.Query{})
		},
	}
}
