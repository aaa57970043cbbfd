// Package view tracks the active view of each session and renders it.
package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"visitor-backend/internal/auth"
	"visitor-backend/internal/logging"
	"visitor-backend/internal/models"
	"visitor-backend/internal/navigation"
	"visitor-backend/internal/session"
)

// Renderer produces the data of one view for the session.
type Renderer func(ctx context.Context, sess *session.Session) (any, error)

type Page struct {
	View       string            `json:"view"`
	Requested  string            `json:"requested"`
	Navigation []navigation.Item `json:"navigation"`
	Data       any               `json:"data"`
}

type Router struct {
	sessions  session.Store
	renderers map[string]Renderer
}

func NewRouter(sessions session.Store, renderers map[string]Renderer) *Router {
	return &Router{sessions: sessions, renderers: renderers}
}

// SetView stores the requested view as is. Whether the role may open it
// is decided when rendering.
func (r *Router) SetView(ctx context.Context, sess *session.Session, viewID string) error {
	sess.ActiveView = viewID
	if err := r.sessions.Save(ctx, sess); err != nil {
		return fmt.Errorf("save active view: %w", err)
	}
	return nil
}

// Resolve returns activeView when role may open it and dashboard otherwise.
func Resolve(role models.UserRole, activeView string) string {
	if navigation.Known(activeView) && navigation.Permits(role, activeView) {
		return activeView
	}
	return navigation.ViewDashboard
}

func (r *Router) Render(ctx context.Context, sess *session.Session) (*Page, error) {
	resolved := Resolve(sess.Role, sess.ActiveView)
	page := &Page{
		View:       resolved,
		Requested:  sess.ActiveView,
		Navigation: navigation.For(sess.Role),
	}

	render, ok := r.renderers[resolved]
	if !ok {
		return page, nil
	}
	data, err := render(ctx, sess)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", resolved, err)
	}
	page.Data = data
	return page, nil
}

type SetViewRequest struct {
	View string `json:"view"`
}

// GET /api/view
func GetHandler(r *Router) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.CurrentSession(c)
		if err != nil {
			return err
		}
		page, err := r.Render(c.UserContext(), sess)
		if err != nil {
			logging.Error("Render view failed", zap.String("view", sess.ActiveView), zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "View could not be rendered")
		}
		return c.JSON(page)
	}
}

// PUT /api/view
func SetHandler(r *Router) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.CurrentSession(c)
		if err != nil {
			return err
		}

		var body SetViewRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		body.View = strings.TrimSpace(body.View)
		if body.View == "" {
			return fiber.NewError(fiber.StatusBadRequest, "view is required")
		}

		if err := r.SetView(c.UserContext(), sess, body.View); err != nil {
			logging.Error("Set view failed", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "View could not be changed")
		}

		page, err := r.Render(c.UserContext(), sess)
		if err != nil {
			logging.Error("Render view failed", zap.String("view", body.View), zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "View could not be rendered")
		}
		return c.JSON(page)
	}
}
