package audit

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"visitor-backend/internal/logging"
	"visitor-backend/internal/models"
)

type AuditLogResponse struct {
	ID          string             `json:"id"`
	CreatedAt   string             `json:"created_at"`
	UserID      string             `json:"user_id"`
	UserName    string             `json:"user_name"`
	EntityType  string             `json:"entity_type"`
	EntityID    string             `json:"entity_id"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
}

// GET /api/audit-logs?entity_type=guard&entity_id=...&user_id=1
func ListAuditLogsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		logs, err := svc.List(c.UserContext(), ListFilter{
			EntityType: c.Query("entity_type"),
			EntityID:   c.Query("entity_id"),
			UserID:     c.Query("user_id"),
		})
		if err != nil {
			logging.Error("List audit logs failed", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "Audit logs could not be listed")
		}

		resp := make([]AuditLogResponse, 0, len(logs))
		for _, log := range logs {
			resp = append(resp, AuditLogResponse{
				ID:          log.ID,
				CreatedAt:   log.CreatedAt.Format("2006-01-02 15:04:05"),
				UserID:      log.UserID,
				UserName:    log.UserName,
				EntityType:  log.EntityType,
				EntityID:    log.EntityID,
				Action:      log.Action,
				Description: log.Description,
			})
		}

		return c.JSON(resp)
	}
}
