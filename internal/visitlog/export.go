package visitlog

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"visitor-backend/internal/auth"
	"visitor-backend/internal/logging"
	"visitor-backend/internal/models"
)

const exportSheet = "History"

func cellValue(v models.VisitLog, key string) string {
	switch key {
	case colDate.Key:
		return v.Date
	case colTime.Key:
		return v.Time
	case colName.Key:
		return v.VisitorName
	case colContact.Key:
		return v.Contact
	case colResident.Key:
		return v.ResidentName
	case colPurpose.Key:
		return v.Purpose
	case colVerifiedBy.Key:
		return v.VerifiedBy
	case colStatus.Key:
		return string(v.Status)
	}
	return ""
}

// Export writes the history as a workbook using the role's columns.
// The actions column has no data and is left out.
func Export(h History) (*bytes.Buffer, error) {
	cols := make([]Column, 0, len(h.Columns))
	for _, c := range h.Columns {
		if c.Key != colActions.Key {
			cols = append(cols, c)
		}
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	header := make([]any, 0, len(cols))
	for _, c := range cols {
		header = append(header, c.Label)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, v := range h.Items {
		row := make([]any, 0, len(cols))
		for _, c := range cols {
			row = append(row, cellValue(v, c.Key))
		}
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, addr, &row); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

// GET /api/history/export?search=&status=&date=&purpose=
func ExportHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.CurrentSession(c)
		if err != nil {
			return err
		}

		h, err := svc.History(c.UserContext(), sess, Query{
			Search:  c.Query("search"),
			Status:  c.Query("status"),
			Date:    c.Query("date"),
			Purpose: c.Query("purpose"),
		})
		if err != nil {
			logging.Error("List visit history failed", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "Visit history could not be listed")
		}

		buf, err := Export(h)
		if err != nil {
			logging.Error("Export visit history failed", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "Visit history could not be exported")
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename="visit-history-%s.xlsx"`, time.Now().Format("20060102")))
		return c.Send(buf.Bytes())
	}
}
