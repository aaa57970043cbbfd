package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"visitor-backend/internal/auth"
	"visitor-backend/internal/logging"
	"visitor-backend/internal/session"
)

var ErrEmptySheet = errors.New("spreadsheet has no rows")

type SkippedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	Created []string     `json:"created"`
	Skipped []SkippedRow `json:"skipped"`
}

// ReadSheet returns the rows of the first sheet of an xlsx workbook.
func ReadSheet(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}
	return rows, nil
}

func isHeader(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "name")
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// ImportResidents creates one resident per row of name, email and
// apartment. Rows that fail validation are skipped and reported. On a
// store failure the rows created so far are returned with the error.
func (s *Service) ImportResidents(ctx context.Context, actor *session.Session, rows [][]string) (*ImportResult, error) {
	res := &ImportResult{Created: []string{}, Skipped: []SkippedRow{}}

	start := 0
	if len(rows) > 0 && isHeader(rows[0]) {
		start = 1
	}

	for i := start; i < len(rows); i++ {
		row := rows[i]
		if strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}

		r, err := s.CreateResident(ctx, actor, CreateResidentRequest{
			Name:            cell(row, 0),
			Email:           cell(row, 1),
			ApartmentNumber: cell(row, 2),
		})
		if errors.Is(err, ErrInvalidInput) {
			res.Skipped = append(res.Skipped, SkippedRow{
				Row:    i + 1,
				Reason: strings.TrimPrefix(err.Error(), ErrInvalidInput.Error()+": "),
			})
			continue
		} else if err != nil {
			return res, fmt.Errorf("import row %d: %w", i+1, err)
		}
		res.Created = append(res.Created, r.UniqueID)
	}
	return res, nil
}

// POST /api/admin/residents/import (multipart, field "file")
func ImportResidentsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.CurrentSession(c)
		if err != nil {
			return err
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "File could not be uploaded")
		}
		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Only .xlsx files are accepted")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "File could not be opened")
		}
		defer file.Close()

		rows, err := ReadSheet(file)
		if errors.Is(err, ErrEmptySheet) {
			return fiber.NewError(fiber.StatusBadRequest, "Spreadsheet is empty")
		} else if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Spreadsheet could not be read")
		}

		res, err := svc.ImportResidents(c.UserContext(), actor, rows)
		if err != nil {
			logging.Error("Resident import failed",
				zap.Int("created", len(res.Created)),
				zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Residents could not be imported",
				"created": res.Created,
				"skipped": res.Skipped,
			})
		}
		logging.Info("Residents imported",
			zap.Int("created", len(res.Created)),
			zap.Int("skipped", len(res.Skipped)))
		return c.JSON(res)
	}
}
