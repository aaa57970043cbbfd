package visitlog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"visitor-backend/internal/models"
	"visitor-backend/internal/session"
	"visitor-backend/internal/store"
)

func TestExport(t *testing.T) {
	svc := NewService(store.NewMemory(store.SeedSnapshot()))
	h, err := svc.History(context.Background(), &session.Session{UserID: "3", Role: models.RoleResident}, Query{Purpose: "delivery"})
	require.NoError(t, err)

	buf, err := Export(h)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Date", "Time", "Name", "Contact Info", "Purpose", "Status"}, rows[0])
	assert.Equal(t, []string{"2025-02-02", "21:00:03", "Mike Wilson", "070462416738", "Delivery", "Active"}, rows[1])
}

func TestExportAdminSkipsActions(t *testing.T) {
	h := History{Columns: Columns(models.RoleAdmin)}
	buf, err := Export(h)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.NotContains(t, rows[0], "Actions")
	assert.Contains(t, rows[0], "Verified By")
}
