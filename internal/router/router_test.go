package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"visitor-backend/internal/auth"
	"visitor-backend/internal/notify"
	"visitor-backend/internal/seed"
	"visitor-backend/internal/session"
	"visitor-backend/internal/store"
)

type testApp struct {
	app       *fiber.App
	publisher *notify.Recorder
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	dir, err := auth.NewDirectory(seed.Accounts(), bcrypt.MinCost)
	require.NoError(t, err)

	sessions := session.NewMemoryStore()
	authenticator := auth.NewAuthenticator(dir, sessions, auth.Options{
		Secret:   "0123456789abcdef0123456789abcdef",
		TokenTTL: time.Hour,
	})
	rec := &notify.Recorder{}
	app := New(Deps{
		Auth:        authenticator,
		Sessions:    sessions,
		Store:       store.NewMemory(store.SeedSnapshot()),
		Publisher:   rec,
		CORSOrigins: "*",
		VisitWindow: 4 * time.Hour,
	})
	return &testApp{app: app, publisher: rec}
}

func (ta *testApp) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func (ta *testApp) login(t *testing.T, email, password string) string {
	t.Helper()
	status, body := ta.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, status, body)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestGuardScanScenario(t *testing.T) {
	ta := newTestApp(t)
	token := ta.login(t, "guard001@example.com", "guard123")

	status, page := ta.do(t, http.MethodGet, "/api/view", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "dashboard", page["view"])

	status, page = ta.do(t, http.MethodPut, "/api/view", token, map[string]string{"view": "scan-code"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "scan-code", page["view"])

	status, res := ta.do(t, http.MethodPost, "/api/verify/code", token, map[string]string{"code": "VIS001"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, res["success"])
	visitor, _ := res["visitor"].(map[string]any)
	require.NotNil(t, visitor)
	assert.Equal(t, "Mike Johnson", visitor["name"])
	assert.Equal(t, "John Resident (A-101)", visitor["resident"])

	status, res = ta.do(t, http.MethodPost, "/api/verify/code", token, map[string]string{"code": "VIS999"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, res["success"])
	assert.Equal(t, "Invalid or expired visitor code", res["message"])
	assert.NotContains(t, res, "visitor")

	status, _ = ta.do(t, http.MethodPost, "/api/verify/otp", token, map[string]string{"otp": "12ab"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, page = ta.do(t, http.MethodGet, "/api/view", token, nil)
	require.Equal(t, http.StatusOK, status)
	data, _ := page["data"].(map[string]any)
	recent, _ := data["recent"].([]any)
	assert.Len(t, recent, 2)
}

func TestForbiddenViewRendersDashboard(t *testing.T) {
	ta := newTestApp(t)
	token := ta.login(t, "resident001@example.com", "resident123")

	status, page := ta.do(t, http.MethodPut, "/api/view", token, map[string]string{"view": "guards"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "dashboard", page["view"])
	assert.Equal(t, "guards", page["requested"])
}

func TestLoginResetsView(t *testing.T) {
	ta := newTestApp(t)
	token := ta.login(t, "admin@example.com", "admin123")

	status, _ := ta.do(t, http.MethodPut, "/api/view", token, map[string]string{"view": "history"})
	require.Equal(t, http.StatusOK, status)

	status, _ = ta.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusNoContent, status)

	status, _ = ta.do(t, http.MethodGet, "/api/view", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	token = ta.login(t, "admin@example.com", "admin123")
	status, page := ta.do(t, http.MethodGet, "/api/view", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "dashboard", page["view"])
}

func TestFailedLoginKeepsSession(t *testing.T) {
	ta := newTestApp(t)
	token := ta.login(t, "admin@example.com", "admin123")

	status, body := ta.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid email or password", body["error"])

	status, me := ta.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "admin", me["role"])
}

func TestRoleGates(t *testing.T) {
	ta := newTestApp(t)
	admin := ta.login(t, "admin@example.com", "admin123")
	guard := ta.login(t, "guard001@example.com", "guard123")
	resident := ta.login(t, "resident001@example.com", "resident123")

	cases := []struct {
		name   string
		token  string
		method string
		path   string
		want   int
	}{
		{"GuardOnGuards", guard, http.MethodGet, "/api/admin/guards", http.StatusForbidden},
		{"GuardOnInvites", guard, http.MethodGet, "/api/invites", http.StatusForbidden},
		{"GuardOnHistory", guard, http.MethodGet, "/api/history", http.StatusForbidden},
		{"ResidentOnResidents", resident, http.MethodGet, "/api/admin/residents", http.StatusForbidden},
		{"ResidentOnVerify", resident, http.MethodGet, "/api/verify/recent", http.StatusForbidden},
		{"AdminOnInvites", admin, http.MethodGet, "/api/invites", http.StatusForbidden},
		{"AdminOnVerify", admin, http.MethodGet, "/api/verify/recent", http.StatusForbidden},
		{"AdminOnGuards", admin, http.MethodGet, "/api/admin/guards", http.StatusOK},
		{"AdminOnAudit", admin, http.MethodGet, "/api/audit-logs", http.StatusOK},
		{"ResidentOnHistory", resident, http.MethodGet, "/api/history", http.StatusOK},
		{"NoToken", "", http.MethodGet, "/api/navigation", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, _ := ta.do(t, tc.method, tc.path, tc.token, nil)
			assert.Equal(t, tc.want, status)
		})
	}
}

func itemIDs(list map[string]any) []string {
	items, _ := list["items"].([]any)
	ids := make([]string, 0, len(items))
	for _, it := range items {
		m, _ := it.(map[string]any)
		id, _ := m["id"].(string)
		ids = append(ids, id)
	}
	return ids
}

func TestAdminGuardLifecycle(t *testing.T) {
	ta := newTestApp(t)
	token := ta.login(t, "admin@example.com", "admin123")

	status, created := ta.do(t, http.MethodPost, "/api/admin/guards", token, map[string]string{
		"name":           "New Guard",
		"email":          "new@example.com",
		"shift_schedule": "Night (10PM - 6AM)",
	})
	require.Equal(t, http.StatusCreated, status, created)
	assert.Equal(t, "GRD003", created["unique_id"])
	id, _ := created["id"].(string)

	status, list := ta.do(t, http.MethodGet, "/api/admin/guards?shift=night%20(10pm%20-%206am)", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), list["shown"])
	assert.Equal(t, float64(3), list["total"])

	status, body := ta.do(t, http.MethodPost, "/api/admin/guards", token, map[string]string{"name": "X"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, body["error"])

	status, _ = ta.do(t, http.MethodDelete, "/api/admin/guards/"+id, token, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, list = ta.do(t, http.MethodGet, "/api/admin/guards", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), list["total"])
	assert.NotContains(t, itemIDs(list), id)

	status, list = ta.do(t, http.MethodGet, "/api/admin/guards?search=new%20guard", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), list["shown"])
	assert.Empty(t, itemIDs(list))

	status, _ = ta.do(t, http.MethodDelete, "/api/admin/guards/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, created = ta.do(t, http.MethodPost, "/api/admin/guards", token, map[string]string{
		"name":           "Another Guard",
		"email":          "another@example.com",
		"shift_schedule": "Morning (6AM - 2PM)",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "GRD004", created["unique_id"])
}

func TestResidentInviteLifecycle(t *testing.T) {
	ta := newTestApp(t)
	john := ta.login(t, "resident001@example.com", "resident123")

	status, created := ta.do(t, http.MethodPost, "/api/invites", john, map[string]string{
		"visitor_name":  "Paul Green",
		"visitor_phone": "+15550001",
		"visit_date":    "2030-01-20",
		"visit_time":    "18:00",
		"purpose":       "Delivery",
	})
	require.Equal(t, http.StatusCreated, status, created)
	assert.Equal(t, "pending", created["status"])
	assert.Equal(t, true, created["cancellable"])
	assert.Contains(t, []any{"VIS003", "VIS004", "VIS005", "VIS006"}, created["code"])
	assert.Equal(t, "Paul Green", created["visitor_name"])
	assert.Equal(t, "+15550001", created["visitor_phone"])
	assert.Equal(t, "2030-01-20", created["visit_date"])
	assert.Equal(t, "18:00", created["visit_time"])
	id, _ := created["id"].(string)

	status, list := ta.do(t, http.MethodGet, "/api/invites?status=pending", john, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), list["shown"])
	stats, _ := list["stats"].(map[string]any)
	assert.Equal(t, float64(2), stats["pending"])

	status, cancelled := ta.do(t, http.MethodPost, "/api/invites/"+id+"/cancel", john, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "expired", cancelled["status"])
	assert.Equal(t, false, cancelled["cancellable"])

	status, _ = ta.do(t, http.MethodPost, "/api/invites/"+id+"/cancel", john, nil)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = ta.do(t, http.MethodPost, "/api/invites/missing/cancel", john, nil)
	assert.Equal(t, http.StatusNotFound, status)

	msgs := ta.publisher.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, notify.KeyInviteCreated, msgs[0].Key)
	assert.Equal(t, notify.KeyInviteCancelled, msgs[1].Key)

	admin := ta.login(t, "admin@example.com", "admin123")
	status, _ = ta.do(t, http.MethodGet, "/api/audit-logs?entity_type=invite", admin, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestNavigation(t *testing.T) {
	ta := newTestApp(t)
	token := ta.login(t, "guard001@example.com", "guard123")

	status, nav := ta.do(t, http.MethodGet, "/api/navigation", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "guard", nav["role"])
	items, _ := nav["items"].([]any)
	require.Len(t, items, 3)
	first, _ := items[0].(map[string]any)
	assert.Equal(t, "dashboard", first["id"])
}

func TestHistoryExport(t *testing.T) {
	ta := newTestApp(t)
	token := ta.login(t, "admin@example.com", "admin123")

	req := httptest.NewRequest(http.MethodGet, "/api/history/export?status=active", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "visit-history-")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("PK")))
}
