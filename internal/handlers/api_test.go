package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/invoice"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/storage"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/testutil"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testServer struct {
	app *fiber.App
	db  *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.NewDB(t)
	cfg := &config.Config{
		JWTSecret:        "handler-secret",
		JWTAccessExpiry:  time.Hour,
		JWTRefreshExpiry: 24 * time.Hour,
		CORSOrigins:      "*",
	}
	require.NoError(t, database.SeedAdmin(db, "admin", "admin122"))

	uploads, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	m := metrics.New()
	billing := repository.NewBilling(db)
	issuer := invoice.NewIssuer(billing)
	renderer := invoice.NewRenderer(billing, invoice.DefaultLayout())
	subs := services.NewSubscriptionService(db, billing, issuer, m)

	app := fiber.New()
	routes.Setup(app, cfg, db, m, routes.Handlers{
		Auth:         handlers.NewAuthHandler(services.NewAuthService(db, cfg)),
		Health:       handlers.NewHealthHandler(db),
		Player:       handlers.NewPlayerHandler(services.NewPlayerService(db)),
		Subscription: handlers.NewSubscriptionHandler(subs),
		Invoice:      handlers.NewInvoiceHandler(services.NewInvoiceService(renderer, m)),
		File:         handlers.NewFileHandler(services.NewFileService(db, uploads, m)),
		Dashboard:    handlers.NewDashboardHandler(services.NewDashboardService(db), services.NewAuditService(db)),
	})
	return &testServer{app: app, db: db}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *http.Response {
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
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	resp := s.do(t, fiber.MethodPost, "/api/login", "", dto.LoginRequest{Username: username, Password: password})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var auth dto.AuthResponse
	decode(t, resp, &auth)
	return auth.AccessToken
}

func (s *testServer) createPlayer(t *testing.T, token, name string) dto.PlayerResponse {
	t.Helper()
	resp := s.do(t, fiber.MethodPost, "/api/players", token, map[string]any{
		"full_name": name, "age": 14, "team": "U15",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var player dto.PlayerResponse
	decode(t, resp, &player)
	return player
}

func (s *testServer) createSubscription(t *testing.T, token string, playerID uint) dto.CreateSubscriptionResponse {
	t.Helper()
	resp := s.do(t, fiber.MethodPost, "/api/subscriptions", token, map[string]any{
		"player_id": playerID, "type": "monthly", "amount": "150.00",
		"start_date": "2024-03-01", "end_date": "2024-03-31",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created dto.CreateSubscriptionResponse
	decode(t, resp, &created)
	return created
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, fiber.MethodGet, "/api/health", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var health dto.HealthResponse
	decode(t, resp, &health)
	assert.Equal(t, "ok", health.DB)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, fiber.MethodPost, "/api/login", "", dto.LoginRequest{Username: "admin", Password: "admin122"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var auth dto.AuthResponse
	decode(t, resp, &auth)
	assert.True(t, auth.Success)
	assert.Equal(t, "admin", auth.Role)

	resp = s.do(t, fiber.MethodPost, "/api/login", "", dto.LoginRequest{Username: "admin", Password: "nope"})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	var failed dto.LoginFailedResponse
	decode(t, resp, &failed)
	assert.False(t, failed.Success)
	assert.Equal(t, "Invalid credentials", failed.Message)
}

func TestRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	for _, p := range []string{"/api/players", "/api/subscriptions", "/api/payments/1/invoice", "/api/dashboard/stats"} {
		resp := s.do(t, fiber.MethodGet, p, "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, p)
	}
}

func TestSubscriptionInvoiceDownload(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "admin", "admin122")
	player := s.createPlayer(t, token, "Ali Khan")

	created := s.createSubscription(t, token, player.ID)
	assert.True(t, created.Success)
	assert.Equal(t, created.Payment.ID, created.Subscription.LastPaymentID)
	assert.Regexp(t, `^INV-\d+-`+strconv.FormatUint(uint64(created.Subscription.ID), 10)+`$`, created.Payment.InvoiceNumber)

	resp := s.do(t, fiber.MethodGet, "/api/payments/"+strconv.FormatUint(uint64(created.Payment.ID), 10)+"/invoice", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Invoice_`+created.Payment.InvoiceNumber+`.pdf"`, resp.Header.Get("Content-Disposition"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp = s.do(t, fiber.MethodGet, "/api/subscriptions", token, nil)
	var subs []dto.SubscriptionResponse
	decode(t, resp, &subs)
	require.Len(t, subs, 1)
	assert.Equal(t, "Ali Khan", subs[0].PlayerName)
}

func TestInvoiceNotFound(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "admin", "admin122")

	resp := s.do(t, fiber.MethodGet, "/api/payments/999/invoice", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	player := s.createPlayer(t, token, "Ali Khan")
	created := s.createSubscription(t, token, player.ID)
	resp = s.do(t, fiber.MethodDelete, "/api/players/"+strconv.FormatUint(uint64(player.ID), 10), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = s.do(t, fiber.MethodGet, "/api/payments/"+strconv.FormatUint(uint64(created.Payment.ID), 10)+"/invoice", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreateSubscriptionErrors(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "admin", "admin122")
	player := s.createPlayer(t, token, "Ali Khan")

	resp := s.do(t, fiber.MethodPost, "/api/subscriptions", token, map[string]any{
		"player_id": player.ID, "type": "monthly", "amount": "abc",
		"start_date": "2024-03-01", "end_date": "2024-03-31",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = s.do(t, fiber.MethodPost, "/api/subscriptions", token, map[string]any{
		"player_id": 999, "type": "monthly", "amount": 10,
		"start_date": "2024-03-01", "end_date": "2024-03-31",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var count int64
	require.NoError(t, s.db.Model(&models.Payment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeletesRequireAdmin(t *testing.T) {
	s := newTestServer(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("coachpass"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, s.db.Create(&models.User{Username: "coach", PasswordHash: string(hash), Role: "coach"}).Error)

	adminToken := s.login(t, "admin", "admin122")
	coachToken := s.login(t, "coach", "coachpass")
	player := s.createPlayer(t, coachToken, "Ali Khan")
	id := strconv.FormatUint(uint64(player.ID), 10)

	resp := s.do(t, fiber.MethodDelete, "/api/players/"+id, coachToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp = s.do(t, fiber.MethodGet, "/api/audit-logs", coachToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = s.do(t, fiber.MethodDelete, "/api/players/"+id, adminToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = s.do(t, fiber.MethodGet, "/api/audit-logs", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var logs []models.AuditLog
	decode(t, resp, &logs)
	require.Len(t, logs, 2)
	assert.Equal(t, "Deleted player Ali Khan", logs[0].Action)
}

func TestFileUploadAndDownload(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "admin", "admin122")
	player := s.createPlayer(t, token, "Ali Khan")

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("player_id", strconv.FormatUint(uint64(player.ID), 10)))
	part, err := w.CreateFormFile("file", "birth certificate.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("certificate"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/api/files/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var file dto.FileResponse
	decode(t, resp, &file)
	assert.Equal(t, "pdf", file.FileType)

	resp = s.do(t, fiber.MethodGet, "/api/files/"+strconv.FormatUint(uint64(file.ID), 10)+"/download", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	content, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "certificate", string(content))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "birth_certificate.pdf")

	req = httptest.NewRequest(fiber.MethodPost, "/api/files/upload", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = s.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDashboardStats(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "admin", "admin122")
	player := s.createPlayer(t, token, "Ali Khan")
	s.createSubscription(t, token, player.ID)

	resp := s.do(t, fiber.MethodGet, "/api/dashboard/stats", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var stats dto.DashboardStats
	decode(t, resp, &stats)
	assert.Equal(t, int64(1), stats.PlayerCount)
	assert.Equal(t, int64(1), stats.ActiveSubscriptions)
	assert.InDelta(t, 150.0, stats.TotalRevenue, 0.001)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, fiber.MethodGet, "/metrics", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "academy_subscriptions_created_total")
}
