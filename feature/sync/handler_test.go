package sync_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"fleet-console/core/database"
	"fleet-console/feature/sync"
	"fleet-console/feature/sync/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))

	app := fiber.New()
	feature := sync.NewFeature(db, nil, "", zap.NewNop(), sync.Config{})
	require.NoError(t, feature.Load(app))
	return app
}

func postSync(t *testing.T, app *fiber.App, body string) (*http.Response, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/sync", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, string(raw)
}

func TestHandleSync_SingleAgent(t *testing.T) {
	app := setupApp(t)

	resp, body := postSync(t, app, `{
		"agents": [
			{"name": "scout-1", "dept": "sales", "status": "running", "score": 91.5}
		]
	}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{
		"synced": {"agents": 1, "executions": 0, "tasks": 0, "notifications": 0},
		"errors": []
	}`, body)
}

func TestHandleSync_MixedOutcome(t *testing.T) {
	app := setupApp(t)

	resp, body := postSync(t, app, `{
		"agents": [
			{"name": "scout-1", "dept": "sales", "status": "running"}
		],
		"executions": [
			{"agentName": "ghost-1", "startedAt": "2026-08-30T10:00:00Z", "status": "success"}
		]
	}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{
		"synced": {"agents": 1, "executions": 0, "tasks": 0, "notifications": 0},
		"errors": ["Execution log error (ghost-1): Agent not found for execution: ghost-1"]
	}`, body)
}

func TestHandleSync_FullBatch(t *testing.T) {
	app := setupApp(t)

	resp, body := postSync(t, app, `{
		"agents": [
			{"name": "scout-1", "dept": "sales", "status": "running"}
		],
		"executions": [
			{"agentName": "scout-1", "startedAt": "2026-08-30T10:00:00Z", "status": "success", "tokensUsed": 1200, "model": "small"}
		],
		"tasks": [
			{"task": "qualify inbound leads", "priority": 2, "agentName": "scout-1"}
		],
		"notifications": [
			{"title": "Digest", "message": "daily digest ready", "type": "info"}
		]
	}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result models.BatchResult
	require.NoError(t, json.Unmarshal([]byte(body), &result))
	assert.Equal(t, models.SyncCounts{Agents: 1, Executions: 1, Tasks: 1, Notifications: 1}, result.Synced)
	assert.Empty(t, result.Errors)
}

func TestHandleSync_InvalidJSON(t *testing.T) {
	app := setupApp(t)

	resp, body := postSync(t, app, `{"agents": [`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"error": "invalid JSON payload"}`, body)
}

func TestHandleSync_EmptyBatch(t *testing.T) {
	app := setupApp(t)

	resp, body := postSync(t, app, `{}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{
		"synced": {"agents": 0, "executions": 0, "tasks": 0, "notifications": 0},
		"errors": []
	}`, body)
}

func TestHandleHealth(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/sync", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "ok", payload["status"])
	assert.NotEmpty(t, payload["timestamp"])
}
