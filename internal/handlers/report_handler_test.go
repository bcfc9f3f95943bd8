package handlers_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vacatio/backend/internal/models"
)

func TestReportRequiresAdmin(t *testing.T) {
	env := setupTestEnv(t)
	_, userToken := env.seedUser(t, "user@example.com", "secret1", models.RoleUser)

	rec := env.doJSON(t, http.MethodGet, "/api/vacations/report", userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.doJSON(t, http.MethodGet, "/api/vacations/csv", userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestReportCountsAndOrder(t *testing.T) {
	env := setupTestEnv(t)
	_, adminToken := env.seedUser(t, "admin@example.com", "secret1", models.RoleAdmin)
	_, userToken := env.seedUser(t, "user@example.com", "secret1", models.RoleUser)

	fields := validVacationFields(1, 5)
	fields["destination"] = "Vienna"
	vienna := createVacationViaAPI(t, env, adminToken, fields)

	fields = validVacationFields(1, 5)
	fields["destination"] = "Athens"
	createVacationViaAPI(t, env, adminToken, fields)

	rec := env.doJSON(t, http.MethodPost, "/api/vacations/"+vienna.ID+"/follow", userToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSON(t, http.MethodGet, "/api/vacations/report", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []models.ReportRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Athens", rows[0].Destination)
	assert.EqualValues(t, 0, rows[0].FollowersCount)
	assert.Equal(t, "Vienna", rows[1].Destination)
	assert.EqualValues(t, 1, rows[1].FollowersCount)
}

func TestCSVDownload(t *testing.T) {
	env := setupTestEnv(t)
	_, adminToken := env.seedUser(t, "admin@example.com", "secret1", models.RoleAdmin)

	fields := validVacationFields(1, 5)
	fields["destination"] = "Berlin"
	createVacationViaAPI(t, env, adminToken, fields)

	rec := env.doJSON(t, http.MethodGet, "/api/vacations/csv", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Destination,Followers", strings.TrimSpace(lines[0]))
	assert.Equal(t, "Berlin,0", strings.TrimSpace(lines[1]))
}
