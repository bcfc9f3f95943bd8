package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vacatio/backend/internal/models"
)

func TestFollowStorageFailureIsNotConflict(t *testing.T) {
	env := setupTestEnv(t)
	_, adminToken := env.seedUser(t, "admin@example.com", "secret1", models.RoleAdmin)
	_, userToken := env.seedUser(t, "user@example.com", "secret1", models.RoleUser)

	created := createVacationViaAPI(t, env, adminToken, validVacationFields(3, 8))

	// Break inserts with an error that is not a duplicate key, so a real
	// storage failure must not masquerade as "already following"
	require.NoError(t, env.db.Exec(
		"CREATE TRIGGER followers_offline BEFORE INSERT ON followers BEGIN SELECT RAISE(ABORT, 'followers offline'); END",
	).Error)

	rec := env.doJSON(t, http.MethodPost, "/api/vacations/"+created.ID+"/follow", userToken, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Server error following vacation", errorMessage(t, rec))
}
