package services

import (
	"testing"

	"mdt/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCasbinReloadAcrossInstances(t *testing.T) {
	f := newFixture(t)
	auditor := f.grade(t, "Auditeur", 50, models.Permissions{ViewAudit: true})

	routes := []models.PermissionInfo{
		{Path: "/api/mdt/audit-logs", Method: "GET", Capability: models.CapViewAudit},
		{Path: "/api/mdt/patrols/:id", Method: "GET", Capability: models.CapBase},
	}

	first := newInterCasbinService(f.c)
	second := newInterCasbinService(f.c)

	require.NoError(t, first.SyncRoutes(routes))
	require.NoError(t, first.SyncGrade(auditor))

	allowed := func(s InterCasbinService, path string) bool {
		t.Helper()
		ok, err := s.CheckPermission(auditor.ID, path, "GET")
		require.NoError(t, err)
		return ok
	}

	assert.True(t, allowed(first, "/api/mdt/audit-logs"))
	assert.True(t, allowed(second, "/api/mdt/audit-logs"))
	assert.True(t, allowed(second, "/api/mdt/patrols/pt-1"), "every grade holds base")

	auditor.Permissions.ViewAudit = false
	require.NoError(t, first.SyncGrade(auditor))
	assert.False(t, allowed(first, "/api/mdt/audit-logs"))

	require.NoError(t, second.ReloadPolicy())
	assert.False(t, allowed(second, "/api/mdt/audit-logs"))
	assert.True(t, allowed(second, "/api/mdt/patrols/pt-1"))
}
