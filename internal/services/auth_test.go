package services

import (
	"testing"
	"time"

	"mdt/internal/cache"
	"mdt/internal/global"
	"mdt/internal/models"
	"mdt/internal/types"
	"mdt/pkg/apperr"
	"mdt/pkg/tools"

	"github.com/go-redis/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	revoked map[string]string
}

func (m *memoryCache) Client() *redis.Client            { return nil }
func (m *memoryCache) Session() cache.InterSessionCache { return m }

func (m *memoryCache) Revoke(tokenId, officerId string, ttl time.Duration) error {
	if ttl > 0 {
		m.revoked[tokenId] = officerId
	}
	return nil
}

func (m *memoryCache) IsRevoked(tokenId string) (bool, error) {
	_, ok := m.revoked[tokenId]
	return ok, nil
}

func TestAuthLoginLogout(t *testing.T) {
	f := newFixture(t)
	mem := &memoryCache{revoked: map[string]string{}}
	f.c.Redis = mem
	f.now = time.Now()
	global.Config.Jwt.Secret = "test-secret"
	global.Config.Jwt.ExpireHours = 1

	auth := newInterAuthService(f.c)

	hashed, err := tools.HashPassword("correct horse")
	require.NoError(t, err)
	o := models.Officer{
		ID:       tools.NewId("of"),
		Username: "miller",
		Password: hashed,
		GradeId:  f.lieutenant.ID,
		Active:   tools.BoolPtr(true),
	}
	require.NoError(t, f.c.DB.Officer().Create(o))

	_, err = call(auth.Login, &types.RequestLogin{Username: "miller", Password: "wrong password"})
	requireCode(t, err, apperr.ErrBadCredentials)

	_, err = call(auth.Login, &types.RequestLogin{Username: "nobody", Password: "correct horse"})
	requireCode(t, err, apperr.ErrBadCredentials)

	data, err := call(auth.Login, &types.RequestLogin{Username: "miller", Password: "correct horse"})
	require.NoError(t, err)
	login := data.(types.ResponseLogin)
	assert.Equal(t, o.ID, login.Profile.Officer.ID)
	assert.Contains(t, login.Profile.Capabilities, models.CapManagePatrols)
	assert.NotContains(t, login.Profile.Capabilities, models.CapViewAudit)

	stored, err := f.c.DB.Officer().Get(o.ID)
	require.NoError(t, err)
	assert.Equal(t, f.now.Unix(), stored.LastLoginAt)

	claims, err := tools.ParseToken(global.SignKey(), login.Token)
	require.NoError(t, err)
	assert.Equal(t, o.ID, claims.OfficerId)

	_, err = call(auth.Logout, &types.RequestLogout{OfficerId: o.ID, TokenId: claims.Id, ExpiresAt: claims.ExpiresAt})
	require.NoError(t, err)
	revoked, err := mem.IsRevoked(claims.Id)
	require.NoError(t, err)
	assert.True(t, revoked)

	t.Run("change password", func(t *testing.T) {
		_, err := call(auth.ChangePassword, &types.RequestChangePassword{OfficerId: o.ID, OldPassword: "nope", NewPassword: "brand new pass"})
		requireCode(t, err, apperr.ErrBadCredentials)

		_, err = call(auth.ChangePassword, &types.RequestChangePassword{OfficerId: o.ID, OldPassword: "correct horse", NewPassword: "brand new pass"})
		require.NoError(t, err)

		_, err = call(auth.Login, &types.RequestLogin{Username: "miller", Password: "brand new pass"})
		require.NoError(t, err)
	})

	t.Run("disabled accounts cannot log in", func(t *testing.T) {
		_, err := f.c.DB.Officer().Disable(o.ID, "system", f.now.Unix())
		require.NoError(t, err)
		_, err = call(auth.Login, &types.RequestLogin{Username: "miller", Password: "brand new pass"})
		requireCode(t, err, apperr.ErrOfficerInactive)
	})
}

func TestAuditPurge(t *testing.T) {
	f := newFixture(t)
	audit := newInterAuditLogService(f.c)

	for i, age := range []time.Duration{100 * 24 * time.Hour, 10 * 24 * time.Hour, time.Hour} {
		require.NoError(t, f.c.DB.AuditLog().Create(models.AuditLog{
			ID:        "Trace" + tools.RandId(),
			ActorId:   "of-1",
			Action:    "create patrols",
			CreatedAt: f.now.Add(-age).Unix() + int64(i),
		}))
	}

	n, err := audit.Purge(0)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = audit.Purge(30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	chief := f.member(t, "chief", f.chief)
	boss := f.member(t, "boss", f.lieutenant)

	_, err = call(audit.List, &types.RequestAuditLogQuery{ViewerId: boss.ID})
	requireCode(t, err, apperr.ErrPermissionDenied)

	data, err := call(audit.List, &types.RequestAuditLogQuery{ViewerId: chief.ID, Action: "patrols"})
	require.NoError(t, err)
	list := data.(types.ResponseAuditLogList)
	assert.Len(t, list.List, 2)
	assert.Equal(t, int64(2), list.Total)
}
