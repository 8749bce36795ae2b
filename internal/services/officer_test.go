package services

import (
	"testing"
	"time"

	"mdt/internal/models"
	"mdt/internal/types"
	"mdt/pkg/apperr"
	"mdt/pkg/tools"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfficerCreateRespectsHierarchy(t *testing.T) {
	f := newFixture(t)
	officers := newInterOfficerService(f.c)

	boss := f.member(t, "boss", f.lieutenant)

	_, err := call(officers.Create, &types.RequestOfficerCreate{ActorId: boss.ID, Username: "peer", Password: "longenough", GradeId: f.lieutenant.ID})
	requireCode(t, err, apperr.ErrPermissionDenied)

	_, err = call(officers.Create, &types.RequestOfficerCreate{ActorId: boss.ID, Username: "short", Password: "123", GradeId: f.officer.ID})
	requireCode(t, err, apperr.ErrInvalidInput)

	data, err := call(officers.Create, &types.RequestOfficerCreate{
		ActorId:        boss.ID,
		Username:       "rookie",
		Password:       "longenough",
		GradeId:        f.officer.ID,
		VisibleGradeId: &f.lieutenant.ID,
	})
	require.NoError(t, err)
	created := data.(models.Officer)
	assert.True(t, created.IsActive())
	assert.Equal(t, f.lieutenant.ID, created.DisplayGradeId())
	assert.NoError(t, tools.CheckPassword(created.Password, "longenough"))

	// the visible grade is cosmetic: it grants nothing
	_, grade, err := loadActor(f.c, created.ID)
	require.NoError(t, err)
	assert.Equal(t, f.officer.ID, grade.ID)
	_, _, err = authorize(f.c, created.ID, models.CapManagePatrols)
	requireCode(t, err, apperr.ErrPermissionDenied)

	_, err = call(officers.Create, &types.RequestOfficerCreate{ActorId: boss.ID, Username: "rookie", Password: "longenough", GradeId: f.officer.ID})
	requireCode(t, err, apperr.ErrDuplicate)
}

func TestOfficerAdministration(t *testing.T) {
	f := newFixture(t)
	officers := newInterOfficerService(f.c)
	duty := newInterDutyService(f.c)

	boss := f.member(t, "boss", f.lieutenant)
	peer := f.member(t, "peer", f.lieutenant)
	o := f.member(t, "miller", f.officer)

	t.Run("not yourself", func(t *testing.T) {
		_, err := call(officers.Disable, &types.RequestOfficerState{ActorId: boss.ID, ID: boss.ID})
		requireCode(t, err, apperr.ErrPermissionDenied)
	})

	t.Run("not an equal", func(t *testing.T) {
		badge := "42"
		_, err := call(officers.Update, &types.RequestOfficerUpdate{ActorId: boss.ID, ID: peer.ID, Badge: &badge})
		requireCode(t, err, apperr.ErrPermissionDenied)
	})

	t.Run("update profile", func(t *testing.T) {
		badge := " 1234 "
		none := ""
		data, err := call(officers.Update, &types.RequestOfficerUpdate{ActorId: boss.ID, ID: o.ID, Badge: &badge, VisibleGradeId: &none})
		require.NoError(t, err)
		updated := data.(models.Officer)
		assert.Equal(t, "1234", updated.Badge)
		assert.Nil(t, updated.VisibleGradeId)
	})

	t.Run("promotion stops below the actor", func(t *testing.T) {
		_, err := call(officers.SetGrade, &types.RequestOfficerSetGrade{ActorId: boss.ID, ID: o.ID, GradeId: f.chief.ID})
		requireCode(t, err, apperr.ErrPermissionDenied)
	})

	t.Run("disable ends duty", func(t *testing.T) {
		_, err := call(duty.Start, &types.RequestDutyStart{OfficerId: o.ID})
		require.NoError(t, err)
		f.advance(time.Hour)

		data, err := call(officers.Disable, &types.RequestOfficerState{ActorId: boss.ID, ID: o.ID})
		require.NoError(t, err)
		disabled := data.(models.Officer)
		assert.False(t, disabled.IsActive())
		assert.Equal(t, int64(3600), disabled.TotalServiceSeconds)

		history, _, err := f.c.DB.Duty().History(o.ID, models.Page{})
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, models.EndedByDisabled, history[0].EndedBy)

		_, err = call(duty.Start, &types.RequestDutyStart{OfficerId: o.ID})
		requireCode(t, err, apperr.ErrOfficerInactive)
	})

	t.Run("enable", func(t *testing.T) {
		data, err := call(officers.Enable, &types.RequestOfficerState{ActorId: boss.ID, ID: o.ID})
		require.NoError(t, err)
		assert.True(t, data.(models.Officer).IsActive())
	})

	t.Run("list hides disabled", func(t *testing.T) {
		_, err := call(officers.Disable, &types.RequestOfficerState{ActorId: boss.ID, ID: o.ID})
		require.NoError(t, err)

		data, err := call(officers.List, &types.RequestOfficerQuery{})
		require.NoError(t, err)
		assert.Len(t, data.([]models.Officer), 2)

		data, err = call(officers.List, &types.RequestOfficerQuery{IncludeInactive: true, Query: "mill"})
		require.NoError(t, err)
		assert.Len(t, data.([]models.Officer), 1)
	})
}

func TestGradeAdministration(t *testing.T) {
	f := newFixture(t)
	grades := newInterGradeService(f.c)

	boss := f.member(t, "boss", f.lieutenant)
	rookie := f.member(t, "rookie", f.officer)

	_, err := call(grades.Create, &types.RequestGradeCreate{ActorId: rookie.ID, Name: "Cadet", Level: 10})
	requireCode(t, err, apperr.ErrPermissionDenied)

	_, err = call(grades.Create, &types.RequestGradeCreate{ActorId: boss.ID, Name: "Capitaine", Level: 70})
	requireCode(t, err, apperr.ErrPermissionDenied)

	_, err = call(grades.Create, &types.RequestGradeCreate{ActorId: boss.ID, Name: "Clone", Level: 20})
	requireCode(t, err, apperr.ErrDuplicate)

	_, err = call(grades.Create, &types.RequestGradeCreate{ActorId: boss.ID, Name: "Cadet", Level: 10, Flags: map[string]interface{}{"fly": true}})
	requireCode(t, err, apperr.ErrInvalidInput)

	data, err := call(grades.Create, &types.RequestGradeCreate{ActorId: boss.ID, Name: "Sergent", Level: 40, Flags: map[string]interface{}{"viewCentrale": true}})
	require.NoError(t, err)
	sergent := data.(models.Grade)
	assert.True(t, sergent.Can(models.CapViewCentrale))

	data, err = call(grades.SetPermissions, &types.RequestGradePermissions{ActorId: boss.ID, ID: sergent.ID, Flags: map[string]interface{}{"manageNotes": true}})
	require.NoError(t, err)
	updated := data.(models.Grade)
	assert.False(t, updated.Can(models.CapViewCentrale))
	assert.True(t, updated.Can(models.CapManageNotes))

	stored, err := f.c.DB.Grade().Get(sergent.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Permissions, stored.Permissions)

	_, err = call(grades.Update, &types.RequestGradeUpdate{ActorId: boss.ID, ID: f.chief.ID, Name: tools.StringPtr("Boss")})
	requireCode(t, err, apperr.ErrPermissionDenied)

	t.Run("in use", func(t *testing.T) {
		_, err := call(grades.Delete, &types.RequestGradeDelete{ActorId: boss.ID, ID: f.officer.ID})
		requireCode(t, err, apperr.ErrGradeInUse)
	})

	t.Run("delete unused", func(t *testing.T) {
		_, err := call(grades.Delete, &types.RequestGradeDelete{ActorId: boss.ID, ID: sergent.ID})
		require.NoError(t, err)
		_, err = f.c.DB.Grade().Get(sergent.ID)
		requireCode(t, err, apperr.ErrNotFound)
	})
}
