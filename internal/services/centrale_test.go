package services

import (
	"testing"
	"time"

	"mdt/internal/models"
	"mdt/internal/types"
	"mdt/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCentraleOperatorHandoff(t *testing.T) {
	f := newFixture(t)
	duty := newInterDutyService(f.c)
	centrale := newInterCentraleService(f.c)

	boss := f.member(t, "boss", f.lieutenant)
	first := f.member(t, "first", f.officer)
	second := f.member(t, "second", f.officer)

	data, err := call(centrale.CurrentOperator, nil)
	require.NoError(t, err)
	assert.Nil(t, data)

	_, err = call(centrale.AssignOperator, &types.RequestOperatorAssign{ActorId: boss.ID, OfficerId: first.ID})
	requireCode(t, err, apperr.ErrNotOnDuty)

	_, err = call(centrale.AssignOperator, &types.RequestOperatorAssign{ActorId: first.ID, OfficerId: first.ID})
	requireCode(t, err, apperr.ErrPermissionDenied)

	for _, id := range []string{first.ID, second.ID} {
		_, err := call(duty.Start, &types.RequestDutyStart{OfficerId: id})
		require.NoError(t, err)
	}

	data, err = call(centrale.AssignOperator, &types.RequestOperatorAssign{ActorId: boss.ID, OfficerId: first.ID})
	require.NoError(t, err)
	op := data.(models.CentraleOperator)
	assert.Equal(t, first.ID, op.OfficerId)
	assert.Equal(t, "first", op.Officer.Username)

	data, err = call(centrale.AssignOperator, &types.RequestOperatorAssign{ActorId: boss.ID, OfficerId: second.ID})
	require.NoError(t, err)
	assert.Equal(t, second.ID, data.(models.CentraleOperator).OfficerId)

	var active int64
	require.NoError(t, f.c.DB.DB().Model(&models.CentraleOperator{}).Where("active = ?", true).Count(&active).Error)
	assert.Equal(t, int64(1), active)

	data, err = call(centrale.CurrentOperator, nil)
	require.NoError(t, err)
	assert.Equal(t, second.ID, data.(models.CentraleOperator).OfficerId)

	data, err = call(centrale.ReleaseOperator, &types.RequestOperatorRelease{ActorId: boss.ID})
	require.NoError(t, err)
	released := data.(models.CentraleOperator)
	assert.False(t, released.Active)
	require.NotNil(t, released.ReleasedAt)

	_, err = call(centrale.ReleaseOperator, &types.RequestOperatorRelease{ActorId: boss.ID})
	requireCode(t, err, apperr.ErrNotFound)
}

func TestCentraleNotes(t *testing.T) {
	f := newFixture(t)
	centrale := newInterCentraleService(f.c)

	boss := f.member(t, "boss", f.lieutenant)
	rookie := f.member(t, "rookie", f.officer)

	_, err := call(centrale.CreateNote, &types.RequestNoteCreate{ActorId: rookie.ID, Content: "hi"})
	requireCode(t, err, apperr.ErrPermissionDenied)

	_, err = call(centrale.CreateNote, &types.RequestNoteCreate{ActorId: boss.ID, Content: "x", Type: "gossip"})
	requireCode(t, err, apperr.ErrInvalidInput)

	data, err := call(centrale.CreateNote, &types.RequestNoteCreate{ActorId: boss.ID, Content: "radio channel 3"})
	require.NoError(t, err)
	plain := data.(models.CentraleNote)
	assert.Equal(t, models.NoteInfo, plain.Type)

	f.advance(time.Second)
	data, err = call(centrale.CreateNote, &types.RequestNoteCreate{ActorId: boss.ID, Content: "roadblock on route 68", Type: models.NoteUrgent})
	require.NoError(t, err)
	urgent := data.(models.CentraleNote)

	data, err = call(centrale.PinNote, &types.RequestNotePin{ActorId: boss.ID, ID: plain.ID, Pinned: true})
	require.NoError(t, err)
	assert.True(t, data.(models.CentraleNote).Pinned)

	data, err = call(centrale.ListNotes, &types.RequestNoteQuery{ActorId: boss.ID})
	require.NoError(t, err)
	notes := data.([]models.CentraleNote)
	require.Len(t, notes, 2)
	assert.Equal(t, plain.ID, notes[0].ID, "pinned first")
	assert.Equal(t, urgent.ID, notes[1].ID)

	data, err = call(centrale.ListNotes, &types.RequestNoteQuery{ActorId: boss.ID, PinnedOnly: true})
	require.NoError(t, err)
	assert.Len(t, data.([]models.CentraleNote), 1)

	_, err = call(centrale.ListNotes, &types.RequestNoteQuery{ActorId: rookie.ID})
	requireCode(t, err, apperr.ErrPermissionDenied)

	_, err = call(centrale.DeleteNote, &types.RequestNoteQuery{ActorId: boss.ID, ID: urgent.ID})
	require.NoError(t, err)
	_, err = call(centrale.DeleteNote, &types.RequestNoteQuery{ActorId: boss.ID, ID: urgent.ID})
	requireCode(t, err, apperr.ErrNotFound)
}

func TestCentraleOverview(t *testing.T) {
	f := newFixture(t)
	duty := newInterDutyService(f.c)
	centrale := newInterCentraleService(f.c)
	dispatch := newInterDispatchService(f.c)
	patrols := newInterPatrolService(f.c)

	boss := f.member(t, "boss", f.lieutenant)
	rookie := f.member(t, "rookie", f.officer)

	_, err := call(centrale.Overview, &types.RequestCentraleOverview{ActorId: rookie.ID})
	requireCode(t, err, apperr.ErrPermissionDenied)

	data, err := call(centrale.Overview, &types.RequestCentraleOverview{ActorId: boss.ID})
	require.NoError(t, err)
	empty := data.(types.ResponseCentraleOverview)
	assert.NotNil(t, empty.Patrols)
	assert.NotNil(t, empty.ActiveCalls)
	assert.Nil(t, empty.Operator)

	_, err = call(duty.Start, &types.RequestDutyStart{OfficerId: boss.ID})
	require.NoError(t, err)
	_, err = call(patrols.Create, &types.RequestPatrolCreate{ActorId: boss.ID, Name: "Adam-12"})
	require.NoError(t, err)
	_, err = call(dispatch.Create, &types.RequestCallCreate{ActorId: boss.ID, Type: "vol", Location: "x"})
	require.NoError(t, err)
	_, err = call(centrale.CreateNote, &types.RequestNoteCreate{ActorId: boss.ID, Content: "pinned", Pinned: true})
	require.NoError(t, err)
	_, err = call(centrale.AssignOperator, &types.RequestOperatorAssign{ActorId: boss.ID, OfficerId: boss.ID})
	require.NoError(t, err)

	data, err = call(centrale.Overview, &types.RequestCentraleOverview{ActorId: boss.ID})
	require.NoError(t, err)
	board := data.(types.ResponseCentraleOverview)
	assert.Len(t, board.Patrols, 1)
	assert.Len(t, board.ActiveCalls, 1)
	assert.Len(t, board.PinnedNotes, 1)
	assert.Len(t, board.OnDuty, 1)
	require.NotNil(t, board.Operator)
	assert.Equal(t, boss.ID, board.Operator.OfficerId)
	assert.Equal(t, int64(1), board.CallCounts[models.CallPending])
	assert.Equal(t, f.now.Unix(), board.GeneratedAt)
}
