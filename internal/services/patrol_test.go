package services

import (
	"testing"

	"mdt/internal/models"
	"mdt/internal/types"
	"mdt/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestPatrolCreateUpdate(t *testing.T) {
	f := newFixture(t)
	patrols := newInterPatrolService(f.c)

	boss := f.member(t, "boss", f.lieutenant)
	rookie := f.member(t, "rookie", f.officer)

	_, err := call(patrols.Create, &types.RequestPatrolCreate{ActorId: rookie.ID, Name: "Adam-12"})
	requireCode(t, err, apperr.ErrPermissionDenied)

	_, err = call(patrols.Create, &types.RequestPatrolCreate{ActorId: boss.ID, Name: "Adam-12", Priority: intPtr(9)})
	requireCode(t, err, apperr.ErrInvalidInput)

	data, err := call(patrols.Create, &types.RequestPatrolCreate{ActorId: boss.ID, Name: " Adam-12 ", CallSign: "1-A-12"})
	require.NoError(t, err)
	patrol := data.(models.Patrol)
	assert.Equal(t, "Adam-12", patrol.Name)
	assert.Equal(t, models.PatrolAvailable, patrol.Status)
	assert.Equal(t, models.PatrolPriorityDefault, patrol.Priority)

	emergency := models.PatrolEmergency
	data, err = call(patrols.Update, &types.RequestPatrolUpdate{ActorId: boss.ID, ID: patrol.ID, Status: &emergency, Priority: intPtr(1)})
	require.NoError(t, err)
	updated := data.(models.Patrol)
	assert.Equal(t, models.PatrolEmergency, updated.Status)
	assert.Equal(t, 1, updated.Priority)
	assert.Equal(t, "1-A-12", updated.CallSign)

	// any status may follow any other
	available := models.PatrolAvailable
	_, err = call(patrols.Update, &types.RequestPatrolUpdate{ActorId: boss.ID, ID: patrol.ID, Status: &available})
	require.NoError(t, err)

	bogus := models.PatrolStatus("lunch")
	_, err = call(patrols.Update, &types.RequestPatrolUpdate{ActorId: boss.ID, ID: patrol.ID, Status: &bogus})
	requireCode(t, err, apperr.ErrInvalidInput)

	_, err = call(patrols.Update, &types.RequestPatrolUpdate{ActorId: boss.ID, ID: "pt-missing", Priority: intPtr(2)})
	requireCode(t, err, apperr.ErrNotFound)
}

func TestPatrolMembership(t *testing.T) {
	f := newFixture(t)
	patrols := newInterPatrolService(f.c)

	boss := f.member(t, "boss", f.lieutenant)
	a := f.member(t, "alpha", f.officer)
	b := f.member(t, "bravo", f.officer)

	create := func(name string) models.Patrol {
		data, err := call(patrols.Create, &types.RequestPatrolCreate{ActorId: boss.ID, Name: name})
		require.NoError(t, err)
		return data.(models.Patrol)
	}
	one := create("Adam-12")
	two := create("Lincoln-30")

	data, err := call(patrols.Assign, &types.RequestPatrolMember{ActorId: boss.ID, PatrolId: one.ID, OfficerId: a.ID})
	require.NoError(t, err)
	assert.Len(t, data.(models.Patrol).Members, 1)

	t.Run("one patrol per officer", func(t *testing.T) {
		_, err := call(patrols.Assign, &types.RequestPatrolMember{ActorId: boss.ID, PatrolId: two.ID, OfficerId: a.ID})
		requireCode(t, err, apperr.ErrAlreadyAssigned)

		_, err = call(patrols.Assign, &types.RequestPatrolMember{ActorId: boss.ID, PatrolId: one.ID, OfficerId: a.ID})
		requireCode(t, err, apperr.ErrAlreadyAssigned)
	})

	_, err = call(patrols.Assign, &types.RequestPatrolMember{ActorId: boss.ID, PatrolId: one.ID, OfficerId: b.ID})
	require.NoError(t, err)

	t.Run("single leader", func(t *testing.T) {
		data, err := call(patrols.SetLeader, &types.RequestPatrolMember{ActorId: boss.ID, PatrolId: one.ID, OfficerId: a.ID})
		require.NoError(t, err)
		leader, ok := data.(models.Patrol).Leader()
		require.True(t, ok)
		assert.Equal(t, a.ID, leader.OfficerId)

		data, err = call(patrols.SetLeader, &types.RequestPatrolMember{ActorId: boss.ID, PatrolId: one.ID, OfficerId: b.ID})
		require.NoError(t, err)
		patrol := data.(models.Patrol)

		leaders := 0
		for _, m := range patrol.Members {
			if m.Role == models.MemberRoleLeader {
				leaders++
				assert.Equal(t, b.ID, m.OfficerId)
			}
		}
		assert.Equal(t, 1, leaders)
		assert.Equal(t, b.ID, patrol.Members[0].OfficerId, "leader listed first")
	})

	t.Run("leader must be a member", func(t *testing.T) {
		_, err := call(patrols.SetLeader, &types.RequestPatrolMember{ActorId: boss.ID, PatrolId: two.ID, OfficerId: a.ID})
		requireCode(t, err, apperr.ErrNotAMember)
	})

	t.Run("unassign", func(t *testing.T) {
		data, err := call(patrols.Unassign, &types.RequestPatrolMember{ActorId: boss.ID, PatrolId: one.ID, OfficerId: b.ID})
		require.NoError(t, err)
		patrol := data.(models.Patrol)
		require.Len(t, patrol.Members, 1)
		_, hasLeader := patrol.Leader()
		assert.False(t, hasLeader, "nobody is promoted")

		_, err = call(patrols.Unassign, &types.RequestPatrolMember{ActorId: boss.ID, PatrolId: one.ID, OfficerId: b.ID})
		requireCode(t, err, apperr.ErrNotAMember)
	})

	t.Run("disabled officers cannot join", func(t *testing.T) {
		_, err := f.c.DB.Officer().Disable(b.ID, boss.ID, f.now.Unix())
		require.NoError(t, err)
		_, err = call(patrols.Assign, &types.RequestPatrolMember{ActorId: boss.ID, PatrolId: two.ID, OfficerId: b.ID})
		requireCode(t, err, apperr.ErrOfficerInactive)
	})
}

func TestPatrolDeleteDetaches(t *testing.T) {
	f := newFixture(t)
	patrols := newInterPatrolService(f.c)
	dispatch := newInterDispatchService(f.c)
	centrale := newInterCentraleService(f.c)

	boss := f.member(t, "boss", f.lieutenant)
	a := f.member(t, "alpha", f.officer)

	data, err := call(patrols.Create, &types.RequestPatrolCreate{ActorId: boss.ID, Name: "Adam-12"})
	require.NoError(t, err)
	patrol := data.(models.Patrol)

	_, err = call(patrols.Assign, &types.RequestPatrolMember{ActorId: boss.ID, PatrolId: patrol.ID, OfficerId: a.ID})
	require.NoError(t, err)

	data, err = call(dispatch.Create, &types.RequestCallCreate{ActorId: boss.ID, Type: "vol", Location: "Vinewood", PatrolId: &patrol.ID})
	require.NoError(t, err)
	callId := data.(models.DispatchCall).ID

	data, err = call(centrale.CreateNote, &types.RequestNoteCreate{ActorId: boss.ID, Content: "fuel low", PatrolId: &patrol.ID})
	require.NoError(t, err)
	noteId := data.(models.CentraleNote).ID

	_, err = call(patrols.Delete, &types.RequestPatrolQuery{ActorId: boss.ID, ID: patrol.ID})
	require.NoError(t, err)

	_, err = call(patrols.Get, &types.RequestPatrolQuery{ID: patrol.ID})
	requireCode(t, err, apperr.ErrNotFound)

	_, _, member, err := f.c.DB.Patrol().MembershipOf(a.ID)
	require.NoError(t, err)
	assert.False(t, member)

	c, err := f.c.DB.Dispatch().Get(callId)
	require.NoError(t, err)
	assert.Nil(t, c.PatrolId)

	n, err := f.c.DB.Centrale().GetNote(noteId)
	require.NoError(t, err)
	assert.Nil(t, n.PatrolId)

	_, err = call(patrols.Delete, &types.RequestPatrolQuery{ActorId: boss.ID, ID: patrol.ID})
	requireCode(t, err, apperr.ErrNotFound)
}
