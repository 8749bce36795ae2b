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

func TestDispatchCreate(t *testing.T) {
	f := newFixture(t)
	dispatch := newInterDispatchService(f.c)

	boss := f.member(t, "boss", f.lieutenant)
	rookie := f.member(t, "rookie", f.officer)

	_, err := call(dispatch.Create, &types.RequestCallCreate{ActorId: rookie.ID, Type: "vol", Location: "Pillbox"})
	requireCode(t, err, apperr.ErrPermissionDenied)

	t.Run("priority from call type", func(t *testing.T) {
		data, err := call(dispatch.Create, &types.RequestCallCreate{ActorId: boss.ID, Type: "Fusillade", Location: "Grove Street"})
		require.NoError(t, err)
		c := data.(models.DispatchCall)
		assert.Equal(t, models.CallPriorityUrgent, c.Priority)
		assert.Equal(t, models.CallPending, c.Status)
		assert.Equal(t, models.CallSourceOperator, c.Source)
	})

	t.Run("explicit priority wins", func(t *testing.T) {
		data, err := call(dispatch.Create, &types.RequestCallCreate{ActorId: boss.ID, Type: "Fusillade", Location: "Grove Street", Priority: intPtr(3)})
		require.NoError(t, err)
		assert.Equal(t, 3, data.(models.DispatchCall).Priority)

		_, err = call(dispatch.Create, &types.RequestCallCreate{ActorId: boss.ID, Type: "vol", Location: "x", Priority: intPtr(4)})
		requireCode(t, err, apperr.ErrInvalidInput)
	})

	t.Run("source is checked", func(t *testing.T) {
		_, err := call(dispatch.Create, &types.RequestCallCreate{ActorId: boss.ID, Type: "vol", Location: "x", Source: "pigeon"})
		requireCode(t, err, apperr.ErrInvalidInput)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := call(dispatch.Create, &types.RequestCallCreate{ActorId: boss.ID, Type: " ", Location: "x"})
		requireCode(t, err, apperr.ErrInvalidInput)
	})

	t.Run("unknown patrol", func(t *testing.T) {
		missing := "pt-missing"
		_, err := call(dispatch.Create, &types.RequestCallCreate{ActorId: boss.ID, Type: "vol", Location: "x", PatrolId: &missing})
		requireCode(t, err, apperr.ErrNotFound)
	})
}

func TestDispatchLifecycle(t *testing.T) {
	f := newFixture(t)
	dispatch := newInterDispatchService(f.c)
	patrols := newInterPatrolService(f.c)

	boss := f.member(t, "boss", f.lieutenant)

	data, err := call(patrols.Create, &types.RequestPatrolCreate{ActorId: boss.ID, Name: "Adam-12"})
	require.NoError(t, err)
	patrol := data.(models.Patrol)

	data, err = call(dispatch.Create, &types.RequestCallCreate{ActorId: boss.ID, Type: "agression", Location: "Del Perro"})
	require.NoError(t, err)
	c := data.(models.DispatchCall)

	advance := func(status models.CallStatus) (models.DispatchCall, error) {
		data, err := call(dispatch.Advance, &types.RequestCallAdvance{ActorId: boss.ID, ID: c.ID, Status: status})
		if err != nil {
			return models.DispatchCall{}, err
		}
		return data.(models.DispatchCall), nil
	}

	_, err = advance(models.CallDispatched)
	requireCode(t, err, apperr.ErrInvalidTransition)

	_, err = advance(models.CallEnRoute)
	requireCode(t, err, apperr.ErrInvalidTransition)

	data, err = call(dispatch.Reassign, &types.RequestCallReassign{ActorId: boss.ID, ID: c.ID, PatrolId: patrol.ID})
	require.NoError(t, err)
	assert.Equal(t, models.CallPending, data.(models.DispatchCall).Status, "reassign keeps the status")

	got, err := advance(models.CallDispatched)
	require.NoError(t, err)
	assert.Equal(t, models.CallDispatched, got.Status)

	_, err = advance(models.CallCompleted)
	requireCode(t, err, apperr.ErrInvalidTransition)

	for _, s := range []models.CallStatus{models.CallEnRoute, models.CallOnScene} {
		got, err := advance(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, got.Status)
		assert.Nil(t, got.ClosedAt)
	}

	f.advance(time.Minute)
	done, err := advance(models.CallCompleted)
	require.NoError(t, err)
	require.NotNil(t, done.ClosedAt)
	assert.Equal(t, f.now.Unix(), *done.ClosedAt)
	assert.Equal(t, boss.ID, done.ClosedBy)

	_, err = advance(models.CallCancelled)
	requireCode(t, err, apperr.ErrAlreadyTerminal)

	_, err = call(dispatch.Reassign, &types.RequestCallReassign{ActorId: boss.ID, ID: c.ID, PatrolId: patrol.ID})
	requireCode(t, err, apperr.ErrAlreadyTerminal)

	stored, err := call(dispatch.Get, &types.RequestCallQuery{ID: c.ID})
	require.NoError(t, err)
	assert.Equal(t, models.CallCompleted, stored.(models.DispatchCall).Status)
}

func TestDispatchCancel(t *testing.T) {
	f := newFixture(t)
	dispatch := newInterDispatchService(f.c)
	patrols := newInterPatrolService(f.c)
	boss := f.member(t, "boss", f.lieutenant)

	data, err := call(patrols.Create, &types.RequestPatrolCreate{ActorId: boss.ID, Name: "Adam-12"})
	require.NoError(t, err)
	patrolId := data.(models.Patrol).ID

	paths := map[models.CallStatus][]models.CallStatus{
		models.CallPending:    nil,
		models.CallDispatched: nil,
		models.CallEnRoute:    {models.CallEnRoute},
		models.CallOnScene:    {models.CallEnRoute, models.CallOnScene},
	}

	for from, steps := range paths {
		t.Run(string(from), func(t *testing.T) {
			req := &types.RequestCallCreate{ActorId: boss.ID, Type: "vol", Location: "Vinewood"}
			if from != models.CallPending {
				req.PatrolId = &patrolId
			}
			data, err := call(dispatch.Create, req)
			require.NoError(t, err)
			c := data.(models.DispatchCall)

			for _, s := range steps {
				_, err := call(dispatch.Advance, &types.RequestCallAdvance{ActorId: boss.ID, ID: c.ID, Status: s})
				require.NoError(t, err)
			}

			f.advance(time.Minute)
			data, err = call(dispatch.Advance, &types.RequestCallAdvance{ActorId: boss.ID, ID: c.ID, Status: models.CallCancelled})
			require.NoError(t, err)
			cancelled := data.(models.DispatchCall)
			assert.Equal(t, models.CallCancelled, cancelled.Status)
			require.NotNil(t, cancelled.ClosedAt)
			assert.Equal(t, f.now.Unix(), *cancelled.ClosedAt)

			for _, next := range []models.CallStatus{models.CallCancelled, models.CallCompleted, models.CallEnRoute} {
				_, err := call(dispatch.Advance, &types.RequestCallAdvance{ActorId: boss.ID, ID: c.ID, Status: next})
				requireCode(t, err, apperr.ErrAlreadyTerminal)
			}
		})
	}
}

func TestDispatchList(t *testing.T) {
	f := newFixture(t)
	dispatch := newInterDispatchService(f.c)
	boss := f.member(t, "boss", f.lieutenant)

	var ids []string
	for _, typ := range []string{"tapage", "fusillade", "vol"} {
		data, err := call(dispatch.Create, &types.RequestCallCreate{ActorId: boss.ID, Type: typ, Location: "x"})
		require.NoError(t, err)
		ids = append(ids, data.(models.DispatchCall).ID)
		f.advance(time.Second)
	}
	_, err := call(dispatch.Advance, &types.RequestCallAdvance{ActorId: boss.ID, ID: ids[0], Status: models.CallCancelled})
	require.NoError(t, err)

	data, err := call(dispatch.List, &types.RequestCallQuery{ActiveOnly: true})
	require.NoError(t, err)
	list := data.(types.ResponseCallList)
	require.Len(t, list.List, 2)
	assert.Equal(t, int64(2), list.Total)
	assert.Equal(t, ids[1], list.List[0].ID, "urgent first")

	data, err = call(dispatch.List, &types.RequestCallQuery{})
	require.NoError(t, err)
	all := data.(types.ResponseCallList)
	require.Len(t, all.List, 3)
	assert.Equal(t, ids[0], all.List[2].ID, "closed calls last")

	_, err = call(dispatch.List, &types.RequestCallQuery{Status: "lost"})
	requireCode(t, err, apperr.ErrInvalidInput)

	counts, err := f.c.DB.Dispatch().CountByStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[models.CallPending])
	assert.Equal(t, int64(1), counts[models.CallCancelled])
}
