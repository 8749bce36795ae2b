package services

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"mdt/internal/models"
	"mdt/internal/types"
	"mdt/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const racers = 20

// race runs fn from racers goroutines at once and collects their errors.
func race(fn func(i int) error) []error {
	var wg sync.WaitGroup
	start := make(chan struct{})
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			errs[i] = fn(i)
		}(i)
	}
	close(start)
	wg.Wait()
	return errs
}

func TestConcurrentDutyStart(t *testing.T) {
	f := newFixture(t)
	duty := newInterDutyService(f.c)
	alpha := f.member(t, "alpha", f.officer)

	errs := race(func(int) error {
		_, err := call(duty.Start, &types.RequestDutyStart{OfficerId: alpha.ID})
		return err
	})

	started := 0
	for _, err := range errs {
		if err == nil {
			started++
			continue
		}
		assert.True(t, errors.Is(err, apperr.ErrAlreadyOnDuty), "want AlreadyOnDuty, got %v", err)
	}
	assert.Equal(t, 1, started)

	var open int64
	require.NoError(t, f.c.DB.DB().Model(&models.DutySession{}).Where("officer_id = ? AND end_at IS NULL", alpha.ID).Count(&open).Error)
	assert.Equal(t, int64(1), open)
}

func TestConcurrentPatrolAssign(t *testing.T) {
	f := newFixture(t)
	patrols := newInterPatrolService(f.c)
	boss := f.member(t, "boss", f.lieutenant)
	alpha := f.member(t, "alpha", f.officer)

	ids := make([]string, racers)
	for i := range ids {
		data, err := call(patrols.Create, &types.RequestPatrolCreate{ActorId: boss.ID, Name: fmt.Sprintf("Adam-%d", i)})
		require.NoError(t, err)
		ids[i] = data.(models.Patrol).ID
	}

	errs := race(func(i int) error {
		_, err := call(patrols.Assign, &types.RequestPatrolMember{ActorId: boss.ID, PatrolId: ids[i], OfficerId: alpha.ID})
		return err
	})

	assigned := 0
	for _, err := range errs {
		if err == nil {
			assigned++
			continue
		}
		assert.True(t, errors.Is(err, apperr.ErrAlreadyAssigned), "want AlreadyAssigned, got %v", err)
	}
	assert.Equal(t, 1, assigned)

	var memberships int64
	require.NoError(t, f.c.DB.DB().Model(&models.PatrolMember{}).Where("officer_id = ?", alpha.ID).Count(&memberships).Error)
	assert.Equal(t, int64(1), memberships)
}

func TestConcurrentSetLeader(t *testing.T) {
	f := newFixture(t)
	patrols := newInterPatrolService(f.c)
	boss := f.member(t, "boss", f.lieutenant)

	data, err := call(patrols.Create, &types.RequestPatrolCreate{ActorId: boss.ID, Name: "Adam-12"})
	require.NoError(t, err)
	patrol := data.(models.Patrol)

	members := make([]string, racers)
	for i := range members {
		o := f.member(t, fmt.Sprintf("officer-%d", i), f.officer)
		_, err := call(patrols.Assign, &types.RequestPatrolMember{ActorId: boss.ID, PatrolId: patrol.ID, OfficerId: o.ID})
		require.NoError(t, err)
		members[i] = o.ID
	}

	errs := race(func(i int) error {
		_, err := call(patrols.SetLeader, &types.RequestPatrolMember{ActorId: boss.ID, PatrolId: patrol.ID, OfficerId: members[i]})
		return err
	})
	for _, err := range errs {
		assert.NoError(t, err)
	}

	var leaders int64
	require.NoError(t, f.c.DB.DB().Model(&models.PatrolMember{}).
		Where("patrol_id = ? AND role = ?", patrol.ID, models.MemberRoleLeader).
		Count(&leaders).Error)
	assert.Equal(t, int64(1), leaders)
}

func TestConcurrentAssignOperator(t *testing.T) {
	f := newFixture(t)
	duty := newInterDutyService(f.c)
	centrale := newInterCentraleService(f.c)
	boss := f.member(t, "boss", f.lieutenant)

	candidates := make([]string, racers)
	for i := range candidates {
		o := f.member(t, fmt.Sprintf("operator-%d", i), f.officer)
		_, err := call(duty.Start, &types.RequestDutyStart{OfficerId: o.ID})
		require.NoError(t, err)
		candidates[i] = o.ID
	}

	errs := race(func(i int) error {
		_, err := call(centrale.AssignOperator, &types.RequestOperatorAssign{ActorId: boss.ID, OfficerId: candidates[i]})
		return err
	})
	for _, err := range errs {
		assert.NoError(t, err)
	}

	var active int64
	require.NoError(t, f.c.DB.DB().Model(&models.CentraleOperator{}).Where("active = ?", true).Count(&active).Error)
	assert.Equal(t, int64(1), active)

	var keyed int64
	require.NoError(t, f.c.DB.DB().Model(&models.CentraleOperator{}).Where("active_key IS NOT NULL").Count(&keyed).Error)
	assert.Equal(t, int64(1), keyed)

	var total int64
	require.NoError(t, f.c.DB.DB().Model(&models.CentraleOperator{}).Count(&total).Error)
	assert.Equal(t, int64(racers), total, "every assignment is kept in the history")
}
