package repo

import (
	"errors"

	"mdt/internal/models"
	"mdt/pkg/apperr"
	"mdt/pkg/tools"

	"gorm.io/gorm"
)

type (
	PatrolRepo struct {
		entryRepo
	}

	InterPatrolRepo interface {
		Create(r models.Patrol) error
		Get(id string) (models.Patrol, error)
		List() ([]models.Patrol, error)
		Update(id string, fields map[string]interface{}) (models.Patrol, error)
		Delete(id string) error
		Assign(patrolId, officerId string, now int64) (models.PatrolMember, error)
		Unassign(patrolId, officerId string) error
		SetLeader(patrolId, officerId string) error
		MembershipOf(officerId string) (models.PatrolMember, models.Patrol, bool, error)
	}
)

func newPatrolInterface(db *gorm.DB, g InterGormDBCli) InterPatrolRepo {
	return &PatrolRepo{
		entryRepo{
			g:  g,
			db: db,
		},
	}
}

func (p PatrolRepo) Create(r models.Patrol) error {
	return p.g.Create(&models.Patrol{}, r)
}

func (p PatrolRepo) Get(id string) (models.Patrol, error) {
	var data models.Patrol
	err := p.db.Model(&models.Patrol{}).Where("id = ?", id).First(&data).Error
	if err != nil {
		return data, notFound(err, "patrol", id)
	}

	patrols := []models.Patrol{data}
	if err := withMembers(p.db, patrols); err != nil {
		return data, err
	}
	return patrols[0], nil
}

// List returns patrols by priority, most urgent first, with their members.
func (p PatrolRepo) List() ([]models.Patrol, error) {
	var data []models.Patrol
	err := p.db.Model(&models.Patrol{}).Order("priority ASC, name ASC").Find(&data).Error
	if err != nil {
		return nil, err
	}
	if err := withMembers(p.db, data); err != nil {
		return nil, err
	}
	return data, nil
}

// withMembers fills Members of each patrol, leader first.
func withMembers(db *gorm.DB, patrols []models.Patrol) error {
	if len(patrols) == 0 {
		return nil
	}

	ids := make([]string, 0, len(patrols))
	for _, pt := range patrols {
		ids = append(ids, pt.ID)
	}

	var members []models.PatrolMember
	err := db.Model(&models.PatrolMember{}).
		Where("patrol_id IN ?", ids).
		Order("role = 'leader' DESC, joined_at ASC").
		Find(&members).Error
	if err != nil {
		return err
	}

	officerIds := make([]string, 0, len(members))
	for _, m := range members {
		officerIds = append(officerIds, m.OfficerId)
	}
	briefs, err := loadBriefs(db, officerIds)
	if err != nil {
		return err
	}

	byPatrol := make(map[string][]models.PatrolMember, len(patrols))
	for _, m := range members {
		m.Officer = briefs[m.OfficerId]
		byPatrol[m.PatrolId] = append(byPatrol[m.PatrolId], m)
	}
	for i := range patrols {
		patrols[i].Members = byPatrol[patrols[i].ID]
		if patrols[i].Members == nil {
			patrols[i].Members = []models.PatrolMember{}
		}
	}
	return nil
}

// Update applies column changes under the patrol row lock and returns the
// stored result.
func (p PatrolRepo) Update(id string, fields map[string]interface{}) (models.Patrol, error) {
	err := p.db.Transaction(func(tx *gorm.DB) error {
		var current models.Patrol
		if err := lockRow(tx, &current, "patrol", id); err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		return tx.Model(&models.Patrol{}).Where("id = ?", id).Updates(fields).Error
	})
	if err != nil {
		return models.Patrol{}, err
	}
	return p.Get(id)
}

// Delete removes the patrol with its memberships. Notes and still-open calls
// that referenced it are detached rather than deleted.
func (p PatrolRepo) Delete(id string) error {
	return p.db.Transaction(func(tx *gorm.DB) error {
		var current models.Patrol
		if err := lockRow(tx, &current, "patrol", id); err != nil {
			return err
		}

		if err := tx.Where("patrol_id = ?", id).Delete(&models.PatrolMember{}).Error; err != nil {
			return err
		}

		err := tx.Model(&models.CentraleNote{}).Where("patrol_id = ?", id).Update("patrol_id", nil).Error
		if err != nil {
			return err
		}

		err = tx.Model(&models.DispatchCall{}).
			Where("patrol_id = ? AND status NOT IN ?", id, []models.CallStatus{models.CallCompleted, models.CallCancelled}).
			Update("patrol_id", nil).Error
		if err != nil {
			return err
		}

		return tx.Delete(&models.Patrol{}, "id = ?", id).Error
	})
}

// Assign adds officerId as a plain member. An officer sits in one patrol at
// a time; the officer row lock orders concurrent assignments of the same
// officer and the unique officer_id column rejects the loser.
func (p PatrolRepo) Assign(patrolId, officerId string, now int64) (models.PatrolMember, error) {
	var member models.PatrolMember
	err := p.db.Transaction(func(tx *gorm.DB) error {
		var patrol models.Patrol
		if err := lockRow(tx, &patrol, "patrol", patrolId); err != nil {
			return err
		}
		var officer models.Officer
		if err := lockRow(tx, &officer, "officer", officerId); err != nil {
			return err
		}
		if !officer.IsActive() {
			return apperr.ErrOfficerInactive
		}

		var existing models.PatrolMember
		ok, err := findOne(tx.Model(&models.PatrolMember{}).Where("officer_id = ?", officerId), &existing)
		if err != nil {
			return err
		}
		if ok {
			if existing.PatrolId == patrolId {
				return apperr.ErrAlreadyAssigned.WithMessage("officer %s is already in this patrol", officerId)
			}
			return apperr.ErrAlreadyAssigned.WithMessage("officer %s already belongs to patrol %s", officerId, existing.PatrolId)
		}

		member = models.PatrolMember{
			ID:        tools.NewId("pm"),
			PatrolId:  patrolId,
			OfficerId: officerId,
			Role:      models.MemberRoleMember,
			JoinedAt:  now,
		}
		if err := tx.Create(&member).Error; err != nil {
			if errors.Is(translate(err), apperr.ErrDuplicate) {
				return apperr.ErrAlreadyAssigned
			}
			return err
		}
		return nil
	})
	return member, err
}

// Unassign removes the membership. A departing leader leaves the patrol
// leaderless; nobody is promoted automatically.
func (p PatrolRepo) Unassign(patrolId, officerId string) error {
	return p.db.Transaction(func(tx *gorm.DB) error {
		var patrol models.Patrol
		if err := lockRow(tx, &patrol, "patrol", patrolId); err != nil {
			return err
		}

		res := tx.Where("patrol_id = ? AND officer_id = ?", patrolId, officerId).Delete(&models.PatrolMember{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.ErrNotAMember
		}
		return nil
	})
}

// SetLeader demotes the current leader before promoting officerId so the
// leader_key unique index never sees two leaders.
func (p PatrolRepo) SetLeader(patrolId, officerId string) error {
	return p.db.Transaction(func(tx *gorm.DB) error {
		var patrol models.Patrol
		if err := lockRow(tx, &patrol, "patrol", patrolId); err != nil {
			return err
		}

		var target models.PatrolMember
		ok, err := findOne(tx.Model(&models.PatrolMember{}).Where("patrol_id = ? AND officer_id = ?", patrolId, officerId), &target)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.ErrNotAMember
		}
		if target.Role == models.MemberRoleLeader {
			return nil
		}

		err = tx.Model(&models.PatrolMember{}).
			Where("patrol_id = ? AND role = ?", patrolId, models.MemberRoleLeader).
			Updates(map[string]interface{}{
				"role":       models.MemberRoleMember,
				"leader_key": nil,
			}).Error
		if err != nil {
			return err
		}

		return tx.Model(&models.PatrolMember{}).Where("id = ?", target.ID).Updates(map[string]interface{}{
			"role":       models.MemberRoleLeader,
			"leader_key": patrolId,
		}).Error
	})
}

func (p PatrolRepo) MembershipOf(officerId string) (models.PatrolMember, models.Patrol, bool, error) {
	var (
		member models.PatrolMember
		patrol models.Patrol
	)
	ok, err := findOne(p.db.Model(&models.PatrolMember{}).Where("officer_id = ?", officerId), &member)
	if err != nil || !ok {
		return member, patrol, false, err
	}

	err = p.db.Model(&models.Patrol{}).Where("id = ?", member.PatrolId).First(&patrol).Error
	if err != nil {
		return member, patrol, false, notFound(err, "patrol", member.PatrolId)
	}
	return member, patrol, true, nil
}
