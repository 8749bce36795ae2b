package repo

import (
	"mdt/internal/models"
	"mdt/pkg/apperr"
	"mdt/pkg/tools"

	"gorm.io/gorm"
)

type (
	DispatchRepo struct {
		entryRepo
	}

	InterDispatchRepo interface {
		Create(r models.DispatchCall) error
		Get(id string) (models.DispatchCall, error)
		List(status models.CallStatus, activeOnly bool, patrolId string, page models.Page) ([]models.DispatchCall, int64, error)
		Advance(id string, next models.CallStatus, by string, now int64) (models.DispatchCall, error)
		Reassign(id, patrolId, by string, now int64) (models.DispatchCall, error)
		CountByStatus() (map[models.CallStatus]int64, error)
	}
)

func newDispatchInterface(db *gorm.DB, g InterGormDBCli) InterDispatchRepo {
	return &DispatchRepo{
		entryRepo{
			g:  g,
			db: db,
		},
	}
}

// Create stores a new call; a supplied patrol must exist.
func (d DispatchRepo) Create(r models.DispatchCall) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if r.PatrolId != nil {
			var patrol models.Patrol
			if err := lockRow(tx, &patrol, "patrol", *r.PatrolId); err != nil {
				return err
			}
		}
		return translate(tx.Create(&r).Error)
	})
}

func (d DispatchRepo) Get(id string) (models.DispatchCall, error) {
	var data models.DispatchCall
	err := d.db.Model(&models.DispatchCall{}).Where("id = ?", id).First(&data).Error
	return data, notFound(err, "call", id)
}

// List orders open calls by priority then age; closed calls newest first.
func (d DispatchRepo) List(status models.CallStatus, activeOnly bool, patrolId string, page models.Page) ([]models.DispatchCall, int64, error) {
	var (
		data  []models.DispatchCall
		count int64
		db    = d.db.Model(&models.DispatchCall{})
	)

	if status != "" {
		db = db.Where("status = ?", status)
	}
	if activeOnly {
		db = db.Where("status IN ?", models.ActiveCallStatuses())
	}
	if patrolId != "" {
		db = db.Where("patrol_id = ?", patrolId)
	}

	if err := db.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := page.Normalize()
	err := db.Order("closed_at IS NOT NULL, priority ASC, create_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&data).Error
	if err != nil {
		return nil, 0, err
	}
	return data, count, nil
}

// Advance moves the call one step along its lifecycle. Entering dispatched
// needs an assigned patrol; entering a terminal status stamps the closure.
func (d DispatchRepo) Advance(id string, next models.CallStatus, by string, now int64) (models.DispatchCall, error) {
	var call models.DispatchCall
	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := lockRow(tx, &call, "call", id); err != nil {
			return err
		}
		if err := call.Status.CheckTransition(next); err != nil {
			return err
		}
		if next == models.CallDispatched && call.PatrolId == nil {
			return apperr.ErrInvalidTransition.WithMessage("call %s has no patrol to dispatch", id)
		}

		fields := map[string]interface{}{
			"status":    next,
			"update_by": by,
			"update_at": now,
		}
		if next.IsTerminal() {
			fields["closed_by"] = by
			fields["closed_at"] = now
			call.ClosedBy = by
			call.ClosedAt = tools.Int64Ptr(now)
		}
		if err := tx.Model(&models.DispatchCall{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return err
		}

		call.Status = next
		call.UpdateBy = by
		call.UpdateAt = now
		return nil
	})
	return call, err
}

// Reassign points the call at another patrol without touching its status.
func (d DispatchRepo) Reassign(id, patrolId, by string, now int64) (models.DispatchCall, error) {
	var call models.DispatchCall
	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := lockRow(tx, &call, "call", id); err != nil {
			return err
		}
		if call.Status.IsTerminal() {
			return apperr.ErrAlreadyTerminal.WithMessage("call is already %s", call.Status)
		}

		var patrol models.Patrol
		if err := lockRow(tx, &patrol, "patrol", patrolId); err != nil {
			return err
		}

		err := tx.Model(&models.DispatchCall{}).Where("id = ?", id).Updates(map[string]interface{}{
			"patrol_id": patrolId,
			"update_by": by,
			"update_at": now,
		}).Error
		if err != nil {
			return err
		}

		call.PatrolId = tools.StringPtr(patrolId)
		call.UpdateBy = by
		call.UpdateAt = now
		return nil
	})
	return call, err
}

func (d DispatchRepo) CountByStatus() (map[models.CallStatus]int64, error) {
	var rows []struct {
		Status models.CallStatus
		Total  int64
	}
	err := d.db.Model(&models.DispatchCall{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[models.CallStatus]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.Total
	}
	return out, nil
}
