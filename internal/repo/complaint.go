package repo

import (
	"mdt/internal/models"
	"mdt/pkg/apperr"

	"gorm.io/gorm"
)

type (
	ComplaintRepo struct {
		entryRepo
	}

	InterComplaintRepo interface {
		Create(r models.Complaint) error
		Get(id string) (models.Complaint, error)
		GetByTracking(trackingNumber string) (models.Complaint, error)
		List(status models.ComplaintStatus, handlerId string, page models.Page) ([]models.Complaint, int64, error)
		Assign(id, handlerId, by string, now int64) (models.Complaint, error)
		Transition(id string, next models.ComplaintStatus, resolution, by string, now int64) (models.Complaint, error)
	}
)

func newComplaintInterface(db *gorm.DB, g InterGormDBCli) InterComplaintRepo {
	return &ComplaintRepo{
		entryRepo{
			g:  g,
			db: db,
		},
	}
}

func (c ComplaintRepo) Create(r models.Complaint) error {
	return c.g.Create(&models.Complaint{}, r)
}

func (c ComplaintRepo) Get(id string) (models.Complaint, error) {
	var data models.Complaint
	err := c.db.Model(&models.Complaint{}).Where("id = ?", id).First(&data).Error
	return data, notFound(err, "complaint", id)
}

func (c ComplaintRepo) GetByTracking(trackingNumber string) (models.Complaint, error) {
	var data models.Complaint
	err := c.db.Model(&models.Complaint{}).Where("tracking_number = ?", trackingNumber).First(&data).Error
	return data, notFound(err, "complaint", trackingNumber)
}

func (c ComplaintRepo) List(status models.ComplaintStatus, handlerId string, page models.Page) ([]models.Complaint, int64, error) {
	var (
		data  []models.Complaint
		count int64
		db    = c.db.Model(&models.Complaint{})
	)

	if status != "" {
		db = db.Where("status = ?", status)
	}
	if handlerId != "" {
		db = db.Where("handler_id = ?", handlerId)
	}

	if err := db.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := page.Normalize()
	err := db.Order("create_at DESC").Limit(limit).Offset(offset).Find(&data).Error
	if err != nil {
		return nil, 0, err
	}
	return data, count, nil
}

// Assign hands the complaint to an officer. Closed complaints keep their
// handler.
func (c ComplaintRepo) Assign(id, handlerId, by string, now int64) (models.Complaint, error) {
	var complaint models.Complaint
	err := c.db.Transaction(func(tx *gorm.DB) error {
		if err := lockRow(tx, &complaint, "complaint", id); err != nil {
			return err
		}
		if complaint.Status.IsTerminal() {
			return apperr.ErrAlreadyTerminal.WithMessage("complaint is already %s", complaint.Status)
		}

		var handler models.Officer
		if err := lockRow(tx, &handler, "officer", handlerId); err != nil {
			return err
		}

		err := tx.Model(&models.Complaint{}).Where("id = ?", id).Updates(map[string]interface{}{
			"handler_id": handlerId,
			"update_by":  by,
			"update_at":  now,
		}).Error
		if err != nil {
			return err
		}

		complaint.HandlerId = &handlerId
		complaint.UpdateBy = by
		complaint.UpdateAt = now
		return nil
	})
	return complaint, err
}

func (c ComplaintRepo) Transition(id string, next models.ComplaintStatus, resolution, by string, now int64) (models.Complaint, error) {
	var complaint models.Complaint
	err := c.db.Transaction(func(tx *gorm.DB) error {
		if err := lockRow(tx, &complaint, "complaint", id); err != nil {
			return err
		}
		if err := complaint.Status.CheckTransition(next); err != nil {
			return err
		}

		fields := map[string]interface{}{
			"status":    next,
			"update_by": by,
			"update_at": now,
		}
		if resolution != "" {
			fields["resolution"] = resolution
			complaint.Resolution = resolution
		}
		if next.IsTerminal() {
			fields["closed_at"] = now
			complaint.ClosedAt = &now
		}
		if err := tx.Model(&models.Complaint{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return err
		}

		complaint.Status = next
		complaint.UpdateBy = by
		complaint.UpdateAt = now
		return nil
	})
	return complaint, err
}
