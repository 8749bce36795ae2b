package repo

import (
	"mdt/internal/models"

	"gorm.io/gorm"
)

type (
	AuditLogRepo struct {
		entryRepo
	}

	InterAuditLogRepo interface {
		Create(r models.AuditLog) error
		List(actorId, action string, page models.Page) ([]models.AuditLog, int64, error)
		DeleteBefore(ts int64) (int64, error)
	}
)

func newAuditLogInterface(db *gorm.DB, g InterGormDBCli) InterAuditLogRepo {
	return &AuditLogRepo{
		entryRepo{
			g:  g,
			db: db,
		},
	}
}

func (a AuditLogRepo) Create(r models.AuditLog) error {
	return a.g.Create(&models.AuditLog{}, r)
}

func (a AuditLogRepo) List(actorId, action string, page models.Page) ([]models.AuditLog, int64, error) {
	var (
		data  []models.AuditLog
		count int64
		db    = a.db.Model(&models.AuditLog{})
	)

	if actorId != "" {
		db = db.Where("actor_id = ?", actorId)
	}
	if action != "" {
		db = db.Where("action LIKE ?", "%"+action+"%")
	}

	if err := db.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := page.Normalize()
	err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&data).Error
	if err != nil {
		return nil, 0, err
	}
	return data, count, nil
}

// DeleteBefore purges records older than ts and reports how many went.
func (a AuditLogRepo) DeleteBefore(ts int64) (int64, error) {
	res := a.db.Where("created_at < ?", ts).Delete(&models.AuditLog{})
	return res.RowsAffected, res.Error
}
