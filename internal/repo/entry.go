package repo

import (
	"mdt/internal/models"

	"gorm.io/gorm"
)

type (
	entryRepo struct {
		g  InterGormDBCli
		db *gorm.DB
	}

	InterEntryRepo interface {
		DB() *gorm.DB
		Grade() InterGradeRepo
		Officer() InterOfficerRepo
		Duty() InterDutyRepo
		Patrol() InterPatrolRepo
		Dispatch() InterDispatchRepo
		Centrale() InterCentraleRepo
		Complaint() InterComplaintRepo
		AuditLog() InterAuditLogRepo
	}
)

func NewRepoEntry(db *gorm.DB) InterEntryRepo {
	return &entryRepo{
		g:  NewInterGormDBCli(db),
		db: db,
	}
}

func (e entryRepo) DB() *gorm.DB                  { return e.db }
func (e entryRepo) Grade() InterGradeRepo         { return newGradeInterface(e.db, e.g) }
func (e entryRepo) Officer() InterOfficerRepo     { return newOfficerInterface(e.db, e.g) }
func (e entryRepo) Duty() InterDutyRepo           { return newDutyInterface(e.db, e.g) }
func (e entryRepo) Patrol() InterPatrolRepo       { return newPatrolInterface(e.db, e.g) }
func (e entryRepo) Dispatch() InterDispatchRepo   { return newDispatchInterface(e.db, e.g) }
func (e entryRepo) Centrale() InterCentraleRepo   { return newCentraleInterface(e.db, e.g) }
func (e entryRepo) Complaint() InterComplaintRepo { return newComplaintInterface(e.db, e.g) }
func (e entryRepo) AuditLog() InterAuditLogRepo   { return newAuditLogInterface(e.db, e.g) }

// AllModels lists every table owned by the application, in migration order.
// casbin_rule belongs to the casbin adapter, which migrates it itself.
func AllModels() []interface{} {
	return []interface{}{
		&models.Grade{},
		&models.Officer{},
		&models.DutySession{},
		&models.Patrol{},
		&models.PatrolMember{},
		&models.DispatchCall{},
		&models.CentraleNote{},
		&models.CentraleOperator{},
		&models.Complaint{},
		&models.AuditLog{},
	}
}
