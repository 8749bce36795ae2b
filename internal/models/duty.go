package models

const (
	EndedBySelf     = "self"
	EndedByForce    = "forced"
	EndedBySystem   = "system"
	EndedByDisabled = "disabled"
)

// DutySession is one shift. OpenKey holds the officer id while the session
// is open and NULL once closed; its unique index keeps a single open session
// per officer even across server instances.
type DutySession struct {
	ID        string  `gorm:"column:id;primaryKey;type:varchar(50)" json:"id"`
	OfficerId string  `gorm:"column:officer_id;type:varchar(50);not null;index" json:"officerId"`
	StartAt   int64   `gorm:"column:start_at;not null" json:"startAt"`
	EndAt     *int64  `gorm:"column:end_at" json:"endAt"`
	Duration  int64   `gorm:"column:duration;not null;default:0" json:"duration"`
	EndedBy   string  `gorm:"column:ended_by;type:varchar(20)" json:"endedBy"`
	EndedById string  `gorm:"column:ended_by_id;type:varchar(50)" json:"endedById"`
	OpenKey   *string `gorm:"column:open_key;type:varchar(50);uniqueIndex" json:"-"`
}

func (DutySession) TableName() string {
	return "duty_sessions"
}

func (d DutySession) GetID() string {
	return d.ID
}

func (d DutySession) IsOpen() bool {
	return d.EndAt == nil
}

// Elapsed returns the session length at now, or its final duration once closed.
func (d DutySession) Elapsed(now int64) int64 {
	if d.EndAt != nil {
		return d.Duration
	}
	if now < d.StartAt {
		return 0
	}
	return now - d.StartAt
}
