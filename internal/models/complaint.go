package models

import "mdt/pkg/apperr"

type ComplaintStatus string

const (
	ComplaintReceived      ComplaintStatus = "received"
	ComplaintInvestigating ComplaintStatus = "investigating"
	ComplaintResolved      ComplaintStatus = "resolved"
	ComplaintRejected      ComplaintStatus = "rejected"
)

var complaintTransitions = map[ComplaintStatus][]ComplaintStatus{
	ComplaintReceived:      {ComplaintInvestigating, ComplaintRejected},
	ComplaintInvestigating: {ComplaintResolved, ComplaintRejected},
}

func (s ComplaintStatus) Valid() bool {
	switch s {
	case ComplaintReceived, ComplaintInvestigating, ComplaintResolved, ComplaintRejected:
		return true
	}
	return false
}

func (s ComplaintStatus) IsTerminal() bool {
	return s == ComplaintResolved || s == ComplaintRejected
}

func (s ComplaintStatus) CheckTransition(next ComplaintStatus) error {
	if !next.Valid() {
		return apperr.Invalid("unknown complaint status %q", next)
	}
	if s.IsTerminal() {
		return apperr.ErrAlreadyTerminal.WithMessage("complaint is already %s", s)
	}
	for _, allowed := range complaintTransitions[s] {
		if allowed == next {
			return nil
		}
	}
	return apperr.ErrInvalidTransition.WithMessage("cannot move a complaint from %s to %s", s, next)
}

// Complaint is filed by a citizen through the public form. TrackingNumber
// is the only handle the citizen gets back.
type Complaint struct {
	ID             string          `gorm:"column:id;primaryKey;type:varchar(50)" json:"id"`
	TrackingNumber string          `gorm:"column:tracking_number;type:varchar(36);not null;uniqueIndex" json:"trackingNumber"`
	CitizenName    string          `gorm:"column:citizen_name;type:varchar(100);not null" json:"citizenName"`
	CitizenContact string          `gorm:"column:citizen_contact;type:varchar(255)" json:"citizenContact"`
	OfficerName    string          `gorm:"column:officer_name;type:varchar(100)" json:"officerName"`
	Description    string          `gorm:"column:description;type:text;not null" json:"description"`
	IncidentAt     int64           `gorm:"column:incident_at" json:"incidentAt"`
	Status         ComplaintStatus `gorm:"column:status;type:varchar(20);not null;index" json:"status"`
	HandlerId      *string         `gorm:"column:handler_id;type:varchar(50);index" json:"handlerId"`
	Resolution     string          `gorm:"column:resolution;type:text" json:"resolution"`
	SubmitIP       string          `gorm:"column:submit_ip;type:varchar(64)" json:"-"`
	CreateAt       int64           `gorm:"column:create_at;index" json:"createAt"`
	UpdateBy       string          `gorm:"column:update_by;type:varchar(50)" json:"updateBy"`
	UpdateAt       int64           `gorm:"column:update_at" json:"updateAt"`
	ClosedAt       *int64          `gorm:"column:closed_at" json:"closedAt"`
}

func (Complaint) TableName() string {
	return "complaints"
}

func (c Complaint) GetID() string {
	return c.ID
}
