package models

import (
	"strings"

	"mdt/pkg/apperr"
)

type CallStatus string

const (
	CallPending    CallStatus = "pending"
	CallDispatched CallStatus = "dispatched"
	CallEnRoute    CallStatus = "en_route"
	CallOnScene    CallStatus = "on_scene"
	CallCompleted  CallStatus = "completed"
	CallCancelled  CallStatus = "cancelled"
)

// callFlow is the only forward path a call may take.
var callFlow = []CallStatus{CallPending, CallDispatched, CallEnRoute, CallOnScene, CallCompleted}

func (s CallStatus) Valid() bool {
	if s == CallCancelled {
		return true
	}
	for _, st := range callFlow {
		if st == s {
			return true
		}
	}
	return false
}

func (s CallStatus) IsTerminal() bool {
	return s == CallCompleted || s == CallCancelled
}

// Next returns the single forward step from s.
func (s CallStatus) Next() (CallStatus, bool) {
	for i, st := range callFlow {
		if st == s && i+1 < len(callFlow) {
			return callFlow[i+1], true
		}
	}
	return "", false
}

// CheckTransition validates moving a call from s to next.
func (s CallStatus) CheckTransition(next CallStatus) error {
	if !next.Valid() {
		return apperr.Invalid("unknown call status %q", next)
	}
	if s.IsTerminal() {
		return apperr.ErrAlreadyTerminal.WithMessage("call is already %s", s)
	}
	if next == CallCancelled {
		return nil
	}
	want, ok := s.Next()
	if !ok || want != next {
		return apperr.ErrInvalidTransition.WithMessage("cannot move a call from %s to %s", s, next)
	}
	return nil
}

const (
	CallPriorityUrgent = 1
	CallPriorityHigh   = 2
	CallPriorityNormal = 3
)

// callTypePriority classifies the call types offered by the intake form.
var callTypePriority = map[string]int{
	"agent à terre":    CallPriorityUrgent,
	"officier à terre": CallPriorityUrgent,
	"fusillade":        CallPriorityUrgent,
	"coups de feu":     CallPriorityUrgent,
	"braquage":         CallPriorityUrgent,
	"prise d'otage":    CallPriorityUrgent,
	"course poursuite": CallPriorityUrgent,
	"code 99":          CallPriorityUrgent,
	"agression":        CallPriorityHigh,
	"accident":         CallPriorityHigh,
	"cambriolage":      CallPriorityHigh,
	"vol":              CallPriorityHigh,
	"vol de véhicule":  CallPriorityHigh,
	"trafic":           CallPriorityHigh,
	"rixe":             CallPriorityHigh,
	"incendie":         CallPriorityHigh,
	"tapage":           CallPriorityNormal,
	"stationnement":    CallPriorityNormal,
	"contrôle routier": CallPriorityNormal,
	"renseignement":    CallPriorityNormal,
}

// ClassifyCallType derives a priority from the call type. Unknown types are
// normal priority.
func ClassifyCallType(callType string) int {
	if p, ok := callTypePriority[strings.ToLower(strings.TrimSpace(callType))]; ok {
		return p
	}
	return CallPriorityNormal
}

const (
	CallSourceOperator = "operator"
	CallSourceCitizen  = "citizen"
)

type DispatchCall struct {
	ID          string     `gorm:"column:id;primaryKey;type:varchar(50)" json:"id"`
	Type        string     `gorm:"column:type;type:varchar(100);not null" json:"type"`
	Location    string     `gorm:"column:location;type:varchar(255);not null" json:"location"`
	Description string     `gorm:"column:description;type:text" json:"description"`
	Priority    int        `gorm:"column:priority;not null" json:"priority"`
	Status      CallStatus `gorm:"column:status;type:varchar(20);not null;index" json:"status"`
	PatrolId    *string    `gorm:"column:patrol_id;type:varchar(50);index" json:"patrolId"`
	Source      string     `gorm:"column:source;type:varchar(20)" json:"source"`
	CallerName  string     `gorm:"column:caller_name;type:varchar(100)" json:"callerName"`
	CallerPhone string     `gorm:"column:caller_phone;type:varchar(30)" json:"callerPhone"`
	CreateBy    string     `gorm:"column:create_by;type:varchar(50)" json:"createBy"`
	CreateAt    int64      `gorm:"column:create_at;index" json:"createAt"`
	UpdateBy    string     `gorm:"column:update_by;type:varchar(50)" json:"updateBy"`
	UpdateAt    int64      `gorm:"column:update_at" json:"updateAt"`
	ClosedBy    string     `gorm:"column:closed_by;type:varchar(50)" json:"closedBy"`
	ClosedAt    *int64     `gorm:"column:closed_at" json:"closedAt"`
}

func (DispatchCall) TableName() string {
	return "dispatch_calls"
}

func (d DispatchCall) GetID() string {
	return d.ID
}

// ActiveCallStatuses are the statuses shown on the centrale board.
func ActiveCallStatuses() []CallStatus {
	return []CallStatus{CallPending, CallDispatched, CallEnRoute, CallOnScene}
}
