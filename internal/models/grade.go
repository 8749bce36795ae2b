package models

import (
	"fmt"
	"sort"

	"github.com/mitchellh/mapstructure"
)

// SuperuserLevel grades bypass every capability check.
const SuperuserLevel = 99

// Capability is a closed set of permission flags carried by a grade.
type Capability string

const (
	// CapBase is held implicitly by every grade: profile, own duty, read-only boards.
	CapBase             Capability = "base"
	CapViewCentrale     Capability = "centrale.view"
	CapManagePatrols    Capability = "centrale.patrols"
	CapManageDispatch   Capability = "centrale.dispatch"
	CapManageNotes      Capability = "centrale.notes"
	CapAssignOperator   Capability = "centrale.operator"
	CapForceEndDuty     Capability = "duty.force_end"
	CapManageComplaints Capability = "complaints.manage"
	CapManageOfficers   Capability = "admin.officers"
	CapManageGrades     Capability = "admin.grades"
	CapViewAudit        Capability = "admin.audit"
)

// AllCapabilities lists every flag a grade may hold, CapBase excluded.
func AllCapabilities() []Capability {
	return []Capability{
		CapViewCentrale,
		CapManagePatrols,
		CapManageDispatch,
		CapManageNotes,
		CapAssignOperator,
		CapForceEndDuty,
		CapManageComplaints,
		CapManageOfficers,
		CapManageGrades,
		CapViewAudit,
	}
}

// Permissions is the fixed flag record of a grade. Field tags double as the
// keys accepted from the admin UI.
type Permissions struct {
	ViewCentrale     bool `json:"viewCentrale" yaml:"viewCentrale" mapstructure:"viewCentrale"`
	ManagePatrols    bool `json:"managePatrols" yaml:"managePatrols" mapstructure:"managePatrols"`
	ManageDispatch   bool `json:"manageDispatch" yaml:"manageDispatch" mapstructure:"manageDispatch"`
	ManageNotes      bool `json:"manageNotes" yaml:"manageNotes" mapstructure:"manageNotes"`
	AssignOperator   bool `json:"assignOperator" yaml:"assignOperator" mapstructure:"assignOperator"`
	ForceEndDuty     bool `json:"forceEndDuty" yaml:"forceEndDuty" mapstructure:"forceEndDuty"`
	ManageComplaints bool `json:"manageComplaints" yaml:"manageComplaints" mapstructure:"manageComplaints"`
	ManageOfficers   bool `json:"manageOfficers" yaml:"manageOfficers" mapstructure:"manageOfficers"`
	ManageGrades     bool `json:"manageGrades" yaml:"manageGrades" mapstructure:"manageGrades"`
	ViewAudit        bool `json:"viewAudit" yaml:"viewAudit" mapstructure:"viewAudit"`
}

// Has reports whether the flag for c is set.
func (p Permissions) Has(c Capability) bool {
	switch c {
	case CapBase:
		return true
	case CapViewCentrale:
		return p.ViewCentrale
	case CapManagePatrols:
		return p.ManagePatrols
	case CapManageDispatch:
		return p.ManageDispatch
	case CapManageNotes:
		return p.ManageNotes
	case CapAssignOperator:
		return p.AssignOperator
	case CapForceEndDuty:
		return p.ForceEndDuty
	case CapManageComplaints:
		return p.ManageComplaints
	case CapManageOfficers:
		return p.ManageOfficers
	case CapManageGrades:
		return p.ManageGrades
	case CapViewAudit:
		return p.ViewAudit
	default:
		return false
	}
}

// Capabilities returns the set flags, CapBase first.
func (p Permissions) Capabilities() []Capability {
	caps := []Capability{CapBase}
	for _, c := range AllCapabilities() {
		if p.Has(c) {
			caps = append(caps, c)
		}
	}
	return caps
}

// DecodePermissions turns a loose flag map into a Permissions record.
// Unknown keys are rejected so a typo never silently drops a flag.
func DecodePermissions(flags map[string]interface{}) (Permissions, error) {
	var p Permissions
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &p,
	})
	if err != nil {
		return Permissions{}, err
	}

	if err := decoder.Decode(flags); err != nil {
		return Permissions{}, fmt.Errorf("invalid permission flags: %w", err)
	}

	return p, nil
}

// Grade is a rank in the hierarchy.
type Grade struct {
	ID          string      `gorm:"column:id;primaryKey;type:varchar(50)" json:"id"`
	Name        string      `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Level       int         `gorm:"column:level;not null;uniqueIndex" json:"level"`
	Permissions Permissions `gorm:"column:permissions;type:text;serializer:json" json:"permissions"`
	UpdateBy    string      `gorm:"column:update_by;type:varchar(50)" json:"updateBy"`
	UpdateAt    int64       `gorm:"column:update_at" json:"updateAt"`
}

func (Grade) TableName() string {
	return "grades"
}

func (g Grade) GetID() string {
	return g.ID
}

func (g Grade) IsSuperuser() bool {
	return g.Level >= SuperuserLevel
}

// Can is the single authorization predicate for a grade.
func (g Grade) Can(c Capability) bool {
	return g.IsSuperuser() || g.Permissions.Has(c)
}

// Outranks reports whether g sits strictly above o.
func (g Grade) Outranks(o Grade) bool {
	return g.Level > o.Level
}

// CanManage reports whether g may edit or hand out grade o.
func (g Grade) CanManage(o Grade) bool {
	return g.IsSuperuser() || g.Outranks(o)
}

// SortGrades orders grades from highest to lowest level.
func SortGrades(grades []Grade) {
	sort.Slice(grades, func(i, j int) bool {
		return grades[i].Level > grades[j].Level
	})
}
