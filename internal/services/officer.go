package services

import (
	"strings"

	"mdt/internal/ctx"
	"mdt/internal/models"
	"mdt/internal/types"
	"mdt/pkg/apperr"
	"mdt/pkg/metrics"
	"mdt/pkg/tools"

	"github.com/zeromicro/go-zero/core/logc"
)

type officerService struct {
	ctx *ctx.Context
}

type InterOfficerService interface {
	List(req interface{}) (interface{}, interface{})
	Get(req interface{}) (interface{}, interface{})
	Create(req interface{}) (interface{}, interface{})
	Update(req interface{}) (interface{}, interface{})
	SetGrade(req interface{}) (interface{}, interface{})
	Disable(req interface{}) (interface{}, interface{})
	Enable(req interface{}) (interface{}, interface{})
	ResetPassword(req interface{}) (interface{}, interface{})
}

func newInterOfficerService(ctx *ctx.Context) InterOfficerService {
	return &officerService{
		ctx: ctx,
	}
}

func (o officerService) List(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestOfficerQuery)

	data, err := o.ctx.DB.Officer().List(r.Query, r.GradeId, r.IncludeInactive)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (o officerService) Get(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestOfficerQuery)

	data, err := o.ctx.DB.Officer().Get(r.ID)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (o officerService) Create(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestOfficerCreate)

	_, actorGrade, err := authorize(o.ctx, r.ActorId, models.CapManageOfficers)
	if err != nil {
		return nil, err
	}
	if err := required("username", r.Username); err != nil {
		return nil, err
	}
	if err := checkPassword(r.Password); err != nil {
		return nil, err
	}

	grade, err := o.assignableGrade(actorGrade, r.GradeId)
	if err != nil {
		return nil, err
	}
	visible, err := o.visibleGrade(r.VisibleGradeId)
	if err != nil {
		return nil, err
	}

	hashed, err := tools.HashPassword(r.Password)
	if err != nil {
		return nil, err
	}

	now := unix(o.ctx)
	officer := models.Officer{
		ID:             tools.NewId("of"),
		Username:       strings.TrimSpace(r.Username),
		Password:       hashed,
		FirstName:      strings.TrimSpace(r.FirstName),
		LastName:       strings.TrimSpace(r.LastName),
		Badge:          strings.TrimSpace(r.Badge),
		GradeId:        grade.ID,
		VisibleGradeId: visible,
		Active:         tools.BoolPtr(true),
		CreateBy:       r.ActorId,
		CreateAt:       now,
		UpdateAt:       now,
	}
	if err := o.ctx.DB.Officer().Create(officer); err != nil {
		return nil, err
	}

	return officer, nil
}

// Update edits the profile. The real grade only moves through SetGrade.
func (o officerService) Update(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestOfficerUpdate)

	officer, err := o.managedOfficer(r.ActorId, r.ID)
	if err != nil {
		return nil, err
	}

	if r.FirstName != nil {
		officer.FirstName = strings.TrimSpace(*r.FirstName)
	}
	if r.LastName != nil {
		officer.LastName = strings.TrimSpace(*r.LastName)
	}
	if r.Badge != nil {
		officer.Badge = strings.TrimSpace(*r.Badge)
	}
	if r.VisibleGradeId != nil {
		visible, err := o.visibleGrade(r.VisibleGradeId)
		if err != nil {
			return nil, err
		}
		officer.VisibleGradeId = visible
	}

	officer.UpdateAt = unix(o.ctx)
	if err := o.ctx.DB.Officer().Update(officer); err != nil {
		return nil, err
	}
	return officer, nil
}

// SetGrade moves an officer between grades the actor outranks, and never
// the actor themself.
func (o officerService) SetGrade(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestOfficerSetGrade)

	officer, err := o.managedOfficer(r.ActorId, r.ID)
	if err != nil {
		return nil, err
	}
	_, actorGrade, err := loadActor(o.ctx, r.ActorId)
	if err != nil {
		return nil, err
	}
	grade, err := o.assignableGrade(actorGrade, r.GradeId)
	if err != nil {
		return nil, err
	}

	now := unix(o.ctx)
	if err := o.ctx.DB.Officer().SetGrade(officer.ID, grade.ID, now); err != nil {
		return nil, err
	}
	officer.GradeId = grade.ID
	officer.UpdateAt = now
	return officer, nil
}

// Disable is a soft delete. An open duty session is closed with it.
func (o officerService) Disable(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestOfficerState)

	officer, err := o.managedOfficer(r.ActorId, r.ID)
	if err != nil {
		return nil, err
	}

	ended, err := o.ctx.DB.Officer().Disable(officer.ID, r.ActorId, unix(o.ctx))
	if err != nil {
		return nil, err
	}
	if ended {
		metrics.DutyTransitions.WithLabelValues(models.EndedByDisabled).Inc()
		logc.Infof(o.ctx.Ctx, "duty of %s closed by account disable", officer.ID)
	}

	return o.ctx.DB.Officer().Get(officer.ID)
}

func (o officerService) Enable(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestOfficerState)

	officer, err := o.managedOfficer(r.ActorId, r.ID)
	if err != nil {
		return nil, err
	}
	if err := o.ctx.DB.Officer().Enable(officer.ID, unix(o.ctx)); err != nil {
		return nil, err
	}
	return o.ctx.DB.Officer().Get(officer.ID)
}

func (o officerService) ResetPassword(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestOfficerResetPassword)

	officer, err := o.managedOfficer(r.ActorId, r.ID)
	if err != nil {
		return nil, err
	}
	if err := checkPassword(r.Password); err != nil {
		return nil, err
	}

	hashed, err := tools.HashPassword(r.Password)
	if err != nil {
		return nil, err
	}
	if err := o.ctx.DB.Officer().SetPassword(officer.ID, hashed, unix(o.ctx)); err != nil {
		return nil, err
	}
	return "password reset", nil
}

// managedOfficer loads id when the actor may administer it: someone else,
// holding a grade the actor outranks.
func (o officerService) managedOfficer(actorId, id string) (models.Officer, error) {
	_, actorGrade, err := authorize(o.ctx, actorId, models.CapManageOfficers)
	if err != nil {
		return models.Officer{}, err
	}
	if actorId == id {
		return models.Officer{}, apperr.Denied("you cannot administer your own account")
	}

	officer, err := o.ctx.DB.Officer().Get(id)
	if err != nil {
		return officer, err
	}
	grade, err := o.ctx.DB.Grade().Get(officer.GradeId)
	if err != nil {
		return officer, err
	}
	if !actorGrade.CanManage(grade) {
		return officer, apperr.Denied("officer %s does not rank below you", officer.Username)
	}
	return officer, nil
}

func (o officerService) assignableGrade(actorGrade models.Grade, gradeId string) (models.Grade, error) {
	grade, err := o.ctx.DB.Grade().Get(gradeId)
	if err != nil {
		return grade, err
	}
	if !actorGrade.CanManage(grade) {
		return grade, apperr.Denied("grade %s is not below your own", grade.Name)
	}
	return grade, nil
}

// visibleGrade resolves the cosmetic grade. An empty id clears it.
func (o officerService) visibleGrade(id *string) (*string, error) {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil, nil
	}
	grade, err := o.ctx.DB.Grade().Get(*id)
	if err != nil {
		return nil, err
	}
	return tools.StringPtr(grade.ID), nil
}
