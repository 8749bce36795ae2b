package services

import (
	"strings"

	"mdt/internal/ctx"
	"mdt/internal/models"
	"mdt/internal/types"
	"mdt/pkg/apperr"
	"mdt/pkg/tools"

	"github.com/zeromicro/go-zero/core/logc"
)

type gradeService struct {
	ctx *ctx.Context
}

type InterGradeService interface {
	List(req interface{}) (interface{}, interface{})
	Create(req interface{}) (interface{}, interface{})
	Update(req interface{}) (interface{}, interface{})
	SetPermissions(req interface{}) (interface{}, interface{})
	Delete(req interface{}) (interface{}, interface{})
	Capabilities(req interface{}) (interface{}, interface{})
}

func newInterGradeService(ctx *ctx.Context) InterGradeService {
	return &gradeService{
		ctx: ctx,
	}
}

func (gs gradeService) List(req interface{}) (interface{}, interface{}) {
	data, err := gs.ctx.DB.Grade().List()
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (gs gradeService) Create(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestGradeCreate)

	_, actorGrade, err := authorize(gs.ctx, r.ActorId, models.CapManageGrades)
	if err != nil {
		return nil, err
	}
	if err := required("name", r.Name); err != nil {
		return nil, err
	}
	if err := gs.checkLevel(actorGrade, r.Level, ""); err != nil {
		return nil, err
	}

	perms, err := models.DecodePermissions(r.Flags)
	if err != nil {
		return nil, apperr.Invalid("%s", err.Error())
	}

	grade := models.Grade{
		ID:          tools.NewId("gr"),
		Name:        strings.TrimSpace(r.Name),
		Level:       r.Level,
		Permissions: perms,
		UpdateBy:    r.ActorId,
		UpdateAt:    unix(gs.ctx),
	}
	if err := gs.ctx.DB.Grade().Create(grade); err != nil {
		return nil, err
	}
	gs.sync(grade)

	return grade, nil
}

func (gs gradeService) Update(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestGradeUpdate)

	grade, actorGrade, err := gs.loadManaged(r.ActorId, r.ID)
	if err != nil {
		return nil, err
	}

	if r.Name != nil {
		if err := required("name", *r.Name); err != nil {
			return nil, err
		}
		grade.Name = strings.TrimSpace(*r.Name)
	}
	if r.Level != nil && *r.Level != grade.Level {
		if err := gs.checkLevel(actorGrade, *r.Level, grade.ID); err != nil {
			return nil, err
		}
		grade.Level = *r.Level
	}

	grade.UpdateBy = r.ActorId
	grade.UpdateAt = unix(gs.ctx)
	if err := gs.ctx.DB.Grade().Save(grade); err != nil {
		return nil, err
	}
	gs.sync(grade)

	return grade, nil
}

// SetPermissions replaces the whole flag record from the admin UI's map.
func (gs gradeService) SetPermissions(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestGradePermissions)

	grade, _, err := gs.loadManaged(r.ActorId, r.ID)
	if err != nil {
		return nil, err
	}

	perms, err := models.DecodePermissions(r.Flags)
	if err != nil {
		return nil, apperr.Invalid("%s", err.Error())
	}

	grade.Permissions = perms
	grade.UpdateBy = r.ActorId
	grade.UpdateAt = unix(gs.ctx)
	if err := gs.ctx.DB.Grade().Save(grade); err != nil {
		return nil, err
	}
	gs.sync(grade)

	return grade, nil
}

func (gs gradeService) Delete(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestGradeDelete)

	grade, _, err := gs.loadManaged(r.ActorId, r.ID)
	if err != nil {
		return nil, err
	}
	if err := gs.ctx.DB.Grade().Delete(grade.ID); err != nil {
		return nil, err
	}
	if CasbinPermissionService != nil {
		if err := CasbinPermissionService.RemoveGrade(grade.ID); err != nil {
			logc.Errorf(gs.ctx.Ctx, "casbin remove grade %s: %s", grade.ID, err.Error())
		}
	}

	return "grade deleted", nil
}

// Capabilities lists the flags a grade may hold and the routes each one opens.
func (gs gradeService) Capabilities(req interface{}) (interface{}, interface{}) {
	routes := []models.PermissionInfo{}
	if CasbinPermissionService != nil {
		var err error
		routes, err = CasbinPermissionService.RoutePermissions()
		if err != nil {
			return nil, err
		}
	}

	return map[string]interface{}{
		"capabilities": models.AllCapabilities(),
		"routes":       routes,
	}, nil
}

// loadManaged returns the grade once the actor is known to outrank it.
func (gs gradeService) loadManaged(actorId, id string) (models.Grade, models.Grade, error) {
	_, actorGrade, err := authorize(gs.ctx, actorId, models.CapManageGrades)
	if err != nil {
		return models.Grade{}, actorGrade, err
	}

	grade, err := gs.ctx.DB.Grade().Get(id)
	if err != nil {
		return grade, actorGrade, err
	}
	if !actorGrade.CanManage(grade) {
		return grade, actorGrade, apperr.Denied("grade %s is not below your own", grade.Name)
	}
	return grade, actorGrade, nil
}

// checkLevel validates a level for a new or moved grade: in range, below the
// actor unless superuser, and not taken by another grade.
func (gs gradeService) checkLevel(actorGrade models.Grade, level int, selfId string) error {
	if level < 1 || level > models.SuperuserLevel {
		return apperr.Invalid("level must be between 1 and %d", models.SuperuserLevel)
	}
	if !actorGrade.IsSuperuser() && level >= actorGrade.Level {
		return apperr.Denied("level %d is not below your own", level)
	}

	existing, ok, err := gs.ctx.DB.Grade().GetByLevel(level)
	if err != nil {
		return err
	}
	if ok && existing.ID != selfId {
		return apperr.ErrDuplicate.WithMessage("level %d is already used by %s", level, existing.Name)
	}
	return nil
}

func (gs gradeService) sync(grade models.Grade) {
	if CasbinPermissionService == nil {
		return
	}
	if err := CasbinPermissionService.SyncGrade(grade); err != nil {
		logc.Errorf(gs.ctx.Ctx, "casbin sync grade %s: %s", grade.ID, err.Error())
	}
}
