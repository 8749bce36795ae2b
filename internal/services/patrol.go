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

type patrolService struct {
	ctx *ctx.Context
}

type InterPatrolService interface {
	List(req interface{}) (interface{}, interface{})
	Get(req interface{}) (interface{}, interface{})
	Create(req interface{}) (interface{}, interface{})
	Update(req interface{}) (interface{}, interface{})
	Delete(req interface{}) (interface{}, interface{})
	Assign(req interface{}) (interface{}, interface{})
	Unassign(req interface{}) (interface{}, interface{})
	SetLeader(req interface{}) (interface{}, interface{})
}

func newInterPatrolService(ctx *ctx.Context) InterPatrolService {
	return &patrolService{
		ctx: ctx,
	}
}

func (ps patrolService) List(req interface{}) (interface{}, interface{}) {
	data, err := ps.ctx.DB.Patrol().List()
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (ps patrolService) Get(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestPatrolQuery)

	data, err := ps.ctx.DB.Patrol().Get(r.ID)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (ps patrolService) Create(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestPatrolCreate)

	if _, _, err := authorize(ps.ctx, r.ActorId, models.CapManagePatrols); err != nil {
		return nil, err
	}
	if err := required("name", r.Name); err != nil {
		return nil, err
	}

	priority := models.PatrolPriorityDefault
	if r.Priority != nil {
		if err := checkPatrolPriority(*r.Priority); err != nil {
			return nil, err
		}
		priority = *r.Priority
	}

	now := unix(ps.ctx)
	patrol := models.Patrol{
		ID:       tools.NewId("pt"),
		Name:     strings.TrimSpace(r.Name),
		CallSign: strings.TrimSpace(r.CallSign),
		Vehicle:  strings.TrimSpace(r.Vehicle),
		Sector:   strings.TrimSpace(r.Sector),
		Notes:    r.Notes,
		Status:   models.PatrolAvailable,
		Priority: priority,
		CreateBy: r.ActorId,
		CreateAt: now,
		UpdateAt: now,
		Members:  []models.PatrolMember{},
	}
	if err := ps.ctx.DB.Patrol().Create(patrol); err != nil {
		return nil, err
	}

	return patrol, nil
}

func (ps patrolService) Update(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestPatrolUpdate)

	if _, _, err := authorize(ps.ctx, r.ActorId, models.CapManagePatrols); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if r.Name != nil {
		if err := required("name", *r.Name); err != nil {
			return nil, err
		}
		fields["name"] = strings.TrimSpace(*r.Name)
	}
	if r.CallSign != nil {
		fields["call_sign"] = strings.TrimSpace(*r.CallSign)
	}
	if r.Vehicle != nil {
		fields["vehicle"] = strings.TrimSpace(*r.Vehicle)
	}
	if r.Sector != nil {
		fields["sector"] = strings.TrimSpace(*r.Sector)
	}
	if r.Notes != nil {
		fields["notes"] = *r.Notes
	}
	if r.Status != nil {
		if !r.Status.Valid() {
			return nil, apperr.Invalid("unknown patrol status %q", *r.Status)
		}
		fields["status"] = *r.Status
	}
	if r.Priority != nil {
		if err := checkPatrolPriority(*r.Priority); err != nil {
			return nil, err
		}
		fields["priority"] = *r.Priority
	}
	if len(fields) > 0 {
		fields["update_at"] = unix(ps.ctx)
	}

	data, err := ps.ctx.DB.Patrol().Update(r.ID, fields)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (ps patrolService) Delete(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestPatrolQuery)

	if _, _, err := authorize(ps.ctx, r.ActorId, models.CapManagePatrols); err != nil {
		return nil, err
	}
	if err := ps.ctx.DB.Patrol().Delete(r.ID); err != nil {
		return nil, err
	}
	logc.Infof(ps.ctx.Ctx, "patrol %s deleted by %s", r.ID, r.ActorId)

	return "patrol deleted", nil
}

func (ps patrolService) Assign(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestPatrolMember)

	if _, _, err := authorize(ps.ctx, r.ActorId, models.CapManagePatrols); err != nil {
		return nil, err
	}
	if err := required("officerId", r.OfficerId); err != nil {
		return nil, err
	}

	if _, err := ps.ctx.DB.Patrol().Assign(r.PatrolId, r.OfficerId, unix(ps.ctx)); err != nil {
		return nil, err
	}
	return ps.ctx.DB.Patrol().Get(r.PatrolId)
}

func (ps patrolService) Unassign(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestPatrolMember)

	if _, _, err := authorize(ps.ctx, r.ActorId, models.CapManagePatrols); err != nil {
		return nil, err
	}
	if err := ps.ctx.DB.Patrol().Unassign(r.PatrolId, r.OfficerId); err != nil {
		return nil, err
	}
	return ps.ctx.DB.Patrol().Get(r.PatrolId)
}

func (ps patrolService) SetLeader(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestPatrolMember)

	if _, _, err := authorize(ps.ctx, r.ActorId, models.CapManagePatrols); err != nil {
		return nil, err
	}
	if err := required("officerId", r.OfficerId); err != nil {
		return nil, err
	}
	if err := ps.ctx.DB.Patrol().SetLeader(r.PatrolId, r.OfficerId); err != nil {
		return nil, err
	}
	return ps.ctx.DB.Patrol().Get(r.PatrolId)
}

func checkPatrolPriority(p int) error {
	if p < models.PatrolPriorityMin || p > models.PatrolPriorityMax {
		return apperr.Invalid("priority must be between %d and %d", models.PatrolPriorityMin, models.PatrolPriorityMax)
	}
	return nil
}
