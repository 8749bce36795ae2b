package services

import (
	"context"
	"fmt"
	"strings"

	"mdt/internal/ctx"
	"mdt/internal/global"
	"mdt/internal/models"
	"mdt/internal/types"
	"mdt/pkg/apperr"
	"mdt/pkg/metrics"
	"mdt/pkg/sender"
	"mdt/pkg/tools"

	"github.com/zeromicro/go-zero/core/logc"
)

type dispatchService struct {
	ctx *ctx.Context
}

type InterDispatchService interface {
	List(req interface{}) (interface{}, interface{})
	Get(req interface{}) (interface{}, interface{})
	Create(req interface{}) (interface{}, interface{})
	Advance(req interface{}) (interface{}, interface{})
	Reassign(req interface{}) (interface{}, interface{})
}

func newInterDispatchService(ctx *ctx.Context) InterDispatchService {
	return &dispatchService{
		ctx: ctx,
	}
}

func (ds dispatchService) List(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestCallQuery)

	if r.Status != "" && !r.Status.Valid() {
		return nil, apperr.Invalid("unknown call status %q", r.Status)
	}

	list, count, err := ds.ctx.DB.Dispatch().List(r.Status, r.ActiveOnly, r.PatrolId, r.Page)
	if err != nil {
		return nil, err
	}

	page := r.Page
	page.Total = count
	return types.ResponseCallList{
		List: list,
		Page: page,
	}, nil
}

func (ds dispatchService) Get(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestCallQuery)

	data, err := ds.ctx.DB.Dispatch().Get(r.ID)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Create opens a call. Without an explicit priority the call type decides
// it; a call created with a patrol starts out dispatched.
func (ds dispatchService) Create(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestCallCreate)

	if _, _, err := authorize(ds.ctx, r.ActorId, models.CapManageDispatch); err != nil {
		return nil, err
	}
	if err := required("type", r.Type); err != nil {
		return nil, err
	}
	if err := required("location", r.Location); err != nil {
		return nil, err
	}

	priority := models.ClassifyCallType(r.Type)
	if r.Priority != nil {
		if *r.Priority < models.CallPriorityUrgent || *r.Priority > models.CallPriorityNormal {
			return nil, apperr.Invalid("priority must be between %d and %d", models.CallPriorityUrgent, models.CallPriorityNormal)
		}
		priority = *r.Priority
	}

	source := r.Source
	switch source {
	case "":
		source = models.CallSourceOperator
	case models.CallSourceOperator, models.CallSourceCitizen:
	default:
		return nil, apperr.Invalid("unknown call source %q", source)
	}

	status := models.CallPending
	var patrolId *string
	if r.PatrolId != nil && strings.TrimSpace(*r.PatrolId) != "" {
		patrolId = tools.StringPtr(strings.TrimSpace(*r.PatrolId))
		status = models.CallDispatched
	}

	now := unix(ds.ctx)
	call := models.DispatchCall{
		ID:          tools.NewId("call"),
		Type:        strings.TrimSpace(r.Type),
		Location:    strings.TrimSpace(r.Location),
		Description: r.Description,
		Priority:    priority,
		Status:      status,
		PatrolId:    patrolId,
		Source:      source,
		CallerName:  strings.TrimSpace(r.CallerName),
		CallerPhone: strings.TrimSpace(r.CallerPhone),
		CreateBy:    r.ActorId,
		CreateAt:    now,
		UpdateBy:    r.ActorId,
		UpdateAt:    now,
	}
	if err := ds.ctx.DB.Dispatch().Create(call); err != nil {
		return nil, err
	}

	metrics.DispatchCalls.WithLabelValues(metrics.Priority(priority), source).Inc()
	ds.notify(call)

	return call, nil
}

func (ds dispatchService) Advance(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestCallAdvance)

	if _, _, err := authorize(ds.ctx, r.ActorId, models.CapManageDispatch); err != nil {
		return nil, err
	}
	if !r.Status.Valid() {
		return nil, apperr.Invalid("unknown call status %q", r.Status)
	}

	call, err := ds.ctx.DB.Dispatch().Advance(r.ID, r.Status, r.ActorId, unix(ds.ctx))
	if err != nil {
		return nil, err
	}
	metrics.DispatchTransitions.WithLabelValues(string(call.Status)).Inc()

	return call, nil
}

// Reassign moves an open call to another patrol without touching its status.
func (ds dispatchService) Reassign(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestCallReassign)

	if _, _, err := authorize(ds.ctx, r.ActorId, models.CapManageDispatch); err != nil {
		return nil, err
	}
	if err := required("patrolId", r.PatrolId); err != nil {
		return nil, err
	}

	call, err := ds.ctx.DB.Dispatch().Reassign(r.ID, r.PatrolId, r.ActorId, unix(ds.ctx))
	if err != nil {
		return nil, err
	}
	return call, nil
}

// notify posts new calls to the dispatch webhook in the background.
func (ds dispatchService) notify(call models.DispatchCall) {
	hook := global.Config.Webhook.DispatchUrl
	if hook == "" {
		return
	}

	msg := sender.Message{
		Title:   fmt.Sprintf("New call: %s", call.Type),
		Content: call.Description,
		Urgent:  call.Priority == models.CallPriorityUrgent,
		Fields: []sender.Field{
			{Name: "Location", Value: call.Location},
			{Name: "Priority", Value: metrics.Priority(call.Priority)},
			{Name: "Status", Value: string(call.Status)},
		},
	}
	if call.PatrolId != nil {
		msg.Fields = append(msg.Fields, sender.Field{Name: "Patrol", Value: *call.PatrolId})
	}

	go func() {
		if err := sender.Sender(context.Background(), sender.NewDiscordSender(hook), msg); err != nil {
			logc.Errorf(ds.ctx.Ctx, "dispatch notification for %s: %s", call.ID, err.Error())
		}
	}()
}
