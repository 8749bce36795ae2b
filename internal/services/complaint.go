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

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logc"
)

const maxComplaintLength = 5000

type complaintService struct {
	ctx *ctx.Context
}

type InterComplaintService interface {
	Submit(req interface{}) (interface{}, interface{})
	Track(req interface{}) (interface{}, interface{})
	List(req interface{}) (interface{}, interface{})
	Get(req interface{}) (interface{}, interface{})
	Assign(req interface{}) (interface{}, interface{})
	Transition(req interface{}) (interface{}, interface{})
}

func newInterComplaintService(ctx *ctx.Context) InterComplaintService {
	return &complaintService{
		ctx: ctx,
	}
}

// Submit files a citizen complaint. The only thing handed back is the
// receipt with the tracking number.
func (cs complaintService) Submit(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestComplaintSubmit)

	if err := required("citizenName", r.CitizenName); err != nil {
		return nil, err
	}
	if err := required("description", r.Description); err != nil {
		return nil, err
	}
	if len(r.Description) > maxComplaintLength {
		return nil, apperr.Invalid("description must be at most %d bytes", maxComplaintLength)
	}

	now := unix(cs.ctx)
	complaint := models.Complaint{
		ID:             tools.NewId("cp"),
		TrackingNumber: uuid.NewString(),
		CitizenName:    strings.TrimSpace(r.CitizenName),
		CitizenContact: strings.TrimSpace(r.CitizenContact),
		OfficerName:    strings.TrimSpace(r.OfficerName),
		Description:    strings.TrimSpace(r.Description),
		IncidentAt:     r.IncidentAt,
		Status:         models.ComplaintReceived,
		SubmitIP:       r.SubmitIP,
		CreateAt:       now,
		UpdateAt:       now,
	}
	if err := cs.ctx.DB.Complaint().Create(complaint); err != nil {
		return nil, err
	}

	metrics.ComplaintsSubmitted.Inc()
	cs.acknowledge(complaint)

	return receipt(complaint), nil
}

// Track is public: it reveals the status only, never the content.
func (cs complaintService) Track(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestComplaintTrack)

	if _, err := uuid.Parse(r.TrackingNumber); err != nil {
		return nil, apperr.NotFound("complaint", r.TrackingNumber)
	}

	complaint, err := cs.ctx.DB.Complaint().GetByTracking(r.TrackingNumber)
	if err != nil {
		return nil, err
	}
	return receipt(complaint), nil
}

func (cs complaintService) List(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestComplaintQuery)

	if _, _, err := authorize(cs.ctx, r.ActorId, models.CapManageComplaints); err != nil {
		return nil, err
	}
	if r.Status != "" && !r.Status.Valid() {
		return nil, apperr.Invalid("unknown complaint status %q", r.Status)
	}

	list, count, err := cs.ctx.DB.Complaint().List(r.Status, r.HandlerId, r.Page)
	if err != nil {
		return nil, err
	}

	page := r.Page
	page.Total = count
	return types.ResponseComplaintList{
		List: list,
		Page: page,
	}, nil
}

func (cs complaintService) Get(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestComplaintQuery)

	if _, _, err := authorize(cs.ctx, r.ActorId, models.CapManageComplaints); err != nil {
		return nil, err
	}

	data, err := cs.ctx.DB.Complaint().Get(r.ID)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (cs complaintService) Assign(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestComplaintAssign)

	if _, _, err := authorize(cs.ctx, r.ActorId, models.CapManageComplaints); err != nil {
		return nil, err
	}

	handler, err := cs.ctx.DB.Officer().Get(r.HandlerId)
	if err != nil {
		return nil, err
	}
	if !handler.IsActive() {
		return nil, apperr.ErrOfficerInactive.WithMessage("officer %s is disabled", handler.Username)
	}

	data, err := cs.ctx.DB.Complaint().Assign(r.ID, handler.ID, r.ActorId, unix(cs.ctx))
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (cs complaintService) Transition(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestComplaintTransition)

	if _, _, err := authorize(cs.ctx, r.ActorId, models.CapManageComplaints); err != nil {
		return nil, err
	}

	data, err := cs.ctx.DB.Complaint().Transition(r.ID, r.Status, strings.TrimSpace(r.Resolution), r.ActorId, unix(cs.ctx))
	if err != nil {
		return nil, err
	}
	logc.Infof(cs.ctx.Ctx, "complaint %s moved to %s by %s", data.ID, data.Status, r.ActorId)

	return data, nil
}

// acknowledge mails the tracking number when the citizen left an address.
func (cs complaintService) acknowledge(c models.Complaint) {
	smtpCfg := global.Config.Smtp
	if !smtpCfg.Enable || !strings.Contains(c.CitizenContact, "@") {
		return
	}

	msg := sender.Message{
		Title:   "Your complaint has been received",
		Content: fmt.Sprintf("Hello %s,\n\nYour complaint has been registered by the internal affairs office.", c.CitizenName),
		Fields: []sender.Field{
			{Name: "Tracking number", Value: c.TrackingNumber},
			{Name: "Status", Value: string(c.Status)},
		},
		To: []string{c.CitizenContact},
	}

	go func() {
		if err := sender.Sender(context.Background(), sender.NewMailSender(smtpCfg), msg); err != nil {
			logc.Errorf(cs.ctx.Ctx, "complaint acknowledgement for %s: %s", c.ID, err.Error())
		}
	}()
}

func receipt(c models.Complaint) types.ResponseComplaintReceipt {
	return types.ResponseComplaintReceipt{
		TrackingNumber: c.TrackingNumber,
		Status:         c.Status,
		CreateAt:       c.CreateAt,
		UpdateAt:       c.UpdateAt,
	}
}
