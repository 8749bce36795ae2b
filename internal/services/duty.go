package services

import (
	"fmt"
	"time"

	"mdt/internal/ctx"
	"mdt/internal/models"
	"mdt/internal/types"
	"mdt/pkg/apperr"
	"mdt/pkg/metrics"

	"github.com/zeromicro/go-zero/core/logc"
	"go.uber.org/multierr"
)

type dutyService struct {
	ctx *ctx.Context
}

type InterDutyService interface {
	Start(req interface{}) (interface{}, interface{})
	End(req interface{}) (interface{}, interface{})
	ForceEnd(req interface{}) (interface{}, interface{})
	Status(req interface{}) (interface{}, interface{})
	History(req interface{}) (interface{}, interface{})
	OnDuty(req interface{}) (interface{}, interface{})
	// CloseStale ends every session open for longer than maxAge.
	CloseStale(maxAge time.Duration) (int, error)
}

func newInterDutyService(ctx *ctx.Context) InterDutyService {
	return &dutyService{
		ctx: ctx,
	}
}

func (d dutyService) Start(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestDutyStart)

	if _, _, err := loadActor(d.ctx, r.OfficerId); err != nil {
		return nil, err
	}

	session, err := d.ctx.DB.Duty().Start(r.OfficerId, unix(d.ctx))
	if err != nil {
		return nil, err
	}
	metrics.DutyTransitions.WithLabelValues("start").Inc()
	logc.Infof(d.ctx.Ctx, "officer %s went on duty", r.OfficerId)

	return session, nil
}

// End closes the caller's own session. Patrol membership and the operator
// seat go with it.
func (d dutyService) End(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestDutyEnd)

	session, err := d.ctx.DB.Duty().End(r.OfficerId, unix(d.ctx), models.EndedBySelf, r.OfficerId)
	if err != nil {
		return nil, err
	}
	metrics.DutyTransitions.WithLabelValues(models.EndedBySelf).Inc()
	logc.Infof(d.ctx.Ctx, "officer %s went off duty after %ds", r.OfficerId, session.Duration)

	return session, nil
}

func (d dutyService) ForceEnd(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestDutyForceEnd)

	if _, _, err := authorize(d.ctx, r.ActorId, models.CapForceEndDuty); err != nil {
		return nil, err
	}
	if r.ActorId == r.OfficerId {
		return nil, apperr.ErrSelfForceEnd
	}

	session, err := d.ctx.DB.Duty().End(r.OfficerId, unix(d.ctx), models.EndedByForce, r.ActorId)
	if err != nil {
		return nil, err
	}
	metrics.DutyTransitions.WithLabelValues(models.EndedByForce).Inc()
	logc.Infof(d.ctx.Ctx, "duty of %s force-ended by %s", r.OfficerId, r.ActorId)

	return session, nil
}

func (d dutyService) Status(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestDutyStatus)

	if err := d.canView(r.ActorId, r.OfficerId); err != nil {
		return nil, err
	}

	officer, err := d.ctx.DB.Officer().Get(r.OfficerId)
	if err != nil {
		return nil, err
	}

	status := types.ResponseDutyStatus{
		OfficerId:           officer.ID,
		TotalServiceSeconds: officer.TotalServiceSeconds,
	}

	session, open, err := d.ctx.DB.Duty().Open(officer.ID)
	if err != nil {
		return nil, err
	}
	if open {
		status.OnDuty = true
		status.Session = &session
		status.ElapsedSeconds = session.Elapsed(unix(d.ctx))
	}

	member, patrol, ok, err := d.ctx.DB.Patrol().MembershipOf(officer.ID)
	if err != nil {
		return nil, err
	}
	if ok {
		status.Patrol = &types.PatrolBrief{
			ID:       patrol.ID,
			Name:     patrol.Name,
			CallSign: patrol.CallSign,
			Role:     member.Role,
		}
	}

	operator, ok, err := d.ctx.DB.Centrale().CurrentOperator()
	if err != nil {
		return nil, err
	}
	status.IsOperator = ok && operator.OfficerId == officer.ID

	return status, nil
}

func (d dutyService) History(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestDutyHistory)

	if err := d.canView(r.ActorId, r.OfficerId); err != nil {
		return nil, err
	}

	if _, err := d.ctx.DB.Officer().Get(r.OfficerId); err != nil {
		return nil, err
	}

	list, count, err := d.ctx.DB.Duty().History(r.OfficerId, r.Page)
	if err != nil {
		return nil, err
	}

	page := r.Page
	page.Total = count
	return types.ResponseDutyHistory{
		List: list,
		Page: page,
	}, nil
}

// canView lets an officer read their own record; reading anyone else's
// needs the centrale view.
func (d dutyService) canView(actorId, officerId string) error {
	if actorId == officerId {
		_, _, err := loadActor(d.ctx, actorId)
		return err
	}
	_, _, err := authorize(d.ctx, actorId, models.CapViewCentrale)
	return err
}

func (d dutyService) OnDuty(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestOnDuty)

	if _, _, err := authorize(d.ctx, r.ActorId, models.CapViewCentrale); err != nil {
		return nil, err
	}

	data, err := d.onDuty()
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (d dutyService) onDuty() ([]types.OnDutyOfficer, error) {
	sessions, err := d.ctx.DB.Duty().ListOpen()
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(sessions))
	for _, s := range sessions {
		ids = append(ids, s.OfficerId)
	}
	briefs, err := d.ctx.DB.Officer().Briefs(ids)
	if err != nil {
		return nil, err
	}

	now := unix(d.ctx)
	out := make([]types.OnDutyOfficer, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, types.OnDutyOfficer{
			Officer:        briefs[s.OfficerId],
			SessionId:      s.ID,
			StartAt:        s.StartAt,
			ElapsedSeconds: s.Elapsed(now),
		})
	}
	return out, nil
}

func (d dutyService) CloseStale(maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		return 0, nil
	}

	now := d.ctx.Now()
	stale, err := d.ctx.DB.Duty().StaleOpen(now.Add(-maxAge).Unix())
	if err != nil {
		return 0, err
	}

	var (
		closed int
		errs   error
	)
	for _, s := range stale {
		_, err := d.ctx.DB.Duty().End(s.OfficerId, now.Unix(), models.EndedBySystem, "")
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("close session %s: %w", s.ID, err))
			continue
		}
		closed++
		metrics.DutyTransitions.WithLabelValues(models.EndedBySystem).Inc()
		logc.Infof(d.ctx.Ctx, "closed stale duty session %s of %s", s.ID, s.OfficerId)
	}
	return closed, errs
}
