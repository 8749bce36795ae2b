package services

import (
	"strings"

	"mdt/internal/ctx"
	"mdt/internal/models"
	"mdt/internal/types"
	"mdt/pkg/apperr"
	"mdt/pkg/tools"

	"github.com/zeromicro/go-zero/core/logc"
	"golang.org/x/sync/errgroup"
)

type centraleService struct {
	ctx *ctx.Context
}

type InterCentraleService interface {
	Overview(req interface{}) (interface{}, interface{})
	CreateNote(req interface{}) (interface{}, interface{})
	ListNotes(req interface{}) (interface{}, interface{})
	PinNote(req interface{}) (interface{}, interface{})
	DeleteNote(req interface{}) (interface{}, interface{})
	AssignOperator(req interface{}) (interface{}, interface{})
	CurrentOperator(req interface{}) (interface{}, interface{})
	ReleaseOperator(req interface{}) (interface{}, interface{})
}

func newInterCentraleService(ctx *ctx.Context) InterCentraleService {
	return &centraleService{
		ctx: ctx,
	}
}

// Overview assembles the dispatch board in one response.
func (cs centraleService) Overview(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestCentraleOverview)

	if _, _, err := authorize(cs.ctx, r.ActorId, models.CapViewCentrale); err != nil {
		return nil, err
	}

	var (
		out types.ResponseCentraleOverview
		g   errgroup.Group
	)

	g.Go(func() error {
		patrols, err := cs.ctx.DB.Patrol().List()
		out.Patrols = patrols
		return err
	})
	g.Go(func() error {
		calls, _, err := cs.ctx.DB.Dispatch().List("", true, "", models.Page{Size: 200})
		out.ActiveCalls = calls
		return err
	})
	g.Go(func() error {
		operator, ok, err := cs.ctx.DB.Centrale().CurrentOperator()
		if ok {
			out.Operator = &operator
		}
		return err
	})
	g.Go(func() error {
		notes, err := cs.ctx.DB.Centrale().ListNotes(true, "")
		out.PinnedNotes = notes
		return err
	})
	g.Go(func() error {
		counts, err := cs.ctx.DB.Dispatch().CountByStatus()
		out.CallCounts = counts
		return err
	})
	g.Go(func() error {
		onDuty, err := dutyService{ctx: cs.ctx}.onDuty()
		out.OnDuty = onDuty
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if out.Patrols == nil {
		out.Patrols = []models.Patrol{}
	}
	if out.ActiveCalls == nil {
		out.ActiveCalls = []models.DispatchCall{}
	}
	if out.PinnedNotes == nil {
		out.PinnedNotes = []models.CentraleNote{}
	}
	out.GeneratedAt = unix(cs.ctx)

	return out, nil
}

func (cs centraleService) CreateNote(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestNoteCreate)

	if _, _, err := authorize(cs.ctx, r.ActorId, models.CapManageNotes); err != nil {
		return nil, err
	}
	if err := required("content", r.Content); err != nil {
		return nil, err
	}

	noteType := r.Type
	if noteType == "" {
		noteType = models.NoteInfo
	}
	if !noteType.Valid() {
		return nil, apperr.Invalid("unknown note type %q", noteType)
	}

	var patrolId *string
	if r.PatrolId != nil && strings.TrimSpace(*r.PatrolId) != "" {
		patrolId = tools.StringPtr(strings.TrimSpace(*r.PatrolId))
	}

	note := models.CentraleNote{
		ID:       tools.NewId("nt"),
		AuthorId: r.ActorId,
		PatrolId: patrolId,
		Content:  strings.TrimSpace(r.Content),
		Type:     noteType,
		Pinned:   r.Pinned,
		CreateAt: unix(cs.ctx),
	}
	if err := cs.ctx.DB.Centrale().CreateNote(note); err != nil {
		return nil, err
	}

	return note, nil
}

func (cs centraleService) ListNotes(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestNoteQuery)

	if _, _, err := authorize(cs.ctx, r.ActorId, models.CapViewCentrale); err != nil {
		return nil, err
	}

	data, err := cs.ctx.DB.Centrale().ListNotes(r.PinnedOnly, r.PatrolId)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (cs centraleService) PinNote(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestNotePin)

	if _, _, err := authorize(cs.ctx, r.ActorId, models.CapManageNotes); err != nil {
		return nil, err
	}

	data, err := cs.ctx.DB.Centrale().SetPinned(r.ID, r.Pinned)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (cs centraleService) DeleteNote(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestNoteQuery)

	if _, _, err := authorize(cs.ctx, r.ActorId, models.CapManageNotes); err != nil {
		return nil, err
	}
	if err := cs.ctx.DB.Centrale().DeleteNote(r.ID); err != nil {
		return nil, err
	}
	return "note deleted", nil
}

// AssignOperator hands the operator seat to an on-duty officer, releasing
// whoever held it.
func (cs centraleService) AssignOperator(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestOperatorAssign)

	if _, _, err := authorize(cs.ctx, r.ActorId, models.CapAssignOperator); err != nil {
		return nil, err
	}
	if err := required("officerId", r.OfficerId); err != nil {
		return nil, err
	}

	operator, err := cs.ctx.DB.Centrale().AssignOperator(r.OfficerId, r.ActorId, unix(cs.ctx))
	if err != nil {
		return nil, err
	}
	logc.Infof(cs.ctx.Ctx, "centrale operator is now %s, assigned by %s", r.OfficerId, r.ActorId)

	return operator, nil
}

// CurrentOperator answers null when the seat is empty.
func (cs centraleService) CurrentOperator(req interface{}) (interface{}, interface{}) {
	operator, ok, err := cs.ctx.DB.Centrale().CurrentOperator()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return operator, nil
}

func (cs centraleService) ReleaseOperator(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestOperatorRelease)

	if _, _, err := authorize(cs.ctx, r.ActorId, models.CapAssignOperator); err != nil {
		return nil, err
	}

	operator, err := cs.ctx.DB.Centrale().ReleaseOperator(unix(cs.ctx))
	if err != nil {
		return nil, err
	}
	logc.Infof(cs.ctx.Ctx, "centrale operator %s released by %s", operator.OfficerId, r.ActorId)

	return operator, nil
}
