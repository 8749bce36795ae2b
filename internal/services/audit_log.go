package services

import (
	"time"

	"mdt/internal/ctx"
	"mdt/internal/models"
	"mdt/internal/types"

	"github.com/zeromicro/go-zero/core/logc"
)

type auditLogService struct {
	ctx *ctx.Context
}

type InterAuditLogService interface {
	List(req interface{}) (interface{}, interface{})
	// Purge drops records older than retentionDays. Zero keeps everything.
	Purge(retentionDays int) (int64, error)
}

func newInterAuditLogService(ctx *ctx.Context) InterAuditLogService {
	return &auditLogService{
		ctx: ctx,
	}
}

func (as auditLogService) List(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestAuditLogQuery)

	if _, _, err := authorize(as.ctx, r.ViewerId, models.CapViewAudit); err != nil {
		return nil, err
	}

	list, count, err := as.ctx.DB.AuditLog().List(r.ActorId, r.Action, r.Page)
	if err != nil {
		return nil, err
	}

	page := r.Page
	page.Total = count
	return types.ResponseAuditLogList{
		List: list,
		Page: page,
	}, nil
}

func (as auditLogService) Purge(retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}

	cutoff := as.ctx.Now().Add(-time.Duration(retentionDays) * 24 * time.Hour).Unix()
	n, err := as.ctx.DB.AuditLog().DeleteBefore(cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logc.Infof(as.ctx.Ctx, "purged %d audit records older than %d days", n, retentionDays)
	}
	return n, nil
}
