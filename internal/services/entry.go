package services

import (
	"mdt/internal/ctx"
)

var (
	AuthService             InterAuthService
	GradeService            InterGradeService
	OfficerService          InterOfficerService
	DutyService             InterDutyService
	PatrolService           InterPatrolService
	DispatchService         InterDispatchService
	CentraleService         InterCentraleService
	ComplaintService        InterComplaintService
	AuditLogService         InterAuditLogService
	CasbinPermissionService InterCasbinService
)

func NewServices(ctx *ctx.Context) {
	CasbinPermissionService = newInterCasbinService(ctx) // grade changes resync the enforcer
	AuthService = newInterAuthService(ctx)
	GradeService = newInterGradeService(ctx)
	OfficerService = newInterOfficerService(ctx)
	DutyService = newInterDutyService(ctx)
	PatrolService = newInterPatrolService(ctx)
	DispatchService = newInterDispatchService(ctx)
	CentraleService = newInterCentraleService(ctx)
	ComplaintService = newInterComplaintService(ctx)
	AuditLogService = newInterAuditLogService(ctx)
}
