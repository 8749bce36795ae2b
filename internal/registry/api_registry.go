package registry

import (
	"mdt/internal/ctx"
	"mdt/internal/models"
	"mdt/internal/services"

	"github.com/zeromicro/go-zero/core/logc"
)

// Prefix is where every MDT route is mounted.
const Prefix = "/api/mdt"

// ApiEndpoint is one protected route and the capability that opens it.
type ApiEndpoint struct {
	Path        string            `json:"path"`
	Method      string            `json:"method"`
	Description string            `json:"description"`
	Group       string            `json:"group"`
	Capability  models.Capability `json:"capability"`
}

// ApiRegistry keeps the casbin route policies in step with the router.
type ApiRegistry struct {
	ctx *ctx.Context
}

func NewApiRegistry(ctx *ctx.Context) *ApiRegistry {
	return &ApiRegistry{
		ctx: ctx,
	}
}

// GetAllApiEndpoints lists every route behind the casbin middleware. Public
// routes (login, citizen complaints, health, metrics) are not listed.
func GetAllApiEndpoints() []ApiEndpoint {
	return []ApiEndpoint{
		// auth
		{"/api/mdt/auth/logout", "POST", "Log out", "auth", models.CapBase},
		{"/api/mdt/auth/me", "GET", "Own profile", "auth", models.CapBase},
		{"/api/mdt/auth/password", "POST", "Change own password", "auth", models.CapBase},

		// grades
		{"/api/mdt/grades", "GET", "List grades", "grades", models.CapBase},
		{"/api/mdt/grades", "POST", "Create grade", "grades", models.CapManageGrades},
		{"/api/mdt/grades/capabilities", "GET", "List capabilities", "grades", models.CapManageGrades},
		{"/api/mdt/grades/:id", "PUT", "Update grade", "grades", models.CapManageGrades},
		{"/api/mdt/grades/:id/permissions", "PUT", "Set grade permissions", "grades", models.CapManageGrades},
		{"/api/mdt/grades/:id", "DELETE", "Delete grade", "grades", models.CapManageGrades},

		// officers
		{"/api/mdt/officers", "GET", "List officers", "officers", models.CapBase},
		{"/api/mdt/officers/:id", "GET", "Get officer", "officers", models.CapBase},
		{"/api/mdt/officers", "POST", "Create officer", "officers", models.CapManageOfficers},
		{"/api/mdt/officers/:id", "PUT", "Update officer", "officers", models.CapManageOfficers},
		{"/api/mdt/officers/:id/grade", "PUT", "Change officer grade", "officers", models.CapManageOfficers},
		{"/api/mdt/officers/:id/disable", "POST", "Disable officer", "officers", models.CapManageOfficers},
		{"/api/mdt/officers/:id/enable", "POST", "Enable officer", "officers", models.CapManageOfficers},
		{"/api/mdt/officers/:id/password", "PUT", "Reset officer password", "officers", models.CapManageOfficers},

		// duty
		{"/api/mdt/duty/start", "POST", "Go on duty", "duty", models.CapBase},
		{"/api/mdt/duty/end", "POST", "Go off duty", "duty", models.CapBase},
		{"/api/mdt/duty/status", "GET", "Own duty status", "duty", models.CapBase},
		{"/api/mdt/duty/history", "GET", "Own duty history", "duty", models.CapBase},
		{"/api/mdt/duty/status/:officerId", "GET", "Officer duty status", "duty", models.CapViewCentrale},
		{"/api/mdt/duty/history/:officerId", "GET", "Officer duty history", "duty", models.CapViewCentrale},
		{"/api/mdt/duty/on-duty", "GET", "Officers on duty", "duty", models.CapViewCentrale},
		{"/api/mdt/duty/force-end/:officerId", "POST", "Force end of duty", "duty", models.CapForceEndDuty},

		// patrols
		{"/api/mdt/patrols", "GET", "List patrols", "patrols", models.CapBase},
		{"/api/mdt/patrols/:id", "GET", "Get patrol", "patrols", models.CapBase},
		{"/api/mdt/patrols", "POST", "Create patrol", "patrols", models.CapManagePatrols},
		{"/api/mdt/patrols/:id", "PUT", "Update patrol", "patrols", models.CapManagePatrols},
		{"/api/mdt/patrols/:id", "DELETE", "Delete patrol", "patrols", models.CapManagePatrols},
		{"/api/mdt/patrols/:id/members", "POST", "Assign officer", "patrols", models.CapManagePatrols},
		{"/api/mdt/patrols/:id/members/:officerId", "DELETE", "Unassign officer", "patrols", models.CapManagePatrols},
		{"/api/mdt/patrols/:id/leader", "PUT", "Set patrol leader", "patrols", models.CapManagePatrols},

		// calls
		{"/api/mdt/calls", "GET", "List calls", "calls", models.CapBase},
		{"/api/mdt/calls/:id", "GET", "Get call", "calls", models.CapBase},
		{"/api/mdt/calls", "POST", "Create call", "calls", models.CapManageDispatch},
		{"/api/mdt/calls/:id/status", "PUT", "Advance call", "calls", models.CapManageDispatch},
		{"/api/mdt/calls/:id/patrol", "PUT", "Reassign call", "calls", models.CapManageDispatch},

		// centrale
		{"/api/mdt/centrale/overview", "GET", "Dispatch board", "centrale", models.CapViewCentrale},
		{"/api/mdt/centrale/notes", "GET", "List notes", "centrale", models.CapViewCentrale},
		{"/api/mdt/centrale/notes", "POST", "Create note", "centrale", models.CapManageNotes},
		{"/api/mdt/centrale/notes/:id/pin", "PUT", "Pin note", "centrale", models.CapManageNotes},
		{"/api/mdt/centrale/notes/:id", "DELETE", "Delete note", "centrale", models.CapManageNotes},
		{"/api/mdt/centrale/operator", "GET", "Current operator", "centrale", models.CapBase},
		{"/api/mdt/centrale/operator", "PUT", "Assign operator", "centrale", models.CapAssignOperator},
		{"/api/mdt/centrale/operator", "DELETE", "Release operator", "centrale", models.CapAssignOperator},

		// complaints
		{"/api/mdt/complaints", "GET", "List complaints", "complaints", models.CapManageComplaints},
		{"/api/mdt/complaints/:id", "GET", "Get complaint", "complaints", models.CapManageComplaints},
		{"/api/mdt/complaints/:id/handler", "PUT", "Assign complaint", "complaints", models.CapManageComplaints},
		{"/api/mdt/complaints/:id/status", "PUT", "Move complaint", "complaints", models.CapManageComplaints},

		// audit
		{"/api/mdt/audit-logs", "GET", "List audit records", "audit", models.CapViewAudit},
	}
}

// Permissions converts the endpoints into casbin route policies.
func Permissions() []models.PermissionInfo {
	endpoints := GetAllApiEndpoints()
	out := make([]models.PermissionInfo, 0, len(endpoints))
	for _, e := range endpoints {
		out = append(out, models.PermissionInfo{
			Path:       e.Path,
			Method:     e.Method,
			Capability: e.Capability,
			Group:      e.Group,
		})
	}
	return out
}

// RegisterToCasbin replaces the stored route policies with the current list.
func (r *ApiRegistry) RegisterToCasbin() error {
	routes := Permissions()
	logc.Infof(r.ctx.Ctx, "registering %d routes with casbin", len(routes))

	if err := services.CasbinPermissionService.SyncRoutes(routes); err != nil {
		return err
	}
	return nil
}
