package initialization

import (
	"mdt/internal/ctx"
	"mdt/internal/registry"
	"mdt/internal/services"

	"github.com/zeromicro/go-zero/core/logc"
)

// InitCasbin loads the enforcer, then rewrites route policies from the
// registry and grade groupings from the grades table. Both are derived
// data, so they are rebuilt on every boot.
func InitCasbin(ctx *ctx.Context) error {
	if _, err := services.CasbinPermissionService.GetEnforcer(); err != nil {
		return err
	}

	if err := registry.NewApiRegistry(ctx).RegisterToCasbin(); err != nil {
		return err
	}

	if err := services.CasbinPermissionService.SyncAllGrades(); err != nil {
		return err
	}

	logc.Infof(ctx.Ctx, "casbin ready")
	return nil
}
