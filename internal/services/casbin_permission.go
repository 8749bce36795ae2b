package services

import (
	"fmt"
	"sync"
	"time"

	"mdt/internal/ctx"
	"mdt/internal/models"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
)

// casbinModel authorizes a grade for a route when the grade is grouped
// under the capability that owns the route. Routes may carry gin-style
// parameters, matched with keyMatch2.
const casbinModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && r.act == p.act
`

type casbinService struct {
	ctx *ctx.Context

	once     sync.Once
	enforcer *casbin.SyncedCachedEnforcer
	err      error
}

type InterCasbinService interface {
	// CheckPermission reports whether gradeId may call method on path.
	CheckPermission(gradeId, path, method string) (bool, error)

	// SyncRoutes replaces every route policy with routes.
	SyncRoutes(routes []models.PermissionInfo) error
	// SyncGrade regroups gradeId under the capabilities it holds.
	SyncGrade(grade models.Grade) error
	RemoveGrade(gradeId string) error
	// SyncAllGrades rebuilds groupings for every stored grade.
	SyncAllGrades() error
	// ReloadPolicy rereads every rule from the store, picking up changes
	// written by other instances.
	ReloadPolicy() error

	RoutePermissions() ([]models.PermissionInfo, error)
	GetEnforcer() (*casbin.SyncedCachedEnforcer, error)
}

func newInterCasbinService(ctx *ctx.Context) InterCasbinService {
	return &casbinService{
		ctx: ctx,
	}
}

// GetEnforcer builds the enforcer on first use.
func (c *casbinService) GetEnforcer() (*casbin.SyncedCachedEnforcer, error) {
	c.once.Do(func() {
		adapter, err := gormadapter.NewAdapterByDB(c.ctx.DB.DB())
		if err != nil {
			c.err = fmt.Errorf("casbin adapter: %w", err)
			return
		}

		m, err := model.NewModelFromString(casbinModel)
		if err != nil {
			c.err = fmt.Errorf("casbin model: %w", err)
			return
		}

		enforcer, err := casbin.NewSyncedCachedEnforcer(m, adapter)
		if err != nil {
			c.err = fmt.Errorf("casbin enforcer: %w", err)
			return
		}

		enforcer.SetExpireTime(time.Hour)
		if err := enforcer.LoadPolicy(); err != nil {
			c.err = fmt.Errorf("casbin load policy: %w", err)
			return
		}

		c.enforcer = enforcer
	})

	return c.enforcer, c.err
}

func (c *casbinService) CheckPermission(gradeId, path, method string) (bool, error) {
	enforcer, err := c.GetEnforcer()
	if err != nil {
		return false, err
	}
	return enforcer.Enforce(gradeId, path, method)
}

func (c *casbinService) SyncRoutes(routes []models.PermissionInfo) error {
	enforcer, err := c.GetEnforcer()
	if err != nil {
		return err
	}

	current, err := enforcer.GetPolicy()
	if err != nil {
		return err
	}
	if len(current) > 0 {
		if _, err := enforcer.RemovePolicies(current); err != nil {
			return fmt.Errorf("clear route policies: %w", err)
		}
	}

	seen := make(map[string]bool, len(routes))
	var rules [][]string
	for _, r := range routes {
		key := string(r.Capability) + "|" + r.Path + "|" + r.Method
		if seen[key] {
			continue
		}
		seen[key] = true
		rules = append(rules, []string{string(r.Capability), r.Path, r.Method})
	}

	if len(rules) > 0 {
		if _, err := enforcer.AddPolicies(rules); err != nil {
			return fmt.Errorf("add route policies: %w", err)
		}
	}
	return enforcer.InvalidateCache()
}

func (c *casbinService) SyncGrade(grade models.Grade) error {
	enforcer, err := c.GetEnforcer()
	if err != nil {
		return err
	}

	if _, err := enforcer.RemoveFilteredGroupingPolicy(0, grade.ID); err != nil {
		return fmt.Errorf("clear groupings of %s: %w", grade.ID, err)
	}

	caps := grade.Permissions.Capabilities()
	if grade.IsSuperuser() {
		caps = append([]models.Capability{models.CapBase}, models.AllCapabilities()...)
	}

	rules := make([][]string, 0, len(caps))
	for _, capability := range caps {
		rules = append(rules, []string{grade.ID, string(capability)})
	}
	if _, err := enforcer.AddGroupingPolicies(rules); err != nil {
		return fmt.Errorf("group %s: %w", grade.ID, err)
	}
	return enforcer.InvalidateCache()
}

func (c *casbinService) RemoveGrade(gradeId string) error {
	enforcer, err := c.GetEnforcer()
	if err != nil {
		return err
	}

	if _, err := enforcer.RemoveFilteredGroupingPolicy(0, gradeId); err != nil {
		return err
	}
	return enforcer.InvalidateCache()
}

func (c *casbinService) SyncAllGrades() error {
	grades, err := c.ctx.DB.Grade().List()
	if err != nil {
		return err
	}
	for _, g := range grades {
		if err := c.SyncGrade(g); err != nil {
			return err
		}
	}
	return nil
}

func (c *casbinService) ReloadPolicy() error {
	enforcer, err := c.GetEnforcer()
	if err != nil {
		return err
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("casbin reload policy: %w", err)
	}
	return enforcer.InvalidateCache()
}

func (c *casbinService) RoutePermissions() ([]models.PermissionInfo, error) {
	enforcer, err := c.GetEnforcer()
	if err != nil {
		return nil, err
	}

	policies, err := enforcer.GetPolicy()
	if err != nil {
		return nil, err
	}

	out := make([]models.PermissionInfo, 0, len(policies))
	for _, p := range policies {
		if len(p) < 3 {
			continue
		}
		out = append(out, models.PermissionInfo{
			Capability: models.Capability(p[0]),
			Path:       p[1],
			Method:     p[2],
		})
	}
	return out, nil
}
