package watchdog

import (
	"fmt"
	"sync"
	"time"

	ctx2 "mdt/internal/ctx"
	"mdt/internal/global"
	"mdt/internal/services"

	"github.com/robfig/cron/v3"
	"github.com/zeromicro/go-zero/core/logc"
)

const (
	// staleDutySpec checks for forgotten sessions every five minutes.
	staleDutySpec = "0 */5 * * * *"
	// auditPurgeSpec runs daily at 03:00.
	auditPurgeSpec = "0 0 3 * * *"
	// policyReloadSpec picks up grade changes made on other instances.
	policyReloadSpec = "*/30 * * * * *"
)

// Scheduler runs the housekeeping jobs of the MDT: closing duty sessions
// left open past the shift limit, purging old audit records and reloading
// route permissions.
type Scheduler struct {
	ctx  *ctx2.Context
	cron *cron.Cron
	mu   sync.Mutex
	jobs map[string]cron.EntryID
}

func NewScheduler(ctx *ctx2.Context) *Scheduler {
	return &Scheduler{
		ctx:  ctx,
		cron: cron.New(cron.WithSeconds()), // "sec min hour dom month dow"
		jobs: make(map[string]cron.EntryID),
	}
}

// Start registers the built-in jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	if err := s.AddJob("stale-duty", staleDutySpec, s.CloseStaleDuty); err != nil {
		return err
	}
	if err := s.AddJob("audit-purge", auditPurgeSpec, s.PurgeAudit); err != nil {
		return err
	}
	if err := s.AddJob("policy-reload", policyReloadSpec, s.ReloadPolicy); err != nil {
		return err
	}

	s.cron.Start()
	logc.Infof(s.ctx.Ctx, "[Watchdog] started with %d jobs", len(s.jobs))
	return nil
}

func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	logc.Info(s.ctx.Ctx, "[Watchdog] stopped")
}

// AddJob schedules fn under name, replacing an earlier job of that name.
// Errors from fn are logged.
func (s *Scheduler) AddJob(name, spec string, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.jobs[name]; ok {
		s.cron.Remove(id)
	}

	id, err := s.cron.AddFunc(spec, func() {
		if err := fn(); err != nil {
			logc.Errorf(s.ctx.Ctx, "[Watchdog] %s: %s", name, err.Error())
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	s.jobs[name] = id
	return nil
}

// CloseStaleDuty ends sessions older than Duty.MaxShiftHours. Zero disables it.
func (s *Scheduler) CloseStaleDuty() error {
	hours := global.Config.Duty.MaxShiftHours
	if hours <= 0 {
		return nil
	}

	n, err := services.DutyService.CloseStale(time.Duration(hours) * time.Hour)
	if n > 0 {
		logc.Infof(s.ctx.Ctx, "[Watchdog] closed %d duty sessions open for more than %dh", n, hours)
	}
	return err
}

func (s *Scheduler) PurgeAudit() error {
	_, err := services.AuditLogService.Purge(global.Config.Audit.RetentionDays)
	return err
}

func (s *Scheduler) ReloadPolicy() error {
	return services.CasbinPermissionService.ReloadPolicy()
}
