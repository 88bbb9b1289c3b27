// Package job runs periodic tasks on cron schedules.
//
// Tasks are structs with Name() and Handle() methods; no interface import is
// required:
//
//	type ReloadBundles struct{ registry *i18n.Registry }
//
//	func (ReloadBundles) Name() string { return "reload_bundles" }
//
//	func (t ReloadBundles) Handle(ctx context.Context) error {
//	    return t.registry.ReloadAll(ctx)
//	}
//
// Register tasks before Run:
//
//	s := job.New(job.WithLogger(log), job.WithTimeout(time.Minute))
//	if err := s.Schedule(ReloadBundles{reg}, "*/5 * * * *"); err != nil {
//	    return err
//	}
//	return s.Run(ctx)
//
// Schedules use the standard five-field cron syntax plus descriptors such as
// "@hourly" and "@every 30s". A run that is still in progress when its next
// tick fires is skipped. Handler errors and panics are logged and never stop
// the scheduler.
package job
