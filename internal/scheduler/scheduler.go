package scheduler

import (
	"context"
	"log"

	"bankcore/internal/config"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the housekeeping jobs on their cron schedules.
type Scheduler struct {
	cron *cron.Cron
	jobs *Jobs
	cfg  config.Config
}

func New(jobs *Jobs, cfg config.Config) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		jobs: jobs,
		cfg:  cfg,
	}
}

func (s *Scheduler) Start() {
	s.register(s.cfg.UnlockSweepSpec, "lock sweep", s.jobs.SweepExpiredLocks)
	s.register(s.cfg.SuspiciousScanSpec, "suspicious activity scan", s.jobs.ScanSuspiciousActivity)
	s.register(s.cfg.SnapshotSpec, "state snapshot", s.jobs.SnapshotState)
	s.cron.Start()
}

// Stop halts scheduling; the returned context is done once any running
// job has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) register(spec, name string, fn func()) {
	if _, err := s.cron.AddFunc(spec, fn); err != nil {
		log.Printf("failed to schedule %s (%q): %v", name, spec, err)
		return
	}
	log.Printf("scheduled %s (%s)", name, spec)
}
