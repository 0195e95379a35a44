package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/lateness"
)

// LatenessJobs keeps the monthly ledger projections in sync. Punch
// ingestion and approvals recompute eagerly; this sweep catches months
// whose inputs changed out of band (settings edits, manual balance fixes).
type LatenessJobs struct {
	attendanceRepo  attendance.AttendanceRepository
	latenessService lateness.LatenessService
}

func NewLatenessJobs(
	attendanceRepo attendance.AttendanceRepository,
	latenessService lateness.LatenessService,
) *LatenessJobs {
	return &LatenessJobs{
		attendanceRepo:  attendanceRepo,
		latenessService: latenessService,
	}
}

func (j *LatenessJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("recompute_late_ledgers", 1*time.Hour, j.RecomputeCurrentMonth)
}

// RecomputeCurrentMonth rebuilds every employee-month ledger that contains
// at least one late day in the current month.
func (j *LatenessJobs) RecomputeCurrentMonth(ctx context.Context) error {
	// Only run at midnight (00:00-00:59 UTC)
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	now := time.Now().UTC()
	slog.Info("Cron: Starting late ledger recompute job", "year", now.Year(), "month", int(now.Month()))

	months, err := j.attendanceRepo.ListLateEmployeeMonths(ctx, now.Year(), now.Month(), 1)
	if err != nil {
		return fmt.Errorf("failed to list late employee months: %w", err)
	}

	if len(months) == 0 {
		slog.Info("Cron: No late employee months found")
		return nil
	}

	var failed int
	for _, em := range months {
		if err := j.latenessService.RecomputeMonth(ctx, em.EmployeeID, em.Year, em.Month, em.CompanyID); err != nil {
			// One bad month must not block the rest of the sweep.
			slog.Error("Cron: Ledger recompute failed",
				"employee_id", em.EmployeeID,
				"year", em.Year,
				"month", int(em.Month),
				"error", err,
			)
			failed++
		}
	}

	slog.Info("Cron: Late ledger recompute finished", "total", len(months), "failed", failed)
	if failed > 0 {
		return fmt.Errorf("ledger recompute failed for %d of %d employee months", failed, len(months))
	}

	return nil
}
