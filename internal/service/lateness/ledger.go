package lateness

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/lateness"
	"github.com/shopspring/decimal"
)

// LateDay is the slice of an attendance record the ledger needs.
type LateDay struct {
	AttendanceID string
	Date         time.Time
	LateMinutes  int
	Incomplete   bool // no clock-out recorded
}

// ComputeMonth derives the month's ledger entries from its late days and the
// approved exemptions. It is a pure projection: calling it twice with the
// same inputs yields the same entries, which is what makes wholesale
// replacement of the stored month safe.
//
// Per entry, in order: an incomplete day is never deductible; an ordinal
// within the grace window uses grace; an approved application exempts the
// day; otherwise the deduction preference decides. Ordinals are assigned
// chronologically and never shift when an exemption lands retroactively.
func ComputeMonth(
	days []LateDay,
	approvedAttendanceIDs map[string]bool,
	settings lateness.Settings,
	dailyRate decimal.Decimal,
	leaveBalance float64,
	now time.Time,
) []lateness.LedgerEntry {
	sorted := make([]LateDay, len(days))
	copy(sorted, days)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	entries := make([]lateness.LedgerEntry, 0, len(sorted))
	remainingLeave := leaveBalance

	for i, day := range sorted {
		entry := lateness.LedgerEntry{
			AttendanceID:  day.AttendanceID,
			Date:          day.Date,
			Ordinal:       i + 1,
			LateMinutes:   day.LateMinutes,
			Incomplete:    day.Incomplete,
			DeductionType: lateness.DeductionNone,
			SalaryAmount:  decimal.Zero,
			ComputedAt:    now,
		}

		switch {
		case !settings.IsEnabled:
			// Ordinals are still tracked so reports stay meaningful, but
			// the deduction machinery is off.
		case day.Incomplete:
		case entry.Ordinal <= settings.GraceDaysPerMonth:
			entry.UsedGrace = true
		case approvedAttendanceIDs[day.AttendanceID]:
			entry.ApprovedExemption = true
		default:
			applyDeduction(&entry, settings.DeductionPreference, dailyRate, &remainingLeave)
		}

		entries = append(entries, entry)
	}

	return entries
}

func applyDeduction(entry *lateness.LedgerEntry, preference lateness.DeductionPreference, dailyRate decimal.Decimal, remainingLeave *float64) {
	switch preference {
	case lateness.PreferLeave:
		if *remainingLeave >= 1 {
			entry.DeductionType = lateness.DeductionLeave
			entry.LeaveDays = 1
			entry.Deducted = true
			*remainingLeave--
			return
		}
		// Exhausted balance falls back to salary, never to a failure.
		entry.DeductionType = lateness.DeductionSalary
		entry.SalaryAmount = dailyRate
		entry.Deducted = true
	case lateness.PreferSalary:
		entry.DeductionType = lateness.DeductionSalary
		entry.SalaryAmount = dailyRate
		entry.Deducted = true
	case lateness.PreferManual:
		// Held for an administrator; nothing is deducted automatically.
		entry.DeductionType = lateness.DeductionManual
	}
}

// LateDaysFromRecords filters a month's attendance records down to the
// ledger's input shape. A day counts as late only by its timing status;
// half-day is a display override and never suppresses lateness here.
func LateDaysFromRecords(records []attendance.Attendance) []LateDay {
	days := make([]LateDay, 0, len(records))
	for _, record := range records {
		if record.TimingStatus != attendance.TimingLate {
			continue
		}
		days = append(days, LateDay{
			AttendanceID: record.ID,
			Date:         record.Date,
			LateMinutes:  record.LateMinutes,
			Incomplete:   record.ClockOut == nil,
		})
	}
	return days
}

// Summarize folds a month's entries into the report aggregate.
func Summarize(employeeID string, year int, month time.Month, entries []lateness.LedgerEntry) lateness.MonthlyReport {
	report := lateness.MonthlyReport{
		EmployeeID:           employeeID,
		Year:                 year,
		Month:                month,
		TotalLates:           len(entries),
		TotalSalaryDeduction: decimal.Zero,
		Entries:              entries,
	}

	for _, entry := range entries {
		if entry.ApprovedExemption {
			report.ApprovedLates++
		}
		if entry.Deducted {
			report.DeductibleLates++
			report.TotalSalaryDeduction = report.TotalSalaryDeduction.Add(entry.SalaryAmount)
			report.TotalLeaveDeduction += entry.LeaveDays
		}
	}

	return report
}
