package models

import "time"

// PeriodDates holds the date fields the lifecycle derivation looks at.
// Nil pointers mean the field was not set; rules that need an absent
// field simply do not match.
type PeriodDates struct {
	StartDate       *time.Time
	EndDate         *time.Time
	EnrollmentStart *time.Time
	EnrollmentEnd   *time.Time
	GradingStart    *time.Time
	GradingDeadline *time.Time
}

// DateOnly truncates t to midnight UTC. All lifecycle comparisons are
// date-only; time of day is ignored.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CalculatePeriodStatus derives the lifecycle status of a period from its
// date fields at the given instant. Rules are evaluated top to bottom and
// the first match wins:
//
//  1. past the grading deadline            -> closed
//  2. on or past the grading start         -> grading
//  3. no grading start, but past the end date and the grading deadline
//     has not passed                       -> grading
//  4. past the enrollment end              -> active
//  5. inside the enrollment window         -> enrollment
//  6. otherwise                            -> planning
//
// Pure and deterministic; safe to call with any combination of nil fields.
func CalculatePeriodStatus(d PeriodDates, now time.Time) PeriodStatus {
	today := DateOnly(now)

	if d.GradingDeadline != nil && today.After(DateOnly(*d.GradingDeadline)) {
		return PeriodClosed
	}

	if d.GradingStart != nil && !today.Before(DateOnly(*d.GradingStart)) {
		return PeriodGrading
	}

	// No explicit grading start: infer grading between the end of classes
	// and the grading deadline.
	if d.GradingStart == nil &&
		d.EndDate != nil && today.After(DateOnly(*d.EndDate)) &&
		d.GradingDeadline != nil && !today.After(DateOnly(*d.GradingDeadline)) {
		return PeriodGrading
	}

	if d.EnrollmentEnd != nil && today.After(DateOnly(*d.EnrollmentEnd)) {
		return PeriodActive
	}

	if d.EnrollmentStart != nil && d.EnrollmentEnd != nil &&
		withinInclusive(today, *d.EnrollmentStart, *d.EnrollmentEnd) {
		return PeriodEnrollment
	}

	return PeriodPlanning
}

// CalculateIsCurrentPeriod reports whether the period should be treated as
// the current one for default UI context. True when now falls inside
// [StartDate, EndDate] inclusive, or when the derived status is one of
// enrollment, active or grading.
func CalculateIsCurrentPeriod(d PeriodDates, now time.Time) bool {
	today := DateOnly(now)

	if d.StartDate != nil && d.EndDate != nil &&
		withinInclusive(today, *d.StartDate, *d.EndDate) {
		return true
	}

	switch CalculatePeriodStatus(d, now) {
	case PeriodEnrollment, PeriodActive, PeriodGrading:
		return true
	}
	return false
}

func withinInclusive(day, start, end time.Time) bool {
	s, e := DateOnly(start), DateOnly(end)
	return !day.Before(s) && !day.After(e)
}
