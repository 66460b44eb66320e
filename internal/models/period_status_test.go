package models

import (
	"testing"
	"time"
)

func d(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func dp(s string) *time.Time {
	t := d(s)
	return &t
}

// Standard bimester used across the scenarios: enrollment through
// February, classes through the start of June, grades due mid June.
func bimester() PeriodDates {
	return PeriodDates{
		StartDate:       dp("2025-03-01"),
		EndDate:         dp("2025-06-01"),
		EnrollmentStart: dp("2025-02-01"),
		EnrollmentEnd:   dp("2025-02-28"),
		GradingDeadline: dp("2025-06-15"),
	}
}

func TestCalculatePeriodStatus(t *testing.T) {
	tests := []struct {
		name  string
		dates PeriodDates
		now   time.Time
		want  PeriodStatus
	}{
		{
			name:  "before enrollment opens",
			dates: bimester(),
			now:   d("2025-01-01"),
			want:  PeriodPlanning,
		},
		{
			name:  "inside enrollment window",
			dates: bimester(),
			now:   d("2025-02-15"),
			want:  PeriodEnrollment,
		},
		{
			name:  "first day of enrollment",
			dates: bimester(),
			now:   d("2025-02-01"),
			want:  PeriodEnrollment,
		},
		{
			name:  "last day of enrollment",
			dates: bimester(),
			now:   d("2025-02-28"),
			want:  PeriodEnrollment,
		},
		{
			name:  "after enrollment, classes running",
			dates: bimester(),
			now:   d("2025-03-01"),
			want:  PeriodActive,
		},
		{
			name:  "after end date, grading inferred from deadline",
			dates: bimester(),
			now:   d("2025-06-05"),
			want:  PeriodGrading,
		},
		{
			name:  "on the grading deadline still grading",
			dates: bimester(),
			now:   d("2025-06-15"),
			want:  PeriodGrading,
		},
		{
			name:  "past the grading deadline",
			dates: bimester(),
			now:   d("2025-06-20"),
			want:  PeriodClosed,
		},
		{
			name: "explicit grading start takes over before end date",
			dates: func() PeriodDates {
				p := bimester()
				p.GradingStart = dp("2025-05-25")
				return p
			}(),
			now:  d("2025-05-26"),
			want: PeriodGrading,
		},
		{
			name: "on the explicit grading start day",
			dates: func() PeriodDates {
				p := bimester()
				p.GradingStart = dp("2025-05-25")
				return p
			}(),
			now:  d("2025-05-25"),
			want: PeriodGrading,
		},
		{
			name: "no grading fields at all, past end date",
			dates: PeriodDates{
				StartDate:       dp("2025-03-01"),
				EndDate:         dp("2025-06-01"),
				EnrollmentStart: dp("2025-02-01"),
				EnrollmentEnd:   dp("2025-02-28"),
			},
			now: d("2025-07-01"),
			// No deadline means closed can never be reached and grading
			// cannot be inferred; the period stays active.
			want: PeriodActive,
		},
		{
			name: "no end date, no grading start, deadline not passed",
			dates: PeriodDates{
				EnrollmentStart: dp("2025-02-01"),
				EnrollmentEnd:   dp("2025-02-28"),
				GradingDeadline: dp("2025-06-15"),
			},
			now: d("2025-04-01"),
			// Grading cannot be inferred without an end date.
			want: PeriodActive,
		},
		{
			name:  "all fields absent",
			dates: PeriodDates{},
			now:   d("2025-01-01"),
			want:  PeriodPlanning,
		},
		{
			name: "only enrollment start set, before it",
			dates: PeriodDates{
				EnrollmentStart: dp("2025-02-01"),
			},
			now:  d("2025-01-15"),
			want: PeriodPlanning,
		},
		{
			name: "deadline precedence beats grading start",
			dates: func() PeriodDates {
				p := bimester()
				p.GradingStart = dp("2025-06-02")
				return p
			}(),
			now:  d("2025-06-20"),
			want: PeriodClosed,
		},
		{
			name:  "time of day is ignored",
			dates: bimester(),
			now:   d("2025-02-28").Add(23*time.Hour + 59*time.Minute),
			want:  PeriodEnrollment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculatePeriodStatus(tt.dates, tt.now)
			if got != tt.want {
				t.Errorf("CalculatePeriodStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCalculatePeriodStatusDeterministic(t *testing.T) {
	dates := bimester()
	now := d("2025-03-10")
	first := CalculatePeriodStatus(dates, now)
	for i := 0; i < 5; i++ {
		if got := CalculatePeriodStatus(dates, now); got != first {
			t.Fatalf("call %d returned %q, first call returned %q", i, got, first)
		}
	}
}

func TestCalculateIsCurrentPeriod(t *testing.T) {
	tests := []struct {
		name  string
		dates PeriodDates
		now   time.Time
		want  bool
	}{
		{
			name:  "planning period is not current",
			dates: bimester(),
			now:   d("2025-01-01"),
			want:  false,
		},
		{
			name:  "enrollment period is current",
			dates: bimester(),
			now:   d("2025-02-15"),
			want:  true,
		},
		{
			name:  "active period is current",
			dates: bimester(),
			now:   d("2025-03-01"),
			want:  true,
		},
		{
			name:  "grading period is current",
			dates: bimester(),
			now:   d("2025-06-05"),
			want:  true,
		},
		{
			name:  "closed period is not current",
			dates: bimester(),
			now:   d("2025-06-20"),
			want:  false,
		},
		{
			name: "inside start/end window is current even without status",
			dates: PeriodDates{
				StartDate: dp("2025-03-01"),
				EndDate:   dp("2025-06-01"),
			},
			now:  d("2025-04-15"),
			want: true,
		},
		{
			name:  "no dates at all",
			dates: PeriodDates{},
			now:   d("2025-04-15"),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateIsCurrentPeriod(tt.dates, tt.now)
			if got != tt.want {
				t.Errorf("CalculateIsCurrentPeriod() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Any input whose status lands in enrollment, active or grading must also
// be reported as current.
func TestIsCurrentAgreesWithStatus(t *testing.T) {
	dates := bimester()
	for day := d("2025-01-01"); day.Before(d("2025-07-01")); day = day.AddDate(0, 0, 1) {
		status := CalculatePeriodStatus(dates, day)
		current := CalculateIsCurrentPeriod(dates, day)
		switch status {
		case PeriodEnrollment, PeriodActive, PeriodGrading:
			if !current {
				t.Errorf("%s: status %q but not current", day.Format("2006-01-02"), status)
			}
		case PeriodClosed:
			if current {
				t.Errorf("%s: closed period reported current", day.Format("2006-01-02"))
			}
		}
	}
}

func TestRecalculate(t *testing.T) {
	p := AcademicPeriod{
		Name:            "2025-B2",
		StartDate:       d("2025-03-01"),
		EndDate:         d("2025-06-01"),
		EnrollmentStart: d("2025-02-01"),
		EnrollmentEnd:   d("2025-02-28"),
		GradingDeadline: dp("2025-06-15"),
	}

	p.Recalculate(d("2025-02-15"))
	if p.Status != PeriodEnrollment || !p.IsCurrent {
		t.Errorf("mid-enrollment: got status=%q current=%v", p.Status, p.IsCurrent)
	}

	p.Recalculate(d("2025-06-20"))
	if p.Status != PeriodClosed || p.IsCurrent {
		t.Errorf("after deadline: got status=%q current=%v", p.Status, p.IsCurrent)
	}
}
