package handlers

import (
	"strings"
	"testing"
	"time"

	"github.com/academix/academix-api/internal/models"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func datePtr(t *testing.T, s string) *time.Time {
	d := mustDate(t, s)
	return &d
}

func TestParseDate(t *testing.T) {
	if _, err := parseDate("start_date", "2025-03-01"); err != nil {
		t.Errorf("valid date rejected: %v", err)
	}

	_, err := parseDate("start_date", "03/01/2025")
	if err == nil {
		t.Fatal("expected error for non ISO date")
	}
	if !strings.Contains(err.Error(), "start_date") {
		t.Errorf("error should name the field, got: %v", err)
	}
}

func TestParseOptionalDate(t *testing.T) {
	got, err := parseOptionalDate("grading_start", "")
	if err != nil || got != nil {
		t.Errorf("empty value should be nil, nil; got %v, %v", got, err)
	}

	got, err = parseOptionalDate("grading_start", "2025-06-02")
	if err != nil || got == nil {
		t.Fatalf("valid value rejected: %v", err)
	}

	if _, err = parseOptionalDate("grading_start", "soon"); err == nil {
		t.Error("expected error for unparseable value")
	}
}

func TestValidatePeriodDates(t *testing.T) {
	valid := func() *models.AcademicPeriod {
		return &models.AcademicPeriod{
			Name:            "2025-B2",
			StartDate:       mustDate(t, "2025-03-01"),
			EndDate:         mustDate(t, "2025-06-01"),
			EnrollmentStart: mustDate(t, "2025-02-01"),
			EnrollmentEnd:   mustDate(t, "2025-02-28"),
			GradingDeadline: datePtr(t, "2025-06-15"),
		}
	}

	if errs := validatePeriodDates(valid()); len(errs) != 0 {
		t.Errorf("valid period rejected: %v", errs)
	}

	t.Run("start after end", func(t *testing.T) {
		p := valid()
		p.StartDate = mustDate(t, "2025-07-01")
		if errs := validatePeriodDates(p); len(errs) == 0 {
			t.Error("expected error")
		}
	})

	t.Run("enrollment start after enrollment end", func(t *testing.T) {
		p := valid()
		p.EnrollmentStart = mustDate(t, "2025-03-15")
		p.EnrollmentEnd = mustDate(t, "2025-02-28")
		if errs := validatePeriodDates(p); len(errs) == 0 {
			t.Error("expected error")
		}
	})

	t.Run("grading deadline before end date", func(t *testing.T) {
		p := valid()
		p.GradingDeadline = datePtr(t, "2025-05-01")
		if errs := validatePeriodDates(p); len(errs) == 0 {
			t.Error("expected error")
		}
	})

	t.Run("all violations reported together", func(t *testing.T) {
		p := valid()
		p.StartDate = mustDate(t, "2025-07-01")
		p.EnrollmentStart = mustDate(t, "2025-03-15")
		errs := validatePeriodDates(p)
		if len(errs) < 2 {
			t.Errorf("expected multiple errors, got %v", errs)
		}
	})
}

func TestBuildPeriodDerivesNothingFromClient(t *testing.T) {
	req := CreatePeriodRequest{
		Name:            "2025-B2",
		StartDate:       "2025-03-01",
		EndDate:         "2025-06-01",
		EnrollmentStart: "2025-02-01",
		EnrollmentEnd:   "2025-02-28",
		GradingDeadline: "2025-06-15",
	}

	period, errs := buildPeriod(req)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if period.GradingStart != nil {
		t.Error("absent grading_start should stay nil")
	}
	if period.GradingDeadline == nil {
		t.Fatal("grading_deadline should be set")
	}

	// Derivation happens only through Recalculate
	period.Recalculate(mustDate(t, "2025-03-01"))
	if period.Status != models.PeriodActive {
		t.Errorf("expected active, got %q", period.Status)
	}
	if !period.IsCurrent {
		t.Error("period covering today should be current")
	}
}

func TestBuildPeriodCollectsParseErrors(t *testing.T) {
	req := CreatePeriodRequest{
		Name:            "broken",
		StartDate:       "yesterday",
		EndDate:         "2025-06-01",
		EnrollmentStart: "2025-02-01",
		EnrollmentEnd:   "whenever",
		GradingDeadline: "later",
	}

	_, errs := buildPeriod(req)
	if len(errs) != 3 {
		t.Errorf("expected 3 parse errors, got %d: %v", len(errs), errs)
	}
}
