package booking

import (
	"testing"
	"time"
)

func validForm() SubmitForm {
	return SubmitForm{
		ActivityName:     "Laboratorio di teatro",
		StartDate:        "2025-06-01",
		StartTime:        "18:00",
		EndDate:          "2025-06-03",
		EndTime:          "20:00",
		Spaces:           []string{"Giardino"},
		ResponsibleName:  "Maria Bianchi",
		ResponsiblePhone: "3331234567",
		AcceptGuidelines: true,
	}
}

func TestValidate_OK(t *testing.T) {
	if errs := validForm().Validate(); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*SubmitForm)
		field  string
	}{
		{"guidelines not accepted", func(f *SubmitForm) { f.AcceptGuidelines = false }, "acceptGuidelines"},
		{"missing activity name", func(f *SubmitForm) { f.ActivityName = "  " }, "activityName"},
		{"bad start date", func(f *SubmitForm) { f.StartDate = "01/06/2025" }, "startDate"},
		{"bad start time", func(f *SubmitForm) { f.StartTime = "6pm" }, "startTime"},
		{"no spaces selected", func(f *SubmitForm) { f.Spaces = nil }, "spaces"},
		{"unknown space", func(f *SubmitForm) { f.Spaces = []string{"Sala Magna"} }, "spaces"},
		{"missing responsible name", func(f *SubmitForm) { f.ResponsibleName = "" }, "responsibleName"},
		{"missing responsible phone", func(f *SubmitForm) { f.ResponsiblePhone = "" }, "responsiblePhone"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validForm()
			tc.mutate(&f)
			errs := f.Validate()
			if len(errs) == 0 {
				t.Fatalf("expected a validation error")
			}
			found := false
			for _, e := range errs {
				if e.Field == tc.field {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected an error on field %q, got %v", tc.field, errs)
			}
		})
	}
}

func TestIntersectsMonth(t *testing.T) {
	// A Giardino booking over June 1-3 shows up in June but not in May or July.
	if !IntersectsMonth("2025-06-01", "2025-06-03", 2025, time.June) {
		t.Fatalf("expected intersection with June")
	}
	if IntersectsMonth("2025-06-01", "2025-06-03", 2025, time.May) {
		t.Fatalf("expected no intersection with May")
	}
	if IntersectsMonth("2025-06-01", "2025-06-03", 2025, time.July) {
		t.Fatalf("expected no intersection with July")
	}

	// A request spanning a month boundary appears in both months.
	if !IntersectsMonth("2025-05-30", "2025-06-02", 2025, time.May) {
		t.Fatalf("expected intersection with May")
	}
	if !IntersectsMonth("2025-05-30", "2025-06-02", 2025, time.June) {
		t.Fatalf("expected intersection with June")
	}
}

func TestEstimateContribution(t *testing.T) {
	if got := EstimateContribution([]string{"Giardino"}).StringFixed(2); got != "25.00" {
		t.Fatalf("expected 25.00 for a paid space, got %s", got)
	}
	if got := EstimateContribution([]string{"Spazio Open"}).StringFixed(2); got != "0.00" {
		t.Fatalf("expected 0.00 for a free space, got %s", got)
	}
	if got := EstimateContribution([]string{"Spazio Open", "Giardino"}).StringFixed(2); got != "25.00" {
		t.Fatalf("expected 25.00 when any selected space is paid, got %s", got)
	}
	if got := EstimateContribution(nil).StringFixed(2); got != "25.00" {
		t.Fatalf("expected the base estimate for an empty selection, got %s", got)
	}
}
