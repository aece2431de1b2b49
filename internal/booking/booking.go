package booking

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"bookingportal/internal/api"
	"bookingportal/internal/space"
)

const dateLayout = "2006-01-02"
const timeLayout = "15:04"

// Feedback is attached by staff after the event has ended, at most once.
type Feedback struct {
	Rating     int       `json:"rating"`
	Notes      string    `json:"notes"`
	OperatorID string    `json:"operatorId"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Request struct {
	ID               string    `json:"id"`
	CreatorID        string    `json:"creatorId"`
	ActivityName     string    `json:"activityName"`
	StartDate        string    `json:"startDate"`
	StartTime        string    `json:"startTime"`
	EndDate          string    `json:"endDate"`
	EndTime          string    `json:"endTime"`
	Spaces           []string  `json:"spaces"`
	EventLink        string    `json:"eventLink,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	ResponsibleName  string    `json:"responsibleName"`
	ResponsiblePhone string    `json:"responsiblePhone"`
	Status           Status    `json:"status"`
	PosterURL        string    `json:"posterUrl,omitempty"`
	Feedback         *Feedback `json:"feedback,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// SubmitForm carries the booking form exactly as the frontend posts it.
type SubmitForm struct {
	ActivityName     string   `json:"activityName"`
	StartDate        string   `json:"startDate"`
	StartTime        string   `json:"startTime"`
	EndDate          string   `json:"endDate"`
	EndTime          string   `json:"endTime"`
	Spaces           []string `json:"spaces"`
	EventLink        string   `json:"eventLink"`
	Notes            string   `json:"notes"`
	ResponsibleName  string   `json:"responsibleName"`
	ResponsiblePhone string   `json:"responsiblePhone"`
	AcceptGuidelines bool     `json:"acceptGuidelines"`
}

// Validate checks the form field by field. On failure nothing is persisted.
// Overlapping requests for the same space and window are accepted on purpose:
// conflicts are resolved manually by staff.
func (f SubmitForm) Validate() []api.FieldError {
	var errs []api.FieldError

	if !f.AcceptGuidelines {
		errs = append(errs, api.FieldError{Field: "acceptGuidelines", Message: "Devi accettare le linee guida per procedere."})
	}
	if strings.TrimSpace(f.ActivityName) == "" {
		errs = append(errs, api.FieldError{Field: "activityName", Message: "Il Nome Attività è richiesto."})
	}
	if _, err := time.Parse(dateLayout, f.StartDate); err != nil {
		errs = append(errs, api.FieldError{Field: "startDate", Message: "La Data Inizio non è valida."})
	}
	if _, err := time.Parse(timeLayout, f.StartTime); err != nil {
		errs = append(errs, api.FieldError{Field: "startTime", Message: "L'Ora Inizio non è valida."})
	}
	if _, err := time.Parse(dateLayout, f.EndDate); err != nil {
		errs = append(errs, api.FieldError{Field: "endDate", Message: "La Data Fine non è valida."})
	}
	if _, err := time.Parse(timeLayout, f.EndTime); err != nil {
		errs = append(errs, api.FieldError{Field: "endTime", Message: "L'Ora Fine non è valida."})
	}
	if len(f.Spaces) == 0 {
		errs = append(errs, api.FieldError{Field: "spaces", Message: "Seleziona almeno uno spazio."})
	}
	for _, name := range f.Spaces {
		if !space.Exists(name) {
			errs = append(errs, api.FieldError{Field: "spaces", Message: "Spazio sconosciuto: " + name})
		}
	}
	if strings.TrimSpace(f.ResponsibleName) == "" {
		errs = append(errs, api.FieldError{Field: "responsibleName", Message: "Il Nome e Cognome del responsabile è richiesto."})
	}
	if strings.TrimSpace(f.ResponsiblePhone) == "" {
		errs = append(errs, api.FieldError{Field: "responsiblePhone", Message: "Il Numero di Cellulare è richiesto."})
	}

	return errs
}

// baseContribution is the flat estimate shown at submission; the final amount
// is communicated after approval.
var baseContribution = decimal.RequireFromString("25.00")

// EstimateContribution returns the estimated contribution in euros for a
// space selection.
func EstimateContribution(spaces []string) decimal.Decimal {
	allFree := len(spaces) > 0
	for _, name := range spaces {
		free := false
		for _, s := range space.All() {
			if s.Name == name && s.Free {
				free = true
				break
			}
		}
		if !free {
			allFree = false
			break
		}
	}
	if allFree {
		return decimal.Zero
	}
	return baseContribution
}

// IntersectsMonth reports whether [startDate, endDate] touches any day of the
// given month. Dates are ISO strings; lexical comparison matches chronological
// order.
func IntersectsMonth(startDate, endDate string, year int, month time.Month) bool {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return startDate <= last.Format(dateLayout) && endDate >= first.Format(dateLayout)
}
