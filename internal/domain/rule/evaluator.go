package rule

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"stayhub/internal/domain/reservation"

	"github.com/google/uuid"
)

// Violation reports one breached booking constraint.
type Violation struct {
	RuleName string `json:"rule"`
	RuleType Type   `json:"rule_type"`
	Message  string `json:"message"`
}

type Evaluator struct {
	logger *slog.Logger
}

func NewEvaluator(logger *slog.Logger) *Evaluator {
	return &Evaluator{logger: logger}
}

// Violations evaluates every applicable rule against the stay and
// returns each breach. Rules run in priority-descending order; the
// order affects presentation only, never the outcome. The caller
// fetches now once so cutoff and advance checks agree on elapsed time.
func (e *Evaluator) Violations(rules []Rule, roomTypeID uuid.UUID, stay reservation.StayRange, now time.Time) []Violation {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})

	violations := []Violation{}
	for _, r := range sorted {
		if !r.AppliesTo(roomTypeID, stay) {
			continue
		}
		if v, breached := e.evaluate(r, stay, now); breached {
			violations = append(violations, v)
		}
	}
	return violations
}

func (e *Evaluator) evaluate(r Rule, stay reservation.StayRange, now time.Time) (Violation, bool) {
	switch c := r.Constraint.(type) {
	case MinStay:
		if stay.Nights() < c.Nights {
			return e.violation(r, fmt.Sprintf("Minimum stay requirement not met. Required: %d nights, requested: %d nights.", c.Nights, stay.Nights())), true
		}

	case MaxStay:
		if stay.Nights() > c.Nights {
			return e.violation(r, fmt.Sprintf("Maximum stay exceeded. Maximum: %d nights, requested: %d nights.", c.Nights, stay.Nights())), true
		}

	case Blackout:
		// One violation per rule: report the first breaching date
		// walking the stay chronologically.
		var hit *time.Time
		stay.EachNight(func(date time.Time) bool {
			for _, blackout := range c.Dates {
				if reservation.SameCalendarDay(date, blackout) {
					d := blackout
					hit = &d
					return false
				}
			}
			return true
		})
		if hit != nil {
			return e.violation(r, fmt.Sprintf("The date %s is a blackout date and not available for booking.", hit.Format("2006-01-02"))), true
		}

	case CutoffTime:
		hoursBefore := stay.CheckIn().Sub(now).Hours()
		if hoursBefore < c.Hours {
			return e.violation(r, fmt.Sprintf("Reservation cutoff has passed. Requires at least %.0f hours before check-in.", c.Hours)), true
		}

	case AdvanceBooking:
		daysAhead := stay.CheckIn().Sub(now).Hours() / 24
		if daysAhead > float64(c.Days) {
			return e.violation(r, fmt.Sprintf("Advance booking limit exceeded. Maximum: %d days in advance.", c.Days)), true
		}

	default:
		// Unrecognized payloads never block a booking; they indicate
		// bad data in the rules table.
		e.logger.Warn("skipping rule with unrecognized constraint",
			"rule_id", r.ID, "rule_name", r.Name)
	}
	return Violation{}, false
}

func (e *Evaluator) violation(r Rule, msg string) Violation {
	return Violation{
		RuleName: r.Name,
		RuleType: r.Constraint.Type(),
		Message:  msg,
	}
}
