package request

import (
	"encoding/json"
	"errors"
	"time"

	"stayhub/internal/domain/rule"
	"stayhub/internal/usecase/commands"

	"github.com/google/uuid"
)

var ErrInvalidRuleValue = errors.New("rule value does not match rule type")

type CreateRuleRequest struct {
	Name        string          `json:"name" binding:"required"`
	RuleType    string          `json:"rule_type" binding:"required"`
	Value       json.RawMessage `json:"value" binding:"required"`
	RoomTypeIDs []uuid.UUID     `json:"room_type_ids,omitempty"`
	ValidFrom   *time.Time      `json:"valid_from,omitempty"`
	ValidTo     *time.Time      `json:"valid_to,omitempty"`
	Priority    int             `json:"priority,omitempty"`
}

func (r CreateRuleRequest) ToParams() (commands.CreateRuleParams, error) {
	constraint, err := r.toConstraint()
	if err != nil {
		return commands.CreateRuleParams{}, err
	}
	return commands.CreateRuleParams{
		Name:        r.Name,
		Constraint:  constraint,
		RoomTypeIDs: r.RoomTypeIDs,
		ValidFrom:   r.ValidFrom,
		ValidTo:     r.ValidTo,
		Priority:    r.Priority,
	}, nil
}

func (r CreateRuleRequest) toConstraint() (rule.Constraint, error) {
	switch rule.Type(r.RuleType) {
	case rule.TypeMinStay:
		var n int
		if err := json.Unmarshal(r.Value, &n); err != nil {
			return nil, ErrInvalidRuleValue
		}
		return rule.MinStay{Nights: n}, nil
	case rule.TypeMaxStay:
		var n int
		if err := json.Unmarshal(r.Value, &n); err != nil {
			return nil, ErrInvalidRuleValue
		}
		return rule.MaxStay{Nights: n}, nil
	case rule.TypeCutoffTime:
		var h float64
		if err := json.Unmarshal(r.Value, &h); err != nil {
			return nil, ErrInvalidRuleValue
		}
		return rule.CutoffTime{Hours: h}, nil
	case rule.TypeAdvanceBooking:
		var d int
		if err := json.Unmarshal(r.Value, &d); err != nil {
			return nil, ErrInvalidRuleValue
		}
		return rule.AdvanceBooking{Days: d}, nil
	case rule.TypeBlackoutDate:
		var raw []string
		if err := json.Unmarshal(r.Value, &raw); err != nil {
			// A single date may be sent unwrapped.
			var one string
			if err2 := json.Unmarshal(r.Value, &one); err2 != nil {
				return nil, ErrInvalidRuleValue
			}
			raw = []string{one}
		}
		dates := make([]time.Time, len(raw))
		for i, s := range raw {
			d, err := time.Parse(stayDateLayout, s)
			if err != nil {
				return nil, ErrInvalidDateFormat
			}
			dates[i] = d
		}
		return rule.Blackout{Dates: dates}, nil
	default:
		return nil, ErrInvalidRuleValue
	}
}
