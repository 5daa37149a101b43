package repository

import (
	"context"
	"encoding/json"
	"time"

	"stayhub/internal/domain/reservation"
	"stayhub/internal/domain/rule"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/pgconv"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RuleRepository struct {
	pool *pgxpool.Pool
}

func NewRuleRepository(pool *pgxpool.Pool) *RuleRepository {
	return &RuleRepository{pool: pool}
}

// FindApplicable pushes the selection filter into SQL: active rules
// naming the room type or applying to all, whose validity window (if
// any) intersects the stay, priority descending.
func (r *RuleRepository) FindApplicable(ctx context.Context, roomTypeID uuid.UUID, stay reservation.StayRange) ([]rule.Rule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, rule_type, rule_value, room_type_ids,
		       valid_from, valid_to, is_active, priority
		FROM booking_rules
		WHERE is_active
		  AND (cardinality(room_type_ids) = 0 OR $1 = ANY(room_type_ids))
		  AND COALESCE(valid_from, '-infinity'::timestamptz) <= $2
		  AND COALESCE(valid_to, 'infinity'::timestamptz) >= $3
		ORDER BY priority DESC
	`, roomTypeID, stay.CheckOut(), stay.CheckIn())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find applicable rules", err)
	}
	defer rows.Close()

	return scanRules(rows)
}

func (r *RuleRepository) Insert(ctx context.Context, ru rule.Rule) error {
	value, err := constraintToJSON(ru.Constraint)
	if err != nil {
		return infra.WrapRepoErr("failed to encode rule value", err)
	}

	roomTypeIDs := ru.RoomTypeIDs
	if roomTypeIDs == nil {
		roomTypeIDs = []uuid.UUID{}
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO booking_rules (id, name, rule_type, rule_value, room_type_ids,
		                           valid_from, valid_to, is_active, priority)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, ru.ID, ru.Name, string(ru.Constraint.Type()), value, roomTypeIDs,
		pgconv.TimePtrToPgtype(ru.ValidFrom), pgconv.TimePtrToPgtype(ru.ValidTo),
		ru.IsActive, ru.Priority)
	if err != nil {
		return infra.WrapRepoErr("failed to insert rule", err)
	}
	return nil
}

func (r *RuleRepository) ListAll(ctx context.Context) ([]*queries.RuleView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, rule_type, rule_value, room_type_ids,
		       valid_from, valid_to, is_active, priority
		FROM booking_rules
		ORDER BY priority DESC, name
	`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rules", err)
	}
	defer rows.Close()

	rules, err := scanRules(rows)
	if err != nil {
		return nil, err
	}
	return ruleViews(rules), nil
}

// ruleViews leaves out rules whose stored type is no longer
// recognized, mirroring how the evaluator skips them.
func ruleViews(rules []rule.Rule) []*queries.RuleView {
	views := make([]*queries.RuleView, 0, len(rules))
	for _, ru := range rules {
		if ru.Constraint == nil {
			continue
		}
		views = append(views, &queries.RuleView{
			ID:        ru.ID,
			Name:      ru.Name,
			RuleType:  string(ru.Constraint.Type()),
			Value:     constraintValue(ru.Constraint),
			RoomTypes: ru.RoomTypeIDs,
			ValidFrom: ru.ValidFrom,
			ValidTo:   ru.ValidTo,
			IsActive:  ru.IsActive,
			Priority:  ru.Priority,
		})
	}
	return views
}

type pgRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanRules(rows pgRows) ([]rule.Rule, error) {
	var rules []rule.Rule
	for rows.Next() {
		var (
			ru                 rule.Rule
			ruleType           string
			value              []byte
			validFrom, validTo pgtype.Timestamptz
		)
		if err := rows.Scan(&ru.ID, &ru.Name, &ruleType, &value, &ru.RoomTypeIDs,
			&validFrom, &validTo, &ru.IsActive, &ru.Priority); err != nil {
			return nil, infra.WrapRepoErr("failed to scan rule", err)
		}
		ru.ValidFrom = pgconv.TimePtrFromPgtype(validFrom)
		ru.ValidTo = pgconv.TimePtrFromPgtype(validTo)

		constraint, err := constraintFromJSON(rule.Type(ruleType), value)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to decode rule value", err)
		}
		ru.Constraint = constraint
		rules = append(rules, ru)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read rules", err)
	}
	return rules, nil
}

// The rule_value column keeps the original loose shape (a number, or a
// date array for blackouts); the tagged variant exists only in memory.

func constraintToJSON(c rule.Constraint) ([]byte, error) {
	return json.Marshal(constraintValue(c))
}

func constraintValue(c rule.Constraint) any {
	switch v := c.(type) {
	case rule.MinStay:
		return v.Nights
	case rule.MaxStay:
		return v.Nights
	case rule.CutoffTime:
		return v.Hours
	case rule.AdvanceBooking:
		return v.Days
	case rule.Blackout:
		dates := make([]string, len(v.Dates))
		for i, d := range v.Dates {
			dates[i] = d.Format("2006-01-02")
		}
		return dates
	default:
		return nil
	}
}

func constraintFromJSON(t rule.Type, value []byte) (rule.Constraint, error) {
	switch t {
	case rule.TypeMinStay:
		var n int
		if err := json.Unmarshal(value, &n); err != nil {
			return nil, err
		}
		return rule.MinStay{Nights: n}, nil
	case rule.TypeMaxStay:
		var n int
		if err := json.Unmarshal(value, &n); err != nil {
			return nil, err
		}
		return rule.MaxStay{Nights: n}, nil
	case rule.TypeCutoffTime:
		var h float64
		if err := json.Unmarshal(value, &h); err != nil {
			return nil, err
		}
		return rule.CutoffTime{Hours: h}, nil
	case rule.TypeAdvanceBooking:
		var d int
		if err := json.Unmarshal(value, &d); err != nil {
			return nil, err
		}
		return rule.AdvanceBooking{Days: d}, nil
	case rule.TypeBlackoutDate:
		var raw []string
		if err := json.Unmarshal(value, &raw); err != nil {
			// A single date is stored unwrapped in legacy rows.
			var one string
			if err2 := json.Unmarshal(value, &one); err2 != nil {
				return nil, err
			}
			raw = []string{one}
		}
		dates := make([]time.Time, len(raw))
		for i, s := range raw {
			d, err := time.Parse("2006-01-02", s)
			if err != nil {
				return nil, err
			}
			dates[i] = d
		}
		return rule.Blackout{Dates: dates}, nil
	default:
		// Evaluator treats nil constraints as unrecognized and skips
		// them rather than blocking bookings on bad data.
		return nil, nil
	}
}
