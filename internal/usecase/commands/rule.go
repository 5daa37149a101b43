package commands

import (
	"context"
	"time"

	"stayhub/internal/domain/rule"
	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidRuleValue = errs.New("rule value does not match rule type")

type CreateRuleParams struct {
	Name        string
	Constraint  rule.Constraint
	RoomTypeIDs []uuid.UUID
	ValidFrom   *time.Time
	ValidTo     *time.Time
	Priority    int
}

type RuleCommands interface {
	Create(ctx context.Context, params CreateRuleParams) (rule.Rule, error)
}

type ruleCommandsImpl struct {
	rules RuleRepository
}

func NewRuleCommands(rules RuleRepository) RuleCommands {
	return &ruleCommandsImpl{rules: rules}
}

func (c *ruleCommandsImpl) Create(ctx context.Context, params CreateRuleParams) (rule.Rule, error) {
	r, err := rule.New(params.Name, params.Constraint, params.RoomTypeIDs, params.ValidFrom, params.ValidTo, params.Priority)
	if err != nil {
		return rule.Rule{}, errs.Mark(err, ErrInvalidRuleValue)
	}

	if err := c.rules.Insert(ctx, r); err != nil {
		return rule.Rule{}, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return r, nil
}
