package repo

import (
	"context"

	"github.com/uptrace/bun"

	"urlate.dev/backend/internal/model"
	"urlate.dev/backend/internal/repo/selector"
)

const (
	RejectRuleActiveStatus = "active"
)

type RejectRule struct {
	sel selector.S[model.RejectRule]
}

func NewRejectRule(db *bun.DB) *RejectRule {
	return &RejectRule{sel: selector.New[model.RejectRule](db)}
}

func (r *RejectRule) GetAllActiveRejectRules(ctx context.Context) ([]*model.RejectRule, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("status = ?", RejectRuleActiveStatus).Order("rule_id ASC")
	})
}
