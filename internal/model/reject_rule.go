package model

import (
	"time"

	"github.com/uptrace/bun"
)

// RejectRule is an admin-defined expression evaluated against every play
// submission. A rule that evaluates to true rejects the submission.
type RejectRule struct {
	bun.BaseModel `bun:"reject_rules,alias:rr"`

	RuleID    int       `bun:",pk,autoincrement" json:"id"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
	Status    string    `bun:",default:'active'" json:"status"`
	Expr      string    `bun:"expr" json:"expr"`
}
