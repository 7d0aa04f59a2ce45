package playverifs

import "urlate.dev/backend/internal/pkg/pgerr"

type Violation struct {
	Rejection
	Name string `json:"name"`
}

// Err converts the violation into the error returned to the submitter.
func (v *Violation) Err() *pgerr.Error {
	return v.Code.Msg("%s: %s", v.Name, v.Message)
}

type Rejection struct {
	Code    *pgerr.Error `json:"-"`
	Message string       `json:"message"`
}
