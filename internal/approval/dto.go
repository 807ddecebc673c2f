package approval

import (
	"strings"

	"github.com/frahmantamala/stock-management/internal/core/common/validation"
)

// ResolveDTO is the body of PATCH /items/{id}/status and /checkouts/{id}/status.
type ResolveDTO struct {
	Status          string `json:"status"`
	ApprovalComment string `json:"approval_comment,omitempty"`
}

func (d *ResolveDTO) Normalize() {
	d.Status = strings.ToLower(strings.TrimSpace(d.Status))
	d.ApprovalComment = strings.TrimSpace(d.ApprovalComment)
}

func (d ResolveDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("approval_comment", d.ApprovalComment).MaxLength(1000)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
