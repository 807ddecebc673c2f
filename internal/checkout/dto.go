package checkout

import (
	"strings"

	"github.com/frahmantamala/stock-management/internal"
	"github.com/frahmantamala/stock-management/internal/core/common/validation"
)

type CreateCheckoutDTO struct {
	ItemName string `json:"item_name"`
	Quantity int64  `json:"quantity"`
}

func (d *CreateCheckoutDTO) Normalize() {
	d.ItemName = strings.TrimSpace(d.ItemName)
}

func (d CreateCheckoutDTO) Validate() error {
	if d.Quantity <= 0 {
		return internal.ErrInvalidQuantity
	}
	v := validation.NewValidator()
	v.Field("item_name", d.ItemName).Required().MaxLength(200)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
