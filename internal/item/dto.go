package item

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/frahmantamala/stock-management/internal"
	"github.com/frahmantamala/stock-management/internal/core/common/validation"
)

type CreateItemDTO struct {
	ItemName       string          `json:"item_name"`
	Price          decimal.Decimal `json:"price"`
	Category       string          `json:"category"`
	Quantity       int64           `json:"quantity"`
	Currency       string          `json:"currency,omitempty"`
	Description    *string         `json:"description,omitempty"`
	PurchaseDate   *string         `json:"purchase_date,omitempty"`
	ExpirationDate *string         `json:"expiration_date,omitempty"`
}

func (d *CreateItemDTO) Normalize(defaultCurrency string) {
	d.ItemName = strings.TrimSpace(d.ItemName)
	d.Category = strings.TrimSpace(d.Category)
	d.Currency = strings.ToUpper(strings.TrimSpace(d.Currency))
	if d.Currency == "" {
		d.Currency = defaultCurrency
	}
	if d.Description != nil {
		trimmed := strings.TrimSpace(*d.Description)
		if trimmed == "" {
			d.Description = nil
		} else {
			d.Description = &trimmed
		}
	}
}

// Dates parses the optional purchase and expiration dates.
func (d CreateItemDTO) Dates() (purchase, expiration *time.Time, err error) {
	if purchase, err = parseDate("purchase_date", d.PurchaseDate); err != nil {
		return nil, nil, err
	}
	if expiration, err = parseDate("expiration_date", d.ExpirationDate); err != nil {
		return nil, nil, err
	}
	return purchase, expiration, nil
}

func (d CreateItemDTO) Validate() error {
	purchase, expiration, err := d.Dates()
	if err != nil {
		return err
	}

	v := validation.NewValidator()
	v.Field("item_name", d.ItemName).Required().MaxLength(200)
	v.Field("price", d.Price).NonNegative(internal.ErrCodeInvalidPrice).MaxPlaces(2, internal.ErrCodeInvalidPrice)
	v.Field("category", d.Category).Required().MaxLength(100)
	v.Field("quantity", d.Quantity).MinInt(0, internal.ErrCodeInvalidQuantity)
	v.Field("currency", d.Currency).Custom(func(value interface{}) *internal.AppError {
		if s, _ := value.(string); len(s) != 3 {
			return internal.NewValidationFieldError("currency", "currency must be a 3 letter code", internal.ErrCodeInvalidCurrency)
		}
		return nil
	})
	if d.Description != nil {
		v.Field("description", *d.Description).MaxLength(1000)
	}
	v.Field("purchase_date", purchase).NotFuture()
	v.Field("expiration_date", expiration).NotBefore("purchase_date", purchase)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type UpdateQuantityDTO struct {
	Quantity int64 `json:"quantity"`
}

func (d UpdateQuantityDTO) Validate() error {
	if err := validation.ValidateStockQuantity(d.Quantity); err != nil {
		return err
	}
	return nil
}

type UpdatePriceDTO struct {
	Price decimal.Decimal `json:"price"`
}

func (d UpdatePriceDTO) Validate() error {
	if err := validation.ValidatePrice(d.Price); err != nil {
		return err
	}
	return nil
}

type ReportDamageDTO struct {
	Quantity    int64  `json:"quantity"`
	Description string `json:"description"`
}

func (d ReportDamageDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("quantity", d.Quantity).MinInt(1, internal.ErrCodeInvalidQuantity)
	v.Field("description", d.Description).Required().MaxLength(1000)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func parseDate(field string, raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, strings.TrimSpace(*raw))
	if err != nil {
		return nil, internal.NewValidationFieldError(field,
			fmt.Sprintf("%s must be formatted as YYYY-MM-DD", field), internal.ErrCodeInvalidDate)
	}
	return &t, nil
}
