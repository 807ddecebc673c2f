package notification

import (
	"time"

	datamodel "github.com/frahmantamala/stock-management/internal/core/datamodel/notification"
)

const (
	KindItemCreated       = "item_created"
	KindItemResolved      = "item_resolved"
	KindItemExpiring      = "item_expiring"
	KindCheckoutRequested = "checkout_requested"
	KindCheckoutResolved  = "checkout_resolved"
)

const DefaultListLimit = 50

type Notification struct {
	ID         int64     `json:"id"`
	Department string    `json:"department"`
	Kind       string    `json:"kind"`
	SubjectID  int64     `json:"subject_id"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

func FromDataModel(n *datamodel.Notification) *Notification {
	return &Notification{
		ID:         n.ID,
		Department: n.Department,
		Kind:       n.Kind,
		SubjectID:  n.SubjectID,
		Message:    n.Message,
		CreatedAt:  n.CreatedAt,
	}
}
