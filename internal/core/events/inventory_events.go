package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeItemCreated       = "item.created"
	EventTypeItemResolved      = "item.resolved"
	EventTypeItemExpiring      = "item.expiring"
	EventTypeCheckoutRequested = "checkout.requested"
	EventTypeCheckoutResolved  = "checkout.resolved"
)

type ItemCreatedEvent struct {
	BaseEvent
	ItemID     int64  `json:"item_id"`
	ItemName   string `json:"item_name"`
	Department string `json:"department"`
	MakerID    int64  `json:"maker_id"`
	Quantity   int64  `json:"quantity"`
}

func NewItemCreatedEvent(itemID int64, itemName, department string, makerID, quantity int64) *ItemCreatedEvent {
	return &ItemCreatedEvent{
		BaseEvent: newBaseEvent(EventTypeItemCreated, map[string]interface{}{
			"item_id":    itemID,
			"item_name":  itemName,
			"department": department,
			"maker_id":   makerID,
			"quantity":   quantity,
		}),
		ItemID:     itemID,
		ItemName:   itemName,
		Department: department,
		MakerID:    makerID,
		Quantity:   quantity,
	}
}

type ItemResolvedEvent struct {
	BaseEvent
	ItemID     int64  `json:"item_id"`
	ItemName   string `json:"item_name"`
	Department string `json:"department"`
	Status     string `json:"status"`
	ApproverID int64  `json:"approver_id"`
}

func NewItemResolvedEvent(itemID int64, itemName, department, status string, approverID int64) *ItemResolvedEvent {
	return &ItemResolvedEvent{
		BaseEvent: newBaseEvent(EventTypeItemResolved, map[string]interface{}{
			"item_id":     itemID,
			"item_name":   itemName,
			"department":  department,
			"status":      status,
			"approver_id": approverID,
		}),
		ItemID:     itemID,
		ItemName:   itemName,
		Department: department,
		Status:     status,
		ApproverID: approverID,
	}
}

type ItemExpiringEvent struct {
	BaseEvent
	ItemID         int64     `json:"item_id"`
	ItemName       string    `json:"item_name"`
	Department     string    `json:"department"`
	ExpirationDate time.Time `json:"expiration_date"`
}

func NewItemExpiringEvent(itemID int64, itemName, department string, expirationDate time.Time) *ItemExpiringEvent {
	return &ItemExpiringEvent{
		BaseEvent: newBaseEvent(EventTypeItemExpiring, map[string]interface{}{
			"item_id":         itemID,
			"item_name":       itemName,
			"department":      department,
			"expiration_date": expirationDate,
		}),
		ItemID:         itemID,
		ItemName:       itemName,
		Department:     department,
		ExpirationDate: expirationDate,
	}
}

type CheckoutRequestedEvent struct {
	BaseEvent
	CheckoutID int64  `json:"checkout_id"`
	ItemName   string `json:"item_name"`
	Department string `json:"department"`
	UserID     int64  `json:"user_id"`
	Quantity   int64  `json:"quantity"`
}

func NewCheckoutRequestedEvent(checkoutID int64, itemName, department string, userID, quantity int64) *CheckoutRequestedEvent {
	return &CheckoutRequestedEvent{
		BaseEvent: newBaseEvent(EventTypeCheckoutRequested, map[string]interface{}{
			"checkout_id": checkoutID,
			"item_name":   itemName,
			"department":  department,
			"user_id":     userID,
			"quantity":    quantity,
		}),
		CheckoutID: checkoutID,
		ItemName:   itemName,
		Department: department,
		UserID:     userID,
		Quantity:   quantity,
	}
}

type CheckoutResolvedEvent struct {
	BaseEvent
	CheckoutID int64  `json:"checkout_id"`
	ItemName   string `json:"item_name"`
	Department string `json:"department"`
	Status     string `json:"status"`
	ApproverID int64  `json:"approver_id"`
	Quantity   int64  `json:"quantity"`
}

func NewCheckoutResolvedEvent(checkoutID int64, itemName, department, status string, approverID, quantity int64) *CheckoutResolvedEvent {
	return &CheckoutResolvedEvent{
		BaseEvent: newBaseEvent(EventTypeCheckoutResolved, map[string]interface{}{
			"checkout_id": checkoutID,
			"item_name":   itemName,
			"department":  department,
			"status":      status,
			"approver_id": approverID,
			"quantity":    quantity,
		}),
		CheckoutID: checkoutID,
		ItemName:   itemName,
		Department: department,
		Status:     status,
		ApproverID: approverID,
		Quantity:   quantity,
	}
}

func newBaseEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}
