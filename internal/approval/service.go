package approval

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/frahmantamala/stock-management/internal"
	"github.com/frahmantamala/stock-management/internal/core/events"
	"github.com/frahmantamala/stock-management/internal/core/status"
)

var tracer = otel.Tracer("stock-management/approval")

type Engine struct {
	repo      Repository
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewEngine(repo Repository, publisher events.Publisher, logger *slog.Logger) *Engine {
	return &Engine{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// ResolveItem moves a pending item to approved or rejected and records the
// decision in approval_details. Quantity is not touched.
func (e *Engine) ResolveItem(ctx context.Context, cmd ResolveItemCommand) (*ItemResolution, error) {
	ctx, span := tracer.Start(ctx, "approval.ResolveItem", trace.WithAttributes(
		attribute.Int64("item.id", cmd.ItemID),
		attribute.String("approval.decision", cmd.Decision),
		attribute.Int64("approver.id", cmd.Approver.ID),
	))
	defer span.End()

	timer := prometheus.NewTimer(resolutionDuration.WithLabelValues(kindItem))
	defer timer.ObserveDuration()

	if err := authorize(cmd.Decision, cmd.Approver); err != nil {
		return nil, e.fail(span, kindItem, err, "item_id", cmd.ItemID)
	}

	res, err := e.repo.ResolveItem(ctx, cmd, e.now())
	if err != nil {
		return nil, e.fail(span, kindItem, err, "item_id", cmd.ItemID)
	}

	resolutionsTotal.WithLabelValues(kindItem, res.Status).Inc()
	span.SetAttributes(attribute.String("approval.result", res.Status))

	e.logger.Info("item resolved",
		"item_id", res.ItemID,
		"status", res.Status,
		"department", res.Department,
		"approver_id", res.ApproverID)

	e.publish(ctx, events.NewItemResolvedEvent(res.ItemID, res.ItemName, res.Department, res.Status, res.ApproverID))
	return res, nil
}

// ResolveCheckout moves a pending checkout to approved or rejected. Approval
// also takes the requested units out of stock; when the item no longer holds
// enough the whole resolution is abandoned with ErrInsufficientStock.
func (e *Engine) ResolveCheckout(ctx context.Context, cmd ResolveCheckoutCommand) (*CheckoutResolution, error) {
	ctx, span := tracer.Start(ctx, "approval.ResolveCheckout", trace.WithAttributes(
		attribute.Int64("checkout.id", cmd.CheckoutID),
		attribute.String("approval.decision", cmd.Decision),
		attribute.Int64("approver.id", cmd.Approver.ID),
	))
	defer span.End()

	timer := prometheus.NewTimer(resolutionDuration.WithLabelValues(kindCheckout))
	defer timer.ObserveDuration()

	if err := authorize(cmd.Decision, cmd.Approver); err != nil {
		return nil, e.fail(span, kindCheckout, err, "checkout_id", cmd.CheckoutID)
	}

	res, err := e.repo.ResolveCheckout(ctx, cmd, e.now())
	if err != nil {
		return nil, e.fail(span, kindCheckout, err, "checkout_id", cmd.CheckoutID)
	}

	resolutionsTotal.WithLabelValues(kindCheckout, res.Status).Inc()
	if res.Status == status.Approved {
		unitsCheckedOut.Add(float64(res.Quantity))
	}
	span.SetAttributes(attribute.String("approval.result", res.Status))

	e.logger.Info("checkout resolved",
		"checkout_id", res.CheckoutID,
		"item_id", res.ItemID,
		"status", res.Status,
		"quantity", res.Quantity,
		"approver_id", res.ApproverID)

	e.publish(ctx, events.NewCheckoutResolvedEvent(res.CheckoutID, res.ItemName, res.Department, res.Status, res.ApproverID, res.Quantity))
	return res, nil
}

func authorize(decision string, approver Approver) error {
	if !status.IsDecision(decision) {
		return internal.ErrInvalidDecision
	}
	if !approver.Role.CanApprove() {
		return internal.ErrInsufficientRole
	}
	return nil
}

func (e *Engine) fail(span trace.Span, kind string, err error, idKey string, id int64) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	resolutionsTotal.WithLabelValues(kind, outcomeLabel(err)).Inc()

	if appErr, ok := internal.IsAppError(err); ok && appErr.StatusCode < 500 {
		e.logger.Warn("resolution refused", "kind", kind, idKey, id, "code", appErr.Code)
	} else {
		e.logger.Error("resolution failed", "kind", kind, idKey, id, "error", err)
	}
	return err
}

func (e *Engine) publish(ctx context.Context, event events.Event) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.Publish(ctx, event); err != nil {
		e.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}
