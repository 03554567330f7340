package notification

import (
	"context"
	"fmt"
	"time"

	"lunchbox/models"

	"go.uber.org/zap"
)

// EventNotifier turns order and menu events into notifications.
type EventNotifier struct {
	Dispatcher *Dispatcher
	Logger     *zap.Logger
}

func NewEventNotifier(d *Dispatcher, logger *zap.Logger) *EventNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventNotifier{Dispatcher: d, Logger: logger}
}

func orderDay(t time.Time) string {
	if t.IsZero() {
		return "today"
	}
	return t.Format("Monday, Jan 2")
}

func requireOrder(ev models.DomainEvent) (*models.OrderRef, error) {
	if ev.Order == nil || ev.Order.UserID == "" {
		return nil, models.NewValidationError("order", "order with userId is required")
	}
	return ev.Order, nil
}

// Handle routes ev to the matching hook.
func (e *EventNotifier) Handle(ctx context.Context, ev models.DomainEvent) (*DispatchResult, error) {
	switch ev.Type {
	case models.EventMenuUpdated:
		return e.MenuUpdated(ctx, ev.MenuDate)
	case models.EventOrderPlaced, models.EventOrderModified, models.EventOrderCancelled, models.EventOrderStatusChanged:
	default:
		return nil, models.NewValidationError("type", fmt.Sprintf("unknown event type %q", ev.Type))
	}

	order, err := requireOrder(ev)
	if err != nil {
		return nil, err
	}
	switch ev.Type {
	case models.EventOrderPlaced:
		return e.OrderPlaced(ctx, *order)
	case models.EventOrderModified:
		return e.OrderChanged(ctx, *order, ev.Actor, models.ModificationUpdated)
	case models.EventOrderCancelled:
		return e.OrderChanged(ctx, *order, ev.Actor, models.ModificationCancelled)
	default:
		return e.OrderStatusChanged(ctx, *order)
	}
}

// OrderPlaced confirms a new order to its owner.
func (e *EventNotifier) OrderPlaced(ctx context.Context, order models.OrderRef) (*DispatchResult, error) {
	msg := fmt.Sprintf("Your lunch order for %s has been received.", orderDay(order.OrderDate))
	return e.Dispatcher.Notify(ctx, ToUser(order.UserID), models.KindOrderConfirmed, models.TagAdHoc, msg)
}

// OrderStatusChanged tells the owner about an admin-side status change.
func (e *EventNotifier) OrderStatusChanged(ctx context.Context, order models.OrderRef) (*DispatchResult, error) {
	day := orderDay(order.OrderDate)
	switch order.Status {
	case models.OrderStatusConfirmed, models.OrderStatusProcessed:
		msg := fmt.Sprintf("Your lunch order for %s has been %s.", day, order.Status)
		return e.Dispatcher.Notify(ctx, ToUser(order.UserID), models.KindOrderConfirmed, models.TagAdHoc, msg)
	case "":
		return nil, models.NewValidationError("status", "status is required")
	default:
		msg := fmt.Sprintf("Your lunch order for %s is now %s.", day, order.Status)
		return e.Dispatcher.Notify(ctx, ToUser(order.UserID), models.KindOrderModified, models.TagAdHoc, msg)
	}
}

// OrderChanged handles updates and cancellations. A change by the owner is
// reported to every admin individually; a change by an admin is reported to
// the owner.
func (e *EventNotifier) OrderChanged(ctx context.Context, order models.OrderRef, actor models.Caller, modification string) (*DispatchResult, error) {
	day := orderDay(order.OrderDate)
	verb := "updated"
	if modification == models.ModificationCancelled {
		verb = "cancelled"
	}

	if actor.IsAdmin() && actor.UserID != order.UserID {
		msg := fmt.Sprintf("An administrator %s your lunch order for %s.", verb, day)
		return e.Dispatcher.Notify(ctx, ToUser(order.UserID), models.KindOrderModified, models.TagAdHoc, msg)
	}

	name := order.UserName
	if name == "" {
		name = "A user"
	}
	msg := fmt.Sprintf("%s %s their lunch order for %s.", name, verb, day)
	e.Logger.Debug("order change fan-out to admins",
		zap.String("order", order.ID), zap.String("modification", modification))
	return e.Dispatcher.NotifyAdmins(ctx, models.KindOrderModified, msg)
}

// MenuUpdated broadcasts an ad hoc menu change.
func (e *EventNotifier) MenuUpdated(ctx context.Context, menuDate time.Time) (*DispatchResult, error) {
	msg := fmt.Sprintf("The menu for %s has been updated.", orderDay(menuDate))
	return e.Dispatcher.Notify(ctx, ToEveryone(), models.KindMenuUpdated, models.TagAdHoc, msg)
}
