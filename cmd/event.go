package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/stock-management/internal/core/events"
	"github.com/frahmantamala/stock-management/internal/core/status"
	"github.com/frahmantamala/stock-management/pkg/logger"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Publish domain events by hand to exercise the notification subscribers`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a domain event",
	Long: `Publish one of item.created, item.resolved, item.expiring, checkout.requested
or checkout.resolved. With --persist the notification subscribers write to the
configured database; otherwise the event is only logged.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := publishEvent(args[0]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

var (
	eventSubjectID  int64
	eventActorID    int64
	eventItemName   string
	eventDepartment string
	eventStatus     string
	eventQuantity   int64
	eventDaysLeft   int
	eventPersist    bool
)

func buildEvent(eventType string) (events.Event, error) {
	switch eventType {
	case events.EventTypeItemCreated:
		return events.NewItemCreatedEvent(eventSubjectID, eventItemName, eventDepartment, eventActorID, eventQuantity), nil
	case events.EventTypeItemResolved:
		return events.NewItemResolvedEvent(eventSubjectID, eventItemName, eventDepartment, eventStatus, eventActorID), nil
	case events.EventTypeItemExpiring:
		expires := time.Now().AddDate(0, 0, eventDaysLeft)
		return events.NewItemExpiringEvent(eventSubjectID, eventItemName, eventDepartment, expires), nil
	case events.EventTypeCheckoutRequested:
		return events.NewCheckoutRequestedEvent(eventSubjectID, eventItemName, eventDepartment, eventActorID, eventQuantity), nil
	case events.EventTypeCheckoutResolved:
		return events.NewCheckoutResolvedEvent(eventSubjectID, eventItemName, eventDepartment, eventStatus, eventActorID, eventQuantity), nil
	}
	return nil, fmt.Errorf("unknown event type %q", eventType)
}

func publishEvent(eventType string) error {
	event, err := buildEvent(eventType)
	if err != nil {
		return err
	}

	lg := logger.LoggerWrapper()
	bus := events.NewEventBus(lg)
	bus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
		lg.Info("event received",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	})

	if eventPersist {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		lg = logger.LoggerWrapper()
		gormDB, db, err := initDB(cfg.Database, lg)
		if err != nil {
			return err
		}
		defer db.Close()
		buildServices(cfg, gormDB, db, bus, bus.Synchronous(), lg)
	}

	lg.Info("publishing event", "event_type", eventType, "event_id", event.EventID())
	if err := bus.PublishSync(context.Background(), event); err != nil {
		return err
	}
	lg.Info("event published")
	return nil
}

func init() {
	publishEventCmd.Flags().Int64Var(&eventSubjectID, "id", 1, "item or checkout id")
	publishEventCmd.Flags().Int64Var(&eventActorID, "actor", 1, "maker, requester or approver id")
	publishEventCmd.Flags().StringVar(&eventItemName, "item", "Sample Item", "item name")
	publishEventCmd.Flags().StringVar(&eventDepartment, "department", "IT", "owning department")
	publishEventCmd.Flags().StringVar(&eventStatus, "status", status.Approved, "resolution for *.resolved events")
	publishEventCmd.Flags().Int64Var(&eventQuantity, "quantity", 1, "quantity carried by the event")
	publishEventCmd.Flags().IntVar(&eventDaysLeft, "days-left", 7, "days until expiry for item.expiring")
	publishEventCmd.Flags().BoolVar(&eventPersist, "persist", false, "store notifications in the configured database")

	eventCmd.AddCommand(publishEventCmd)
	rootCmd.AddCommand(eventCmd)
}
