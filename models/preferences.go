package models

// DeliveryMethod selects the channels a user wants notifications on.
type DeliveryMethod string

const (
	DeliveryInApp DeliveryMethod = "in_app"
	DeliveryEmail DeliveryMethod = "email"
	DeliveryBoth  DeliveryMethod = "both"
)

// Frequency filters notifications by importance.
type Frequency string

const (
	FrequencyAll           Frequency = "all"
	FrequencyImportantOnly Frequency = "important_only"
	FrequencyNone          Frequency = "none"
)

// Channel is a delivery mechanism for a notification.
type Channel string

const (
	ChannelInApp Channel = "in_app"
	ChannelEmail Channel = "email"
	ChannelPush  Channel = "push"
)

// NotificationPreferences is embedded in each user document.
type NotificationPreferences struct {
	OrderReminders     bool           `json:"orderReminders" bson:"orderReminders"`
	OrderConfirmations bool           `json:"orderConfirmations" bson:"orderConfirmations"`
	OrderModifications bool           `json:"orderModifications" bson:"orderModifications"`
	MenuUpdates        bool           `json:"menuUpdates" bson:"menuUpdates"`
	DeliveryMethod     DeliveryMethod `json:"deliveryMethod" bson:"deliveryMethod"`
	Frequency          Frequency      `json:"frequency" bson:"frequency"`
}

// DefaultPreferences applies to users that never saved preferences.
func DefaultPreferences() NotificationPreferences {
	return NotificationPreferences{
		OrderReminders:     true,
		OrderConfirmations: true,
		OrderModifications: true,
		MenuUpdates:        true,
		DeliveryMethod:     DeliveryInApp,
		Frequency:          FrequencyAll,
	}
}

// IsZero reports whether the preferences were never set.
func (p NotificationPreferences) IsZero() bool {
	return p == NotificationPreferences{}
}

// Validate rejects unknown enum values.
func (p NotificationPreferences) Validate() error {
	switch p.DeliveryMethod {
	case DeliveryInApp, DeliveryEmail, DeliveryBoth:
	default:
		return NewValidationError("deliveryMethod", "must be one of in_app, email, both")
	}
	switch p.Frequency {
	case FrequencyAll, FrequencyImportantOnly, FrequencyNone:
	default:
		return NewValidationError("frequency", "must be one of all, important_only, none")
	}
	return nil
}
