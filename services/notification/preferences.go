package notification

import "lunchbox/models"

// IsImportant classifies a kind for users who chose "important only".
func IsImportant(kind models.NotificationKind) bool {
	switch kind {
	case models.KindOrderReminder, models.KindOrderConfirmed, models.KindOrderModified:
		return true
	default:
		return false
	}
}

// ShouldReceive decides whether a user with prefs wants kind at all.
// Unknown frequencies and kinds fail closed.
func ShouldReceive(prefs models.NotificationPreferences, kind models.NotificationKind) bool {
	switch prefs.Frequency {
	case models.FrequencyAll:
	case models.FrequencyImportantOnly:
		if !IsImportant(kind) {
			return false
		}
	default:
		return false
	}

	switch kind {
	case models.KindOrderReminder:
		return prefs.OrderReminders
	case models.KindOrderConfirmed:
		return prefs.OrderConfirmations
	case models.KindOrderModified:
		return prefs.OrderModifications
	case models.KindMenuUpdated:
		return prefs.MenuUpdates
	default:
		return false
	}
}

// DeliveryChannels maps the delivery method to its channel set. An unknown
// method keeps only the in-app channel.
func DeliveryChannels(prefs models.NotificationPreferences) []models.Channel {
	switch prefs.DeliveryMethod {
	case models.DeliveryEmail:
		return []models.Channel{models.ChannelEmail}
	case models.DeliveryBoth:
		return []models.Channel{models.ChannelInApp, models.ChannelEmail}
	default:
		return []models.Channel{models.ChannelInApp}
	}
}

func hasChannel(channels []models.Channel, ch models.Channel) bool {
	for _, c := range channels {
		if c == ch {
			return true
		}
	}
	return false
}

// effectivePreferences substitutes defaults for users that never saved any.
func effectivePreferences(u *models.User) models.NotificationPreferences {
	if u.NotificationPreferences.IsZero() {
		return models.DefaultPreferences()
	}
	return u.NotificationPreferences
}
