package notification

import (
	"testing"

	"lunchbox/models"

	"github.com/stretchr/testify/assert"
)

func allOn(freq models.Frequency) models.NotificationPreferences {
	p := models.DefaultPreferences()
	p.Frequency = freq
	return p
}

func TestIsImportant(t *testing.T) {
	assert.True(t, IsImportant(models.KindOrderReminder))
	assert.True(t, IsImportant(models.KindOrderConfirmed))
	assert.True(t, IsImportant(models.KindOrderModified))
	assert.False(t, IsImportant(models.KindMenuUpdated))
	assert.False(t, IsImportant("lunch_gossip"))
}

func TestShouldReceive_FrequencyNoneSuppressesEverything(t *testing.T) {
	prefs := allOn(models.FrequencyNone)
	for _, kind := range models.Kinds {
		assert.False(t, ShouldReceive(prefs, kind), kind)
	}
}

func TestShouldReceive_ImportantOnlyRequiresImportanceAndToggle(t *testing.T) {
	for _, toggle := range []bool{true, false} {
		prefs := models.NotificationPreferences{
			OrderReminders:     toggle,
			OrderConfirmations: toggle,
			OrderModifications: toggle,
			MenuUpdates:        toggle,
			DeliveryMethod:     models.DeliveryInApp,
			Frequency:          models.FrequencyImportantOnly,
		}
		for _, kind := range models.Kinds {
			assert.Equal(t, IsImportant(kind) && toggle, ShouldReceive(prefs, kind), "kind=%s toggle=%v", kind, toggle)
		}
	}
}

func TestShouldReceive_OrderReminderWithAllFrequency(t *testing.T) {
	prefs := models.NotificationPreferences{OrderReminders: true, Frequency: models.FrequencyAll}
	assert.True(t, ShouldReceive(prefs, models.KindOrderReminder))
}

func TestShouldReceive_MenuUpdateNotImportant(t *testing.T) {
	prefs := allOn(models.FrequencyImportantOnly)
	assert.False(t, ShouldReceive(prefs, models.KindMenuUpdated))

	prefs.MenuUpdates = false
	assert.False(t, ShouldReceive(prefs, models.KindMenuUpdated))
}

func TestShouldReceive_PerKindToggles(t *testing.T) {
	prefs := allOn(models.FrequencyAll)
	prefs.OrderConfirmations = false
	prefs.MenuUpdates = false

	assert.True(t, ShouldReceive(prefs, models.KindOrderReminder))
	assert.False(t, ShouldReceive(prefs, models.KindOrderConfirmed))
	assert.True(t, ShouldReceive(prefs, models.KindOrderModified))
	assert.False(t, ShouldReceive(prefs, models.KindMenuUpdated))
}

func TestShouldReceive_UnknownValuesFailClosed(t *testing.T) {
	prefs := allOn("weekly")
	for _, kind := range models.Kinds {
		assert.False(t, ShouldReceive(prefs, kind))
	}
	assert.False(t, ShouldReceive(allOn(models.FrequencyAll), "lunch_gossip"))
}

func TestDeliveryChannels(t *testing.T) {
	cases := map[models.DeliveryMethod][]models.Channel{
		models.DeliveryInApp: {models.ChannelInApp},
		models.DeliveryEmail: {models.ChannelEmail},
		models.DeliveryBoth:  {models.ChannelInApp, models.ChannelEmail},
		"carrier_pigeon":     {models.ChannelInApp},
	}
	for method, want := range cases {
		got := DeliveryChannels(models.NotificationPreferences{DeliveryMethod: method})
		assert.Equal(t, want, got, method)
	}
}

func TestEffectivePreferences_DefaultsForUnsetUser(t *testing.T) {
	u := &models.User{ID: "u1"}
	assert.Equal(t, models.DefaultPreferences(), effectivePreferences(u))

	u.NotificationPreferences = allOn(models.FrequencyNone)
	assert.Equal(t, models.FrequencyNone, effectivePreferences(u).Frequency)
}
