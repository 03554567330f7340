package notificationRepo

import (
	"testing"

	"lunchbox/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNormalizeListOptions(t *testing.T) {
	assert.Equal(t, DefaultListLimit, NormalizeListOptions(models.ListOptions{}).Limit)
	assert.Equal(t, MaxListLimit, NormalizeListOptions(models.ListOptions{Limit: 1000}).Limit)
	assert.Equal(t, 10, NormalizeListOptions(models.ListOptions{Limit: 10}).Limit)
	assert.Equal(t, 0, NormalizeListOptions(models.ListOptions{Skip: -3}).Skip)
}

func TestVisibleToMatchesOwnerAndBroadcast(t *testing.T) {
	filter := visibleTo("u1")
	clauses, ok := filter["$or"].([]bson.M)
	if assert.True(t, ok) {
		assert.Len(t, clauses, 2)
		assert.Equal(t, "u1", clauses[0]["recipient"])
		assert.Nil(t, clauses[1]["recipient"])
	}
}
