package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHealthStatusHealthy(t *testing.T) {
	all := HealthStatus{Mongo: true, Cache: true, AuthCache: true, ReminderQueue: true, CheckedAt: time.Now()}
	assert.True(t, all.Healthy())

	for _, degraded := range []HealthStatus{
		{Cache: true, AuthCache: true, ReminderQueue: true},
		{Mongo: true, AuthCache: true, ReminderQueue: true},
		{Mongo: true, Cache: true, ReminderQueue: true},
		{Mongo: true, Cache: true, AuthCache: true},
	} {
		assert.False(t, degraded.Healthy())
	}
}
