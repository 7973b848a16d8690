package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManager_StateAndData(t *testing.T) {
	sm := NewManager(time.Minute)

	assert.Equal(t, StateNone, sm.GetState(1))

	sm.SetState(1, StateCancelReason)
	sm.SetData(1, KeyBookingID, int64(42))

	assert.Equal(t, StateCancelReason, sm.GetState(1))
	v, ok := sm.GetData(1, KeyBookingID)
	assert.True(t, ok)
	assert.Equal(t, int64(42), v)

	// чужой диалог не задет
	assert.Equal(t, StateNone, sm.GetState(2))

	sm.ClearState(1)
	assert.Equal(t, StateNone, sm.GetState(1))
	_, ok = sm.GetData(1, KeyBookingID)
	assert.False(t, ok)
}

func TestManager_SetStateNoneDeletes(t *testing.T) {
	sm := NewManager(time.Minute)

	sm.SetState(1, StateCancelReason)
	sm.SetState(1, StateNone)

	assert.Empty(t, sm.states)
}

func TestManager_Expiry(t *testing.T) {
	sm := NewManager(10 * time.Minute)
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	sm.now = func() time.Time { return now }

	sm.SetState(1, StateCancelReason)
	sm.SetData(1, KeyBookingID, int64(7))

	now = now.Add(5 * time.Minute)
	assert.Equal(t, StateCancelReason, sm.GetState(1))

	now = now.Add(11 * time.Minute)
	assert.Equal(t, StateNone, sm.GetState(1))
	_, ok := sm.GetData(1, KeyBookingID)
	assert.False(t, ok)

	assert.Equal(t, 1, sm.Sweep())
	assert.Empty(t, sm.states)
}

func TestManager_ExpiredEntryIsReplaced(t *testing.T) {
	sm := NewManager(time.Minute)
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	sm.now = func() time.Time { return now }

	sm.SetData(1, KeyBookingID, int64(1))
	now = now.Add(2 * time.Minute)

	sm.SetState(1, StateCancelReason)
	_, ok := sm.GetData(1, KeyBookingID)
	assert.False(t, ok, "stale data must not leak into a new dialog")
}

func TestNewManager_DefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultTTL, NewManager(0).ttl)
}
