package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_Reachable(t *testing.T) {
	assert.True(t, (&User{IsActive: true}).Reachable())
	assert.False(t, (&User{IsActive: false}).Reachable(), "unsubscribed")
	assert.False(t, (&User{IsActive: true, IsBlocked: true}).Reachable(), "blocked the bot")
}
