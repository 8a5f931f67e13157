package ble

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/gocube3d/internal/protocol"
)

func TestFullQueueCountsDroppedRotations(t *testing.T) {
	defer func(d time.Duration) { rotationQueueWait = d }(rotationQueueWait)
	rotationQueueWait = 5 * time.Millisecond

	logger, hook := test.NewNullLogger()
	c := &Client{log: logger, events: make(chan Event, 1), battery: -1}
	rotation := protocol.BuildMessage(protocol.MsgTypeRotation, []byte{0x08, 0})

	c.handleNotification(rotation)
	c.handleNotification(rotation)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)

	first := <-c.Events()
	assert.Zero(t, first.Dropped)

	c.handleNotification(protocol.BuildMessage(protocol.MsgTypeBattery, []byte{80}))
	next := <-c.Events()
	require.NotNil(t, next.Battery)
	assert.Equal(t, 1, next.Dropped, "the next delivered event reports the lost rotation")
	assert.Equal(t, 80, c.Battery())

	c.handleNotification(rotation)
	assert.Zero(t, (<-c.Events()).Dropped)
}

func TestRotationWaitsForRoom(t *testing.T) {
	defer func(d time.Duration) { rotationQueueWait = d }(rotationQueueWait)
	rotationQueueWait = time.Second

	c := &Client{log: logrus.New(), events: make(chan Event, 1), battery: -1}
	rotation := protocol.BuildMessage(protocol.MsgTypeRotation, []byte{0x08, 0})
	c.handleNotification(rotation)

	go func() {
		time.Sleep(20 * time.Millisecond)
		<-c.events
	}()
	c.handleNotification(rotation)

	ev := <-c.Events()
	assert.Equal(t, protocol.MsgTypeRotation, ev.Type)
	assert.Zero(t, ev.Dropped)
}
