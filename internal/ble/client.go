// Package ble provides BLE communication with GoCube smart cubes and turns
// their notifications into viewer events.
package ble

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/sirupsen/logrus"
	"tinygo.org/x/bluetooth"

	"github.com/SeamusWaldron/gocube3d/internal/protocol"
)

// Errors
var (
	ErrNotConnected     = errors.New("ble: not connected to device")
	ErrAlreadyConnected = errors.New("ble: already connected to a device")
	ErrDeviceNotFound   = errors.New("ble: device not found")
	ErrServiceNotFound  = errors.New("ble: GoCube service not found")
)

// rotationQueueWait is how long a rotation waits for room in a full event
// queue before it is dropped.
var rotationQueueWait = 250 * time.Millisecond

// BLE UUIDs
var (
	serviceUUID = mustParseUUID(protocol.ServiceUUID)
	txCharUUID  = mustParseUUID(protocol.TxCharUUID)
	rxCharUUID  = mustParseUUID(protocol.RxCharUUID)
)

func mustParseUUID(s string) bluetooth.UUID {
	u, err := bluetooth.ParseUUID(s)
	if err != nil {
		panic(err)
	}
	return u
}

// ScanResult represents a discovered GoCube device.
type ScanResult struct {
	Name    string
	RSSI    int16
	Address bluetooth.Address
}

// Client manages the BLE connection to a GoCube device.
type Client struct {
	adapter *bluetooth.Adapter
	log     logrus.FieldLogger
	events  chan Event

	mu         sync.RWMutex
	device     bluetooth.Device
	rxChar     bluetooth.DeviceCharacteristic
	connected  bool
	deviceName string
	address    string
	battery    int
	raw        func([]byte)
	dropped    int
}

// NewClient enables the default adapter. A nil logger discards output.
func NewClient(log logrus.FieldLogger) (*Client, error) {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("failed to enable BLE adapter: %w", err)
	}

	return &Client{
		adapter: adapter,
		log:     log,
		events:  make(chan Event, 64),
		battery: -1,
	}, nil
}

// Events returns the decoded notifications. The channel is never closed;
// stop reading when the context driving the client is done.
func (c *Client) Events() <-chan Event {
	return c.events
}

// Scan scans for GoCube devices until timeout or ctx is done.
func (c *Client) Scan(ctx context.Context, timeout time.Duration) ([]ScanResult, error) {
	if c.IsConnected() {
		return nil, ErrAlreadyConnected
	}

	var (
		mu      sync.Mutex
		results []ScanResult
		seen    = make(map[string]bool)
		done    = make(chan error, 1)
	)

	go func() {
		done <- c.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			name := result.LocalName()
			if !strings.HasPrefix(strings.ToLower(name), "gocube") {
				return
			}

			mu.Lock()
			defer mu.Unlock()
			addr := result.Address.String()
			if seen[addr] {
				return
			}
			seen[addr] = true
			results = append(results, ScanResult{Name: name, RSSI: result.RSSI, Address: result.Address})
		})
	}()

	select {
	case <-time.After(timeout):
	case <-ctx.Done():
	}

	c.adapter.StopScan()
	if err := <-done; err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	return results, nil
}

// ConnectFirst scans and connects to the first GoCube found.
func (c *Client) ConnectFirst(ctx context.Context, timeout time.Duration) (ScanResult, error) {
	results, err := c.Scan(ctx, timeout)
	if err != nil {
		return ScanResult{}, err
	}
	if len(results) == 0 {
		return ScanResult{}, ErrDeviceNotFound
	}
	return results[0], c.Connect(ctx, results[0])
}

// Connect connects to a scanned device, retrying transient failures.
func (c *Client) Connect(ctx context.Context, result ScanResult) error {
	if c.IsConnected() {
		return ErrAlreadyConnected
	}

	log := c.log.WithFields(logrus.Fields{"device": result.Name, "address": result.Address.String()})
	err := retry.Do(func() error {
		return c.connect(result)
	},
		retry.Context(ctx),
		retry.DelayType(retry.FixedDelay),
		retry.Delay(1500*time.Millisecond),
		retry.Attempts(4),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, ErrServiceNotFound)
		}),
		retry.OnRetry(func(n uint, err error) {
			log.WithError(err).WithField("attempt", n+1).Warn("connect failed, retrying")
		}),
	)
	if err != nil {
		return err
	}

	log.Info("connected")
	if err := c.SendCommand(protocol.CmdRequestBattery); err != nil {
		log.WithError(err).Debug("battery request failed")
	}
	return nil
}

func (c *Client) connect(result ScanResult) error {
	device, err := c.adapter.Connect(result.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to discover services: %w", err)
	}
	if len(services) == 0 {
		device.Disconnect()
		return ErrServiceNotFound
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{txCharUUID, rxCharUUID})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to discover characteristics: %w", err)
	}

	var txChar, rxChar bluetooth.DeviceCharacteristic
	for _, ch := range chars {
		switch ch.UUID() {
		case txCharUUID:
			txChar = ch
		case rxCharUUID:
			rxChar = ch
		}
	}

	if err := txChar.EnableNotifications(c.handleNotification); err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to enable notifications: %w", err)
	}

	c.mu.Lock()
	c.device = device
	c.rxChar = rxChar
	c.connected = true
	c.deviceName = result.Name
	c.address = result.Address.String()
	c.mu.Unlock()
	return nil
}

// Disconnect disconnects from the current device.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil
	}

	err := c.device.Disconnect()
	c.connected = false
	c.deviceName = ""
	c.address = ""
	c.battery = -1

	return err
}

// IsConnected returns true if connected to a device.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// DeviceName returns the connected device name.
func (c *Client) DeviceName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deviceName
}

// Address returns the connected device address.
func (c *Client) Address() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.address
}

// Battery returns the last known battery level (-1 if unknown).
func (c *Client) Battery() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.battery
}

// SendCommand sends a command to the cube.
func (c *Client) SendCommand(cmd byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.connected {
		return ErrNotConnected
	}

	data := protocol.BuildCommand(cmd)
	if _, err := c.rxChar.WriteWithoutResponse(data); err != nil {
		_, err = c.rxChar.Write(data)
		return err
	}
	return nil
}

// EnableOrientation enables orientation notifications.
func (c *Client) EnableOrientation() error {
	return c.SendCommand(protocol.CmdEnableOrientation)
}

// CalibrateOrientation resets the orientation sensor to the current pose.
func (c *Client) CalibrateOrientation() error {
	return c.SendCommand(protocol.CmdCalibrateOrientation)
}

// ResetSolved tells the cube its current state is solved.
func (c *Client) ResetSolved() error {
	return c.SendCommand(protocol.CmdResetSolved)
}

// SetRawHandler registers fn to see every notification before decoding.
// fn runs on the BLE stack's goroutine.
func (c *Client) SetRawHandler(fn func(data []byte)) {
	c.mu.Lock()
	c.raw = fn
	c.mu.Unlock()
}

// handleNotification decodes a notification and queues it. It runs on the
// BLE stack's goroutine and blocks at most rotationQueueWait.
func (c *Client) handleNotification(data []byte) {
	c.mu.RLock()
	raw := c.raw
	c.mu.RUnlock()
	if raw != nil {
		raw(data)
	}

	ev, err := DecodeFrame(data)
	if err != nil {
		c.log.WithError(err).Debug("dropping malformed notification")
		return
	}

	c.mu.Lock()
	if ev.Battery != nil {
		c.battery = ev.Battery.Level
	}
	ev.Dropped = c.dropped
	c.mu.Unlock()

	if c.enqueue(ev) {
		if ev.Dropped > 0 {
			c.mu.Lock()
			c.dropped -= ev.Dropped
			c.mu.Unlock()
		}
		return
	}

	if ev.Type == protocol.MsgTypeRotation {
		c.mu.Lock()
		c.dropped++
		c.mu.Unlock()
		c.log.WithField("turns", len(ev.Turns)).Error("event queue full, dropped rotation: mirrored cube is out of sync")
		return
	}
	c.log.WithField("type", protocol.MessageTypeName(ev.Type)).Warn("event queue full, dropping notification")
}

// enqueue queues ev without blocking, except that a rotation waits up to
// rotationQueueWait for room.
func (c *Client) enqueue(ev Event) bool {
	select {
	case c.events <- ev:
		return true
	default:
	}
	if ev.Type != protocol.MsgTypeRotation {
		return false
	}

	timer := time.NewTimer(rotationQueueWait)
	defer timer.Stop()
	select {
	case c.events <- ev:
		return true
	case <-timer.C:
		return false
	}
}
