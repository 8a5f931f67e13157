// ble-raw connects to the first GoCube in range and logs every notification
// next to what it decodes to.
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/gocube3d/internal/ble"
	"github.com/SeamusWaldron/gocube3d/internal/cube"
	"github.com/SeamusWaldron/gocube3d/internal/protocol"
)

func main() {
	scanTimeout := flag.Duration("scan", 10*time.Second, "scan timeout")
	runFor := flag.Duration("for", 2*time.Minute, "how long to listen")
	verbose := flag.Bool("v", false, "also log orientation frames")
	flag.Parse()

	log := logrus.New()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05.000"})

	client, err := ble.NewClient(log)
	if err != nil {
		log.WithError(err).Fatal("BLE not available")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *runFor)
	defer cancel()

	client.SetRawHandler(func(data []byte) {
		describe(log.WithField("raw", hex.EncodeToString(data)), data)
	})

	log.Info("scanning for GoCube")
	dev, err := client.ConnectFirst(ctx, *scanTimeout)
	if err != nil {
		log.WithError(err).Fatal("connect failed")
	}
	defer client.Disconnect()
	log.WithFields(logrus.Fields{"name": dev.Name, "address": dev.Address.String()}).Info("connected, rotate the cube")

	if err := client.EnableOrientation(); err != nil {
		log.WithError(err).Warn("orientation stream not enabled")
	}

	// Drain decoded events so the client's queue never fills.
	for {
		select {
		case <-ctx.Done():
			log.Info("disconnecting")
			return
		case <-client.Events():
		}
	}
}

// describe logs what a frame decodes to.
func describe(entry *logrus.Entry, data []byte) {
	msg, err := protocol.ParseMessage(data)
	if err != nil {
		entry.WithError(err).Warn("unparseable frame")
		return
	}
	entry = entry.WithField("type", protocol.MessageTypeName(msg.Type))

	switch msg.Type {
	case protocol.MsgTypeRotation:
		rotations, err := protocol.DecodeRotation(msg.Payload)
		if err != nil {
			entry.WithError(err).Warn("bad rotation payload")
			return
		}
		entry.WithField("turns", cube.FormatTurns(protocol.RotationsToTurns(rotations))).Info("rotation")
	case protocol.MsgTypeOrientation:
		o, err := protocol.DecodeOrientation(msg.Payload)
		if err != nil {
			entry.WithError(err).Warn("bad orientation payload")
			return
		}
		entry.WithFields(logrus.Fields{"up": o.UpFace.Name(), "front": o.FrontFace.Name()}).Debug("orientation")
	case protocol.MsgTypeBattery:
		b, err := protocol.DecodeBattery(msg.Payload)
		if err != nil {
			entry.WithError(err).Warn("bad battery payload")
			return
		}
		entry.WithField("level", b.Level).Info("battery")
	default:
		entry.WithField("payload_len", len(msg.Payload)).Info("frame")
	}
}
