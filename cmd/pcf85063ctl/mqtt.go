//go:build linux
// +build linux

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"golang.org/x/sync/errgroup"

	"github.com/tinyrtc/drivers/pcf85063"
)

type publishFunc func(topic string, retained bool, payload string) error

// bridge publishes the clock state under a topic prefix:
//
//	<topic>/time   retained, RFC 3339 time, every poll
//	<topic>/alarm  the time at which the alarm flag was seen, then cleared
//
// and sets the clock from RFC 3339 times received on <topic>/set.
type bridge struct {
	dev     *pcf85063.Device
	topic   string
	publish publishFunc
	set     chan string
}

// poll publishes the time and, if the alarm fired, an alarm event.
func (b *bridge) poll() error {
	t, err := b.dev.Now()
	if err != nil {
		return err
	}
	stamp := t.Format(time.RFC3339)
	err = b.publish(b.topic+"/time", true, stamp)
	if err != nil {
		return err
	}
	fired, err := b.dev.AlarmFlag()
	if err != nil || !fired {
		return err
	}
	err = b.publish(b.topic+"/alarm", false, stamp)
	if err != nil {
		return err
	}
	return b.dev.ClearAlarmFlag()
}

// apply sets the clock from a message received on <topic>/set.
func (b *bridge) apply(payload string) error {
	t, err := time.Parse(time.RFC3339, payload)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", payload, err)
	}
	return b.dev.Set(t)
}

// loop owns the device: polls and time updates are serialized here.
func (b *bridge) loop(ctx context.Context, interval time.Duration) error {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case payload := <-b.set:
			err := b.apply(payload)
			if err != nil {
				log.Printf("could not set clock: %+v", err)
			}
		case <-tick.C:
			err := b.poll()
			var rangeErr *pcf85063.RangeError
			switch {
			case errors.As(err, &rangeErr):
				// clock not set yet, wait for <topic>/set
				log.Printf("skipping poll: %v", err)
			case err != nil:
				return err
			}
		}
	}
}

func mqttBridge(dev *pcf85063.Device, args []string) error {
	fset := flag.NewFlagSet("mqtt", flag.ContinueOnError)
	var (
		broker   = fset.String("broker", "tcp://localhost:1883", "MQTT broker URL")
		topic    = fset.String("topic", "pcf85063", "topic prefix")
		clientID = fset.String("client-id", "pcf85063ctl", "MQTT client identifier")
		interval = fset.Duration("interval", time.Second, "polling interval")
	)
	err := fset.Parse(args)
	if err != nil {
		return err
	}

	opts := mqtt.NewClientOptions().
		AddBroker(*broker).
		SetClientID(*clientID).
		SetAutoReconnect(true)
	client := mqtt.NewClient(opts)
	if tok := client.Connect(); tok.Wait() && tok.Error() != nil {
		return fmt.Errorf("could not connect to %s: %w", *broker, tok.Error())
	}
	defer client.Disconnect(250)

	b := &bridge{
		dev:   dev,
		topic: *topic,
		set:   make(chan string, 1),
		publish: func(topic string, retained bool, payload string) error {
			tok := client.Publish(topic, 1, retained, payload)
			tok.Wait()
			return tok.Error()
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	grp, ctx := errgroup.WithContext(ctx)

	tok := client.Subscribe(*topic+"/set", 1, func(_ mqtt.Client, msg mqtt.Message) {
		select {
		case b.set <- string(msg.Payload()):
		case <-ctx.Done():
		}
	})
	if tok.Wait() && tok.Error() != nil {
		return fmt.Errorf("could not subscribe: %w", tok.Error())
	}

	grp.Go(func() error {
		return b.loop(ctx, *interval)
	})
	grp.Go(func() error {
		<-ctx.Done()
		tok := client.Unsubscribe(*topic + "/set")
		tok.Wait()
		return nil
	})

	log.Printf("publishing to %s under %q", *broker, *topic)
	return grp.Wait()
}
