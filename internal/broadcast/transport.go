// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package broadcast

import (
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	natsgo "github.com/nats-io/nats.go"

	"github.com/pavoi/hudson/internal/config"
	"github.com/pavoi/hudson/internal/logging"
)

// Transport pairs the publisher and subscriber of one message bus.
type Transport struct {
	Publisher  message.Publisher
	Subscriber message.Subscriber

	name    string
	closers []func() error
}

// Name returns the transport name (memory or nats).
func (t *Transport) Name() string {
	return t.name
}

// Close closes the publisher and the subscriber.
func (t *Transport) Close() error {
	var errs []error
	for _, c := range t.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewTransport builds the transport selected by cfg.Broadcast.Transport.
// natsURL overrides cfg.NATS.URL, which is how the embedded server's address
// is passed in.
func NewTransport(cfg *config.Config, natsURL string) (*Transport, error) {
	switch cfg.Broadcast.Transport {
	case config.TransportMemory, "":
		return NewMemoryTransport(&cfg.Broadcast), nil
	case config.TransportNATS:
		if natsURL == "" {
			natsURL = cfg.NATS.URL
		}
		return NewNATSTransport(natsURL, &cfg.NATS)
	default:
		return nil, fmt.Errorf("unsupported broadcast transport %q", cfg.Broadcast.Transport)
	}
}

// NewMemoryTransport returns an in-process bus. Publish blocks until every
// subscriber has acked the message, which keeps per-topic order.
func NewMemoryTransport(cfg *config.BroadcastConfig) *Transport {
	buffer := cfg.OutputBuffer
	if buffer <= 0 {
		buffer = 256
	}
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer:            buffer,
			BlockPublishUntilSubscriberAck: true,
		},
		logging.NewWatermillLogger(),
	)
	return &Transport{
		Publisher:  pubSub,
		Subscriber: pubSub,
		name:       config.TransportMemory,
		closers:    []func() error{pubSub.Close},
	}
}

// NewNATSTransport connects a publisher and a fan-out subscriber to core NATS.
func NewNATSTransport(url string, cfg *config.NATSConfig) (*Transport, error) {
	logger := logging.NewWatermillLogger()

	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:         url,
		NatsOptions: natsOptions("publisher", cfg, logger),
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream:   wmNats.JetStreamConfig{Disabled: true},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create NATS publisher: %w", err)
	}

	// No queue group: every instance needs every message to reach its own views.
	sub, err := wmNats.NewSubscriber(wmNats.SubscriberConfig{
		URL:              url,
		SubscribersCount: 1,
		AckWaitTimeout:   30 * time.Second,
		CloseTimeout:     10 * time.Second,
		NatsOptions:      natsOptions("subscriber", cfg, logger),
		Unmarshaler:      &wmNats.NATSMarshaler{},
		JetStream:        wmNats.JetStreamConfig{Disabled: true},
	}, logger)
	if err != nil {
		_ = pub.Close()
		return nil, fmt.Errorf("create NATS subscriber: %w", err)
	}

	return &Transport{
		Publisher:  pub,
		Subscriber: sub,
		name:       config.TransportNATS,
		closers:    []func() error{pub.Close, sub.Close},
	}, nil
}

func natsOptions(role string, cfg *config.NATSConfig, logger watermill.LoggerAdapter) []natsgo.Option {
	return []natsgo.Option{
		natsgo.Name("hudson-" + role),
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(cfg.MaxReconnects),
		natsgo.ReconnectWait(cfg.ReconnectWait),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS "+role+" disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS "+role+" reconnected", watermill.LogFields{
				"url": nc.ConnectedUrl(),
			})
		}),
		natsgo.ErrorHandler(func(_ *natsgo.Conn, _ *natsgo.Subscription, err error) {
			logger.Error("NATS "+role+" error", err, nil)
		}),
	}
}
