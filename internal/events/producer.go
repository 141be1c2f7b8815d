// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package events publishes order lifecycle events to Kafka for
// downstream consumers (analytics, fulfilment dashboards). Publishing
// is optional: with no brokers configured the producer is nil-safe and
// every publish is a no-op.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"bonik/internal/models"
)

const (
	OrderCreatedTopic       = "order.created"
	OrderStatusChangedTopic = "order.status_changed"
)

// OrderCreatedEvent is the wire payload for a newly placed order.
type OrderCreatedEvent struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Phone       string    `json:"phone"`
	Subtotal    int       `json:"subtotal"`
	Total       int       `json:"total"`
	ItemCount   int       `json:"item_count"`
	Source      string    `json:"source"`
	CreatedAt   time.Time `json:"created_at"`
	EventTime   time.Time `json:"event_time"`
}

// OrderStatusChangedEvent is the wire payload for a status transition.
type OrderStatusChangedEvent struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Status      string    `json:"status"`
	EventTime   time.Time `json:"event_time"`
}

// Producer wraps a sarama SyncProducer. A nil *Producer is valid and
// drops all events.
type Producer struct {
	producer sarama.SyncProducer
}

// NewProducer connects to Kafka. brokers is a comma-separated list;
// empty returns (nil, nil) so the caller can wire a disabled producer.
func NewProducer(brokers string) (*Producer, error) {
	if strings.TrimSpace(brokers) == "" {
		return nil, nil
	}

	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Version = sarama.V2_6_0_0

	producer, err := sarama.NewSyncProducer(strings.Split(brokers, ","), config)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return &Producer{producer: producer}, nil
}

func (p *Producer) publish(topic, key string, payload any) error {
	if p == nil {
		return nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(data),
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}

	slog.Info("event published",
		"topic", topic, "partition", partition, "offset", offset, "key", key)
	return nil
}

// PublishOrderCreated emits an order.created event.
func (p *Producer) PublishOrderCreated(o *models.Order) error {
	return p.publish(OrderCreatedTopic, o.OrderNumber, OrderCreatedEvent{
		OrderID:     o.ID.String(),
		OrderNumber: o.OrderNumber,
		Phone:       o.ShippingPhone,
		Subtotal:    o.Subtotal,
		Total:       o.Total,
		ItemCount:   len(o.Items),
		Source:      o.OrderSource,
		CreatedAt:   o.CreatedAt,
		EventTime:   time.Now(),
	})
}

// PublishStatusChanged emits an order.status_changed event.
func (p *Producer) PublishStatusChanged(o *models.Order, status models.OrderStatus) error {
	return p.publish(OrderStatusChangedTopic, o.OrderNumber, OrderStatusChangedEvent{
		OrderID:     o.ID.String(),
		OrderNumber: o.OrderNumber,
		Status:      string(status),
		EventTime:   time.Now(),
	})
}

// Close shuts the underlying producer down. Safe on nil.
func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.producer.Close()
}
