package events

import (
	"testing"

	"bonik/internal/models"
)

func TestNewProducer_EmptyBrokersDisabled(t *testing.T) {
	p, err := NewProducer("")
	if err != nil {
		t.Fatalf("NewProducer: %v", err)
	}
	if p != nil {
		t.Fatal("expected nil producer for empty brokers")
	}

	// A nil producer must accept publishes and close without panic.
	if err := p.PublishOrderCreated(&models.Order{OrderNumber: "BNK-1"}); err != nil {
		t.Errorf("nil publish: %v", err)
	}
	if err := p.PublishStatusChanged(&models.Order{OrderNumber: "BNK-1"}, models.OrderStatusShipped); err != nil {
		t.Errorf("nil publish status: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("nil close: %v", err)
	}
}
