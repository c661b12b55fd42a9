package events

import (
	"context"
	"testing"
)

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	if err := p.Publish(context.Background(), "task-created-1", map[string]int{"task_id": 1}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
}

func TestKafkaPublisherRejectsUnencodablePayload(t *testing.T) {
	p := NewKafkaPublisher(nil)
	if err := p.Publish(context.Background(), "task-created-1", make(chan int)); err == nil {
		t.Fatal("expected marshal error")
	}
}
