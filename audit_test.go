package goAdmin

import (
	"context"
	"testing"
	"time"
)

func collectEvents(t *testing.T, sink *ChannelSink, want int) []AuditEvent {
	t.Helper()
	events := make([]AuditEvent, 0, want)
	deadline := time.After(2 * time.Second)
	for len(events) < want {
		select {
		case event := <-sink.Events():
			events = append(events, event)
		case <-deadline:
			t.Fatalf("timed out waiting for %d events, have %d", want, len(events))
		}
	}
	return events
}

func TestAuditEmitsSessionEvents(t *testing.T) {
	api := newTestAPI(t)
	sink := NewChannelSink(64)

	cfg := DefaultConfig()
	cfg.Gateway.BaseURL = api.srv.URL

	client, err := New().WithConfig(cfg).WithAuditSink(sink).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer client.Close()

	mustLogin(t, client)
	client.Logout(context.Background())

	var login, logout *AuditEvent
	for _, event := range collectEvents(t, sink, 2) {
		e := event
		switch e.EventType {
		case "login":
			login = &e
		case "logout":
			logout = &e
		}
	}

	if login == nil || !login.Success || login.Email != "mod@example.edu" {
		t.Fatalf("expected successful login event, got %+v", login)
	}
	if logout == nil || !logout.Success {
		t.Fatalf("expected logout event, got %+v", logout)
	}
}

func TestAuditRequestEventsCarryRequestID(t *testing.T) {
	api := newTestAPI(t)
	sink := NewChannelSink(64)

	cfg := DefaultConfig()
	cfg.Gateway.BaseURL = api.srv.URL

	client, err := New().WithConfig(cfg).WithAuditSink(sink).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer client.Close()

	mustLogin(t, client)
	if _, err := client.ListUsers(context.Background(), UserListQuery{}); err != nil {
		t.Fatalf("list users: %v", err)
	}
	client.Close()

	var request *AuditEvent
	for _, event := range collectEvents(t, sink, 2) {
		if event.EventType == "request" && event.Resource == "/admin/users" {
			e := event
			request = &e
		}
	}
	if request == nil {
		t.Fatalf("expected a request event for /admin/users")
	}
	if request.RequestID == "" {
		t.Fatalf("expected request id on request event")
	}
	if !request.Success {
		t.Fatalf("expected successful request event")
	}
}

func TestAuditDisabledByDefault(t *testing.T) {
	api := newTestAPI(t)
	client, _ := newTestClient(t, api, nil)
	mustLogin(t, client)

	if got := client.AuditDropped(); got != 0 {
		t.Fatalf("expected zero drops with audit disabled, got %d", got)
	}
}
