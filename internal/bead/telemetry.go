package bead

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// ErrTelemetryInactive is returned by the DB calls when telemetry is
// switched off for the game or no store is attached.
var ErrTelemetryInactive = errors.New("telemetry inactive")

// Telemetry records game sessions and events.
type Telemetry interface {
	Login(ctx context.Context, app, team, user string) (string, error)
	Event(ctx context.Context, team, name string, fields ...any) error
	Send(ctx context.Context, team string, discard bool) (int, error)
}

// DBLogin opens a telemetry session and returns the logged-in user.
func (e *Engine) DBLogin(app, team string, active bool) (string, error) {
	if e.telemetry == nil || (!active && !e.forceTelemetry) {
		return "", ErrTelemetryInactive
	}
	user, err := e.telemetry.Login(e.ctx, app, team, e.user)
	if err != nil {
		return "", fmt.Errorf("db login: %w", err)
	}
	e.bus.Emit(Event{Type: EventTelemetry, Name: "login", Text: team})
	return user, nil
}

func (e *Engine) DBEvent(team, name string, fields ...any) error {
	if e.telemetry == nil {
		return ErrTelemetryInactive
	}
	if err := e.telemetry.Event(e.ctx, team, name, fields...); err != nil {
		return fmt.Errorf("db event %s: %w", name, err)
	}
	e.bus.Emit(Event{Type: EventTelemetry, Name: name, Text: team})
	return nil
}

func (e *Engine) DBSend(team string, discard bool) (int, error) {
	if e.telemetry == nil {
		return 0, ErrTelemetryInactive
	}
	n, err := e.telemetry.Send(e.ctx, team, discard)
	if err != nil {
		return 0, fmt.Errorf("db send: %w", err)
	}
	e.bus.Emit(Event{Type: EventTelemetry, Name: "send", Text: team})
	return n, nil
}

// ReportStartup logs in, records a "startup" event for the user and
// sends it. Every game runs this from Init.
func ReportStartup(h Host, app, team string, active bool) {
	user, err := h.DBLogin(app, team, active)
	if err != nil {
		if !errors.Is(err, ErrTelemetryInactive) {
			log.Printf("telemetry: %v", err)
		}
		return
	}
	if err := h.DBEvent(team, "startup", user); err != nil {
		log.Printf("telemetry: %v", err)
		return
	}
	if _, err := h.DBSend(team, true); err != nil {
		log.Printf("telemetry: %v", err)
	}
}
