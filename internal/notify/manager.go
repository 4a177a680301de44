package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"stride/internal/config"
	"stride/internal/session"
)

// Event types, matching the notifications.events.* config keys.
const (
	EventGoalReached      = "on_goal_reached"
	EventPermissionDenied = "on_permission_denied"
)

// Manager fans a session event out to every enabled provider.
type Manager struct {
	providers map[string]Notifier
	events    map[string]bool
	logger    *slog.Logger
	timeout   time.Duration

	wg sync.WaitGroup
}

// ManagerOption customizes a Manager.
type ManagerOption func(*Manager)

// WithProvider registers or replaces a provider by name.
func WithProvider(name string, n Notifier) ManagerOption {
	return func(m *Manager) { m.providers[name] = n }
}

// WithTimeout bounds each asynchronous delivery.
func WithTimeout(d time.Duration) ManagerOption {
	return func(m *Manager) { m.timeout = d }
}

// NewManager builds providers from cfg. A disabled or incomplete provider is skipped with a warning.
func NewManager(cfg config.Notifications, logger *slog.Logger, opts ...ManagerOption) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		providers: make(map[string]Notifier),
		events: map[string]bool{
			EventGoalReached:      cfg.Events.OnGoalReached,
			EventPermissionDenied: cfg.Events.OnPermissionDenied,
		},
		logger:  logger,
		timeout: 10 * time.Second,
	}

	if cfg.Slack.Enabled {
		if cfg.Slack.Token == "" {
			logger.Warn("Slack token not set, slack notifications disabled")
		} else {
			m.providers["slack"] = NewSlackNotifier(cfg.Slack.Token, cfg.Slack.Channel)
		}
	}

	if cfg.Discord.Enabled {
		if cfg.Discord.WebhookURL == "" {
			logger.Warn("Discord webhook URL not set, discord notifications disabled")
		} else {
			m.providers["discord"] = NewDiscordNotifier(cfg.Discord.WebhookURL)
		}
	}

	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Enabled reports whether eventType would reach at least one provider.
func (m *Manager) Enabled(eventType string) bool {
	return len(m.providers) > 0 && m.events[eventType]
}

// Notify sends message to every provider if eventType is enabled. Provider failures are joined.
func (m *Manager) Notify(ctx context.Context, eventType, message string) error {
	if !m.Enabled(eventType) {
		return nil
	}

	m.logger.Debug("Sending notification", "event", eventType)

	var errs []error
	for name, p := range m.providers {
		if err := p.Notify(ctx, message); err != nil {
			m.logger.Warn("Notification failed", "provider", name, "event", eventType, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// NotifyAsync delivers in the background so producer callbacks are never held up by the network.
func (m *Manager) NotifyAsync(eventType, message string) {
	if !m.Enabled(eventType) {
		return
	}
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		_ = m.Notify(ctx, eventType, message)
	}()
}

// Wait blocks until every asynchronous delivery has finished.
func (m *Manager) Wait() {
	m.wg.Wait()
}

// Listener adapts the manager to session callbacks.
func (m *Manager) Listener() session.Listener {
	return session.ListenerFuncs{
		OnGoalReached: func(s session.Snapshot) {
			m.NotifyAsync(EventGoalReached, GoalMessage(s))
		},
		OnUpdate: func(s session.Snapshot) {
			if s.State == session.Blocked && errors.Is(s.Err, session.ErrLocationPermissionDenied) {
				m.NotifyAsync(EventPermissionDenied, fmt.Sprintf("%s session blocked: location permission denied", s.Mode.Title()))
			}
		},
	}
}

// GoalMessage formats the goal-reached text for a snapshot.
func GoalMessage(s session.Snapshot) string {
	if s.Mode.UsesLocation() {
		return fmt.Sprintf("Goal reached! %s: %.2f / %g %s", s.Mode.Title(), s.Metric, s.Goal, s.Mode.Unit())
	}
	return fmt.Sprintf("Goal reached! %s: %d / %g %s", s.Mode.Title(), s.Steps, s.Goal, s.Mode.Unit())
}
