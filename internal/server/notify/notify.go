// Package notify sends the scheduled daily reminders.
package notify

import (
	"context"
	"time"

	"github.com/eventkeeper/eventkeeper/internal/logging"
)

// Messages holds the reminder texts in their fixed order: morning, midday,
// evening.
var Messages = [3]string{
	"Good Morning! Check out today's events.",
	"Lunch Time! New events are waiting for you.",
	"Evening Reminder! Don't miss tonight's events.",
}

// MessageIndexForHour picks the reminder for a UTC hour: 8 selects the
// morning message, 12 the midday one, everything else the evening one.
func MessageIndexForHour(hour int) int {
	switch hour {
	case 8:
		return 0
	case 12:
		return 1
	default:
		return 2
	}
}

// Sender delivers a reminder message to whatever channel is configured.
type Sender interface {
	Send(ctx context.Context, message string) error
}

// LogSender writes reminders to the structured log. It stands in for a push
// delivery channel in deployments without one.
type LogSender struct {
	log logging.Logger
}

func NewLogSender(log logging.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, message string) error {
	s.log.Info(ctx, "sending reminder", "message", message)
	return nil
}

// Worker fires a reminder at fixed UTC hours every day.
type Worker struct {
	sender Sender
	log    logging.Logger
	hours  []int
}

func NewWorker(sender Sender, log logging.Logger) *Worker {
	return &Worker{sender: sender, log: log, hours: []int{8, 12, 17}}
}

// Run blocks until ctx is cancelled, sending a reminder at the top of each
// scheduled hour.
func (w *Worker) Run(ctx context.Context) {
	for {
		next := w.nextFiring(time.Now().UTC())

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		msg := Messages[MessageIndexForHour(next.Hour())]
		if err := w.sender.Send(ctx, msg); err != nil {
			w.log.Warn(ctx, "reminder delivery failed", "error", err)
		}
	}
}

// nextFiring returns the earliest scheduled hour strictly after now.
func (w *Worker) nextFiring(now time.Time) time.Time {
	for _, h := range w.hours {
		candidate := time.Date(now.Year(), now.Month(), now.Day(), h, 0, 0, 0, time.UTC)
		if candidate.After(now) {
			return candidate
		}
	}
	// all of today's slots have passed, take tomorrow's first slot
	tomorrow := now.AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), w.hours[0], 0, 0, 0, time.UTC)
}
