package highbond

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
)

// Frequency is how often a scheduled task runs.
type Frequency string

const (
	Once    Frequency = "once"
	Hourly  Frequency = "hourly"
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

// Schedule is the run plan of a robot task.
//
// Weekly schedules list weekdays in Days (0 is Sunday). Monthly schedules
// take exactly one day of month in Days (1 to 28) or set LastDay instead.
type Schedule struct {
	Frequency Frequency
	Interval  int
	StartsAt  time.Time
	Timezone  string
	Days      []int
	LastDay   bool
}

type scheduleAttributes struct {
	Frequency        string         `json:"frequency"`
	Interval         int            `json:"interval"`
	StartsAt         string         `json:"starts_at"`
	StartsAtTimezone string         `json:"starts_at_timezone"`
	Settings         map[string]any `json:"settings"`
}

func (s Schedule) validate() error {
	var errs []error
	if s.StartsAt.IsZero() {
		errs = append(errs, invalid("starts_at", "is required"))
	}
	if strings.TrimSpace(s.Timezone) == "" {
		errs = append(errs, invalid("timezone", "is required"))
	}

	switch s.Frequency {
	case Once:
		if s.Interval != 1 {
			errs = append(errs, invalid("interval", "must be 1 for a one-off schedule, got %d", s.Interval))
		}
	case Hourly, Daily:
		if s.Interval <= 0 {
			errs = append(errs, invalid("interval", "must be positive, got %d", s.Interval))
		}
	case Weekly:
		if s.Interval <= 0 {
			errs = append(errs, invalid("interval", "must be positive, got %d", s.Interval))
		}
		if len(s.Days) == 0 {
			errs = append(errs, invalid("days", "at least one weekday is required"))
		}
		for _, d := range s.Days {
			if d < 0 || d > 6 {
				errs = append(errs, invalid("days", "weekday %d is outside 0..6", d))
			}
		}
		if s.LastDay {
			errs = append(errs, invalid("days", "last_day only applies to monthly schedules"))
		}
	case Monthly:
		if s.Interval <= 0 {
			errs = append(errs, invalid("interval", "must be positive, got %d", s.Interval))
		}
		switch {
		case s.LastDay && len(s.Days) > 0:
			errs = append(errs, invalid("days", "set either a day of month or last_day, not both"))
		case !s.LastDay && len(s.Days) != 1:
			errs = append(errs, invalid("days", "exactly one day of month is required"))
		case !s.LastDay && (s.Days[0] < 1 || s.Days[0] > 28):
			errs = append(errs, invalid("days", "day of month %d is outside 1..28", s.Days[0]))
		}
	default:
		errs = append(errs, oneOf("frequency", string(s.Frequency),
			string(Once), string(Hourly), string(Daily), string(Weekly), string(Monthly)))
	}
	return errors.Join(errs...)
}

func (s Schedule) settings() map[string]any {
	switch s.Frequency {
	case Weekly, Monthly:
		if s.LastDay {
			return map[string]any{"days": []string{"last_day"}}
		}
		return map[string]any{"days": s.Days}
	default:
		return map[string]any{}
	}
}

func (s Schedule) payload() payload {
	return payload{Data: resource{
		Type: "schedule",
		Attributes: scheduleAttributes{
			Frequency:        string(s.Frequency),
			Interval:         s.Interval,
			StartsAt:         s.StartsAt.UTC().Format(time.RFC3339),
			StartsAtTimezone: s.Timezone,
			Settings:         s.settings(),
		},
	}}
}

// CreateSchedule schedules a task.
func (s *RobotsService) CreateSchedule(ctx context.Context, taskID string, sched Schedule) (Document, error) {
	return s.writeSchedule(ctx, http.MethodPost, taskID, sched)
}

// UpdateSchedule replaces the schedule of a task.
func (s *RobotsService) UpdateSchedule(ctx context.Context, taskID string, sched Schedule) (Document, error) {
	return s.writeSchedule(ctx, http.MethodPatch, taskID, sched)
}

func (s *RobotsService) writeSchedule(ctx context.Context, method, taskID string, sched Schedule) (Document, error) {
	if err := requireID("task id", taskID); err != nil {
		return nil, err
	}
	if err := sched.validate(); err != nil {
		return nil, err
	}
	return s.client.do(ctx, request{method: method, path: joinPath("robot_tasks", taskID, "schedule"), body: sched.payload()})
}

// DeleteSchedule removes the schedule of a task.
func (s *RobotsService) DeleteSchedule(ctx context.Context, taskID string) (Document, error) {
	if err := requireID("task id", taskID); err != nil {
		return nil, err
	}
	return s.client.do(ctx, request{method: http.MethodDelete, path: joinPath("robot_tasks", taskID, "schedule")})
}
