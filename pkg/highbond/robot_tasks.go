package highbond

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// ValueType is the data type of an analytic parameter value.
type ValueType string

const (
	ValueCharacter ValueType = "character"
	ValueDate      ValueType = "date"
	ValueDatetime  ValueType = "datetime"
	ValueFile      ValueType = "file"
	ValueLogical   ValueType = "logical"
	ValueNumber    ValueType = "number"
	ValueTable     ValueType = "table"
	ValueTime      ValueType = "time"
)

var valueTypes = []string{
	string(ValueCharacter), string(ValueDate), string(ValueDatetime), string(ValueFile),
	string(ValueLogical), string(ValueNumber), string(ValueTable), string(ValueTime),
}

// TaskInput describes a robot task for create and update.
type TaskInput struct {
	Name                      string
	Environment               Environment
	AppVersion                int
	EmailNotificationsEnabled bool
	LogEnabled                bool
	PublicKeyName             string
	ShareEncrypted            bool
	AnalyticNames             []string
}

type taskAttributes struct {
	AppVersion                int      `json:"app_version,omitempty"`
	EmailNotificationsEnabled bool     `json:"email_notifications_enabled"`
	Environment               string   `json:"environment"`
	LogEnabled                bool     `json:"log_enabled"`
	Name                      string   `json:"name"`
	PublicKeyName             string   `json:"public_key_name,omitempty"`
	ShareEncrypted            bool     `json:"share_encrypted"`
	AnalyticNames             []string `json:"analytic_names,omitempty"`
}

func (t TaskInput) validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return invalid("name", "is required")
	}
	if err := t.Environment.validate(); err != nil {
		return err
	}
	if t.AppVersion < 0 {
		return invalid("app version", "must not be negative")
	}
	return nil
}

func (t TaskInput) payload(id string) payload {
	return payload{Data: resource{
		ID:   id,
		Type: "robot_tasks",
		Attributes: taskAttributes{
			AppVersion:                t.AppVersion,
			EmailNotificationsEnabled: t.EmailNotificationsEnabled,
			Environment:               string(t.Environment),
			LogEnabled:                t.LogEnabled,
			Name:                      t.Name,
			PublicKeyName:             t.PublicKeyName,
			ShareEncrypted:            t.ShareEncrypted,
			AnalyticNames:             t.AnalyticNames,
		},
	}}
}

// TaskValue sets one analytic parameter of a task.
type TaskValue struct {
	AnalyticName string
	ParameterID  string
	Encrypted    bool
	Type         ValueType
	Value        string
}

type valueAttributes struct {
	AnalyticName string    `json:"analytic_name"`
	ParameterID  string    `json:"parameter_id"`
	Encrypted    bool      `json:"encrypted"`
	Data         valueData `json:"data"`
}

type valueData struct {
	Value string `json:"value"`
	Type  string `json:"type"`
}

func (v TaskValue) validate() error {
	if strings.TrimSpace(v.AnalyticName) == "" {
		return invalid("analytic name", "is required")
	}
	if strings.TrimSpace(v.ParameterID) == "" {
		return invalid("parameter id", "is required")
	}
	return oneOf("value type", string(v.Type), valueTypes...)
}

// CreateTask adds a task to a robot.
func (s *RobotsService) CreateTask(ctx context.Context, robotID string, in TaskInput) (Document, error) {
	if err := requireID("robot id", robotID); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.client.do(ctx, request{method: http.MethodPost, path: joinPath("robots", robotID, "robot_tasks"), body: in.payload("")})
}

// UpdateTask replaces the settings of a task.
func (s *RobotsService) UpdateTask(ctx context.Context, taskID string, in TaskInput) (Document, error) {
	if err := requireID("task id", taskID); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.client.do(ctx, request{method: http.MethodPatch, path: joinPath("robot_tasks", taskID), body: in.payload(strings.TrimSpace(taskID))})
}

// UpdateTaskValues sets analytic parameter values on a task.
func (s *RobotsService) UpdateTaskValues(ctx context.Context, taskID string, values []TaskValue) (Document, error) {
	if err := requireID("task id", taskID); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, invalid("values", "at least one value is required")
	}
	data := make([]resource, 0, len(values))
	for _, v := range values {
		if err := v.validate(); err != nil {
			return nil, err
		}
		data = append(data, resource{
			Type: "values",
			Attributes: valueAttributes{
				AnalyticName: v.AnalyticName,
				ParameterID:  v.ParameterID,
				Encrypted:    v.Encrypted,
				Data:         valueData{Value: v.Value, Type: string(v.Type)},
			},
		})
	}
	return s.client.do(ctx, request{method: http.MethodPatch, path: joinPath("robot_tasks", taskID, "values"), body: payload{Data: data}})
}

// RunTask starts a task immediately.
func (s *RobotsService) RunTask(ctx context.Context, taskID string, include []string) (Document, error) {
	if err := requireID("task id", taskID); err != nil {
		return nil, err
	}
	if err := subsetOf("include", include, runTaskIncludes...); err != nil {
		return nil, err
	}
	q := url.Values{}
	setList(q, "include", include)
	return s.client.do(ctx, request{method: http.MethodPost, path: joinPath("robot_tasks", taskID, "run_now"), query: q})
}

// DeleteTask removes a task.
func (s *RobotsService) DeleteTask(ctx context.Context, taskID string) (Document, error) {
	if err := requireID("task id", taskID); err != nil {
		return nil, err
	}
	return s.client.do(ctx, request{method: http.MethodDelete, path: joinPath("robot_tasks", taskID)})
}
