package highbond

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/samvad-hq/highbond-go/pkg/httpclient"
)

// RobotsService covers robots, their tasks, schedules, jobs, files and apps.
type RobotsService service

// Environment selects the robot environment a call applies to.
type Environment string

const (
	Production  Environment = "production"
	Development Environment = "development"
)

func (e Environment) validate() error {
	return oneOf("environment", string(e), string(Production), string(Development))
}

// Category is the kind of robot.
type Category string

const (
	CategoryACL      Category = "acl"
	CategoryHighBond Category = "highbond"
	CategoryWorkflow Category = "workflow"
)

func (c Category) validate() error {
	return oneOf("category", string(c), string(CategoryACL), string(CategoryHighBond), string(CategoryWorkflow))
}

var (
	jobIncludes     = []string{"robot", "task", "triggered_by"}
	runTaskIncludes = []string{"job_values", "result_tables"}
)

// JobListParams filters GET robots/{id}/jobs.
type JobListParams struct {
	Env     Environment
	Include []string
	Page    Page
}

// RobotCreate is sent as query parameters of POST robots. Category defaults
// to acl.
type RobotCreate struct {
	Name        string
	Description string
	Category    Category
}

// RobotUpdate is sent as query parameters of PATCH robots/{id}.
type RobotUpdate struct {
	Name        string
	Description string
	Category    Category
}

// AppUpload is a robot app version pushed as multipart form data.
type AppUpload struct {
	CodePage  int
	Comment   string
	IsUnicode bool
	FileName  string
	File      io.Reader
}

func (a AppUpload) validate() error {
	if a.CodePage < 0 {
		return invalid("code page", "must not be negative")
	}
	if strings.TrimSpace(a.FileName) == "" {
		return invalid("file name", "is required")
	}
	if a.File == nil {
		return invalid("file", "is required")
	}
	return nil
}

// ListAgents returns the organization's robot agents.
func (s *RobotsService) ListAgents(ctx context.Context) (Document, error) {
	return s.client.do(ctx, get("agents", nil))
}

// List returns every robot.
func (s *RobotsService) List(ctx context.Context) (Document, error) {
	return s.client.do(ctx, get("robots", nil))
}

// ListTasks returns the tasks of a robot in env.
func (s *RobotsService) ListTasks(ctx context.Context, robotID string, env Environment) (Document, error) {
	if err := requireID("robot id", robotID); err != nil {
		return nil, err
	}
	if err := env.validate(); err != nil {
		return nil, err
	}
	q := url.Values{"env": {string(env)}}
	return s.client.do(ctx, get(joinPath("robots", robotID, "robot_tasks"), q))
}

// GetTaskValues returns the analytic parameter values of a task.
func (s *RobotsService) GetTaskValues(ctx context.Context, taskID string) (Document, error) {
	if err := requireID("task id", taskID); err != nil {
		return nil, err
	}
	return s.client.do(ctx, get(joinPath("robot_tasks", taskID, "values"), nil))
}

// GetSchedule returns the schedule of a task.
func (s *RobotsService) GetSchedule(ctx context.Context, taskID string) (Document, error) {
	if err := requireID("task id", taskID); err != nil {
		return nil, err
	}
	return s.client.do(ctx, get(joinPath("robot_tasks", taskID, "schedule"), nil))
}

// GetVersion returns one robot version with its analytics.
func (s *RobotsService) GetVersion(ctx context.Context, robotID, versionID string) (Document, error) {
	if err := requireIDs("robot id", robotID, "version id", versionID); err != nil {
		return nil, err
	}
	q := url.Values{"include": {"analytics"}}
	return s.client.do(ctx, get(joinPath("robots", robotID, "versions", versionID), q))
}

// ListFiles returns the files attached to a robot in env.
func (s *RobotsService) ListFiles(ctx context.Context, robotID string, env Environment) (Document, error) {
	if err := requireID("robot id", robotID); err != nil {
		return nil, err
	}
	if err := env.validate(); err != nil {
		return nil, err
	}
	q := url.Values{"env": {string(env)}}
	return s.client.do(ctx, get(joinPath("robots", robotID, "robot_files"), q))
}

// GetApp returns one robot app version.
func (s *RobotsService) GetApp(ctx context.Context, robotID, appID string) (Document, error) {
	if err := requireIDs("robot id", robotID, "app id", appID); err != nil {
		return nil, err
	}
	return s.client.do(ctx, get(joinPath("robots", robotID, "robot_apps", appID), nil))
}

// ListApps returns the app versions of a robot.
func (s *RobotsService) ListApps(ctx context.Context, robotID string) (Document, error) {
	if err := requireID("robot id", robotID); err != nil {
		return nil, err
	}
	return s.client.do(ctx, get(joinPath("robots", robotID, "robot_apps"), nil))
}

// ListJobs returns the runs of a robot. Unlike other lists, the page number
// is sent as a plain integer.
func (s *RobotsService) ListJobs(ctx context.Context, robotID string, params JobListParams) (Document, error) {
	if err := requireID("robot id", robotID); err != nil {
		return nil, err
	}
	if err := params.Env.validate(); err != nil {
		return nil, err
	}
	if err := subsetOf("include", params.Include, jobIncludes...); err != nil {
		return nil, err
	}
	if err := params.Page.validate(); err != nil {
		return nil, err
	}
	q := url.Values{"env": {string(params.Env)}}
	setList(q, "include", params.Include)
	params.Page.applyPlain(q)
	return s.client.do(ctx, get(joinPath("robots", robotID, "jobs"), q))
}

// DownloadFile streams a robot file into w and returns the number of bytes
// written.
func (s *RobotsService) DownloadFile(ctx context.Context, fileID string, w io.Writer) (int64, error) {
	if err := requireID("file id", fileID); err != nil {
		return 0, err
	}
	if w == nil {
		return 0, invalid("writer", "is required")
	}
	body, err := s.client.raw(ctx, get(joinPath("robot_files", fileID, "download"), nil))
	if err != nil {
		return 0, err
	}
	n, err := w.Write(body)
	if err != nil {
		return int64(n), fmt.Errorf("highbond: write robot file %s: %w", fileID, err)
	}
	return int64(n), nil
}

// DownloadFileTo saves a robot file at path. Nothing is written when the
// request fails.
func (s *RobotsService) DownloadFileTo(ctx context.Context, fileID, path string) (int64, error) {
	if err := requireID("file id", fileID); err != nil {
		return 0, err
	}
	if strings.TrimSpace(path) == "" {
		return 0, invalid("path", "is required")
	}
	body, err := s.client.raw(ctx, get(joinPath("robot_files", fileID, "download"), nil))
	if err != nil {
		return 0, err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("highbond: create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return 0, fmt.Errorf("highbond: write %s: %w", path, err)
	}
	return int64(len(body)), nil
}

// Create creates a robot.
func (s *RobotsService) Create(ctx context.Context, in RobotCreate) (Document, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, invalid("name", "is required")
	}
	category := in.Category
	if category == "" {
		category = CategoryACL
	}
	if err := category.validate(); err != nil {
		return nil, err
	}
	q := url.Values{}
	setString(q, "name", in.Name)
	setString(q, "description", in.Description)
	q.Set("category", string(category))
	return s.client.do(ctx, request{method: http.MethodPost, path: "robots", query: q})
}

// Update renames or recategorises a robot.
func (s *RobotsService) Update(ctx context.Context, robotID string, in RobotUpdate) (Document, error) {
	if err := requireID("robot id", robotID); err != nil {
		return nil, err
	}
	if in.Category != "" {
		if err := in.Category.validate(); err != nil {
			return nil, err
		}
	}
	q := url.Values{"id": {strings.TrimSpace(robotID)}}
	setString(q, "name", in.Name)
	setString(q, "description", in.Description)
	setString(q, "category", string(in.Category))
	return s.client.do(ctx, request{method: http.MethodPatch, path: joinPath("robots", robotID), query: q})
}

// CreateApp uploads a new app version for a robot.
func (s *RobotsService) CreateApp(ctx context.Context, robotID string, in AppUpload) (Document, error) {
	if err := requireID("robot id", robotID); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	form := map[string]string{
		"code_page":  fmt.Sprint(in.CodePage),
		"comment":    in.Comment,
		"is_unicode": fmt.Sprint(in.IsUnicode),
	}
	files := []httpclient.File{{Param: "file", FileName: in.FileName, Reader: in.File}}
	return s.client.do(ctx, request{method: http.MethodPost, path: joinPath("robots", robotID, "robot_apps"), form: form, files: files})
}

// UploadFile attaches a file to a robot in env.
func (s *RobotsService) UploadFile(ctx context.Context, robotID string, env Environment, fileName string, r io.Reader) (Document, error) {
	if err := requireID("robot id", robotID); err != nil {
		return nil, err
	}
	if err := env.validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(fileName) == "" {
		return nil, invalid("file name", "is required")
	}
	if r == nil {
		return nil, invalid("file", "is required")
	}
	q := url.Values{"env": {string(env)}}
	files := []httpclient.File{{Param: "file", FileName: fileName, Reader: r}}
	return s.client.do(ctx, request{method: http.MethodPost, path: joinPath("robots", robotID, "robot_files"), query: q, files: files})
}

// DeleteJob removes a job record.
func (s *RobotsService) DeleteJob(ctx context.Context, jobID string) (Document, error) {
	if err := requireID("job id", jobID); err != nil {
		return nil, err
	}
	return s.client.do(ctx, request{method: http.MethodDelete, path: joinPath("robots", "jobs", jobID)})
}

// DeleteFile removes a robot file.
func (s *RobotsService) DeleteFile(ctx context.Context, fileID string) (Document, error) {
	if err := requireID("file id", fileID); err != nil {
		return nil, err
	}
	return s.client.do(ctx, request{method: http.MethodDelete, path: joinPath("robot_files", fileID)})
}

// Delete removes a robot.
func (s *RobotsService) Delete(ctx context.Context, robotID string) (Document, error) {
	if err := requireID("robot id", robotID); err != nil {
		return nil, err
	}
	return s.client.do(ctx, request{method: http.MethodDelete, path: joinPath("robots", robotID)})
}
