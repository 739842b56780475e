package highbond

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRequestMetrics(t *testing.T) {
	c, tr := newStubClient(t)

	ok := requestsTotal.WithLabelValues(http.MethodGet, "robots", "200")
	before := testutil.ToFloat64(ok)
	if _, err := c.Robots.ListApps(context.Background(), "r1"); err != nil {
		t.Fatalf("ListApps: %v", err)
	}
	if got := testutil.ToFloat64(ok) - before; got != 1 {
		t.Fatalf("expected one counted request, got %v", got)
	}

	failed := requestsTotal.WithLabelValues(http.MethodDelete, "robot_tasks", "error")
	before = testutil.ToFloat64(failed)
	tr.err = errors.New("reset by peer")
	_, _ = c.Robots.DeleteTask(context.Background(), "t1")
	if got := testutil.ToFloat64(failed) - before; got != 1 {
		t.Fatalf("expected one transport failure, got %v", got)
	}
}

func TestResourceLabel(t *testing.T) {
	cases := map[string]string{
		"":                       "organization",
		"users":                  "users",
		"robots/1/robot_tasks":   "robots",
		"robot_tasks/9/schedule": "robot_tasks",
	}
	for path, want := range cases {
		if got := resourceLabel(path); got != want {
			t.Fatalf("resourceLabel(%q) = %q, want %q", path, got, want)
		}
	}
}
