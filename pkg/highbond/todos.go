package highbond

import (
	"context"
	"net/url"
)

// ToDosService covers project to-dos.
type ToDosService service

var (
	todoSorts    = []string{"id", "status", "created_at"}
	todoIncludes = []string{"assigned_to", "target", "creator"}
)

// ToDoListParams filters GET projects_todos.
type ToDoListParams struct {
	Fields       []string
	ProjectID    string
	ProjectState string
	TargetID     string
	TargetType   string
	Sort         string
	Include      []string
	Page         Page
}

// ToDoGetParams shapes GET projects_todos/{id}.
type ToDoGetParams struct {
	Fields  []string
	Include []string
}

// List returns project to-dos.
func (s *ToDosService) List(ctx context.Context, params ToDoListParams) (Document, error) {
	if err := sortOneOf(params.Sort, todoSorts...); err != nil {
		return nil, err
	}
	if err := subsetOf("include", params.Include, todoIncludes...); err != nil {
		return nil, err
	}
	if err := params.Page.validate(); err != nil {
		return nil, err
	}
	q := url.Values{}
	setFields(q, "projects_todos", params.Fields)
	setString(q, "filter[project.id]", params.ProjectID)
	setString(q, "filter[project.state]", params.ProjectState)
	setString(q, "filter[target.id]", params.TargetID)
	setString(q, "filter[target.type]", params.TargetType)
	setString(q, "sort", params.Sort)
	setList(q, "include", params.Include)
	params.Page.apply(q)
	return s.client.do(ctx, get("projects_todos", q))
}

// Get returns one to-do.
func (s *ToDosService) Get(ctx context.Context, todoID string, params ToDoGetParams) (Document, error) {
	if err := requireID("to-do id", todoID); err != nil {
		return nil, err
	}
	if err := subsetOf("include", params.Include, todoIncludes...); err != nil {
		return nil, err
	}
	q := url.Values{}
	setFields(q, "projects_todos", params.Fields)
	setList(q, "include", params.Include)
	return s.client.do(ctx, get(joinPath("projects_todos", todoID), q))
}
