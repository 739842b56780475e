package highbond

import (
	"context"
	"net/url"
)

// IssuesService lists issues.
type IssuesService service

// IssueListParams filters GET issues. ProjectState defaults to "active".
type IssueListParams struct {
	Fields       []string
	ProjectID    string
	ProjectState string
	TargetType   string
	TargetID     string
	Closed       *bool
	Sort         string
	Page         Page
}

// List returns issues across the organization.
func (s *IssuesService) List(ctx context.Context, params IssueListParams) (Document, error) {
	if err := params.Page.validate(); err != nil {
		return nil, err
	}
	state := params.ProjectState
	if state == "" {
		state = "active"
	}
	q := url.Values{}
	setString(q, "filter[project.id]", params.ProjectID)
	setString(q, "filter[project.state]", state)
	setString(q, "filter[target.type]", params.TargetType)
	setString(q, "filter[target.id]", params.TargetID)
	setBool(q, "filter[closed]", params.Closed)
	setString(q, "sort", params.Sort)
	setFields(q, "issues", params.Fields)
	params.Page.apply(q)
	return s.client.do(ctx, get("issues", q))
}
