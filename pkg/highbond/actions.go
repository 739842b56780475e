package highbond

import (
	"context"
	"net/url"
)

// ActionsService covers issue remediation actions and their comments.
type ActionsService service

// ActionListParams filters GET issues/{id}/actions.
type ActionListParams struct {
	Fields []string
	Page   Page
}

// CommentListParams filters GET actions/{id}/comments.
type CommentListParams struct {
	Fields []string
	Page   Page
}

// List returns the actions raised against an issue.
func (s *ActionsService) List(ctx context.Context, issueID string, params ActionListParams) (Document, error) {
	if err := requireID("issue id", issueID); err != nil {
		return nil, err
	}
	if err := params.Page.validate(); err != nil {
		return nil, err
	}
	q := url.Values{}
	setFields(q, "actions", params.Fields)
	params.Page.apply(q)
	return s.client.do(ctx, get(joinPath("issues", issueID, "actions"), q))
}

// Get returns a single action.
func (s *ActionsService) Get(ctx context.Context, actionID string, fields []string) (Document, error) {
	if err := requireID("action id", actionID); err != nil {
		return nil, err
	}
	q := url.Values{}
	setFields(q, "actions", fields)
	return s.client.do(ctx, get(joinPath("actions", actionID), q))
}

// ListComments returns the comment thread of an action.
func (s *ActionsService) ListComments(ctx context.Context, actionID string, params CommentListParams) (Document, error) {
	if err := requireID("action id", actionID); err != nil {
		return nil, err
	}
	if err := params.Page.validate(); err != nil {
		return nil, err
	}
	q := url.Values{}
	setFields(q, "action_comments", params.Fields)
	params.Page.apply(q)
	return s.client.do(ctx, get(joinPath("actions", actionID, "comments"), q))
}
