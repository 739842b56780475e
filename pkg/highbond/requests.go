package highbond

import (
	"context"
	"net/url"
)

// RequestsService covers request items (PBC lists) and their statuses.
type RequestsService service

// RequestItemListParams filters GET request_items.
type RequestItemListParams struct {
	Fields        []string
	Sort          string
	ProjectName   string
	ProjectID     string
	ProjectStatus string
	TargetID      string
	TargetType    string
	Received      *bool
	Page          Page
}

var requestItemSorts = []string{
	"id", "created_at", "updated_at", "description", "owner", "owner_email", "received",
	"requestor", "due_date", "send_recurrent_notifications", "email_subject", "email_message", "position",
}

// ListItems returns request items across the organization. Sort defaults to id.
func (s *RequestsService) ListItems(ctx context.Context, params RequestItemListParams) (Document, error) {
	if err := sortOneOf(params.Sort, requestItemSorts...); err != nil {
		return nil, err
	}
	if err := params.Page.validate(); err != nil {
		return nil, err
	}
	sort := params.Sort
	if sort == "" {
		sort = "id"
	}
	q := url.Values{}
	setFields(q, "request_items", params.Fields)
	q.Set("sort", sort)
	setString(q, "filter[project.name]", params.ProjectName)
	setString(q, "filter[project.id]", params.ProjectID)
	setString(q, "filter[project.status]", params.ProjectStatus)
	setString(q, "filter[target_id]", params.TargetID)
	setString(q, "filter[target_type]", params.TargetType)
	setBool(q, "filter[received]", params.Received)
	params.Page.apply(q)
	return s.client.do(ctx, get("request_items", q))
}

// GetItem returns one request item.
func (s *RequestsService) GetItem(ctx context.Context, itemID string, fields []string) (Document, error) {
	if err := requireID("request item id", itemID); err != nil {
		return nil, err
	}
	q := url.Values{}
	setFields(q, "request_items", fields)
	return s.client.do(ctx, get(joinPath("request_items", itemID), q))
}

// ListItemStatuses returns the request item statuses configured on a project type.
func (s *RequestsService) ListItemStatuses(ctx context.Context, projectTypeID string, fields []string) (Document, error) {
	if err := requireID("project type id", projectTypeID); err != nil {
		return nil, err
	}
	q := url.Values{}
	setFields(q, "request_item_statuses", fields)
	return s.client.do(ctx, get(joinPath("project_types", projectTypeID, "request_item_statuses"), q))
}
