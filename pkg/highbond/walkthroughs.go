package highbond

import (
	"context"
	"net/url"
)

// WalkthroughsService covers control walkthroughs.
type WalkthroughsService service

// WalkthroughQueryParams filters GET walkthroughs.
type WalkthroughQueryParams struct {
	Fields          []string
	ControlFields   []string
	ObjectiveFields []string
	Sort            string
	Include         []string
	Filter          AssessmentFilter
	Page            Page
}

// WalkthroughGetParams shapes GET walkthroughs/{id}.
type WalkthroughGetParams struct {
	Fields  []string
	Include []string
}

// List returns walkthroughs across the organization.
func (s *WalkthroughsService) List(ctx context.Context, params WalkthroughQueryParams) (Document, error) {
	if err := sortOneOf(params.Sort, assessmentSorts...); err != nil {
		return nil, err
	}
	if err := subsetOf("include", params.Include, assessmentIncludes...); err != nil {
		return nil, err
	}
	if err := params.Page.validate(); err != nil {
		return nil, err
	}
	q := url.Values{}
	setFields(q, "walkthroughs", params.Fields)
	setFields(q, "controls", params.ControlFields)
	setFields(q, "objectives", params.ObjectiveFields)
	setString(q, "sort", params.Sort)
	setList(q, "include", params.Include)
	params.Filter.apply(q)
	params.Page.apply(q)
	return s.client.do(ctx, get("walkthroughs", q))
}

// Get returns one walkthrough.
func (s *WalkthroughsService) Get(ctx context.Context, walkthroughID string, params WalkthroughGetParams) (Document, error) {
	if err := requireID("walkthrough id", walkthroughID); err != nil {
		return nil, err
	}
	if err := subsetOf("include", params.Include, assessmentIncludes...); err != nil {
		return nil, err
	}
	q := url.Values{}
	setFields(q, "walkthroughs", params.Fields)
	setList(q, "include", params.Include)
	return s.client.do(ctx, get(joinPath("walkthroughs", walkthroughID), q))
}
