package highbond

import (
	"context"
	"fmt"
	"net/url"
)

// ControlsService covers controls and control tests.
type ControlsService service

// ControlListParams filters GET objectives/{id}/controls.
type ControlListParams struct {
	Fields           []string
	IncludeObjective bool
	Page             Page
}

// ControlGetParams shapes GET controls/{id}.
type ControlGetParams struct {
	Fields           []string
	IncludeObjective bool
}

// ControlQueryParams filters the organization-wide GET controls.
type ControlQueryParams struct {
	ControlFields     []string
	ObjectiveFields   []string
	WalkthroughFields []string
	ControlTestFields []string
	Sort              string
	WalkthroughDesign string
	ControlType       string
	Status            string
	ControlRef        string
	ID                string
	Frequency         string
	Owner             string
	Page              Page
}

// ControlTestQueryParams filters GET control_tests.
type ControlTestQueryParams struct {
	Fields          []string
	ControlFields   []string
	ObjectiveFields []string
	Sort            string
	Include         []string
	Filter          AssessmentFilter
	// AssignedUsers[i] filters on the user assigned to testing round i+1.
	AssignedUsers [4]string
	Page          Page
}

// ControlTestGetParams shapes GET control_tests/{id}.
type ControlTestGetParams struct {
	Fields  []string
	Include []string
}

func includeObjective(q url.Values, on bool) {
	if on {
		q.Set("include", "objective")
	}
}

// ListByObjective returns the controls under an objective.
func (s *ControlsService) ListByObjective(ctx context.Context, objectiveID string, params ControlListParams) (Document, error) {
	if err := requireID("objective id", objectiveID); err != nil {
		return nil, err
	}
	if err := params.Page.validate(); err != nil {
		return nil, err
	}
	q := url.Values{}
	setFields(q, "controls", params.Fields)
	includeObjective(q, params.IncludeObjective)
	params.Page.apply(q)
	return s.client.do(ctx, get(joinPath("objectives", objectiveID, "controls"), q))
}

// Get returns a single control.
func (s *ControlsService) Get(ctx context.Context, controlID string, params ControlGetParams) (Document, error) {
	if err := requireID("control id", controlID); err != nil {
		return nil, err
	}
	q := url.Values{}
	setFields(q, "controls", params.Fields)
	includeObjective(q, params.IncludeObjective)
	return s.client.do(ctx, get(joinPath("controls", controlID), q))
}

// List returns controls across the organization.
func (s *ControlsService) List(ctx context.Context, params ControlQueryParams) (Document, error) {
	if err := params.Page.validate(); err != nil {
		return nil, err
	}
	q := url.Values{}
	setFields(q, "controls", params.ControlFields)
	setFields(q, "objectives", params.ObjectiveFields)
	setFields(q, "walkthroughs", params.WalkthroughFields)
	setFields(q, "control_tests", params.ControlTestFields)
	setString(q, "sort", params.Sort)
	setString(q, "filter[walkthrough.control_design]", params.WalkthroughDesign)
	setString(q, "filter[control_type]", params.ControlType)
	setString(q, "filter[status]", params.Status)
	setString(q, "filter[control_id]", params.ControlRef)
	setString(q, "filter[id]", params.ID)
	setString(q, "filter[frequency]", params.Frequency)
	setString(q, "filter[owner]", params.Owner)
	params.Page.apply(q)
	return s.client.do(ctx, get("controls", q))
}

// ListTests returns control tests across the organization.
func (s *ControlsService) ListTests(ctx context.Context, params ControlTestQueryParams) (Document, error) {
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
	setFields(q, "control_tests", params.Fields)
	setFields(q, "controls", params.ControlFields)
	setFields(q, "objectives", params.ObjectiveFields)
	setString(q, "sort", params.Sort)
	setList(q, "include", params.Include)
	params.Filter.apply(q)
	for i, userID := range params.AssignedUsers {
		setString(q, fmt.Sprintf("filter[control.control_tests.%d.assigned_user.id]", i+1), userID)
	}
	params.Page.apply(q)
	return s.client.do(ctx, get("control_tests", q))
}

// GetTest returns a single control test.
func (s *ControlsService) GetTest(ctx context.Context, testID string, params ControlTestGetParams) (Document, error) {
	if err := requireID("control test id", testID); err != nil {
		return nil, err
	}
	if err := subsetOf("include", params.Include, assessmentIncludes...); err != nil {
		return nil, err
	}
	q := url.Values{}
	setFields(q, "control_tests", params.Fields)
	setList(q, "include", params.Include)
	return s.client.do(ctx, get(joinPath("control_tests", testID), q))
}
