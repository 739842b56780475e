package highbond

import (
	"context"
	"net/url"
)

// ObjectivesService covers objectives (sections) and their risks.
type ObjectivesService service

// PlanningFilesService lists planning files.
type PlanningFilesService service

// ParentType is the container an objective or planning file belongs to.
type ParentType string

const (
	ParentProjects   ParentType = "projects"
	ParentFrameworks ParentType = "frameworks"
)

func (p ParentType) validate() error {
	return oneOf("parent type", string(p), string(ParentProjects), string(ParentFrameworks))
}

// ObjectiveListParams filters GET {parent}/{id}/objectives.
type ObjectiveListParams struct {
	Fields []string
	Page   Page
}

// ObjectiveRiskListParams filters GET objectives/{id}/risks.
type ObjectiveRiskListParams struct {
	Fields           []string
	IncludeObjective bool
	Page             Page
}

// PlanningFileListParams filters GET {parent}/{id}/planning_files.
type PlanningFileListParams struct {
	Fields []string
	Page   Page
}

// Get returns a single objective.
func (s *ObjectivesService) Get(ctx context.Context, objectiveID string, fields []string) (Document, error) {
	if err := requireID("objective id", objectiveID); err != nil {
		return nil, err
	}
	q := url.Values{}
	setFields(q, "objectives", fields)
	return s.client.do(ctx, get(joinPath("objectives", objectiveID), q))
}

// List returns the objectives of a project or framework.
func (s *ObjectivesService) List(ctx context.Context, parent ParentType, parentID string, params ObjectiveListParams) (Document, error) {
	if err := parent.validate(); err != nil {
		return nil, err
	}
	if err := requireID("parent id", parentID); err != nil {
		return nil, err
	}
	if err := params.Page.validate(); err != nil {
		return nil, err
	}
	q := url.Values{}
	setFields(q, "objectives", params.Fields)
	params.Page.apply(q)
	return s.client.do(ctx, get(joinPath(string(parent), parentID, "objectives"), q))
}

// ListRisks returns the risks attached to an objective.
func (s *ObjectivesService) ListRisks(ctx context.Context, objectiveID string, params ObjectiveRiskListParams) (Document, error) {
	if err := requireID("objective id", objectiveID); err != nil {
		return nil, err
	}
	if err := params.Page.validate(); err != nil {
		return nil, err
	}
	q := url.Values{}
	setFields(q, "risks", params.Fields)
	includeObjective(q, params.IncludeObjective)
	params.Page.apply(q)
	return s.client.do(ctx, get(joinPath("objectives", objectiveID, "risks"), q))
}

// List returns the planning files of a project or framework.
func (s *PlanningFilesService) List(ctx context.Context, parent ParentType, parentID string, params PlanningFileListParams) (Document, error) {
	if err := parent.validate(); err != nil {
		return nil, err
	}
	if err := requireID("parent id", parentID); err != nil {
		return nil, err
	}
	if err := params.Page.validate(); err != nil {
		return nil, err
	}
	q := url.Values{}
	setFields(q, "planning_files", params.Fields)
	params.Page.apply(q)
	return s.client.do(ctx, get(joinPath(string(parent), parentID, "planning_files"), q))
}
