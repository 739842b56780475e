package highbond

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// ProjectsService covers projects, their entity links and sign-offs.
type ProjectsService service

// ProjectState is the lifecycle state of a project.
type ProjectState string

const (
	ProjectActive   ProjectState = "active"
	ProjectArchived ProjectState = "archived"
)

// ProjectListParams filters GET projects.
type ProjectListParams struct {
	Fields []string
	Name   string
	Status string
	Page   Page
}

// SignoffListParams filters GET signoffs.
type SignoffListParams struct {
	Fields               []string
	Include              []string
	ProjectID            string
	ProjectState         string
	TargetID             string
	TargetType           string
	PreparerID           string
	DetailReviewerID     string
	GeneralReviewerID    string
	SupplementalReviewer string
	SpecialtyReviewerID  string
	NextReviewerID       string
	Page                 Page
}

var signoffIncludes = []string{
	"preparer", "detail_reviewer", "general_reviewer", "supplemental_reviewer",
	"specialty_reviewer", "next_reviewer", "target", "project",
}

// ProjectCreate is the input of POST projects.
type ProjectCreate struct {
	Name          string
	StartDate     string
	TargetDate    string
	ProjectTypeID string
	Budget        int

	// Status and State default to "active".
	Status string
	State  ProjectState

	Description           string
	Background            string
	ManagementResponse    string
	MaxSampleSize         int
	NumberOfTestingRounds int
	Opinion               string
	OpinionDescription    string
	Purpose               string
	Scope                 string
	TagList               []string

	// Fields narrows the projects attributes echoed back.
	Fields []string
}

type projectCreateAttributes struct {
	Name                  string   `json:"name"`
	StartDate             string   `json:"start_date"`
	TargetDate            string   `json:"target_date"`
	Status                string   `json:"status"`
	State                 string   `json:"state"`
	Description           string   `json:"description,omitempty"`
	Background            string   `json:"background,omitempty"`
	Budget                int      `json:"budget"`
	ManagementResponse    string   `json:"management_response,omitempty"`
	MaxSampleSize         int      `json:"max_sample_size,omitempty"`
	NumberOfTestingRounds int      `json:"number_of_testing_rounds,omitempty"`
	Opinion               string   `json:"opinion,omitempty"`
	OpinionDescription    string   `json:"opinion_description,omitempty"`
	Purpose               string   `json:"purpose,omitempty"`
	Scope                 string   `json:"scope,omitempty"`
	TagList               []string `json:"tag_list"`
}

func (p ProjectCreate) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return invalid("name", "is required")
	}
	if err := validDate("start_date", p.StartDate, true); err != nil {
		return err
	}
	if err := validDate("target_date", p.TargetDate, true); err != nil {
		return err
	}
	if p.TargetDate < p.StartDate {
		return invalid("target_date", "%s is before start_date %s", p.TargetDate, p.StartDate)
	}
	if err := requireID("project type id", p.ProjectTypeID); err != nil {
		return err
	}
	if p.Budget < 0 {
		return invalid("budget", "must not be negative")
	}
	if p.State != "" {
		if err := oneOf("state", string(p.State), string(ProjectActive), string(ProjectArchived)); err != nil {
			return err
		}
	}
	if p.MaxSampleSize < 0 || p.NumberOfTestingRounds < 0 {
		return invalid("sample settings", "must not be negative")
	}
	return nil
}

// ProjectUpdate is the input of PATCH projects/{id}. Name and both dates are
// always sent; every other field only when set.
type ProjectUpdate struct {
	Name       string
	StartDate  string
	TargetDate string

	ProjectTypeID string
	EntityIDs     []string

	PlannedStartDate     string
	PlannedEndDate       string
	ActualStartDate      string
	ActualEndDate        string
	PlannedMilestoneDate string
	ActualMilestoneDate  string

	Status             string
	Description        string
	Background         string
	ManagementResponse string
	Opinion            string
	OpinionDescription string
	Purpose            string
	Scope              string

	Budget             *int
	MaxSampleSize      *int
	Certification      *bool
	ControlPerformance *bool
	RiskAssurance      *bool

	TagList          []string
	CustomAttributes []CustomAttribute

	Fields []string
}

// CustomAttribute is one project custom attribute value.
type CustomAttribute struct {
	ID    string   `json:"id"`
	Term  string   `json:"term,omitempty"`
	Value []string `json:"value"`
}

type projectUpdateAttributes struct {
	Name                 string            `json:"name"`
	StartDate            string            `json:"start_date"`
	TargetDate           string            `json:"target_date"`
	PlannedStartDate     string            `json:"planned_start_date,omitempty"`
	PlannedEndDate       string            `json:"planned_end_date,omitempty"`
	ActualStartDate      string            `json:"actual_start_date,omitempty"`
	ActualEndDate        string            `json:"actual_end_date,omitempty"`
	PlannedMilestoneDate string            `json:"planned_milestone_date,omitempty"`
	ActualMilestoneDate  string            `json:"actual_milestone_date,omitempty"`
	Status               string            `json:"status,omitempty"`
	Description          string            `json:"description,omitempty"`
	Background           string            `json:"background,omitempty"`
	Budget               *int              `json:"budget,omitempty"`
	Certification        *bool             `json:"certification,omitempty"`
	ControlPerformance   *bool             `json:"control_performance,omitempty"`
	RiskAssurance        *bool             `json:"risk_assurance,omitempty"`
	ManagementResponse   string            `json:"management_response,omitempty"`
	MaxSampleSize        *int              `json:"max_sample_size,omitempty"`
	Opinion              string            `json:"opinion,omitempty"`
	OpinionDescription   string            `json:"opinion_description,omitempty"`
	Purpose              string            `json:"purpose,omitempty"`
	Scope                string            `json:"scope,omitempty"`
	TagList              []string          `json:"tag_list,omitempty"`
	CustomAttributes     []CustomAttribute `json:"custom_attributes,omitempty"`
}

func (p ProjectUpdate) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return invalid("name", "is required")
	}
	dates := []struct {
		field    string
		value    string
		required bool
	}{
		{"start_date", p.StartDate, true},
		{"target_date", p.TargetDate, true},
		{"planned_start_date", p.PlannedStartDate, false},
		{"planned_end_date", p.PlannedEndDate, false},
		{"actual_start_date", p.ActualStartDate, false},
		{"actual_end_date", p.ActualEndDate, false},
		{"planned_milestone_date", p.PlannedMilestoneDate, false},
		{"actual_milestone_date", p.ActualMilestoneDate, false},
	}
	for _, d := range dates {
		if err := validDate(d.field, d.value, d.required); err != nil {
			return err
		}
	}
	if p.TargetDate < p.StartDate {
		return invalid("target_date", "%s is before start_date %s", p.TargetDate, p.StartDate)
	}
	for _, id := range p.EntityIDs {
		if strings.TrimSpace(id) == "" {
			return invalid("entity ids", "must not contain empty ids")
		}
	}
	for _, ca := range p.CustomAttributes {
		if strings.TrimSpace(ca.ID) == "" {
			return invalid("custom attributes", "every attribute needs an id")
		}
	}
	return nil
}

// List returns projects.
func (s *ProjectsService) List(ctx context.Context, params ProjectListParams) (Document, error) {
	if err := params.Page.validate(); err != nil {
		return nil, err
	}
	q := url.Values{}
	setFields(q, "projects", params.Fields)
	setString(q, "filter[name]", params.Name)
	setString(q, "filter[status]", params.Status)
	params.Page.apply(q)
	return s.client.do(ctx, get("projects", q))
}

// Get returns one project.
func (s *ProjectsService) Get(ctx context.Context, projectID string, fields []string) (Document, error) {
	if err := requireID("project id", projectID); err != nil {
		return nil, err
	}
	q := url.Values{}
	setFields(q, "projects", fields)
	return s.client.do(ctx, get(joinPath("projects", projectID), q))
}

// ListSignoffs returns sign-offs across projects.
func (s *ProjectsService) ListSignoffs(ctx context.Context, params SignoffListParams) (Document, error) {
	if err := subsetOf("include", params.Include, signoffIncludes...); err != nil {
		return nil, err
	}
	if err := params.Page.validate(); err != nil {
		return nil, err
	}
	q := url.Values{}
	setFields(q, "signoffs", params.Fields)
	setList(q, "include", params.Include)
	setString(q, "filter[project.id]", params.ProjectID)
	setString(q, "filter[project.state]", params.ProjectState)
	setString(q, "filter[target.id]", params.TargetID)
	setString(q, "filter[target.type]", params.TargetType)
	setString(q, "filter[preparer.id]", params.PreparerID)
	setString(q, "filter[detail_reviewer.id]", params.DetailReviewerID)
	setString(q, "filter[general_reviewer.id]", params.GeneralReviewerID)
	setString(q, "filter[supplemental_reviewer.id]", params.SupplementalReviewer)
	setString(q, "filter[specialty_reviewer.id]", params.SpecialtyReviewerID)
	setString(q, "filter[next_reviewer.id]", params.NextReviewerID)
	params.Page.apply(q)
	return s.client.do(ctx, get("signoffs", q))
}

// Create creates a project of the given project type.
func (s *ProjectsService) Create(ctx context.Context, in ProjectCreate) (Document, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = "active"
	}
	state := in.State
	if state == "" {
		state = ProjectActive
	}
	tags := in.TagList
	if tags == nil {
		tags = []string{}
	}

	body := payload{Data: resource{
		Type: "projects",
		Attributes: projectCreateAttributes{
			Name:                  in.Name,
			StartDate:             in.StartDate,
			TargetDate:            in.TargetDate,
			Status:                status,
			State:                 string(state),
			Description:           in.Description,
			Background:            in.Background,
			Budget:                in.Budget,
			ManagementResponse:    in.ManagementResponse,
			MaxSampleSize:         in.MaxSampleSize,
			NumberOfTestingRounds: in.NumberOfTestingRounds,
			Opinion:               in.Opinion,
			OpinionDescription:    in.OpinionDescription,
			Purpose:               in.Purpose,
			Scope:                 in.Scope,
			TagList:               tags,
		},
		Relationships: map[string]relationship{
			"project_type": toOne(in.ProjectTypeID, "project_types"),
		},
	}}

	q := url.Values{}
	setFields(q, "projects", in.Fields)
	return s.client.do(ctx, request{method: http.MethodPost, path: "projects", query: q, body: body})
}

// AddEntity links an entity to a project.
func (s *ProjectsService) AddEntity(ctx context.Context, projectID, entityID string) (Document, error) {
	if err := requireIDs("project id", projectID, "entity id", entityID); err != nil {
		return nil, err
	}
	body := payload{Data: identifier{ID: entityID, Type: "entities"}}
	return s.client.do(ctx, request{method: http.MethodPost, path: joinPath("projects", projectID, "entities"), body: body})
}

// Update patches a project.
func (s *ProjectsService) Update(ctx context.Context, projectID string, in ProjectUpdate) (Document, error) {
	if err := requireID("project id", projectID); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	res := resource{
		ID:   projectID,
		Type: "projects",
		Attributes: projectUpdateAttributes{
			Name:                 in.Name,
			StartDate:            in.StartDate,
			TargetDate:           in.TargetDate,
			PlannedStartDate:     in.PlannedStartDate,
			PlannedEndDate:       in.PlannedEndDate,
			ActualStartDate:      in.ActualStartDate,
			ActualEndDate:        in.ActualEndDate,
			PlannedMilestoneDate: in.PlannedMilestoneDate,
			ActualMilestoneDate:  in.ActualMilestoneDate,
			Status:               in.Status,
			Description:          in.Description,
			Background:           in.Background,
			Budget:               in.Budget,
			Certification:        in.Certification,
			ControlPerformance:   in.ControlPerformance,
			RiskAssurance:        in.RiskAssurance,
			ManagementResponse:   in.ManagementResponse,
			MaxSampleSize:        in.MaxSampleSize,
			Opinion:              in.Opinion,
			OpinionDescription:   in.OpinionDescription,
			Purpose:              in.Purpose,
			Scope:                in.Scope,
			TagList:              in.TagList,
			CustomAttributes:     in.CustomAttributes,
		},
	}

	rels := map[string]relationship{}
	if strings.TrimSpace(in.ProjectTypeID) != "" {
		rels["project_type"] = toOne(in.ProjectTypeID, "project_types")
	}
	if len(in.EntityIDs) > 0 {
		rels["entities"] = toMany(in.EntityIDs, "entities")
	}
	if len(rels) > 0 {
		res.Relationships = rels
	}

	q := url.Values{}
	setFields(q, "projects", in.Fields)
	return s.client.do(ctx, request{method: http.MethodPatch, path: joinPath("projects", projectID), query: q, body: payload{Data: res}})
}

// RemoveEntity unlinks an entity from a project.
func (s *ProjectsService) RemoveEntity(ctx context.Context, projectID, entityID string) (Document, error) {
	if err := requireIDs("project id", projectID, "entity id", entityID); err != nil {
		return nil, err
	}
	return s.client.do(ctx, request{method: http.MethodDelete, path: joinPath("projects", projectID, "entities", entityID)})
}

// Delete archives a project, or removes it for good when permanent is true.
func (s *ProjectsService) Delete(ctx context.Context, projectID string, permanent bool) (Document, error) {
	if err := requireID("project id", projectID); err != nil {
		return nil, err
	}
	q := url.Values{}
	if permanent {
		q.Set("permanent", "delete")
	}
	return s.client.do(ctx, request{method: http.MethodDelete, path: joinPath("projects", projectID), query: q})
}
