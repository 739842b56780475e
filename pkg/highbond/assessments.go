package highbond

import "net/url"

// AssessmentFilter is the filter set shared by control tests and walkthroughs.
type AssessmentFilter struct {
	ProjectID     string
	ProjectName   string
	ProjectState  string
	ProjectStatus string

	ControlIDs []string
	// ControlDesign filters on whether the control design was deemed effective.
	ControlDesign *bool
	ControlTitle  string
	// ControlRefs matches the user-facing control_id, not the record id.
	ControlRefs      []string
	ControlQuery     string
	ControlStatus    string
	ControlOwner     string
	ControlFrequency string
	ControlType      string

	ObjectiveTitle     string
	ObjectiveReference string
}

func (f AssessmentFilter) apply(q url.Values) {
	setString(q, "filter[project.id]", f.ProjectID)
	setString(q, "filter[project.name]", f.ProjectName)
	setString(q, "filter[project.state]", f.ProjectState)
	setString(q, "filter[project.status]", f.ProjectStatus)
	setList(q, "filter[control.id]", f.ControlIDs)
	setBool(q, "filter[control_design]", f.ControlDesign)
	setString(q, "filter[control.title]", f.ControlTitle)
	setList(q, "filter[control.control_id]", f.ControlRefs)
	setString(q, "filter[control.query]", f.ControlQuery)
	setString(q, "filter[control.status]", f.ControlStatus)
	setString(q, "filter[control.owner]", f.ControlOwner)
	setString(q, "filter[control.frequency]", f.ControlFrequency)
	setString(q, "filter[control.control_type]", f.ControlType)
	setString(q, "filter[objective.title]", f.ObjectiveTitle)
	setString(q, "filter[objective.reference]", f.ObjectiveReference)
}

var (
	assessmentSorts    = []string{"id", "walkthrough_results", "control_design", "created_at", "updated_at"}
	assessmentIncludes = []string{"control", "control.objective"}
)
