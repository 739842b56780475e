package highbond

import (
	"context"
	"net/url"
)

// EntitiesService lists organization entities.
type EntitiesService service

// FrameworksService lists frameworks.
type FrameworksService service

// RisksService reads individual risks.
type RisksService service

// UsersService reads organization users.
type UsersService service

// EntityListParams filters GET entities.
type EntityListParams struct {
	Fields []string
	Page   Page
}

// List returns the organization's entities.
func (s *EntitiesService) List(ctx context.Context, params EntityListParams) (Document, error) {
	if err := params.Page.validate(); err != nil {
		return nil, err
	}
	q := url.Values{}
	setFields(q, "entities", params.Fields)
	params.Page.apply(q)
	return s.client.do(ctx, get("entities", q))
}

// FrameworkListParams filters GET frameworks.
type FrameworkListParams struct {
	Fields []string
	Page   Page
}

// List returns the organization's frameworks.
func (s *FrameworksService) List(ctx context.Context, params FrameworkListParams) (Document, error) {
	if err := params.Page.validate(); err != nil {
		return nil, err
	}
	q := url.Values{}
	setFields(q, "frameworks", params.Fields)
	params.Page.apply(q)
	return s.client.do(ctx, get("frameworks", q))
}

// RiskGetParams shapes GET risks/{id}.
type RiskGetParams struct {
	Fields           []string
	IncludeObjective bool
}

// Get returns a single risk.
func (s *RisksService) Get(ctx context.Context, riskID string, params RiskGetParams) (Document, error) {
	if err := requireID("risk id", riskID); err != nil {
		return nil, err
	}
	q := url.Values{}
	setFields(q, "risks", params.Fields)
	includeObjective(q, params.IncludeObjective)
	return s.client.do(ctx, get(joinPath("risks", riskID), q))
}

// List returns every user in the organization.
func (s *UsersService) List(ctx context.Context) (Document, error) {
	return s.client.do(ctx, get("users", nil))
}

// Get returns one user by uid.
func (s *UsersService) Get(ctx context.Context, uid string) (Document, error) {
	if err := requireID("user id", uid); err != nil {
		return nil, err
	}
	return s.client.do(ctx, get(joinPath("users", uid), nil))
}
