package highbond

import (
	"context"
	"net/http"
	"strings"

	"github.com/samvad-hq/highbond-go/pkg/httpclient"
)

const (
	mediaType        = "application/vnd.api+json"
	defaultUserAgent = "highbond-go"
)

// Client talks to one HighBond organization. It is safe for concurrent use.
type Client struct {
	cfg       Config
	root      string
	http      httpclient.Client
	log       Logger
	userAgent string

	common service

	Actions       *ActionsService
	Controls      *ControlsService
	Entities      *EntitiesService
	Frameworks    *FrameworksService
	Issues        *IssuesService
	Objectives    *ObjectivesService
	PlanningFiles *PlanningFilesService
	Projects      *ProjectsService
	Requests      *RequestsService
	Results       *ResultsService
	Risks         *RisksService
	Robots        *RobotsService
	Strategy      *StrategyService
	ToDos         *ToDosService
	Users         *UsersService
	Walkthroughs  *WalkthroughsService
}

type service struct {
	client *Client
}

// New validates cfg and returns a Client. No request is sent.
func New(cfg Config, opts ...Option) (*Client, error) {
	c := &Client{
		cfg:       cfg.withDefaults(),
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	customBase := c.root != ""
	if err := c.cfg.validate(customBase); err != nil {
		return nil, err
	}
	if !customBase {
		c.root = c.cfg.Protocol + "://" + string(c.cfg.Server)
	}
	c.root = strings.TrimRight(c.root, "/")

	if c.http == nil {
		c.http = httpclient.NewRestyClient(c.cfg.Timeout)
	}
	c.log = ensureLogger(c.log)

	c.common.client = c
	c.Actions = (*ActionsService)(&c.common)
	c.Controls = (*ControlsService)(&c.common)
	c.Entities = (*EntitiesService)(&c.common)
	c.Frameworks = (*FrameworksService)(&c.common)
	c.Issues = (*IssuesService)(&c.common)
	c.Objectives = (*ObjectivesService)(&c.common)
	c.PlanningFiles = (*PlanningFilesService)(&c.common)
	c.Projects = (*ProjectsService)(&c.common)
	c.Requests = (*RequestsService)(&c.common)
	c.Results = (*ResultsService)(&c.common)
	c.Risks = (*RisksService)(&c.common)
	c.Robots = (*RobotsService)(&c.common)
	c.Strategy = (*StrategyService)(&c.common)
	c.ToDos = (*ToDosService)(&c.common)
	c.Users = (*UsersService)(&c.common)
	c.Walkthroughs = (*WalkthroughsService)(&c.common)

	return c, nil
}

// Config returns the configuration the client was built with.
func (c *Client) Config() Config { return c.cfg }

// BaseURL is the organization root every path is resolved against.
func (c *Client) BaseURL() string {
	return c.root + "/v1/orgs/" + pathEscape(c.cfg.OrgID)
}

// GetOrganization fetches the organization the client is bound to.
func (c *Client) GetOrganization(ctx context.Context) (Document, error) {
	return c.do(ctx, request{method: http.MethodGet, path: ""})
}

// Close flushes the client's logger when it buffers output.
func (c *Client) Close() error {
	if cl, ok := c.log.(interface{ Close() error }); ok {
		return cl.Close()
	}
	return nil
}
