// Package highbond is a client for the HighBond REST API.
//
// Every exported method maps to exactly one HTTP request against
// {protocol}://{server}/v1/orgs/{org_id}/... and returns the decoded JSON:API
// document. Parameters are validated before anything is sent.
package highbond

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Server is a regional HighBond API host.
type Server string

const (
	ServerUS   Server = "apis-us.highbond.com"
	ServerCA   Server = "apis-ca.highbond.com"
	ServerEU   Server = "apis-eu.highbond.com"
	ServerAP   Server = "apis-ap.highbond.com"
	ServerAU   Server = "apis-au.highbond.com"
	ServerAF   Server = "apis-af.highbond.com"
	ServerSA   Server = "apis-sa.highbond.com"
	ServerGov  Server = "apis.highbond-gov.com"
	ServerGov2 Server = "apis.highbond-gov2.com"
)

var knownServers = map[Server]struct{}{
	ServerUS: {}, ServerCA: {}, ServerEU: {}, ServerAP: {}, ServerAU: {},
	ServerAF: {}, ServerSA: {}, ServerGov: {}, ServerGov2: {},
}

// Servers returns every supported regional host.
func Servers() []Server {
	return []Server{ServerUS, ServerCA, ServerEU, ServerAP, ServerAU, ServerAF, ServerSA, ServerGov, ServerGov2}
}

const (
	DefaultServer   = ServerUS
	DefaultProtocol = "https"
	DefaultTimeout  = 30 * time.Second
)

// Config is the connection configuration for a Client.
type Config struct {
	Token    string
	OrgID    string
	Server   Server
	Protocol string
	Timeout  time.Duration
}

func (c Config) withDefaults() Config {
	c.Token = strings.TrimSpace(c.Token)
	c.OrgID = strings.TrimSpace(c.OrgID)
	c.Server = Server(strings.ToLower(strings.TrimSpace(string(c.Server))))
	c.Protocol = strings.ToLower(strings.TrimSpace(c.Protocol))
	if c.Server == "" {
		c.Server = DefaultServer
	}
	if c.Protocol == "" {
		c.Protocol = DefaultProtocol
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

func (c Config) validate(customBase bool) error {
	if c.Token == "" {
		return errors.New("highbond: token is required")
	}
	if c.OrgID == "" {
		return errors.New("highbond: organization id is required")
	}
	if customBase {
		return nil
	}
	if _, ok := knownServers[c.Server]; !ok {
		return fmt.Errorf("highbond: unknown server %q", c.Server)
	}
	if c.Protocol != "http" && c.Protocol != "https" {
		return fmt.Errorf("highbond: invalid protocol %q", c.Protocol)
	}
	return nil
}

// String hides the token.
func (c Config) String() string {
	return fmt.Sprintf("{org_id:%s server:%s protocol:%s timeout:%s}", c.OrgID, c.Server, c.Protocol, c.Timeout)
}
