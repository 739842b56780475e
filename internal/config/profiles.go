package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile is one named set of HighBond credentials in a profiles file.
type Profile struct {
	Name           string `json:"name" yaml:"name"`
	Token          string `json:"token" yaml:"token"`
	OrgID          string `json:"org_id" yaml:"org_id"`
	Server         string `json:"server" yaml:"server"`
	Protocol       string `json:"protocol" yaml:"protocol"`
	TimeoutSeconds int64  `json:"timeout_seconds" yaml:"timeout_seconds"`
}

type profilesFile struct {
	Profiles []Profile `json:"profiles" yaml:"profiles"`
}

// Profiles is the parsed, validated content of a profiles file.
type Profiles struct {
	profiles []Profile
	idx      map[string]Profile
}

// LoadProfiles loads profiles from a YAML/JSON file.
func LoadProfiles(path string) (*Profiles, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("profiles file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open profiles file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read profiles file: %w", err)
	}

	parsed, err := parseProfiles(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(parsed.Profiles) == 0 {
		return nil, errors.New("profiles file contains no profiles entries")
	}

	reg := &Profiles{
		profiles: make([]Profile, len(parsed.Profiles)),
		idx:      make(map[string]Profile, len(parsed.Profiles)),
	}
	for i := range parsed.Profiles {
		p := sanitizeProfile(parsed.Profiles[i])
		if err := validateProfile(p); err != nil {
			return nil, fmt.Errorf("profiles[%d]: %w", i, err)
		}
		if _, exists := reg.idx[p.Name]; exists {
			return nil, fmt.Errorf("duplicate profile name %q", p.Name)
		}
		reg.profiles[i] = p
		reg.idx[p.Name] = p
	}
	return reg, nil
}

type unmarshalFn func([]byte, any) error

func parseProfiles(data []byte, ext string) (profilesFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var out profilesFile
		if err := d.fn(data, &out); err == nil {
			return out, nil
		}
	}

	return profilesFile{}, errors.New("profiles file format not recognized (expected YAML or JSON)")
}

func sanitizeProfile(p Profile) Profile {
	p.Name = strings.TrimSpace(p.Name)
	p.Token = strings.TrimSpace(p.Token)
	p.OrgID = strings.TrimSpace(p.OrgID)
	p.Server = strings.TrimSpace(p.Server)
	p.Protocol = strings.ToLower(strings.TrimSpace(p.Protocol))
	return p
}

func validateProfile(p Profile) error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.OrgID == "" {
		return fmt.Errorf("org_id is required for profile %q", p.Name)
	}
	if p.Protocol != "" && p.Protocol != "http" && p.Protocol != "https" {
		return fmt.Errorf("invalid protocol %q for profile %q", p.Protocol, p.Name)
	}
	if p.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative for profile %q", p.Name)
	}
	return nil
}

// ByName returns the profile with the given name.
func (r *Profiles) ByName(name string) (Profile, bool) {
	if r == nil {
		return Profile{}, false
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultProfile
	}
	p, ok := r.idx[name]
	return p, ok
}

// Names lists profile names in file order.
func (r *Profiles) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p.Name)
	}
	return out
}
