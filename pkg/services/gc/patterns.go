package gc

import (
	"fmt"
	"regexp"
	"strconv"
)

// NamePattern recognizes the names of cloud resources created for a build; it must capture at least a build and a shard
type NamePattern struct {
	regex *regexp.Regexp
}

// NewNamePattern compiles a pattern with named groups build and shard, optionally index, project, network and type
func NewNamePattern(expression string) (NamePattern, error) {
	regex, err := regexp.Compile(expression)
	if err != nil {
		return NamePattern{}, err
	}
	if regex.SubexpIndex("build") < 0 || regex.SubexpIndex("shard") < 0 {
		return NamePattern{}, fmt.Errorf("pattern %v doesn't capture both build and shard", expression)
	}

	return NamePattern{regex: regex}, nil
}

// MustNamePattern is like NewNamePattern but panics on an invalid pattern
func MustNamePattern(expression string) NamePattern {
	pattern, err := NewNamePattern(expression)
	if err != nil {
		panic(err)
	}
	return pattern
}

// ResourceName is a resource name parsed by a NamePattern
type ResourceName struct {
	Name    string
	BuildID int
	ShardID int
	Index   int
	Project string
	Network string
	Type    string
}

// Match parses name; ok is false if the name doesn't match or its numbers don't fit an int
func (p NamePattern) Match(name string) (resourceName ResourceName, ok bool) {
	matches := p.regex.FindStringSubmatch(name)
	if matches == nil {
		return ResourceName{}, false
	}

	group := func(n string) string {
		if i := p.regex.SubexpIndex(n); i >= 0 {
			return matches[i]
		}
		return ""
	}

	resourceName = ResourceName{
		Name:    name,
		Project: group("project"),
		Network: group("network"),
		Type:    group("type"),
	}

	var err error
	if resourceName.BuildID, err = strconv.Atoi(group("build")); err != nil {
		return ResourceName{}, false
	}
	if resourceName.ShardID, err = strconv.Atoi(group("shard")); err != nil {
		return ResourceName{}, false
	}
	if index := group("index"); index != "" {
		if resourceName.Index, err = strconv.Atoi(index); err != nil {
			return ResourceName{}, false
		}
	}

	return resourceName, true
}

func (p NamePattern) String() string {
	return p.regex.String()
}

// MatchFirst returns the parse of the first pattern that matches name
func MatchFirst(patterns []NamePattern, name string) (ResourceName, bool) {
	for _, p := range patterns {
		if resourceName, ok := p.Match(name); ok {
			return resourceName, true
		}
	}
	return ResourceName{}, false
}

var (
	// InstancePatterns match test host names, checked in order
	InstancePatterns = []NamePattern{
		MustNamePattern(`^host(?P<index>\d+)-(?P<build>\d+)-(?P<shard>\d+)$`),
		MustNamePattern(`^host(?P<index>\d+)-(?P<project>[a-zA-Z0-9-]+)-(?P<build>\d+)-(?P<shard>\d+)$`),
		MustNamePattern(`^test-(?P<build>\d+)-(?P<shard>\d+)-(?P<index>\d+)$`),
	}

	// FirewallPatterns match firewall rules opened for test hosts, checked in order
	FirewallPatterns = []NamePattern{
		MustNamePattern(`^(?P<network>\w+)-allow-(?P<type>\w+)-(?P<build>\d+)-(?P<shard>\d+)$`),
		MustNamePattern(`^(?P<network>\w+)-(?P<build>\d+)-(?P<shard>\d+)-allow-(?P<type>[\w\-]+)$`),
	}
)
