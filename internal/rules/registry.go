package rules

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Table maps a hostname to its ordered rule list. Declaration order is
// significant: the first matching rule wins.
type Table map[string][]*Rule

// Registry produces the active rule table for a build target by merging
// built-in rules, build-target additions, and user custom rules.
type Registry struct {
	builtin   Table
	additions map[BuildTarget]Table
	target    BuildTarget
}

// NewRegistry builds a registry for the given build target using the
// built-in site tables.
func NewRegistry(target BuildTarget) *Registry {
	return &Registry{
		builtin:   builtinSites(),
		additions: targetSites(),
		target:    target,
	}
}

// SupportedSites merges the built-in table with the active build
// target's additions, drops rules declared for a different target, and
// prunes sites left with no rules. Returned rules are deep copies; the
// source tables stay pristine.
func (r *Registry) SupportedSites() Table {
	merged := make(Table)
	for host, list := range r.builtin {
		merged[host] = cloneRules(list)
	}
	if extra, ok := r.additions[r.target]; ok {
		for host, list := range extra {
			merged[host] = append(merged[host], cloneRules(list)...)
		}
	}
	return r.filter(merged)
}

// SupportedAndCustomSites overlays user custom rules onto the supported
// table. A custom entry replaces the entire built-in list for its host.
func (r *Registry) SupportedAndCustomSites(custom Table) Table {
	merged := r.SupportedSites()
	for host, list := range custom {
		merged[host] = cloneRules(list)
	}
	return r.filter(merged)
}

func (r *Registry) filter(table Table) Table {
	for host, list := range table {
		kept := list[:0]
		for _, rule := range list {
			if rule == nil {
				continue
			}
			if rule.BuildTarget != "" && rule.BuildTarget != r.target {
				continue
			}
			kept = append(kept, rule)
		}
		if len(kept) == 0 {
			delete(table, host)
			continue
		}
		table[host] = kept
	}
	return table
}

// SiteKey resolves which table entry applies to the current page: the
// page hostname when present, else the enclosing iframe's hostname, else
// "" meaning no rules are active.
func SiteKey(table Table, host, iframeHost string) string {
	if _, ok := table[host]; ok {
		return host
	}
	if iframeHost != "" {
		if _, ok := table[iframeHost]; ok {
			return iframeHost
		}
	}
	return ""
}

// DecodeRules parses a custom rules payload. A bare rule object is
// coerced into a one-element list.
func DecodeRules(data []byte) ([]*Rule, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, nil
	}
	var list []*Rule
	if err := json.Unmarshal([]byte(trimmed), &list); err == nil {
		return list, nil
	}
	var single Rule
	if err := json.Unmarshal([]byte(trimmed), &single); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	return []*Rule{&single}, nil
}

func cloneRules(list []*Rule) []*Rule {
	out := make([]*Rule, 0, len(list))
	for _, rule := range list {
		if rule == nil {
			continue
		}
		out = append(out, rule.Clone())
	}
	return out
}

// Clone returns a deep copy so per-page initialization can mutate derived
// fields without touching the shared tables.
func (r *Rule) Clone() *Rule {
	cp := *r
	if r.UnmuteDelay != nil {
		v := *r.UnmuteDelay
		cp.UnmuteDelay = &v
	}
	if r.Iframe != nil {
		v := *r.Iframe
		cp.Iframe = &v
	}
	if r.Element != nil {
		v := *r.Element
		if r.Element.ChildCount != nil {
			c := *r.Element.ChildCount
			v.ChildCount = &c
		}
		cp.Element = &v
	}
	if r.ElementChild != nil {
		v := *r.ElementChild
		v.Parents = append([]string(nil), r.ElementChild.Parents...)
		cp.ElementChild = &v
	}
	if r.Text != nil {
		v := *r.Text
		cp.Text = &v
	}
	if r.Watcher != nil {
		v := *r.Watcher
		cp.Watcher = &v
	}
	if r.Cue != nil {
		v := *r.Cue
		if r.Cue.External != nil {
			e := *r.Cue.External
			v.External = &e
		}
		cp.Cue = &v
	}
	if r.Dynamic != nil {
		v := *r.Dynamic
		if r.Dynamic.Target != nil {
			v.Target = r.Dynamic.Target.Clone()
		}
		cp.Dynamic = &v
	}
	return &cp
}
