package rules

// Manifest is the parsed rulesync.yaml document.
type Manifest struct {
	Version       int      `yaml:"version"`
	MinCLIVersion string   `yaml:"min_cli_version,omitempty"`
	Prefix        string   `yaml:"prefix,omitempty"`
	Tools         []string `yaml:"tools"`
	Rules         []string `yaml:"rules"`
}

// frontmatter is the YAML head of a rule file.
type frontmatter struct {
	ID     string   `yaml:"id"`
	Prefix string   `yaml:"prefix,omitempty"`
	Tools  []string `yaml:"tools,omitempty"`
}

// Rule is one canonical rule: the upstream-authored content a target
// file's managed block should mirror. Immutable per sync run.
type Rule struct {
	// ID is unique within the canonical set.
	ID string

	// Prefix is the dash-form marker prefix.
	Prefix string

	// Body is the canonical content below the frontmatter, verbatim.
	Body string

	// Tools restricts which tools receive this rule. Empty means every
	// tool the manifest declares.
	Tools []string

	// Path is the rule file path relative to the source directory.
	Path string
}

// AppliesTo reports whether the rule targets the named tool.
func (r *Rule) AppliesTo(tool string) bool {
	if len(r.Tools) == 0 {
		return true
	}
	for _, t := range r.Tools {
		if t == tool {
			return true
		}
	}
	return false
}

// Set is a fully loaded canonical rule set.
type Set struct {
	// Dir is the absolute path of the source directory.
	Dir string

	// Prefix is the default dash-form prefix for rules that do not
	// override it.
	Prefix string

	// Tools lists the tool names the manifest declares, in order.
	Tools []string

	// Rules holds the canonical rules in manifest order. That order is
	// the canonical-declared position used when inserting new blocks.
	Rules []Rule
}

// ForTool returns the rules that apply to the named tool, in canonical order.
func (s *Set) ForTool(tool string) []Rule {
	var out []Rule
	for _, r := range s.Rules {
		if r.AppliesTo(tool) {
			out = append(out, r)
		}
	}
	return out
}
