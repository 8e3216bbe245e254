package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.yaml.in/yaml/v3"

	"github.com/agentx-labs/rulesync/internal/marker"
)

// ManifestName is the manifest file name inside the source directory.
const ManifestName = "rulesync.yaml"

// DefaultPrefix is used when the manifest does not declare one.
const DefaultPrefix = "rulesync-rule"

// Load reads and validates the canonical rule set rooted at dir.
// cliVersion is the running binary's version, checked against the
// manifest's min_cli_version constraint; a "dev" build always passes.
func Load(dir, cliVersion string) (*Set, error) {
	manifestPath := filepath.Join(dir, ManifestName)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", manifestPath, err)
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating manifest %s: %w", manifestPath, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("manifest %s is invalid:\n%s", manifestPath, result.Describe())
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", manifestPath, err)
	}

	if err := checkCLIVersion(m.MinCLIVersion, cliVersion); err != nil {
		return nil, err
	}

	prefix := m.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if !marker.ValidPrefix(prefix) {
		return nil, fmt.Errorf("manifest prefix %q: only letters, digits, and dashes or underscores are allowed, and dash must not mix with underscore", prefix)
	}

	set := &Set{
		Dir:    dir,
		Prefix: prefix,
		Tools:  m.Tools,
	}

	seen := make(map[string]string)
	for _, rel := range m.Rules {
		rule, err := loadRule(dir, rel, prefix)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[rule.ID]; dup {
			return nil, fmt.Errorf("rule id %q declared in both %s and %s", rule.ID, prev, rel)
		}
		seen[rule.ID] = rel

		for _, tool := range rule.Tools {
			if !contains(m.Tools, tool) {
				return nil, fmt.Errorf("rule %s targets tool %q which the manifest does not declare", rel, tool)
			}
		}

		set.Rules = append(set.Rules, *rule)
	}

	return set, nil
}

// loadRule reads one rule file: YAML frontmatter head, canonical body below.
func loadRule(dir, rel, defaultPrefix string) (*Rule, error) {
	path := filepath.Join(dir, rel)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule file %s: %w", path, err)
	}

	head, body, err := splitFrontmatter(string(data))
	if err != nil {
		return nil, fmt.Errorf("rule file %s: %w", rel, err)
	}

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(head), &fm); err != nil {
		return nil, fmt.Errorf("parsing frontmatter of %s: %w", rel, err)
	}

	if fm.ID == "" {
		return nil, fmt.Errorf("rule file %s: frontmatter is missing an id", rel)
	}
	if strings.ContainsAny(fm.ID, " \t\"") {
		return nil, fmt.Errorf("rule file %s: id %q must not contain spaces or quotes", rel, fm.ID)
	}

	prefix := fm.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	if !marker.ValidPrefix(prefix) {
		return nil, fmt.Errorf("rule file %s: invalid prefix %q", rel, prefix)
	}

	return &Rule{
		ID:     fm.ID,
		Prefix: marker.ToMarkerPrefix(prefix),
		Body:   body,
		Tools:  fm.Tools,
		Path:   rel,
	}, nil
}

// splitFrontmatter separates the leading "---" delimited YAML head from
// the body. The body is everything after the closing delimiter line,
// verbatim.
func splitFrontmatter(text string) (head, body string, err error) {
	const delim = "---"

	rest, ok := strings.CutPrefix(text, delim+"\n")
	if !ok {
		return "", "", fmt.Errorf("missing frontmatter: file must start with %q", delim)
	}

	end := strings.Index(rest, "\n"+delim)
	if end < 0 {
		return "", "", fmt.Errorf("frontmatter is never closed with %q", delim)
	}

	head = rest[:end]
	body = rest[end+len("\n"+delim):]
	// Drop the delimiter's own line ending.
	body = strings.TrimPrefix(body, "\n")
	return head, body, nil
}

// checkCLIVersion enforces the manifest's min_cli_version constraint.
func checkCLIVersion(constraint, cliVersion string) error {
	if constraint == "" || cliVersion == "" || cliVersion == "dev" {
		return nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("manifest min_cli_version %q: %w", constraint, err)
	}
	v, err := semver.NewVersion(strings.TrimPrefix(cliVersion, "v"))
	if err != nil {
		return fmt.Errorf("parsing CLI version %q: %w", cliVersion, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("this rule set requires CLI version %s, running %s", constraint, cliVersion)
	}
	return nil
}

func contains(slice []string, val string) bool {
	for _, s := range slice {
		if s == val {
			return true
		}
	}
	return false
}
