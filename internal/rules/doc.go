// Package rules loads the canonical rule set from a repository's
// .rulesync/ directory: a schema-validated rulesync.yaml manifest naming
// the target tools and rule files, plus one markdown file per rule with a
// YAML frontmatter head. The loaded set is immutable for the duration of
// a sync run.
package rules
