package engine

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agentx-labs/rulesync/internal/reconcile"
)

var (
	pathStyle     = lipgloss.NewStyle().Bold(true)
	inSyncStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	localStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801"))
	conflictStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	newStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF"))
	orphanStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

// DriftCount returns the number of blocks that are not in sync.
func (r *Report) DriftCount() int {
	n := 0
	for _, res := range r.Results {
		for i := range res.Verdicts {
			if res.Verdicts[i].Drifted() {
				n++
			}
		}
	}
	return n
}

// ConflictCount returns the number of conflicting blocks.
func (r *Report) ConflictCount() int {
	n := 0
	for _, res := range r.Results {
		for i := range res.Verdicts {
			if res.Verdicts[i].Kind == reconcile.Conflict {
				n++
			}
		}
	}
	return n
}

// ErrCount returns the number of targets that failed with a parse or
// I/O error.
func (r *Report) ErrCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// Clean reports whether the run found no drift, no conflicts, and no
// per-target errors.
func (r *Report) Clean() bool {
	return r.DriftCount() == 0 && r.ErrCount() == 0
}

// Unresolved reports whether sync mode left anything for a human: an
// unforced conflict or a failed target.
func (r *Report) Unresolved() bool {
	if r.ErrCount() > 0 {
		return true
	}
	return !r.Force && r.ConflictCount() > 0
}

// Render formats the report for terminal output. With colored false the
// same layout is emitted without styling.
func (r *Report) Render(colored bool) string {
	style := func(s lipgloss.Style, text string) string {
		if !colored {
			return text
		}
		return s.Render(text)
	}

	var b strings.Builder
	blocks := 0

	for _, res := range r.Results {
		b.WriteString(style(pathStyle, res.Target.Rel))
		b.WriteString("\n")

		if res.Err != nil {
			b.WriteString("  " + style(errStyle, "error: "+res.Err.Error()) + "\n")
			continue
		}

		if len(res.Verdicts) == 0 {
			b.WriteString("  no managed blocks\n")
			continue
		}

		for i := range res.Verdicts {
			v := &res.Verdicts[i]
			blocks++
			b.WriteString("  " + verdictLine(v, r.Mode, r.Force, style) + "\n")
			for _, w := range v.Warnings {
				b.WriteString("    " + style(localStyle, "warning: "+w) + "\n")
			}
		}
	}

	b.WriteString(fmt.Sprintf("\n%d block(s) across %d target(s): %d drifted, %d conflict(s), %d error(s)\n",
		blocks, len(r.Results), r.DriftCount(), r.ConflictCount(), r.ErrCount()))

	return b.String()
}

// verdictLine renders one block's outcome with the action taken or required.
func verdictLine(v *reconcile.Verdict, mode Mode, force bool, style func(lipgloss.Style, string) string) string {
	name := fmt.Sprintf("%-20s", v.ID)

	switch v.Kind {
	case reconcile.InSync:
		return style(inSyncStyle, "= ") + name + " in sync"

	case reconcile.SourceUpdated:
		if mode == ModeSync {
			return style(newStyle, "~ ") + name + " updated from source"
		}
		return style(newStyle, "~ ") + name + " source updated, will overwrite"

	case reconcile.LocallyEdited:
		return style(localStyle, "! ") + name + " locally edited, keeping target body"

	case reconcile.Conflict:
		if v.CanonicalHash == "" {
			if force {
				return style(conflictStyle, "* ") + name + " removed (no rule, never written by a sync)"
			}
			return style(conflictStyle, "* ") + name + " has no rule and no sync record, rerun with --force to remove"
		}
		detail := fmt.Sprintf(" conflict (canonical %s, body %s)", v.CanonicalHash, v.BodyHash)
		if force {
			return style(conflictStyle, "* ") + name + detail + ", forced to canonical"
		}
		return style(conflictStyle, "* ") + name + detail + ", rerun with --force to take canonical"

	case reconcile.NewBlock:
		if mode == ModeSync {
			return style(newStyle, "+ ") + name + " inserted"
		}
		return style(newStyle, "+ ") + name + " missing, will insert"

	case reconcile.OrphanedBlock:
		if mode == ModeSync {
			return style(orphanStyle, "- ") + name + " removed (rule no longer exists)"
		}
		return style(orphanStyle, "- ") + name + " orphaned, will remove"

	default:
		return name + " " + v.Kind.String()
	}
}
