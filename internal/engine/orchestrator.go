package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/agentx-labs/rulesync/internal/fsutil"
	"github.com/agentx-labs/rulesync/internal/integrations"
	"github.com/agentx-labs/rulesync/internal/marker"
	"github.com/agentx-labs/rulesync/internal/reconcile"
	"github.com/agentx-labs/rulesync/internal/rules"
	"github.com/agentx-labs/rulesync/internal/snapshot"
)

// Mode selects between reporting drift and applying changes.
type Mode int

const (
	// ModeCheck produces a drift report and makes no writes.
	ModeCheck Mode = iota
	// ModeSync applies every non-conflicting verdict and rewrites
	// drifted targets atomically.
	ModeSync
)

// DefaultJobs bounds the worker pool when the caller does not.
const DefaultJobs = 4

// Options configures a run.
type Options struct {
	Mode  Mode
	Force bool
	Jobs  int
}

// Engine reconciles a canonical rule set against a list of target files.
type Engine struct {
	set   *rules.Set
	store *snapshot.Store
	opts  Options
}

// New builds an engine over an immutable rule set and the snapshot store
// loaded at run start.
func New(set *rules.Set, store *snapshot.Store, opts Options) *Engine {
	if opts.Jobs <= 0 {
		opts.Jobs = DefaultJobs
	}
	return &Engine{set: set, store: store, opts: opts}
}

// TargetResult aggregates everything one worker decided about one target.
type TargetResult struct {
	Target   integrations.Target
	Verdicts []reconcile.Verdict

	// Err is a parse or I/O failure for this target only; sibling
	// targets are unaffected.
	Err error

	// Wrote is true when sync mode rewrote the file.
	Wrote bool

	// entries is the snapshot state to record for this target, valid
	// only once any rewrite has been renamed into place.
	entries []snapshot.Entry
}

// Report is the aggregate outcome across all targets.
type Report struct {
	Mode    Mode
	Force   bool
	Results []TargetResult
}

// Run processes every target through the bounded worker pool and, in
// sync mode, saves the snapshot store once all workers finished. Workers
// observe ctx only between targets: a file whose write began is always
// completed or discarded, never half-written, and targets not yet
// started are simply not scheduled after cancellation.
func (e *Engine) Run(ctx context.Context, targets []integrations.Target) (*Report, error) {
	results := make([]TargetResult, len(targets))

	var g errgroup.Group
	g.SetLimit(e.opts.Jobs)
	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = TargetResult{Target: target, Err: err}
				return nil
			}
			results[i] = e.processTarget(target)
			return nil
		})
	}
	// Workers never return errors; per-target failures live in results.
	_ = g.Wait()

	report := &Report{Mode: e.opts.Mode, Force: e.opts.Force, Results: results}

	if e.opts.Mode == ModeSync {
		// Record snapshots only for targets whose rewrite (if any)
		// succeeded, then persist once. A crash before this point leaves
		// the store at its pre-run state.
		for _, res := range report.Results {
			if res.Err != nil {
				continue
			}
			e.store.ReplaceTarget(res.Target.Rel, res.entries)
		}
		if err := e.store.Save(); err != nil {
			return report, fmt.Errorf("saving snapshot store: %w", err)
		}
	}

	return report, nil
}

// processTarget runs the full cycle for one target file. All reconciling
// is a pure sequential fold over the parsed blocks; I/O happens only at
// the read and the final atomic write.
func (e *Engine) processTarget(target integrations.Target) TargetResult {
	res := TargetResult{Target: target}

	raw := ""
	data, err := fsutil.Read(target.Path)
	switch {
	case err == nil:
		raw = string(data)
	case errors.Is(err, fsutil.ErrNotFound):
		// Absent target: treated as empty, blocks will be inserted.
	default:
		res.Err = err
		return res
	}

	file, err := marker.Parse(target.Rel, raw, target.Style)
	if err != nil {
		res.Err = err
		return res
	}

	applicable := e.set.ForTool(string(target.Tool))

	// Reconcile every canonical id, then every block the canonical set
	// no longer covers (orphans), preserving file order for the latter.
	matched := make(map[[2]string]bool)
	for i := range applicable {
		rule := &applicable[i]
		block := file.FindBlock(rule.ID, rule.Prefix)
		if block != nil {
			matched[[2]string{block.ID, block.Prefix}] = true
		}
		snap := e.store.Get(target.Rel, rule.ID, marker.ToMetadataPrefix(rule.Prefix))
		res.Verdicts = append(res.Verdicts, reconcile.Evaluate(rule, block, snap))
	}
	for i := range file.Blocks {
		block := &file.Blocks[i]
		if matched[[2]string{block.ID, block.Prefix}] {
			continue
		}
		snap := e.store.Get(target.Rel, block.ID, marker.ToMetadataPrefix(block.Prefix))
		if snap == nil && !e.ownsPrefix(block.Prefix) {
			// A foreign managed region we never wrote and whose prefix is
			// not ours; leave it alone entirely.
			continue
		}
		res.Verdicts = append(res.Verdicts, reconcile.Evaluate(nil, block, snap))
	}

	if e.opts.Mode == ModeCheck {
		return res
	}

	rewritten, changed := e.render(file, applicable, res.Verdicts, target.Style)
	if changed {
		if err := fsutil.WriteAtomic(target.Path, []byte(rewritten), 0o644); err != nil {
			res.Err = err
			return res
		}
		res.Wrote = true
	}

	for _, v := range res.Verdicts {
		prev := e.store.Get(target.Rel, v.ID, marker.ToMetadataPrefix(v.Prefix))
		if entry, ok := reconcile.SnapshotEntry(v, prev, e.opts.Force); ok {
			res.entries = append(res.entries, entry)
		}
	}

	return res
}

// ownsPrefix reports whether the dash-form prefix belongs to this rule
// set (the default prefix or any per-rule override).
func (e *Engine) ownsPrefix(prefix string) bool {
	if prefix == marker.ToMarkerPrefix(e.set.Prefix) {
		return true
	}
	for i := range e.set.Rules {
		if e.set.Rules[i].Prefix == prefix {
			return true
		}
	}
	return false
}

// render produces the rewritten file text: updated blocks replaced in
// place, orphans removed, new blocks appended in canonical order, and
// every byte outside block spans preserved verbatim. changed is false
// when the text is identical to the input.
func (e *Engine) render(file *marker.File, applicable []rules.Rule, verdicts []reconcile.Verdict, style marker.Style) (string, bool) {
	byKey := make(map[[2]string]reconcile.Verdict, len(verdicts))
	for _, v := range verdicts {
		byKey[[2]string{v.ID, v.Prefix}] = v
	}
	ruleByKey := make(map[[2]string]*rules.Rule, len(applicable))
	for i := range applicable {
		r := &applicable[i]
		ruleByKey[[2]string{r.ID, r.Prefix}] = r
	}

	var sb strings.Builder
	last := 0
	changed := false

	for i := range file.Blocks {
		block := &file.Blocks[i]
		key := [2]string{block.ID, block.Prefix}
		v, known := byKey[key]
		if !known {
			continue // block belongs to another prefix namespace; keep as-is
		}

		rule := ruleByKey[key]
		switch {
		case v.Kind == reconcile.OrphanedBlock,
			v.Kind == reconcile.Conflict && e.opts.Force && rule == nil:
			// Orphan, or a forced removal of a block no rule covers.
			sb.WriteString(file.Raw[last:block.Start])
			last = block.End
			// Swallow the newline that followed the removed end marker
			// so no blank hole is left behind.
			if last < len(file.Raw) && file.Raw[last] == '\n' {
				last++
			}
			changed = true

		case v.Kind == reconcile.SourceUpdated || (v.Kind == reconcile.Conflict && e.opts.Force):
			sb.WriteString(file.Raw[last:block.Start])
			sb.WriteString(marker.Render(marker.Block{
				ID:     block.ID,
				Prefix: block.Prefix,
				Body:   marker.NewBody(rule.Body),
			}, style))
			last = block.End
			changed = true

		default:
			// InSync, LocallyEdited, unforced Conflict: keep verbatim.
		}
	}
	sb.WriteString(file.Raw[last:])

	// Insert new blocks at the end, in canonical-declared order.
	for i := range applicable {
		rule := &applicable[i]
		v, known := byKey[[2]string{rule.ID, rule.Prefix}]
		if !known || v.Kind != reconcile.NewBlock {
			continue
		}
		text := sb.String()
		if text != "" && !strings.HasSuffix(text, "\n") {
			sb.WriteString("\n")
		}
		if text != "" {
			sb.WriteString("\n")
		}
		sb.WriteString(marker.Render(marker.Block{
			ID:     rule.ID,
			Prefix: rule.Prefix,
			Body:   marker.NewBody(rule.Body),
		}, style))
		sb.WriteString("\n")
		changed = true
	}

	return sb.String(), changed
}
