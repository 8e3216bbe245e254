// Package reconcile classifies drift for managed blocks. Each block is
// evaluated independently as a pure function of three inputs: the
// canonical rule, the block currently in the target file, and the
// snapshot recorded by the last sync. The one invariant the whole engine
// exists to protect lives here: when both sides have changed, the verdict
// is Conflict and nothing is overwritten without an explicit force.
package reconcile

import (
	"fmt"

	"github.com/agentx-labs/rulesync/internal/marker"
	"github.com/agentx-labs/rulesync/internal/rules"
	"github.com/agentx-labs/rulesync/internal/snapshot"
)

// Evaluate produces the verdict for one (rule, block, snapshot) triple.
// rule is nil when the canonical set no longer declares the block; block
// is nil when the target file has no block for the rule. At least one of
// the two must be non-nil.
func Evaluate(rule *rules.Rule, block *marker.Block, snap *snapshot.Entry) Verdict {
	switch {
	case rule == nil && block == nil:
		panic("reconcile: both rule and block are nil")

	case block == nil:
		// Also reached when a snapshot exists but the whole block was
		// deleted from the target: the rule still stands, so sync
		// reinserts it. Opting a rule out is done in the canonical set,
		// not by deleting its markers.
		return Verdict{
			Kind:          NewBlock,
			ID:            rule.ID,
			Prefix:        rule.Prefix,
			CanonicalHash: marker.Sum(rule.Body),
		}

	case rule == nil:
		v := Verdict{
			ID:       block.ID,
			Prefix:   block.Prefix,
			BodyHash: marker.Sum(block.Body),
		}
		if snap == nil {
			// No canonical rule and no record of any sync writing this
			// region: it may be hand-authored, so removing it would
			// destroy content we never owned. Surface it as a conflict
			// that only force resolves.
			v.Kind = Conflict
			v.Warnings = append(v.Warnings,
				fmt.Sprintf("block %s/%s was never written by a sync; will not remove without force", block.Prefix, block.ID))
			return v
		}
		v.Kind = OrphanedBlock
		return v
	}

	v := Verdict{
		ID:            rule.ID,
		Prefix:        rule.Prefix,
		CanonicalHash: marker.Sum(rule.Body),
		BodyHash:      marker.Sum(block.Body),
	}

	// The body is authoritative: a marker whose stored hash disagrees
	// with the recomputed body hash means someone tampered with the
	// region, so the block counts as locally edited no matter what the
	// snapshot says.
	tampered := block.Hash != v.BodyHash
	if tampered {
		v.Warnings = append(v.Warnings,
			fmt.Sprintf("block %s/%s: stored hash %q does not match its body (recomputed %s)",
				block.Prefix, block.ID, block.Hash, v.BodyHash))
	}

	if snap == nil {
		// No snapshot to triangulate with. If the body already matches
		// the canonical content the block is simply adopted; anything
		// else is indistinguishable from a both-sides change, so it is
		// treated as the safe worst case.
		if v.BodyHash == v.CanonicalHash && !tampered {
			v.Kind = InSync
			return v
		}
		v.Kind = Conflict
		v.Warnings = append(v.Warnings,
			fmt.Sprintf("block %s/%s has no sync snapshot; cannot tell which side changed", block.Prefix, block.ID))
		return v
	}

	sourceChanged := snap.CanonicalHash != v.CanonicalHash
	bodyChanged := snap.BodyHash != v.BodyHash || tampered

	switch {
	case !sourceChanged && !bodyChanged:
		v.Kind = InSync
	case !sourceChanged && bodyChanged:
		v.Kind = LocallyEdited
	case sourceChanged && !bodyChanged:
		v.Kind = SourceUpdated
	default:
		v.Kind = Conflict
	}
	return v
}

// SnapshotEntry returns the store entry a verdict implies once its
// action has been applied, or ok=false when no entry should be recorded
// (a removed orphan, or a conflict left unresolved with no prior
// snapshot). Kept local edits and unforced conflicts carry the previous
// entry forward unchanged, so the drift keeps being reported until a
// human resolves it; recording the observed state instead would let a
// later canonical change silently overwrite the human edit.
func SnapshotEntry(v Verdict, prev *snapshot.Entry, force bool) (snapshot.Entry, bool) {
	e := snapshot.Entry{
		ID:     v.ID,
		Prefix: marker.ToMetadataPrefix(v.Prefix),
	}

	switch v.Kind {
	case InSync:
		e.CanonicalHash = v.CanonicalHash
		e.BodyHash = v.BodyHash
		return e, true

	case NewBlock, SourceUpdated:
		e.CanonicalHash = v.CanonicalHash
		e.BodyHash = v.CanonicalHash
		return e, true

	case LocallyEdited:
		if prev != nil {
			return *prev, true
		}
		return e, false

	case Conflict:
		if force {
			// No canonical hash means the conflict is an unrecorded
			// block with no rule; forcing removes it, leaving nothing
			// to record.
			if v.CanonicalHash == "" {
				return e, false
			}
			e.CanonicalHash = v.CanonicalHash
			e.BodyHash = v.CanonicalHash
			return e, true
		}
		if prev != nil {
			return *prev, true
		}
		return e, false

	default: // OrphanedBlock
		return e, false
	}
}
