package reconcile

// Kind classifies the relationship between canonical content, the last
// synced snapshot, and the current target body for one block.
type Kind int

const (
	// InSync means nothing changed on either side.
	InSync Kind = iota

	// SourceUpdated means the canonical content changed and the target
	// body did not; sync overwrites the body.
	SourceUpdated

	// LocallyEdited means the target body changed and the canonical
	// content did not; the edit is kept.
	LocallyEdited

	// Conflict means both sides changed since the last snapshot. Never
	// auto-resolved; an explicit force takes the canonical side.
	Conflict

	// NewBlock means a canonical rule has no block in the target yet.
	NewBlock

	// OrphanedBlock means a managed block remains in the target but its
	// canonical rule was removed.
	OrphanedBlock
)

// String returns the report label for the verdict kind.
func (k Kind) String() string {
	switch k {
	case InSync:
		return "in-sync"
	case SourceUpdated:
		return "source-updated"
	case LocallyEdited:
		return "locally-edited"
	case Conflict:
		return "conflict"
	case NewBlock:
		return "new-block"
	case OrphanedBlock:
		return "orphaned"
	default:
		return "unknown"
	}
}

// Verdict is the reconciler's decision for one block id within one
// target file.
type Verdict struct {
	Kind Kind

	// ID and Prefix identify the block; Prefix is the dash marker form.
	ID     string
	Prefix string

	// CanonicalHash is the hash of the current canonical body, empty for
	// orphaned blocks.
	CanonicalHash string

	// BodyHash is the hash of the current target body, empty for new blocks.
	BodyHash string

	// Warnings carries non-fatal observations, such as a marker whose
	// stored hash disagreed with its recomputed body hash.
	Warnings []string
}

// Drifted reports whether the verdict represents any deviation from the
// fully synced state.
func (v *Verdict) Drifted() bool {
	return v.Kind != InSync
}
