package reconcile

import (
	"strings"
	"testing"

	"github.com/agentx-labs/rulesync/internal/marker"
	"github.com/agentx-labs/rulesync/internal/rules"
	"github.com/agentx-labs/rulesync/internal/snapshot"
)

func rule(id, body string) *rules.Rule {
	return &rules.Rule{ID: id, Prefix: "rulesync-rule", Body: body}
}

// block builds a managed block whose stored hash matches its body.
func block(id, content string) *marker.Block {
	body := marker.NewBody(content)
	return &marker.Block{ID: id, Prefix: "rulesync-rule", Hash: marker.Sum(body), Body: body}
}

func snap(canonical, body string) *snapshot.Entry {
	return &snapshot.Entry{
		ID:            "style",
		Prefix:        "rulesync_rule",
		CanonicalHash: marker.Sum(canonical),
		BodyHash:      marker.Sum(marker.NewBody(body)),
	}
}

func TestInSync(t *testing.T) {
	v := Evaluate(rule("style", "use tabs"), block("style", "use tabs"), snap("use tabs", "use tabs"))
	if v.Kind != InSync {
		t.Errorf("kind = %s, want in-sync", v.Kind)
	}
}

func TestLocallyEdited(t *testing.T) {
	v := Evaluate(rule("style", "use tabs"), block("style", "use spaces actually"), snap("use tabs", "use tabs"))
	if v.Kind != LocallyEdited {
		t.Errorf("kind = %s, want locally-edited", v.Kind)
	}
}

func TestSourceUpdated(t *testing.T) {
	v := Evaluate(rule("style", "use tabs v2"), block("style", "use tabs"), snap("use tabs", "use tabs"))
	if v.Kind != SourceUpdated {
		t.Errorf("kind = %s, want source-updated", v.Kind)
	}
}

func TestConflict(t *testing.T) {
	v := Evaluate(rule("style", "use tabs v2"), block("style", "use spaces actually"), snap("use tabs", "use tabs"))
	if v.Kind != Conflict {
		t.Errorf("kind = %s, want conflict", v.Kind)
	}
	if v.CanonicalHash == "" || v.BodyHash == "" {
		t.Error("conflict verdict must report both hashes")
	}
}

func TestNewBlock(t *testing.T) {
	v := Evaluate(rule("style", "use tabs"), nil, nil)
	if v.Kind != NewBlock {
		t.Errorf("kind = %s, want new-block", v.Kind)
	}
	if v.CanonicalHash != marker.Sum("use tabs") {
		t.Error("new-block verdict must carry the canonical hash")
	}
}

func TestOrphanedBlock(t *testing.T) {
	v := Evaluate(nil, block("legacy", "old content"), snap("old content", "old content"))
	if v.Kind != OrphanedBlock {
		t.Errorf("kind = %s, want orphaned", v.Kind)
	}
}

func TestUnrecordedBlockWithoutRuleIsConflict(t *testing.T) {
	// No rule and no snapshot: the region may be hand-authored, so it
	// must not classify as a removable orphan.
	v := Evaluate(nil, block("hand-authored", "kept notes"), nil)
	if v.Kind != Conflict {
		t.Errorf("kind = %s, want conflict", v.Kind)
	}
	if len(v.Warnings) == 0 {
		t.Error("verdict must warn that no sync ever wrote the block")
	}
	if v.CanonicalHash != "" {
		t.Error("verdict has no rule, so no canonical hash")
	}
}

func TestTamperedHashForcesLocallyEdited(t *testing.T) {
	b := block("style", "use tabs")
	b.Hash = "0000000000000000" // hash field edited by hand

	v := Evaluate(rule("style", "use tabs"), b, snap("use tabs", "use tabs"))
	if v.Kind != LocallyEdited {
		t.Errorf("kind = %s, want locally-edited", v.Kind)
	}
	if len(v.Warnings) == 0 || !strings.Contains(v.Warnings[0], "does not match") {
		t.Errorf("expected a hash mismatch warning, got %v", v.Warnings)
	}
}

func TestTamperedHashWithSourceChangeIsConflict(t *testing.T) {
	b := block("style", "use tabs")
	b.Hash = "0000000000000000"

	v := Evaluate(rule("style", "use tabs v2"), b, snap("use tabs", "use tabs"))
	if v.Kind != Conflict {
		t.Errorf("kind = %s, want conflict", v.Kind)
	}
}

func TestNoSnapshotMatchingBodyAdopts(t *testing.T) {
	v := Evaluate(rule("style", "use tabs"), block("style", "use tabs"), nil)
	if v.Kind != InSync {
		t.Errorf("kind = %s, want in-sync", v.Kind)
	}
}

func TestNoSnapshotDivergedBodyIsConflict(t *testing.T) {
	v := Evaluate(rule("style", "use tabs"), block("style", "who wrote this"), nil)
	if v.Kind != Conflict {
		t.Errorf("kind = %s, want conflict", v.Kind)
	}
}

func TestSnapshotEntryAfterOverwrite(t *testing.T) {
	v := Evaluate(rule("style", "use tabs v2"), block("style", "use tabs"), snap("use tabs", "use tabs"))

	e, ok := SnapshotEntry(v, snap("use tabs", "use tabs"), false)
	if !ok {
		t.Fatal("source-updated must record an entry")
	}
	if e.CanonicalHash != marker.Sum("use tabs v2") || e.BodyHash != marker.Sum("use tabs v2") {
		t.Errorf("entry = %+v", e)
	}
	if e.Prefix != "rulesync_rule" {
		t.Errorf("entry prefix = %q, want metadata form", e.Prefix)
	}
}

func TestSnapshotEntryKeepsPreviousForLocalEdit(t *testing.T) {
	prev := snap("use tabs", "use tabs")
	v := Evaluate(rule("style", "use tabs"), block("style", "edited by hand"), prev)

	e, ok := SnapshotEntry(v, prev, false)
	if !ok {
		t.Fatal("locally-edited must keep an entry")
	}
	// The previous pair survives, so the edit keeps being reported and a
	// later canonical change becomes a conflict instead of an overwrite.
	if e != *prev {
		t.Errorf("entry = %+v, want previous %+v", e, *prev)
	}
}

func TestSnapshotEntryUnforcedConflictKeepsPrevious(t *testing.T) {
	prev := snap("use tabs", "use tabs")
	v := Evaluate(rule("style", "v2"), block("style", "edited"), prev)

	e, ok := SnapshotEntry(v, prev, false)
	if !ok || e != *prev {
		t.Errorf("unforced conflict entry = %+v ok=%v, want previous kept", e, ok)
	}
}

func TestSnapshotEntryForcedConflictTakesCanonical(t *testing.T) {
	prev := snap("use tabs", "use tabs")
	v := Evaluate(rule("style", "v2"), block("style", "edited"), prev)

	e, ok := SnapshotEntry(v, prev, true)
	if !ok {
		t.Fatal("forced conflict must record an entry")
	}
	if e.CanonicalHash != marker.Sum("v2") || e.BodyHash != marker.Sum("v2") {
		t.Errorf("entry = %+v", e)
	}
}

func TestSnapshotEntryForcedRemovalRecordsNothing(t *testing.T) {
	// Forcing a rule-less conflict removes the block, so there is no
	// state left to snapshot.
	v := Evaluate(nil, block("hand-authored", "kept notes"), nil)
	if _, ok := SnapshotEntry(v, nil, true); ok {
		t.Error("forced removal must not record an entry")
	}
}

func TestSnapshotEntryOrphanRecordsNothing(t *testing.T) {
	v := Evaluate(nil, block("legacy", "old"), snap("old", "old"))
	if _, ok := SnapshotEntry(v, snap("old", "old"), false); ok {
		t.Error("orphaned block must not record an entry")
	}
}
