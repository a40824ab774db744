package continuity

import (
	"strings"

	"slate/internal/shot"
)

// Kind names the class of continuity problem.
type Kind string

const (
	KindLightingJump    Kind = "lighting-jump"
	KindCostumeChange   Kind = "costume-change"
	KindSpatialMismatch Kind = "spatial-mismatch"
)

// Severity ranks how disruptive an issue is likely to be on screen.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Issue is one detected inconsistency between two adjacent shots. Issues are
// rebuilt on every scan; only their IDs are persisted, as dismissals.
type Issue struct {
	ID           string      `json:"id"`
	Kind         Kind        `json:"kind"`
	Severity     Severity    `json:"severity"`
	ShotA        shot.Record `json:"shotA"`
	ShotB        shot.Record `json:"shotB"`
	SceneLabel   *string     `json:"sceneLabel"`
	Description  string      `json:"description"`
	SuggestedFix string      `json:"suggestedFix"`
	AutoFixHint  string      `json:"autoFixHint,omitempty"`
}

// IssueID derives the stable identifier for an issue of the given kind
// between shots a and b, e.g. "lighting:12:13". Shot ids have "%" and ":"
// percent-encoded so distinct pairs never share an id.
func IssueID(kind Kind, a, b shot.Record) string {
	return idPrefix(kind) + ":" + idEscaper.Replace(a.ID) + ":" + idEscaper.Replace(b.ID)
}

var idEscaper = strings.NewReplacer("%", "%25", ":", "%3A")

func idPrefix(kind Kind) string {
	switch kind {
	case KindLightingJump:
		return "lighting"
	case KindCostumeChange:
		return "costume"
	case KindSpatialMismatch:
		return "spatial"
	default:
		return string(kind)
	}
}

// finding is what a rule reports before it is stamped into an Issue.
type finding struct {
	description  string
	suggestedFix string
	autoFixHint  string
}

func newIssue(r rule, a, b shot.Record, f finding) *Issue {
	var label *string
	if text := a.SceneLabel(); text != "" {
		label = &text
	}
	return &Issue{
		ID:           IssueID(r.kind, a, b),
		Kind:         r.kind,
		Severity:     r.severity,
		ShotA:        a,
		ShotB:        b,
		SceneLabel:   label,
		Description:  f.description,
		SuggestedFix: f.suggestedFix,
		AutoFixHint:  f.autoFixHint,
	}
}
