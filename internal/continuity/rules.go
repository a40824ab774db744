package continuity

import (
	"fmt"
	"slices"
	"strings"

	"slate/internal/shot"
	"slate/internal/textutil"
)

// pair is two adjacent shots with their descriptions already normalized.
type pair struct {
	a, b         shot.Record
	textA, textB string
}

func newPair(a, b shot.Record) pair {
	return pair{a: a, b: b, textA: textutil.Normalize(a.Description), textB: textutil.Normalize(b.Description)}
}

// rule binds a keyword predicate to the issue kind and severity it emits.
// The analyzer applies rules in table order.
type rule struct {
	kind     Kind
	severity Severity
	match    func(p pair) (finding, bool)
}

var rules = []rule{
	{kind: KindLightingJump, severity: SeverityCritical, match: matchLightingJump},
	{kind: KindCostumeChange, severity: SeverityWarning, match: matchCostumeChange},
	{kind: KindSpatialMismatch, severity: SeverityInfo, match: matchSpatialMismatch},
}

func ruleFor(kind Kind) rule {
	for _, r := range rules {
		if r.kind == kind {
			return r
		}
	}
	panic(fmt.Sprintf("continuity: no rule for kind %q", kind))
}

func (r rule) apply(p pair) *Issue {
	f, ok := r.match(p)
	if !ok {
		return nil
	}
	return newIssue(r, p.a, p.b, f)
}

var (
	darkKeywords   = []string{"dark", "night"}
	brightKeywords = []string{"bright", "day", "sunny"}
)

// lightingTransitions are checked in order; the first match wins.
var lightingTransitions = []struct {
	from, to  []string
	direction string
}{
	{from: darkKeywords, to: brightKeywords, direction: "dark to bright"},
	{from: brightKeywords, to: darkKeywords, direction: "bright to dark"},
}

func matchLightingJump(p pair) (finding, bool) {
	for _, tr := range lightingTransitions {
		if !textutil.ContainsAny(p.textA, tr.from) || !textutil.ContainsAny(p.textB, tr.to) {
			continue
		}
		return finding{
			description: fmt.Sprintf("Lighting jump detected between Shot %s and Shot %s%s. Lighting shifts from %s without transition.",
				p.a.ShotLabel(), p.b.ShotLabel(), sceneSuffix(p.a), tr.direction),
			suggestedFix: fmt.Sprintf("Consider regenerating Shot %s with consistent lighting from Shot %s, or add a transition shot to smooth the lighting change.",
				p.b.ShotLabel(), p.a.ShotLabel()),
			autoFixHint: "regenerate:" + p.b.ID + ":lighting-from:" + p.a.ID,
		}, true
	}
	return finding{}, false
}

var costumeColors = []string{
	"red", "blue", "green", "black", "white", "yellow",
	"orange", "purple", "pink", "brown", "gray", "grey",
}

var costumeContext = append([]string{
	"wearing", "dressed", "outfit", "shirt", "pants", "dress", "coat", "jacket", "hat",
}, costumeColors...)

// matchCostumeChange flags any difference between the two color sets. A
// description naming red and blue therefore conflicts with one naming only
// red, even though the latter is a subset.
func matchCostumeChange(p pair) (finding, bool) {
	if !textutil.ContainsAny(p.textA, costumeContext) || !textutil.ContainsAny(p.textB, costumeContext) {
		return finding{}, false
	}
	colorsA := textutil.Matches(p.textA, costumeColors)
	colorsB := textutil.Matches(p.textB, costumeColors)
	if len(colorsA) == 0 || len(colorsB) == 0 || slices.Equal(colorsA, colorsB) {
		return finding{}, false
	}
	return finding{
		description: fmt.Sprintf("Possible costume change between Shot %s and Shot %s%s. Color descriptions differ (%s vs %s).",
			p.a.ShotLabel(), p.b.ShotLabel(), sceneSuffix(p.a), strings.Join(colorsA, ", "), strings.Join(colorsB, ", ")),
		suggestedFix: fmt.Sprintf("Verify if this costume change is intentional. If not, regenerate Shot %s with matching costume from Shot %s.",
			p.b.ShotLabel(), p.a.ShotLabel()),
	}, true
}

type screenSide string

const (
	sideLeft  screenSide = "left"
	sideRight screenSide = "right"
)

func (s screenSide) opposite() screenSide {
	if s == sideLeft {
		return sideRight
	}
	return sideLeft
}

var (
	exitPhrases = map[screenSide][]string{
		sideLeft:  {"exits left", "walks left", "moves left"},
		sideRight: {"exits right", "walks right", "moves right"},
	}
	enterPhrases = map[screenSide][]string{
		sideLeft:  {"enters left", "enters from left"},
		sideRight: {"enters right", "enters from right"},
	}
)

// matchSpatialMismatch flags an exit and the following entry on the same
// side of frame; screen direction is kept by entering from the opposite side.
func matchSpatialMismatch(p pair) (finding, bool) {
	for _, side := range []screenSide{sideLeft, sideRight} {
		if !textutil.ContainsAny(p.textA, exitPhrases[side]) || !textutil.ContainsAny(p.textB, enterPhrases[side]) {
			continue
		}
		want := side.opposite()
		return finding{
			description: fmt.Sprintf("Spatial mismatch between Shot %s and Shot %s%s. Character exits %s, but next shot shows them entering from the %s (should be %s for proper screen direction).",
				p.a.ShotLabel(), p.b.ShotLabel(), sceneSuffix(p.a), side, side, want),
			suggestedFix: fmt.Sprintf("Regenerate Shot %s with character entering from %s to maintain screen direction continuity.",
				p.b.ShotLabel(), want),
		}, true
	}
	return finding{}, false
}

func sceneSuffix(r shot.Record) string {
	if label := r.SceneLabel(); label != "" {
		return " in " + label
	}
	return ""
}
