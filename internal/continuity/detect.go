package continuity

import "slate/internal/shot"

// DetectLightingJump reports a dark/bright reversal between a and b, or nil.
func DetectLightingJump(a, b shot.Record) *Issue {
	return ruleFor(KindLightingJump).apply(newPair(a, b))
}

// DetectCostumeChange reports differing costume colors between a and b, or nil.
func DetectCostumeChange(a, b shot.Record) *Issue {
	return ruleFor(KindCostumeChange).apply(newPair(a, b))
}

// DetectSpatialMismatch reports a screen-direction violation between a and b, or nil.
func DetectSpatialMismatch(a, b shot.Record) *Issue {
	return ruleFor(KindSpatialMismatch).apply(newPair(a, b))
}
