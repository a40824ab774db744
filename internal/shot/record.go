package shot

import (
	"strconv"
)

// Record identifies one production unit in timeline order. Only Description
// is inspected by the continuity heuristics; the rest is used for grouping
// and display.
type Record struct {
	ID          string `json:"id" yaml:"id"`
	SceneNumber *int   `json:"sceneNumber,omitempty" yaml:"sceneNumber,omitempty"`
	ShotNumber  *int   `json:"shotNumber,omitempty" yaml:"shotNumber,omitempty"`
	Description string `json:"description" yaml:"description"`
}

// ShotLabel returns the display shot number, or "?" when unknown.
func (r Record) ShotLabel() string {
	if r.ShotNumber == nil {
		return "?"
	}
	return strconv.Itoa(*r.ShotNumber)
}

// SceneLabel returns "Scene N", or "" when the shot has no scene.
func (r Record) SceneLabel() string {
	if r.SceneNumber == nil {
		return ""
	}
	return "Scene " + strconv.Itoa(*r.SceneNumber)
}

// SameSceneAs reports whether r and other may be compared for continuity.
// Shots without a scene number are compared with anything.
func (r Record) SameSceneAs(other Record) bool {
	if r.SceneNumber == nil || other.SceneNumber == nil {
		return true
	}
	return *r.SceneNumber == *other.SceneNumber
}

// Int returns a pointer to v, for building records in code.
func Int(v int) *int {
	return &v
}
