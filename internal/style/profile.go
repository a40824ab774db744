package style

import (
	"fmt"
	"strings"
	"time"
)

// PatternType names the creative choice being tracked.
type PatternType string

const (
	PatternShotType       PatternType = "shotType"
	PatternLensChoice     PatternType = "lensChoice"
	PatternLighting       PatternType = "lighting"
	PatternColorGrade     PatternType = "colorGrade"
	PatternCameraMovement PatternType = "cameraMovement"
)

// PatternTypes lists every tracked pattern type.
var PatternTypes = []PatternType{
	PatternShotType,
	PatternLensChoice,
	PatternLighting,
	PatternColorGrade,
	PatternCameraMovement,
}

// ParsePatternType accepts a pattern type name case-insensitively.
func ParsePatternType(s string) (PatternType, error) {
	trimmed := strings.TrimSpace(s)
	for _, pt := range PatternTypes {
		if strings.EqualFold(trimmed, string(pt)) {
			return pt, nil
		}
	}
	return "", fmt.Errorf("unknown pattern type %q", s)
}

// Patterns holds one frequency table per pattern type. Lens choices are
// grouped by the shot type they were used for.
type Patterns struct {
	ShotTypes      Counts       `json:"shotTypes"`
	LensChoices    NestedCounts `json:"lensChoices"`
	Lighting       Counts       `json:"lighting"`
	ColorGrade     Counts       `json:"colorGrade"`
	CameraMovement Counts       `json:"cameraMovement"`
}

// flat returns the table for a non-nested pattern type.
func (p *Patterns) flat(pt PatternType) (*Counts, bool) {
	switch pt {
	case PatternShotType:
		return &p.ShotTypes, true
	case PatternLighting:
		return &p.Lighting, true
	case PatternColorGrade:
		return &p.ColorGrade, true
	case PatternCameraMovement:
		return &p.CameraMovement, true
	default:
		return nil, false
	}
}

// Empty reports whether no pattern has been tracked.
func (p Patterns) Empty() bool {
	return p.ShotTypes.Len() == 0 && p.LensChoices.Len() == 0 && p.Lighting.Len() == 0 &&
		p.ColorGrade.Len() == 0 && p.CameraMovement.Len() == 0
}

// Profile is the persisted record of one director's tracked choices.
type Profile struct {
	OwnerID       string    `json:"ownerId"`
	Patterns      Patterns  `json:"patterns"`
	TotalShots    int       `json:"totalShots"`
	TotalProjects int       `json:"totalProjects"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdated   time.Time `json:"lastUpdated"`
}

func newProfile(owner string, now time.Time) *Profile {
	now = now.UTC()
	return &Profile{
		OwnerID:     owner,
		CreatedAt:   now,
		LastUpdated: now,
	}
}

// Summary is the condensed view shown next to the style indicator.
type Summary struct {
	ProjectsAnalyzed int `json:"projectsAnalyzed"`
	ShotsTracked     int `json:"shotsTracked"`
}
