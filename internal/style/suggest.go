package style

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// SuggestionContext describes the shot a suggestion is requested for. Every
// field is optional. Lighting is accepted for callers that know it but does
// not influence the result.
type SuggestionContext struct {
	SceneEmotion string
	ShotType     string
	Lighting     string
}

// Suggestion builds a personalized hint from the learned profile. It reports
// false while learning is disabled, while fewer than the configured minimum
// of shots has been tracked, or when no table has data to draw from.
func (t *Tracker) Suggestion(ctx context.Context, sc SuggestionContext) (string, bool) {
	if !t.IsEnabled(ctx) {
		return "", false
	}
	profile, err := t.load(ctx)
	if err != nil || profile.TotalShots < t.minSamples {
		return "", false
	}

	var lines []string
	if shotType := strings.TrimSpace(sc.ShotType); shotType != "" {
		if top, ok := profile.Patterns.LensChoices.Get(shotType).Top(); ok {
			lines = append(lines, fmt.Sprintf("You typically use %s for %s shots (%d%% of the time)",
				top.Value, shotType, share(top.Count, profile.TotalShots)))
		}
	}
	if strings.TrimSpace(sc.SceneEmotion) != "" {
		if top, ok := profile.Patterns.Lighting.Top(); ok {
			lines = append(lines, fmt.Sprintf("Based on your style, you favor %s lighting (%d%% of your shots)",
				top.Value, share(top.Count, profile.TotalShots)))
		}
	}
	if top, ok := profile.Patterns.ColorGrade.Top(); ok {
		lines = append(lines, fmt.Sprintf("Your color grading is usually %s (%d%% of shots)",
			top.Value, share(top.Count, profile.TotalShots)))
	}

	if len(lines) == 0 {
		return "", false
	}
	return strings.Join(lines, "\n\n"), true
}

// share returns count as a whole percentage of total, rounded half up.
func share(count, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}
