package style

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"slate/internal/config"
	"slate/internal/kvstore"
	"slate/internal/logging"
)

// Storage keys owned by the tracker.
const (
	ProfileKey     = "style.profile"
	EnabledKey     = "style.enabled"
	OptInShownKey  = "style.opt_in_shown"
	defaultSamples = 10
)

var (
	// ErrNotEnabled is returned by profile reads while learning is disabled.
	ErrNotEnabled = errors.New("style learning is not enabled")
	// ErrInvalidProfile wraps schema and decoding failures on import.
	ErrInvalidProfile = errors.New("invalid style profile")
)

//go:embed profile.schema.json
var profileSchemaJSON []byte

var profileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	const url = "profile.schema.json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(profileSchemaJSON)); err != nil {
		return nil, fmt.Errorf("add profile schema: %w", err)
	}
	return compiler.Compile(url)
})

// Context carries optional details for TrackPattern. ShotType selects the
// lens table and is required for PatternLensChoice.
type Context struct {
	ShotType string
}

// Tracker records creative choices into a persisted Profile.
type Tracker struct {
	store      kvstore.Store
	logger     *slog.Logger
	owner      string
	minSamples int
	now        func() time.Time
}

// NewTracker constructs a tracker persisting its state in store.
func NewTracker(store kvstore.Store, cfg config.Style, logger *slog.Logger) *Tracker {
	minSamples := cfg.MinSamples
	if minSamples < 1 {
		minSamples = defaultSamples
	}
	return &Tracker{
		store:      store,
		logger:     logging.NewComponentLogger(logger, "style"),
		owner:      strings.TrimSpace(cfg.OwnerID),
		minSamples: minSamples,
		now:        time.Now,
	}
}

// IsEnabled reports whether learning is switched on. Unreadable state
// counts as disabled.
func (t *Tracker) IsEnabled(ctx context.Context) bool {
	return t.flag(ctx, EnabledKey)
}

// SetEnabled switches learning on or off. Existing profile data is kept.
func (t *Tracker) SetEnabled(ctx context.Context, enabled bool) error {
	if err := t.store.Set(ctx, EnabledKey, formatFlag(enabled)); err != nil {
		return fmt.Errorf("set style learning enabled: %w", err)
	}
	t.logger.Info("style learning toggled", logging.Bool("enabled", enabled))
	return nil
}

// HasShownOptIn reports whether the opt-in prompt was already presented.
func (t *Tracker) HasShownOptIn(ctx context.Context) bool {
	return t.flag(ctx, OptInShownKey)
}

// MarkOptInShown records that the opt-in prompt was presented.
func (t *Tracker) MarkOptInShown(ctx context.Context) error {
	if err := t.store.Set(ctx, OptInShownKey, formatFlag(true)); err != nil {
		return fmt.Errorf("mark opt-in shown: %w", err)
	}
	return nil
}

// TrackPattern counts one use of value for the given pattern type. It does
// nothing while learning is disabled or when value is empty. Failures,
// including an unreadable backend, are logged and leave the stored profile
// unchanged.
func (t *Tracker) TrackPattern(ctx context.Context, pt PatternType, value string, tc Context) {
	value = strings.TrimSpace(value)
	if value == "" || !t.IsEnabled(ctx) {
		return
	}

	logger := t.logger.With(
		logging.String(logging.FieldPatternType, string(pt)),
		logging.String("value", value))

	profile, err := t.load(ctx)
	if err != nil {
		return
	}
	switch {
	case pt == PatternLensChoice:
		shotType := strings.TrimSpace(tc.ShotType)
		if shotType == "" {
			logging.WarnWithContext(logger, "lens choice tracked without shot type",
				"pattern_track_skipped",
				logging.String(logging.FieldErrorHint, "pass the shot type the lens was used for"),
				logging.String(logging.FieldImpact, "choice not recorded"))
			return
		}
		profile.Patterns.LensChoices.Inc(shotType, value)
	default:
		table, ok := profile.Patterns.flat(pt)
		if !ok {
			logging.WarnWithContext(logger, "unknown pattern type",
				"pattern_track_skipped",
				logging.String(logging.FieldImpact, "choice not recorded"))
			return
		}
		table.Inc(value)
	}
	profile.TotalShots++
	profile.LastUpdated = t.now().UTC()

	if err := t.save(ctx, profile); err != nil {
		logging.WarnWithContext(logger, "failed to persist tracked pattern",
			"pattern_track_failed",
			logging.Error(err),
			logging.String(logging.FieldStorageKey, ProfileKey),
			logging.String(logging.FieldImpact, "choice not recorded"))
		return
	}
	logger.Debug("pattern tracked", logging.Int("total_shots", profile.TotalShots))
}

// TrackProject counts one analyzed project. Gating and failure handling
// follow TrackPattern.
func (t *Tracker) TrackProject(ctx context.Context) {
	if !t.IsEnabled(ctx) {
		return
	}
	profile, err := t.load(ctx)
	if err != nil {
		return
	}
	profile.TotalProjects++
	profile.LastUpdated = t.now().UTC()
	if err := t.save(ctx, profile); err != nil {
		logging.WarnWithContext(t.logger, "failed to persist project count",
			"project_track_failed",
			logging.Error(err),
			logging.String(logging.FieldStorageKey, ProfileKey),
			logging.String(logging.FieldImpact, "project not counted"))
	}
}

// Profile returns the stored profile, creating and persisting an empty one
// when none exists or the stored one is not valid JSON. A backend read
// failure is returned without writing anything.
func (t *Tracker) Profile(ctx context.Context) (*Profile, error) {
	if !t.IsEnabled(ctx) {
		return nil, ErrNotEnabled
	}
	profile, found, err := t.read(ctx)
	if err != nil {
		return nil, err
	}
	if found {
		return profile, nil
	}
	if err := t.save(ctx, profile); err != nil {
		logging.WarnWithContext(t.logger, "failed to persist new style profile",
			"profile_create_failed",
			logging.Error(err),
			logging.String(logging.FieldStorageKey, ProfileKey),
			logging.String(logging.FieldImpact, "profile will be recreated on next read"))
	}
	return profile, nil
}

// ResetProfile replaces the stored profile with an empty one, whether or not
// learning is enabled.
func (t *Tracker) ResetProfile(ctx context.Context) error {
	if err := t.save(ctx, t.fresh()); err != nil {
		return fmt.Errorf("reset style profile: %w", err)
	}
	t.logger.Info("style profile reset")
	return nil
}

// ExportProfile returns the profile as indented JSON.
func (t *Tracker) ExportProfile(ctx context.Context) (string, error) {
	profile, err := t.Profile(ctx)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return "", fmt.Errorf("export style profile: %w", err)
	}
	return string(data), nil
}

// ImportProfile validates data against the profile schema and replaces the
// stored profile with it.
func (t *Tracker) ImportProfile(ctx context.Context, data []byte) (*Profile, error) {
	if !t.IsEnabled(ctx) {
		return nil, ErrNotEnabled
	}
	schema, err := profileSchema()
	if err != nil {
		return nil, fmt.Errorf("load profile schema: %w", err)
	}

	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	if err := schema.Validate(instance); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	if err := t.save(ctx, &profile); err != nil {
		return nil, fmt.Errorf("import style profile: %w", err)
	}
	t.logger.Info("style profile imported",
		logging.String("owner_id", profile.OwnerID),
		logging.Int("total_shots", profile.TotalShots))
	return &profile, nil
}

// Summary returns the badge counts, or false while learning is disabled or
// the profile cannot be read. It never writes.
func (t *Tracker) Summary(ctx context.Context) (Summary, bool) {
	if !t.IsEnabled(ctx) {
		return Summary{}, false
	}
	profile, err := t.load(ctx)
	if err != nil {
		return Summary{}, false
	}
	return Summary{
		ProjectsAnalyzed: profile.TotalProjects,
		ShotsTracked:     profile.TotalShots,
	}, true
}

func (t *Tracker) fresh() *Profile {
	owner := t.owner
	if owner == "" {
		owner = uuid.NewString()
	}
	return newProfile(owner, t.now())
}

// load returns the stored profile or a fresh unsaved one. It fails only when
// the backend cannot be read.
func (t *Tracker) load(ctx context.Context) (*Profile, error) {
	profile, _, err := t.read(ctx)
	return profile, err
}

// read decodes the stored profile. It reports false, with a fresh profile,
// when the key is absent or holds invalid JSON. Backend errors are logged and
// returned so callers never overwrite a profile they could not see.
func (t *Tracker) read(ctx context.Context) (*Profile, bool, error) {
	raw, ok, err := t.store.Get(ctx, ProfileKey)
	if err != nil {
		logging.WarnWithContext(t.logger, "failed to read style profile",
			"profile_load_failed",
			logging.Error(err),
			logging.String(logging.FieldStorageKey, ProfileKey),
			logging.String(logging.FieldImpact, "stored profile left unchanged"))
		return nil, false, fmt.Errorf("read style profile: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return t.fresh(), false, nil
	}
	var profile Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		logging.WarnWithContext(t.logger, "stored style profile is not valid json",
			"profile_parse_failed",
			logging.Error(err),
			logging.String(logging.FieldStorageKey, ProfileKey),
			logging.String(logging.FieldErrorHint, "run 'slate style reset' to discard it"),
			logging.String(logging.FieldImpact, "starting from an empty profile"))
		return t.fresh(), false, nil
	}
	return &profile, true, nil
}

func (t *Tracker) save(ctx context.Context, profile *Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode style profile: %w", err)
	}
	return t.store.Set(ctx, ProfileKey, string(data))
}

func (t *Tracker) flag(ctx context.Context, key string) bool {
	raw, ok, err := t.store.Get(ctx, key)
	if err != nil {
		logging.WarnWithContext(t.logger, "failed to read style flag",
			"style_flag_load_failed",
			logging.Error(err),
			logging.String(logging.FieldStorageKey, key),
			logging.String(logging.FieldImpact, "treating flag as off"))
		return false
	}
	return ok && raw == "true"
}

func formatFlag(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
