package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"slate/internal/shot"
)

// Shot builds a record in scene 1 with the given id and description.
func Shot(id, description string) shot.Record {
	return shot.Record{ID: id, SceneNumber: shot.Int(1), Description: description}
}

// WriteShots writes records as a JSON shot list under the test temp dir and
// returns its path.
func WriteShots(t testing.TB, records []shot.Record) string {
	t.Helper()

	data, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("marshal shots: %v", err)
	}
	path := filepath.Join(t.TempDir(), "shots.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
