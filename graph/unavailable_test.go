//go:build !tensorflow

package graph

import (
	"os"
	"path/filepath"
	"testing"

	"housing-trainer/models"
	"housing-trainer/utils"
)

func TestExecutorWithoutTensorflow(t *testing.T) {
	if Available() {
		t.Fatal("Available should be false without the tensorflow tag")
	}
	e := NewExecutor(DefaultNodeNames(), utils.Discard())

	err := e.Load(filepath.Join(t.TempDir(), "missing.pb"))
	if models.KindOf(err) != models.KindNotFound {
		t.Errorf("missing artifact: kind got %v, want not_found", models.KindOf(err))
	}

	path := filepath.Join(t.TempDir(), "model.pb")
	if err := os.WriteFile(path, []byte{0x0a}, 0644); err != nil {
		t.Fatal(err)
	}
	if models.KindOf(e.Load(path)) != models.KindRuntime {
		t.Error("existing artifact should fail with a runtime error")
	}
	if e.Close() != nil {
		t.Error("Close should be a no-op")
	}
}
