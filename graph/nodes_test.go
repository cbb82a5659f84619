package graph

import (
	"os"
	"path/filepath"
	"testing"

	"housing-trainer/models"
)

func TestRequireNodes(t *testing.T) {
	present := map[string]bool{"x": true, "y": true, "init": true, "train": true, "w": true, "b": true}
	has := func(name string) bool { return present[name] }

	if err := requireNodes(DefaultNodeNames(), has); err != nil {
		t.Fatalf("all nodes present: %v", err)
	}

	delete(present, "train")
	err := requireNodes(DefaultNodeNames(), has)
	if models.KindOf(err) != models.KindGraphIntegrity {
		t.Fatalf("kind: got %v, want graph_integrity", models.KindOf(err))
	}
	if err.Error() != `graph: node "train" not found` {
		t.Errorf("message: got %q", err.Error())
	}
}

func TestRequireNodesRejectsEmptyName(t *testing.T) {
	names := DefaultNodeNames()
	names.B = ""
	err := requireNodes(names, func(string) bool { return true })
	if models.KindOf(err) != models.KindGraphIntegrity {
		t.Errorf("kind: got %v, want graph_integrity", models.KindOf(err))
	}
}

func TestReadArtifact(t *testing.T) {
	dir := t.TempDir()

	_, err := readArtifact(filepath.Join(dir, "missing.pb"))
	if models.KindOf(err) != models.KindNotFound {
		t.Errorf("missing file: kind got %v, want not_found", models.KindOf(err))
	}

	empty := filepath.Join(dir, "empty.pb")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatal(err)
	}
	_, err = readArtifact(empty)
	if models.KindOf(err) != models.KindInvalidArtifact {
		t.Errorf("empty file: kind got %v, want invalid_artifact", models.KindOf(err))
	}

	good := filepath.Join(dir, "model.pb")
	if err := os.WriteFile(good, []byte{0x0a, 0x01}, 0644); err != nil {
		t.Fatal(err)
	}
	def, err := readArtifact(good)
	if err != nil || len(def) != 2 {
		t.Errorf("good file: got %v bytes, err %v", len(def), err)
	}
}
