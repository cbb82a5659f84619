// Package graph executes the pre-trained linear-regression graph
// produced by scripts/gen_model.py.
package graph

import (
	"errors"
	"fmt"
	"os"

	"housing-trainer/models"
)

// NodeNames are the graph entry points the executor resolves by name.
type NodeNames struct {
	X     string
	Y     string
	Init  string
	Train string
	W     string
	B     string
}

// DefaultNodeNames matches the names written by the model generator.
func DefaultNodeNames() NodeNames {
	return NodeNames{X: "x", Y: "y", Init: "init", Train: "train", W: "w", B: "b"}
}

// list returns the names in resolution order.
func (n NodeNames) list() []string {
	return []string{n.X, n.Y, n.Init, n.Train, n.W, n.B}
}

// requireNodes reports the first name for which has returns false.
func requireNodes(names NodeNames, has func(string) bool) error {
	for _, name := range names.list() {
		if name == "" {
			return models.NewError(models.KindGraphIntegrity, "graph", "empty node name in configuration")
		}
		if !has(name) {
			return models.NewError(models.KindGraphIntegrity, "graph", "node %q not found", name)
		}
	}
	return nil
}

// readArtifact loads the serialized GraphDef from disk.
func readArtifact(path string) ([]byte, error) {
	def, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, models.NewError(models.KindNotFound, "", "File %s not found!", path)
		}
		return nil, models.WrapError(models.KindInvalidArtifact, fmt.Sprintf("graph: read %s", path), err)
	}
	if len(def) == 0 {
		return nil, models.NewError(models.KindInvalidArtifact, "graph", "%s is empty", path)
	}
	return def, nil
}
