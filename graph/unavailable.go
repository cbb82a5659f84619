//go:build !tensorflow

package graph

import (
	"housing-trainer/models"
	"housing-trainer/utils"
)

// Executor is the placeholder used when the binary is built without the
// tensorflow tag. It checks the artifact exists and then refuses to run it.
type Executor struct {
	names  NodeNames
	logger *utils.Logger
}

func NewExecutor(names NodeNames, logger *utils.Logger) *Executor {
	return &Executor{names: names, logger: logger}
}

// Available reports whether this build can execute graphs.
func Available() bool { return false }

func (e *Executor) Load(path string) error {
	if _, err := readArtifact(path); err != nil {
		return err
	}
	return errUnavailable()
}

func (e *Executor) OpenSession() error { return errUnavailable() }

func (e *Executor) Initialize(*models.FeatureBuffers) error { return errUnavailable() }

func (e *Executor) Step(*models.FeatureBuffers) error { return errUnavailable() }

func (e *Executor) ReadParameters() (models.Parameters, error) {
	return models.Parameters{}, errUnavailable()
}

func (e *Executor) Close() error { return nil }

func errUnavailable() error {
	return models.NewError(models.KindRuntime, "graph",
		"built without TensorFlow support; rebuild with -tags tensorflow and libtensorflow installed")
}
