//go:build tensorflow

package graph

import (
	tf "github.com/tensorflow/tensorflow/tensorflow/go"

	"housing-trainer/models"
	"housing-trainer/utils"
)

// Executor runs the graph through the TensorFlow C library.
type Executor struct {
	names  NodeNames
	logger *utils.Logger

	graph   *tf.Graph
	session *tf.Session
	ops     map[string]*tf.Operation

	// feeds are built once, on Initialize, and reused for every Step.
	feeds map[tf.Output]*tf.Tensor
}

// NewExecutor creates an Executor resolving the given node names.
func NewExecutor(names NodeNames, logger *utils.Logger) *Executor {
	return &Executor{names: names, logger: logger}
}

// Available reports whether this build can execute graphs.
func Available() bool { return true }

func (e *Executor) Load(path string) error {
	def, err := readArtifact(path)
	if err != nil {
		return err
	}

	g := tf.NewGraph()
	if err := g.Import(def, ""); err != nil {
		return models.WrapError(models.KindInvalidArtifact, "graph: import "+path, err)
	}

	if err := requireNodes(e.names, func(name string) bool { return g.Operation(name) != nil }); err != nil {
		return err
	}

	e.graph = g
	e.ops = make(map[string]*tf.Operation, 6)
	for _, name := range e.names.list() {
		e.ops[name] = g.Operation(name)
	}
	e.logger.Info("[graph] Imported %s (%d bytes)", path, len(def))
	return nil
}

func (e *Executor) OpenSession() error {
	s, err := tf.NewSession(e.graph, nil)
	if err != nil {
		return models.WrapError(models.KindRuntime, "graph: new session", err)
	}
	e.session = s
	return nil
}

func (e *Executor) Initialize(buf *models.FeatureBuffers) error {
	x, err := tf.NewTensor(buf.Features)
	if err != nil {
		return models.WrapError(models.KindRuntime, "graph: feature tensor", err)
	}
	y, err := tf.NewTensor(buf.Targets)
	if err != nil {
		return models.WrapError(models.KindRuntime, "graph: target tensor", err)
	}
	e.feeds = map[tf.Output]*tf.Tensor{
		e.ops[e.names.X].Output(0): x,
		e.ops[e.names.Y].Output(0): y,
	}
	return e.run(e.names.Init)
}

func (e *Executor) Step(*models.FeatureBuffers) error {
	return e.run(e.names.Train)
}

func (e *Executor) run(target string) error {
	_, err := e.session.Run(e.feeds, nil, []*tf.Operation{e.ops[target]})
	return models.WrapError(models.KindRuntime, "graph: run "+target, err)
}

func (e *Executor) ReadParameters() (models.Parameters, error) {
	out, err := e.session.Run(nil, []tf.Output{
		e.ops[e.names.W].Output(0),
		e.ops[e.names.B].Output(0),
	}, nil)
	if err != nil {
		return models.Parameters{}, models.WrapError(models.KindRuntime, "graph: read parameters", err)
	}

	w, err := firstScalar(out[0], e.names.W)
	if err != nil {
		return models.Parameters{}, err
	}
	b, err := firstScalar(out[1], e.names.B)
	if err != nil {
		return models.Parameters{}, err
	}
	return models.Parameters{W: w, B: b}, nil
}

func firstScalar(t *tf.Tensor, name string) (float32, error) {
	switch v := t.Value().(type) {
	case float32:
		return v, nil
	case []float32:
		if len(v) > 0 {
			return v[0], nil
		}
	}
	return 0, models.NewError(models.KindRuntime, "graph", "output %q is not a float32 value (shape %v)", name, t.Shape())
}

func (e *Executor) Close() error {
	if e.session == nil {
		return nil
	}
	err := e.session.Close()
	e.session = nil
	return models.WrapError(models.KindRuntime, "graph: close session", err)
}
