package services

import (
	"context"
	"math"

	"housing-trainer/models"
	"housing-trainer/utils"
)

// GraphExecutor runs a pre-trained linear-regression graph.
type GraphExecutor interface {
	// Load imports the graph at path and resolves its named nodes.
	Load(path string) error
	OpenSession() error
	Initialize(buf *models.FeatureBuffers) error
	Step(buf *models.FeatureBuffers) error
	ReadParameters() (models.Parameters, error)
	Close() error
}

// RunnerState tracks progress through a training run.
type RunnerState int

const (
	StateUnloaded RunnerState = iota
	StateGraphLoaded
	StateSessionOpen
	StateInitialized
	StateTrained
	StateEvaluated
	StateTerminal
	StateFailed
)

var stateNames = [...]string{
	"unloaded", "graph_loaded", "session_open", "initialized",
	"trained", "evaluated", "terminal", "failed",
}

func (s RunnerState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "invalid"
}

// RunnerConfig holds the model location, step count and reference values.
type RunnerConfig struct {
	ModelPath string
	Steps     int
	ExpectedW float32
	ExpectedB float32
	Tolerance float64
}

// ModelRunner drives a GraphExecutor through init, training and evaluation.
type ModelRunner struct {
	exec   GraphExecutor
	cfg    RunnerConfig
	logger *utils.Logger
	state  RunnerState
}

// NewModelRunner creates a runner in the Unloaded state.
func NewModelRunner(exec GraphExecutor, cfg RunnerConfig, logger *utils.Logger) *ModelRunner {
	return &ModelRunner{exec: exec, cfg: cfg, logger: logger}
}

// State returns the current state.
func (m *ModelRunner) State() RunnerState {
	return m.state
}

// Run loads the graph, initialises it, trains for cfg.Steps steps and checks
// the learned parameters. Parameters outside tolerance are reported, not returned
// as errors.
func (m *ModelRunner) Run(ctx context.Context, buf *models.FeatureBuffers) (result *models.TrainingResult, err error) {
	loaded := false
	defer func() {
		if err != nil {
			m.logger.Error("[runner] Failed in state %s: %v", m.state, err)
			m.state = StateFailed
		}
		if loaded {
			if cerr := m.exec.Close(); cerr != nil {
				m.logger.Warn("[runner] Closing session: %v", cerr)
			}
		}
	}()

	if err := m.exec.Load(m.cfg.ModelPath); err != nil {
		return nil, err
	}
	loaded = true
	m.transition(StateGraphLoaded)

	if err := m.exec.OpenSession(); err != nil {
		return nil, err
	}
	m.transition(StateSessionOpen)

	if err := m.exec.Initialize(buf); err != nil {
		return nil, err
	}
	m.transition(StateInitialized)

	for step := 0; step < m.cfg.Steps; step++ {
		if err := ctx.Err(); err != nil {
			return nil, models.WrapError(models.KindRuntime, "runner: interrupted", err)
		}
		if err := m.exec.Step(buf); err != nil {
			return nil, err
		}
		if (step+1)%50 == 0 {
			m.logger.Debug("[runner] Completed %d/%d steps", step+1, m.cfg.Steps)
		}
	}
	m.transition(StateTrained)

	params, err := m.exec.ReadParameters()
	if err != nil {
		return nil, err
	}
	m.transition(StateEvaluated)

	result = &models.TrainingResult{
		Steps:      m.cfg.Steps,
		Parameters: params,
		Checks: []models.ParameterCheck{
			check("w", m.cfg.ExpectedW, params.W, m.cfg.Tolerance),
			check("b", m.cfg.ExpectedB, params.B, m.cfg.Tolerance),
		},
	}
	m.transition(StateTerminal)
	result.FinalState = m.state.String()
	return result, nil
}

func (m *ModelRunner) transition(to RunnerState) {
	m.logger.Debug("[runner] %s -> %s", m.state, to)
	m.state = to
}

func check(name string, expected, got float32, tolerance float64) models.ParameterCheck {
	return models.ParameterCheck{
		Name:      name,
		Expected:  expected,
		Got:       got,
		Tolerance: tolerance,
		Pass:      math.Abs(float64(expected)-float64(got)) < tolerance,
	}
}
