package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kilianp07/studyplan/core/allocator"
	"github.com/kilianp07/studyplan/core/events"
	"github.com/kilianp07/studyplan/core/logger"
	"github.com/kilianp07/studyplan/core/metrics"
	"github.com/kilianp07/studyplan/core/model"
	"github.com/kilianp07/studyplan/internal/eventbus"
)

const tracerName = "github.com/kilianp07/studyplan/core/planner"

// Manager generates plans. It holds no per-request state and is safe for
// concurrent use.
type Manager struct {
	remote  RemotePlanner
	logger  logger.Logger
	metrics metrics.MetricsSink
	bus     eventbus.Publisher[events.Event]
	tracer  trace.Tracer
	now     func() time.Time
	newID   func() string
}

// NewManager creates a manager. remote may be nil, in which case every request
// takes the local path. sink and bus are optional.
func NewManager(remote RemotePlanner, sink metrics.MetricsSink, bus eventbus.Publisher[events.Event], log logger.Logger) (*Manager, error) {
	if log == nil {
		return nil, fmt.Errorf("planner: nil logger provided to NewManager")
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Manager{
		remote:  remote,
		logger:  log,
		metrics: sink,
		bus:     bus,
		tracer:  otel.Tracer(tracerName),
		now:     time.Now,
		newID:   uuid.NewString,
	}, nil
}

// Generate returns a plan for req. It never fails: any remote failure is
// logged and replaced by the local plan.
func (m *Manager) Generate(ctx context.Context, req model.PlanRequest) model.PlanResult {
	started := m.now()
	id := m.newID()
	ctx, span := m.tracer.Start(ctx, "planner.Generate", trace.WithAttributes(
		attribute.String("plan.id", id),
		attribute.Bool("plan.remote_requested", req.UseRemote),
		attribute.Int("plan.subjects", len(req.Subjects)),
	))
	defer span.End()

	budget := req.Budget()
	var (
		res      model.PlanResult
		fallback bool
		done     bool
	)
	switch {
	case req.UseRemote && m.remote != nil:
		blocks, err := m.tryRemote(ctx, id, req, budget)
		if err == nil {
			res = model.PlanResult{Mode: model.ModeRemote, Blocks: blocks}
			done = true
		} else {
			fallback = true
			m.publish(events.StrategyEvent{PlanID: id, Action: events.ActionLocalFallback, Err: err})
		}
	case req.UseRemote:
		m.logger.Debugf("plan %s: remote planner not configured, using local path", id)
		m.publish(events.StrategyEvent{PlanID: id, Action: events.ActionLocal})
	default:
		m.publish(events.StrategyEvent{PlanID: id, Action: events.ActionLocal})
	}
	if !done {
		res = m.GenerateLocal(req.Subjects, budget, req.Focus)
	}
	res.ID = id

	elapsed := m.now().Sub(started)
	span.SetAttributes(
		attribute.String("plan.mode", res.Mode.String()),
		attribute.Int("plan.blocks", len(res.Blocks)),
	)
	m.logger.Infof("plan %s: %s mode, %d blocks, %d minutes", id, res.Mode, len(res.Blocks), res.TotalMinutes())
	m.record(metrics.PlanRecord{
		PlanID:          id,
		Mode:            res.Mode,
		RemoteRequested: req.UseRemote,
		Fallback:        fallback,
		Blocks:          len(res.Blocks),
		TotalMinutes:    res.TotalMinutes(),
		Duration:        elapsed,
		Time:            started,
	})
	m.publish(events.PlanEvent{
		PlanID:          id,
		RemoteRequested: req.UseRemote,
		Result:          res,
		Duration:        elapsed,
		Time:            started,
	})
	return res
}

// GenerateLocal runs the allocator and places its blocks from budget.Start.
func (m *Manager) GenerateLocal(subjects []model.Subject, budget model.TimeBudget, focus string) model.PlanResult {
	return GenerateLocal(subjects, budget, focus)
}

// GenerateLocal is the local path without a manager.
func GenerateLocal(subjects []model.Subject, budget model.TimeBudget, focus string) model.PlanResult {
	raw := allocator.Allocate(subjects, budget.TotalMinutes, focus)
	return model.PlanResult{Mode: model.ModeLocal, Blocks: Materialize(raw, budget.Start)}
}

func (m *Manager) tryRemote(ctx context.Context, id string, req model.PlanRequest, budget model.TimeBudget) ([]model.ScheduleBlock, error) {
	ctx, span := m.tracer.Start(ctx, "planner.Remote")
	defer span.End()

	m.publish(events.StrategyEvent{PlanID: id, Action: events.ActionRemoteAttempt})
	m.logger.Debugf("plan %s: trying remote planner", id)
	t0 := m.now()
	blocks, err := m.remote.RequestPlan(ctx, RemoteRequest{
		Subjects:   req.Subjects,
		TotalHours: req.TotalHours,
		Start:      budget.Start,
		Focus:      req.Focus,
	})
	m.recordLatency(metrics.RemoteLatency{PlanID: id, Success: err == nil, Latency: m.now().Sub(t0)})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, FailureKind(err))
		m.remoteFailed(id, err)
		return nil, err
	}
	if blocks == nil {
		blocks = []model.ScheduleBlock{}
	}
	m.publish(events.StrategyEvent{PlanID: id, Action: events.ActionRemoteSuccess})
	return blocks, nil
}

func (m *Manager) remoteFailed(id string, err error) {
	kind := FailureKind(err)
	fields := map[string]any{
		"plan_id": id,
		"kind":    kind,
		"error":   err.Error(),
	}
	status := 0
	var re *RemoteError
	if errors.As(err, &re) {
		status = re.Status
		if re.Status != 0 {
			fields["status"] = re.Status
		}
		if re.Body != "" {
			fields["body"] = re.Body
		}
		if re.RawText != "" {
			fields["raw_text"] = re.RawText
		}
	}
	m.logger.Warnw("remote planner failed, falling back to local plan", fields)
	m.publish(events.StrategyEvent{PlanID: id, Action: events.ActionRemoteFailure, Err: err})
	if r, ok := m.metrics.(metrics.RemoteFailureRecorder); ok {
		if err := r.RecordRemoteFailure(metrics.RemoteFailureEvent{PlanID: id, Kind: kind, Status: status, Time: m.now()}); err != nil {
			m.logger.Errorf("remote failure metrics error: %v", err)
		}
	}
}

func (m *Manager) record(rec metrics.PlanRecord) {
	if err := m.metrics.RecordPlan(rec); err != nil {
		m.logger.Errorf("plan metrics error: %v", err)
	}
}

func (m *Manager) recordLatency(lat metrics.RemoteLatency) {
	if r, ok := m.metrics.(metrics.RemoteLatencyRecorder); ok {
		if err := r.RecordRemoteLatency(lat); err != nil {
			m.logger.Errorf("remote latency metrics error: %v", err)
		}
	}
}

func (m *Manager) publish(e events.Event) {
	if m.bus != nil {
		m.bus.Publish(e)
	}
}
