package sim

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"lift-simulator/internal/aero"
	"lift-simulator/internal/env"
)

type stateReq struct {
	reply chan Frame
}

type subscribeReq struct {
	ch chan Frame
}

// FrameRecorder receives every computed frame.
type FrameRecorder interface {
	Record(v any) error
}

// Engine is the frame scheduler. It runs the coefficient schedule once per
// tick on its own goroutine; all other access goes through channels.
type Engine struct {
	schedule    *aero.Schedule
	environment env.Environment
	recorder    FrameRecorder
	log         *logrus.Entry

	// Actor channels
	cmdCh       chan Command
	stateReqCh  chan stateReq
	subscribeCh chan subscribeReq
	unsubCh     chan chan Frame

	tickHz float64

	// Owned by Run, or by the caller of Step when Run is not active.
	initial aero.Snapshot
	base    aero.Snapshot
	last    Frame
	frozen  bool
	seq     uint64
}

type Config struct {
	TickHz float64

	Schedule    *aero.Schedule
	Environment env.Environment
	Recorder    FrameRecorder

	// Initial are the inputs used until the first SetInputsCommand and
	// after a reset.
	Initial aero.Snapshot

	Logger *logrus.Logger
}

func New(cfg Config) *Engine {
	if cfg.TickHz <= 0 {
		cfg.TickHz = 50
	}
	if cfg.Environment == nil {
		cfg.Environment = env.NoOp
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	return &Engine{
		schedule:    cfg.Schedule,
		environment: cfg.Environment,
		recorder:    cfg.Recorder,
		log:         cfg.Logger.WithField("component", "sim"),
		cmdCh:       make(chan Command, 128),
		stateReqCh:  make(chan stateReq, 32),
		subscribeCh: make(chan subscribeReq, 32),
		unsubCh:     make(chan chan Frame, 32),
		tickHz:      cfg.TickHz,
		initial:     cfg.Initial,
		base:        cfg.Initial,
	}
}

func (e *Engine) Submit(cmd Command) {
	select {
	case e.cmdCh <- cmd:
	default:
		e.log.WithField("command", cmd.Type()).Warn("command queue full, dropping command")
	}
}

func (e *Engine) GetState(ctx context.Context) (Frame, error) {
	req := stateReq{reply: make(chan Frame, 1)}
	select {
	case e.stateReqCh <- req:
	case <-ctx.Done():
		return Frame{}, ctx.Err()
	}

	select {
	case st := <-req.reply:
		return st, nil
	case <-ctx.Done():
		return Frame{}, ctx.Err()
	}
}

func (e *Engine) Subscribe(ctx context.Context) (<-chan Frame, func()) {
	ch := make(chan Frame, 32)

	select {
	case e.subscribeCh <- subscribeReq{ch: ch}:
	case <-ctx.Done():
		close(ch)
		return ch, func() {}
	}

	unsub := func() {
		select {
		case e.unsubCh <- ch:
		default:
		}
	}
	return ch, unsub
}

// Step computes one frame from the current base inputs, dt seconds after
// the previous one. It is what Run does on every tick and must not be
// called while Run is active.
func (e *Engine) Step(dt float64, ts time.Time) Frame {
	if e.frozen {
		return e.last
	}

	e.seq++
	f := Frame{Seq: e.seq, TS: ts, Inputs: e.base}

	f.Warning = e.environment.Apply(dt, &f.Inputs)

	if e.schedule != nil {
		var ok bool
		f.Results, ok = e.schedule.Run(&f.Inputs, &f.Outputs, make([]aero.Result, 0, e.schedule.Len()))
		if !ok {
			e.log.WithField("seq", f.Seq).Warn("coefficient model reported an invalid result")
		}
		f.Terms = e.schedule.Breakdown(nil)
	}

	if e.recorder != nil {
		if err := e.recorder.Record(f); err != nil {
			e.log.WithError(err).Error("recording frame failed, recorder disabled")
			e.recorder = nil
		}
	}

	if f.Warning != "" && f.Warning != e.last.Warning {
		e.log.WithField("seq", f.Seq).Warn(f.Warning)
	}
	e.last = f
	return f
}

// Apply executes a command immediately. Run calls it for every submitted
// command; use it directly only together with Step, never while Run is
// active.
func (e *Engine) Apply(cmd Command) {
	switch c := cmd.(type) {
	case SetInputsCommand:
		e.base = c.Inputs

	case FreezeCommand:
		e.frozen = true
		e.last.Frozen = true

	case ResumeCommand:
		e.frozen = false
		e.last.Frozen = false

	case ResetCommand:
		e.base = e.initial
		if r, ok := e.environment.(interface{ Reset() }); ok {
			r.Reset()
		}
	}
	e.log.WithField("command", cmd.Type()).Debug("command applied")
}

func (e *Engine) Run(ctx context.Context) error {
	now := time.Now()

	subs := map[chan Frame]struct{}{}

	publish := func(f Frame) {
		for ch := range subs {
			select {
			case ch <- f:
			default:
				// slow subscriber -> drop frame
			}
		}
	}

	tick := time.NewTicker(time.Duration(float64(time.Second) / e.tickHz))
	defer tick.Stop()

	e.log.WithField("hz", e.tickHz).Info("frame loop started")

	for {
		select {
		case <-ctx.Done():
			for ch := range subs {
				close(ch)
			}
			e.log.WithField("frames", e.seq).Info("frame loop stopped")
			return nil

		case req := <-e.subscribeCh:
			subs[req.ch] = struct{}{}
			req.ch <- e.last

		case ch := <-e.unsubCh:
			if _, ok := subs[ch]; ok {
				delete(subs, ch)
				close(ch)
			}

		case req := <-e.stateReqCh:
			req.reply <- e.last

		case cmd := <-e.cmdCh:
			e.Apply(cmd)

		case t := <-tick.C:
			dt := t.Sub(now).Seconds()
			if dt <= 0 {
				dt = 1.0 / e.tickHz
			}
			now = t

			if e.frozen {
				continue
			}
			publish(e.Step(dt, t))
		}
	}
}
