package chaos

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

// Session hosts the chaos engine inside one live game run. It owns the State
// and the active-mutation set exclusively; neither is shared across sessions.
//
// Scheduling is cooperative and single-threaded: the loop that advances the
// session clock calls Advance with the elapsed session time, and reverts and
// triggers are processed in the order their timers elapse. Session is not
// safe for concurrent use.
type Session struct {
	engine *Engine
	state  *State
	log    logrus.FieldLogger

	active      []*activeMutation
	lastTrigger time.Duration
	closed      bool

	// Runtime-layer callbacks, matching the hosting loop's fixed callback
	// set. Either may be nil.
	OnActivate   func(Mutation)
	OnDeactivate func(Mutation)
}

type activeMutation struct {
	mutation  Mutation
	changes   []Change
	appliedAt time.Duration
	revertAt  time.Duration // negative for permanent
}

// NewSession wires an engine to a fresh neutral state.
func NewSession(eng *Engine, log logrus.FieldLogger) *Session {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Session{
		engine: eng,
		state:  NewState(),
		log:    log.WithField("component", "chaos"),
		// A session starts a full period before the first trigger.
		lastTrigger: 0,
	}
}

// State exposes the session's live state for the hosting runtime.
func (s *Session) State() *State {
	return s.state
}

// Engine exposes the underlying chaos engine.
func (s *Session) Engine() *Engine {
	return s.engine
}

// ActiveIDs returns the ids of currently applied mutations in activation
// order.
func (s *Session) ActiveIDs() []string {
	ids := make([]string, len(s.active))
	for i, a := range s.active {
		ids[i] = a.mutation.ID
	}
	return ids
}

// ActiveCount returns the size of the active-mutation set.
func (s *Session) ActiveCount() int {
	return len(s.active)
}

// Advance moves the session to the given elapsed time: due reverts are
// processed first, ordered by their revert deadline, then at most one new
// trigger fires. The active-set size never exceeds the tier cap; a trigger
// that would exceed it is skipped, not queued.
func (s *Session) Advance(elapsed time.Duration) {
	if s.closed {
		return
	}

	s.revertDue(elapsed)

	if !s.engine.ShouldTrigger(elapsed, s.lastTrigger) {
		return
	}
	// The period is consumed whether or not a mutation lands, so a full
	// active set does not cause a burst when it drains.
	s.lastTrigger = elapsed

	mutation, ok := s.engine.SelectNextMutation(s.ActiveIDs())
	if !ok {
		return
	}

	tier := TierFor(s.engine.Level())
	if mutation.Permanent() {
		s.replacePermanent(mutation.Category)
	}
	if !tier.AllowsMore(len(s.active)) {
		s.log.WithField("mutation", mutation.ID).Debug("active set full, trigger skipped")
		return
	}

	s.apply(mutation, elapsed)
}

func (s *Session) apply(m Mutation, elapsed time.Duration) {
	changes := m.Changes()
	for _, c := range changes {
		c.Apply(s.state)
	}

	revertAt := time.Duration(-1)
	if !m.Permanent() {
		revertAt = elapsed + m.Duration
	}
	s.active = append(s.active, &activeMutation{
		mutation:  m,
		changes:   changes,
		appliedAt: elapsed,
		revertAt:  revertAt,
	})

	s.log.WithFields(logrus.Fields{
		"mutation": m.ID,
		"category": m.Category,
		"active":   len(s.active),
	}).Info("mutation applied")

	if s.OnActivate != nil {
		s.OnActivate(m)
	}
}

// revertDue reverts every finite mutation whose deadline has passed, in
// deadline order.
func (s *Session) revertDue(elapsed time.Duration) {
	var due []*activeMutation
	for _, a := range s.active {
		if a.revertAt >= 0 && elapsed >= a.revertAt {
			due = append(due, a)
		}
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].revertAt < due[j].revertAt })
	for _, a := range due {
		s.revert(a)
	}
}

// revert restores exactly the fields the mutation's diff recorded, in
// reverse application order, and removes it from the active set.
func (s *Session) revert(a *activeMutation) {
	for i := len(a.changes) - 1; i >= 0; i-- {
		a.changes[i].Revert(s.state)
	}
	s.remove(a)

	s.log.WithFields(logrus.Fields{
		"mutation": a.mutation.ID,
		"active":   len(s.active),
	}).Info("mutation reverted")

	if s.OnDeactivate != nil {
		s.OnDeactivate(a.mutation)
	}
}

// replacePermanent ends an active permanent mutation of the same category;
// permanents only end by replacement or session teardown.
func (s *Session) replacePermanent(c Category) {
	for _, a := range s.active {
		if a.mutation.Permanent() && a.mutation.Category == c {
			s.revert(a)
			return
		}
	}
}

func (s *Session) remove(target *activeMutation) {
	for i, a := range s.active {
		if a == target {
			s.active = append(s.active[:i], s.active[i+1:]...)
			return
		}
	}
}

// Close tears the session down: every pending revert timer is cancelled and
// every still-active mutation, permanent or not, is force-reverted so no
// perturbation leaks into state inspected after teardown. Close is
// idempotent.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true

	for len(s.active) > 0 {
		s.revert(s.active[0])
	}
	s.log.Info("chaos session closed")
}
