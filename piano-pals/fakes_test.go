package main

import (
	"fmt"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
)

type fakePlayedNote struct {
	note     noteName
	duration time.Duration
}

type fakeTonePlayer struct {
	notes    []fakePlayedNote
	jingles  []jingle
	settings []settingsRecord
	clears   int
	mu       sync.Mutex
}

func (p *fakeTonePlayer) playNote(n noteName, duration time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notes = append(p.notes, fakePlayedNote{n, duration})
}

func (p *fakeTonePlayer) playJingle(j jingle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jingles = append(p.jingles, j)
}

func (p *fakeTonePlayer) applySettings(s settingsRecord) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.settings = append(p.settings, s)
}

func (p *fakeTonePlayer) clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clears++
}

func (p *fakeTonePlayer) jingleCount(j jingle) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	count := 0
	for _, played := range p.jingles {
		if played == j {
			count++
		}
	}
	return count
}

// scriptedRandom replays fixed values so game sessions are repeatable
type scriptedRandom struct {
	ints     []int
	floats   []float64
	intPos   int
	floatPos int
}

func (r *scriptedRandom) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.intPos%len(r.ints)]
	r.intPos++
	return v % n
}

func (r *scriptedRandom) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[r.floatPos%len(r.floats)]
	r.floatPos++
	return v
}

var testEpoch = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

// scheduled returns the first timer message among the effects, stamped with
// the time it would fire relative to now.
func scheduled(effects []effect, now time.Time) (timerMsg, bool) {
	for _, eff := range effects {
		if s, ok := eff.(scheduleEffect); ok {
			msg := s.msg
			msg.at = now.Add(s.after)
			return msg, true
		}
	}
	return timerMsg{}, false
}

func scheduledEvents(effects []effect) []timerEvent {
	var events []timerEvent
	for _, eff := range effects {
		if s, ok := eff.(scheduleEffect); ok {
			events = append(events, s.msg.event)
		}
	}
	return events
}

func hasJingle(effects []effect, j jingle) bool {
	for _, eff := range effects {
		if p, ok := eff.(playJingleEffect); ok && p.jingle == j {
			return true
		}
	}
	return false
}

func findEffect[T effect](effects []effect) (T, bool) {
	for _, eff := range effects {
		if e, ok := eff.(T); ok {
			return e, true
		}
	}
	var zero T
	return zero, false
}

func execCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func sendCmd(tm *teatest.TestModel, cmd tea.Cmd) {
	msg := execCmd(cmd)
	if msg != nil {
		tm.Send(msg)
	}
}

func doWaitFor(condition func() (bool, error)) error {
	wf := teatest.WaitingForContext{
		Duration:      2 * time.Second,
		CheckInterval: 25 * time.Millisecond, //nolint: gomnd
	}
	start := time.Now()
	for time.Since(start) <= wf.Duration {
		result, err := condition()
		if err != nil {
			return err
		}
		if result {
			return nil
		}
		time.Sleep(wf.CheckInterval)
	}
	return fmt.Errorf("WaitFor: condition not met after %s", wf.Duration)
}

func newTestServices(t *testing.T) (appServices, *fakeTonePlayer, *recordStore) {
	t.Helper()
	tones := &fakeTonePlayer{}
	store := openMemoryStore()
	store.now = func() time.Time { return testEpoch }
	return appServices{
		store:  store,
		tones:  tones,
		runner: effectRunner{tones: tones, store: store},
		rng:    &scriptedRandom{},
		now:    func() time.Time { return testEpoch },
	}, tones, store
}
