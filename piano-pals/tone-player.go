package main

import (
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
)

const (
	toneSampleRate = beep.SampleRate(44100)
	noteVolume     = 0.8
)

var toneFormat = beep.Format{SampleRate: toneSampleRate, NumChannels: 2, Precision: 2}

type jingle int

const (
	jingleSuccess jingle = iota
	jingleFail
	jingleStar
)

// tonePlayer is fire-and-forget: nothing it does is reported back to the
// engines.
type tonePlayer interface {
	playNote(n noteName, duration time.Duration)
	playJingle(j jingle)
	applySettings(s settingsRecord)
	clear()
}

// oscillator returns one sample for the given phase in cycles
type oscillator func(phase float64) float64

func sineWave(phase float64) float64 {
	return math.Sin(2 * math.Pi * phase)
}

func triangleWave(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4*math.Abs(p-0.5) - 1
}

// envelope returns the gain at t seconds
type envelope func(t float64) float64

// expRamp mirrors an exponential ramp between two gains
func expRamp(from float64, to float64, t float64, start float64, end float64) float64 {
	if end <= start {
		return to
	}
	return from * math.Pow(to/from, (t-start)/(end-start))
}

// piano-like attack then decay on the fundamental
func fundamentalEnvelope(duration float64) envelope {
	return func(t float64) float64 {
		switch {
		case t < 0.02:
			return noteVolume * 0.7 * t / 0.02
		case t < 0.1:
			return expRamp(noteVolume*0.7, noteVolume*0.4, t, 0.02, 0.1)
		case t < duration:
			return expRamp(noteVolume*0.4, 0.001, t, 0.1, duration)
		default:
			return 0
		}
	}
}

// the octave harmonic fades out twice as fast
func harmonicEnvelope(duration float64) envelope {
	return func(t float64) float64 {
		half := duration * 0.5
		switch {
		case t < 0.01:
			return noteVolume * 0.3 * t / 0.01
		case t < half:
			return expRamp(noteVolume*0.3, 0.001, t, 0.01, half)
		default:
			return 0
		}
	}
}

// quick sine blip used by the jingles
func blipEnvelope(gain float64, length float64) envelope {
	return func(t float64) float64 {
		if t >= length {
			return 0
		}
		return expRamp(gain, 0.001, t, 0, length)
	}
}

type partial struct {
	osc  oscillator
	freq func(t float64) float64
	env  envelope
}

func constantFreq(f float64) func(float64) float64 {
	return func(float64) float64 { return f }
}

// toneStreamer renders a sum of partials for a fixed number of samples
type toneStreamer struct {
	sampleRate beep.SampleRate
	partials   []partial
	phases     []float64
	pos        int
	total      int
}

func newToneStreamer(sr beep.SampleRate, length time.Duration, partials ...partial) *toneStreamer {
	return &toneStreamer{
		sampleRate: sr,
		partials:   partials,
		phases:     make([]float64, len(partials)),
		total:      sr.N(length),
	}
}

func (s *toneStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= s.total {
		return 0, false
	}
	dt := 1 / float64(s.sampleRate)
	for i := range samples {
		if s.pos >= s.total {
			break
		}
		t := float64(s.pos) * dt
		v := 0.0
		for j, p := range s.partials {
			v += p.osc(s.phases[j]) * p.env(t)
			s.phases[j] += p.freq(t) * dt
		}
		samples[i] = [2]float64{v, v}
		s.pos++
		n++
	}
	return n, true
}

func (s *toneStreamer) Err() error {
	return nil
}

func noteStreamer(sr beep.SampleRate, n noteName, duration time.Duration) beep.Streamer {
	f := n.frequency()
	d := duration.Seconds()
	return newToneStreamer(sr, duration,
		partial{osc: triangleWave, freq: constantFreq(f), env: fundamentalEnvelope(d)},
		partial{osc: sineWave, freq: constantFreq(f * 2), env: harmonicEnvelope(d)},
	)
}

// staggered arpeggio of sine blips
func arpeggio(sr beep.SampleRate, freqs []float64, offset time.Duration, length time.Duration, gain float64) beep.Streamer {
	voices := make([]beep.Streamer, len(freqs))
	for i, f := range freqs {
		blip := newToneStreamer(sr, length,
			partial{osc: sineWave, freq: constantFreq(f), env: blipEnvelope(gain, length.Seconds())})
		voices[i] = beep.Seq(beep.Silence(sr.N(offset*time.Duration(i))), blip)
	}
	return beep.Mix(voices...)
}

func jingleStreamer(sr beep.SampleRate, j jingle) beep.Streamer {
	switch j {
	case jingleSuccess:
		return arpeggio(sr, []float64{523.25, 659.25, 783.99}, 100*time.Millisecond, 300*time.Millisecond, 0.3)
	case jingleStar:
		return arpeggio(sr, []float64{880, 1108.73, 1318.51}, 50*time.Millisecond, 400*time.Millisecond, 0.2)
	default:
		// falling sweep from 200Hz to 150Hz
		sweepLength := 0.2
		sweep := func(t float64) float64 {
			if t >= sweepLength {
				return 150
			}
			return 200 - 50*t/sweepLength
		}
		return newToneStreamer(sr, 300*time.Millisecond,
			partial{osc: sineWave, freq: sweep, env: blipEnvelope(0.2, sweepLength)})
	}
}

// withVolume applies the user's linear volume on top of a stream
func withVolume(s beep.Streamer, settings settingsRecord) *effects.Volume {
	vol := &effects.Volume{Streamer: s, Base: 2}
	if !settings.SoundEnabled || settings.Volume <= 0 {
		vol.Silent = true
		return vol
	}
	vol.Volume = math.Log2(math.Min(settings.Volume, 1))
	return vol
}

// noopTonePlayer is used when no audio device is available
type noopTonePlayer struct{}

func (noopTonePlayer) playNote(noteName, time.Duration) {}
func (noopTonePlayer) playJingle(jingle)                {}
func (noopTonePlayer) applySettings(settingsRecord)     {}
func (noopTonePlayer) clear()                           {}
