package main

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// pianoKeyMsg is a key press on the piano, from the computer keyboard or an
// attached MIDI keyboard.
type pianoKeyMsg struct {
	note   noteName
	source string
}

type midiInput struct {
	drv    *rtmididrv.Driver
	inPort drivers.In
	stopFn func()
}

// midiNoteFromMessage only reports note-on messages that land inside the
// playable range.
func midiNoteFromMessage(msg midi.Message) (noteName, bool) {
	var ch, key, vel uint8
	if !msg.GetNoteStart(&ch, &key, &vel) {
		return "", false
	}
	return noteForMidiKey(key)
}

func listMidiInputs() ([]string, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, err
	}
	defer drv.Close()

	ins, err := drv.Ins()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(ins))
	for i, in := range ins {
		names[i] = in.String()
	}
	return names, nil
}

// findMidiInput matches "auto" (first port), an exact port name, or a case
// insensitive substring of one.
func findMidiInput(ins []drivers.In, name string) (drivers.In, bool) {
	if len(ins) == 0 {
		return nil, false
	}
	if name == "auto" {
		return ins[0], true
	}
	for _, in := range ins {
		if in.String() == name {
			return in, true
		}
	}
	for _, in := range ins {
		if strings.Contains(strings.ToLower(in.String()), strings.ToLower(name)) {
			return in, true
		}
	}
	return nil, false
}

// openMidiInput starts listening on the named port and forwards every
// playable note-on to send, which is normally tea.Program.Send.
func openMidiInput(name string, send func(tea.Msg)) (*midiInput, error) {
	log.Info("Opening MIDI input", "device", name)
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, err
	}
	ins, err := drv.Ins()
	if err != nil {
		drv.Close()
		return nil, err
	}

	found, ok := findMidiInput(ins, name)
	if !ok {
		drv.Close()
		return nil, errors.Errorf("MIDI input %q not found", name)
	}
	if err := found.Open(); err != nil {
		drv.Close()
		return nil, err
	}

	portName := found.String()
	stop, err := midi.ListenTo(found, func(msg midi.Message, timestampms int32) {
		if n, ok := midiNoteFromMessage(msg); ok {
			send(pianoKeyMsg{note: n, source: "midi"})
		}
	}, midi.HandleError(func(listenErr error) {
		log.Warn("MIDI listener error", "device", portName, "err", listenErr)
	}))
	if err != nil {
		found.Close()
		drv.Close()
		return nil, err
	}

	log.Info("MIDI input connected", "device", portName)
	return &midiInput{drv: drv, inPort: found, stopFn: stop}, nil
}

func (mi *midiInput) close() {
	if mi == nil {
		return
	}
	if mi.stopFn != nil {
		mi.stopFn()
	}
	if mi.inPort != nil {
		if err := mi.inPort.Close(); err != nil {
			log.Warn("Failed to close MIDI port", "device", mi.inPort.String(), "err", err)
		}
	}
	if mi.drv != nil {
		if err := mi.drv.Close(); err != nil {
			log.Warn("Failed to close MIDI driver", "err", err)
		}
	}
	log.Info("MIDI connection closed")
}
