package main

type noteName string

const (
	noteC4  noteName = "C4"
	noteCs4 noteName = "C#4"
	noteD4  noteName = "D4"
	noteDs4 noteName = "D#4"
	noteE4  noteName = "E4"
	noteF4  noteName = "F4"
	noteFs4 noteName = "F#4"
	noteG4  noteName = "G4"
	noteGs4 noteName = "G#4"
	noteA4  noteName = "A4"
	noteAs4 noteName = "A#4"
	noteB4  noteName = "B4"
	noteC5  noteName = "C5"
	noteCs5 noteName = "C#5"
)

// frequencies in Hz
var noteFrequencies = map[noteName]float64{
	noteC4:  261.63,
	noteCs4: 277.18,
	noteD4:  293.66,
	noteDs4: 311.13,
	noteE4:  329.63,
	noteF4:  349.23,
	noteFs4: 369.99,
	noteG4:  392.00,
	noteGs4: 415.30,
	noteA4:  440.00,
	noteAs4: 466.16,
	noteB4:  493.88,
	noteC5:  523.25,
	noteCs5: 554.37,
}

var whiteKeys = []noteName{noteC4, noteD4, noteE4, noteF4, noteG4, noteA4, noteB4, noteC5}

// black keys indexed by the white key they sit to the right of
var blackKeys = map[int]noteName{
	0: noteCs4,
	1: noteDs4,
	3: noteFs4,
	4: noteGs4,
	5: noteAs4,
}

func (n noteName) valid() bool {
	_, ok := noteFrequencies[n]
	return ok
}

func (n noteName) frequency() float64 {
	return noteFrequencies[n]
}

// the letter shown on the key, without the octave
func (n noteName) label() string {
	s := string(n)
	if len(s) == 0 {
		return s
	}
	return s[:len(s)-1]
}

var animalSounds = map[noteName]string{
	noteC4: "🐱 Meow!",
	noteD4: "🐶 Woof!",
	noteE4: "🐮 Moo!",
	noteF4: "🐷 Oink!",
	noteG4: "🐸 Ribbit!",
	noteA4: "🐔 Cluck!",
	noteB4: "🦁 Roar!",
	noteC5: "🐱 Meow!",
}

func animalSound(n noteName) string {
	if s, ok := animalSounds[n]; ok {
		return s
	}
	return "🎵"
}

// computer keyboard layout: the home row plays the white keys and the row
// above plays the black keys, like a tracker
var keyboardNotes = map[string]noteName{
	"a": noteC4,
	"w": noteCs4,
	"s": noteD4,
	"e": noteDs4,
	"d": noteE4,
	"f": noteF4,
	"t": noteFs4,
	"g": noteG4,
	"y": noteGs4,
	"h": noteA4,
	"u": noteAs4,
	"j": noteB4,
	"k": noteC5,
	"o": noteCs5,
	"1": noteC4,
	"2": noteD4,
	"3": noteE4,
	"4": noteF4,
	"5": noteG4,
	"6": noteA4,
	"7": noteB4,
	"8": noteC5,
}

func noteForKey(key string) (noteName, bool) {
	n, ok := keyboardNotes[key]
	return n, ok
}

func keyForNote(n noteName) string {
	for _, k := range []string{"a", "w", "s", "e", "d", "f", "t", "g", "y", "h", "u", "j", "k", "o"} {
		if keyboardNotes[k] == n {
			return k
		}
	}
	return ""
}

var midiNoteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// maps a MIDI key number (60 = middle C) onto the playable range
func noteForMidiKey(key uint8) (noteName, bool) {
	octave := int(key)/12 - 1
	n := noteName(midiNoteNames[int(key)%12] + string(rune('0'+octave)))
	if octave < 0 || octave > 9 || !n.valid() {
		return "", false
	}
	return n, true
}
