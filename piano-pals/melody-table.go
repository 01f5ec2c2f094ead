package main

import (
	"sort"
	"time"
)

type melodyID string

type melody struct {
	id    melodyID
	name  string
	notes []noteName
	tempo time.Duration // how long each note is held during playback
}

type lesson struct {
	id            string
	title         string
	description   string
	melody        melodyID
	requiredLevel int
}

type librarySong struct {
	melody  melodyID
	title   string
	premium bool
}

func notes(names ...noteName) []noteName {
	return names
}

var melodies = map[melodyID]melody{
	"twinkle-twinkle": {
		name:  "Twinkle Twinkle",
		notes: notes(noteC4, noteC4, noteG4, noteG4, noteA4, noteA4, noteG4, noteF4, noteF4, noteE4, noteE4, noteD4, noteD4, noteC4),
		tempo: 450 * time.Millisecond,
	},
	"mary-lamb": {
		name:  "Mary Had A Little Lamb",
		notes: notes(noteE4, noteD4, noteC4, noteD4, noteE4, noteE4, noteE4, noteD4, noteD4, noteD4, noteE4, noteG4, noteG4),
		tempo: 400 * time.Millisecond,
	},
	"happy-birthday": {
		name:  "Happy Birthday",
		notes: notes(noteC4, noteC4, noteD4, noteC4, noteF4, noteE4, noteC4, noteC4, noteD4, noteC4, noteG4, noteF4),
		tempo: 450 * time.Millisecond,
	},
	"ode-to-joy": {
		name:  "Ode to Joy",
		notes: notes(noteE4, noteE4, noteF4, noteG4, noteG4, noteF4, noteE4, noteD4, noteC4, noteC4, noteD4, noteE4, noteE4, noteD4, noteD4),
		tempo: 400 * time.Millisecond,
	},
	"jingle-bells": {
		name: "Jingle Bells",
		notes: notes(noteE4, noteE4, noteE4, noteE4, noteE4, noteE4, noteE4, noteG4, noteC4, noteD4, noteE4, noteF4,
			noteF4, noteF4, noteF4, noteE4, noteE4, noteE4, noteE4, noteD4, noteD4, noteE4, noteD4, noteG4),
		tempo: 300 * time.Millisecond,
	},
	"hot-cross-buns": {
		name:  "Hot Cross Buns",
		notes: notes(noteE4, noteD4, noteC4, noteE4, noteD4, noteC4, noteC4, noteC4, noteC4, noteC4, noteD4, noteD4, noteD4, noteD4, noteE4, noteD4, noteC4),
		tempo: 400 * time.Millisecond,
	},
	"london-bridge": {
		name: "London Bridge",
		notes: notes(noteG4, noteA4, noteG4, noteF4, noteE4, noteF4, noteG4, noteD4, noteE4, noteF4, noteE4, noteF4,
			noteG4, noteG4, noteA4, noteG4, noteF4, noteE4, noteF4, noteG4, noteD4, noteG4, noteE4, noteC4),
		tempo: 350 * time.Millisecond,
	},
	"row-your-boat": {
		name: "Row Your Boat",
		notes: notes(noteC4, noteC4, noteC4, noteD4, noteE4, noteE4, noteD4, noteE4, noteF4, noteG4, noteC5, noteC5, noteC5,
			noteG4, noteG4, noteG4, noteE4, noteE4, noteE4, noteC4, noteC4, noteC4, noteG4, noteF4, noteE4, noteD4, noteC4),
		tempo: 350 * time.Millisecond,
	},
	"old-macdonald": {
		name: "Old MacDonald",
		notes: notes(noteG4, noteG4, noteG4, noteD4, noteE4, noteE4, noteD4, noteB4, noteB4, noteA4, noteA4, noteG4,
			noteD4, noteG4, noteG4, noteG4, noteD4, noteE4, noteE4, noteD4),
		tempo: 350 * time.Millisecond,
	},
	"baa-baa-sheep": {
		name: "Baa Baa Black Sheep",
		notes: notes(noteG4, noteG4, noteD4, noteD4, noteE4, noteF4, noteG4, noteA4, noteG4, noteF4, noteE4, noteE4,
			noteD4, noteC4, noteD4, noteE4, noteF4, noteG4),
		tempo: 400 * time.Millisecond,
	},
}

var lessons = []lesson{
	{id: "lesson-1", title: "First Notes", melody: "twinkle-twinkle", description: "Learn C, G, and A!", requiredLevel: 1},
	{id: "lesson-2", title: "Simple Melody", melody: "mary-lamb", description: "Play a cute song!", requiredLevel: 1},
	{id: "lesson-3", title: "Happy Tune", melody: "happy-birthday", description: "Birthday song!", requiredLevel: 2},
}

var songLibrary = []librarySong{
	{melody: "twinkle-twinkle", title: "Twinkle Twinkle"},
	{melody: "mary-lamb", title: "Mary Had A Little Lamb"},
	{melody: "happy-birthday", title: "Happy Birthday"},
	{melody: "ode-to-joy", title: "Ode to Joy", premium: true},
	{melody: "jingle-bells", title: "Jingle Bells", premium: true},
}

// getMelody returns a copy so callers can never mutate the table
func getMelody(id melodyID) (melody, bool) {
	m, ok := melodies[id]
	if !ok {
		return melody{}, false
	}
	m.id = id
	m.notes = append([]noteName(nil), m.notes...)
	return m, true
}

func sortedMelodyIDs() []melodyID {
	ids := make([]melodyID, 0, len(melodies))
	for id := range melodies {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func findLesson(id string) (lesson, bool) {
	for _, l := range lessons {
		if l.id == id {
			return l, true
		}
	}
	return lesson{}, false
}

func (s librarySong) unlocked(p progressRecord) bool {
	if !s.premium {
		return true
	}
	return containsString(p.UnlockedSongs, string(s.melody))
}
