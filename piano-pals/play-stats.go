package main

import "time"

const (
	noteCatcherGameID = "note-catcher"
	melodyCopyGameID  = "melody-copy"
	rhythmTapGameID   = "rhythm-tap"
)

// result is computed once when a game or lesson finishes and is never
// changed afterwards.
type result struct {
	gameID   string
	score    int
	maxScore int
	stars    int
	at       time.Time
}

func (r result) percentage() float64 {
	if r.maxScore == 0 {
		return 0
	}
	return float64(r.score) / float64(r.maxScore)
}

// score percentage needed for three, two and one stars
type starThresholds [3]float64

var (
	gameStarThresholds   = starThresholds{0.8, 0.5, 0.2}
	rhythmStarThresholds = starThresholds{0.7, 0.4, 0.2}
)

func (st starThresholds) starCount(score int, maxScore int) int {
	if maxScore <= 0 {
		return 0
	}
	percentage := float64(score) / float64(maxScore)
	if percentage >= st[0] {
		return 3
	} else if percentage >= st[1] {
		return 2
	} else if percentage >= st[2] {
		return 1
	} else {
		return 0
	}
}

// a finished lesson always earns at least one star
func lessonStarCount(correct int, total int) int {
	if total == 0 {
		return 1
	}
	accuracy := float64(correct) / float64(total)
	if accuracy >= 1.0 {
		return 3
	} else if accuracy >= 0.8 {
		return 2
	} else {
		return 1
	}
}

func newResult(gameID string, score int, maxScore int, thresholds starThresholds, at time.Time) result {
	return result{
		gameID:   gameID,
		score:    score,
		maxScore: maxScore,
		stars:    thresholds.starCount(score, maxScore),
		at:       at,
	}
}

// effects every game emits when it finishes
func finishedGameEffects(r result) []effect {
	effects := []effect{
		saveGameScoreEffect{gameID: r.gameID, score: r.score},
		recordResultEffect{result: r},
	}
	if r.stars > 0 {
		effects = append(effects, addStarsEffect{r.stars}, playJingleEffect{jingleStar})
	}
	return effects
}

func smallStarString(starCount int) string {
	switch starCount {
	case 1:
		return "★☆☆"
	case 2:
		return "★★☆"
	case 3:
		return "★★★"
	default:
		return "☆☆☆"
	}
}

// randomSource is satisfied by *rand.Rand
type randomSource interface {
	Intn(n int) int
	Float64() float64
}

func randomNote(rng randomSource, from []noteName) noteName {
	return from[rng.Intn(len(from))]
}
