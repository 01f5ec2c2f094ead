package main

import (
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

type sessionState int

const (
	initialLoad sessionState = iota
	homeMenu
	lessonsMenu
	lessonScreen
	songsMenu
	songScreen
	gamesMenu
	noteCatcherScreen
	melodyCopyScreen
	rhythmTapScreen
	freePlayScreen
	parentScreen
)

// screens that show the piano and take note input
func (s sessionState) hasPiano() bool {
	switch s {
	case lessonScreen, songScreen, noteCatcherScreen, melodyCopyScreen, rhythmTapScreen, freePlayScreen:
		return true
	}
	return false
}

// appServices is everything a screen needs from outside the Update loop
type appServices struct {
	store  progressStore
	tones  tonePlayer
	runner effectRunner
	rng    randomSource
	now    func() time.Time
}

type mainModel struct {
	state        sessionState
	spinner      spinner.Model
	openStore    func() (progressStore, error)
	services     appServices
	storeWarning string
	sessionStart time.Time
	windowSize   *tea.WindowSizeMsg

	menu              menuModel
	lessonModel       lessonScreenModel
	songModel         songScreenModel
	noteCatcherModel  noteCatcherScreenModel
	melodyCopyModel   melodyCopyScreenModel
	rhythmTapModel    rhythmTapScreenModel
	freePlayModel     freePlayModel
	parentScreenModel parentScreenModel
}

func initialMainModel(openStore func() (progressStore, error), tones tonePlayer, rng randomSource, now func() time.Time) mainModel {
	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(logoColor))

	return mainModel{
		state:     initialLoad,
		spinner:   s,
		openStore: openStore,
		services: appServices{
			tones: tones,
			rng:   rng,
			now:   now,
		},
		sessionStart: now(),
	}
}

type storeOpenedMsg struct {
	store progressStore
	err   error
}

func openStoreCmd(openStore func() (progressStore, error)) tea.Cmd {
	return func() tea.Msg {
		store, err := openStore()
		return storeOpenedMsg{store, err}
	}
}

func (m mainModel) Init() tea.Cmd {
	return tea.Batch(openStoreCmd(m.openStore), m.spinner.Tick)
}

func (m mainModel) onQuit() {
	m.services.tones.clear()
	if m.services.store == nil {
		return
	}
	minutes := int(m.services.now().Sub(m.sessionStart) / time.Minute)
	if err := m.services.store.updatePlayTime(minutes); err != nil {
		log.Error("Failed to update play time", "err", err)
	}
	if err := m.services.store.close(); err != nil {
		log.Error("Failed to close progress store", "err", err)
	}
}

func isForceQuitMsg(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return true
		}
	}
	return false
}

// toPianoKey turns a keyboard key into a note press on screens with a piano
func (m mainModel) toPianoKey(msg tea.Msg) tea.Msg {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.state.hasPiano() {
		return msg
	}
	if n, ok := noteForKey(keyMsg.String()); ok {
		return pianoKeyMsg{note: n, source: "keyboard"}
	}
	return msg
}

func (m mainModel) sizeMenu(menu menuModel) menuModel {
	if m.windowSize != nil {
		menu, _ = menu.Update(*m.windowSize)
	}
	return menu
}

func (m mainModel) showMenu(state sessionState, menu menuModel, highlightID string) mainModel {
	m.state = state
	m.menu = m.sizeMenu(menu).highlight(highlightID)
	return m
}

func (m mainModel) showHome(highlightID string) mainModel {
	return m.showMenu(homeMenu, newHomeMenu(m.services.store.getProgress()), highlightID)
}

func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if isForceQuitMsg(msg) {
		log.Info("Force quit")
		m.onQuit()
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowSize = &msg
		if m.state != initialLoad {
			m.menu, _ = m.menu.Update(msg)
		}
		return m, nil
	case storeOpenedMsg:
		store := msg.store
		if msg.err != nil {
			log.Warn("Progress store unavailable, progress will not be saved", "err", msg.err)
			m.storeWarning = "Progress can't be saved this time: " + msg.err.Error()
			store = openMemoryStore()
		}
		m.services.store = store
		m.services.runner = effectRunner{tones: m.services.tones, store: store}
		m.services.tones.applySettings(store.getSettings())
		return m.showHome(""), nil
	}

	if m.state == initialLoad {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	msg = m.toPianoKey(msg)

	switch m.state {
	case homeMenu:
		if km, ok := msg.(tea.KeyMsg); ok && km.String() == "q" {
			m.onQuit()
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m.fromHome(), cmd
	case lessonsMenu:
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		if m.menu.backout {
			return m.showHome(homeLessons), nil
		}
		if id := m.menu.selected; id != "" {
			m.menu = m.menu.consume()
			l, _ := findLesson(id)
			if lm, ok := newLessonScreen(l, m.services); ok {
				m.lessonModel = lm
				m.state = lessonScreen
				return m, lm.Init()
			}
			log.Error("Lesson has no melody", "lesson", id)
		}
		return m, cmd
	case lessonScreen:
		lm, cmd := m.lessonModel.Update(msg)
		m.lessonModel = lm.(lessonScreenModel)
		if m.lessonModel.backout {
			menu := newLessonsMenu(m.services.store.getProgress())
			return m.showMenu(lessonsMenu, menu, m.lessonModel.engine.lesson.id), nil
		}
		return m, cmd
	case songsMenu:
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		if m.menu.backout {
			return m.showHome(homeSongs), nil
		}
		if id := m.menu.selected; id != "" {
			m.menu = m.menu.consume()
			if sm, ok := newSongScreen(melodyID(id), m.services); ok {
				m.songModel = sm
				m.state = songScreen
				return m, sm.Init()
			}
		}
		return m, cmd
	case songScreen:
		sm, cmd := m.songModel.Update(msg)
		m.songModel = sm.(songScreenModel)
		if m.songModel.backout {
			menu := newSongsMenu(m.services.store.getProgress())
			return m.showMenu(songsMenu, menu, string(m.songModel.engine.melody.id)), nil
		}
		return m, cmd
	case gamesMenu:
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		if m.menu.backout {
			return m.showHome(homeGames), nil
		}
		if id := m.menu.selected; id != "" {
			m.menu = m.menu.consume()
			return m.startGame(id), nil
		}
		return m, cmd
	case noteCatcherScreen:
		gm, cmd := m.noteCatcherModel.Update(msg)
		m.noteCatcherModel = gm.(noteCatcherScreenModel)
		if m.noteCatcherModel.backout {
			return m.backToGames(noteCatcherGameID), nil
		}
		return m, cmd
	case melodyCopyScreen:
		gm, cmd := m.melodyCopyModel.Update(msg)
		m.melodyCopyModel = gm.(melodyCopyScreenModel)
		if m.melodyCopyModel.backout {
			return m.backToGames(melodyCopyGameID), nil
		}
		return m, cmd
	case rhythmTapScreen:
		gm, cmd := m.rhythmTapModel.Update(msg)
		m.rhythmTapModel = gm.(rhythmTapScreenModel)
		if m.rhythmTapModel.backout {
			return m.backToGames(rhythmTapGameID), nil
		}
		return m, cmd
	case freePlayScreen:
		fm, cmd := m.freePlayModel.Update(msg)
		m.freePlayModel = fm.(freePlayModel)
		if m.freePlayModel.backout {
			return m.showHome(homeFreePlay), nil
		}
		return m, cmd
	case parentScreen:
		pm, cmd := m.parentScreenModel.Update(msg)
		m.parentScreenModel = pm.(parentScreenModel)
		if m.parentScreenModel.backout {
			return m.showHome(homeParents), nil
		}
		return m, cmd
	}
	return m, nil
}

func (m mainModel) fromHome() mainModel {
	if m.menu.backout {
		m.menu = m.menu.consume()
		return m
	}

	progress := m.services.store.getProgress()
	switch m.menu.selected {
	case homeLessons:
		return m.showMenu(lessonsMenu, newLessonsMenu(progress), "")
	case homeSongs:
		return m.showMenu(songsMenu, newSongsMenu(progress), "")
	case homeGames:
		return m.showMenu(gamesMenu, newGamesMenu(progress), "")
	case homeFreePlay:
		m.freePlayModel = newFreePlay(m.services)
		m.state = freePlayScreen
	case homeParents:
		m.parentScreenModel = newParentScreen(m.services)
		m.state = parentScreen
	}
	m.menu = m.menu.consume()
	return m
}

func (m mainModel) startGame(gameID string) mainModel {
	switch gameID {
	case noteCatcherGameID:
		m.noteCatcherModel = newNoteCatcherScreen(m.services)
		m.state = noteCatcherScreen
	case melodyCopyGameID:
		m.melodyCopyModel = newMelodyCopyScreen(m.services)
		m.state = melodyCopyScreen
	case rhythmTapGameID:
		m.rhythmTapModel = newRhythmTapScreen(m.services)
		m.state = rhythmTapScreen
	}
	return m
}

func (m mainModel) backToGames(gameID string) mainModel {
	return m.showMenu(gamesMenu, newGamesMenu(m.services.store.getProgress()), gameID)
}

func (m mainModel) View() string {
	switch m.state {
	case initialLoad:
		return m.spinner.View() + " Opening progress store..."
	case homeMenu:
		view := lipgloss.NewStyle().Foreground(lipgloss.Color(logoColor)).Render(getAsciiArt("logo.txt")) + "\n\n" + m.menu.View()
		if m.storeWarning != "" {
			view += "\n" + errorStyle.Render(m.storeWarning)
		}
		return view + helpLine("ENTER choose · Q quit")
	case lessonsMenu, songsMenu, gamesMenu:
		return m.menu.View() + helpLine("ENTER choose · ESC back")
	case lessonScreen:
		return m.lessonModel.View()
	case songScreen:
		return m.songModel.View()
	case noteCatcherScreen:
		return m.noteCatcherModel.View()
	case melodyCopyScreen:
		return m.melodyCopyModel.View()
	case rhythmTapScreen:
		return m.rhythmTapModel.View()
	case freePlayScreen:
		return m.freePlayModel.View()
	case parentScreen:
		return m.parentScreenModel.View()
	}
	return "No view"
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
