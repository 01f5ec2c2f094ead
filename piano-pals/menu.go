package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	menuWidth  = 60
	menuHeight = 16
)

type menuItem struct {
	id     string
	title  string
	desc   string
	locked bool
}

func (i menuItem) Title() string {
	if i.locked {
		return "🔒 " + i.title
	}
	return i.title
}

func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

// menuModel is a list of choices. Choosing an item sets selected, esc sets
// backout; the parent model reads both and switches screens.
type menuModel struct {
	menuList     list.Model
	selected     string
	backout      bool
	lockedNotice string
}

func newMenuModel(title string, items []menuItem, hasDesc bool) menuModel {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}

	menuList := list.New(listItems, createListDd(hasDesc), menuWidth, menuHeight)
	menuList.Title = title
	menuList.SetShowStatusBar(false)
	menuList.SetFilteringEnabled(false)
	menuList.SetShowHelp(false)
	menuList.DisableQuitKeybindings()
	styleList(&menuList)
	setupKeymapForList(&menuList)

	return menuModel{menuList: menuList}
}

func (m menuModel) Update(msg tea.Msg) (menuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.menuList.SetSize(minInt(msg.Width, menuWidth), msg.Height-4)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			item, ok := m.menuList.SelectedItem().(menuItem)
			if !ok {
				return m, nil
			}
			if item.locked {
				m.lockedNotice = item.title + " is still locked"
				return m, nil
			}
			m.selected = item.id
			return m, nil
		case "esc":
			m.backout = true
			return m, nil
		}
	}

	m.lockedNotice = ""
	var cmd tea.Cmd
	m.menuList, cmd = m.menuList.Update(msg)
	return m, cmd
}

func (m menuModel) View() string {
	view := m.menuList.View()
	if m.lockedNotice != "" {
		view += "\n" + wrongStyle.Render(m.lockedNotice)
	}
	return view
}

// highlight moves the cursor back to the item the player came from
func (m menuModel) highlight(id string) menuModel {
	for i, item := range m.menuList.Items() {
		if mi, ok := item.(menuItem); ok && mi.id == id {
			m.menuList.Select(i)
			break
		}
	}
	return m
}

// consume clears the selection once the parent has acted on it
func (m menuModel) consume() menuModel {
	m.selected = ""
	m.backout = false
	return m
}

const (
	homeLessons  = "lessons"
	homeSongs    = "songs"
	homeGames    = "games"
	homeFreePlay = "free-play"
	homeParents  = "parents"
)

func newHomeMenu(p progressRecord) menuModel {
	return newMenuModel(fmt.Sprintf("Piano Pals  ★ %d", p.TotalStars), []menuItem{
		{id: homeLessons, title: "Lessons", desc: "Learn a song one note at a time"},
		{id: homeSongs, title: "Songs", desc: "Listen and play along"},
		{id: homeGames, title: "Games", desc: "Note Catcher, Melody Copy and Rhythm Tap"},
		{id: homeFreePlay, title: "Free Play", desc: "Play anything you like"},
		{id: homeParents, title: "For Parents", desc: "Progress and settings"},
	}, true)
}

func newLessonsMenu(p progressRecord) menuModel {
	items := make([]menuItem, len(lessons))
	for i, l := range lessons {
		desc := l.description
		if p.hasCompleted(l.id) {
			desc = "✓ " + desc
		}
		items[i] = menuItem{
			id:     l.id,
			title:  l.title,
			desc:   desc,
			locked: l.requiredLevel > p.CurrentLevel,
		}
	}
	return newMenuModel("Lessons", items, true)
}

func newSongsMenu(p progressRecord) menuModel {
	items := make([]menuItem, len(songLibrary))
	for i, s := range songLibrary {
		desc := "Free"
		if s.premium {
			desc = "Premium"
		}
		items[i] = menuItem{
			id:     string(s.melody),
			title:  s.title,
			desc:   desc,
			locked: !s.unlocked(p),
		}
	}
	return newMenuModel("Songs", items, true)
}

type gameInfo struct {
	id    string
	title string
	desc  string
}

var games = []gameInfo{
	{noteCatcherGameID, "Note Catcher", "Catch the note before time runs out"},
	{melodyCopyGameID, "Melody Copy", "Listen, then play it back"},
	{rhythmTapGameID, "Rhythm Tap", "Tap along with the beat"},
}

func newGamesMenu(p progressRecord) menuModel {
	items := make([]menuItem, len(games))
	for i, g := range games {
		desc := g.desc
		if best := p.bestScore(g.id); best > 0 {
			desc += fmt.Sprintf(" · best %d", best)
		}
		items[i] = menuItem{id: g.id, title: g.title, desc: desc}
	}
	return newMenuModel("Games", items, true)
}
