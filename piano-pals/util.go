package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
)

func containsString(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

func pluralizeWithS(count int, singular string) string {
	return pluralize(count, singular, singular+"s")
}

func pluralize(count int, singular string, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}

func minInt(a int, b int) int {
	if a < b {
		return a
	}
	return b
}

func formatPlayTime(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d %s", minutes, pluralizeWithS(minutes, "minute"))
	}
	hours := minutes / 60
	return fmt.Sprintf("%d %s %d min", hours, pluralizeWithS(hours, "hour"), minutes%60)
}

func dateString(t time.Time) string {
	return t.Format("2006-01-02")
}

func setupKeymapForList(list *list.Model) {
	list.KeyMap.NextPage.SetKeys("right", "pgdown")
	list.KeyMap.PrevPage.SetKeys("left", "pgup")
	list.KeyMap.CursorDown.SetKeys("down")
	list.KeyMap.CursorUp.SetKeys("up")
}
