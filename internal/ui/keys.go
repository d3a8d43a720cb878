package ui

import tea "github.com/charmbracelet/bubbletea"

func isQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

func helpText(following bool) string {
	s := "space pause  v view  f follow  l loop  r restart"
	if following {
		s += "  mouse steers"
	}
	s += "  q quit"
	return s
}
