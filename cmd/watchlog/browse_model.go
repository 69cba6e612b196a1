package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"watchlog/internal/search"
	"watchlog/internal/tmdb"
	"watchlog/internal/watchlist"
)

type browseStage int

const (
	stageSearch browseStage = iota
	stageRate
)

// resultsMsg carries a delivered live search into the update loop.
type resultsMsg search.Results

type browseModel struct {
	input     textinput.Model
	results   []tmdb.SearchResult
	seq       uint64
	cursor    int
	searching bool

	stage     browseStage
	selection *watchlist.Entry
	rating    int

	status    string
	statusErr bool
	added     []watchlist.Entry
	styles    browseStyles

	onQuery func(string)
	toEntry func(tmdb.SearchResult) watchlist.Entry
	save    func(watchlist.Draft) (watchlist.Entry, error)
}

func newBrowseModel(styles browseStyles, onQuery func(string), toEntry func(tmdb.SearchResult) watchlist.Entry, save func(watchlist.Draft) (watchlist.Entry, error)) browseModel {
	ti := textinput.New()
	ti.Placeholder = "Search movies and TV shows..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Focus()

	return browseModel{
		input:   ti,
		styles:  styles,
		onQuery: onQuery,
		toEntry: toEntry,
		save:    save,
	}
}

func (m browseModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultsMsg:
		if msg.Seq < m.seq || strings.TrimSpace(m.input.Value()) == "" {
			return m, nil
		}
		m.seq = msg.Seq
		m.results = msg.Results
		m.searching = false
		if m.cursor >= len(m.results) {
			m.cursor = 0
		}
		return m, nil

	case tea.WindowSizeMsg:
		if msg.Width > 10 {
			m.input.Width = min(msg.Width-8, 60)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.stage == stageRate {
			return m.updateRate(msg)
		}
		return m.updateSearch(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m browseModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "ctrl+n":
		if m.cursor < len(m.results)-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		if len(m.results) == 0 {
			return m, nil
		}
		selection := m.toEntry(m.results[m.cursor])
		m.selection = &selection
		m.stage = stageRate
		m.rating = 0
		m.status = ""
		m.input.Blur()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != before {
		m.onQuery(value)
		if strings.TrimSpace(value) == "" {
			m.results = nil
			m.cursor = 0
			m.searching = false
		} else {
			m.searching = true
		}
	}
	return m, cmd
}

func (m browseModel) updateRate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "esc":
		m.stage = stageSearch
		m.selection = nil
		m.status = ""
		cmd := m.input.Focus()
		return m, cmd
	case "1", "2", "3", "4", "5":
		m.rating = int(key[0] - '0')
		return m, nil
	case "enter":
		if m.rating == 0 {
			m.setStatus("Pick a rating from 1 to 5", true)
			return m, nil
		}
		entry, err := m.save(watchlist.Draft{
			Title:     m.selection.Title,
			Type:      m.selection.Type,
			Rating:    m.rating,
			Selection: m.selection,
		})
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.added = append(m.added, entry)
		m.setStatus(fmt.Sprintf("Added %s %s", entry.Title, ratingStars(entry.Rating)), false)
		m.stage = stageSearch
		m.selection = nil
		m.results = nil
		m.cursor = 0
		m.input.SetValue("")
		m.onQuery("")
		cmd := m.input.Focus()
		return m, cmd
	}
	return m, nil
}

func (m *browseModel) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m browseModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("watchlog"))
	sb.WriteString("\n\n")

	if m.stage == stageRate && m.selection != nil {
		sb.WriteString(m.styles.Item.Render(titleWithYear(m.selection.Title, m.selection.Year())))
		sb.WriteString(m.styles.Muted.Render(" · " + string(m.selection.Type)))
		sb.WriteString("\n")
		if m.selection.Overview != "" {
			sb.WriteString(m.styles.Muted.Render(truncate(m.selection.Overview, 200)))
			sb.WriteString("\n")
		}
		sb.WriteString("\nRating: ")
		sb.WriteString(m.styles.Rating.Render(ratingStars(m.rating)))
		sb.WriteString("\n\n")
		m.writeStatus(&sb)
		sb.WriteString(m.styles.Muted.Render("[1-5] Rate  [Enter] Save  [Esc] Back"))
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString(m.styles.Input.Render(m.input.View()))
	sb.WriteString("\n")
	switch {
	case m.searching && len(m.results) == 0:
		sb.WriteString(m.styles.Muted.Render("  searching..."))
		sb.WriteString("\n")
	case len(m.results) == 0 && strings.TrimSpace(m.input.Value()) != "":
		sb.WriteString(m.styles.Muted.Render("  no matches"))
		sb.WriteString("\n")
	}
	for i, r := range m.results {
		line := fmt.Sprintf("%s  %s", titleWithYear(r.Title, r.Year()), r.MediaKind.Kind())
		if i == m.cursor {
			sb.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			sb.WriteString(m.styles.Item.Render("  " + line))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	m.writeStatus(&sb)
	sb.WriteString(m.styles.Muted.Render("[↑/↓] Move  [Enter] Select  [Esc] Quit"))
	sb.WriteString("\n")
	return sb.String()
}

func (m browseModel) writeStatus(sb *strings.Builder) {
	if m.status == "" {
		return
	}
	style := m.styles.Status
	if m.statusErr {
		style = m.styles.Error
	}
	sb.WriteString(style.Render(m.status))
	sb.WriteString("\n")
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
