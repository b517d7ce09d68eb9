package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"storyreel/processor"
	"storyreel/types"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
	case PostsLoadedMsg:
		return m.handlePostsLoaded(msg), nil
	case ProgressMsg:
		return m.handleProgress(msg.Event), nil
	case BatchDoneMsg:
		m.State = StateComplete
		m.Summary = types.Summarize(msg.Results)
		return m.AddLog("Batch complete"), nil
	}
	return m, nil
}

func (m Model) handlePostsLoaded(msg PostsLoadedMsg) Model {
	m.Rows = make([]Row, len(msg.Posts))
	for i, p := range msg.Posts {
		m.Rows[i] = Row{Title: p.Title}
	}
	m.State = StateProcessing
	return m.AddLog(fmt.Sprintf("Fetched %d posts", len(msg.Posts)))
}

func (m Model) handleProgress(e processor.Event) Model {
	if e.Index < 0 {
		return m
	}
	// events can arrive before the post list when posts are submitted directly
	if e.Index >= len(m.Rows) {
		rows := make([]Row, e.Index+1)
		copy(rows, m.Rows)
		m.Rows = rows
		m.State = StateProcessing
	}

	rows := make([]Row, len(m.Rows))
	copy(rows, m.Rows)
	row := rows[e.Index]
	if row.Title == "" {
		row.Title = e.Post.Title
	}
	row.Stage = e.Stage
	if e.Result != nil {
		row.Result = e.Result
		m = m.AddLog(fmt.Sprintf("%s: %s", e.Result.Status, row.Title))
	}
	rows[e.Index] = row
	m.Rows = rows
	return m
}
