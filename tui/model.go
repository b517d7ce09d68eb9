package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"storyreel/processor"
	"storyreel/types"
)

// State represents the batch state machine
type State string

const (
	StateFetching   State = "fetching"
	StateProcessing State = "processing"
	StateComplete   State = "complete"
)

// maxLogs is how many activity lines the view keeps
const maxLogs = 8

// Row is the display state of one post
type Row struct {
	Title  string
	Stage  processor.Stage
	Result *types.VideoResult
}

// Model is the batch progress view
type Model struct {
	Title   string
	State   State
	Rows    []Row
	Logs    []string
	Started time.Time
	Summary types.BatchSummary
}

func NewModel(title string) Model {
	return Model{Title: title, State: StateFetching, Started: time.Now()}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return nil
}

// AddLog appends an activity line, dropping the oldest past maxLogs
func (m Model) AddLog(line string) Model {
	m.Logs = append(m.Logs, line)
	if len(m.Logs) > maxLogs {
		m.Logs = m.Logs[len(m.Logs)-maxLogs:]
	}
	return m
}
