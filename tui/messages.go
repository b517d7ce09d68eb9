package tui

import (
	"storyreel/processor"
	"storyreel/types"
)

// Messages for the tea program. The batch runs outside the program and
// reports through Program.Send.

// PostsLoadedMsg is sent once the post source returned
type PostsLoadedMsg struct {
	Posts []types.Post
}

// ProgressMsg carries one pipeline event
type ProgressMsg struct {
	Event processor.Event
}

// BatchDoneMsg is sent when every post has a result
type BatchDoneMsg struct {
	Results []types.VideoResult
}
