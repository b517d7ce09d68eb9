package processor

import "storyreel/types"

// Stage is a step of the per-post pipeline
type Stage string

const (
	StageStarted    Stage = "started"
	StageSpeech     Stage = "speech"
	StageTranscribe Stage = "transcribe"
	StagePlan       Stage = "plan"
	StageRender     Stage = "render"
	StageStore      Stage = "store"
	StageUpload     Stage = "upload"
	StageDone       Stage = "done"
)

// Event reports progress of one post within a batch
type Event struct {
	Index int
	Total int
	Post  types.Post
	Stage Stage
	// Result is set when Stage is StageDone
	Result *types.VideoResult
}

// ProgressFunc receives progress events. It may be called from several
// goroutines at once.
type ProgressFunc func(Event)

// Tracker reports the stages of a single post. The zero value discards events.
type Tracker struct {
	fn    ProgressFunc
	index int
	total int
	post  types.Post
}

// Tracker returns a tracker reporting events for one post
func (f ProgressFunc) Tracker(index, total int, post types.Post) Tracker {
	return Tracker{fn: f, index: index, total: total, post: post}
}

func (t Tracker) stage(s Stage) {
	if t.fn != nil {
		t.fn(Event{Index: t.index, Total: t.total, Post: t.post, Stage: s})
	}
}

func (t Tracker) done(r types.VideoResult) {
	if t.fn != nil {
		t.fn(Event{Index: t.index, Total: t.total, Post: t.post, Stage: StageDone, Result: &r})
	}
}
