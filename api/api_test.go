package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"storyreel/composition"
	"storyreel/processor"
	"storyreel/types"
)

type zeroSource struct{}

func (zeroSource) Intn(int) int { return 0 }

var perWord = composition.MeasureFunc(func(text string, _ composition.FontRef) (int, error) {
	return 100 * len(strings.Fields(text)), nil
})

type fakeProcessor struct {
	mu     sync.Mutex
	posts  []types.Post
	upload []bool
	runs   int
}

func (f *fakeProcessor) ProcessPost(_ context.Context, post types.Post, upload bool, track processor.Tracker) types.VideoResult {
	f.mu.Lock()
	f.posts = append(f.posts, post)
	f.upload = append(f.upload, upload)
	f.mu.Unlock()
	return types.VideoResult{Post: post, Status: types.StatusRendered, OutputPath: "results/" + post.Title + ".mp4"}
}

func (f *fakeProcessor) Run(context.Context, processor.PostSource, processor.ProgressFunc) []types.VideoResult {
	f.mu.Lock()
	f.runs++
	f.mu.Unlock()
	return nil
}

type noPosts struct{}

func (noPosts) GetPosts(context.Context) []types.Post { return nil }

func newTestRouter(proc *fakeProcessor, source processor.PostSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	planner := composition.NewPlanner(composition.Options{ForceQuestionMark: true}, zeroSource{}, perWord)
	return NewServer(context.Background(), planner, proc, source, true).NewRouter()
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := doJSON(newTestRouter(&fakeProcessor{}, nil), http.MethodGet, "/api/health", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "healthy") {
		t.Fatalf("health = %d %s", w.Code, w.Body.String())
	}
}

func TestPlanPreview(t *testing.T) {
	r := newTestRouter(&fakeProcessor{}, nil)

	cases := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"ok", `{"title":"Am I wrong","words":[{"text":"Am","start":0,"end":0.3}],"audio_duration":30,"video_duration":120,"assets":{"background_video":"bg.mp4","audio":"a.mp3"}}`, http.StatusOK},
		{"audio longer than video", `{"title":"T","audio_duration":130,"video_duration":120}`, http.StatusUnprocessableEntity},
		{"bad json", `{`, http.StatusBadRequest},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/api/plan", c.body)
			if w.Code != c.wantCode {
				t.Fatalf("code = %d; want %d (%s)", w.Code, c.wantCode, w.Body.String())
			}
		})
	}

	w := doJSON(r, http.MethodPost, "/api/plan", cases[0].body)
	var plan composition.CompositionPlan
	if err := json.Unmarshal(w.Body.Bytes(), &plan); err != nil {
		t.Fatalf("decode plan: %v", err)
	}
	if plan.Title != "Am I wrong?" || plan.BaseName != "Am I wrong" || plan.Window.End != 31 {
		t.Fatalf("plan = %+v", plan)
	}
	if len(plan.Layers) != 3 {
		t.Fatalf("layers = %d; want background, title, one caption", len(plan.Layers))
	}
}

func TestSubmitVideo(t *testing.T) {
	proc := &fakeProcessor{}
	r := newTestRouter(proc, nil)

	w := doJSON(r, http.MethodPost, "/api/videos", `{"request_id":"req-1","post":{"title":"My story","body":"text"},"upload":false}`)
	if w.Code != http.StatusAccepted {
		t.Fatalf("submit = %d %s", w.Code, w.Body.String())
	}

	var status JobStatus
	deadline := time.Now().Add(2 * time.Second)
	for {
		g := doJSON(r, http.MethodGet, "/api/videos/req-1", "")
		if g.Code != http.StatusOK {
			t.Fatalf("get = %d %s", g.Code, g.Body.String())
		}
		if err := json.Unmarshal(g.Body.Bytes(), &status); err != nil {
			t.Fatal(err)
		}
		if status.State == "done" || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	if status.State != "done" || status.Result == nil || status.Result.Status != types.StatusRendered {
		t.Fatalf("status = %+v", status)
	}

	proc.mu.Lock()
	defer proc.mu.Unlock()
	if len(proc.posts) != 1 || proc.posts[0].ID == "" || proc.upload[0] {
		t.Fatalf("processed posts=%+v upload=%v", proc.posts, proc.upload)
	}
}

func TestSubmitVideoValidation(t *testing.T) {
	r := newTestRouter(&fakeProcessor{}, nil)

	if w := doJSON(r, http.MethodPost, "/api/videos", `{"post":{"body":"no title"}}`); w.Code != http.StatusBadRequest {
		t.Fatalf("missing title = %d", w.Code)
	}
	if w := doJSON(r, http.MethodGet, "/api/videos/unknown", ""); w.Code != http.StatusNotFound {
		t.Fatalf("unknown id = %d", w.Code)
	}
}

func TestRun(t *testing.T) {
	if w := doJSON(newTestRouter(&fakeProcessor{}, nil), http.MethodPost, "/api/videos/run", ""); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("run without source = %d", w.Code)
	}

	proc := &fakeProcessor{}
	if w := doJSON(newTestRouter(proc, noPosts{}), http.MethodPost, "/api/videos/run", ""); w.Code != http.StatusAccepted {
		t.Fatalf("run = %d", w.Code)
	}
}
