package executor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/slidecast/internal/action"
	"github.com/ivlev/slidecast/internal/document"
	"github.com/ivlev/slidecast/internal/executor"
	"github.com/ivlev/slidecast/internal/tool"
)

var (
	_ action.Executor = (*executor.Live)(nil)
	_ action.Executor = (*executor.Silent)(nil)
	_ action.Executor = (*executor.Tracker)(nil)
)

func pt(x, y float64) document.PenPoint { return document.PenPoint{X: x, Y: y, Pressure: 1} }

func pen(t *testing.T) tool.Tool {
	t.Helper()
	p, err := tool.NewPaintTool(tool.Pen, 1, document.Brush{Width: 0.01})
	require.NoError(t, err)
	return p
}

func stroke(t *testing.T, ex action.Executor) {
	t.Helper()
	require.NoError(t, ex.BeginTool(pt(0.1, 0.1)))
	require.NoError(t, ex.ExecuteTool(pt(0.2, 0.2)))
	require.NoError(t, ex.EndTool(pt(0.3, 0.3)))
}

func TestSelectAndExecuteTool_RestoresPrevious(t *testing.T) {
	doc := document.NewBlank(1)
	ex := executor.NewSilent(doc)
	require.NoError(t, ex.SetPageNumber(0))

	p := pen(t)
	require.NoError(t, ex.SetTool(p))
	stroke(t, ex)

	require.NoError(t, ex.SelectAndExecuteTool(tool.UndoTool{}))
	page, _ := doc.Page(0)
	assert.False(t, page.HasShapes(), "undo ran")
	assert.Same(t, p, ex.State().Tool)
	assert.Same(t, p, ex.State().Previous)

	require.NoError(t, ex.SelectAndExecuteTool(tool.ClearShapesTool{}))
	assert.Same(t, p, ex.State().Previous, "atomic tools are never remembered")

	stroke(t, ex)
	assert.True(t, page.HasShapes(), "the restored pen keeps drawing")
}

func TestSelectAndExecuteTool_InteractiveActsAsSetTool(t *testing.T) {
	ex := executor.NewSilent(document.NewBlank(1))
	require.NoError(t, ex.SetPageNumber(0))

	rubber := &tool.RubberTool{}
	require.NoError(t, ex.SelectAndExecuteTool(rubber))
	assert.Same(t, rubber, ex.State().Tool)
	assert.Same(t, rubber, ex.State().Previous)
}

func TestSelectAndExecuteTool_RestoresOnError(t *testing.T) {
	ex := executor.NewSilent(document.NewBlank(1))
	require.NoError(t, ex.SetPageNumber(0))
	p := pen(t)
	require.NoError(t, ex.SetTool(p))

	err := ex.SelectAndExecuteTool(&tool.TextRemoveTool{Handle: 42})
	assert.ErrorIs(t, err, tool.ErrShapeNotFound)
	assert.Same(t, p, ex.State().Tool)
}

func TestExecutor_Errors(t *testing.T) {
	ex := executor.NewSilent(document.NewBlank(1))

	assert.ErrorIs(t, ex.BeginTool(pt(0, 0)), executor.ErrNoTool)
	require.NoError(t, ex.SetTool(pen(t)))
	assert.ErrorIs(t, ex.BeginTool(pt(0, 0)), tool.ErrNoPage)
	assert.ErrorIs(t, ex.SetPageNumber(3), document.ErrPageNotFound)
}

func TestLive_PublishesEvents(t *testing.T) {
	doc := document.NewBlank(2)
	page, _ := doc.Page(1)
	var kinds []document.EventKind
	page.Subscribe(func(e document.Event) { kinds = append(kinds, e.Kind) })

	var selected []int
	ex := executor.NewLive(doc, nil)
	ex.SetOnSelectPageIndex(func(n int) { selected = append(selected, n) })
	require.NoError(t, ex.SetPageNumber(1))
	require.NoError(t, ex.SetTool(pen(t)))
	stroke(t, ex)

	assert.Equal(t, []int{1}, selected)
	assert.Equal(t, []document.EventKind{document.ShapesAdded}, kinds)
}

func TestLive_SeekModeRefreshesOnce(t *testing.T) {
	doc := document.NewBlank(2)
	first, _ := doc.Page(0)
	second, _ := doc.Page(1)
	events := map[int][]document.EventKind{}
	for _, p := range doc.Pages() {
		n := p.Number()
		p.Subscribe(func(e document.Event) { events[n] = append(events[n], e.Kind) })
	}

	ex := executor.NewLive(doc, nil)
	ex.SetSeek(true)
	require.NoError(t, ex.SetPageNumber(1))
	require.NoError(t, ex.SetTool(pen(t)))
	stroke(t, ex)
	stroke(t, ex)
	assert.Empty(t, events)

	ex.SetSeek(false)
	assert.Equal(t, []document.EventKind{document.PageRefreshed}, events[1])
	assert.Empty(t, events[0], "untouched pages are not refreshed")
	assert.Len(t, second.Shapes(), 2)
	assert.False(t, first.HasShapes())
	assert.False(t, ex.Seeking())
}

func TestSilent_NeverNotifies(t *testing.T) {
	doc := document.NewBlank(1)
	page, _ := doc.Page(0)
	notified := false
	page.Subscribe(func(document.Event) { notified = true })

	ex := executor.NewSilent(doc)
	require.NoError(t, ex.SetPageNumber(0))
	require.NoError(t, ex.SetTool(pen(t)))
	stroke(t, ex)

	assert.False(t, notified)
	assert.True(t, page.HasShapes())
	assert.NoError(t, ex.PlayVideo(executor.VideoRequest{FileName: "x.mp4"}))
}

type fakeVideo struct {
	played  []executor.VideoRequest
	stopped int
}

func (f *fakeVideo) Play(req executor.VideoRequest) error {
	f.played = append(f.played, req)
	return nil
}

func (f *fakeVideo) Stop() error {
	f.stopped++
	return nil
}

func TestLive_ForwardsVideo(t *testing.T) {
	video := &fakeVideo{}
	ex := executor.NewLive(document.NewBlank(1), video)

	req := executor.VideoRequest{FileName: "clip.mp4", Offset: 5, Length: 100}
	require.NoError(t, ex.PlayVideo(req))
	require.NoError(t, ex.StopVideo())

	assert.Equal(t, []executor.VideoRequest{req}, video.played)
	assert.Equal(t, 1, video.stopped)
}

func TestLive_SeekCoalescesVideo(t *testing.T) {
	video := &fakeVideo{}
	ex := executor.NewLive(document.NewBlank(1), video)

	ex.SetSeek(true)
	require.NoError(t, ex.PlayVideo(executor.VideoRequest{FileName: "first.mp4"}))
	require.NoError(t, ex.PlayVideo(executor.VideoRequest{FileName: "second.mp4"}))
	assert.Empty(t, video.played)

	ex.SetSeek(false)
	require.Len(t, video.played, 1)
	assert.Equal(t, "second.mp4", video.played[0].FileName)
}

func TestLive_SeekDropsFinishedVideo(t *testing.T) {
	video := &fakeVideo{}
	ex := executor.NewLive(document.NewBlank(1), video)

	ex.SetSeek(true)
	ex.SeekTo(5000)
	require.NoError(t, ex.PlayVideo(executor.VideoRequest{FileName: "old.mp4", StartTime: 1000, Length: 2000}))
	ex.SetSeek(false)
	assert.Empty(t, video.played, "ended at 3000ms")

	ex.SetSeek(true)
	ex.SeekTo(2500)
	require.NoError(t, ex.PlayVideo(executor.VideoRequest{FileName: "old.mp4", StartTime: 1000, Length: 2000}))
	ex.SetSeek(false)
	require.Len(t, video.played, 1)
	assert.Equal(t, "old.mp4", video.played[0].FileName)
}

func TestTracker_FollowsSelectionOnly(t *testing.T) {
	tr := executor.NewTracker()
	key := &tool.KeyEvent{Code: 16, Kind: tool.KeyDown}

	p := pen(t)
	tr.SetKeyEvent(key)
	require.NoError(t, tr.SetTool(p))
	stroke(t, tr)
	require.NoError(t, tr.SelectAndExecuteTool(tool.ClearShapesTool{}))

	st := tr.State()
	assert.Same(t, p, st.Tool)
	assert.Same(t, p, st.Previous)
	assert.Same(t, key, st.KeyEvent)
}

func TestRestoreTools_KeepsPage(t *testing.T) {
	doc := document.NewBlank(2)
	ex := executor.NewLive(doc, nil)
	require.NoError(t, ex.SetPageNumber(1))
	require.NoError(t, ex.SetTool(pen(t)))

	ex.RestoreTools(executor.ToolState{})
	assert.Nil(t, ex.State().Tool)
	assert.Nil(t, ex.State().Previous)
	assert.Equal(t, 1, ex.State().PageNumber)
	assert.ErrorIs(t, ex.BeginTool(pt(0.1, 0.1)), executor.ErrNoTool)
}
