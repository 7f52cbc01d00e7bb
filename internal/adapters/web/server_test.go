package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devbush/vidrange/internal/adapters/filestore"
	"github.com/devbush/vidrange/internal/application"
	"github.com/devbush/vidrange/internal/domain"
	"github.com/devbush/vidrange/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeExtractor struct {
	playlist *domain.Playlist
	err      error
}

func (f *fakeExtractor) ExtractPlaylist(ctx context.Context, target *domain.Target) (*domain.Playlist, error) {
	if f.err != nil {
		return nil, f.err
	}
	p := *f.playlist
	p.Platform = target.Platform
	p.SourceURL = target.URL
	return &p, nil
}

type fakeDownloader struct {
	mu       sync.Mutex
	fail     map[string]*domain.ToolError
	requests []string

	// started receives each url as its download begins, when set
	started chan string
	// release holds every download until closed, when set
	release chan struct{}

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (f *fakeDownloader) DownloadVideo(ctx context.Context, url string, opts ports.DownloadOptions, progress ports.ProgressFunc) error {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		peak := f.maxInFlight.Load()
		if n <= peak || f.maxInFlight.CompareAndSwap(peak, n) {
			break
		}
	}

	f.mu.Lock()
	f.requests = append(f.requests, url)
	err, failed := f.fail[url]
	f.mu.Unlock()

	if f.started != nil {
		f.started <- url
	}
	if f.release != nil {
		<-f.release
	}
	if failed {
		return err
	}
	return nil
}

// countingLists counts full reads so tests can tell cache hits apart
type countingLists struct {
	*filestore.ListDir
	reads atomic.Int32
}

func (c *countingLists) Read(name string) (*domain.ListFile, error) {
	c.reads.Add(1)
	return c.ListDir.Read(name)
}

func (f *fakeDownloader) IsAvailable() bool     { return true }
func (f *fakeDownloader) GetBinaryPath() string { return "/usr/bin/yt-dlp" }
func (f *fakeDownloader) Install(ctx context.Context, progress ports.ProgressFunc) error {
	return nil
}
func (f *fakeDownloader) Update(ctx context.Context) error { return nil }

type fixture struct {
	server     *Server
	fs         afero.Fs
	lists      *filestore.ListDir
	counted    *countingLists
	extractor  *fakeExtractor
	downloader *fakeDownloader
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	fs := afero.NewMemMapFs()
	lists := filestore.NewListDirFs(fs, "/lists")
	counted := &countingLists{ListDir: lists}
	settings := application.NewSettingsService(filestore.NewSettingsFileFs(fs, "/app/settings.conf"))
	extractor := &fakeExtractor{playlist: &domain.Playlist{
		Title:   "My Chan",
		Entries: []domain.PlaylistEntry{{ID: "a"}, {ID: "b"}},
	}}
	downloader := &fakeDownloader{fail: map[string]*domain.ToolError{}}

	server, err := NewServer(Services{
		Extract:   application.NewExtractService(settings, extractor, nil, lists, time.Hour),
		Lists:     application.NewListService(counted),
		Downloads: application.NewDownloadService(downloader, fs, application.DownloadConfig{Root: "/videos", Format: "best", TitleLength: 80}),
	})
	require.NoError(t, err)

	return &fixture{server: server, fs: fs, lists: lists, counted: counted, extractor: extractor, downloader: downloader}
}

func (f *fixture) writeList(t *testing.T, name string, n int) {
	t.Helper()
	urls := make([]string, n)
	for i := range urls {
		urls[i] = "u" + string(rune('0'+i+1))
	}
	require.NoError(t, f.lists.Write(name, urls))
}

func (f *fixture) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	return rec
}

func TestIndex_ShowsLists(t *testing.T) {
	f := newFixture(t)
	f.writeList(t, "@chan_videos.txt", 3)

	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "@chan_videos.txt (3 URLs)")
}

func TestIndex_NoLists(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No .txt list files")
}

func TestExtract_SavesList(t *testing.T) {
	f := newFixture(t)

	rec := f.post("/extract", url.Values{"user_input": {"https://www.youtube.com/@chan"}})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Extracting from platform: YouTube")
	assert.Contains(t, body, "@My_Chan_videos.txt")
	assert.Contains(t, body, "https://www.youtube.com/watch?v=b")

	list, err := f.lists.Read("@My_Chan_videos.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://www.youtube.com/watch?v=a", "https://www.youtube.com/watch?v=b"}, list.Lines)
}

func TestExtract_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		err      error
		wantCode int
		wantBody string
	}{
		{"tool failure shows stderr", "https://www.youtube.com/@chan", &domain.ToolError{Op: "extract", ExitCode: 1, Stderr: "ERROR: channel does not exist"}, http.StatusBadGateway, "ERROR: channel does not exist"},
		{"disabled platform", "https://vimeo.com/someone", nil, http.StatusForbidden, "Vimeo is currently disabled"},
		{"unknown platform", "example.org/x", nil, http.StatusBadRequest, "could not determine platform"},
		{"empty input", "  ", nil, http.StatusBadRequest, "no input provided"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.extractor.err = tt.err

			rec := f.post("/extract", url.Values{"user_input": {tt.input}})
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestPreview_ClampsBounds(t *testing.T) {
	f := newFixture(t)
	f.writeList(t, "@chan_videos.txt", 9)

	rec := f.post("/preview", url.Values{"file": {"@chan_videos.txt"}, "start": {"0"}, "end": {"50"}})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Preview: @chan_videos.txt (9 lines)")
	assert.Contains(t, body, `name="start" value="1"`)
	assert.Contains(t, body, `name="end" value="9"`)
	assert.Contains(t, body, "<strong>9.</strong> <code>u9</code>")
}

func TestPreview_CachesParsedList(t *testing.T) {
	f := newFixture(t)
	f.writeList(t, "@chan_videos.txt", 3)

	f.post("/preview", url.Values{"file": {"@chan_videos.txt"}})
	f.post("/preview", url.Values{"file": {"@chan_videos.txt"}})

	assert.Equal(t, 1, f.server.lists.Len())
	assert.Equal(t, int32(1), f.counted.reads.Load())
}

func TestPreview_RereadsChangedList(t *testing.T) {
	f := newFixture(t)
	f.writeList(t, "@chan_videos.txt", 3)

	f.post("/preview", url.Values{"file": {"@chan_videos.txt"}})

	require.NoError(t, f.lists.Write("@chan_videos.txt", []string{"fresh"}))
	later := time.Now().Add(time.Minute)
	require.NoError(t, f.fs.Chtimes("/lists/@chan_videos.txt", later, later))

	rec := f.post("/preview", url.Values{"file": {"@chan_videos.txt"}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<code>fresh</code>")
	assert.Equal(t, int32(2), f.counted.reads.Load())
}

func TestPreview_RejectsPaths(t *testing.T) {
	f := newFixture(t)

	for _, name := range []string{"../settings.conf", "sub/x.txt", "notes.md", "missing.txt"} {
		rec := f.post("/preview", url.Values{"file": {name}})
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}
}

func TestDownload_StreamsLog(t *testing.T) {
	f := newFixture(t)
	f.writeList(t, "@chan_videos.txt", 9)
	f.downloader.fail["u4"] = &domain.ToolError{Op: "download", ExitCode: 2, Stderr: "ERROR: gone\n"}

	rec := f.post("/download", url.Values{"file": {"@chan_videos.txt"}, "start": {"3"}, "end": {"5"}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	for _, want := range []string{
		"Downloading 3 videos → /videos/@chan_videos_videos",
		"[1/3] URL: u3\n✔ Done",
		"[2/3] URL: u4\n✖ Failed (exit 2)\nERROR: gone",
		"[3/3] URL: u5\n✔ Done",
		"All tasks finished.",
	} {
		assert.Contains(t, body, want)
	}
	assert.Equal(t, []string{"u3", "u4", "u5"}, f.downloader.requests)
}

func TestDownload_ReusesPreviewedList(t *testing.T) {
	f := newFixture(t)
	f.writeList(t, "@chan_videos.txt", 4)

	f.post("/preview", url.Values{"file": {"@chan_videos.txt"}, "start": {"2"}, "end": {"3"}})
	rec := f.post("/download", url.Values{"file": {"@chan_videos.txt"}, "start": {"2"}, "end": {"3"}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"u2", "u3"}, f.downloader.requests)
	assert.Equal(t, int32(1), f.counted.reads.Load())
}

func TestDownload_RejectsConcurrentRun(t *testing.T) {
	f := newFixture(t)
	f.writeList(t, "@chan_videos.txt", 2)
	f.downloader.started = make(chan string, 8)
	f.downloader.release = make(chan struct{})

	form := url.Values{"file": {"@chan_videos.txt"}, "start": {"1"}, "end": {"2"}}
	done := make(chan *httptest.ResponseRecorder)
	go func() { done <- f.post("/download", form) }()

	select {
	case <-f.downloader.started:
	case <-time.After(5 * time.Second):
		t.Fatal("first download never started")
	}

	second := f.post("/download", form)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Contains(t, second.Body.String(), "already running")

	extract := f.post("/extract", url.Values{"user_input": {"https://www.youtube.com/@chan"}})
	assert.Equal(t, http.StatusConflict, extract.Code)

	close(f.downloader.release)
	first := <-done
	require.Equal(t, http.StatusOK, first.Code)
	assert.Contains(t, first.Body.String(), "All tasks finished.")

	assert.Equal(t, []string{"u1", "u2"}, f.downloader.requests)
	assert.Equal(t, int32(1), f.downloader.maxInFlight.Load())

	again := f.post("/download", form)
	assert.Equal(t, http.StatusOK, again.Code)
}

func TestDownload_InvalidRange(t *testing.T) {
	f := newFixture(t)
	f.writeList(t, "@chan_videos.txt", 9)

	rec := f.post("/download", url.Values{"file": {"@chan_videos.txt"}, "start": {"5"}, "end": {"3"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid range: 5-3\n", rec.Body.String())
	assert.Empty(t, f.downloader.requests)
}

func TestDownload_ToolCheckFails(t *testing.T) {
	f := newFixture(t)
	f.writeList(t, "@chan_videos.txt", 2)
	f.server.svc.EnsureTool = func(ctx context.Context) error { return domain.ErrYtDlpNotFound }

	rec := f.post("/download", url.Values{"file": {"@chan_videos.txt"}, "start": {"1"}, "end": {"2"}})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Empty(t, f.downloader.requests)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&domain.ToolError{ExitCode: 1}, http.StatusBadGateway},
		{&domain.RangeError{Input: "x"}, http.StatusBadRequest},
		{domain.ErrEmptyInput, http.StatusBadRequest},
		{domain.ErrPlatformDisabled, http.StatusForbidden},
		{domain.ErrNoEntries, http.StatusNotFound},
		{domain.ErrYtDlpNotFound, http.StatusServiceUnavailable},
		{errBusy, http.StatusConflict},
		{errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
