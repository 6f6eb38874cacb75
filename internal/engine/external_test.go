package engine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"muffle/internal/filter"
	"muffle/internal/logging"
	"muffle/internal/media"
	"muffle/internal/rules"
	"muffle/internal/testsupport"
)

const srtPayload = "1\n00:00:01,000 --> 00:00:02,000\nwell darn\n\n2\n00:00:03,000 --> 00:00:04,000\nall fine\n\n"

func externalRule() *rules.Rule {
	return &rules.Rule{
		Mode:       rules.ModeCue,
		MuteMethod: rules.MuteVideo,
		Cue: &rules.CueConfig{
			External: &rules.ExternalConfig{Var: "subtitleList", Language: "en"},
		},
	}
}

func newExternalFixture(t *testing.T, globals map[string]any, fetcher media.Fetcher) (*State, *testsupport.Video) {
	t.Helper()
	video := testsupport.NewVideo()
	page := Page{Host: "example.com", Doc: testsupport.ParseDoc(t, "<div></div>"), Globals: globals}
	table := rules.Table{"example.com": {externalRule()}}
	s := New(page, table, Options{
		Logger:  logging.NewNop(),
		Filter:  filter.NewWordList(testWords, "***"),
		Fetcher: fetcher,
	})
	s.SetVideo(video)
	return s, video
}

func TestLoadExternalSubtitlesInstallsTrack(t *testing.T) {
	globals := map[string]any{
		"subtitleList": []any{
			map[string]any{"language": "de", "url": "https://cdn.example/de.srt", "format": "srt"},
			map[string]any{"language": "en", "url": "https://cdn.example/en.srt", "format": "srt"},
		},
	}
	fetcher := &testsupport.Fetcher{Payloads: map[string]string{
		"https://cdn.example/en.srt": srtPayload,
	}}
	s, video := newExternalFixture(t, globals, fetcher)

	if err := s.LoadExternalSubtitles(context.Background(), 0); err != nil {
		t.Fatalf("load external subtitles: %v", err)
	}

	tracks := video.TextTracks()
	if len(tracks) != 1 {
		t.Fatalf("expected one installed track, got %d", len(tracks))
	}
	track := tracks[0]
	if track.Label != rules.DefaultExternalTrackLabel {
		t.Fatalf("expected default track label, got %q", track.Label)
	}
	if track.Language != "en" {
		t.Fatalf("expected matched language recorded, got %q", track.Language)
	}
	if len(track.Cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(track.Cues))
	}
	first := track.Cues[0]
	if !first.Classified || !first.Filtered || first.FilteredText != "well ***" {
		t.Fatalf("expected installed cues classified, got %+v", first)
	}
	if first.Start != 1 || first.End != 2 {
		t.Fatalf("unexpected cue timing %v-%v", first.Start, first.End)
	}
}

func TestLoadExternalSubtitlesKeepsCueSettings(t *testing.T) {
	vttPayload := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000 align:start position:10%\nwell darn\n"
	globals := map[string]any{
		"subtitleList": []any{
			map[string]any{"language": "en", "url": "https://cdn.example/en.vtt", "format": "vtt"},
		},
	}
	fetcher := &testsupport.Fetcher{Payloads: map[string]string{
		"https://cdn.example/en.vtt": vttPayload,
	}}
	s, video := newExternalFixture(t, globals, fetcher)

	if err := s.LoadExternalSubtitles(context.Background(), 0); err != nil {
		t.Fatalf("load external subtitles: %v", err)
	}
	tracks := video.TextTracks()
	if len(tracks) != 1 {
		t.Fatalf("expected one installed track, got %d", len(tracks))
	}
	cue := tracks[0].Cues[0]
	if cue.Align != "start" {
		t.Fatalf("expected align setting kept, got %q", cue.Align)
	}
	if cue.Position != 10 {
		t.Fatalf("expected position 10, got %d", cue.Position)
	}
}

func TestLoadExternalSubtitlesMissingVariable(t *testing.T) {
	s, video := newExternalFixture(t, map[string]any{}, &testsupport.Fetcher{})

	if err := s.LoadExternalSubtitles(context.Background(), 0); err == nil {
		t.Fatal("expected error for missing descriptor variable")
	}
	if len(video.TextTracks()) != 0 {
		t.Fatal("failure must not install a track")
	}
}

func TestLoadExternalSubtitlesNoLanguageMatch(t *testing.T) {
	globals := map[string]any{
		"subtitleList": []any{
			map[string]any{"language": "not-a-tag", "url": "https://cdn.example/x.srt", "format": "srt"},
		},
	}
	s, video := newExternalFixture(t, globals, &testsupport.Fetcher{})

	if err := s.LoadExternalSubtitles(context.Background(), 0); err == nil {
		t.Fatal("expected error when no descriptor matches the language")
	}
	if len(video.TextTracks()) != 0 {
		t.Fatal("failure must not install a track")
	}
}

func TestLoadExternalSubtitlesDownloadFailure(t *testing.T) {
	globals := map[string]any{
		"subtitleList": map[string]any{"language": "en", "url": "https://cdn.example/en.srt", "format": "srt"},
	}
	fetcher := &testsupport.Fetcher{Err: errors.New("connection reset")}
	s, video := newExternalFixture(t, globals, fetcher)

	if err := s.LoadExternalSubtitles(context.Background(), 0); err == nil {
		t.Fatal("expected download error to surface")
	}
	if len(video.TextTracks()) != 0 {
		t.Fatal("failure must not install a track")
	}
}

func TestLoadExternalSubtitlesUnknownFormat(t *testing.T) {
	globals := map[string]any{
		"subtitleList": map[string]any{"language": "en", "url": "https://cdn.example/en.sub", "format": "microdvd"},
	}
	fetcher := &testsupport.Fetcher{Payloads: map[string]string{
		"https://cdn.example/en.sub": "{1}{20}whatever",
	}}
	s, video := newExternalFixture(t, globals, fetcher)

	if err := s.LoadExternalSubtitles(context.Background(), 0); err == nil {
		t.Fatal("expected error for unrecognized subtitle format")
	}
	if len(video.TextTracks()) != 0 {
		t.Fatal("failure must not install a track")
	}
}

func TestLoadExternalSubtitlesInFlightGuard(t *testing.T) {
	globals := map[string]any{
		"subtitleList": map[string]any{"language": "en", "url": "https://cdn.example/en.srt", "format": "srt"},
	}
	block := make(chan struct{})
	fetcher := &blockingFetcher{release: block, payload: srtPayload}
	s, video := newExternalFixture(t, globals, fetcher)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := s.LoadExternalSubtitles(context.Background(), 0); err != nil {
			t.Errorf("first load failed: %v", err)
		}
	}()

	<-fetcher.started()
	if err := s.LoadExternalSubtitles(context.Background(), 0); !errors.Is(err, ErrFetchInFlight) {
		t.Fatalf("expected ErrFetchInFlight, got %v", err)
	}
	close(block)
	wg.Wait()

	if len(video.TextTracks()) != 1 {
		t.Fatalf("expected exactly one installed track, got %d", len(video.TextTracks()))
	}

	// The flag clears once the fetch completes.
	if err := s.LoadExternalSubtitles(context.Background(), 0); err != nil {
		t.Fatalf("expected a later fetch to run, got %v", err)
	}
}

// blockingFetcher parks the first fetch until released.
type blockingFetcher struct {
	release <-chan struct{}
	payload string

	mu        sync.Mutex
	startedCh chan struct{}
	first     bool
}

func (f *blockingFetcher) started() <-chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.startedCh == nil {
		f.startedCh = make(chan struct{})
	}
	return f.startedCh
}

func (f *blockingFetcher) Fetch(_ context.Context, _, _ string) (string, error) {
	f.mu.Lock()
	if f.startedCh == nil {
		f.startedCh = make(chan struct{})
	}
	ch := f.startedCh
	firstCall := !f.first
	f.first = true
	f.mu.Unlock()

	if firstCall {
		close(ch)
		<-f.release
	}
	return f.payload, nil
}
