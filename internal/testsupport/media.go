package testsupport

import (
	"context"
	"fmt"
	"sync"

	"muffle/internal/media"
)

// Video is an in-memory media.Video.
type Video struct {
	mu       sync.Mutex
	muted    bool
	volume   float64
	current  float64
	duration float64
	paused   bool
	tracks   []*media.TextTrack
}

// NewVideo returns a playing video with full volume.
func NewVideo() *Video {
	return &Video{volume: 1.0, duration: 3600}
}

func (v *Video) Muted() bool { v.mu.Lock(); defer v.mu.Unlock(); return v.muted }
func (v *Video) SetMuted(m bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.muted = m
}
func (v *Video) Volume() float64 { v.mu.Lock(); defer v.mu.Unlock(); return v.volume }
func (v *Video) SetVolume(vol float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.volume = vol
}
func (v *Video) CurrentTime() float64 { v.mu.Lock(); defer v.mu.Unlock(); return v.current }
func (v *Video) SetCurrentTime(t float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.current = t
}
func (v *Video) Duration() float64 { v.mu.Lock(); defer v.mu.Unlock(); return v.duration }
func (v *Video) SetDuration(d float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.duration = d
}
func (v *Video) Paused() bool      { v.mu.Lock(); defer v.mu.Unlock(); return v.paused }
func (v *Video) SetPaused(p bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.paused = p
}
func (v *Video) TextTracks() []*media.TextTrack {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]*media.TextTrack(nil), v.tracks...)
}
func (v *Video) AddTextTrack(track *media.TextTrack) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tracks = append(v.tracks, track)
}

// Audio is an in-memory media.AudioPlayer recording its state.
type Audio struct {
	mu       sync.Mutex
	playing  bool
	volume   float64
	position float64
	Plays    int
	Pauses   int
}

func (a *Audio) Play() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.playing = true
	a.Plays++
}
func (a *Audio) Pause() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.playing = false
	a.Pauses++
}
func (a *Audio) Seek(seconds float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.position = seconds
}
func (a *Audio) SetVolume(volume float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.volume = volume
}
func (a *Audio) Playing() bool { a.mu.Lock(); defer a.mu.Unlock(); return a.playing }
func (a *Audio) Volume() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.volume
}

// Messenger records every message sent.
type Messenger struct {
	mu       sync.Mutex
	Messages []media.Message
}

func (m *Messenger) Send(msg media.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, msg)
}

// Sent returns a snapshot of recorded messages.
func (m *Messenger) Sent() []media.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]media.Message(nil), m.Messages...)
}

// Observer counts suspend/resume pairs.
type Observer struct {
	mu       sync.Mutex
	Suspends int
	Resumes  int
}

func (o *Observer) Suspend() { o.mu.Lock(); defer o.mu.Unlock(); o.Suspends++ }
func (o *Observer) Resume()  { o.mu.Lock(); defer o.mu.Unlock(); o.Resumes++ }

// Fetcher serves canned payloads by URL.
type Fetcher struct {
	Payloads map[string]string
	Err      error
}

func (f *Fetcher) Fetch(_ context.Context, url, _ string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	payload, ok := f.Payloads[url]
	if !ok {
		return "", fmt.Errorf("no payload for %s", url)
	}
	return payload, nil
}

// Counter counts muted words.
type Counter struct {
	mu    sync.Mutex
	Count int
}

func (c *Counter) MutedWord() { c.mu.Lock(); defer c.mu.Unlock(); c.Count++ }

// Total returns the recorded count.
func (c *Counter) Total() int { c.mu.Lock(); defer c.mu.Unlock(); return c.Count }
