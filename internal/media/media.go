package media

import "context"

// Video models the playback element a rule muted.
type Video interface {
	Muted() bool
	SetMuted(bool)
	Volume() float64
	SetVolume(float64)
	CurrentTime() float64
	Duration() float64
	Paused() bool
	TextTracks() []*TextTrack
	AddTextTrack(track *TextTrack)
}

// AudioPlayer is the looping filler audio masking silence while muted.
type AudioPlayer interface {
	Play()
	Pause()
	Seek(seconds float64)
	SetVolume(volume float64)
	Playing() bool
}

// Status reports caption availability transitions to the host.
type Status string

const (
	StatusCaptionsFound Status = "captionsFound"
	StatusCaptionsLost  Status = "captionsLost"
)

// Message is the cross-context notification sent on tab-level mute
// changes and caption status transitions.
type Message struct {
	Destination string
	Source      string
	Mute        *bool
	Status      Status
	ForceUpdate bool
}

// Messenger delivers messages to another context (tab, background page).
type Messenger interface {
	Send(Message)
}

// Observer exposes the mutation layer's suspend/resume hooks so the
// engine can rewrite captions without observing its own writes.
type Observer interface {
	Suspend()
	Resume()
}

// Fetcher retrieves external subtitle payloads. Depending on build mode
// the host routes this directly or through a privileged context.
type Fetcher interface {
	Fetch(ctx context.Context, url, method string) (string, error)
}

// CounterReporter receives filtered-word counts when stats are enabled.
type CounterReporter interface {
	MutedWord()
}
