package engine

import (
	"log/slog"
	"sync"
	"time"

	"golang.org/x/net/html"

	"muffle/internal/filter"
	"muffle/internal/logging"
	"muffle/internal/media"
	"muffle/internal/overlay"
	"muffle/internal/rules"
)

// Page describes the document the engine operates on.
type Page struct {
	Host       string
	IframeHost string
	Iframe     bool
	Doc        *html.Node
	// Globals mirrors the page/background variables external subtitle
	// rules read their descriptor lists from.
	Globals map[string]any
}

// Options carries the collaborators and tunables a State needs.
type Options struct {
	Logger    *slog.Logger
	Filter    filter.Filter
	Messenger media.Messenger
	Observer  media.Observer
	Fetcher   media.Fetcher
	Counter   media.CounterReporter

	Filler          media.AudioPlayer
	FillerVolume    float64
	FillerLoopStart float64

	StatsEnabled bool
	DefaultShow  rules.ShowPolicy
}

// State is the per-page singleton owning the active rule list, the index
// sets, and every piece of mutable engine state.
type State struct {
	mu sync.Mutex

	page  Page
	rules []*rules.Rule
	sets  rules.Sets

	logger    *slog.Logger
	filter    filter.Filter
	messenger media.Messenger
	observer  media.Observer
	fetcher   media.Fetcher
	counter   media.CounterReporter

	filler          media.AudioPlayer
	fillerVolume    float64
	fillerLoopStart float64

	statsEnabled bool
	defaultShow  rules.ShowPolicy

	video media.Video

	muted         bool
	savedVolume   float64
	volumeSaved   bool
	pendingUnmute map[int]*time.Timer

	lastFilteredNode *html.Node
	lastFilteredText string
	lastWatcherText  map[int]string

	captionsFound bool
	fetchInFlight bool

	overlays map[int]*overlay.Renderer

	watcherStop chan struct{}
	watcherWG   sync.WaitGroup
}

// New builds the engine state for a page: it resolves the site key
// against the table, initializes that site's rules, and wires the
// collaborators. A page whose host has no table entry yields a State
// with no enabled rules, which is valid and inert.
func New(page Page, table rules.Table, opts Options) *State {
	key := rules.SiteKey(table, page.Host, page.IframeHost)
	var active []*rules.Rule
	if key != "" {
		active = table[key]
	}

	pageCtx := rules.PageContext{Host: page.Host, Iframe: page.Iframe}
	active, sets := rules.InitForPage(active, pageCtx)

	show := opts.DefaultShow
	if show == "" {
		show = rules.ShowAll
	}

	return &State{
		page:            page,
		rules:           active,
		sets:            sets,
		logger:          logging.NewComponentLogger(opts.Logger, "engine"),
		filter:          opts.Filter,
		messenger:       opts.Messenger,
		observer:        opts.Observer,
		fetcher:         opts.Fetcher,
		counter:         opts.Counter,
		filler:          opts.Filler,
		fillerVolume:    opts.FillerVolume,
		fillerLoopStart: opts.FillerLoopStart,
		statsEnabled:    opts.StatsEnabled,
		defaultShow:     show,
		pendingUnmute:   make(map[int]*time.Timer),
		lastWatcherText: make(map[int]string),
		overlays:        make(map[int]*overlay.Renderer),
	}
}

// SetVideo binds the playback element rules mute. Hosts call this when
// the page's video appears or is replaced.
func (s *State) SetVideo(v media.Video) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.video = v
}

// Rules exposes the active rule list, including disabled entries.
func (s *State) Rules() []*rules.Rule { return s.rules }

// Sets exposes the index sets computed during initialization.
func (s *State) Sets() rules.Sets { return s.sets }

// Rule returns the rule at idx, or nil when out of range.
func (s *State) Rule(idx int) *rules.Rule {
	if idx < 0 || idx >= len(s.rules) {
		return nil
	}
	return s.rules[idx]
}

// showPolicy resolves a rule's visibility policy, falling back to the
// configured default.
func (s *State) showPolicy(r *rules.Rule) rules.ShowPolicy {
	if r != nil && r.Show != "" {
		return r.Show
	}
	return s.defaultShow
}

func (s *State) pageContext() rules.PageContext {
	return rules.PageContext{Host: s.page.Host, Iframe: s.page.Iframe}
}

// reportCaptionsFound sends the captions-found transition exactly once
// per page. Callers hold s.mu.
func (s *State) reportCaptionsFound() {
	if s.captionsFound {
		return
	}
	s.captionsFound = true
	if s.messenger != nil {
		s.messenger.Send(media.Message{
			Source: "engine",
			Status: media.StatusCaptionsFound,
		})
	}
}

// ReportCaptionsLost tells the host captions disappeared, resetting the
// found latch so a later match reports again. Hosts call this when the
// caption container leaves the DOM.
func (s *State) ReportCaptionsLost() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.captionsFound {
		return
	}
	s.captionsFound = false
	if s.messenger != nil {
		s.messenger.Send(media.Message{
			Source: "engine",
			Status: media.StatusCaptionsLost,
		})
	}
}
