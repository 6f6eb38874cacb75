package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"muffle/internal/logging"
	"muffle/internal/media"
	"muffle/internal/rules"
	"muffle/internal/subtitles"
)

// ErrFetchInFlight is returned when an external subtitle download is
// already running for this page.
var ErrFetchInFlight = errors.New("external subtitle fetch already in flight")

// LoadExternalSubtitles resolves the rule's subtitle descriptor list
// from the page globals, downloads the entry matching the rule's target
// language, parses it by declared format, and installs the cues as a
// new classified track on the video. A single in-flight flag prevents
// overlapping fetches. Every failure is logged and leaves engine state
// unchanged; no partial track is ever installed.
func (s *State) LoadExternalSubtitles(ctx context.Context, ruleIdx int) error {
	s.mu.Lock()
	if s.fetchInFlight {
		s.mu.Unlock()
		return ErrFetchInFlight
	}
	s.fetchInFlight = true
	rule := s.Rule(ruleIdx)
	video := s.video
	fetcher := s.fetcher
	globals := s.page.Globals
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.fetchInFlight = false
		s.mu.Unlock()
	}()

	err := s.loadExternal(ctx, ruleIdx, rule, video, fetcher, globals)
	if err != nil {
		s.logger.Warn("external subtitles unavailable",
			logging.Args(logging.Int(logging.FieldRule, ruleIdx), logging.Error(err))...)
	}
	return err
}

func (s *State) loadExternal(ctx context.Context, ruleIdx int, rule *rules.Rule, video media.Video, fetcher media.Fetcher, globals map[string]any) error {
	if rule == nil || rule.Cue == nil || rule.Cue.External == nil {
		return errors.New("rule has no external subtitle configuration")
	}
	if video == nil {
		return errors.New("no video bound")
	}
	if fetcher == nil {
		return errors.New("no fetcher configured")
	}
	ext := rule.Cue.External

	raw, ok := globals[ext.Var]
	if !ok {
		return fmt.Errorf("subtitle variable %q not present", ext.Var)
	}
	descriptors, err := descriptorList(raw)
	if err != nil {
		return fmt.Errorf("subtitle variable %q: %w", ext.Var, err)
	}

	entry, matchedLang, err := selectDescriptor(descriptors, ext.LangKey, ext.Language)
	if err != nil {
		return err
	}

	url, _ := entry[ext.URLKey].(string)
	if url == "" {
		return fmt.Errorf("descriptor missing url key %q", ext.URLKey)
	}
	format, _ := entry[ext.FormatKey].(string)

	payload, err := fetcher.Fetch(ctx, url, "GET")
	if err != nil {
		return fmt.Errorf("download subtitles: %w", err)
	}

	cues, err := subtitles.Parse(format, payload)
	if err != nil {
		return err
	}

	track := &media.TextTrack{
		ID:       uuid.NewString(),
		Label:    ext.TrackLabel,
		Language: matchedLang,
		Kind:     "subtitles",
		Mode:     media.TrackModeHidden,
	}
	for _, cue := range cues {
		track.Cues = append(track.Cues, &media.Cue{
			Start:    cue.Start,
			End:      cue.End,
			Text:     cue.Text,
			Align:    cue.Align,
			Line:     cue.Line,
			Position: cuePosition(cue.Position),
		})
	}
	video.AddTextTrack(track)
	s.ProcessCues(track, ruleIdx)

	s.logger.Info("installed external subtitle track",
		logging.Args(logging.Int(logging.FieldRule, ruleIdx), logging.String("language", matchedLang), logging.Int("cues", len(track.Cues)))...)
	return nil
}

// cuePosition converts a parsed "NN%" position setting to the numeric
// form track cues carry. Absent or malformed settings map to zero.
func cuePosition(setting string) int {
	setting = strings.TrimSuffix(strings.TrimSpace(setting), "%")
	if setting == "" {
		return 0
	}
	n, err := strconv.Atoi(setting)
	if err != nil {
		return 0
	}
	return n
}

// descriptorList accepts the descriptor shapes pages actually expose:
// a list of objects or a single object.
func descriptorList(raw any) ([]map[string]any, error) {
	switch v := raw.(type) {
	case []map[string]any:
		return v, nil
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, errors.New("descriptor entry is not an object")
			}
			out = append(out, m)
		}
		return out, nil
	case map[string]any:
		return []map[string]any{v}, nil
	default:
		return nil, errors.New("unsupported descriptor shape")
	}
}

// selectDescriptor picks the entry whose language tag best matches the
// rule's target language.
func selectDescriptor(descriptors []map[string]any, langKey, want string) (map[string]any, string, error) {
	if len(descriptors) == 0 {
		return nil, "", errors.New("descriptor list is empty")
	}
	if want == "" {
		lang, _ := descriptors[0][langKey].(string)
		return descriptors[0], lang, nil
	}

	wantTag, err := language.Parse(want)
	if err != nil {
		return nil, "", fmt.Errorf("target language %q: %w", want, err)
	}

	tags := make([]language.Tag, 0, len(descriptors))
	idx := make([]int, 0, len(descriptors))
	for i, entry := range descriptors {
		code, _ := entry[langKey].(string)
		if code == "" {
			continue
		}
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		idx = append(idx, i)
	}
	if len(tags) == 0 {
		return nil, "", fmt.Errorf("no descriptor matches language %q", want)
	}

	matcher := language.NewMatcher(tags)
	_, i, confidence := matcher.Match(wantTag)
	if confidence == language.No {
		return nil, "", fmt.Errorf("no descriptor matches language %q", want)
	}
	entry := descriptors[idx[i]]
	lang, _ := entry[langKey].(string)
	return entry, lang, nil
}
