package engine

import (
	"time"

	"muffle/internal/logging"
	"muffle/internal/media"
	"muffle/internal/rules"
)

// Muted reports the engine-wide mute flag. Mute state is a single
// boolean per page, never per rule.
func (s *State) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

// Mute engages the rule's mute effector. Calling it while already muted
// is a no-op; any pending delayed unmute for the rule is cancelled.
func (s *State) Mute(ruleIdx int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muteLocked(ruleIdx)
}

func (s *State) muteLocked(ruleIdx int) {
	rule := s.Rule(ruleIdx)
	if rule == nil {
		return
	}
	if timer, ok := s.pendingUnmute[ruleIdx]; ok {
		timer.Stop()
		delete(s.pendingUnmute, ruleIdx)
	}
	if s.muted {
		return
	}
	s.muted = true
	if s.statsEnabled && s.counter != nil {
		s.counter.MutedWord()
	}

	switch rule.MuteMethod {
	case rules.MuteTab:
		s.sendMute(true)
	case rules.MuteVolume:
		if s.video != nil {
			s.savedVolume = s.video.Volume()
			s.volumeSaved = true
			s.video.SetVolume(0)
		}
		s.startFiller()
	default: // rules.MuteVideo
		if s.video != nil {
			s.video.SetMuted(true)
		}
		s.startFiller()
	}
	s.logger.Debug("muted", logging.Args(logging.Int(logging.FieldRule, ruleIdx), logging.String("method", string(rule.MuteMethod)))...)
}

// Unmute reverses the rule's mute effector. When the rule declares an
// unmute delay the flip is deferred; scheduling again while a timer is
// pending replaces it rather than stacking.
func (s *State) Unmute(ruleIdx int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unmuteLocked(ruleIdx, false)
}

func (s *State) unmuteLocked(ruleIdx int, delayed bool) {
	rule := s.Rule(ruleIdx)
	if rule == nil || !s.muted {
		return
	}

	if rule.UnmuteDelay != nil && !delayed {
		if timer, ok := s.pendingUnmute[ruleIdx]; ok {
			timer.Stop()
		}
		var timer *time.Timer
		timer = time.AfterFunc(*rule.UnmuteDelay, func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			// Stop cannot halt a callback that has already fired. A mute
			// or a fresh schedule may have landed while this one waited
			// on the lock; act only if we are still the registered timer.
			if s.pendingUnmute[ruleIdx] != timer {
				return
			}
			delete(s.pendingUnmute, ruleIdx)
			s.unmuteLocked(ruleIdx, true)
		})
		s.pendingUnmute[ruleIdx] = timer
		return
	}

	s.muted = false
	switch rule.MuteMethod {
	case rules.MuteTab:
		s.sendMute(false)
	case rules.MuteVolume:
		if s.video != nil && s.volumeSaved {
			s.video.SetVolume(s.savedVolume)
		}
		s.volumeSaved = false
		s.stopFiller()
	default:
		if s.video != nil {
			s.video.SetMuted(false)
		}
		s.stopFiller()
	}
	s.logger.Debug("unmuted", logging.Args(logging.Int(logging.FieldRule, ruleIdx), logging.Bool("delayed", delayed))...)
}

func (s *State) sendMute(mute bool) {
	if s.messenger == nil {
		return
	}
	v := mute
	s.messenger.Send(media.Message{
		Destination: "background",
		Source:      "engine",
		Mute:        &v,
	})
}

// Filler audio runs in lockstep with the video while muted: it starts
// with the mute effector, pauses when the video pauses, and stops on
// unmute.

func (s *State) startFiller() {
	if s.filler == nil {
		return
	}
	s.filler.SetVolume(s.fillerVolume)
	if s.fillerLoopStart > 0 {
		s.filler.Seek(s.fillerLoopStart)
	}
	s.filler.Play()
}

func (s *State) stopFiller() {
	if s.filler == nil {
		return
	}
	s.filler.Pause()
	s.filler.Seek(0)
}

// VideoPaused is called by the host when the native video pauses.
func (s *State) VideoPaused() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.muted && s.filler != nil && s.filler.Playing() {
		s.filler.Pause()
	}
}

// VideoResumed is called by the host when the native video resumes.
func (s *State) VideoResumed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.muted && s.filler != nil && !s.filler.Playing() {
		s.filler.Play()
	}
}

// CancelPendingUnmutes stops every outstanding unmute timer. Used on
// page teardown.
func (s *State) CancelPendingUnmutes() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for idx, timer := range s.pendingUnmute {
		timer.Stop()
		delete(s.pendingUnmute, idx)
	}
}
