// Package stream turns a fragment sequence from a generation backend into an
// incrementally built assistant message plus application-level events.
package stream

import (
	"errors"
	"unicode"

	"github.com/GowthamOleti/itelo/internal/generator"
	"github.com/GowthamOleti/itelo/internal/model"
)

// Streamer consumes fragments and appends them to a single target message.
// The word-boundary state carries across fragment boundaries, since a word may
// be split between two fragments. A Streamer drives exactly one message; the
// target's content must not be written by anyone else once Consume has begun.
type Streamer struct {
	insideWord bool
	started    bool
}

func New() *Streamer {
	return &Streamer{}
}

// Consume reads fragments until the source is exhausted or fails.
//
// Per fragment: the content is appended to target.Content first, then the
// events for it are emitted, so the text mutation is always visible before
// its event. Exactly one EventStarted is emitted on the very first fragment;
// one EventWord per word start; one EventDelta per non-empty fragment.
//
// On a failed fragment the partial content is kept, a single EventFailed is
// emitted and the failure is returned. There is no retry: a failure is
// terminal for this message.
func (s *Streamer) Consume(fragments <-chan generator.Fragment, target *model.Message, events chan<- model.StreamEvent) error {
	for frag := range fragments {
		if frag.Error != "" {
			events <- model.StreamEvent{Type: model.EventFailed, MessageID: target.ID, Error: frag.Error}
			return errors.New(frag.Error)
		}

		first := !s.started
		s.started = true

		if frag.Content != "" {
			target.Content += frag.Content
		}
		words := s.countStartedWords(frag.Content)

		if first {
			events <- model.StreamEvent{Type: model.EventStarted, MessageID: target.ID}
		}
		if frag.Content != "" {
			events <- model.StreamEvent{Type: model.EventDelta, MessageID: target.ID, Content: frag.Content}
		}
		for i := 0; i < words; i++ {
			events <- model.StreamEvent{Type: model.EventWord, MessageID: target.ID}
		}

		if frag.Done {
			break
		}
	}
	return nil
}

// countStartedWords counts runs of word characters that begin within chunk,
// continuing the run state from the previous chunk.
func (s *Streamer) countStartedWords(chunk string) int {
	started := 0
	for _, r := range chunk {
		if isWordRune(r) {
			if !s.insideWord {
				started++
			}
			s.insideWord = true
		} else {
			s.insideWord = false
		}
	}
	return started
}

// Word characters are alphanumerics plus the apostrophe variants, so
// contractions like "don't" count as one word.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '’'
}
