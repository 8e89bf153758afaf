package generator

import (
	"context"
	"math/rand"
	"strings"
	"time"
)

// mockResponses are the canned personality lines the mock backend cycles
// through. The prompt is echoed into the first one so streamed output still
// feels responsive during development.
var mockResponses = []string{
	"Ooh, that's a fun topic! Let me tell you what I know about %s.",
	"Thinking... thinking... Got it! Here's the scoop on that.",
	"I'm feeling super helpful today! Let's dive into that.",
	"Beep boop! Just kidding, I'm not a robot... well, kinda. Here's what you need to know!",
	"That's a great question! Let me sprinkle some knowledge on that for you.",
}

// MockGenerator streams a canned response rune by rune, simulating the typing
// cadence of a real model. With a zero delay it is also the deterministic
// backend used by tests and the default configuration.
type MockGenerator struct {
	delay time.Duration
	pick  func(n int) int
}

func NewMockGenerator() *MockGenerator {
	return &MockGenerator{
		delay: 30 * time.Millisecond,
		pick:  rand.Intn,
	}
}

// NewInstantMockGenerator returns a mock backend with no typing delay and a
// fixed response choice, for tests that assert on streamed content.
func NewInstantMockGenerator() *MockGenerator {
	return &MockGenerator{pick: func(int) int { return 2 }}
}

func (g *MockGenerator) GenerateStream(ctx context.Context, req *GenerateRequest, ch chan<- Fragment) error {
	defer close(ch)

	text := strings.Replace(mockResponses[g.pick(len(mockResponses))], "%s", req.Prompt, 1)

	for _, r := range text {
		if g.delay > 0 {
			select {
			case <-time.After(g.delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		select {
		case ch <- Fragment{Content: string(r)}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	select {
	case ch <- Fragment{Done: true}:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
