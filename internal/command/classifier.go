// Package command classifies raw user input into the intent it expresses:
// a reminder, an alarm, an image-generation request, or plain chat.
package command

import (
	"strings"
	"time"

	"github.com/GowthamOleti/itelo/internal/timeparse"
)

// Kind classifies the intent of a submission.
type Kind string

const (
	KindReminder Kind = "reminder"
	KindAlarm    Kind = "alarm"
	KindImage    Kind = "image"
	KindChat     Kind = "chat"
)

// Command is the transient classification result. Exactly one payload field
// matching Kind is set; commands are never persisted.
type Command struct {
	Kind     Kind
	Reminder *ReminderCommand
	Alarm    *AlarmCommand
	Image    *ImageCommand
	Chat     *ChatCommand
}

// ReminderCommand carries the extracted task title and optional due time.
type ReminderCommand struct {
	Title string
	DueAt *time.Time
}

// AlarmCommand carries the requested alarm time. At is nil when no time could
// be extracted; the handler must report the parse failure rather than fall
// through to chat.
type AlarmCommand struct {
	At *time.Time
}

// ImageCommand carries the stripped generation prompt. The original text is
// preserved by the caller for display as the user message.
type ImageCommand struct {
	Prompt string
}

// ChatCommand carries the text verbatim for plain generation.
type ChatCommand struct {
	Text string
}

// imageTriggers is the fixed ordered list of phrases stripped from an image
// request to obtain the prompt. Only the first match is removed, which also
// makes prompt extraction idempotent: a stripped prompt no longer classifies
// as an image request.
var imageTriggers = []string{
	"generate image of",
	"create image of",
	"make an image of",
	"draw an image of",
	"/image",
}

// Classify inspects raw text and returns the matching Command. Classification
// is a pure function of the lowercased input; now is only used to resolve
// relative time expressions for reminder and alarm payloads.
func Classify(raw string, now time.Time) Command {
	lowered := strings.ToLower(raw)

	if strings.Contains(lowered, "remind") || strings.Contains(lowered, "reminder") {
		cmd := &ReminderCommand{Title: timeparse.ExtractTaskText(raw)}
		if due, ok := timeparse.ExtractDateTime(raw, now); ok {
			cmd.DueAt = &due
		}
		return Command{Kind: KindReminder, Reminder: cmd}
	}

	if strings.Contains(lowered, "alarm") || strings.Contains(lowered, "wake me") {
		cmd := &AlarmCommand{}
		if at, ok := timeparse.ExtractDateTime(raw, now); ok {
			cmd.At = &at
		}
		return Command{Kind: KindAlarm, Alarm: cmd}
	}

	if isImageRequest(lowered) {
		return Command{Kind: KindImage, Image: &ImageCommand{Prompt: extractImagePrompt(raw)}}
	}

	return Command{Kind: KindChat, Chat: &ChatCommand{Text: raw}}
}

func isImageRequest(lowered string) bool {
	if strings.HasPrefix(lowered, "/image") {
		return true
	}
	if !strings.Contains(lowered, "image") {
		return false
	}
	for _, verb := range []string{"generate", "create", "make", "draw"} {
		if strings.Contains(lowered, verb) {
			return true
		}
	}
	return false
}

func extractImagePrompt(raw string) string {
	prompt := raw
	lowered := strings.ToLower(raw)
	for _, trigger := range imageTriggers {
		if idx := strings.Index(lowered, trigger); idx >= 0 {
			prompt = prompt[:idx] + prompt[idx+len(trigger):]
			break
		}
	}
	return strings.TrimSpace(prompt)
}
