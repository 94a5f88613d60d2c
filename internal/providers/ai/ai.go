package ai

import "context"

// TranscriptLine is one "{role}: {text}" line of a conversation handed to
// the summarizer, in the order the caller selected.
type TranscriptLine struct {
	Role string
	Text string
}

type Provider interface {
	// Translate renders text for the other side of the conversation:
	// doctor speech into patient-friendly language, patient speech into
	// clinical terms.
	Translate(ctx context.Context, role, text string) (string, error)
	// Transcribe converts raw audio bytes to text. filename is only used
	// to hint the audio format to the service.
	Transcribe(ctx context.Context, filename string, audio []byte) (string, error)
	// Summarize produces a summary of the given conversation lines.
	Summarize(ctx context.Context, lines []TranscriptLine) (string, error)
}
