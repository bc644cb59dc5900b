package translate

import "context"

// Speaker is the outbound port for speech synthesis of translated
// phrases. Audio is a convenience layer; translation succeeds without it.
type Speaker interface {
	Speak(ctx context.Context, text string, languageTag string) ([]byte, error)
}

// NopSpeaker satisfies Speaker without producing audio. It is the
// default when no synthesis backend is configured.
type NopSpeaker struct{}

// Speak returns no audio and no error.
func (NopSpeaker) Speak(context.Context, string, string) ([]byte, error) {
	return nil, nil
}
