package domain

// AwaitingFlag marks which flow the next free-text message belongs to
type AwaitingFlag string

const (
	AwaitingBroadcastText   AwaitingFlag = "awaiting_broadcast_text"
	AwaitingVoiceText       AwaitingFlag = "awaiting_voice_text"
	AwaitingSummaryText     AwaitingFlag = "awaiting_summary_text"
	AwaitingTranslationText AwaitingFlag = "awaiting_translation_text"
)

// Valid reports whether f is one of the known flags
func (f AwaitingFlag) Valid() bool {
	switch f {
	case AwaitingBroadcastText, AwaitingVoiceText, AwaitingSummaryText, AwaitingTranslationText:
		return true
	}
	return false
}
