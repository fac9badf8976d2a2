package model

// Transcript is one persisted (audio name, transcription) pair from the
// audioTranscription table. IDs are assigned by the database and are
// monotonically increasing, so ordering by id descending yields newest first.
type Transcript struct {
	ID            int    `json:"id"`
	AudioName     string `json:"audioName"`
	Transcription string `json:"transcription"`
}
