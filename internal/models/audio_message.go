package models

import "time"

// AudioMessage records one uploaded audio utterance. The transcript is
// attached once, right after the speech-to-text call returns; apart from
// that the row is immutable. There is no foreign key to the companion
// Message created from the transcript.
type AudioMessage struct {
	ID         string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Role       string    `gorm:"column:role;type:text;index" json:"role"`
	AudioPath  string    `gorm:"column:audio_path;type:text" json:"audio_path"`
	Transcript string    `gorm:"column:transcript;type:text" json:"transcript"`
	Timestamp  time.Time `gorm:"column:timestamp;type:timestamptz;index" json:"timestamp"`
}

func (AudioMessage) TableName() string { return "audio_messages" }
