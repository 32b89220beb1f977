package models

import "time"

// SaveRecord groups the preset slots stored under one opaque save code.
// A record with zero presets is eligible for deletion but not required to be
// deleted.
type SaveRecord struct {
	Code         string    `json:"code" gorm:"primaryKey"`
	ActivePreset string    `json:"active_preset"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (SaveRecord) TableName() string {
	return "save_records"
}

// PresetSlot is one named snapshot under a save code.
type PresetSlot struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	Code      string    `json:"-" gorm:"uniqueIndex:idx_code_name;not null"`
	Name      string    `json:"name" gorm:"uniqueIndex:idx_code_name;not null"`
	Snapshot  []byte    `json:"-" gorm:"type:bytes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PresetSlot) TableName() string {
	return "preset_slots"
}
