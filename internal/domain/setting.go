package domain

import "time"

// DefaultHotkey is the global shortcut used when nothing is persisted.
const DefaultHotkey = "CmdOrCtrl+Shift+G"

// SettingKeyHotkey is the settings-store key for the overlay toggle hotkey.
const SettingKeyHotkey = "hotkey"

// Setting is one persisted key/value pair. Only UI preferences live
// here; the artwork cache and history are session-local and never
// stored.
type Setting struct {
	Key       string    `gorm:"type:text;primaryKey" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Setting.
func (Setting) TableName() string {
	return "settings"
}
