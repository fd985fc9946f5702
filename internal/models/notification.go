package models

import (
	"gorm.io/datatypes"
)

// Notification is persisted when a movie becomes PUBLISHED+PUBLIC and is
// broadcast to connected clients as a "newMovie" event.
type Notification struct {
	BaseModel
	Type    string         `gorm:"not null" json:"type"` // "newMovie"
	Title   string         `gorm:"not null" json:"title"`
	Message string         `json:"message"`
	Link    string         `json:"link,omitempty"`
	Data    datatypes.JSON `gorm:"type:jsonb" json:"data,omitempty"` // {"movieId": "...", "imagePoster": "..."}
}
