package model

import "time"

// Document is an uploaded file attached to a task. Name is the filename the
// client uploaded; Path is where the file lives on disk.
type Document struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Path      string    `json:"path" gorm:"size:512;not null"`
	TaskID    uint      `json:"taskId" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`

	Task *Task `json:"-" gorm:"foreignKey:TaskID"`
}
