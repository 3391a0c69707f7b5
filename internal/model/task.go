package model

import "time"

// Task is the unit of work users are assigned to. It exclusively owns its
// Documents: deleting a task deletes them.
type Task struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Status      string    `json:"status" gorm:"size:50;index"`
	Priority    string    `json:"priority" gorm:"size:50;index"`
	DueDate     time.Time `json:"dueDate" gorm:"index"`
	AssignedTo  *uint     `json:"assignedTo" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Documents []Document `json:"documents" gorm:"foreignKey:TaskID"`
}

// AssignedToUser reports whether the task is assigned to the given user id.
func (t *Task) AssignedToUser(userID uint) bool {
	return t.AssignedTo != nil && *t.AssignedTo == userID
}
