package auth

import "taskdesk/internal/model"

// CanAccessTask is the ownership rule for tasks and, transitively, for the
// documents they own: admins may access any task, everyone else only tasks
// assigned to them.
func CanAccessTask(user *model.User, task *model.Task) bool {
	if user.IsAdmin() {
		return true
	}
	return task.AssignedToUser(user.ID)
}
