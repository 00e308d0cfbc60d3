package tracker

import (
	"fmt"

	"github.com/nibzard/task-cli/internal/todo"
)

// Result lines printed by the task commands.
const (
	MsgAdded             = "Task added successfully (ID: %d)."
	MsgUpdated           = "Task ID %d updated successfully!"
	MsgDeleted           = "Task ID %d deleted successfully!"
	MsgStatusChanged     = "Task ID %d status changed successfully!"
	MsgNotFound          = "Task ID %d not found."
	MsgNothingToUpdate   = "No tasks available to update. Add task(s) first."
	MsgNothingToDelete   = "No tasks available to delete. Add task(s) first."
	MsgNothingToMark     = "No tasks available to mark. Add task(s) first."
	MsgAlreadyInProgress = "Task already in progress."
	MsgAlreadyDone       = "Task already marked as done."
	MsgNoStatusMatches   = "There are no tasks available with this status."
	MsgNothingToList     = "No tasks available to list."
)

func alreadyInStatus(status todo.Status) string {
	switch status {
	case todo.StatusInProgress:
		return MsgAlreadyInProgress
	case todo.StatusDone:
		return MsgAlreadyDone
	default:
		return fmt.Sprintf("Task already %s.", status)
	}
}
