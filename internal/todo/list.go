package todo

import "time"

// List is the ordered task collection. Order is ID order.
type List struct {
	Tasks []Task
}

// NewList returns a list holding tasks.
func NewList(tasks ...Task) *List {
	return &List{Tasks: tasks}
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.Tasks)
}

// IsEmpty reports whether the list holds no tasks.
func (l *List) IsEmpty() bool {
	return len(l.Tasks) == 0
}

// GetTask returns a task by ID, or nil if not found.
func (l *List) GetTask(id int) *Task {
	for i := range l.Tasks {
		if l.Tasks[i].ID == id {
			return &l.Tasks[i]
		}
	}
	return nil
}

// Lookup returns the task with the given ID. It returns ErrEmptyList when
// the list has no tasks and a *NotFoundError when no task has that ID.
func (l *List) Lookup(id int) (*Task, error) {
	if l.IsEmpty() {
		return nil, ErrEmptyList
	}
	task := l.GetTask(id)
	if task == nil {
		return nil, &NotFoundError{ID: id}
	}
	return task, nil
}

// AddTask appends a new todo task with the next ID and returns it.
func (l *List) AddTask(description string, now time.Time) Task {
	task := Task{
		ID:          len(l.Tasks) + 1,
		Description: description,
		Status:      StatusTodo,
		CreatedAt:   NewTimestamp(now),
	}
	l.Tasks = append(l.Tasks, task)
	return task
}

// UpdateTask replaces a task's description and sets updatedAt.
func (l *List) UpdateTask(id int, description string, now time.Time) error {
	task, err := l.Lookup(id)
	if err != nil {
		return err
	}
	task.Description = description
	task.UpdatedAt = NewTimestamp(now).Ptr()
	return nil
}

// SetTaskStatus changes a task's status and sets updatedAt. It returns a
// *StatusError, leaving the task untouched, when the task already has status.
func (l *List) SetTaskStatus(id int, status Status, now time.Time) error {
	task, err := l.Lookup(id)
	if err != nil {
		return err
	}
	if task.Status == status {
		return &StatusError{ID: id, Status: status}
	}
	task.Status = status
	task.UpdatedAt = NewTimestamp(now).Ptr()
	return nil
}

// DeleteTask removes a task and renumbers the remaining tasks to their new
// 1-based positions. It returns the removed task.
func (l *List) DeleteTask(id int) (Task, error) {
	if _, err := l.Lookup(id); err != nil {
		return Task{}, err
	}
	var removed Task
	kept := make([]Task, 0, len(l.Tasks)-1)
	found := false
	for _, task := range l.Tasks {
		if !found && task.ID == id {
			removed = task
			found = true
			continue
		}
		kept = append(kept, task)
	}
	l.Tasks = kept
	l.renumber()
	return removed, nil
}

func (l *List) renumber() {
	for i := range l.Tasks {
		l.Tasks[i].ID = i + 1
	}
}

// Descriptions returns every task description in ID order.
func (l *List) Descriptions() []string {
	out := make([]string, 0, len(l.Tasks))
	for _, task := range l.Tasks {
		out = append(out, task.Description)
	}
	return out
}

// DescriptionsWithStatus returns the descriptions of tasks whose status is
// exactly status. The filter is not checked against the known statuses, so an
// unknown value matches nothing.
func (l *List) DescriptionsWithStatus(status string) []string {
	var out []string
	for _, task := range l.Tasks {
		if string(task.Status) == status {
			out = append(out, task.Description)
		}
	}
	return out
}

// FilterByStatus returns the tasks with the given status in ID order.
func (l *List) FilterByStatus(status Status) []Task {
	var out []Task
	for _, task := range l.Tasks {
		if task.Status == status {
			out = append(out, task)
		}
	}
	return out
}

// CountByStatus returns the number of tasks per status. Known statuses are
// always present in the result.
func (l *List) CountByStatus() map[Status]int {
	counts := make(map[Status]int, len(Statuses()))
	for _, s := range Statuses() {
		counts[s] = 0
	}
	for _, task := range l.Tasks {
		counts[task.Status]++
	}
	return counts
}
