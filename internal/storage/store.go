package storage

import "github.com/sandeepkv93/tasker/internal/model"

// TaskStore is the ordered task collection. A task's position in the slice is
// its only identity, so indices must come from the snapshot being mutated.
type TaskStore struct {
	tasks []model.Task
}

func NewTaskStore(tasks ...model.Task) *TaskStore {
	out := &TaskStore{tasks: make([]model.Task, 0, len(tasks))}
	for _, t := range tasks {
		out.tasks = append(out.tasks, cloneTask(t))
	}
	return out
}

func (s *TaskStore) Len() int {
	return len(s.tasks)
}

// Tasks returns a copy of the tasks in display order.
func (s *TaskStore) Tasks() []model.Task {
	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, cloneTask(t))
	}
	return out
}

func (s *TaskStore) At(index int) (model.Task, error) {
	if err := s.checkIndex(index); err != nil {
		return model.Task{}, err
	}
	return cloneTask(s.tasks[index]), nil
}

func (s *TaskStore) Clone() *TaskStore {
	return NewTaskStore(s.tasks...)
}

func (s *TaskStore) Append(t model.Task) {
	s.tasks = append(s.tasks, cloneTask(t))
}

func (s *TaskStore) ToggleDone(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.tasks[index].Done = !s.tasks[index].Done
	return nil
}

// Remove deletes the task at index; later tasks shift down by one.
func (s *TaskStore) Remove(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.tasks = append(s.tasks[:index], s.tasks[index+1:]...)
	return nil
}

func (s *TaskStore) checkIndex(index int) error {
	if index < 0 || index >= len(s.tasks) {
		return &IndexError{Index: index, Len: len(s.tasks)}
	}
	return nil
}

func cloneTask(t model.Task) model.Task {
	if t.Deadline != nil {
		d := *t.Deadline
		t.Deadline = &d
	}
	return t
}
