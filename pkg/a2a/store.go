package a2a

import "sync"

// TaskStore keeps completed tasks in memory so orchestrators that poll
// tasks/get can retrieve the final result.
//
// Tasks are never evicted or persisted: storage grows for the life of the
// process and a restart forgets everything. Callers may rely on indefinite
// retrieval within a session, so this is a documented limitation rather
// than something to fix with an eviction policy.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[string]*Task
}

// NewTaskStore creates an empty task store.
func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks: make(map[string]*Task),
	}
}

// Put stores a task under its id, replacing any previous entry.
func (s *TaskStore) Put(id string, task *Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[id] = task
}

// Get returns the task stored under id, or false when the id was never
// issued (or was issued before the last restart).
func (s *TaskStore) Get(id string) (*Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[id]
	return task, ok
}

// Len returns the number of stored tasks.
func (s *TaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}
