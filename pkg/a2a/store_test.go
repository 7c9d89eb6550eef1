package a2a

import (
	"fmt"
	"sync"
	"testing"
)

func TestTaskStorePutGet(t *testing.T) {
	store := NewTaskStore()

	if _, ok := store.Get("missing"); ok {
		t.Error("Get on empty store returned a task")
	}

	task := &Task{Kind: KindTask, ID: "task-1", Status: TaskStatus{State: TaskStateCompleted}}
	store.Put(task.ID, task)

	got, ok := store.Get("task-1")
	if !ok {
		t.Fatal("stored task not found")
	}
	if got != task {
		t.Error("Get returned a different task")
	}
	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1", store.Len())
	}

	// Same id overwrites.
	replacement := &Task{Kind: KindTask, ID: "task-1"}
	store.Put("task-1", replacement)
	if got, _ := store.Get("task-1"); got != replacement {
		t.Error("Put did not replace existing task")
	}
	if store.Len() != 1 {
		t.Errorf("Len after overwrite = %d, want 1", store.Len())
	}
}

func TestTaskStoreConcurrent(t *testing.T) {
	store := NewTaskStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("task-%d", i)
			store.Put(id, &Task{Kind: KindTask, ID: id})
			if _, ok := store.Get(id); !ok {
				t.Errorf("task %s not visible after Put", id)
			}
		}(i)
	}
	wg.Wait()

	if store.Len() != 50 {
		t.Errorf("Len = %d, want 50", store.Len())
	}
}
