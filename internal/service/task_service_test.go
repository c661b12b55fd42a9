package service

import (
	"context"
	"errors"
	"task-service/internal/entity"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func TestCreateThenGetTask(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	// a client supplied id is ignored
	created, err := s.tasks.CreateTask(ctx, &entity.Task{TaskID: 99, Title: "buy milk"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if created.TaskID != 1 {
		t.Errorf("TaskID = %d, want 1", created.TaskID)
	}

	got, err := s.tasks.GetTaskByID(ctx, 1)
	if err != nil {
		t.Fatalf("GetTaskByID: %v", err)
	}
	if *got != (entity.Task{TaskID: 1, Title: "buy milk", Completed: false}) {
		t.Errorf("got %+v", got)
	}

	byTitle, err := s.tasks.GetTaskByTitle(ctx, "buy milk")
	if err != nil {
		t.Fatalf("GetTaskByTitle: %v", err)
	}
	if byTitle.TaskID != 1 {
		t.Errorf("TaskID = %d, want 1", byTitle.TaskID)
	}

	if keys := s.publisher.Keys(); len(keys) != 1 || keys[0] != "task-created-1" {
		t.Errorf("published %v", keys)
	}
}

func TestGetMissingTask(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	_, err := s.tasks.GetTaskByID(ctx, 1)
	assertKind(t, err, ErrNotFound, "Task not found")

	_, err = s.tasks.GetTaskByTitle(ctx, "nope")
	assertKind(t, err, ErrNotFound, "Task not found")
}

func TestDeleteTaskThenGet(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	task, err := s.tasks.CreateTask(ctx, &entity.Task{Title: "a"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	msg, err := s.tasks.DeleteTaskByID(ctx, task.TaskID)
	if err != nil {
		t.Fatalf("DeleteTaskByID: %v", err)
	}
	if msg.Message != "Task Deleted Successfully" {
		t.Errorf("Message = %q", msg.Message)
	}

	_, err = s.tasks.GetTaskByID(ctx, task.TaskID)
	assertKind(t, err, ErrNotFound, "Task not found")

	_, err = s.tasks.DeleteTaskByID(ctx, task.TaskID)
	assertKind(t, err, ErrNotFound, "Task not found")
}

func TestDeleteTaskByTitle(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	if _, err := s.tasks.CreateTask(ctx, &entity.Task{Title: "walk dog"}); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if _, err := s.tasks.DeleteTaskByTitle(ctx, "walk dog"); err != nil {
		t.Fatalf("DeleteTaskByTitle: %v", err)
	}
	_, err := s.tasks.DeleteTaskByTitle(ctx, "walk dog")
	assertKind(t, err, ErrNotFound, "Task not found")
}

func TestListTasksEmptyIsNotFound(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	_, err := s.tasks.ListTasks(ctx, DefaultSkip, DefaultLimit)
	assertKind(t, err, ErrNotFound, "Task is empty")

	for _, title := range []string{"a", "b", "c"} {
		if _, err := s.tasks.CreateTask(ctx, &entity.Task{Title: title}); err != nil {
			t.Fatalf("CreateTask: %v", err)
		}
	}
	tasks, err := s.tasks.ListTasks(ctx, DefaultSkip, DefaultLimit)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 3 {
		t.Errorf("len(tasks) = %d, want 3", len(tasks))
	}

	// a window past the end is empty too
	_, err = s.tasks.ListTasks(ctx, 3, DefaultLimit)
	assertKind(t, err, ErrNotFound, "Task is empty")
}

func TestUpdateTaskOverwritesOmittedFields(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	task, err := s.tasks.CreateTask(ctx, &entity.Task{Title: "buy milk", Completed: true})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	msg, err := s.tasks.UpdateTask(ctx, task.TaskID, entity.TaskUpdate{Title: ptr("buy bread")})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if msg.Message != "Task Updated Successfully" {
		t.Errorf("Message = %q", msg.Message)
	}

	got, err := s.tasks.GetTaskByID(ctx, task.TaskID)
	if err != nil {
		t.Fatalf("GetTaskByID: %v", err)
	}
	if got.Title != "buy bread" || got.Completed {
		t.Errorf("got %+v, want title overwritten and completed reset", got)
	}

	if _, err := s.tasks.UpdateTask(ctx, task.TaskID, entity.TaskUpdate{Completed: ptr(true)}); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	got, _ = s.tasks.GetTaskByID(ctx, task.TaskID)
	if got.Title != "" || !got.Completed {
		t.Errorf("got %+v, want title reset and completed set", got)
	}
}

func TestUpdateTaskCompletionOnlyTouchesCompleted(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	task, err := s.tasks.CreateTask(ctx, &entity.Task{Title: "buy milk"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if _, err := s.tasks.UpdateTaskCompletion(ctx, task.TaskID, entity.TaskUpdateCompletion{Completed: ptr(true)}); err != nil {
		t.Fatalf("UpdateTaskCompletion: %v", err)
	}

	got, err := s.tasks.GetTaskByID(ctx, task.TaskID)
	if err != nil {
		t.Fatalf("GetTaskByID: %v", err)
	}
	if got.Title != "buy milk" || !got.Completed {
		t.Errorf("got %+v", got)
	}

	if _, err := s.tasks.UpdateTaskCompletion(ctx, task.TaskID, entity.TaskUpdateCompletion{}); err != nil {
		t.Fatalf("UpdateTaskCompletion: %v", err)
	}
	got, _ = s.tasks.GetTaskByID(ctx, task.TaskID)
	if got.Completed {
		t.Errorf("omitted completed should reset to false")
	}
}

func TestUpdateMissingTask(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	_, err := s.tasks.UpdateTask(ctx, 5, entity.TaskUpdate{})
	assertKind(t, err, ErrNotFound, "Task not found")

	_, err = s.tasks.UpdateTaskCompletion(ctx, 5, entity.TaskUpdateCompletion{})
	assertKind(t, err, ErrNotFound, "Task not found")
}

func TestDeleteAllTasks(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	_, err := s.tasks.DeleteAllTasks(ctx)
	assertKind(t, err, ErrNotFound, "Task is empty")

	if _, err := s.tasks.CreateTask(ctx, &entity.Task{Title: "a"}); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	msg, err := s.tasks.DeleteAllTasks(ctx)
	if err != nil {
		t.Fatalf("DeleteAllTasks: %v", err)
	}
	if msg.Message != "Task Deleted Successfully" {
		t.Errorf("Message = %q", msg.Message)
	}
}

func TestPublishFailureDoesNotFailRequest(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	s.publisher.err = errors.New("broker down")

	if _, err := s.tasks.CreateTask(ctx, &entity.Task{Title: "a"}); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if _, err := s.tasks.GetTaskByID(ctx, 1); err != nil {
		t.Fatalf("task should be committed: %v", err)
	}
}
