package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/rs/zerolog"
	"os"
	"task-service/internal/entity"
	"task-service/internal/events"
	"task-service/internal/repository"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

const (
	DefaultSkip  = 0
	DefaultLimit = 100
)

// TaskService is a service that provides task-related operations
type TaskService struct {
	taskRepo  *repository.TaskRepository
	publisher events.Publisher
}

// NewTaskService creates a new instance of TaskService
func NewTaskService(taskRepo *repository.TaskRepository, publisher events.Publisher) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		publisher: publisher,
	}
}

// GetTaskByID retrieves a task by its id.
func (s *TaskService) GetTaskByID(ctx context.Context, id int) (*entity.Task, error) {
	task, err := s.taskRepo.GetTaskByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("Task not found")
		}
		logger.Error().Err(err).Msgf("Error getting task by ID %d", id)
		return nil, err
	}

	return task, nil
}

// GetTaskByTitle retrieves the first task with the exact title.
func (s *TaskService) GetTaskByTitle(ctx context.Context, title string) (*entity.Task, error) {
	task, err := s.taskRepo.GetTaskByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("Task not found")
		}
		logger.Error().Err(err).Msgf("Error getting task by title %q", title)
		return nil, err
	}

	return task, nil
}

// ListTasks returns a window of tasks. An empty window is reported as not found.
func (s *TaskService) ListTasks(ctx context.Context, skip, limit int) ([]*entity.Task, error) {
	tasks, err := s.taskRepo.GetTasks(ctx, skip, limit)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing tasks")
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, notFound("Task is empty")
	}

	return tasks, nil
}

// CreateTask inserts a task. The id is always assigned by the database.
func (s *TaskService) CreateTask(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	createdTask, err := s.taskRepo.CreateTask(ctx, &entity.Task{Title: task.Title, Completed: task.Completed})
	if err != nil {
		logger.Error().Err(err).Msg("Error creating task")
		return nil, err
	}

	s.publish(ctx, fmt.Sprintf("task-created-%d", createdTask.TaskID), createdTask)
	return createdTask, nil
}

// UpdateTask overwrites every field of the task. Omitted fields are reset to their zero value.
func (s *TaskService) UpdateTask(ctx context.Context, id int, update entity.TaskUpdate) (*entity.Message, error) {
	task, err := s.GetTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Title = ""
	if update.Title != nil {
		task.Title = *update.Title
	}
	task.Completed = update.Completed != nil && *update.Completed

	return s.saveTask(ctx, task)
}

// UpdateTaskCompletion overwrites the completion flag. An omitted flag resets it to false.
func (s *TaskService) UpdateTaskCompletion(ctx context.Context, id int, update entity.TaskUpdateCompletion) (*entity.Message, error) {
	task, err := s.GetTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Completed = update.Completed != nil && *update.Completed

	return s.saveTask(ctx, task)
}

func (s *TaskService) saveTask(ctx context.Context, task *entity.Task) (*entity.Message, error) {
	updatedTask, err := s.taskRepo.UpdateTask(ctx, task)
	if err != nil {
		logger.Error().Err(err).Msgf("Error updating task %d", task.TaskID)
		return nil, err
	}

	s.publish(ctx, fmt.Sprintf("task-updated-%d", updatedTask.TaskID), updatedTask)
	return &entity.Message{Message: "Task Updated Successfully"}, nil
}

// DeleteTaskByID removes a task by id.
func (s *TaskService) DeleteTaskByID(ctx context.Context, id int) (*entity.Message, error) {
	task, err := s.GetTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.deleteTask(ctx, task)
}

// DeleteTaskByTitle removes the first task with the exact title.
func (s *TaskService) DeleteTaskByTitle(ctx context.Context, title string) (*entity.Message, error) {
	task, err := s.GetTaskByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	return s.deleteTask(ctx, task)
}

func (s *TaskService) deleteTask(ctx context.Context, task *entity.Task) (*entity.Message, error) {
	if err := s.taskRepo.DeleteTask(ctx, task.TaskID); err != nil {
		logger.Error().Err(err).Msgf("Error deleting task %d", task.TaskID)
		return nil, err
	}

	s.publish(ctx, fmt.Sprintf("task-deleted-%d", task.TaskID), task)
	return &entity.Message{Message: "Task Deleted Successfully"}, nil
}

// DeleteAllTasks removes every task. Deleting from an empty table is reported as not found.
func (s *TaskService) DeleteAllTasks(ctx context.Context) (*entity.Message, error) {
	deleted, err := s.taskRepo.DeleteAllTasks(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error deleting all tasks")
		return nil, err
	}
	if deleted == 0 {
		return nil, notFound("Task is empty")
	}

	s.publish(ctx, "task-deleted-all", map[string]int64{"deleted": deleted})
	return &entity.Message{Message: "Task Deleted Successfully"}, nil
}

// publish sends an event. The row is already committed, so failures are only logged.
func (s *TaskService) publish(ctx context.Context, key string, payload any) {
	if err := s.publisher.Publish(ctx, key, payload); err != nil {
		logger.Warn().Err(err).Msgf("Error publishing event %s", key)
	}
}
