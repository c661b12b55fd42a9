package repository

import (
	"context"
	"database/sql"
	"task-service/internal/entity"
)

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db}
}

func (r *TaskRepository) GetTaskByID(ctx context.Context, id int) (*entity.Task, error) {
	task := &entity.Task{}
	query := `SELECT task_id, title, completed FROM tasks WHERE task_id = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&task.TaskID, &task.Title, &task.Completed)
	if err != nil {
		return nil, err
	}

	return task, nil
}

func (r *TaskRepository) GetTaskByTitle(ctx context.Context, title string) (*entity.Task, error) {
	task := &entity.Task{}
	query := `SELECT task_id, title, completed FROM tasks WHERE title = ? ORDER BY task_id LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, title).Scan(&task.TaskID, &task.Title, &task.Completed)
	if err != nil {
		return nil, err
	}

	return task, nil
}

// GetTasks returns the tasks in the window [skip, skip+limit) ordered by id.
func (r *TaskRepository) GetTasks(ctx context.Context, skip, limit int) ([]*entity.Task, error) {
	var tasks []*entity.Task

	query := `SELECT task_id, title, completed FROM tasks ORDER BY task_id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var task entity.Task
		err := rows.Scan(&task.TaskID, &task.Title, &task.Completed)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, &task)
	}

	return tasks, rows.Err()
}

func (r *TaskRepository) CreateTask(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	query := `INSERT INTO tasks (title, completed) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, query, task.Title, task.Completed)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	task.TaskID = int(id)
	return task, nil
}

func (r *TaskRepository) UpdateTask(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	query := `UPDATE tasks SET title = ?, completed = ? WHERE task_id = ?`
	_, err := r.db.ExecContext(ctx, query, task.Title, task.Completed, task.TaskID)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (r *TaskRepository) DeleteTask(ctx context.Context, id int) error {
	query := `DELETE FROM tasks WHERE task_id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// DeleteAllTasks removes every task and reports how many rows were deleted.
func (r *TaskRepository) DeleteAllTasks(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
