package entity

type Task struct {
	TaskID    int    `json:"task_id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// TaskUpdate overwrites every field of a task. Fields left out of the request
// body are written as their zero value.
type TaskUpdate struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

type TaskUpdateCompletion struct {
	Completed *bool `json:"completed"`
}

/*
Mysql Table

CREATE TABLE tasks (
	task_id INT AUTO_INCREMENT PRIMARY KEY,
	title VARCHAR(50) NOT NULL DEFAULT '',
	completed BOOLEAN NOT NULL DEFAULT FALSE
);
*/
