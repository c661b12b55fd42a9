package api

import (
	"github.com/labstack/echo/v4"
	"task-service/internal/entity"
	"task-service/internal/service"
)

type TaskHandler struct {
	taskService *service.TaskService
}

// NewTaskHandler creates a new instance of TaskHandler
func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTask creates a new task --> /createTask
func (h *TaskHandler) CreateTask(c echo.Context) error {
	task := entity.Task{}
	if err := c.Bind(&task); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	createdTask, err := h.taskService.CreateTask(c.Request().Context(), &task)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(200, createdTask)
}

// GetTaskByID --> /getTaskID/:id
func (h *TaskHandler) GetTaskByID(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	task, err := h.taskService.GetTaskByID(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, task)
}

// GetTaskByTitle --> /getTaskTitle/:title
func (h *TaskHandler) GetTaskByTitle(c echo.Context) error {
	task, err := h.taskService.GetTaskByTitle(c.Request().Context(), c.Param("title"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, task)
}

// GetAllTasks --> /getAllTasks?skip=&limit=
func (h *TaskHandler) GetAllTasks(c echo.Context) error {
	skip, limit, err := window(c)
	if err != nil {
		return c.JSON(400, map[string]string{"error": err.Error()})
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), skip, limit)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, tasks)
}

// UpdateTask overwrites a task --> /updateTask/:id
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}
	update := entity.TaskUpdate{}
	if err := (&echo.DefaultBinder{}).BindBody(c, &update); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	msg, err := h.taskService.UpdateTask(c.Request().Context(), id, update)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, msg)
}

// UpdateCompletion overwrites the completion flag --> /updateCompletion/:id
func (h *TaskHandler) UpdateCompletion(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}
	update := entity.TaskUpdateCompletion{}
	if err := (&echo.DefaultBinder{}).BindBody(c, &update); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	msg, err := h.taskService.UpdateTaskCompletion(c.Request().Context(), id, update)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, msg)
}

// DeleteTaskByID --> /deleteTaskID/:id
func (h *TaskHandler) DeleteTaskByID(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	msg, err := h.taskService.DeleteTaskByID(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, msg)
}

// DeleteTaskByTitle --> /deleteTaskTitle/:title
func (h *TaskHandler) DeleteTaskByTitle(c echo.Context) error {
	msg, err := h.taskService.DeleteTaskByTitle(c.Request().Context(), c.Param("title"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, msg)
}

// DeleteAllTasks --> /deleteAll
func (h *TaskHandler) DeleteAllTasks(c echo.Context) error {
	msg, err := h.taskService.DeleteAllTasks(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, msg)
}
