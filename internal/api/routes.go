package api

import (
	"github.com/labstack/echo/v4"
	"time"
)

// RegisterRoutes binds every endpoint of the service to e.
func RegisterRoutes(e *echo.Echo, tasks *TaskHandler, users *UserHandler, sessions *SessionHandler) {
	// Tasks
	e.POST("/createTask", tasks.CreateTask)
	e.GET("/getTaskID/:id", tasks.GetTaskByID)
	e.GET("/getTaskTitle/:title", tasks.GetTaskByTitle)
	e.GET("/getAllTasks", tasks.GetAllTasks)
	e.PUT("/updateTask/:id", tasks.UpdateTask)
	e.PUT("/updateCompletion/:id", tasks.UpdateCompletion)
	e.DELETE("/deleteTaskID/:id", tasks.DeleteTaskByID)
	e.DELETE("/deleteTaskTitle/:title", tasks.DeleteTaskByTitle)
	e.DELETE("/deleteAll", tasks.DeleteAllTasks)

	// Users
	e.POST("/createUser", users.CreateUser)
	e.GET("/getUserID/:id", users.GetUserByID)
	e.GET("/getUserEmail/:email", users.GetUserByEmail)
	e.GET("/getAllUsers", users.GetAllUsers)
	e.GET("/verifyUser", users.VerifyUser)
	e.DELETE("/deleteUser/:email", users.DeleteUserByEmail)
	e.DELETE("/deleteAllUser", users.DeleteAllUsers)

	// Sessions
	requireSession := sessions.RequireSession()
	e.POST("/create_session/:user_id", sessions.CreateSession)
	e.GET("/whoami", sessions.WhoAmI, requireSession)
	e.DELETE("/delete_session", sessions.DeleteSession, requireSession)
	e.DELETE("/deleteAllSessions", sessions.DeleteAllSessions)

	e.GET("/tasks/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "task-service",
			"time":    time.Now().Format(time.RFC3339),
		})
	})
}
