package api

import (
	"github.com/labstack/echo/v4"
	"task-service/internal/entity"
	"task-service/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new instance of UserHandler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUser creates a new user --> /createUser
func (h *UserHandler) CreateUser(c echo.Context) error {
	req := entity.CreateUser{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(400, map[string]string{"error": "Email and password required"})
	}

	createdUser, err := h.userService.CreateUser(c.Request().Context(), &req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(200, createdUser)
}

// GetUserByID retrieves a user by ID --> /getUserID/:id
func (h *UserHandler) GetUserByID(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}
	user, err := h.userService.GetUserByID(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, user)
}

// GetUserByEmail --> /getUserEmail/:email. An unknown email answers 200 with a null body.
func (h *UserHandler) GetUserByEmail(c echo.Context) error {
	user, err := h.userService.GetUserByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, user)
}

// GetAllUsers --> /getAllUsers?skip=&limit=
func (h *UserHandler) GetAllUsers(c echo.Context) error {
	skip, limit, err := window(c)
	if err != nil {
		return c.JSON(400, map[string]string{"error": err.Error()})
	}

	users, err := h.userService.ListUsers(c.Request().Context(), skip, limit)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, users)
}

// DeleteUserByEmail --> /deleteUser/:email
func (h *UserHandler) DeleteUserByEmail(c echo.Context) error {
	msg, err := h.userService.DeleteUserByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, msg)
}

// DeleteAllUsers --> /deleteAllUser
func (h *UserHandler) DeleteAllUsers(c echo.Context) error {
	msg, err := h.userService.DeleteAllUsers(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, msg)
}

// VerifyUser checks login credentials --> /verifyUser?email=&password=
func (h *UserHandler) VerifyUser(c echo.Context) error {
	var email, password string
	err := echo.QueryParamsBinder(c).MustString("email", &email).MustString("password", &password).BindError()
	if err != nil {
		return c.JSON(400, map[string]string{"error": "email and password are required"})
	}

	user, err := h.userService.VerifyUser(c.Request().Context(), email, password)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, user)
}
