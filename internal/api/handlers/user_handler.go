// server/internal/api/handlers/user_handler.go
package handlers

import (
	"net/http"
	"time"

	"ehs-compliance-api-server/internal/auth"
	"ehs-compliance-api-server/internal/models"
	"ehs-compliance-api-server/internal/records"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	Users         *records.Repo[models.User]
	JWTSecret     []byte
	JWTExpiration time.Duration
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	users, err := h.Users.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query users"})
		return
	}

	for _, u := range users {
		if u.Email != req.Email {
			continue
		}
		if u.Status != "Activo" || !auth.CheckPasswordHash(req.Password, u.Password) {
			break
		}

		token, err := auth.GenerateJWT(h.JWTSecret, u.ID, u.Email, u.Name, u.Role, h.JWTExpiration)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		u.Password = ""
		c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
		return
	}

	c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
}

type CreateUserRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Name       string `json:"name" binding:"required"`
	Password   string `json:"password" binding:"required,min=8"`
	Role       string `json:"role" binding:"required,oneof=Administrador Supervisor Operador"`
	EmployeeID string `json:"employeeID"`
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()

	users, err := h.Users.GetAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query users"})
		return
	}
	for _, u := range users {
		if u.Email == req.Email {
			c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
			return
		}
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	created, err := h.Users.Add(ctx, models.User{
		Email:      req.Email,
		Name:       req.Name,
		Password:   hashedPassword,
		Role:       req.Role,
		EmployeeID: req.EmployeeID,
		Status:     "Activo",
		CreatedAt:  time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	created.Password = ""
	c.JSON(http.StatusCreated, created)
}

func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := h.Users.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query users"})
		return
	}

	for i := range users {
		users[i].Password = ""
	}
	c.JSON(http.StatusOK, users)
}

// GetMe returns the caller's own profile.
func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.Users.Get(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respondRepoError(c, err)
		return
	}
	user.Password = ""
	c.JSON(http.StatusOK, user)
}
