package main

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/veld/veld/internal/accounts"
)

func setupRouter(as *AppState) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Add CORS middleware
	router.Use(cors.Default())

	// Add logging middleware
	router.Use(gin.Recovery())

	// Health endpoint
	router.GET("/health", healthCheck(as))

	// User management
	router.GET("/users", listUsers(as))
	router.POST("/users", createUser(as))
	router.GET("/users/:id", getUser(as))
	router.PUT("/users/:id", updateUser(as))

	// Session management
	router.POST("/login", login(as))
	router.PUT("/logout", logout(as))

	return router
}

func healthCheck(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		if as.DB != nil {
			if err := as.DB.PingContext(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":    "unhealthy",
					"timestamp": time.Now().Format(time.RFC3339),
					"error":     err.Error(),
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

func listUsers(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := as.UserService.GetUsers(c.Request.Context())
		if err != nil {
			as.Logger.Error("Failed to list users", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
			return
		}

		responses := make([]gin.H, len(users))
		for i, user := range users {
			responses[i] = publicUser(user)
		}

		c.JSON(http.StatusOK, responses)
	}
}

func createUser(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req accounts.CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		if req.Username == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
			return
		}

		user, err := as.UserService.CreateUser(c.Request.Context(), &req)
		if err != nil {
			if accounts.IsConflict(err) {
				c.JSON(http.StatusConflict, gin.H{"error": accounts.Reason(err)})
				return
			}
			as.Logger.Error("Failed to create user", zap.String("username", req.Username), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		c.JSON(http.StatusCreated, publicUser(user))
	}
}

func login(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		var creds accounts.Credentials
		if err := c.ShouldBindJSON(&creds); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		user, err := as.UserService.LogInUser(c.Request.Context(), &creds)
		if err != nil {
			if accounts.IsUnauthorized(err) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": accounts.Reason(err)})
				return
			}
			as.Logger.Error("Failed to log in user", zap.String("username", creds.Username), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
			return
		}

		response := publicUser(user)
		if user.Token != nil {
			response["token"] = *user.Token
		}

		c.JSON(http.StatusAccepted, response)
	}
}

func logout(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Token string `json:"token"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		ok, err := as.UserService.LogOutUser(c.Request.Context(), req.Token)
		if err != nil {
			as.Logger.Error("Failed to log out user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
			return
		}

		c.JSON(http.StatusOK, ok)
	}
}

func getUser(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "id must be numeric"})
			return
		}

		ctx := c.Request.Context()

		authenticated, err := as.UserService.AuthenticateUser(ctx, bearerToken(c))
		if err != nil {
			as.Logger.Error("Failed to authenticate token", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to authenticate"})
			return
		}
		if !authenticated {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization failed"})
			return
		}

		user, err := as.UserService.GetUserByID(ctx, id)
		if err != nil {
			if accounts.IsNotFound(err) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			as.Logger.Error("Failed to get user", zap.Int64("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user"})
			return
		}

		c.JSON(http.StatusOK, publicUser(user))
	}
}

func updateUser(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "id must be numeric"})
			return
		}

		var edit accounts.UserEdit
		if err := c.ShouldBindJSON(&edit); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		if err := as.UserService.UpdateUser(c.Request.Context(), id, &edit); err != nil {
			if accounts.IsNotFound(err) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			if accounts.IsConflict(err) {
				c.JSON(http.StatusConflict, gin.H{"error": accounts.Reason(err)})
				return
			}
			as.Logger.Error("Failed to update user", zap.Int64("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// bearerToken extracts the session token from the Authorization header
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	return strings.TrimPrefix(header, "Bearer ")
}

// publicUser shapes a user for API responses. Password never leaves the
// service; the session token is only returned by login.
func publicUser(user *accounts.User) gin.H {
	response := gin.H{
		"id":            user.ID,
		"name":          user.Name,
		"username":      user.Username,
		"creation_date": user.CreationDate,
		"status":        string(user.Status),
	}
	if user.Birthday != nil {
		response["birthday"] = *user.Birthday
	}
	return response
}
