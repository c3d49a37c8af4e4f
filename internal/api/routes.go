package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fittrack/fitness-api/internal/domain"
	"fittrack/fitness-api/internal/service"
)

// SetupRoutes wires every handler onto the router. Route groups only
// apply the coarse role gate; the authorization engine inside the
// services makes the final decision per request.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	clientService service.ClientService,
	trainerService service.TrainerService,
	accountService service.AccountService,
	mediaService service.MediaService,
) {
	authHandler := NewAuthHandler(authService)
	clientHandler := NewClientHandler(clientService, mediaService)
	trainerHandler := NewTrainerHandler(trainerService)
	adminHandler := NewAdminHandler(accountService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			claim, err := getClaimFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Caller identity not found in context")
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"userId":   claim.UserID,
				"username": claim.Username,
				"role":     claim.Role,
			})
		})

		// --- Self-scoped resources ---
		protected.GET("/profile", clientHandler.GetProfile)
		protected.PUT("/profile", clientHandler.UpsertProfile)

		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("", clientHandler.CreateWorkout)
			workoutGroup.GET("", clientHandler.ListWorkouts)
			workoutGroup.DELETE("/:id", clientHandler.DeleteWorkout)
		}

		weightGroup := protected.Group("/weights")
		{
			weightGroup.PUT("", clientHandler.UpsertWeight)
			weightGroup.GET("", clientHandler.ListWeights)
		}

		calorieGroup := protected.Group("/calories")
		{
			calorieGroup.POST("", clientHandler.CreateCalorie)
			calorieGroup.GET("", clientHandler.ListCalories)
			calorieGroup.DELETE("/:id", clientHandler.DeleteCalorie)
		}

		// Plans assigned TO the caller, regardless of role.
		protected.GET("/plans", clientHandler.ListAssignedPlans)

		photoGroup := protected.Group("/photos")
		{
			photoGroup.POST("/upload-url", clientHandler.RequestPhotoUpload)
			photoGroup.GET("", clientHandler.ListPhotos)
			photoGroup.DELETE("/:id", clientHandler.DeletePhoto)
		}

		protected.DELETE("/data", clientHandler.ResetData)

		// --- Trainer routes ---
		trainerGroup := protected.Group("/trainer")
		trainerGroup.Use(RoleMiddleware(domain.RoleTrainer, domain.RoleAdmin))
		{
			trainerGroup.GET("/clients", trainerHandler.ListClients)
			trainerGroup.GET("/clients/:userId/weights", trainerHandler.GetClientWeights)

			trainerGroup.POST("/plans", trainerHandler.CreatePlan)
			trainerGroup.GET("/plans", trainerHandler.ListPlans)
			trainerGroup.DELETE("/plans/:planId", trainerHandler.DeletePlan)
			trainerGroup.POST("/plans/:planId/assignments", trainerHandler.AssignPlan)
			trainerGroup.DELETE("/plans/:planId/assignments/:userId", trainerHandler.UnassignPlan)
		}

		// --- Admin routes ---
		adminGroup := protected.Group("/admin")
		adminGroup.Use(RoleMiddleware(domain.RoleAdmin))
		{
			adminGroup.GET("/accounts", adminHandler.ListAccounts)
			adminGroup.PUT("/accounts/:id/role", adminHandler.UpdateRole)
			adminGroup.DELETE("/accounts/:id", adminHandler.DeleteAccount)

			adminGroup.POST("/assignments", adminHandler.CreateAssignment)
			adminGroup.DELETE("/assignments/:trainerId/:userId", adminHandler.DeleteAssignment)
		}
	}
}
