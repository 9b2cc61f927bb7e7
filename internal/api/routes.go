package api

import (
	"net/http"

	"ironforge/fitness-api/internal/service"

	"github.com/gin-gonic/gin"
)

// Services bundles what the HTTP layer needs.
type Services struct {
	Auth      service.AuthService
	Goals     service.GoalService
	Exercises service.ExerciseService
	Programs  service.ProgramService
	Workouts  service.WorkoutService
	Equipment service.EquipmentService
}

func SetupRoutes(router *gin.Engine, jwtSecret string, svc Services) {
	authHandler := NewAuthHandler(svc.Auth)
	goalHandler := NewGoalHandler(svc.Goals)
	exerciseHandler := NewExerciseHandler(svc.Exercises)
	programHandler := NewProgramHandler(svc.Programs)
	workoutHandler := NewWorkoutHandler(svc.Workouts, svc.Auth)
	equipmentHandler := NewEquipmentHandler(svc.Equipment)

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
	protected.Use(AuthMiddleware(jwtSecret))
	{
		protected.GET("/me", authHandler.Me)

		goals := protected.Group("/goals")
		{
			goals.GET("", goalHandler.ListGoals)
			goals.POST("", goalHandler.CreateGoal)
			goals.PUT("/reorder", goalHandler.ReorderGoals)
			goals.GET("/:id", goalHandler.GetGoal)
			goals.PUT("/:id", goalHandler.UpdateGoal)
			goals.DELETE("/:id", goalHandler.DeleteGoal)
			goals.PATCH("/:id/progress", goalHandler.UpdateProgress)
			goals.POST("/:id/archive", goalHandler.ArchiveGoal)
			goals.POST("/:id/unarchive", goalHandler.UnarchiveGoal)
		}

		exercises := protected.Group("/exercises")
		{
			exercises.GET("", exerciseHandler.ListExercises)
			exercises.POST("", exerciseHandler.CreateExercise)
			exercises.PUT("/reorder", exerciseHandler.ReorderExercises)
			exercises.GET("/:id", exerciseHandler.GetExercise)
			exercises.PUT("/:id", exerciseHandler.UpdateExercise)
			exercises.DELETE("/:id", exerciseHandler.DeleteExercise)
			exercises.POST("/:id/archive", exerciseHandler.ArchiveExercise)
			exercises.POST("/:id/unarchive", exerciseHandler.UnarchiveExercise)
			exercises.POST("/:id/media/upload-url", exerciseHandler.RequestMediaUpload)
			exercises.POST("/:id/media/confirm", exerciseHandler.ConfirmMediaUpload)
			exercises.GET("/:id/media", exerciseHandler.GetMedia)
			exercises.GET("/:id/progress", workoutHandler.ExerciseProgress)
		}

		programs := protected.Group("/programs")
		{
			programs.GET("", programHandler.ListPrograms)
			programs.POST("", programHandler.CreateProgram)
			programs.GET("/:id", programHandler.GetProgram)
			programs.PUT("/:id", programHandler.UpdateProgram)
			programs.DELETE("/:id", programHandler.DeleteProgram)
			programs.POST("/:id/activate", programHandler.ActivateProgram)
		}

		workouts := protected.Group("/workouts")
		{
			workouts.GET("", workoutHandler.ListWorkouts)
			workouts.POST("", workoutHandler.LogWorkout)
			workouts.GET("/:id", workoutHandler.GetWorkout)
			workouts.DELETE("/:id", workoutHandler.DeleteWorkout)
		}

		equipment := protected.Group("/equipment")
		{
			equipment.GET("", equipmentHandler.GetEquipment)
			equipment.POST("/barbells", equipmentHandler.AddBarbell)
			equipment.PUT("/barbells/:barbellId/active", equipmentHandler.SetActiveBarbell)
			equipment.DELETE("/barbells/:barbellId", equipmentHandler.RemoveBarbell)
			equipment.POST("/plates", equipmentHandler.AddPlate)
			equipment.PATCH("/plates/:plateId/count", equipmentHandler.AdjustPlateCount)
			equipment.DELETE("/plates/:plateId", equipmentHandler.RemovePlate)
		}

		protected.POST("/plates/calculate", equipmentHandler.CalculatePlates)
	}
}
