package routes

import (
	"labtracker/internal/adapter/http/handlers"
	"labtracker/internal/adapter/http/middleware"
	"labtracker/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

const (
	PathFunctions     = "/functions"
	PathAdmin         = "/admin"
	PathImpersonation = "/impersonation"
)

func addAccountRoutes(rg *gin.RouterGroup, accountHandler *handlers.AccountHandler, usageHandler *handlers.UsageHandler, impersonationHandler *handlers.ImpersonationHandler) {
	adminOnly := middleware.RequireRole(entities.AppRoleAdmin)

	rg.GET("/me", accountHandler.Me)
	rg.GET("/usage", usageHandler.GetUsage)

	functions := rg.Group(PathFunctions)
	{
		functions.POST("/track-usage", usageHandler.TrackUsage)
		functions.POST("/list-users", adminOnly, accountHandler.ListUsers)
		functions.POST("/list-admins", adminOnly, accountHandler.ListAdmins)
		functions.POST("/update-user-role", adminOnly, accountHandler.UpdateUserRole)
		functions.POST("/get-lab-user-email", adminOnly, accountHandler.GetLabUserEmail)
	}

	admin := rg.Group(PathAdmin, adminOnly)
	{
		admin.PUT("/subscriptions/:user_id", usageHandler.SetSubscription)
	}

	imp := rg.Group(PathImpersonation, adminOnly)
	{
		imp.GET("", impersonationHandler.GetImpersonation)
		imp.POST("/customer", impersonationHandler.StartCustomer)
		imp.POST("/lab", impersonationHandler.StartLab)
		imp.DELETE("", impersonationHandler.StopImpersonation)
	}
}
