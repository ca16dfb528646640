package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jobdesk-dev/jobdesk/internal/handlers"
	"github.com/jobdesk-dev/jobdesk/internal/middleware"
	"github.com/jobdesk-dev/jobdesk/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()
	r.HandleMethodNotAllowed = true

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.ResolveViewer())

	r.GET("/healthz", handlers.HealthCheck)

	r.GET("/", handlers.Home)
	r.GET("/about", handlers.About)
	r.GET("/contact", handlers.ContactForm)
	r.POST("/contact", handlers.Contact)
	r.GET("/login", handlers.LoginForm)
	r.POST("/login", handlers.Login)
	r.GET("/register", handlers.RegisterForm)
	r.POST("/register", handlers.Register)

	authed := r.Group("", middleware.RequireAuth())
	{
		authed.GET("/logout", handlers.Logout)
		authed.POST("/apply", handlers.Apply)

		// Ownership of the advertisement is checked inside the handlers;
		// a mismatch warns and redirects home rather than erroring.
		authed.GET("/edit_ad/:ad_id", handlers.EditAdvertisementForm)
		authed.POST("/edit_ad/:ad_id", handlers.EditAdvertisement)
		authed.POST("/delete_ad/:ad_id", handlers.DeleteAdvertisement)
	}

	employer := r.Group("", middleware.RequireRole(types.RoleEmployer))
	{
		employer.GET("/publish_add", handlers.PublishAdvertisementForm)
		employer.POST("/publish_add", handlers.PublishAdvertisement)
		employer.GET("/view_applications/:ad_id", handlers.ViewApplications)
		employer.GET("/download_cv/:application_id", handlers.DownloadCV)
	}

	applicant := r.Group("", middleware.RequireRole(types.RoleApplicant))
	{
		applicant.GET("/view_companies", handlers.ViewCompanies)
		applicant.GET("/company/:company_id/ads", handlers.CompanyAds)
		applicant.GET("/view_my_applications", handlers.MyApplications)
	}

	r.NoRoute(handlers.NotFound)
	r.NoMethod(handlers.NotFound)

	return r
}
