package handlers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jobdesk-dev/jobdesk/db"
	"github.com/jobdesk-dev/jobdesk/internal/auth"
	"github.com/jobdesk-dev/jobdesk/internal/flash"
	"github.com/jobdesk-dev/jobdesk/internal/models"
	"github.com/jobdesk-dev/jobdesk/internal/types"
	"github.com/jobdesk-dev/jobdesk/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Name     string `form:"name" json:"name" binding:"required"`
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required"`
}

const sessionMaxAge = 60 * 60 * 24 * 7

// cookieDomain reads DOMAIN at call time so a value supplied through a
// .env file loaded at startup is honored.
func cookieDomain() string {
	return os.Getenv("DOMAIN")
}

// Both unknown-email and wrong-password land here so a caller cannot
// probe which addresses are registered.
const invalidCredentialsMessage = "Invalid credentials. Please check your email and password."

func RegisterForm(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"title":  "Register",
		"layout": "guest",
		"alert":  flash.Pop(ctx),
	})
}

// Register creates an account. Self-service registration always
// produces an Applicant; employer accounts exist only through seeding.
func Register(ctx *gin.Context) {
	var req RegisterRequest

	if err := ctx.ShouldBind(&req); err != nil {
		flash.Set(ctx, flash.LevelDanger, "Please fill in name, email and a password of at least 6 characters.")
		ctx.Redirect(http.StatusFound, "/register")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User

	err := db.DB.Where("email = ?", req.Email).First(&existing).Error

	if err == nil {
		flash.Set(ctx, flash.LevelDanger, "An account with this email already exists.")
		ctx.Redirect(http.StatusFound, "/register")
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking existing user: %v", err)
		flash.Set(ctx, flash.LevelDanger, "An unexpected error occurred. Please try again.")
		ctx.Redirect(http.StatusFound, "/register")
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		flash.Set(ctx, flash.LevelDanger, "An unexpected error occurred. Please try again.")
		ctx.Redirect(http.StatusFound, "/register")
		return
	}

	roleID := models.RoleIDApplicant

	newUser := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		RoleID:       &roleID,
	}

	if err := db.DB.Create(&newUser).Error; err != nil {
		if db.IsUniqueViolation(err) {
			flash.Set(ctx, flash.LevelDanger, "An account with this email already exists.")
		} else {
			log.Printf("Failed to create user: %v", err)
			flash.Set(ctx, flash.LevelDanger, "An unexpected error occurred. Please try again.")
		}
		ctx.Redirect(http.StatusFound, "/register")
		return
	}

	ctx.Redirect(http.StatusFound, "/login")
}

func LoginForm(ctx *gin.Context) {
	if _, err := utils.CurrentViewer(ctx); err == nil {
		ctx.Redirect(http.StatusFound, "/")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"title":  "Login",
		"layout": "guest",
		"alert":  flash.Pop(ctx),
	})
}

func Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.ShouldBind(&req); err != nil {
		flash.Set(ctx, flash.LevelDanger, invalidCredentialsMessage)
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User

	err := db.DB.Where("email = ?", req.Email).First(&user).Error

	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Database error when fetching user: %v", err)
		}
		flash.Set(ctx, flash.LevelDanger, invalidCredentialsMessage)
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		flash.Set(ctx, flash.LevelDanger, invalidCredentialsMessage)
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	token, err := auth.GenerateJWT(user.ID, user.Email)

	if err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		flash.Set(ctx, flash.LevelDanger, "An unexpected error occurred. Please try again.")
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     types.SessionCookieName,
		Value:    token,
		Path:     "/",
		Domain:   cookieDomain(),
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	ctx.Redirect(http.StatusFound, "/")
}

func Logout(ctx *gin.Context) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     types.SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   cookieDomain(),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	ctx.Redirect(http.StatusFound, "/")
}
