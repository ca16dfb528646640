package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jobdesk-dev/jobdesk/db"
	"github.com/jobdesk-dev/jobdesk/internal/flash"
	"github.com/jobdesk-dev/jobdesk/internal/models"
	"github.com/jobdesk-dev/jobdesk/internal/utils"
	"gorm.io/gorm"
)

type AdvertisementRequest struct {
	Title       string `form:"title" json:"title" binding:"required"`
	Description string `form:"description" json:"description" binding:"required"`
	Position    string `form:"position" json:"position" binding:"required"`
}

func advertisementRows(tx *gorm.DB) *gorm.DB {
	return tx.Model(&models.Advertisement{}).
		Select("advertisements.id, advertisements.title, advertisements.description, advertisements.position, companies.name AS company_name").
		Joins("JOIN companies ON companies.id = advertisements.company_id")
}

func PublishAdvertisementForm(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"title":  "Publish Advertisement",
		"layout": "company",
		"alert":  flash.Pop(ctx),
	})
}

// PublishAdvertisement creates an ad for the viewer's own company. The
// company is taken from the session principal, never from the request,
// so one employer cannot post under another company.
func PublishAdvertisement(ctx *gin.Context) {
	viewer, err := utils.CurrentViewer(ctx)

	if err != nil || viewer.CompanyID == nil {
		flash.Set(ctx, flash.LevelWarning, "You do not have permission to access this page.")
		ctx.Redirect(http.StatusFound, "/")
		return
	}

	var req AdvertisementRequest

	if err := ctx.ShouldBind(&req); err != nil {
		flash.Set(ctx, flash.LevelDanger, "Title, description and position are all required.")
		ctx.Redirect(http.StatusFound, "/publish_add")
		return
	}

	ad := models.Advertisement{
		Title:       req.Title,
		Description: req.Description,
		Position:    req.Position,
		CompanyID:   *viewer.CompanyID,
	}

	if err := db.DB.Create(&ad).Error; err != nil {
		log.Printf("Failed to create advertisement: %v", err)
		flash.Set(ctx, flash.LevelDanger, "Failed to publish the advertisement. Please try again.")
		ctx.Redirect(http.StatusFound, "/publish_add")
		return
	}

	ctx.Redirect(http.StatusFound, "/")
}

func EditAdvertisementForm(ctx *gin.Context) {
	ad, ok := loadOwnAdvertisement(ctx, "edit this advertisement")

	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"title":  "Edit Advertisement",
		"layout": "company",
		"ad": AdvertisementRow{
			ID:          ad.ID,
			Title:       ad.Title,
			Description: ad.Description,
			Position:    ad.Position,
		},
	})
}

func EditAdvertisement(ctx *gin.Context) {
	ad, ok := loadOwnAdvertisement(ctx, "edit this advertisement")

	if !ok {
		return
	}

	var req AdvertisementRequest

	if err := ctx.ShouldBind(&req); err != nil {
		flash.Set(ctx, flash.LevelDanger, "Title, description and position are all required.")
		ctx.Redirect(http.StatusFound, "/")
		return
	}

	ad.Title = req.Title
	ad.Description = req.Description
	ad.Position = req.Position

	if err := db.DB.Save(&ad).Error; err != nil {
		log.Printf("Failed to update advertisement %d: %v", ad.ID, err)
		flash.Set(ctx, flash.LevelDanger, "Failed to update the advertisement. Please try again.")
		ctx.Redirect(http.StatusFound, "/")
		return
	}

	flash.Set(ctx, flash.LevelSuccess, "Advertisement updated successfully!")
	ctx.Redirect(http.StatusFound, "/")
}

// DeleteAdvertisement removes an ad and its applications in one
// transaction; a failure rolls both back.
func DeleteAdvertisement(ctx *gin.Context) {
	ad, ok := loadOwnAdvertisement(ctx, "delete this advertisement")

	if !ok {
		return
	}

	// Applications are removed outright rather than soft-deleted:
	// lingering rows would keep occupying the (user, advertisement)
	// unique index.
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("advertisement_id = ?", ad.ID).Delete(&models.Application{}).Error; err != nil {
			return err
		}

		return tx.Delete(&ad).Error
	})

	if err != nil {
		log.Printf("Failed to delete advertisement %d: %v", ad.ID, err)
		flash.Set(ctx, flash.LevelDanger, "An error occurred while deleting the advertisement.")
		ctx.Redirect(http.StatusFound, "/")
		return
	}

	flash.Set(ctx, flash.LevelSuccess, "Advertisement and related applications deleted successfully!")
	ctx.Redirect(http.StatusFound, "/")
}

// loadOwnAdvertisement fetches the ad in the path and enforces that it
// belongs to the viewer's company. A missing ad renders not-found; an
// ownership mismatch warns and redirects home instead of erroring.
func loadOwnAdvertisement(ctx *gin.Context, action string) (models.Advertisement, bool) {
	var ad models.Advertisement

	adID, err := strconv.Atoi(ctx.Param("ad_id"))

	if err != nil || adID <= 0 {
		NotFound(ctx)
		ctx.Abort()
		return models.Advertisement{}, false
	}

	if err := db.DB.First(&ad, adID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(ctx)
		} else {
			log.Printf("Failed to load advertisement: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load advertisement"})
		}
		ctx.Abort()
		return models.Advertisement{}, false
	}

	viewer, err := utils.CurrentViewer(ctx)

	if err != nil || viewer.CompanyID == nil || ad.CompanyID != *viewer.CompanyID {
		flash.Set(ctx, flash.LevelWarning, "You do not have permission to "+action+".")
		ctx.Redirect(http.StatusFound, "/")
		ctx.Abort()
		return models.Advertisement{}, false
	}

	return ad, true
}
