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
	"gorm.io/gorm"
)

// ViewCompanies lists the company directory for applicants.
func ViewCompanies(ctx *gin.Context) {
	var companies []CompanySummary

	if err := db.DB.Model(&models.Company{}).Scan(&companies).Error; err != nil {
		log.Printf("Failed to list companies: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load companies"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"title":     "Companies",
		"layout":    "user",
		"companies": companies,
		"alert":     flash.Pop(ctx),
	})
}

// CompanyAds lists one company's advertisements.
func CompanyAds(ctx *gin.Context) {
	companyID, err := strconv.Atoi(ctx.Param("company_id"))

	if err != nil || companyID <= 0 {
		NotFound(ctx)
		return
	}

	var company models.Company

	if err := db.DB.First(&company, companyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(ctx)
			return
		}
		log.Printf("Failed to load company %d: %v", companyID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load company"})
		return
	}

	var ads []AdvertisementRow

	if err := advertisementRows(db.DB).Where("companies.id = ?", company.ID).Scan(&ads).Error; err != nil {
		log.Printf("Failed to list advertisements for company %d: %v", companyID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load advertisements"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"title":   company.Name + " - Job Listings",
		"layout":  "user",
		"company": CompanySummary{ID: company.ID, Name: company.Name},
		"ads":     ads,
		"alert":   flash.Pop(ctx),
	})
}
