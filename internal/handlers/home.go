package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jobdesk-dev/jobdesk/db"
	"github.com/jobdesk-dev/jobdesk/internal/flash"
	"github.com/jobdesk-dev/jobdesk/internal/models"
	"github.com/jobdesk-dev/jobdesk/internal/types"
	"github.com/jobdesk-dev/jobdesk/internal/utils"
)

// AdvertisementRow is an advertisement joined with its company name,
// the projection every listing view renders.
type AdvertisementRow struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Position    string `json:"position"`
	CompanyName string `json:"company_name"`
}

type CompanySummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Home dispatches on the viewer resolved by the middleware: guests get
// the landing view, applicants the browsable ad list (optionally
// filtered by company), employers their own company's ads.
func Home(ctx *gin.Context) {
	alert := flash.Pop(ctx)

	viewer, err := utils.CurrentViewer(ctx)

	if err != nil {
		ctx.JSON(http.StatusOK, gin.H{
			"title":  "Home",
			"layout": "guest",
			"alert":  alert,
		})
		return
	}

	switch viewer.Role {
	case types.RoleApplicant:
		var selected *CompanySummary

		query := advertisementRows(db.DB)

		if raw, present := ctx.GetQuery("company_id"); present {
			companyID, err := strconv.Atoi(raw)

			if err != nil || companyID <= 0 {
				NotFound(ctx)
				return
			}

			var company models.Company

			if err := db.DB.First(&company, companyID).Error; err != nil {
				NotFound(ctx)
				return
			}

			selected = &CompanySummary{ID: company.ID, Name: company.Name}
			query = query.Where("companies.id = ?", companyID)
		}

		var ads []AdvertisementRow

		if err := query.Scan(&ads).Error; err != nil {
			log.Printf("Failed to list advertisements: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load advertisements"})
			return
		}

		var companies []CompanySummary

		if err := db.DB.Model(&models.Company{}).Scan(&companies).Error; err != nil {
			log.Printf("Failed to list companies: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load companies"})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{
			"title":            "Home",
			"layout":           "user",
			"ads":              ads,
			"companies":        companies,
			"selected_company": selected,
			"alert":            alert,
		})

	case types.RoleEmployer:
		var ads []models.Advertisement

		if viewer.CompanyID != nil {
			if err := db.DB.Where("company_id = ?", *viewer.CompanyID).Find(&ads).Error; err != nil {
				log.Printf("Failed to list company advertisements: %v", err)
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load advertisements"})
				return
			}
		}

		ctx.JSON(http.StatusOK, gin.H{
			"title":       "Home",
			"layout":      "company",
			"company_ads": ads,
			"alert":       alert,
		})

	default:
		ctx.JSON(http.StatusOK, gin.H{
			"title":  "Home",
			"layout": "guest",
			"alert":  alert,
		})
	}
}

func About(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"title":  "About",
		"layout": "guest",
	})
}

// NotFound is the single not-found responder; unknown routes and
// unsupported methods land here as well.
func NotFound(ctx *gin.Context) {
	ctx.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
}
