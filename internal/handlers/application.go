package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jobdesk-dev/jobdesk/db"
	"github.com/jobdesk-dev/jobdesk/internal/flash"
	"github.com/jobdesk-dev/jobdesk/internal/models"
	"github.com/jobdesk-dev/jobdesk/internal/storage"
	"github.com/jobdesk-dev/jobdesk/internal/utils"
	"gorm.io/gorm"
)

// CVs is the upload store, wired at startup.
var CVs *storage.CVStore

type MyApplicationRow struct {
	ID          uint      `json:"id"`
	AppliedAt   time.Time `json:"applied_at"`
	CVPath      string    `json:"cv_path"`
	Title       string    `json:"title"`
	Position    string    `json:"position"`
	CompanyName string    `json:"company_name"`
}

type ApplicantRow struct {
	ID             uint      `json:"id"`
	AppliedAt      time.Time `json:"applied_at"`
	CVPath         string    `json:"cv_path"`
	ApplicantName  string    `json:"applicant_name"`
	ApplicantEmail string    `json:"applicant_email"`
}

type uploadMetadata struct {
	OriginalName string `json:"original_name"`
	Size         int64  `json:"size"`
	ContentType  string `json:"content_type"`
}

// Apply handles a CV submission. The checks run in a fixed order and
// each failure short-circuits with its own message; the uploaded file
// is written before the row is inserted, and a failed insert removes
// the file again.
func Apply(ctx *gin.Context) {
	viewer, err := utils.CurrentViewer(ctx)

	if err != nil {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	raw := ctx.PostForm("ad_id")

	if raw == "" {
		flash.Set(ctx, flash.LevelDanger, "Invalid advertisement ID.")
		ctx.Redirect(http.StatusFound, "/")
		return
	}

	adID, err := strconv.Atoi(raw)

	if err != nil || adID <= 0 {
		flash.Set(ctx, flash.LevelDanger, "Invalid advertisement ID format.")
		ctx.Redirect(http.StatusFound, "/")
		return
	}

	var ad models.Advertisement

	if err := db.DB.First(&ad, adID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			flash.Set(ctx, flash.LevelDanger, "Advertisement not found.")
			ctx.Redirect(http.StatusFound, "/")
			return
		}
		log.Printf("Failed to load advertisement %d: %v", adID, err)
		flash.Set(ctx, flash.LevelDanger, "An error occurred while submitting your application. Please try again.")
		ctx.Redirect(http.StatusFound, "/")
		return
	}

	var existing models.Application

	err = db.DB.Where("user_id = ? AND advertisement_id = ?", viewer.ID, ad.ID).First(&existing).Error

	if err == nil {
		flash.Set(ctx, flash.LevelWarning, "You have already applied for this position.")
		ctx.Redirect(http.StatusFound, "/")
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to check existing application: %v", err)
		flash.Set(ctx, flash.LevelDanger, "An error occurred while submitting your application. Please try again.")
		ctx.Redirect(http.StatusFound, "/")
		return
	}

	// A part with an empty filename is parsed as a form value, so a
	// missing file and an unselected file both land here.
	file, err := ctx.FormFile("cv")

	if err != nil {
		flash.Set(ctx, flash.LevelDanger, "Please upload your CV.")
		ctx.Redirect(http.StatusFound, "/")
		return
	}

	if !storage.AllowedFilename(file.Filename) {
		flash.Set(ctx, flash.LevelDanger, "Only PDF, DOC, and DOCX files are allowed.")
		ctx.Redirect(http.StatusFound, "/")
		return
	}

	now := time.Now()
	path := CVs.StoredPath(viewer.ID, ad.ID, file.Filename, now)

	if err := ctx.SaveUploadedFile(file, path); err != nil {
		log.Printf("Failed to store CV for user %d: %v", viewer.ID, err)
		flash.Set(ctx, flash.LevelDanger, "An error occurred while submitting your application. Please try again.")
		ctx.Redirect(http.StatusFound, "/")
		return
	}

	metadata, _ := json.Marshal(uploadMetadata{
		OriginalName: file.Filename,
		Size:         file.Size,
		ContentType:  file.Header.Get("Content-Type"),
	})

	application := models.Application{
		UserID:          viewer.ID,
		AdvertisementID: ad.ID,
		CVPath:          path,
		AppliedAt:       now.UTC(),
		Upload:          metadata,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&application).Error
	})

	if err != nil {
		if removeErr := CVs.Remove(path); removeErr != nil {
			log.Printf("Failed to remove orphaned CV %s: %v", path, removeErr)
		}

		if db.IsUniqueViolation(err) {
			flash.Set(ctx, flash.LevelWarning, "You have already applied for this position.")
		} else {
			log.Printf("Failed to create application: %v", err)
			flash.Set(ctx, flash.LevelDanger, "An error occurred while submitting your application. Please try again.")
		}
		ctx.Redirect(http.StatusFound, "/")
		return
	}

	flash.Set(ctx, flash.LevelSuccess, "Your application has been submitted successfully!")
	ctx.Redirect(http.StatusFound, "/")
}

// MyApplications lists the viewer's submissions, newest first.
func MyApplications(ctx *gin.Context) {
	viewer, err := utils.CurrentViewer(ctx)

	if err != nil {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	var rows []MyApplicationRow

	err = db.DB.Model(&models.Application{}).
		Select("applications.id, applications.applied_at, applications.cv_path, advertisements.title, advertisements.position, companies.name AS company_name").
		Joins("JOIN advertisements ON advertisements.id = applications.advertisement_id").
		Joins("JOIN companies ON companies.id = advertisements.company_id").
		Where("applications.user_id = ?", viewer.ID).
		Order("applications.applied_at DESC").
		Scan(&rows).Error

	if err != nil {
		log.Printf("Failed to list applications for user %d: %v", viewer.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load applications"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"title":        "My Applications",
		"layout":       "user",
		"applications": rows,
		"alert":        flash.Pop(ctx),
	})
}

// ViewApplications lists the applicants for one of the viewer's own
// advertisements, newest first.
func ViewApplications(ctx *gin.Context) {
	ad, ok := loadOwnAdvertisement(ctx, "view these applications")

	if !ok {
		return
	}

	var rows []ApplicantRow

	err := db.DB.Model(&models.Application{}).
		Select("applications.id, applications.applied_at, applications.cv_path, users.name AS applicant_name, users.email AS applicant_email").
		Joins("JOIN users ON users.id = applications.user_id").
		Where("applications.advertisement_id = ?", ad.ID).
		Order("applications.applied_at DESC").
		Scan(&rows).Error

	if err != nil {
		log.Printf("Failed to list applications for advertisement %d: %v", ad.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load applications"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"title":  "View Applications",
		"layout": "company",
		"advertisement": AdvertisementRow{
			ID:          ad.ID,
			Title:       ad.Title,
			Description: ad.Description,
			Position:    ad.Position,
		},
		"applications": rows,
		"alert":        flash.Pop(ctx),
	})
}

// DownloadCV streams a stored CV to the employer who owns the
// advertisement it was submitted against.
func DownloadCV(ctx *gin.Context) {
	appID, err := strconv.Atoi(ctx.Param("application_id"))

	if err != nil || appID <= 0 {
		NotFound(ctx)
		return
	}

	var application models.Application

	if err := db.DB.Preload("Advertisement").First(&application, appID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(ctx)
			return
		}
		log.Printf("Failed to load application %d: %v", appID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load application"})
		return
	}

	viewer, err := utils.CurrentViewer(ctx)

	if err != nil || viewer.CompanyID == nil || application.Advertisement.CompanyID != *viewer.CompanyID {
		flash.Set(ctx, flash.LevelWarning, "You do not have permission to download this CV.")
		ctx.Redirect(http.StatusFound, "/")
		return
	}

	if !CVs.Exists(application.CVPath) {
		flash.Set(ctx, flash.LevelDanger, "CV file not found.")
		ctx.Redirect(http.StatusFound, "/view_applications/"+strconv.Itoa(int(application.AdvertisementID)))
		return
	}

	ctx.FileAttachment(application.CVPath, filepath.Base(application.CVPath))
}
