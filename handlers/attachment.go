package handlers

import (
	"context"
	"errors"
	"incident_flow_app_go/db"
	"incident_flow_app_go/middleware"
	"incident_flow_app_go/models"
	"incident_flow_app_go/services"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// UploadAttachment stores an evidence file for an occurrence
func UploadAttachment(c echo.Context) error {
	occurrenceID := c.Param("id")
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Not authenticated",
		})
	}

	if _, err := services.GetOccurrenceByID(db.DB, occurrenceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "Occurrence not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch occurrence",
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "File is required",
		})
	}

	key := services.GenerateAttachmentKey(occurrenceID, file.Filename)
	uploadResult, err := services.Storage.Upload(context.Background(), file, key)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Upload failed",
		})
	}

	attachment := models.OccurrenceAttachment{
		OccurrenceID:     occurrenceID,
		FileName:         uploadResult.FileName,
		FileOriginalName: file.Filename,
		StorageKey:       uploadResult.Key,
		FileSize:         uploadResult.FileSize,
		MimeType:         uploadResult.MimeType,
		OwnerID:          user.ID,
	}

	if err := db.DB.Create(&attachment).Error; err != nil {
		services.Storage.Delete(context.Background(), uploadResult.Key)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to save attachment record",
		})
	}

	return c.JSON(http.StatusCreated, attachment)
}

// GetAttachments lists the evidence files on an occurrence
func GetAttachments(c echo.Context) error {
	var attachments []models.OccurrenceAttachment
	err := db.DB.
		Where("occurrence_id = ?", c.Param("id")).
		Order("created_at").
		Find(&attachments).Error
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch attachments",
		})
	}
	return c.JSON(http.StatusOK, attachments)
}

// DownloadAttachment serves the file, via a signed URL when on R2
func DownloadAttachment(c echo.Context) error {
	attachment, denied := fetchAttachment(c)
	if attachment == nil {
		return denied
	}

	if _, ok := services.Storage.(*services.R2Storage); ok {
		url, err := services.Storage.GetSignedURL(context.Background(), attachment.StorageKey, 15*time.Minute)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"error": "Failed to get download URL",
			})
		}
		return c.Redirect(http.StatusTemporaryRedirect, url)
	}

	reader, contentType, err := services.Storage.Get(context.Background(), attachment.StorageKey)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to read file",
		})
	}
	defer reader.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="`+attachment.FileOriginalName+`"`)
	return c.Stream(http.StatusOK, contentType, reader)
}

// DeleteAttachment removes the file and its record
func DeleteAttachment(c echo.Context) error {
	attachment, denied := fetchAttachment(c)
	if attachment == nil {
		return denied
	}

	user, err := currentProfile(c)
	if err != nil {
		return middleware.RedirectHomeWithError(c, msgProfileNotFound)
	}
	allowed, err := services.CanAccessObject(db.DB, user, attachment.OwnerID, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to check permissions",
		})
	}
	if !allowed {
		return middleware.RedirectHomeWithError(c, msgNoObjectPermission)
	}

	services.Storage.Delete(context.Background(), attachment.StorageKey)

	if err := db.DB.Delete(attachment).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to delete attachment",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Attachment deleted",
	})
}

// fetchAttachment loads the attachment scoped to the occurrence in the path.
// A nil attachment means the error response has already been written.
func fetchAttachment(c echo.Context) (*models.OccurrenceAttachment, error) {
	var attachment models.OccurrenceAttachment
	err := db.DB.
		Where("occurrence_id = ? AND id = ?", c.Param("id"), c.Param("aid")).
		First(&attachment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, c.JSON(http.StatusNotFound, map[string]string{
				"error": "Attachment not found",
			})
		}
		return nil, c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch attachment",
		})
	}
	return &attachment, nil
}
