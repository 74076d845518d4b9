package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mquezada-dev/stockroom-api/config"
	"github.com/mquezada-dev/stockroom-api/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportCSV handles GET /api/v1/exports/:entity/csv - streams the entity as CSV
func (a *API) ExportCSV(c *gin.Context) {
	entity := c.Param("entity")

	headers, rows, err := services.ExportData(a.DB.WithContext(c.Request.Context()), entity)
	if err != nil {
		a.exportError(c, "ExportCSV", err)
		return
	}

	filename := services.ExportFilename(entity, "csv")
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if err := services.WriteCSV(c.Writer, headers, rows); err != nil {
		config.LogError(a.Logger, "export_controller.go", "ExportCSV", "write", err)
	}
}

// ExportXLSX handles GET /api/v1/exports/:entity/xlsx - streams the entity as
// a spreadsheet.
func (a *API) ExportXLSX(c *gin.Context) {
	entity := c.Param("entity")

	headers, rows, err := services.ExportData(a.DB.WithContext(c.Request.Context()), entity)
	if err != nil {
		a.exportError(c, "ExportXLSX", err)
		return
	}

	f, err := services.BuildWorkbook(headers, rows)
	if err != nil {
		config.LogError(a.Logger, "export_controller.go", "ExportXLSX", "build workbook", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EXPORT_ERROR",
				"message": "Failed to build spreadsheet",
			},
		})
		return
	}
	defer f.Close()

	filename := services.ExportFilename(entity, "xlsx")
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if err := f.Write(c.Writer); err != nil {
		config.LogError(a.Logger, "export_controller.go", "ExportXLSX", "write", err)
	}
}

// ArchiveExport handles POST /api/v1/exports/:entity/archive - builds the
// spreadsheet, stores it in the archive bucket and returns a download URL.
func (a *API) ArchiveExport(c *gin.Context) {
	entity := c.Param("entity")

	headers, rows, err := services.ExportData(a.DB.WithContext(c.Request.Context()), entity)
	if err != nil {
		a.exportError(c, "ArchiveExport", err)
		return
	}

	f, err := services.BuildWorkbook(headers, rows)
	if err != nil {
		config.LogError(a.Logger, "export_controller.go", "ArchiveExport", "build workbook", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EXPORT_ERROR",
				"message": "Failed to build spreadsheet",
			},
		})
		return
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		config.LogError(a.Logger, "export_controller.go", "ArchiveExport", "serialize workbook", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EXPORT_ERROR",
				"message": "Failed to serialize spreadsheet",
			},
		})
		return
	}

	s3Service := services.GetS3Service()
	if s3Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ARCHIVE_UNAVAILABLE",
				"message": "Export archive storage is not configured",
			},
		})
		return
	}

	filename := services.ExportFilename(entity, "xlsx")
	s3Key, err := s3Service.UploadObject(filename, buf.Bytes(), xlsxContentType)
	if err != nil {
		config.LogError(a.Logger, "export_controller.go", "ArchiveExport", "upload", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ARCHIVE_ERROR",
				"message": "Failed to archive export",
			},
		})
		return
	}

	url, err := s3Service.GetPresignedURL(s3Key)
	if err != nil {
		config.LogError(a.Logger, "export_controller.go", "ArchiveExport", "presign", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ARCHIVE_ERROR",
				"message": "Failed to generate download URL",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"s3_key":       s3Key,
			"download_url": url,
		},
	})
}

func (a *API) exportError(c *gin.Context, funcName string, err error) {
	if errors.Is(err, services.ErrUnknownExportEntity) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNKNOWN_EXPORT_ENTITY",
				"message": err.Error(),
			},
		})
		return
	}

	config.LogError(a.Logger, "export_controller.go", funcName, "export data", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "DATABASE_ERROR",
			"message": "Failed to collect export data",
		},
	})
}
