package handlers

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/trendovo/trendovo-golang/internal/importer"
	"github.com/xuri/excelize/v2"
)

// variantSheetName is the sheet holding variant rows in the supplier workbook.
const variantSheetName = "Varianty"

// chunkInfo describes one slice of a workbook uploaded in parts.
type chunkInfo struct {
	Index int `json:"index"`
	Total int `json:"total"`
}

// ImportProducts is the handler for POST /v1/admin/products/import.
// It accepts an .xlsx upload (optionally one chunk of a split upload,
// described by the "chunk" form field) and reconciles each spreadsheet
// row against the catalog. Variants are processed on the final chunk.
func (h *Handlers) ImportProducts(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".xlsx" && ext != ".xlsm" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only .xlsx and .xlsm files are supported"})
		return
	}

	// A missing chunk field means the whole workbook arrived at once.
	chunk := chunkInfo{Index: 1, Total: 1}
	if raw := c.PostForm("chunk"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &chunk); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chunk descriptor"})
			return
		}
	}
	finalChunk := chunk.Index >= chunk.Total

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}
	defer file.Close()

	workbook, err := excelize.OpenReader(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open spreadsheet: " + err.Error()})
		return
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Spreadsheet has no sheets"})
		return
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read sheet"})
		return
	}

	svc := importer.NewService(importer.NewSQLStore(h.DB))
	result := svc.ImportProducts(rows)

	// Variant rows reference products by code, so they can only be
	// reconciled once every product chunk has been applied.
	if finalChunk {
		if name := variantSheet(sheets); name != "" {
			variantRows, err := workbook.GetRows(name)
			if err != nil {
				result.Errors = append(result.Errors, "failed to read variant sheet: "+err.Error())
			} else {
				result.Merge(svc.ImportVariants(variantRows))
			}
		}
	}

	if svc.CreatedCategories > 0 {
		h.Cache.InvalidateCategoryTree(c.Request.Context())
	}

	c.JSON(http.StatusOK, gin.H{"result": result, "finalChunk": finalChunk})
}

// variantSheet returns the sheet holding variant rows. The name must
// match "Varianty" exactly; a sheet called "varianty" or "VARIANTY" is
// not recognized.
func variantSheet(sheets []string) string {
	for _, name := range sheets {
		if name == variantSheetName {
			return name
		}
	}
	return ""
}
