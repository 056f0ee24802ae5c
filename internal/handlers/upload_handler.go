package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// UploadImages is the handler for POST /v1/admin/uploads.
// Saves every file from the multipart "images" field concurrently and
// returns the public URLs of the saved ones.
func (h *Handlers) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No images uploaded"})
		return
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	urls := []string{}
	var failures []string

	for _, fileHeader := range files {
		wg.Add(1)
		go func(fh *multipart.FileHeader) {
			defer wg.Done()

			ext := strings.ToLower(filepath.Ext(fh.Filename))
			if !allowedImageExts[ext] {
				mu.Lock()
				failures = append(failures, fmt.Sprintf("%s: unsupported file type", fh.Filename))
				mu.Unlock()
				return
			}

			filename := uuid.New().String() + ext
			dst := filepath.Join(h.Cfg.UploadDir, filename)
			if err := c.SaveUploadedFile(fh, dst); err != nil {
				mu.Lock()
				failures = append(failures, fmt.Sprintf("%s: %v", fh.Filename, err))
				mu.Unlock()
				return
			}

			mu.Lock()
			urls = append(urls, h.Cfg.BaseURL+"/uploads/"+filename)
			mu.Unlock()
		}(fileHeader)
	}
	wg.Wait()

	if len(urls) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No images saved", "failures": failures})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"urls": urls, "failures": failures})
}
