package handler

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

const maxUploadBytes = 10 << 20

var imageExtensions = map[string]string{
	"png":  ".png",
	"jpeg": ".jpg",
	"gif":  ".gif",
	"webp": ".webp",
}

// UploadImage 保存图片并返回访问地址与尺寸
func (a *API) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "No image uploaded")
		return
	}
	if file.Size > maxUploadBytes {
		respondError(c, http.StatusRequestEntityTooLarge, "Image exceeds 10 MB")
		return
	}

	// 以解码结果为准，不信任客户端的 Content-Type
	config, format, err := inspectImage(file)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Only PNG, JPEG, GIF or WebP images are allowed")
		return
	}
	ext, ok := imageExtensions[format]
	if !ok {
		respondError(c, http.StatusBadRequest, "Only PNG, JPEG, GIF or WebP images are allowed")
		return
	}

	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "Failed to create upload directory")
		return
	}

	name := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.NewString(), ext)
	if err := c.SaveUploadedFile(file, filepath.Join(a.uploadDir, name)); err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "Failed to save image")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"url":    path.Join("/", strings.Trim(a.uploadURL, "/"), name),
		"width":  config.Width,
		"height": config.Height,
		"format": format,
	})
}

func inspectImage(header *multipart.FileHeader) (image.Config, string, error) {
	file, err := header.Open()
	if err != nil {
		return image.Config{}, "", err
	}
	defer file.Close()
	return image.DecodeConfig(file)
}
