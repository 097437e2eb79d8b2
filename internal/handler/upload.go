package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"
    "github.com/sirupsen/logrus"

    "github.com/iliyamo/fest-booking/internal/storage"
)

// UploadHandler is the image storage shim used by the editor and the page.
type UploadHandler struct {
    Store  *storage.Store
    Logger *logrus.Logger
}

func NewUploadHandler(s *storage.Store, logger *logrus.Logger) *UploadHandler {
    return &UploadHandler{Store: s, Logger: logger}
}

type deleteFileReq struct {
    FilePath string `json:"filePath"`
}

func storageError(c echo.Context, logger *logrus.Logger, err error) error {
    switch {
    case errors.Is(err, storage.ErrNotImage):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid file type"})
    case errors.Is(err, storage.ErrTooLarge):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "File too large (max 2MB)"})
    case errors.Is(err, storage.ErrOutsideRoot):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid path"})
    case errors.Is(err, storage.ErrNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "Failed to fetch image"})
    }
    logger.WithContext(c.Request().Context()).WithError(err).Error("storage")
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
}

// Upload handles POST /api/upload (multipart: file, folder, filename).
func (h *UploadHandler) Upload(c echo.Context) error {
    fh, err := c.FormFile("file")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "No file uploaded"})
    }
    src, err := fh.Open()
    if err != nil {
        return storageError(c, h.Logger, err)
    }
    defer src.Close()

    url, err := h.Store.Upload(c.FormValue("folder"), c.FormValue("filename"), fh.Header.Get(echo.HeaderContentType), fh.Size, src)
    if err != nil {
        return storageError(c, h.Logger, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"url": url})
}

// Fetch handles GET /api/upload?file=<path under the public root>.
func (h *UploadHandler) Fetch(c echo.Context) error {
    file := c.QueryParam("file")
    if file == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "No file specified"})
    }
    f, contentType, err := h.Store.Open(file)
    if err != nil {
        return storageError(c, h.Logger, err)
    }
    defer f.Close()
    c.Response().Header().Set("Cache-Control", "public, max-age=31536000")
    return c.Stream(http.StatusOK, contentType, f)
}

// Delete handles POST /api/delete-file {"filePath": ...}.  A file that is
// already gone counts as deleted.
func (h *UploadHandler) Delete(c echo.Context) error {
    var req deleteFileReq
    if err := c.Bind(&req); err != nil || req.FilePath == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "File path required"})
    }
    if err := h.Store.Delete(req.FilePath); err != nil {
        return storageError(c, h.Logger, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"success": true})
}
