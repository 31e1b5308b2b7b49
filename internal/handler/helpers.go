package handler

import (
	"io"
	"net/http"

	"rentalbaju/internal/apierror"
	"rentalbaju/internal/dto"
	"rentalbaju/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondError translates a service error into its HTTP status and envelope.
// Field-level validation detail survives; internal errors are masked.
func respondError(c *gin.Context, err error) {
	c.JSON(apierror.StatusCode(err), apierror.Envelope(err))
}

// bindJSON binds the JSON body. Validation tags are enforced by the service
// layer, not here; this only rejects malformed JSON.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON tidak valid: "+err.Error()))
		return false
	}
	return true
}

// parseID parses the :id path param as a UUID.
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID tidak valid"))
		return uuid.Nil, false
	}
	return id, true
}

// actorID returns the authenticated user's id from the JWT claims. Routes
// reaching here always sit behind the auth middleware.
func actorID(c *gin.Context) string {
	if claims := middleware.GetClaims(c); claims != nil {
		return claims.UserID
	}
	return ""
}

// readImageFile extracts the optional multipart "image" field into the file
// value the media protocol consumes. Absent file (or a non-multipart request)
// yields (nil, nil).
func readImageFile(c *gin.Context) (*dto.FileUpload, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &dto.FileUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
