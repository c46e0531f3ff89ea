package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stockqr/internal/errors"
	"stockqr/internal/models"
	"stockqr/internal/services"
)

// BackupHandler handles snapshot export, import and the data reset.
type BackupHandler struct {
	snapshotService services.SnapshotServicer
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(snapshotService services.SnapshotServicer) *BackupHandler {
	return &BackupHandler{snapshotService: snapshotService}
}

// backupFilename names the downloaded snapshot after its export day.
func backupFilename(snapshot *models.Snapshot) string {
	return fmt.Sprintf("stock-backup-%s.json", snapshot.ExportDate.Format("2006-01-02"))
}

// Export handles downloading the full inventory
// @Summary     Export a backup
// @Description Download categories, products and the movement log as one JSON document
// @Tags        backup
// @Produce     json
// @Success     200 {object} models.Snapshot
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /backup/export [get]
func (h *BackupHandler) Export(c *gin.Context) {
	snapshot, err := h.snapshotService.Export(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	body, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, backupFilename(snapshot)))
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// Import handles restoring a backup
// @Summary     Import a backup
// @Description Replace every collection present in the document. Requires confirm=true.
// @Tags        backup
// @Accept      json
// @Produce     json
// @Param       confirm query bool            true "Must be true"
// @Param       request body  models.Snapshot true "Backup document"
// @Success     200 {object} services.ImportResult
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     422 {object} ErrorResponse "Unsupported version"
// @Failure     428 {object} ErrorResponse "Confirmation required"
// @Router      /backup/import [post]
func (h *BackupHandler) Import(c *gin.Context) {
	if err := requireConfirmation(c); err != nil {
		respondWithError(c, err)
		return
	}

	var snapshot models.Snapshot
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	result, err := h.snapshotService.Import(c.Request.Context(), &snapshot)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"import": result})
}

// Clear handles wiping all inventory data
// @Summary     Clear all data
// @Description Remove every category, product, movement and the settings document. Requires confirm=true.
// @Tags        backup
// @Produce     json
// @Param       confirm query bool true "Must be true"
// @Success     200 {object} MessageResponse
// @Failure     428 {object} ErrorResponse "Confirmation required"
// @Router      /backup [delete]
func (h *BackupHandler) Clear(c *gin.Context) {
	if err := requireConfirmation(c); err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.snapshotService.Clear(c.Request.Context()); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "All data cleared"})
}
