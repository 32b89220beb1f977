package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"

	"marketsim/internal/services"
	"marketsim/internal/session"
	"marketsim/pkg/response"
)

// SavesHandler serves anonymous save codes. No authentication: the code is
// the capability.
type SavesHandler struct {
	saves *services.SaveStore
}

func NewSavesHandler(saves *services.SaveStore) *SavesHandler {
	return &SavesHandler{saves: saves}
}

// Create allocates a fresh save code.
func (h *SavesHandler) Create(c *gin.Context) {
	code, err := h.saves.CreateCode()
	if errors.Is(err, services.ErrCodeExhausted) {
		response.InternalError(c, "Could not allocate a save code")
		return
	}
	if err != nil {
		response.InternalError(c, "Failed to create save code")
		return
	}
	response.Success(c, gin.H{"code": code})
}

// Get lists a code's presets and its active preset.
func (h *SavesHandler) Get(c *gin.Context) {
	state, err := h.saves.Get(c.Param("code"))
	if errors.Is(err, services.ErrCodeNotFound) {
		response.NotFound(c, "Unknown save code")
		return
	}
	if err != nil {
		response.InternalError(c, "Failed to load save")
		return
	}
	response.OK(c, state)
}

type putPresetRequest struct {
	Name     string          `json:"name"`
	Snapshot json.RawMessage `json:"snapshot"`
}

// PutPreset upserts a named snapshot slot. The document must match the
// closed snapshot schema exactly; unknown fields are rejected.
func (h *SavesHandler) PutPreset(c *gin.Context) {
	var req putPresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if req.Name == "" || len(req.Snapshot) == 0 {
		response.BadRequest(c, "Preset name and snapshot are required")
		return
	}
	if _, err := session.DecodeSnapshot(req.Snapshot); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	err := h.saves.PutPreset(c.Param("code"), req.Name, req.Snapshot)
	if errors.Is(err, services.ErrCodeNotFound) {
		response.NotFound(c, "Unknown save code")
		return
	}
	if err != nil {
		response.InternalError(c, "Failed to store preset")
		return
	}
	response.OK(c, gin.H{"code": c.Param("code"), "name": req.Name})
}

// GetPreset returns the stored snapshot document verbatim.
func (h *SavesHandler) GetPreset(c *gin.Context) {
	snapshot, err := h.saves.GetPreset(c.Param("code"), c.Param("name"))
	switch {
	case errors.Is(err, services.ErrCodeNotFound):
		response.NotFound(c, "Unknown save code")
	case errors.Is(err, services.ErrPresetNotFound):
		response.NotFound(c, "Unknown preset")
	case err != nil:
		response.InternalError(c, "Failed to load preset")
	default:
		response.OK(c, gin.H{"name": c.Param("name"), "snapshot": json.RawMessage(snapshot)})
	}
}

// DeletePreset removes a slot; a repeat delete answers 404.
func (h *SavesHandler) DeletePreset(c *gin.Context) {
	err := h.saves.DeletePreset(c.Param("code"), c.Param("name"))
	switch {
	case errors.Is(err, services.ErrCodeNotFound):
		response.NotFound(c, "Unknown save code")
	case errors.Is(err, services.ErrPresetNotFound):
		response.NotFound(c, "Unknown preset")
	case err != nil:
		response.InternalError(c, "Failed to delete preset")
	default:
		response.OK(c, gin.H{"deleted": c.Param("name")})
	}
}
