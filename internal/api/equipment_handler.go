package api

import (
	"net/http"
	"time"

	"ironforge/fitness-api/internal/domain"
	"ironforge/fitness-api/internal/plates"
	"ironforge/fitness-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EquipmentHandler serves equipment settings and the plate calculator.
type EquipmentHandler struct {
	equipmentService service.EquipmentService
}

func NewEquipmentHandler(equipmentService service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{equipmentService: equipmentService}
}

type BarbellRequest struct {
	Label  string            `json:"label" binding:"required"`
	Weight float64           `json:"weight" binding:"required,gt=0"`
	Unit   domain.WeightUnit `json:"unit" binding:"required,oneof=lb kg"`
}

type PlateRequest struct {
	Weight         float64           `json:"weight" binding:"required,gt=0"`
	Unit           domain.WeightUnit `json:"unit" binding:"required,oneof=lb kg"`
	AvailableCount int               `json:"availableCount" binding:"gte=0"`
	ColorTag       string            `json:"colorTag"`
}

type AdjustCountRequest struct {
	Delta *int `json:"delta" binding:"required"`
}

// CalculateRequest resolves against stored equipment unless the body supplies
// a barbell or plates, which then replace the stored ones for this call.
type CalculateRequest struct {
	Target  *float64          `json:"target" binding:"required"`
	Unit    domain.WeightUnit `json:"unit" binding:"omitempty,oneof=lb kg"`
	Barbell *BarbellRequest   `json:"barbell"`
	Plates  []PlateRequest    `json:"plates" binding:"omitempty,dive"`
}

type BarbellResponse struct {
	ID       string            `json:"id"`
	Label    string            `json:"label"`
	Weight   float64           `json:"weight"`
	Unit     domain.WeightUnit `json:"unit"`
	IsActive bool              `json:"isActive"`
}

type PlateResponse struct {
	ID             string            `json:"id"`
	Weight         float64           `json:"weight"`
	Unit           domain.WeightUnit `json:"unit"`
	AvailableCount int               `json:"availableCount"`
	ColorTag       string            `json:"colorTag,omitempty"`
}

type EquipmentResponse struct {
	Barbells  []BarbellResponse `json:"barbells"`
	Plates    []PlateResponse   `json:"plates"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// LoadPlanResponse is a LoadPlan plus its compact notation.
type LoadPlanResponse struct {
	plates.LoadPlan
	Notation string `json:"notation"`
}

func MapEquipmentToResponse(e *domain.Equipment) EquipmentResponse {
	resp := EquipmentResponse{
		Barbells:  make([]BarbellResponse, len(e.Barbells)),
		Plates:    make([]PlateResponse, len(e.Plates)),
		UpdatedAt: e.UpdatedAt,
	}
	for i, b := range e.Barbells {
		resp.Barbells[i] = BarbellResponse{ID: b.ID.Hex(), Label: b.Label, Weight: b.Weight, Unit: b.Unit, IsActive: b.IsActive}
	}
	for i, p := range e.Plates {
		resp.Plates[i] = PlateResponse{ID: p.ID.Hex(), Weight: p.Weight, Unit: p.Unit, AvailableCount: p.AvailableCount, ColorTag: p.ColorTag}
	}
	return resp
}

func (h *EquipmentHandler) GetEquipment(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	equipment, err := h.equipmentService.GetEquipment(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to load equipment.")
		return
	}
	c.JSON(http.StatusOK, MapEquipmentToResponse(equipment))
}

func (h *EquipmentHandler) AddBarbell(c *gin.Context) {
	var req BarbellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	equipment, err := h.equipmentService.AddBarbell(c.Request.Context(), userID, req.Label, req.Weight, req.Unit)
	h.respond(c, http.StatusCreated, equipment, err)
}

func (h *EquipmentHandler) SetActiveBarbell(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	barbellID, ok := idParam(c, "barbellId")
	if !ok {
		return
	}
	equipment, err := h.equipmentService.SetActiveBarbell(c.Request.Context(), userID, barbellID)
	h.respond(c, http.StatusOK, equipment, err)
}

func (h *EquipmentHandler) RemoveBarbell(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	barbellID, ok := idParam(c, "barbellId")
	if !ok {
		return
	}
	equipment, err := h.equipmentService.RemoveBarbell(c.Request.Context(), userID, barbellID)
	h.respond(c, http.StatusOK, equipment, err)
}

func (h *EquipmentHandler) AddPlate(c *gin.Context) {
	var req PlateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	equipment, err := h.equipmentService.AddPlate(c.Request.Context(), userID, req.Weight, req.Unit, req.AvailableCount, req.ColorTag)
	h.respond(c, http.StatusCreated, equipment, err)
}

func (h *EquipmentHandler) AdjustPlateCount(c *gin.Context) {
	var req AdjustCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	plateID, ok := idParam(c, "plateId")
	if !ok {
		return
	}
	equipment, err := h.equipmentService.AdjustPlateCount(c.Request.Context(), userID, plateID, *req.Delta)
	h.respond(c, http.StatusOK, equipment, err)
}

func (h *EquipmentHandler) RemovePlate(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	plateID, ok := idParam(c, "plateId")
	if !ok {
		return
	}
	equipment, err := h.equipmentService.RemovePlate(c.Request.Context(), userID, plateID)
	h.respond(c, http.StatusOK, equipment, err)
}

// CalculatePlates godoc
// @Summary Work out which plates to load for a target weight
// @Tags Plates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CalculateRequest true "Target and optional equipment override"
// @Success 200 {object} LoadPlanResponse
// @Failure 409 {object} gin.H "No active barbell"
// @Router /plates/calculate [post]
func (h *EquipmentHandler) CalculatePlates(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var (
		plan plates.LoadPlan
		err  error
	)
	if req.Barbell == nil && req.Plates == nil {
		plan, err = h.equipmentService.CalculateLoad(ctx, userID, *req.Target, req.Unit)
	} else {
		plan, err = h.calculateWithOverride(c, userID, req)
	}
	if err != nil {
		respondError(c, err, "Failed to calculate plates.")
		return
	}
	c.JSON(http.StatusOK, LoadPlanResponse{LoadPlan: plan, Notation: plan.Notation()})
}

func (h *EquipmentHandler) calculateWithOverride(c *gin.Context, userID primitive.ObjectID, req CalculateRequest) (plates.LoadPlan, error) {
	ctx := c.Request.Context()

	var bar domain.Barbell
	inventory := make([]domain.PlateType, len(req.Plates))
	for i, p := range req.Plates {
		inventory[i] = domain.PlateType{Weight: p.Weight, Unit: p.Unit, AvailableCount: p.AvailableCount, ColorTag: p.ColorTag}
	}

	if req.Barbell != nil {
		bar = domain.Barbell{Label: req.Barbell.Label, Weight: req.Barbell.Weight, Unit: req.Barbell.Unit, IsActive: true}
	}
	if req.Barbell == nil || req.Plates == nil {
		equipment, err := h.equipmentService.GetEquipment(ctx, userID)
		if err != nil {
			return plates.LoadPlan{}, err
		}
		if req.Barbell == nil {
			active, ok := equipment.ActiveBarbell()
			if !ok {
				return plates.LoadPlan{}, service.ErrNoActiveBarbell
			}
			bar = active
		}
		if req.Plates == nil {
			inventory = equipment.Plates
		}
	}

	unit := req.Unit
	if unit == "" {
		unit = bar.Unit
	}
	return h.equipmentService.CalculateLoadWith(*req.Target, unit, bar, inventory)
}

func (h *EquipmentHandler) respond(c *gin.Context, status int, equipment *domain.Equipment, err error) {
	if err != nil {
		respondError(c, err, "Failed to update equipment.")
		return
	}
	c.JSON(status, MapEquipmentToResponse(equipment))
}
