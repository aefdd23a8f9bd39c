// controllers/equipment_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"equipment_availability/app"
	"equipment_availability/db"
	"equipment_availability/models"
	"equipment_availability/timeline"

	"github.com/gin-gonic/gin"
)

type EquipmentController struct{ *Srv }

func NewEquipmentController(s *Srv) *EquipmentController { return &EquipmentController{Srv: s} }

// 管理员创建设备
func (ec *EquipmentController) CreateEquipment(c *gin.Context) {
	var in struct {
		Name  string `json:"name" binding:"required"`
		Stock *int   `json:"stock" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	eq := &models.Equipment{Name: in.Name, Stock: *in.Stock}
	if err := ec.Repo.CreateEquipment(c.Request.Context(), eq); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, eq)
}

// 列表 ?q=
func (ec *EquipmentController) ListEquipment(c *gin.Context) {
	items, err := ec.Repo.ListEquipment(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": items})
}

func (ec *EquipmentController) GetEquipment(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	eq, err := ec.Repo.FindEquipmentByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, eq)
}

type CreatePlanningReq struct {
	EquipmentID int    `json:"equipmentId" binding:"required"`
	Start       string `json:"start" binding:"required"`
	End         string `json:"end" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required"`
	Note        string `json:"note,omitempty"`
}

// 新建预约（允许超订，短缺由报表体现）
func (ec *EquipmentController) CreatePlanning(c *gin.Context) {
	var req CreatePlanningReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	start, err := timeline.ParseDay(req.Start)
	if err != nil {
		writeError(c, badRequest(err.Error()))
		return
	}
	end, err := timeline.ParseDay(req.End)
	if err != nil {
		writeError(c, badRequest(err.Error()))
		return
	}

	p, err := ec.Repo.CreatePlanning(c.Request.Context(), db.CreatePlanningInput{
		EquipmentID: req.EquipmentID,
		Start:       start,
		End:         end,
		Quantity:    req.Quantity,
		Note:        req.Note,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GET /api/plannings?start=&end=&equipmentId=
func (ec *EquipmentController) ListPlannings(c *gin.Context) {
	w, err := parseWindow(c)
	if err != nil {
		writeError(c, err)
		return
	}
	equipmentID := 0
	if v := c.Query("equipmentId"); v != "" {
		if equipmentID, err = strconv.Atoi(v); err != nil {
			writeError(c, badRequest("invalid equipmentId"))
			return
		}
	}
	ps, err := ec.Repo.ListPlannings(c.Request.Context(), w, equipmentID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": ps})
}
