package controllers

import (
	"net/http"
	"strconv"

	"equipment_availability/app"
	"equipment_availability/availability"
	"equipment_availability/timeline"

	"github.com/gin-gonic/gin"
)

type AvailabilityController struct{ *Srv }

func NewAvailabilityController(s *Srv) *AvailabilityController {
	return &AvailabilityController{Srv: s}
}

// GET /api/equipment/:id/availability?quantity=&start=&end=
func (ac *AvailabilityController) IsAvailable(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	quantity, err := strconv.Atoi(c.Query("quantity"))
	if err != nil || quantity <= 0 {
		writeError(c, badRequest("quantity must be a positive integer"))
		return
	}
	w, err := parseWindow(c)
	if err != nil {
		writeError(c, err)
		return
	}

	ok, err := ac.Checker.IsAvailable(c.Request.Context(), id, quantity, w)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{
		"equipmentId": id,
		"quantity":    quantity,
		"start":       w.Start().Format(timeline.DayLayout),
		"end":         w.End().Format(timeline.DayLayout),
		"available":   ok,
		"strategy":    ac.Checker.Strategy(),
	})
}

// GET /api/shortages?start=&end=
func (ac *AvailabilityController) Shortages(c *gin.Context) {
	w, err := parseWindow(c)
	if err != nil {
		writeError(c, err)
		return
	}
	shortages, err := ac.Checker.Shortages(c.Request.Context(), w)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{
		"start":     w.Start().Format(timeline.DayLayout),
		"end":       w.End().Format(timeline.DayLayout),
		"shortages": shortages,
	})
}

// GET /api/equipment/:id/timeline?start=&end=
func (ac *AvailabilityController) Timeline(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	w, err := parseWindow(c)
	if err != nil {
		writeError(c, err)
		return
	}
	rep, err := availability.Report(c.Request.Context(), ac.Source, id, w)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}
