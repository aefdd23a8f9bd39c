// controllers/srv.go
package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"equipment_availability/app"
	"equipment_availability/availability"
	"equipment_availability/config"
	"equipment_availability/db"
	"equipment_availability/session"
	"equipment_availability/timeline"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// TokenIssuer is the part of the token store the admin endpoints use.
type TokenIssuer interface {
	Issue(ctx context.Context, label string) (*session.Token, error)
	Revoke(ctx context.Context, id string) error
	RevokeLabel(ctx context.Context, label string) (int, error)
}

type Srv struct {
	Repo    *db.Repo
	Source  availability.ReservationSource
	Checker availability.Checker
	Tokens  TokenIssuer
	Cfg     config.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Repo:    a.Repo,
		Source:  a.Repo,
		Checker: a.Checker,
		Tokens:  a.Tokens(),
		Cfg:     a.Config,
	}
}

// --- helpers ---

var errBadRequest = errors.New("bad request")

// MaxWindowDays caps the window a single request may ask for.
const MaxWindowDays = 3660

// parseWindow 读取 ?start=&end=，两端都包含
func parseWindow(c *gin.Context) (timeline.Window, error) {
	rawStart, rawEnd := c.Query("start"), c.Query("end")
	if rawStart == "" || rawEnd == "" {
		return timeline.Window{}, badRequest("start and end are required")
	}
	start, err := timeline.ParseDay(rawStart)
	if err != nil {
		return timeline.Window{}, badRequest(err.Error())
	}
	end, err := timeline.ParseDay(rawEnd)
	if err != nil {
		return timeline.Window{}, badRequest(err.Error())
	}
	w, err := timeline.NewWindow(start, end)
	if err != nil {
		return timeline.Window{}, err
	}
	if w.Len() > MaxWindowDays {
		return timeline.Window{}, badRequest(fmt.Sprintf("window spans %d days, at most %d allowed", w.Len(), MaxWindowDays))
	}
	return w, nil
}

func pathID(c *gin.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, badRequest("invalid " + name)
	}
	return id, nil
}

type requestError struct{ msg string }

func (e *requestError) Error() string        { return e.msg }
func (e *requestError) Is(target error) bool { return target == errBadRequest }

func badRequest(msg string) error { return &requestError{msg: msg} }

// 统一错误响应
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := err.Error()
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, timeline.ErrInvalidWindow),
		errors.Is(err, timeline.ErrInvalidReservation),
		errors.Is(err, db.ErrEquipmentName),
		errors.Is(err, db.ErrEquipmentStock):
		status = http.StatusBadRequest
	case errors.Is(err, availability.ErrUnknownEquipment),
		errors.Is(err, db.ErrEquipmentNotFound),
		errors.Is(err, session.ErrTokenNotFound):
		status = http.StatusNotFound
	case errors.Is(err, availability.ErrMissingStock):
		msg = "data integrity: " + msg
	}
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	_ = c.Error(err)
	c.JSON(status, app.H{"error": msg})
}
