package routes

import (
	"equipment_availability/app"
	"equipment_availability/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.GetSrv(a)
	throttleMW := app.Throttle(a.RDB, a.Config.ThrottleLimit, a.Config.ThrottleWindow)
	Register(r, s, app.AuthRequired(a.Tokens(), a.Config.AdminToken), throttleMW)
}

// Register 挂载所有路由；中间件由调用方传入，测试时可替换
func Register(r *gin.Engine, s *controllers.Srv, authMW gin.HandlerFunc, extra ...gin.HandlerFunc) {
	availCtl := controllers.NewAvailabilityController(s)
	equipCtl := controllers.NewEquipmentController(s)
	tokenCtl := controllers.NewTokenController(s)
	adminMW := app.AdminOnly()

	// Health
	r.GET("/healthz", func(c *app.Ctx) { c.JSON(200, app.H{"ok": true}) })

	api := r.Group("/api", append([]gin.HandlerFunc{authMW}, extra...)...)

	// ------------------------------
	// 设备
	// ------------------------------
	api.GET("/equipment", equipCtl.ListEquipment) // ?q=
	api.GET("/equipment/:id", equipCtl.GetEquipment)
	api.POST("/equipment", adminMW, equipCtl.CreateEquipment)

	// ------------------------------
	// 可用性 / 短缺
	// ------------------------------
	api.GET("/equipment/:id/availability", availCtl.IsAvailable) // ?quantity=&start=&end=
	api.GET("/equipment/:id/timeline", availCtl.Timeline)        // ?start=&end=
	api.GET("/shortages", availCtl.Shortages)                    // ?start=&end=

	// ------------------------------
	// 预约
	// ------------------------------
	api.GET("/plannings", equipCtl.ListPlannings) // ?start=&end=&equipmentId=
	api.POST("/plannings", equipCtl.CreatePlanning)

	// ------------------------------
	// API token（仅管理员）
	// ------------------------------
	admin := r.Group("/admin", authMW, adminMW)
	{
		admin.POST("/tokens", tokenCtl.IssueToken)
		admin.DELETE("/tokens", tokenCtl.RevokeLabel) // ?label=
		admin.DELETE("/tokens/:token", tokenCtl.RevokeToken)
	}
}
