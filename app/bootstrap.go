// app/bootstrap.go
package app

import (
	"crypto/rand"
	"encoding/hex"

	"equipment_availability/config"

	"github.com/rs/zerolog/log"
)

// BootstrapAdminToken 未配置 ADMIN_TOKEN 时生成一次性管理员 token 并打印
func BootstrapAdminToken(cfg *config.Config) {
	if cfg.AdminToken != "" {
		return
	}
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		log.Error().Err(err).Msg("bootstrap admin token failed")
		return
	}
	cfg.AdminToken = hex.EncodeToString(buf)

	log.Warn().Msg("[BOOTSTRAP] ADMIN_TOKEN not set, generated one for this process")
	log.Warn().Str("token", cfg.AdminToken).Msg("[BOOTSTRAP] use it to issue API tokens via POST /admin/tokens")
}
