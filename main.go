package main

import (
	"log"

	"RoomChat/global"
	"RoomChat/logger"
	mid "RoomChat/middleware"
	"RoomChat/module/user"
	usersvc "RoomChat/module/user/service"
	"RoomChat/service/audit"
	"RoomChat/service/gateway"
	"RoomChat/service/gateway/handlers"
	"RoomChat/service/storage"
	"RoomChat/tools/security"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := global.Config()
	global.ConfigIds()

	// Optional presence mirror; the gateway runs fine without redis.
	var online *storage.OnlineManager
	if global.ConfigRedis() {
		online = storage.NewOnlineManager(cfg.GatewayID, cfg.OnlineTTL)
	}

	jwtOpts := security.DefaultOptions(global.GetJwtSecret())
	authSvc := usersvc.NewService(jwtOpts, cfg.AdminPassword, cfg.UserPassword)
	user.Init(authSvc)

	sink, err := audit.NewFileSink(cfg.AuditLogPath, 256)
	if err != nil {
		log.Fatalf("audit sink: %v", err)
	}
	defer sink.Close()

	g := gateway.NewServer(gateway.ServerConf{GatewayID: cfg.GatewayID},
		usersvc.NewResolver(jwtOpts), sink, online)
	handlers.RegisterAll(g)

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/ws", g.HandleWS) // e.g. ws://localhost:8080/ws?token=...
	mid.POST(r, "/auth/login", user.HandlerLogin, mid.RouteOpt{IsAuth: false})
	mid.POST(r, "/auth/check", user.HandlerCheck, mid.RouteOpt{IsAuth: true})

	logger.Infof("[HTTP] listening on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("HTTP server failed: %v", err)
	}
}
