package config

import (
	"log"

	"hotelbooking/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/robfig/cron/v3"
)

func InitApp(m *metrics.Metrics) (*gin.Engine, *melody.Melody, *cron.Cron) {
	router := gin.Default()

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", "X-Session-ID")
	configCors.AddExposeHeaders("X-Session-ID")
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false
	configCors.AllowOriginFunc = func(origin string) bool {
		return true
	}
	router.Use(cors.New(configCors))
	router.Use(m.GinMiddleware())

	router.SetTrustedProxies(nil)

	mel := melody.New()

	c := cron.New()

	return router, mel, c
}

func InitWebSocket(router *gin.Engine, m *melody.Melody) {
	router.GET("/ws", func(c *gin.Context) {
		m.HandleRequest(c.Writer, c.Request)
	})
	log.Println("WebSocket initialized successfully")
}
