package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hhhhhhjs/shopping-mall-program/internal/config"
	"github.com/hhhhhhjs/shopping-mall-program/internal/db"
	"github.com/hhhhhhjs/shopping-mall-program/internal/router"
	"github.com/hhhhhhjs/shopping-mall-program/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	configDir := flag.String("config", "config", "配置文件目录")
	flag.Parse()

	config.InitConfig(*configDir)
	db.InitDB()

	avatarPath := config.Get().Upload.AvatarPath
	if err := os.MkdirAll(avatarPath, 0755); err != nil {
		log.Fatal("无法创建头像目录: ", err)
	}

	gin.SetMode(config.Get().Server.Mode)

	r := gin.Default()
	router.InitRouter(r)

	// 头像静态文件服务
	r.StaticFS(config.Get().Upload.AvatarURLPrefix, gin.Dir(avatarPath, false))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"code": 404, "message": "接口不存在", "data": nil})
	})

	srv := &http.Server{
		Addr:    ":" + config.Get().Server.Port,
		Handler: r,
	}

	go func() {
		// 服务连接
		log.Printf("🚀 服务启动成功，运行在 :%s\n", config.Get().Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ 服务启动失败: %s\n", err)
		}
	}()

	// 等待中断信号关闭服务器（设置 5 秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ 服务强制关闭:", err)
	}

	service.CloseRedisClient()
	log.Println("✅ 服务已退出")
}
