package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BerniceZTT/crm_interactions/config"
	"github.com/BerniceZTT/crm_interactions/controllers"
	"github.com/BerniceZTT/crm_interactions/middleware"
	"github.com/BerniceZTT/crm_interactions/repository"
	"github.com/BerniceZTT/crm_interactions/routes"
	"github.com/BerniceZTT/crm_interactions/service"
	"github.com/BerniceZTT/crm_interactions/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.LoadConfig()

	// 初始化日志
	utils.InitLogger(utils.LogOptions{Debug: cfg.Debug, File: cfg.LogFile})

	loc, err := cfg.Location()
	if err != nil {
		utils.Logger.Fatal().Err(err).Msg("加载时区失败")
	}
	options, err := config.LoadOptions(cfg.OptionsFile)
	if err != nil {
		utils.Logger.Fatal().Err(err).Msg("加载筛选可选项失败")
	}
	controllers.Configure(options, loc)

	// 设置Gin模式
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化数据库
	if err := repository.InitMongoDB(cfg.MongoURI, cfg.MongoDB); err != nil {
		utils.Logger.Fatal().Err(err).Msg("连接MongoDB失败")
	}
	defer repository.CloseMongoDB()

	utils.Logger.Info().Msg("开始系统初始化...")
	if err := repository.InitializeCollections(); err != nil {
		utils.Logger.Error().Err(err).Msg("初始化数据库集合失败")
	}
	utils.Logger.Info().Msg("系统初始化完成")

	// 创建Gin实例
	router := gin.New()

	// 应用中间件
	router.Use(middleware.Recovery())
	router.Use(middleware.Metrics())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.OperationLoggerMiddleware(repository.InsertOperationLog))

	// 注册路由
	routes.RegisterRoutes(router)

	// 每日逾期跟进汇总
	jobCtx, stopJobs := context.WithCancel(context.Background())
	defer stopJobs()
	hour, minute, second, err := cfg.DigestClock()
	if err != nil {
		utils.Logger.Error().Err(err).Msg("逾期跟进汇总任务未启动")
	} else {
		service.ScheduleDailyTaskAt(jobCtx, loc, hour, minute, second, func(ctx context.Context, now time.Time) {
			if _, err := service.ProcessOverdueFollowUpDigest(ctx, now); err != nil {
				utils.Logger.Error().Err(err).Msg("逾期跟进汇总任务失败")
			}
		})
		utils.Logger.Info().Str("at", cfg.DigestAt).Str("timeZone", cfg.TimeZone).Msg("逾期跟进汇总任务已启动")
	}

	// 设置HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 启动服务器
	go func() {
		utils.Logger.Info().Msgf("服务器启动，监听端口: %d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Logger.Fatal().Err(err).Msg("启动服务器失败")
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.Logger.Info().Msg("正在关闭服务器...")
	stopJobs()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.Logger.Error().Err(err).Msg("服务器关闭异常")
	}

	utils.Logger.Info().Msg("服务器已优雅关闭")
}
