package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/space458/gallery-backend/api/core"
	"github.com/space458/gallery-backend/cache"
	"github.com/space458/gallery-backend/config"
	"github.com/space458/gallery-backend/database"
	"github.com/space458/gallery-backend/database/repo/accounts"
	"github.com/space458/gallery-backend/internal/auth"
	"github.com/space458/gallery-backend/internal/contact"
	"github.com/space458/gallery-backend/internal/media"
	"github.com/space458/gallery-backend/storage"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start API server",
	Run: func(cmd *cobra.Command, args []string) {
		RunServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func RunServer() {
	config.InitConfig()
	cfg := config.Get()

	if err := os.MkdirAll("./data", os.ModePerm); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	provider, err := database.NewGormProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if err := database.AutoMigrateAll(provider); err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}

	accountsRepo := accounts.NewRepository(provider.DB())
	ensureAdminUser(accountsRepo, cfg)

	storageProvider, err := storage.NewProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize media storage: %v", err)
	}
	if storageProvider != nil {
		log.Printf("[storage] using %s media storage", storageProvider.Name())
	} else {
		log.Println("[storage] using blob media storage")
	}

	cacheProvider := cache.MustNew(cfg)

	jwtService, err := auth.NewJWTService(cfg.JwtSecret, cfg.SessionTTL)
	if err != nil {
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}

	attemptsRepo := accounts.NewLoginAttemptRepository(provider.DB())
	loginService := auth.NewLoginService(accountsRepo, attemptsRepo, jwtService,
		cfg.AdminUsername, cfg.AdminPassword)

	deps := &core.ServerDependencies{
		Provider:     provider,
		Storage:      storageProvider,
		Cache:        cacheProvider,
		Store:        media.NewStore(storageProvider),
		JWTService:   jwtService,
		LoginService: loginService,
		Contact:      contact.NewService(cfg),
	}

	// 启动 gin
	server, cleanup := core.StartServer(deps)
	go func() {
		log.Printf("Server started on %s", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// 处理退出 signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if cleanup != nil {
		cleanup()
	}

	if cacheProvider != nil {
		if err := cacheProvider.Close(); err != nil {
			log.Printf("Error closing cache: %v", err)
		}
	}

	if err := provider.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited successfully")
}

// ensureAdminUser 数据库没有用户且未配置回退凭据时创建默认管理员
func ensureAdminUser(repo *accounts.Repository, cfg *config.Config) {
	if cfg.AdminUsername != "" && cfg.AdminPassword != "" {
		return
	}

	password, err := repo.CreateDefaultAdminUser()
	if err != nil {
		log.Printf("[Warning] Failed to create default admin user: %v", err)
		return
	}
	if password != "" {
		log.Printf("Created default admin user 'admin' with password: %s", password)
		log.Println("Change this password immediately.")
	}
}
