package cmd

import (
	"context"
	"log"
	"time"

	"github.com/space458/gallery-backend/config"
	"github.com/space458/gallery-backend/database"
	"github.com/space458/gallery-backend/database/models"
	"github.com/space458/gallery-backend/database/repo/accounts"
	bannersrepo "github.com/space458/gallery-backend/database/repo/banners"
	exhibitionsrepo "github.com/space458/gallery-backend/database/repo/exhibitions"
	galleryrepo "github.com/space458/gallery-backend/database/repo/gallery"
	newsrepo "github.com/space458/gallery-backend/database/repo/news"
	cryptopackage "github.com/space458/gallery-backend/utils/crypto"
	"github.com/spf13/cobra"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample gallery content into the database",
	Run: func(cmd *cobra.Command, args []string) {
		runSeed()
	},
}

var seedAdminPassword string

func init() {
	seedCmd.Flags().StringVar(&seedAdminPassword, "admin-password", "", "password for the seeded admin user (required)")
	rootCmd.AddCommand(seedCmd)
}

func runSeed() {
	config.InitConfig()
	cfg := config.Get()

	if seedAdminPassword == "" {
		log.Fatal("--admin-password is required")
	}

	provider, err := database.NewGormProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer provider.Close()

	if err := database.AutoMigrateAll(provider); err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}

	ctx := context.Background()
	db := provider.DB()

	// 管理员
	accountsRepo := accounts.NewRepository(db)
	exists, err := accountsRepo.UserExists("admin")
	if err != nil {
		log.Fatalf("Failed to check admin user: %v", err)
	}
	if !exists {
		hashed, err := cryptopackage.GenerateFromPassword(seedAdminPassword)
		if err != nil {
			log.Fatalf("Failed to hash admin password: %v", err)
		}
		if err := accountsRepo.CreateUser(&models.User{Username: "admin", Password: hashed}); err != nil {
			log.Fatalf("Failed to create admin user: %v", err)
		}
		log.Println("Created admin user 'admin'")
	}

	// 横幅
	bannersRepo := bannersrepo.NewRepository(db)
	banners := []*models.Banner{
		{
			Title:        "현재 전시",
			Subtitle:     "새로운 가능성의 탐구",
			Link:         "/exhibitions/current",
			Type:         models.BannerTypeImage,
			DisplayOrder: 0,
			Active:       true,
		},
		{
			Title:        "SPACE 458",
			Subtitle:     "동시대 예술 플랫폼",
			Link:         "/about",
			Type:         models.BannerTypeImage,
			DisplayOrder: 1,
			Active:       true,
		},
	}
	for _, b := range banners {
		if err := bannersRepo.Create(ctx, b); err != nil {
			log.Fatalf("Failed to seed banner %q: %v", b.Title, err)
		}
	}

	// 展览
	exhibitionsRepo := exhibitionsrepo.NewRepository(db)
	exhibitions := []*models.Exhibition{
		{
			Title:       "경계의 확장",
			Artist:      "김예진",
			StartDate:   date(2024, 12, 1),
			EndDate:     date(2024, 12, 31),
			Description: "현대 사회의 경계와 한계를 탐구하는 김예진 작가의 개인전입니다.",
			Curator:     "이미나",
		},
		{
			Title:       "시간의 흔적",
			Artist:      "박준호",
			StartDate:   date(2025, 1, 15),
			EndDate:     date(2025, 2, 15),
			Description: "시간의 변화와 그 흔적을 조형언어로 표현한 박준호 작가의 신작 전시입니다.",
		},
	}
	for _, e := range exhibitions {
		if err := exhibitionsRepo.Create(ctx, e); err != nil {
			log.Fatalf("Failed to seed exhibition %q: %v", e.Title, err)
		}
	}

	// 新闻
	newsRepo := newsrepo.NewRepository(db)
	newsItems := []*models.News{
		{
			Title:    "2024 년말 특별 기획전 \"경계의 확장\" 개막",
			Type:     models.NewsTypeNotice,
			Date:     date(2024, 12, 1),
			Content:  "김예진 작가의 개인전 \"경계의 확장\"이 12월 1일부터 31일까지 스페이스458에서 개최됩니다. 현대 사회의 경계와 한계를 탐구하는 작품들을 만나보세요.",
			Featured: true,
		},
		{
			Title:    "스페이스458, 2024 올해의 신진 갤러리 선정",
			Type:     models.NewsTypePress,
			Date:     date(2024, 11, 15),
			Content:  "한국갤러리협회에서 주관하는 \"2024 올해의 신진 갤러리\"에 스페이스458이 선정되었습니다.",
			Featured: true,
		},
	}
	for _, n := range newsItems {
		if err := newsRepo.Create(ctx, n); err != nil {
			log.Fatalf("Failed to seed news %q: %v", n.Title, err)
		}
	}

	// 画廊信息
	galleryRepo := galleryrepo.NewRepository(db)
	info := &models.GalleryInfo{
		Name:        "SPACE 458",
		Description: "동시대 예술 플랫폼",
		Address:     "서울특별시",
		Hours:       "화-일 10:00-18:00 (월요일 휴관)",
	}
	if err := galleryRepo.Upsert(ctx, info); err != nil {
		log.Fatalf("Failed to seed gallery info: %v", err)
	}

	log.Println("Database seeded successfully.")
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}
