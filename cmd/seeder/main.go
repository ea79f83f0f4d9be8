package main

import (
	"Nova_Tube/internal/model"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"

	"github.com/go-faker/faker/v4"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	fmt.Println("🚀 开始填充测试数据...")

	_ = godotenv.Load()

	// --- 1. 连接数据库 ---
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(127.0.0.1:3306)/nova_tube?charset=utf8mb4&parseTime=True&loc=Local"
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ 无法连接到数据库: %v", err)
	}
	fmt.Println("✅ 数据库连接成功!")

	// --- 2. 清理旧数据 ---
	// 为了确保每次填充都是干净的，先删除旧表再重建
	// 注意：这将删除所有数据！
	fmt.Println("🧹 正在清理旧数据...")
	db.Migrator().DropTable(
		&model.WatchRecord{},
		&model.PlaylistVideo{},
		&model.Playlist{},
		&model.Subscription{},
		&model.Like{},
		&model.Comment{},
		&model.Tweet{},
		&model.Video{},
		&model.User{},
	)
	fmt.Println("✅ 旧表删除成功!")

	db.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Comment{},
		&model.Tweet{},
		&model.Like{},
		&model.Subscription{},
		&model.Playlist{},
		&model.PlaylistVideo{},
		&model.WatchRecord{},
	)
	fmt.Println("✅ 数据库迁移成功!")

	// --- 3. 创建用户 ---
	fmt.Println("👥 正在创建用户...")
	userCount := 100
	// 所有测试用户的密码都是 "password"，加密一次就够了
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ 密码加密失败: %v", err)
	}
	for i := 0; i < userCount; i++ {
		username := strings.ToLower(faker.Username())
		user := model.User{
			Username: fmt.Sprintf("%s%d", username, i), // 加序号避免faker撞名
			Email:    fmt.Sprintf("%d_%s", i, faker.Email()),
			FullName: faker.Name(),
			Password: string(hashedPassword),
			Avatar:   "https://test.com/avatar.png",
			CoverURL: "https://test.com/cover.png",
		}
		db.Create(&user)
	}
	fmt.Printf("✅ 成功创建 %d 个用户!\n", userCount)

	// --- 4. 创建视频 ---
	fmt.Println("🎬 正在创建视频...")
	videoCount := 500
	for i := 0; i < videoCount; i++ {
		video := model.Video{
			// 从已创建的用户中随机选一个作者，ID范围[1, userCount]
			AuthorID:    uint64(rand.Intn(userCount) + 1),
			Title:       faker.Sentence(),
			Description: faker.Paragraph(),
			Duration:    float64(rand.Intn(600) + 30),
			IsPublished: true,
			VideoURL:    "https://test.com/video.mp4",
			CoverURL:    "https://test.com/cover.jpg",
		}
		db.Create(&video)
	}
	fmt.Printf("✅ 成功创建 %d 个视频!\n", videoCount)

	// --- 5. 创建评论和动态 ---
	fmt.Println("💬 正在创建评论和动态...")
	commentCount := 2000
	for i := 0; i < commentCount; i++ {
		comment := model.Comment{
			VideoID: uint64(rand.Intn(videoCount) + 1),
			UserID:  uint64(rand.Intn(userCount) + 1),
			Content: faker.Sentence(),
		}
		db.Create(&comment)
	}
	tweetCount := 300
	for i := 0; i < tweetCount; i++ {
		tweet := model.Tweet{
			UserID:  uint64(rand.Intn(userCount) + 1),
			Content: faker.Sentence(),
		}
		db.Create(&tweet)
	}
	fmt.Printf("✅ 成功创建 %d 条评论和 %d 条动态!\n", commentCount, tweetCount)

	// --- 6. 创建随机点赞 ---
	fmt.Println("👍 正在创建随机点赞...")
	likeCount := 1000
	kinds := []model.TargetKind{model.TargetVideo, model.TargetComment, model.TargetTweet}
	for i := 0; i < likeCount; i++ {
		kind := kinds[rand.Intn(len(kinds))]
		var targetID uint64
		switch kind {
		case model.TargetVideo:
			targetID = uint64(rand.Intn(videoCount) + 1)
		case model.TargetComment:
			targetID = uint64(rand.Intn(commentCount) + 1)
		case model.TargetTweet:
			targetID = uint64(rand.Intn(tweetCount) + 1)
		}
		like := model.Like{
			UserID:     uint64(rand.Intn(userCount) + 1),
			TargetKind: kind,
			TargetID:   targetID,
		}
		// OnConflict避免因重复点赞报错：尝试插入，唯一键冲突就什么都不做
		db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "target_kind"}, {Name: "target_id"}},
			DoNothing: true,
		}).Create(&like)
	}
	fmt.Printf("✅ 成功创建(或尝试创建) %d 个随机点赞!\n", likeCount)

	// --- 7. 创建随机订阅 ---
	fmt.Println("🔔 正在创建随机订阅...")
	subCount := 500
	for i := 0; i < subCount; i++ {
		sub := model.Subscription{
			SubscriberID: uint64(rand.Intn(userCount) + 1),
			ChannelID:    uint64(rand.Intn(userCount) + 1),
		}
		db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "subscriber_id"}, {Name: "channel_id"}},
			DoNothing: true,
		}).Create(&sub)
	}
	fmt.Printf("✅ 成功创建(或尝试创建) %d 个随机订阅!\n", subCount)

	// --- 8. 创建收藏夹 ---
	fmt.Println("📂 正在创建收藏夹...")
	playlistCount := 50
	for i := 0; i < playlistCount; i++ {
		playlist := model.Playlist{
			UserID:      uint64(rand.Intn(userCount) + 1),
			Name:        faker.Word(),
			Description: faker.Sentence(),
		}
		db.Create(&playlist)
		// 每个收藏夹塞3~7个视频，位置从1开始连续编号
		itemCount := rand.Intn(5) + 3
		for pos := 1; pos <= itemCount; pos++ {
			item := model.PlaylistVideo{
				PlaylistID: playlist.ID,
				Position:   pos,
				VideoID:    uint64(rand.Intn(videoCount) + 1),
			}
			db.Create(&item)
		}
	}
	fmt.Printf("✅ 成功创建 %d 个收藏夹!\n", playlistCount)

	fmt.Println("🎉🎉🎉 所有测试数据填充完毕! 🎉🎉🎉")
}
