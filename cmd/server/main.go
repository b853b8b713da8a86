package main

import (
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"forum_backend/internal/app/di"
	"forum_backend/internal/app/router"
	authhandler "forum_backend/internal/feature/auth/transport/handler"
	authusecase "forum_backend/internal/feature/auth/usecase"
	chathandler "forum_backend/internal/feature/chat/transport/handler"
	chatusecase "forum_backend/internal/feature/chat/usecase"
	forumadapters "forum_backend/internal/feature/forum/adapters"
	forumhandler "forum_backend/internal/feature/forum/transport/handler"
	forumusecase "forum_backend/internal/feature/forum/usecase"
	newsadapters "forum_backend/internal/feature/news/adapters"
	newshandler "forum_backend/internal/feature/news/transport/handler"
	newsusecase "forum_backend/internal/feature/news/usecase"
	notifadapters "forum_backend/internal/feature/notifications/adapters"
	notifhandler "forum_backend/internal/feature/notifications/transport/handler"
	notifusecase "forum_backend/internal/feature/notifications/usecase"
	usersadapters "forum_backend/internal/feature/users/adapters"
	usershandler "forum_backend/internal/feature/users/transport/handler"
	usersusecase "forum_backend/internal/feature/users/usecase"
	infradb "forum_backend/internal/platform/db"
	platformhandler "forum_backend/internal/platform/http/handler"
	infraredis "forum_backend/internal/platform/redis"
	"forum_backend/internal/platform/token"
	"forum_backend/internal/shared/ratelimiter"
)

func main() {
	// db
	db := infradb.OpenDB()
	if os.Getenv("SEED_DATA") == "true" {
		if err := infradb.Seed(db); err != nil {
			log.Fatalf("failed to seed: %v", err)
		}
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := usersadapters.NewUserPostgres(db)
	roleRepo := usersadapters.NewRolePostgres(db)
	questionPG := forumadapters.NewQuestionPostgres(db)
	tagRepo := forumadapters.NewTagPostgres(db)
	commentRepo := forumadapters.NewCommentPostgres(db)
	articleRepo := newsadapters.NewArticlePostgres(db)
	notifRepo := notifadapters.NewNotificationPostgres(db)

	// Redisキャッシュでラップ
	questionRepo := di.NewQuestionRepository(rdb, db)

	// Usecase
	tokenSvc := token.NewService(os.Getenv("SECRET_KEY"), token.DefaultTTL)
	authUC := authusecase.NewAuthUsecase(userRepo, tokenSvc)
	userUC := usersusecase.NewUserUsecase(userRepo, roleRepo)
	roleUC := usersusecase.NewRoleUsecase(roleRepo)
	questionUC := forumusecase.NewQuestionUsecase(questionRepo, tagRepo, userRepo)
	tagUC := forumusecase.NewTagUsecase(tagRepo)
	commentUC := forumusecase.NewCommentUsecase(commentRepo, questionRepo, notifRepo)
	articleUC := newsusecase.NewArticleUsecase(articleRepo)
	notifUC := notifusecase.NewNotificationUsecase(notifRepo, userRepo, questionPG)

	// Handler
	loginLimiter := ratelimiter.NewRateLimiter(30, time.Minute)
	authH := authhandler.NewAuthHandler(authUC, loginLimiter)
	userH := usershandler.NewUserHandler(userUC)
	roleH := usershandler.NewRoleHandler(roleUC)
	questionH := forumhandler.NewQuestionHandler(questionUC)
	tagH := forumhandler.NewTagHandler(tagUC)
	commentH := forumhandler.NewCommentHandler(commentUC)
	articleH := newshandler.NewArticleHandler(articleUC)
	notifH := notifhandler.NewNotificationHandler(notifUC)
	chatH := chathandler.NewChatHandler(authUC, chatusecase.NewRegistry())

	// ルータ生成
	r := router.NewRouter(router.Handlers{
		Auth:          authH,
		Users:         userH,
		Roles:         roleH,
		Questions:     questionH,
		Tags:          tagH,
		Comments:      commentH,
		Articles:      articleH,
		Notifications: notifH,
		Chat:          chatH,
		Ready:         platformhandler.Ready(db, rdb),
	}, authUC)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
