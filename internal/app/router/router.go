package router

import (
	"github.com/gin-gonic/gin"

	authhandler "forum_backend/internal/feature/auth/transport/handler"
	"forum_backend/internal/feature/auth/transport/middleware"
	chathandler "forum_backend/internal/feature/chat/transport/handler"
	forumhandler "forum_backend/internal/feature/forum/transport/handler"
	newshandler "forum_backend/internal/feature/news/transport/handler"
	notifhandler "forum_backend/internal/feature/notifications/transport/handler"
	usershandler "forum_backend/internal/feature/users/transport/handler"
	platformhandler "forum_backend/internal/platform/http/handler"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth          *authhandler.AuthHandler
	Users         *usershandler.UserHandler
	Roles         *usershandler.RoleHandler
	Questions     *forumhandler.QuestionHandler
	Tags          *forumhandler.TagHandler
	Comments      *forumhandler.CommentHandler
	Articles      *newshandler.ArticleHandler
	Notifications *notifhandler.NotificationHandler
	Chat          *chathandler.ChatHandler

	// Ready is the readiness probe. Optional, tests leave it nil.
	Ready gin.HandlerFunc
}

// NewRouter mounts all routes. Reads of public content need no token;
// everything that writes or exposes per-user data sits behind AuthRequired.
func NewRouter(h Handlers, resolver middleware.UserResolver) *gin.Engine {
	r := gin.Default()

	// 導通確認用
	r.GET("/healthz", platformhandler.Health)
	r.HEAD("/healthz", platformhandler.Health)
	if h.Ready != nil {
		r.GET("/readyz", h.Ready)
	}

	// 認証不要
	r.POST("/api/token", h.Auth.Token)
	r.POST("/users", h.Users.Create)
	r.GET("/users", h.Users.List)
	// /users/me は:keyで受けてハンドラ側で分岐します。ginのルーティング木は
	// パラメータと静的セグメントの兄弟を許さないためです。
	r.GET("/users/:key", middleware.OptionalAuth(resolver), h.Users.Get)
	// 著者での絞り込みは author_id クエリパラメータで受けます
	r.GET("/questions", h.Questions.List)
	r.GET("/questions/:id", h.Questions.Get)
	r.PATCH("/questions/:id/views", h.Questions.UpdateViews)
	r.GET("/tags", h.Tags.List)
	r.GET("/tags/:key", h.Tags.Get)
	r.GET("/comments/:question_id", h.Comments.ListByQuestion)
	r.GET("/articles", h.Articles.List)
	r.GET("/articles/:id", h.Articles.Get)

	// WebSocketチャット。トークンはクエリパラメータで渡されます。
	r.GET("/ws/chat", h.Chat.Serve)

	// 認証必須のルート
	auth := r.Group("/")
	auth.Use(middleware.AuthRequired(resolver))
	{
		auth.PATCH("/users/:id", h.Users.Update)
		auth.DELETE("/users/:id", h.Users.Delete)

		auth.POST("/roles", h.Roles.Create)
		auth.GET("/roles", h.Roles.List)
		auth.GET("/roles/:key", h.Roles.Get)
		auth.PATCH("/roles/:key", h.Roles.Update)
		auth.DELETE("/roles/:key", h.Roles.Delete)

		auth.POST("/questions", h.Questions.Create)
		auth.PATCH("/questions/:id", h.Questions.Update)
		auth.DELETE("/questions/:id", h.Questions.Delete)

		auth.POST("/tags", h.Tags.Create)
		auth.PATCH("/tags/:id", h.Tags.Update)
		auth.DELETE("/tags/:id", h.Tags.Delete)

		auth.POST("/comments", h.Comments.Create)
		auth.GET("/comments", h.Comments.List)
		auth.PATCH("/comments/:id", h.Comments.Update)
		auth.DELETE("/comments/:id", h.Comments.Delete)

		auth.POST("/articles", h.Articles.Create)
		auth.PATCH("/articles/:id", h.Articles.Update)
		auth.PATCH("/articles/:id/:rating", h.Articles.Rate)
		auth.DELETE("/articles/:id", h.Articles.Delete)

		auth.POST("/notifications", h.Notifications.Create)
		auth.GET("/notifications", h.Notifications.List)
		auth.GET("/notifications/user/:user_id", h.Notifications.ListByUser)
		auth.PATCH("/notifications/:id", h.Notifications.Update)
		auth.DELETE("/notifications/:id", h.Notifications.Delete)
	}

	return r
}
