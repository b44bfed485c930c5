package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/cors"

	"github.com/vybe-social/vybe/internal/config"
	"github.com/vybe-social/vybe/internal/database"
	"github.com/vybe-social/vybe/internal/media"
	"github.com/vybe-social/vybe/internal/presence"
	postgresrepo "github.com/vybe-social/vybe/internal/repository/postgres"
	"github.com/vybe-social/vybe/internal/service"
	"github.com/vybe-social/vybe/internal/transport/http/handlers"
	"github.com/vybe-social/vybe/internal/transport/http/middleware"
	"github.com/vybe-social/vybe/internal/transport/ws"
)

func main() {
	cfg := config.Load()

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	log.Println("Connected to database")

	if err := database.Migrate(context.Background(), pool); err != nil {
		log.Fatal(err)
	}

	// Media storage
	maxUpload := cfg.MaxUploadMB << 20
	mediaStore, err := media.NewDiskStore(cfg.UploadDir, "/uploads", maxUpload)
	if err != nil {
		log.Fatal(err)
	}

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	postRepo := postgresrepo.NewPostRepo(pool)
	loopRepo := postgresrepo.NewLoopRepo(pool)
	commentRepo := postgresrepo.NewCommentRepo(pool)
	storyRepo := postgresrepo.NewStoryRepo(pool)
	chatRepo := postgresrepo.NewChatRepo(pool)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	userService := service.NewUserService(userRepo, postRepo, loopRepo, storyRepo)
	postService := service.NewPostService(postRepo, commentRepo)
	loopService := service.NewLoopService(loopRepo, commentRepo)
	storyService := service.NewStoryService(storyRepo)
	chatService := service.NewChatService(chatRepo, userRepo)

	// Real-time channel: presence registry decides routing, the hub owns
	// connections, the notifier adapts pushes for the chat service.
	registry := presence.NewRegistry()
	hub := ws.NewHub(registry)
	chatService.SetNotifier(ws.NewHubNotifier(hub))

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, mediaStore, maxUpload)
	postHandler := handlers.NewPostHandler(postService, mediaStore, maxUpload)
	loopHandler := handlers.NewLoopHandler(loopService, mediaStore, maxUpload)
	storyHandler := handlers.NewStoryHandler(storyService, mediaStore, maxUpload)
	chatHandler := handlers.NewChatHandler(chatService, mediaStore, maxUpload)

	// Auth middleware
	auth := middleware.Auth(cfg.JWTSecret)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /api/auth/signup", authHandler.SignUp)
	mux.HandleFunc("POST /api/auth/signin", authHandler.SignIn)
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	// WebSocket (token goes in the query string, not a header)
	mux.HandleFunc("GET /ws", ws.ServeWS(hub, cfg.JWTSecret))

	// Protected - Users
	mux.Handle("GET /api/user/current", auth(http.HandlerFunc(userHandler.GetCurrent)))
	mux.Handle("GET /api/user/search", auth(http.HandlerFunc(userHandler.Search)))
	mux.Handle("GET /api/user/{id}", auth(http.HandlerFunc(userHandler.GetByID)))
	mux.Handle("POST /api/user/follow/{id}", auth(http.HandlerFunc(userHandler.ToggleFollow)))
	mux.Handle("PATCH /api/user/profile", auth(http.HandlerFunc(userHandler.UpdateProfile)))
	mux.Handle("POST /api/user/profile-image", auth(http.HandlerFunc(userHandler.UpdateProfileImage)))

	// Protected - Posts
	mux.Handle("POST /api/post", auth(http.HandlerFunc(postHandler.Create)))
	mux.Handle("GET /api/post/feed", auth(http.HandlerFunc(postHandler.Feed)))
	mux.Handle("POST /api/post/like/{id}", auth(http.HandlerFunc(postHandler.ToggleLike)))
	mux.Handle("POST /api/post/comment/{id}", auth(http.HandlerFunc(postHandler.AddComment)))
	mux.Handle("GET /api/post/comments/{id}", auth(http.HandlerFunc(postHandler.ListComments)))
	mux.Handle("DELETE /api/post/{postId}/comment/{commentId}", auth(http.HandlerFunc(postHandler.DeleteComment)))
	mux.Handle("PATCH /api/post/{id}", auth(http.HandlerFunc(postHandler.UpdateCaption)))
	mux.Handle("DELETE /api/post/{id}", auth(http.HandlerFunc(postHandler.Delete)))

	// Protected - Loops
	mux.Handle("POST /api/loop", auth(http.HandlerFunc(loopHandler.Upload)))
	mux.Handle("GET /api/loop", auth(http.HandlerFunc(loopHandler.List)))
	mux.Handle("POST /api/loop/like/{id}", auth(http.HandlerFunc(loopHandler.ToggleLike)))
	mux.Handle("POST /api/loop/comment/{id}", auth(http.HandlerFunc(loopHandler.AddComment)))
	mux.Handle("GET /api/loop/comments/{id}", auth(http.HandlerFunc(loopHandler.ListComments)))
	mux.Handle("DELETE /api/loop/{loopId}/comment/{commentId}", auth(http.HandlerFunc(loopHandler.DeleteComment)))
	mux.Handle("PATCH /api/loop/{id}", auth(http.HandlerFunc(loopHandler.UpdateCaption)))
	mux.Handle("DELETE /api/loop/{id}", auth(http.HandlerFunc(loopHandler.Delete)))

	// Protected - Stories
	mux.Handle("POST /api/story", auth(http.HandlerFunc(storyHandler.Create)))
	mux.Handle("GET /api/story", auth(http.HandlerFunc(storyHandler.ListActive)))
	mux.Handle("POST /api/story/view/{id}", auth(http.HandlerFunc(storyHandler.View)))
	mux.Handle("PATCH /api/story/{id}", auth(http.HandlerFunc(storyHandler.UpdateCaption)))
	mux.Handle("DELETE /api/story/{id}", auth(http.HandlerFunc(storyHandler.Delete)))

	// Protected - Chat
	mux.Handle("POST /api/chat/send/{receiverId}", auth(http.HandlerFunc(chatHandler.SendMessage)))
	mux.Handle("GET /api/chat/conversations", auth(http.HandlerFunc(chatHandler.ListConversations)))
	mux.Handle("PUT /api/chat/message/{id}", auth(http.HandlerFunc(chatHandler.EditMessage)))
	mux.Handle("DELETE /api/chat/message/{id}", auth(http.HandlerFunc(chatHandler.DeleteMessage)))
	mux.Handle("GET /api/chat/{otherUserId}", auth(http.HandlerFunc(chatHandler.GetMessages)))

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	// Start server with CORS
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, corsHandler(mux)))
}
