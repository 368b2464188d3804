package main

import (
	"context"
	"errors"
	"log"
	"log/slog"

	"friend-service/internal/config"
	"friend-service/internal/database"
	"friend-service/internal/models"
	"friend-service/internal/repository"
	"friend-service/internal/services"
	"friend-service/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	logger.Setup(cfg.LogLevel, cfg.Server.Mode)

	slog.Info("Starting database seeding...")

	db, err := database.NewConnection(&cfg.Database, false)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	friendRepo := repository.NewFriendRepository(db, cfg.Database.Driver == "postgres" && cfg.Database.Serializable)

	// seeding never logs in, so no session store is needed
	userService := services.NewUserService(userRepo, nil, cfg.JWT.Secret, cfg.JWT.ExpirationTime, cfg.Friends.SearchLimit)
	friendService := services.NewFriendService(friendRepo, userRepo, nil, cfg.Friends.RequestLimit, cfg.Friends.RequestWindow)

	slog.Info("Creating initial users...")
	testUsers := []models.SignupRequest{
		{Email: "admin@friends.local", Name: "Admin", Password: "123456"},
		{Email: "alice@friends.local", Name: "Alice", Password: "123456"},
		{Email: "bob@friends.local", Name: "Bob", Password: "123456"},
		{Email: "charlie@friends.local", Name: "Charlie", Password: "123456"},
	}

	ids := make(map[string]uint, len(testUsers))
	for i := range testUsers {
		req := testUsers[i]
		user, err := userService.Signup(ctx, &req)
		switch {
		case err == nil:
			slog.Info("Created user", "email", user.Email, "id", user.ID)
			ids[user.Name] = user.ID
		case errors.Is(err, services.ErrEmailTaken):
			existing, err := userRepo.FindByEmail(ctx, req.Email)
			if err != nil {
				log.Fatal("Failed to load existing user:", err)
			}
			ids[existing.Name] = existing.ID
		default:
			log.Fatal("Failed to create user:", err)
		}
	}

	slog.Info("Creating sample friend requests...")
	seedRequest(ctx, friendService, ids["Alice"], ids["Bob"], "")
	seedRequest(ctx, friendService, ids["Bob"], ids["Charlie"], models.FriendRequestAccepted)
	seedRequest(ctx, friendService, ids["Charlie"], ids["Admin"], models.FriendRequestRejected)

	slog.Info("Database seeding completed successfully!")
}

// seedRequest sends a request and optionally answers it as the receiver.
func seedRequest(ctx context.Context, svc *services.FriendService, from, to uint, outcome models.FriendRequestStatus) {
	req, err := svc.SendRequest(ctx, from, to)
	if err != nil {
		slog.Warn("Friend request might already exist", "senderID", from, "receiverID", to, "error", err)
		return
	}

	switch outcome {
	case models.FriendRequestAccepted:
		err = svc.AcceptRequest(ctx, to, req.ID)
	case models.FriendRequestRejected:
		err = svc.RejectRequest(ctx, to, req.ID)
	}
	if err != nil {
		slog.Warn("Failed to answer friend request", "requestID", req.ID, "error", err)
		return
	}
	slog.Info("Created friend request", "requestID", req.ID, "senderID", from, "receiverID", to)
}
