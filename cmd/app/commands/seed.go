package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/allisson/go-pwdhash"

	accountDomain "github.com/restboard/restboard/internal/account/domain"
	"github.com/restboard/restboard/internal/app"
	"github.com/restboard/restboard/internal/config"
	postDomain "github.com/restboard/restboard/internal/post/domain"
)

// seedPassword is the shared password for all development seed accounts.
const seedPassword = "1234"

// seedUsernames lists the development accounts created by the seed command.
// The API key of each seed account equals its username so local clients can
// authenticate without a login round trip.
var seedUsernames = []string{"system", "admin", "user1", "user2", "user3"}

// RunSeed inserts development accounts and sample posts.
// Skips when accounts already exist unless force is set.
func RunSeed(ctx context.Context, force bool) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	accountRepo, err := container.AccountRepository()
	if err != nil {
		return fmt.Errorf("failed to get account repository: %w", err)
	}

	postRepo, err := container.PostRepository()
	if err != nil {
		return fmt.Errorf("failed to get post repository: %w", err)
	}

	count, err := accountRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count accounts: %w", err)
	}
	if count > 0 && !force {
		logger.Info("seed skipped, accounts already exist", slog.Int64("count", count))
		return nil
	}

	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return fmt.Errorf("failed to create password hasher: %w", err)
	}

	hashedPassword, err := hasher.Hash([]byte(seedPassword))
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	accounts := make(map[string]*accountDomain.Account, len(seedUsernames))
	for _, username := range seedUsernames {
		account := &accountDomain.Account{
			Username: username,
			Password: hashedPassword,
			Nickname: username,
			APIKey:   username,
		}
		if err := accountRepo.Create(ctx, account); err != nil {
			return fmt.Errorf("failed to create seed account %q: %w", username, err)
		}
		accounts[username] = account

		logger.Info("seed account created",
			slog.Int64("account_id", account.ID),
			slog.String("username", username),
		)
	}

	post := &postDomain.Post{
		AuthorID: accounts["user1"].ID,
		Title:    "Welcome to the board",
		Content:  "This is a seeded post. Feel free to reply.",
	}
	if err := postRepo.CreatePost(ctx, post); err != nil {
		return fmt.Errorf("failed to create seed post: %w", err)
	}

	comment := &postDomain.Comment{
		PostID:   post.ID,
		AuthorID: accounts["user2"].ID,
		Content:  "First reply on the seeded board.",
	}
	if err := postRepo.CreateComment(ctx, comment); err != nil {
		return fmt.Errorf("failed to create seed comment: %w", err)
	}

	logger.Info("seed completed",
		slog.Int("accounts", len(seedUsernames)),
		slog.Int64("post_id", post.ID),
	)

	return nil
}
