package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/ui"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	var sessionRepo repository.SessionRepository

	if conf.SessionStore.Enabled {
		if conf.SessionStore.Host == "" {
			return ErrAddrNotFound
		}

		redisAddrString := conf.SessionStore.GetRedisAddr()

		redisStorage, err := storage.New(ctx, redisAddrString)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		sessionRepo = repository.NewSessionRepository(redisStorage)
		log.Info("Session store enabled", "addr", redisAddrString, "key", conf.SessionStore.Key)
	}

	engine := tictactoe.New(logger)
	gameManager := usecase.NewGameManager(logger, engine, sessionRepo, conf.SessionStore.Key)

	resumeCtx, resumeCancel := context.WithTimeout(ctx, conf.SessionStore.Timeout)
	defer resumeCancel()

	if _, err := gameManager.Resume(resumeCtx); err != nil {
		log.Error("could not resume session, starting fresh", "error", err)
	}

	model := ui.New(ctx, gameManager, conf.Theme, conf.SessionStore.Timeout)
	program := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())

	log.Info("Starting game")

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			log.Info("Application context canceled, shutting down")
			return nil
		}

		return fmt.Errorf("terminal program error: %w", err)
	}

	return nil
}
