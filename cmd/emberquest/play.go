package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"

	"github.com/oakhaven/emberquest/internal/config"
	"github.com/oakhaven/emberquest/internal/orchestrators/session"
	"github.com/oakhaven/emberquest/internal/pkg/clock"
	"github.com/oakhaven/emberquest/internal/pkg/idgen"
	"github.com/oakhaven/emberquest/internal/redis"
	"github.com/oakhaven/emberquest/internal/repositories/content"
	"github.com/oakhaven/emberquest/internal/repositories/save"
)

var (
	dataPath   string
	configPath string
	saveDir    string
	redisAddr  string
	logLevel   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a game",
	Long:  `Start an interactive game session reading commands from stdin.`,
	RunE:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&dataPath, "data", "data/game_data.json", "world content file")
	playCmd.Flags().StringVar(&configPath, "config", "", "game balance config (YAML), defaults when empty")
	playCmd.Flags().StringVar(&saveDir, "saves", "saves", "directory for file-backed saves")
	playCmd.Flags().StringVar(&redisAddr, "redis", "", "redis endpoint for saves, file-backed when empty")
	playCmd.Flags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")
}

func runPlay(cmd *cobra.Command, args []string) error {
	log := newLogger(logLevel)

	gameCfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		gameCfg = loaded
	}

	repo, err := content.NewRepository(&content.Config{Path: dataPath})
	if err != nil {
		return fmt.Errorf("loading world content: %w", err)
	}

	saves, err := newSaveRepository(log)
	if err != nil {
		return err
	}

	sess, err := session.NewSession(&session.Config{
		Content:     repo,
		Game:        gameCfg,
		DiceRoller:  dice.DefaultRoller,
		EventBus:    events.NewBus(),
		IDGenerator: idgen.NewUUID("enc"),
		Saves:       saves,
		Log:         log,
	})
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}

	fmt.Println("Welcome to EmberQuest. Type 'help' for commands.")
	if desc, err := sess.Look(); err == nil {
		fmt.Println(desc)
	}
	return gameLoop(cmd.Context(), sess)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func newSaveRepository(log *slog.Logger) (save.Repository, error) {
	if redisAddr == "" {
		return save.NewFile(&save.FileConfig{Dir: saveDir, Clock: clock.New()})
	}
	client, err := redis.NewClient(redisAddr, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	log.Info("using redis saves", slog.String("endpoint", redisAddr))
	return save.NewRedis(&save.RedisConfig{Client: client, Clock: clock.New()})
}

func gameLoop(ctx context.Context, sess *session.GameSession) error {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		if sess.GameOver() {
			fmt.Println("You have fallen. Game over.")
			return nil
		}
		fmt.Print(prompt(sess))
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(strings.ToLower(line))
		if fields[0] == "quit" || fields[0] == "exit" {
			fmt.Println("Farewell.")
			return nil
		}
		dispatch(ctx, sess, fields)
		settleLevelUps(scanner, sess)
	}
}

func prompt(sess *session.GameSession) string {
	if sess.InCombat() {
		return "[combat] > "
	}
	return "> "
}
