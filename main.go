package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/linchx/tradesnap/bot"
	"github.com/linchx/tradesnap/layout"
	"github.com/linchx/tradesnap/renderer"
	canvasrenderer "github.com/linchx/tradesnap/renderer/canvas"
	"github.com/linchx/tradesnap/storage"
)

func main() {
	dataPath := flag.String("data", "", "用户配置 JSON 文件路径（默认 $TRADESNAP_DATA 或 user_data.json）")
	debugPath := flag.String("debug", "", "布局调试 JSON 输出路径，每次生成快照时写入")
	verbose := flag.Bool("verbose", false, "输出 debug 级别日志")
	flag.Parse()

	// .env 不存在不算错误，生产环境直接用进程环境变量
	_ = godotenv.Load()

	token, err := resolveToken()
	if err != nil {
		log.Fatalf("读取 bot token 失败: %v", err)
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer logger.Sync()

	if err := run(token, resolveDataPath(*dataPath), *debugPath, logger); err != nil {
		log.Fatalf("启动 bot 失败: %v", err)
	}
}

// run 串联配置存储、渲染器与 Telegram 传输层。
func run(token, dataPath, debugPath string, logger *zap.Logger) error {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return fmt.Errorf("连接 Telegram API 失败: %w", err)
	}

	r, err := canvasrenderer.NewRenderer()
	if err != nil {
		return fmt.Errorf("初始化渲染器失败: %w", err)
	}

	var rend renderer.Renderer = r
	if debugPath != "" {
		if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
			return fmt.Errorf("创建调试目录失败: %w", err)
		}
		rend = debugRenderer{inner: r, path: debugPath, log: logger}
	}

	store := storage.NewFileStore(dataPath, logger)
	logger.Info("tradesnap starting",
		zap.String("data", dataPath),
		zap.String("username", api.Self.UserName))

	return bot.New(api, store, rend, r, logger).Run()
}

// resolveToken 依次尝试 TELEGRAM_BOT_TOKEN 环境变量和 bot_token.txt 文件。
func resolveToken() (string, error) {
	if token := strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")); token != "" {
		return token, nil
	}
	data, err := os.ReadFile("bot_token.txt")
	if err != nil {
		return "", fmt.Errorf("TELEGRAM_BOT_TOKEN 未设置且无法读取 bot_token.txt: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("bot_token.txt 为空")
	}
	return token, nil
}

func resolveDataPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("TRADESNAP_DATA"); env != "" {
		return env
	}
	return "user_data.json"
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// debugRenderer 在渲染前把布局计划写成 JSON，便于核对坐标。
type debugRenderer struct {
	inner renderer.Renderer
	path  string
	log   *zap.Logger
}

func (d debugRenderer) Render(plan *layout.Plan) ([]byte, error) {
	if err := layout.WriteDebugJSON(plan, d.path); err != nil {
		d.log.Warn("writing layout debug JSON failed", zap.Error(err))
	}
	return d.inner.Render(plan)
}
