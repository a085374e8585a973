package bot

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/linchx/tradesnap/binding"
	"github.com/linchx/tradesnap/dsl"
	"github.com/linchx/tradesnap/layout"
	"github.com/linchx/tradesnap/renderer"
	"github.com/linchx/tradesnap/session"
	"github.com/linchx/tradesnap/storage"
)

// sender 抽象出消息发送，便于测试替换真实的 Telegram API。
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// phase 标记一个会话正处于 setup 流程或答题流程的哪个阶段。
type phase int

const (
	phaseIdle phase = iota
	phasePairs
	phaseQuestions
	phaseRunning
)

// conversation 保存单个聊天的流程状态。同一聊天的消息处理以
// conversation.mu 串行化，避免并发 Submit 破坏会话不变式。
type conversation struct {
	mu           sync.Mutex
	phase        phase
	pendingPairs []string
	sess         *session.Session
}

// Bot 是 Telegram 传输适配层：命令路由、setup 对话、驱动会话状态机，
// 并在会话完成后生成并回传快照图片。
type Bot struct {
	api     *tgbotapi.BotAPI
	send    sender
	store   storage.Store
	render  renderer.Renderer
	measure layout.Typesetter
	log     *zap.Logger

	mu    sync.Mutex
	convs map[int64]*conversation
}

// New 构建 Bot。ts 用于布局阶段的文本测量，通常与 r 是同一个对象。
func New(api *tgbotapi.BotAPI, store storage.Store, r renderer.Renderer, ts layout.Typesetter, log *zap.Logger) *Bot {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bot{
		api:     api,
		send:    api,
		store:   store,
		render:  r,
		measure: ts,
		log:     log,
		convs:   make(map[int64]*conversation),
	}
}

// Run 以长轮询方式消费消息，直到更新通道关闭。每条消息在独立 goroutine
// 中处理，同一聊天内部由 conversation 锁串行化。
func (b *Bot) Run() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	b.log.Info("bot polling started", zap.String("username", b.api.Self.UserName))
	for update := range b.api.GetUpdatesChan(u) {
		if update.Message == nil || update.Message.Text == "" {
			continue
		}
		go b.handle(update.Message)
	}
	return nil
}

func (b *Bot) conversation(chatID int64) *conversation {
	b.mu.Lock()
	defer b.mu.Unlock()
	conv, ok := b.convs[chatID]
	if !ok {
		conv = &conversation{}
		b.convs[chatID] = conv
	}
	return conv
}

func (b *Bot) handle(msg *tgbotapi.Message) {
	conv := b.conversation(msg.Chat.ID)
	conv.mu.Lock()
	defer conv.mu.Unlock()

	if msg.IsCommand() {
		b.handleCommand(conv, msg)
		return
	}
	b.handleText(conv, msg)
}

func (b *Bot) handleCommand(conv *conversation, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	userID := msg.From.ID

	switch msg.Command() {
	case "start":
		b.startCommand(conv, chatID, userID)
	case "edit_pairs":
		cfg, ok := b.store.Get(userID)
		if !ok {
			b.reply(chatID, msgNotConfigured, nil)
			return
		}
		conv.phase = phasePairs
		conv.sess = nil
		b.reply(chatID, binding.Interpolate(msgEditPairs, map[string]any{
			"pairs": strings.Join(cfg.Pairs, ", "),
		}), nil)
	case "edit_questions":
		cfg, ok := b.store.Get(userID)
		if !ok {
			b.reply(chatID, msgNotConfigured, nil)
			return
		}
		conv.phase = phaseQuestions
		conv.pendingPairs = cfg.Pairs
		conv.sess = nil
		b.reply(chatID, binding.Interpolate(msgEditQuestions, map[string]any{
			"questions": numberedList(cfg.Questions),
			"count":     session.QuestionCount,
		}), nil)
	case "import":
		b.importCommand(conv, chatID, userID, msg.CommandArguments())
	case "export":
		cfg, ok := b.store.Get(userID)
		if !ok {
			b.reply(chatID, msgNotConfigured, nil)
			return
		}
		b.reply(chatID, "`"+dsl.Format(cfg)+"`", nil)
	case "help":
		b.reply(chatID, msgHelp, nil)
	case "cancel":
		conv.phase = phaseIdle
		conv.pendingPairs = nil
		conv.sess = nil
		b.reply(chatID, msgCancelled, tgbotapi.NewRemoveKeyboard(false))
	default:
		b.reply(chatID, msgIdleHint, nil)
	}
}

// startCommand 进入首次 setup，或在已有配置时开启一轮新的答题会话。
func (b *Bot) startCommand(conv *conversation, chatID, userID int64) {
	cfg, ok := b.store.Get(userID)
	if !ok {
		conv.phase = phasePairs
		conv.sess = nil
		b.reply(chatID, msgWelcome, nil)
		return
	}

	sess, err := session.Start(cfg)
	if err != nil {
		// 存储里出现无法开启会话的配置，按缺失处理，重新走 setup
		b.log.Warn("stored config rejected, re-entering setup",
			zap.Int64("user", userID), zap.Error(err))
		conv.phase = phasePairs
		b.reply(chatID, msgWelcome, nil)
		return
	}
	conv.phase = phaseRunning
	conv.sess = sess

	b.reply(chatID, binding.Interpolate(msgSessionStarted, map[string]any{
		"count": len(cfg.Pairs),
	}), nil)
	b.sendPrompt(chatID, sess.Prompt())
}

func (b *Bot) importCommand(conv *conversation, chatID, userID int64, args string) {
	text := strings.TrimSpace(args)
	if text == "" {
		b.reply(chatID, msgImportUsage, nil)
		return
	}
	def, err := dsl.ParseString(text)
	if err != nil {
		b.reply(chatID, binding.Interpolate(msgImportFailed, map[string]any{"reason": err.Error()}), nil)
		return
	}
	cfg, err := def.Config()
	if err != nil {
		b.reply(chatID, binding.Interpolate(msgImportFailed, map[string]any{"reason": err.Error()}), nil)
		return
	}
	if err := b.store.Put(userID, cfg); err != nil {
		b.log.Error("saving imported config failed", zap.Int64("user", userID), zap.Error(err))
		b.reply(chatID, binding.Interpolate(msgImportFailed, map[string]any{"reason": "could not save"}), nil)
		return
	}
	conv.phase = phaseIdle
	conv.sess = nil
	b.reply(chatID, binding.Interpolate(msgImported, map[string]any{
		"pairs": strings.Join(cfg.Pairs, ", "),
		"count": len(cfg.Questions),
	}), nil)
}

func (b *Bot) handleText(conv *conversation, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	userID := msg.From.ID

	switch conv.phase {
	case phasePairs:
		pairs, err := session.ParsePairs(msg.Text)
		if err != nil {
			b.reply(chatID, msgPairsEmpty, nil)
			return
		}
		conv.pendingPairs = pairs
		conv.phase = phaseQuestions
		b.reply(chatID, binding.Interpolate(msgPairsConfigured, map[string]any{
			"pairs": strings.Join(pairs, ", "),
			"count": session.QuestionCount,
		}), nil)

	case phaseQuestions:
		questions, err := session.ParseQuestions(msg.Text)
		if err != nil {
			got := 0
			for _, line := range strings.Split(msg.Text, "\n") {
				if strings.TrimSpace(line) != "" {
					got++
				}
			}
			b.reply(chatID, binding.Interpolate(msgWrongQuestionCount, map[string]any{
				"count": session.QuestionCount,
				"got":   got,
			}), nil)
			return
		}
		cfg := session.Config{Pairs: conv.pendingPairs, Questions: questions}
		if err := b.store.Put(userID, cfg); err != nil {
			// 保存失败时停留在问题录入阶段，用户重发问题即可重试
			b.log.Error("saving config failed", zap.Int64("user", userID), zap.Error(err))
			b.reply(chatID, msgSaveFailed, nil)
			return
		}
		conv.phase = phaseIdle
		conv.pendingPairs = nil
		b.reply(chatID, binding.Interpolate(msgSetupComplete, map[string]any{
			"pairs": strings.Join(cfg.Pairs, ", "),
			"count": len(cfg.Questions),
		}), nil)

	case phaseRunning:
		b.handleAnswer(conv, chatID, msg.Text)

	default:
		b.reply(chatID, msgIdleHint, nil)
	}
}

// handleAnswer 驱动会话状态机一步：非法输入原样重新提问，合法输入前进，
// 最后一个结论提交后生成并回传快照。
func (b *Bot) handleAnswer(conv *conversation, chatID int64, text string) {
	prompt, matrix, err := conv.sess.Submit(text)
	switch {
	case errors.Is(err, session.ErrEmptyAnswer):
		b.reply(chatID, msgEmptyAnswer, nil)
		return
	case errors.Is(err, session.ErrInvalidVerdict):
		b.reply(chatID, msgInvalidVerdict, nil)
		return
	case err != nil:
		b.log.Error("submit failed", zap.Int64("chat", chatID), zap.Error(err))
		conv.phase = phaseIdle
		conv.sess = nil
		b.reply(chatID, msgIdleHint, tgbotapi.NewRemoveKeyboard(false))
		return
	}

	if matrix != nil {
		conv.phase = phaseIdle
		conv.sess = nil
		b.reply(chatID, msgCompleted, tgbotapi.NewRemoveKeyboard(false))
		b.sendSnapshot(chatID, matrix)
		return
	}

	if prompt.DonePair != "" {
		b.reply(chatID, binding.Interpolate(msgPairComplete, map[string]any{
			"done": prompt.DonePair,
			"next": prompt.Pair,
		}), tgbotapi.NewRemoveKeyboard(false))
	}
	b.sendPrompt(chatID, prompt)
}

// sendPrompt 提出下一个问题；结论槽位附带 Buy/Sell/Stand by 三选一键盘。
func (b *Bot) sendPrompt(chatID int64, p *session.Prompt) {
	data := map[string]any{"pair": p.Pair, "question": p.Question}
	if p.Verdict {
		var buttons []tgbotapi.KeyboardButton
		for _, v := range session.Verdicts() {
			buttons = append(buttons, tgbotapi.NewKeyboardButton(v))
		}
		keyboard := tgbotapi.NewOneTimeReplyKeyboard(buttons)
		keyboard.ResizeKeyboard = true
		b.reply(chatID, binding.Interpolate(msgAskVerdict, data), keyboard)
		return
	}
	b.reply(chatID, binding.Interpolate(msgAskQuestion, data), tgbotapi.NewRemoveKeyboard(false))
}

// sendSnapshot 布局、渲染并发送快照图片。渲染失败只影响本次请求：
// 告知用户用 /start 重来，不保留矩阵。
func (b *Bot) sendSnapshot(chatID int64, matrix *session.Matrix) {
	plan, err := layout.Build(matrix, layout.BuildOptions{Typesetter: b.measure})
	if err != nil {
		b.log.Error("snapshot layout failed", zap.Int64("chat", chatID), zap.Error(err))
		b.reply(chatID, msgSnapshotFailed, nil)
		return
	}
	data, err := b.render.Render(plan)
	if err != nil {
		b.log.Error("snapshot render failed", zap.Int64("chat", chatID), zap.Error(err))
		b.reply(chatID, msgSnapshotFailed, nil)
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{
		Name:  "trading_snapshot_" + matrix.CreatedAt.Format("20060102_150405") + ".png",
		Bytes: data,
	})
	photo.Caption = msgSnapshotCaption
	photo.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.send.Send(photo); err != nil {
		b.log.Error("sending snapshot failed", zap.Int64("chat", chatID), zap.Error(err))
		b.reply(chatID, msgSnapshotFailed, nil)
		return
	}
	b.log.Info("snapshot delivered",
		zap.Int64("chat", chatID),
		zap.Int("pairs", len(matrix.Pairs)),
		zap.Int("bytes", len(data)))
}

func (b *Bot) reply(chatID int64, text string, markup any) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := b.send.Send(msg); err != nil {
		b.log.Warn("sending message failed", zap.Int64("chat", chatID), zap.Error(err))
	}
}

func numberedList(items []string) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strconv.Itoa(i+1) + ". " + item)
	}
	return b.String()
}
