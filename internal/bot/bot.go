// Package bot serves game analyses through a Telegram chat.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/glebk/playmood/internal/domain"
	"github.com/glebk/playmood/internal/service"
)

const callbackAnalyze = "analyze"

// Sender is the part of the Telegram API the bot talks to
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Analyzer is the part of the analysis service the bot needs
type Analyzer interface {
	Games(ctx context.Context) ([]*domain.Game, error)
	AnalyzeGame(ctx context.Context, name string) (*service.Analysis, error)
	AnalyzeGameByID(ctx context.Context, id int64) (*service.Analysis, error)
}

// Bot represents the Telegram bot
type Bot struct {
	api      *tgbotapi.BotAPI
	sender   Sender
	analyzer Analyzer
	logger   *zap.Logger
}

// New creates a new Bot instance
func New(token string, analyzer Analyzer, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b := NewWithSender(api, analyzer, logger)
	b.api = api
	b.logger.Info("authorized on account", zap.String("username", api.Self.UserName))
	return b, nil
}

// NewWithSender creates a Bot that only handles updates passed to
// HandleUpdate
func NewWithSender(sender Sender, analyzer Analyzer, logger *zap.Logger) *Bot {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bot{
		sender:   sender,
		analyzer: analyzer,
		logger:   logger.Named("bot"),
	}
}

// Start polls for updates until ctx is canceled
func (b *Bot) Start(ctx context.Context) error {
	if b.api == nil {
		return errors.New("bot has no Telegram connection")
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate dispatches a single update
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleCallbackQuery(ctx, update.CallbackQuery)
	}
}

// handleMessage handles incoming messages
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if !message.IsCommand() {
		b.sendMessage(message.Chat.ID, "Use /games to pick a game or /help to see what I can do.")
		return
	}

	switch message.Command() {
	case "start":
		b.handleStart(message)
	case "games":
		b.handleGames(ctx, message)
	case "analyze":
		b.handleAnalyze(ctx, message)
	case "help":
		b.handleHelp(message)
	default:
		b.sendMessage(message.Chat.ID, "Unknown command. Use /help to see the available commands.")
	}
}

// handleStart handles the /start command
func (b *Bot) handleStart(message *tgbotapi.Message) {
	name := "there"
	if message.From != nil && message.From.FirstName != "" {
		name = message.From.FirstName
	}

	text := fmt.Sprintf(
		"👋 Welcome, %s!\n\n"+
			"I show how games affect players' mental health, based on recorded play sessions.\n\n"+
			"Use /games to pick a game from the catalog\n"+
			"Use /analyze <game name> to analyze a game directly\n"+
			"Use /help for more information",
		escape(name),
	)
	b.sendMarkdown(message.Chat.ID, text, nil)
}

// handleHelp handles the /help command
func (b *Bot) handleHelp(message *tgbotapi.Message) {
	text := "*Commands*\n\n" +
		"/games - list the game catalog\n" +
		"/analyze <game name> - mental health analysis of a game\n" +
		"/help - this message\n\n" +
		"*How to read an analysis*\n" +
		"🟢 Positive: players ended the session in a better state\n" +
		"🔴 Negative: players ended the session stressed or anxious\n" +
		"⚪ Neutral: no meaningful change"
	b.sendMarkdown(message.Chat.ID, text, nil)
}

// handleGames sends the catalog as an inline keyboard
func (b *Bot) handleGames(ctx context.Context, message *tgbotapi.Message) {
	games, err := b.analyzer.Games(ctx)
	if err != nil {
		b.logger.Error("failed to list games", zap.Error(err))
		b.sendMessage(message.Chat.ID, "❌ Could not load the game catalog. Please try again later.")
		return
	}
	if len(games) == 0 {
		b.sendMessage(message.Chat.ID, "The game catalog is empty. Seed the database first.")
		return
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(games))
	for _, g := range games {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(g.Name, fmt.Sprintf("%s:%d", callbackAnalyze, g.ID)),
		))
	}
	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)

	b.sendMarkdown(message.Chat.ID, "🎮 *Select a game to analyze:*", keyboard)
}

// handleAnalyze handles /analyze <game name>
func (b *Bot) handleAnalyze(ctx context.Context, message *tgbotapi.Message) {
	name := strings.TrimSpace(message.CommandArguments())
	if name == "" {
		b.sendMessage(message.Chat.ID, "Usage: /analyze <game name>\nUse /games to see the catalog.")
		return
	}

	analysis, err := b.analyzer.AnalyzeGame(ctx, name)
	b.replyAnalysis(message.Chat.ID, name, analysis, err)
}

// handleCallbackQuery handles inline keyboard presses
func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	parts := strings.Split(query.Data, ":")
	if len(parts) != 2 || parts[0] != callbackAnalyze {
		b.answerCallback(query.ID, "Invalid selection")
		return
	}

	gameID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		b.answerCallback(query.ID, "Invalid game")
		return
	}

	b.answerCallback(query.ID, "Analyzing...")

	if query.Message == nil || query.Message.Chat == nil {
		return
	}

	analysis, err := b.analyzer.AnalyzeGameByID(ctx, gameID)
	b.replyAnalysis(query.Message.Chat.ID, parts[1], analysis, err)
}

func (b *Bot) replyAnalysis(chatID int64, requested string, analysis *service.Analysis, err error) {
	if errors.Is(err, domain.ErrGameNotFound) {
		b.sendMessage(chatID, fmt.Sprintf("Game '%s' not found. Use /games to see the catalog.", requested))
		return
	}
	if err != nil {
		b.logger.Error("analysis failed", zap.String("game", requested), zap.Error(err))
		b.sendMessage(chatID, "❌ Analysis failed. Please try again later.")
		return
	}

	b.sendMarkdown(chatID, FormatAnalysis(analysis), nil)
}

// sendMessage sends a simple text message
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.sender.Send(msg); err != nil {
		b.logger.Error("failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (b *Bot) sendMarkdown(chatID int64, text string, markup any) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := b.sender.Send(msg); err != nil {
		b.logger.Error("failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// answerCallback answers a callback query
func (b *Bot) answerCallback(callbackID string, text string) {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := b.sender.Request(callback); err != nil {
		b.logger.Error("failed to answer callback", zap.Error(err))
	}
}
