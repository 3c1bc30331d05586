package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/jusunglee/kirill/internal/metrics"
	"github.com/jusunglee/kirill/internal/transliteration"
)

const (
	convertCommandName        = "cyrillic"
	convertMessageCommandName = "Convert to Cyrillic"

	// Discord rejects message content longer than this many characters.
	maxMessageLength = 2000
)

type Config struct {
	GuildID string
}

type Bot struct {
	log     *slog.Logger
	session DiscordSession
	engine  *transliteration.Engine
	limiter *RateLimiter
	config  Config
	ready   atomic.Bool
}

func New(log *slog.Logger, session DiscordSession, engine *transliteration.Engine, config Config) *Bot {
	return &Bot{
		log:     log,
		session: session,
		engine:  engine,
		limiter: NewRateLimiter(rateLimitMaxCommands, rateLimitWindow),
		config:  config,
	}
}

// Run connects to Discord, registers the commands and serves interactions
// until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	b.session.AddHandler(func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		b.handleInteraction(i)
	})
	b.session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		b.log.InfoContext(ctx, "connected to Discord", "username", r.User.Username)
	})

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("opening Discord connection: %w", err)
	}

	if err := b.registerCommands(ctx); err != nil {
		b.session.Close()
		return fmt.Errorf("registering commands: %w", err)
	}

	b.ready.Store(true)
	b.log.InfoContext(ctx, "bot is running, press Ctrl+C to stop")
	<-ctx.Done()
	b.ready.Store(false)
	b.log.Info("shutdown signal received")

	if err := b.session.Close(); err != nil {
		return fmt.Errorf("closing Discord connection: %w", err)
	}
	b.log.Info("shut down complete")
	return nil
}

var errNotReady = errors.New("discord session not ready")

// Ready reports nil once commands are registered and until shutdown begins.
func (b *Bot) Ready() error {
	if !b.ready.Load() {
		return errNotReady
	}
	return nil
}

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        convertCommandName,
		Description: "Convert romanized Mongolian to Cyrillic",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "text",
				Description: "Latin text, e.g. sain bainuu",
				Required:    true,
				MaxLength:   maxMessageLength,
			},
		},
	},
	{
		Name: convertMessageCommandName,
		Type: discordgo.MessageApplicationCommand,
	},
}

func (b *Bot) registerCommands(ctx context.Context) error {
	guildID := b.config.GuildID
	if guildID != "" {
		b.log.InfoContext(ctx, "registering commands to guild", "guild_id", guildID)
	} else {
		b.log.InfoContext(ctx, "registering commands globally (may take up to 1 hour to propagate)")
	}

	_, err := b.session.ApplicationCommandBulkOverwrite(b.session.GetUserID(), guildID, commands)
	if err != nil {
		return fmt.Errorf("bulk overwrite commands: %w", err)
	}
	b.log.InfoContext(ctx, "registered commands", "count", len(commands))
	return nil
}

type handlerResult struct {
	Response  string
	Ephemeral bool
	Err       error
}

// userError marks failures caused by the caller's input rather than the bot.
type userError struct {
	Err error
}

func (e *userError) Error() string {
	return e.Err.Error()
}

func (e *userError) Unwrap() error {
	return e.Err
}

func newUserError(err error) *userError {
	return &userError{Err: err}
}

var (
	errRateLimited = errors.New("rate limited")
	errEmptyInput  = errors.New("empty input")
)

func (b *Bot) handleInteraction(i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cmd := i.ApplicationCommandData().Name
	result := b.handleCommand(i)
	b.respond(ctx, i, result)

	if result.Err == nil {
		return
	}
	var uerr *userError
	if errors.As(result.Err, &uerr) {
		b.log.WarnContext(ctx, "user error", "command", cmd, "error", result.Err, "user_id", interactionUserID(i))
	} else {
		b.log.ErrorContext(ctx, "command failed", "command", cmd, "error", result.Err, "channel_id", i.ChannelID)
	}
}

func (b *Bot) handleCommand(i *discordgo.InteractionCreate) handlerResult {
	data := i.ApplicationCommandData()

	var text string
	switch data.Name {
	case convertCommandName:
		text = getOption(data.Options, "text")
	case convertMessageCommandName:
		text = targetMessageContent(data)
	default:
		return handlerResult{
			Response:  "Unknown command.",
			Ephemeral: true,
			Err:       fmt.Errorf("unknown command %q", data.Name),
		}
	}

	userID := interactionUserID(i)
	if !b.limiter.Allow(userID) {
		metrics.RateLimitHits.WithLabelValues("bot").Inc()
		wait := b.limiter.Retry(userID).Round(time.Second)
		return handlerResult{
			Response:  fmt.Sprintf("⏳ You're converting too fast. Try again in %s.", wait),
			Ephemeral: true,
			Err:       newUserError(errRateLimited),
		}
	}

	if strings.TrimSpace(text) == "" {
		return handlerResult{
			Response:  "Nothing to convert.",
			Ephemeral: true,
			Err:       newUserError(errEmptyInput),
		}
	}

	words := b.engine.Explain(text)
	metrics.ObserveConversion("bot", text, words)
	return handlerResult{Response: truncate(transliteration.Join(words), maxMessageLength)}
}

func (b *Bot) respond(ctx context.Context, i *discordgo.InteractionCreate, result handlerResult) {
	data := &discordgo.InteractionResponseData{Content: result.Response}
	if result.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		b.log.ErrorContext(ctx, "failed to respond to interaction", "error", err)
	}
}

func getOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range options {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
}

func targetMessageContent(data discordgo.ApplicationCommandInteractionData) string {
	if data.Resolved == nil {
		return ""
	}
	if msg, ok := data.Resolved.Messages[data.TargetID]; ok && msg != nil {
		return msg.Content
	}
	return ""
}

// interactionUserID returns the invoking user in guilds and in DMs.
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// truncate shortens s to at most limit characters, marking the cut with an
// ellipsis.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}
