package notify

import (
	"context"
	"fmt"
	"log"
	"strings"

	"signal_bot/internal/models"
	"signal_bot/internal/monitor"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Notifier interface {
	Send(msg string)
	Sendf(format string, args ...any)
}

// Telegram — пассивный нотифайер + одна команда /positions.
type Telegram struct {
	bot     *tgbot.BotAPI
	chatID  int64
	tracker *monitor.Tracker
}

func NewTelegram(token string, chatID int64, tracker *monitor.Tracker) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Telegram{
		bot:     b,
		chatID:  chatID,
		tracker: tracker,
	}, nil
}

func (t *Telegram) Send(msg string) {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return
	}
	_, _ = t.bot.Send(tgbot.NewMessage(t.chatID, msg))
}

func (t *Telegram) Sendf(format string, args ...any) { t.Send(fmt.Sprintf(format, args...)) }

// /positions — вывод отслеживаемых позиций
func (t *Telegram) handlePositions() {
	if t.tracker == nil {
		t.Send("❗️ Трекер позиций не инициализирован")
		return
	}

	var positions []models.TrackedPosition
	t.tracker.Do(func(m map[string]models.TrackedPosition) {
		for _, p := range m {
			positions = append(positions, p)
		}
	})

	if len(positions) == 0 {
		t.Send("📭 Открытых позиций нет")
		return
	}

	var b strings.Builder
	b.WriteString("📊 Отслеживаемые позиции:\n")
	for _, p := range positions {
		fmt.Fprintf(&b, "- %s [%s] qty=%.4f tp=%.4f sl=%.4f opened=%s\n",
			p.Symbol, p.Decision.Side(), p.Quantity, p.TakeProfit, p.StopLoss,
			p.OpenedAt.Format("02.01 15:04"))
	}
	t.Send(b.String())
}

// Start: long-polling только ради команд в своём чате.
func (t *Telegram) Start(ctx context.Context) error {
	if t == nil || t.bot == nil {
		return nil
	}

	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	u.AllowedUpdates = []string{"message"}

	updates := t.bot.GetUpdatesChan(u)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case upd := <-updates:
				if upd.Message == nil || upd.Message.Chat == nil ||
					upd.Message.Chat.ID != t.chatID || !upd.Message.IsCommand() {
					continue
				}
				switch upd.Message.Command() {
				case "positions":
					go t.handlePositions()
				}
			}
		}
	}()
	return nil
}

func (t *Telegram) Stop() {}

// Stdout — заглушка без Telegram, всё в лог.
type Stdout struct{}

func NewStdout() *Stdout                           { return &Stdout{} }
func (s *Stdout) Send(msg string)                  { log.Println(msg) }
func (s *Stdout) Sendf(format string, args ...any) { log.Printf(format, args...) }
