package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"routine-tracker/internal/app"
	"routine-tracker/internal/service"
)

type confirmationAction int

const (
	actionDeleteTask confirmationAction = iota
	actionDeleteSession
	actionClearReport
)

type confirmationRequest struct {
	action    confirmationAction
	task      service.TaskRef
	sessionID int64
}

// Bot connects the Telegram API to the tracker state.
type Bot struct {
	api           *tgbotapi.BotAPI
	app           *app.App
	allowed       map[int64]bool
	conversations map[int64]*conversationState
	confirmations map[int64]confirmationRequest
	mu            sync.Mutex
}

// New connects to Telegram. Only the listed user ids may use the bot.
func New(token string, a *app.App, allowedUsers []int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("[info] bot authorized on account %s", api.Self.UserName)

	return newBot(api, a, allowedUsers), nil
}

func newBot(api *tgbotapi.BotAPI, a *app.App, allowedUsers []int64) *Bot {
	return &Bot{
		api:           api,
		app:           a,
		allowed:       allowList(allowedUsers),
		conversations: make(map[int64]*conversationState),
		confirmations: make(map[int64]confirmationRequest),
	}
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	log.Println("[info] start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
				log.Printf("handle callback: %v", err)
			}
		case update.Message != nil:
			if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
				continue
			}
			if err := b.handleMessage(ctx, update.Message); err != nil {
				log.Printf("handle message: %v", err)
			}
		}
	}

	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}
	if !b.isAllowed(msg.From.ID) {
		log.Printf("[info] rejected message from %d", msg.From.ID)
		return b.sendText(msg.Chat.ID, "⛔ This bot is private.")
	}

	if msg.Document != nil {
		return b.handleImport(ctx, msg)
	}

	if !msg.IsCommand() && isCancelDialogInput(msg.Text) {
		b.clearConversation(msg.From.ID)
		b.clearConfirmation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "⏪ Input cancelled.")
	}

	if msg.IsCommand() {
		log.Printf("[info] command from %d: /%s %s", msg.From.ID, msg.Command(), msg.CommandArguments())
		return b.handleCommand(ctx, msg)
	}

	if pending, ok := b.getConfirmation(msg.From.ID); ok {
		return b.handleConfirmationResponse(ctx, msg, pending)
	}

	if b.hasConversation(msg.From.ID) {
		return b.handleConversation(ctx, msg)
	}

	if handled, err := b.handleMenuAlias(ctx, msg); handled {
		return err
	}

	return b.sendText(msg.Chat.ID, "I did not understand that. Try /today or /help.")
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	// A new command abandons any dialog in progress.
	if msg.Command() != "cancel" {
		b.clearConversation(msg.From.ID)
		b.clearConfirmation(msg.From.ID)
	}
	switch msg.Command() {
	case "start":
		return b.handleStart(ctx, msg)
	case "help":
		return b.handleHelp(msg)
	case "today":
		return b.handleToday(ctx, msg)
	case "done":
		return b.handleTaskOutcome(ctx, msg, cbTaskDone)
	case "skip":
		return b.handleTaskOutcome(ctx, msg, cbTaskSkip)
	case "miss":
		return b.handleTaskOutcome(ctx, msg, cbTaskMiss)
	case "undo":
		return b.handleTaskOutcome(ctx, msg, cbTaskUndo)
	case "add":
		return b.startTaskDialog(msg)
	case "edit":
		return b.handleEdit(msg)
	case "delete":
		return b.handleDelete(msg)
	case "week":
		return b.handleWeek(ctx, msg)
	case "study":
		return b.handleStudy(ctx, msg)
	case "sdone":
		return b.handleSessionOutcome(ctx, msg, cbSessDone)
	case "smiss":
		return b.handleSessionOutcome(ctx, msg, cbSessMiss)
	case "sundo":
		return b.handleSessionOutcome(ctx, msg, cbSessUndo)
	case "subject":
		return b.startSessionDialog(msg, dialogSubject, 0)
	case "sedit":
		return b.handleSessionEdit(msg)
	case "prayer":
		return b.startSessionDialog(msg, dialogPrayer, 0)
	case "prayertime":
		return b.handlePrayerTime(ctx, msg)
	case "sdelete":
		return b.handleSessionDelete(msg)
	case "stats":
		return b.handleStats(ctx, msg)
	case "report":
		return b.handleReport(ctx, msg)
	case "clearreport":
		b.setConfirmation(msg.From.ID, confirmationRequest{action: actionClearReport})
		return b.sendWithReplyMarkup(msg.Chat.ID, "Clear the whole completion history? This cannot be undone.", confirmKeyboard())
	case "summary":
		return b.handleSummary(ctx, msg)
	case "export":
		return b.handleExport(ctx, msg)
	case "settime":
		return b.handleSetTime(msg)
	case "realtime":
		b.app.Clock.ClearManual()
		return b.sendText(msg.Chat.ID, "🕰 Back to real time.")
	case "notify":
		return b.handleNotify(ctx, msg)
	case "cancel":
		b.clearConversation(msg.From.ID)
		b.clearConfirmation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "⏪ Input cancelled.")
	default:
		return b.sendText(msg.Chat.ID, "Unknown command. See /help.")
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	if err := b.ensureUser(ctx, msg); err != nil {
		return err
	}
	name := strings.TrimSpace(msg.From.FirstName)
	if name == "" {
		name = "there"
	}
	text := fmt.Sprintf("👋 Hi, %s!\n<b>I track your weekly routine and daily study plan.</b>\n\n%s", escape(name), helpText)
	return b.sendText(msg.Chat.ID, text)
}

const helpText = "<b>Routine</b>\n" +
	"• /today [day] — records of a day\n" +
	"• /done, /skip, /miss, /undo [day] &lt;n&gt; — mark a record\n" +
	"• /add — new record, /edit [day] &lt;n&gt; — change one\n" +
	"• /delete [day] &lt;n&gt; — remove a record\n" +
	"• /week — week overview\n" +
	"<b>Study</b>\n" +
	"• /study — today's study and prayer plan\n" +
	"• /sdone, /smiss, /sundo &lt;id&gt; — mark a session\n" +
	"• /subject, /prayer — add a session, /sedit &lt;id&gt; — change one\n" +
	"• /prayertime &lt;id&gt; HH:MM HH:MM — move a prayer\n" +
	"• /sdelete &lt;id&gt; — remove a session\n" +
	"<b>Reports</b>\n" +
	"• /stats [YYYY-MM-DD], /report [month] [year], /summary\n" +
	"• /clearreport — wipe the history\n" +
	"<b>Data</b>\n" +
	"• /export — download the routine, send a .json file to import\n" +
	"<b>Settings</b>\n" +
	"• /settime HH:MM, /realtime — test with a manual clock\n" +
	"• /notify on|off — digests and session alerts\n" +
	"• /cancel — stop the current input"

func (b *Bot) handleHelp(msg *tgbotapi.Message) error {
	return b.sendText(msg.Chat.ID, "ℹ️ "+helpText)
}

func (b *Bot) handleMenuAlias(ctx context.Context, msg *tgbotapi.Message) (bool, error) {
	switch strings.TrimSpace(msg.Text) {
	case menuLabelToday:
		return true, b.sendDay(ctx, msg.Chat.ID, b.app.Clock.Weekday())
	case menuLabelStudy:
		return true, b.handleStudy(ctx, msg)
	case menuLabelWeek:
		return true, b.handleWeek(ctx, msg)
	case menuLabelAdd:
		return true, b.startTaskDialog(msg)
	case menuLabelStats:
		return true, b.handleStats(ctx, msg)
	case menuLabelHelp:
		return true, b.handleHelp(msg)
	default:
		return false, nil
	}
}

func (b *Bot) handleSetTime(msg *tgbotapi.Message) error {
	value := strings.TrimSpace(msg.CommandArguments())
	if value == "" {
		if manual, ok := b.app.Clock.Manual(); ok {
			return b.sendText(msg.Chat.ID, fmt.Sprintf("🕰 Manual time is %s. /realtime clears it.", manual))
		}
		return b.sendText(msg.Chat.ID, "Usage: /settime 14:30")
	}
	if err := b.app.Clock.SetManual(value); err != nil {
		return b.sendText(msg.Chat.ID, escape(err.Error()))
	}
	log.Printf("[info] manual time set to %s by %d", value, msg.From.ID)
	return b.sendText(msg.Chat.ID, fmt.Sprintf("🕰 Manual time set to %s.", escape(value)))
}

func (b *Bot) handleNotify(ctx context.Context, msg *tgbotapi.Message) error {
	if err := b.ensureUser(ctx, msg); err != nil {
		return err
	}
	var on bool
	switch strings.ToLower(strings.TrimSpace(msg.CommandArguments())) {
	case "on":
		on = true
	case "off":
	default:
		return b.sendText(msg.Chat.ID, "Usage: /notify on or /notify off")
	}
	if err := b.app.Users.SetNotify(ctx, msg.From.ID, on); err != nil {
		return err
	}
	if on {
		return b.sendText(msg.Chat.ID, "🔔 Notifications on.")
	}
	return b.sendText(msg.Chat.ID, "🔕 Notifications off.")
}

func (b *Bot) handleConfirmationResponse(ctx context.Context, msg *tgbotapi.Message, req confirmationRequest) error {
	text := strings.TrimSpace(msg.Text)
	switch {
	case isConfirmInput(text):
		b.clearConfirmation(msg.From.ID)
		return b.confirm(ctx, msg.Chat.ID, req)
	case isCancelInput(text):
		b.clearConfirmation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "Cancelled.")
	default:
		return b.sendWithReplyMarkup(msg.Chat.ID, "Confirm or cancel.", confirmKeyboard())
	}
}

func (b *Bot) confirm(ctx context.Context, chatID int64, req confirmationRequest) error {
	var text string
	err := b.app.Do(func() error {
		switch req.action {
		case actionDeleteTask:
			index, err := b.app.Routine.Resolve(req.task)
			if err != nil {
				return err
			}
			t, err := b.app.Routine.Delete(ctx, req.task.Day, index)
			if err != nil {
				return err
			}
			text = fmt.Sprintf("🗑 %s removed from %s.", escape(normalizeTitle(t.Title)), req.task.Day.Title())
		case actionDeleteSession:
			s, err := b.app.Study.DeleteSubject(ctx, req.sessionID)
			if err != nil {
				return err
			}
			text = fmt.Sprintf("🗑 %s removed.", escape(normalizeTitle(s.Name)))
		case actionClearReport:
			if err := b.app.Reports.Clear(ctx); err != nil {
				return err
			}
			text = "🧹 History cleared."
		}
		return nil
	})
	if err != nil {
		return b.sendError(chatID, err)
	}
	return b.sendText(chatID, text)
}

// Notify forwards session transitions to subscribers.
func (b *Bot) Notify(ctx context.Context, transitions []service.Transition) error {
	var lines []string
	for _, t := range transitions {
		if !strings.HasPrefix(t.Key, "session:") {
			continue
		}
		if line := formatTransition(t); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil
	}
	return b.broadcast(ctx, strings.Join(lines, "\n"))
}

// SendDailyReports sends the digest to every subscriber.
func (b *Bot) SendDailyReports(ctx context.Context) error {
	var text string
	_ = b.app.Do(func() error {
		text = b.app.Reminder.DailySummary(ctx, b.app.Clock.Now())
		return nil
	})
	return b.broadcast(ctx, text)
}

func (b *Bot) broadcast(ctx context.Context, text string) error {
	users, err := b.app.Users.ListSubscribers(ctx)
	if err != nil {
		return err
	}
	for _, user := range users {
		if !b.isAllowed(user.TelegramID) {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := b.sendText(user.ChatID, text); err != nil {
			log.Printf("send to %d: %v", user.TelegramID, err)
		}
	}
	return nil
}

func (b *Bot) ensureUser(ctx context.Context, msg *tgbotapi.Message) error {
	_, err := b.app.Users.UpsertFromTelegram(ctx, msg.From.ID, msg.Chat.ID, msg.From.FirstName, msg.From.LastName, msg.From.UserName)
	return err
}

// sendError reports user-facing failures and passes the rest up.
func (b *Bot) sendError(chatID int64, err error) error {
	var verr *service.ValidationError
	var ierr *service.ImportError
	switch {
	case errors.Is(err, service.ErrNotFound):
		return b.sendText(chatID, "Record not found. Check the number with /today or /study.")
	case errors.As(err, &verr):
		return b.sendText(chatID, escape(verr.Message))
	case errors.As(err, &ierr):
		return b.sendText(chatID, "Could not import: "+escape(ierr.Err.Error()))
	default:
		return err
	}
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = mainMenuKeyboard()
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendWithReplyMarkup(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	_, err := b.api.Send(msg)
	return err
}

func allowList(ids []int64) map[int64]bool {
	allowed := make(map[int64]bool, len(ids))
	for _, id := range ids {
		allowed[id] = true
	}
	return allowed
}

func (b *Bot) isAllowed(userID int64) bool {
	return b.allowed[userID]
}

func (b *Bot) getConfirmation(userID int64) (confirmationRequest, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	req, ok := b.confirmations[userID]
	return req, ok
}

// setConfirmation also abandons the user's dialog, which would otherwise
// resume against a changed schedule.
func (b *Bot) setConfirmation(userID int64, req confirmationRequest) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.confirmations[userID] = req
	delete(b.conversations, userID)
}

func (b *Bot) clearConfirmation(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.confirmations, userID)
}

func (b *Bot) setConversation(userID int64, state *conversationState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.conversations[userID] = state
}

func (b *Bot) getConversation(userID int64) *conversationState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conversations[userID]
}

func (b *Bot) hasConversation(userID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.conversations[userID]
	return ok
}

func (b *Bot) clearConversation(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.conversations, userID)
}
