package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"routine-tracker/internal/model"
	"routine-tracker/internal/service"
)

func (b *Bot) handleToday(ctx context.Context, msg *tgbotapi.Message) error {
	day := b.app.Clock.Weekday()
	if arg := strings.TrimSpace(msg.CommandArguments()); arg != "" {
		d, ok := model.ParseWeekday(arg)
		if !ok {
			return b.sendText(msg.Chat.ID, fmt.Sprintf("Unknown day %q.", escape(arg)))
		}
		day = d
	}
	return b.sendDay(ctx, msg.Chat.ID, day)
}

func (b *Bot) sendDay(ctx context.Context, chatID int64, day model.Weekday) error {
	var (
		views  []service.TaskView
		counts service.DayCounts
	)
	_ = b.app.Do(func() error {
		views = b.app.Routine.Day(ctx, day)
		counts = b.app.Routine.Counts(ctx, day)
		return nil
	})
	manual, _ := b.app.Clock.Manual()
	msg := tgbotapi.NewMessage(chatID, formatDay(day, views, counts, manual))
	msg.ParseMode = tgbotapi.ModeHTML
	if kb := routineButtons(day, views); kb != nil {
		msg.ReplyMarkup = *kb
	}
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) handleTaskOutcome(ctx context.Context, msg *tgbotapi.Message, action string) error {
	day, index, err := parseDayIndex(msg.CommandArguments(), b.app.Clock.Weekday())
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("%s. Example: /%s monday 3", escape(err.Error()), msg.Command()))
	}
	return b.applyTaskOutcome(ctx, msg.Chat.ID, action, service.TaskRef{Day: day, Index: index})
}

func (b *Bot) applyTaskOutcome(ctx context.Context, chatID int64, action string, ref service.TaskRef) error {
	var (
		task  model.Task
		index int
	)
	err := b.app.Do(func() error {
		var err error
		index, err = b.app.Routine.Resolve(ref)
		if err != nil {
			return err
		}
		switch action {
		case cbTaskDone:
			task, err = b.app.Routine.Complete(ctx, ref.Day, index)
		case cbTaskSkip:
			task, err = b.app.Routine.Skip(ctx, ref.Day, index)
		case cbTaskMiss:
			task, err = b.app.Routine.Miss(ctx, ref.Day, index)
		default:
			task, err = b.app.Routine.Reset(ctx, ref.Day, index)
		}
		return err
	})
	if err != nil {
		return b.sendError(chatID, err)
	}
	log.Printf("[info] routine %s #%d -> %s", ref.Day, index+1, task.Outcome)
	return b.sendDay(ctx, chatID, ref.Day)
}

func (b *Bot) handleEdit(msg *tgbotapi.Message) error {
	day, index, err := parseDayIndex(msg.CommandArguments(), b.app.Clock.Weekday())
	if err != nil {
		return b.sendText(msg.Chat.ID, escape(err.Error())+". Example: /edit monday 3")
	}
	var task model.Task
	if err := b.app.Do(func() error {
		task, err = b.app.Routine.Task(day, index)
		return err
	}); err != nil {
		return b.sendError(msg.Chat.ID, err)
	}
	ref := service.RefOf(day, index, task)
	state := &conversationState{
		kind: dialogTask,
		edit: &ref,
		task: service.TaskInput{
			Day:         day,
			Time:        task.Time,
			Duration:    task.Duration,
			Title:       task.Title,
			Description: task.Description,
			Type:        task.Type,
			Special:     task.Special,
		},
	}
	return b.beginDialog(msg, state, fmt.Sprintf("✏️ Editing <b>%s</b>. Send a new value or %s to keep the current one.",
		escape(normalizeTitle(task.Title)), escape(btnSkip)))
}

func (b *Bot) handleDelete(msg *tgbotapi.Message) error {
	day, index, err := parseDayIndex(msg.CommandArguments(), b.app.Clock.Weekday())
	if err != nil {
		return b.sendText(msg.Chat.ID, escape(err.Error())+". Example: /delete monday 3")
	}
	return b.askDeleteTask(msg.Chat.ID, msg.From.ID, service.TaskRef{Day: day, Index: index})
}

// askDeleteTask pins the record by time and title so the confirmation
// cannot remove a different one if the day changes meanwhile.
func (b *Bot) askDeleteTask(chatID, userID int64, ref service.TaskRef) error {
	var task model.Task
	if err := b.app.Do(func() error {
		index, err := b.app.Routine.Resolve(ref)
		if err != nil {
			return err
		}
		task, err = b.app.Routine.Task(ref.Day, index)
		ref = service.RefOf(ref.Day, index, task)
		return err
	}); err != nil {
		return b.sendError(chatID, err)
	}
	b.setConfirmation(userID, confirmationRequest{action: actionDeleteTask, task: ref})
	text := fmt.Sprintf("Delete <b>%s</b> (%s #%d)?", escape(normalizeTitle(task.Title)), ref.Day.Title(), ref.Index+1)
	return b.sendWithReplyMarkup(chatID, text, confirmKeyboard())
}

func (b *Bot) handleWeek(ctx context.Context, msg *tgbotapi.Message) error {
	var (
		week       []service.DayProgress
		categories []service.CategoryCount
	)
	_ = b.app.Do(func() error {
		week = b.app.Routine.Week(ctx)
		categories = b.app.Routine.CategoryCounts(ctx)
		return nil
	})
	return b.sendText(msg.Chat.ID, formatWeek(week, categories))
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb == nil || cb.From == nil || cb.Message == nil {
		return nil
	}
	if !b.isAllowed(cb.From.ID) {
		log.Printf("[info] rejected callback from %d", cb.From.ID)
		_, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "This bot is private."))
		return err
	}
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		log.Printf("callback ack: %v", err)
	}
	chatID := cb.Message.Chat.ID
	data := cb.Data
	if len(data) < 3 {
		return nil
	}
	prefix, rest := data[:3], data[3:]
	log.Printf("[info] callback %s%s from %d", prefix, rest, cb.From.ID)

	switch prefix {
	case cbTaskDone, cbTaskSkip, cbTaskMiss, cbTaskUndo, cbTaskDelete:
		ref, ok := parseTaskCallback(rest)
		if !ok {
			return nil
		}
		if prefix == cbTaskDelete {
			return b.askDeleteTask(chatID, cb.From.ID, ref)
		}
		return b.applyTaskOutcome(ctx, chatID, prefix, ref)
	case cbSessDone, cbSessMiss, cbSessUndo:
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return nil
		}
		return b.applySessionOutcome(ctx, chatID, prefix, id)
	default:
		return nil
	}
}

// parseTaskCallback reads "day:index[:HHMM]".
func parseTaskCallback(raw string) (service.TaskRef, bool) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return service.TaskRef{}, false
	}
	day, ok := model.ParseWeekday(parts[0])
	if !ok {
		return service.TaskRef{}, false
	}
	index, err := strconv.Atoi(parts[1])
	if err != nil || index < 0 {
		return service.TaskRef{}, false
	}
	ref := service.TaskRef{Day: day, Index: index}
	if len(parts) == 3 {
		at := parts[2]
		if len(at) != 4 {
			return service.TaskRef{}, false
		}
		ref.Time = at[:2] + ":" + at[2:]
	}
	return ref, true
}
