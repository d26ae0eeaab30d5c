package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"routine-tracker/internal/model"
	"routine-tracker/internal/service"
)

func (b *Bot) handleStudy(ctx context.Context, msg *tgbotapi.Message) error {
	return b.sendStudy(ctx, msg.Chat.ID)
}

func (b *Bot) sendStudy(ctx context.Context, chatID int64) error {
	var (
		views []service.SessionView
		stats service.StudyStats
	)
	_ = b.app.Do(func() error {
		views = b.app.Study.Sessions(ctx)
		stats = b.app.Study.Stats(ctx)
		return nil
	})
	msg := tgbotapi.NewMessage(chatID, formatStudy(views, stats))
	msg.ParseMode = tgbotapi.ModeHTML
	if kb := studyButtons(views); kb != nil {
		msg.ReplyMarkup = *kb
	}
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) handleSessionOutcome(ctx context.Context, msg *tgbotapi.Message, action string) error {
	id, err := parseSessionID(msg.CommandArguments())
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("%s. Example: /%s 4", escape(err.Error()), msg.Command()))
	}
	return b.applySessionOutcome(ctx, msg.Chat.ID, action, id)
}

func (b *Bot) applySessionOutcome(ctx context.Context, chatID int64, action string, id int64) error {
	err := b.app.Do(func() error {
		var err error
		switch action {
		case cbSessDone:
			_, err = b.app.Study.Complete(ctx, id)
		case cbSessMiss:
			_, err = b.app.Study.Miss(ctx, id)
		default:
			_, err = b.app.Study.Reset(ctx, id)
		}
		return err
	})
	if err != nil {
		return b.sendError(chatID, err)
	}
	return b.sendStudy(ctx, chatID)
}

func (b *Bot) handleSessionEdit(msg *tgbotapi.Message) error {
	id, err := parseSessionID(msg.CommandArguments())
	if err != nil {
		return b.sendText(msg.Chat.ID, escape(err.Error())+". Example: /sedit 4")
	}
	var sess model.Session
	if err := b.app.Do(func() error {
		sess, err = b.app.Study.Session(id)
		return err
	}); err != nil {
		return b.sendError(msg.Chat.ID, err)
	}
	state := &conversationState{
		kind:      dialogSubject,
		sessionID: id,
		session: service.SessionInput{
			Name:        sess.Name,
			StartTime:   sess.StartTime,
			EndTime:     sess.EndTime,
			Description: sess.Description,
			Type:        sess.Type,
		},
	}
	return b.beginDialog(msg, state, fmt.Sprintf("✏️ Editing <b>%s</b>. Send a new value or %s to keep the current one.",
		escape(normalizeTitle(sess.Name)), escape(btnSkip)))
}

func (b *Bot) handlePrayerTime(ctx context.Context, msg *tgbotapi.Message) error {
	fields := strings.Fields(msg.CommandArguments())
	if len(fields) != 3 {
		return b.sendText(msg.Chat.ID, "Usage: /prayertime &lt;id&gt; HH:MM HH:MM")
	}
	id, err := parseSessionID(fields[0])
	if err != nil {
		return b.sendText(msg.Chat.ID, escape(err.Error()))
	}
	var sess model.Session
	if err := b.app.Do(func() error {
		sess, err = b.app.Study.EditPrayerTime(ctx, id, fields[1], fields[2])
		return err
	}); err != nil {
		return b.sendError(msg.Chat.ID, err)
	}
	if err := b.sendText(msg.Chat.ID, fmt.Sprintf("🕌 %s moved to %s-%s.", escape(sess.Name), sess.StartTime, sess.EndTime)); err != nil {
		return err
	}
	return b.sendStudy(ctx, msg.Chat.ID)
}

func (b *Bot) handleSessionDelete(msg *tgbotapi.Message) error {
	id, err := parseSessionID(msg.CommandArguments())
	if err != nil {
		return b.sendText(msg.Chat.ID, escape(err.Error())+". Example: /sdelete 4")
	}
	var sess model.Session
	if err := b.app.Do(func() error {
		sess, err = b.app.Study.Session(id)
		return err
	}); err != nil {
		return b.sendError(msg.Chat.ID, err)
	}
	b.setConfirmation(msg.From.ID, confirmationRequest{action: actionDeleteSession, sessionID: id})
	return b.sendWithReplyMarkup(msg.Chat.ID, fmt.Sprintf("Delete <b>%s</b> (#%d)?", escape(normalizeTitle(sess.Name)), id), confirmKeyboard())
}
