package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"routine-tracker/internal/model"
	"routine-tracker/internal/service"
)

const (
	btnSkip         = "⏭️ Skip"
	btnConfirm      = "✅ Confirm"
	btnCancel       = "↩️ Cancel"
	btnCancelDialog = "⏪ Stop input"
	menuLabelToday  = "🗓 Today"
	menuLabelStudy  = "📚 Study"
	menuLabelWeek   = "📅 Week"
	menuLabelAdd    = "➕ Add record"
	menuLabelStats  = "📈 Stats"
	menuLabelHelp   = "ℹ️ Help"
)

// Callback data prefixes. Routine callbacks carry "day:index", study
// callbacks carry the session id.
const (
	cbTaskDone   = "td:"
	cbTaskSkip   = "ts:"
	cbTaskMiss   = "tm:"
	cbTaskUndo   = "tu:"
	cbSessDone   = "sd:"
	cbSessMiss   = "sm:"
	cbSessUndo   = "su:"
	cbTaskDelete = "tx:"
)

func isSkipInput(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	return lower == strings.ToLower(btnSkip) || lower == "skip" || lower == "-"
}

func isConfirmInput(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	return lower == strings.ToLower(btnConfirm) || lower == "yes" || lower == "confirm"
}

func isCancelInput(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	return lower == strings.ToLower(btnCancel) || lower == "no" || lower == "cancel"
}

func isCancelDialogInput(text string) bool {
	return strings.EqualFold(strings.TrimSpace(text), btnCancelDialog)
}

func replyKeyboard(rows ...[]string) tgbotapi.ReplyKeyboardMarkup {
	buttons := make([][]tgbotapi.KeyboardButton, 0, len(rows))
	for _, row := range rows {
		r := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, label := range row {
			r = append(r, tgbotapi.NewKeyboardButton(label))
		}
		buttons = append(buttons, r)
	}
	kb := tgbotapi.NewReplyKeyboard(buttons...)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := replyKeyboard(
		[]string{menuLabelToday, menuLabelStudy, menuLabelWeek},
		[]string{menuLabelAdd, menuLabelStats, menuLabelHelp},
	)
	kb.OneTimeKeyboard = false
	return kb
}

func confirmKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return replyKeyboard([]string{btnConfirm, btnCancel})
}

func cancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return replyKeyboard([]string{btnCancelDialog})
}

func skipKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return replyKeyboard([]string{btnSkip}, []string{btnCancelDialog})
}

func dayKeyboard() tgbotapi.ReplyKeyboardMarkup {
	var row1, row2 []string
	for i, d := range model.Weekdays {
		if i < 4 {
			row1 = append(row1, d.Title())
		} else {
			row2 = append(row2, d.Title())
		}
	}
	return replyKeyboard(row1, row2, []string{btnCancelDialog})
}

func categoryKeyboard() tgbotapi.ReplyKeyboardMarkup {
	var rows [][]string
	var row []string
	for _, c := range model.Categories() {
		row = append(row, string(c))
		if len(row) == 4 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, []string{btnCancelDialog})
	return replyKeyboard(rows...)
}

func specialKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return replyKeyboard(
		[]string{string(model.SpecialWeekend), string(model.SpecialClassTime), string(model.SpecialReligiousTime)},
		[]string{btnSkip, btnCancelDialog},
	)
}

// taskCallback encodes a routine button as prefix + "day:index:HHMM". The
// time lets the handler notice that the list was reordered since it was sent.
func taskCallback(prefix string, day model.Weekday, index int, at string) string {
	return fmt.Sprintf("%s%s:%d:%s", prefix, day, index, strings.ReplaceAll(at, ":", ""))
}

func routineButtons(day model.Weekday, views []service.TaskView) *tgbotapi.InlineKeyboardMarkup {
	if len(views) == 0 {
		return nil
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(views))
	for _, v := range views {
		label := fmt.Sprintf("#%d %s", v.Index+1, shortTitle(v.Task.Title, 18))
		var row []tgbotapi.InlineKeyboardButton
		if v.Status == model.StatusPending {
			row = append(row,
				tgbotapi.NewInlineKeyboardButtonData("✅ "+label, taskCallback(cbTaskDone, day, v.Index, v.Task.Time)),
				tgbotapi.NewInlineKeyboardButtonData("⏭", taskCallback(cbTaskSkip, day, v.Index, v.Task.Time)),
				tgbotapi.NewInlineKeyboardButtonData("❌", taskCallback(cbTaskMiss, day, v.Index, v.Task.Time)),
			)
		} else {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData("↩️ "+label, taskCallback(cbTaskUndo, day, v.Index, v.Task.Time)))
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("🗑", taskCallback(cbTaskDelete, day, v.Index, v.Task.Time)))
		rows = append(rows, row)
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

func studyButtons(views []service.SessionView) *tgbotapi.InlineKeyboardMarkup {
	if len(views) == 0 {
		return nil
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(views))
	for _, v := range views {
		id := v.Session.ID
		label := fmt.Sprintf("#%d %s", id, shortTitle(v.Session.Name, 18))
		switch v.Status {
		case model.StatusCompleted, model.StatusMissed:
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("↩️ "+label, fmt.Sprintf("%s%d", cbSessUndo, id)),
			))
		default:
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("✅ "+label, fmt.Sprintf("%s%d", cbSessDone, id)),
				tgbotapi.NewInlineKeyboardButtonData("❌", fmt.Sprintf("%s%d", cbSessMiss, id)),
			))
		}
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}
