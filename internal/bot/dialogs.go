package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"routine-tracker/internal/model"
	"routine-tracker/internal/service"
)

type dialogKind int

const (
	dialogTask dialogKind = iota
	dialogSubject
	dialogPrayer
)

type conversationStage int

const (
	stageNone conversationStage = iota
	stageDay
	stageTime
	stageDuration
	stageTitle
	stageDescription
	stageCategory
	stageSpecial
	stageName
	stageStart
	stageEnd
	stageSessionDescription
	stageSessionType
)

type conversationState struct {
	kind  dialogKind
	stage conversationStage

	task service.TaskInput
	edit *service.TaskRef // nil for a new record

	session   service.SessionInput
	sessionID int64 // 0 for a new session
}

func (s *conversationState) editing() bool {
	if s.kind == dialogTask {
		return s.edit != nil
	}
	return s.sessionID > 0
}

func (s *conversationState) firstStage() conversationStage {
	if s.kind == dialogTask {
		return stageDay
	}
	return stageName
}

// nextStage is the step after stage for the dialog kind.
func (s *conversationState) nextStage(stage conversationStage) conversationStage {
	switch s.kind {
	case dialogTask:
		if stage >= stageDay && stage < stageSpecial {
			return stage + 1
		}
	case dialogSubject:
		if stage >= stageName && stage < stageSessionType {
			return stage + 1
		}
	case dialogPrayer:
		if stage >= stageName && stage < stageSessionDescription {
			return stage + 1
		}
	}
	return stageNone
}

// stageForField maps a validation failure back to the step that asks for it.
func (s *conversationState) stageForField(field string) conversationStage {
	if s.kind == dialogTask {
		switch field {
		case "day":
			return stageDay
		case "time":
			return stageTime
		case "duration":
			return stageDuration
		default:
			return stageTitle
		}
	}
	switch field {
	case "time":
		return stageStart
	case "endTime":
		return stageEnd
	default:
		return stageName
	}
}

func (b *Bot) startTaskDialog(msg *tgbotapi.Message) error {
	state := &conversationState{kind: dialogTask}
	return b.beginDialog(msg, state, "🆕 New routine record.")
}

func (b *Bot) startSessionDialog(msg *tgbotapi.Message, kind dialogKind, id int64) error {
	state := &conversationState{kind: kind, sessionID: id}
	title := "🆕 New study session."
	if kind == dialogPrayer {
		title = "🆕 New prayer."
	}
	return b.beginDialog(msg, state, title)
}

func (b *Bot) beginDialog(msg *tgbotapi.Message, state *conversationState, intro string) error {
	state.stage = state.firstStage()
	b.setConversation(msg.From.ID, state)
	if err := b.sendWithReplyMarkup(msg.Chat.ID, intro, cancelKeyboard()); err != nil {
		return err
	}
	return b.prompt(msg.Chat.ID, state, "")
}

func (b *Bot) prompt(chatID int64, state *conversationState, problem string) error {
	var (
		text     string
		markup   interface{}
		optional bool
	)
	current := func(v string) string {
		if !state.editing() || strings.TrimSpace(v) == "" {
			return ""
		}
		return fmt.Sprintf(" (now <code>%s</code>)", escape(v))
	}
	switch state.stage {
	case stageDay:
		text = "Which day?" + current(string(state.task.Day))
		markup = dayKeyboard()
	case stageTime:
		text = "Start time, HH:MM?" + current(state.task.Time)
	case stageDuration:
		dur := ""
		if state.task.Duration > 0 {
			dur = strconv.Itoa(state.task.Duration)
		}
		text = "Duration in minutes?" + current(dur)
	case stageTitle:
		text = "Title?" + current(state.task.Title)
	case stageDescription:
		text = "Short description, or skip." + current(state.task.Description)
		optional = true
	case stageCategory:
		text = "Category? Skip for personal." + current(string(state.task.Type))
		markup = categoryKeyboard()
	case stageSpecial:
		text = "Special marker, or skip." + current(string(state.task.Special))
		markup = specialKeyboard()
		optional = true
	case stageName:
		text = "Name?" + current(state.session.Name)
	case stageStart:
		text = "Start time, HH:MM?" + current(state.session.StartTime)
	case stageEnd:
		text = "End time, HH:MM?" + current(state.session.EndTime)
	case stageSessionDescription:
		text = "Description, or skip." + current(state.session.Description)
		optional = true
	case stageSessionType:
		text = "Type? Skip for study." + current(string(state.session.Type))
		markup = categoryKeyboard()
	}
	if markup == nil {
		if optional || state.editing() {
			markup = skipKeyboard()
		} else {
			markup = cancelKeyboard()
		}
	}
	if problem != "" {
		text = "⚠️ " + escape(problem) + "\n" + text
	}
	return b.sendWithReplyMarkup(chatID, text, markup)
}

func (b *Bot) handleConversation(ctx context.Context, msg *tgbotapi.Message) error {
	state := b.getConversation(msg.From.ID)
	if state == nil {
		return nil
	}
	text := strings.TrimSpace(msg.Text)
	keep := isSkipInput(text)

	if !keep || !state.editing() {
		if problem := applyAnswer(state, text, keep); problem != "" {
			return b.prompt(msg.Chat.ID, state, problem)
		}
	}

	if next := state.nextStage(state.stage); next != stageNone {
		state.stage = next
		return b.prompt(msg.Chat.ID, state, "")
	}
	return b.finishDialog(ctx, msg, state)
}

// applyAnswer stores one dialog answer. It returns a problem description when
// the answer cannot be used for the current step.
func applyAnswer(state *conversationState, text string, skipped bool) string {
	switch state.stage {
	case stageDescription, stageSpecial, stageSessionDescription, stageCategory, stageSessionType:
	default:
		if skipped {
			return "This step cannot be skipped."
		}
	}
	switch state.stage {
	case stageDay:
		day, ok := model.ParseWeekday(text)
		if !ok {
			return "Pick a day from the keyboard."
		}
		state.task.Day = day
	case stageTime:
		minutes, err := service.ParseClock(text)
		if err != nil {
			return err.Error()
		}
		state.task.Time = service.FormatClock(minutes)
	case stageDuration:
		n, err := strconv.Atoi(text)
		if err != nil || n <= 0 {
			return "Duration must be a positive number of minutes."
		}
		state.task.Duration = n
	case stageTitle:
		if text == "" {
			return "Title is required."
		}
		state.task.Title = text
	case stageDescription:
		if skipped {
			text = ""
		}
		state.task.Description = text
	case stageCategory:
		state.task.Type = ""
		if !skipped {
			state.task.Type = model.ParseCategory(text)
		}
	case stageSpecial:
		if skipped {
			text = ""
		}
		state.task.Special = model.ParseSpecial(text)
	case stageName:
		if text == "" {
			return "Name is required."
		}
		state.session.Name = text
	case stageStart:
		if _, err := service.ParseClock(text); err != nil {
			return err.Error()
		}
		state.session.StartTime = text
	case stageEnd:
		if _, err := service.ParseClock(text); err != nil {
			return err.Error()
		}
		state.session.EndTime = text
	case stageSessionDescription:
		if skipped {
			text = ""
		}
		state.session.Description = text
	case stageSessionType:
		state.session.Type = ""
		if !skipped {
			state.session.Type = model.ParseCategory(text)
		}
	}
	return ""
}

func (b *Bot) finishDialog(ctx context.Context, msg *tgbotapi.Message, state *conversationState) error {
	var summary string
	err := b.app.Do(func() error {
		switch state.kind {
		case dialogTask:
			var (
				t   model.Task
				err error
			)
			if state.editing() {
				index, rerr := b.app.Routine.Resolve(*state.edit)
				if rerr != nil {
					return rerr
				}
				t, err = b.app.Routine.Update(ctx, state.edit.Day, index, state.task)
			} else {
				t, err = b.app.Routine.Add(ctx, state.task)
			}
			if err != nil {
				return err
			}
			summary = fmt.Sprintf("✅ Saved <b>%s</b> on %s at %s for %d min.", escape(normalizeTitle(t.Title)),
				state.task.Day.Title(), t.Time, t.Duration)
		default:
			var (
				s   model.Session
				err error
			)
			switch {
			case state.editing():
				s, err = b.app.Study.UpdateSubject(ctx, state.sessionID, state.session)
			case state.kind == dialogPrayer:
				s, err = b.app.Study.AddPrayer(ctx, state.session)
			default:
				s, err = b.app.Study.AddSubject(ctx, state.session)
			}
			if err != nil {
				return err
			}
			summary = fmt.Sprintf("✅ Saved <b>%s</b> (#%d) %s-%s.", escape(normalizeTitle(s.Name)), s.ID, s.StartTime, s.EndTime)
		}
		return nil
	})

	var verr *service.ValidationError
	if errors.As(err, &verr) {
		state.stage = state.stageForField(verr.Field)
		return b.prompt(msg.Chat.ID, state, verr.Message)
	}
	b.clearConversation(msg.From.ID)
	if err != nil {
		return b.sendError(msg.Chat.ID, err)
	}
	if err := b.sendText(msg.Chat.ID, summary); err != nil {
		return err
	}
	if state.kind == dialogTask {
		return b.sendDay(ctx, msg.Chat.ID, state.task.Day)
	}
	return b.sendStudy(ctx, msg.Chat.ID)
}
