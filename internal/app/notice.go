// internal/app/notice.go
package app

import (
	"fmt"
	"math"
	"strings"

	"go-paper-airplane/internal/component"
	"go-paper-airplane/internal/event"
	"go-paper-airplane/internal/system"
)

// NoticeLevel — вид сообщения для баннера.
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
	NoticeEvent   NoticeLevel = "event"
)

const (
	noticeSeconds       = 3.0
	eventNoticeSeconds  = 2.0
	resultNoticeSeconds = 6.0
)

// Notice is a short message shown to the player.
type Notice struct {
	Text  string
	Level NoticeLevel
	Until float64
}

func (s *Session) post(text string, level NoticeLevel, seconds float64) {
	s.notice = Notice{Text: text, Level: level, Until: s.World.Time + seconds}
}

// SessionEventListener обрабатывает события, важные для игрока.
type SessionEventListener struct {
	session *Session
}

func (l *SessionEventListener) OnEvent(e event.Event) {
	s := l.session
	switch e.Type {
	case event.ThrowRejected:
		if data, ok := e.Data.(event.ThrowData); ok {
			s.post(data.Reason, NoticeWarning, noticeSeconds)
		}
	case event.ParameterAdjusted:
		data, ok := e.Data.(event.ParameterData)
		if ok && data.Adjustment.Clamped {
			s.post(fmt.Sprintf("%s %g is out of range, adjusted to %g",
				data.Name, data.Adjustment.Requested, data.Adjustment.Applied), NoticeWarning, noticeSeconds)
		}
	case event.GlidingStarted:
		if effect, ok := e.Data.(float64); ok {
			s.post(fmt.Sprintf("Gliding! effect %.1f%%", effect*100), NoticeInfo, noticeSeconds)
		}
	case event.SwingbyStarted:
		s.post("Swingby! The current grabbed your airplane", NoticeEvent, eventNoticeSeconds)
	case event.SwingbyRelaunched:
		s.post("Swingby boost!", NoticeEvent, eventNoticeSeconds)
	case event.BirdCarryStarted:
		s.post("A bird is approaching!", NoticeEvent, eventNoticeSeconds)
	case event.PoopCrashStarted:
		s.post(system.Headline(component.EventPoopCrash), NoticeEvent, eventNoticeSeconds)
	case event.MoonTransitStarted:
		s.post("Heading for the moon...", NoticeEvent, eventNoticeSeconds)
	case event.FlightLanded:
		if data, ok := e.Data.(event.LandedData); ok {
			s.post(ResultText(data.Result), NoticeInfo, resultNoticeSeconds)
		}
	}
}

// ResultText renders a landing summary, one fact per line.
func ResultText(r component.FlightResult) string {
	var b strings.Builder
	if h := system.Headline(r.Event); h != "" {
		b.WriteString(h + "\n")
	}
	fmt.Fprintf(&b, "Distance: %s\nMax height: %s\n%s\n%s", r.DisplayDistance, r.DisplayHeight, r.Message, r.BalanceComment)
	if r.Blur.HasBlur {
		dir := ""
		if r.Blur.Direction != "" {
			dir = " (" + r.Blur.Direction + ")"
		}
		fmt.Fprintf(&b, "\nAngle blur: %.1f°%s (set %g° -> actual %.1f°)",
			r.Blur.Amount, dir, r.Blur.OriginalAngle, math.Round(r.Blur.ActualAngle*10)/10)
	}
	return b.String()
}
