// Package wire turns transport-agnostic replies into whatsmeow
// payloads and pushes them out, degrading structured messages to plain
// text when the other side rejects them.
package wire

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.mau.fi/whatsmeow/proto/waE2E"
	"google.golang.org/protobuf/proto"

	"github.com/tnyamukapa/shopbot/internal/reply"
)

// Format maps a reply onto the message shape WhatsApp expects.
// Interactive payloads ride inside a ViewOnceMessage wrapper, which is
// what current clients need to actually render them.
func Format(r reply.Reply) (*waE2E.Message, error) {
	switch r.Kind {
	case reply.KindNone:
		return nil, nil
	case reply.KindText:
		return textMessage(r.Body), nil
	case reply.KindError:
		return textMessage("❌ " + r.Body), nil
	case reply.KindList:
		return listMessage(r), nil
	case reply.KindButtons:
		return buttonsMessage(r)
	case reply.KindContact:
		return contactMessage(r), nil
	default:
		return nil, fmt.Errorf("wire: unknown reply kind %q", r.Kind)
	}
}

// Structured reports whether r has a richer shape than plain text and
// therefore a distinct fallback rendering.
func Structured(r reply.Reply) bool {
	switch r.Kind {
	case reply.KindList, reply.KindButtons, reply.KindContact:
		return true
	}
	return false
}

func textMessage(body string) *waE2E.Message {
	return &waE2E.Message{Conversation: proto.String(body)}
}

func listMessage(r reply.Reply) *waE2E.Message {
	sections := make([]*waE2E.ListMessage_Section, 0, len(r.Sections))
	for _, section := range r.Sections {
		rows := make([]*waE2E.ListMessage_Row, 0, len(section.Rows))
		for _, row := range section.Rows {
			rows = append(rows, &waE2E.ListMessage_Row{
				RowID:       proto.String(row.ID),
				Title:       proto.String(row.Title),
				Description: proto.String(row.Description),
			})
		}
		sections = append(sections, &waE2E.ListMessage_Section{
			Title: proto.String(section.Title),
			Rows:  rows,
		})
	}

	list := &waE2E.ListMessage{
		Title:       proto.String(r.Title),
		Description: proto.String(r.Body),
		ButtonText:  proto.String(r.ButtonText),
		ListType:    waE2E.ListMessage_SINGLE_SELECT.Enum(),
		Sections:    sections,
	}
	if r.Footer != "" {
		list.FooterText = proto.String(r.Footer)
	}

	return &waE2E.Message{
		ViewOnceMessage: &waE2E.FutureProofMessage{
			Message: &waE2E.Message{ListMessage: list},
		},
	}
}

func buttonsMessage(r reply.Reply) (*waE2E.Message, error) {
	buttons := make([]*waE2E.InteractiveMessage_NativeFlowMessage_NativeFlowButton, 0, len(r.Buttons))
	for i, btn := range r.Buttons {
		id := btn.ID
		if id == "" {
			id = fmt.Sprintf("btn_%d", i)
		}
		params, err := json.Marshal(map[string]string{
			"display_text": btn.Text,
			"id":           id,
		})
		if err != nil {
			return nil, fmt.Errorf("wire: encode button params: %w", err)
		}
		buttons = append(buttons, &waE2E.InteractiveMessage_NativeFlowMessage_NativeFlowButton{
			Name:             proto.String("quick_reply"),
			ButtonParamsJSON: proto.String(string(params)),
		})
	}

	interactive := &waE2E.InteractiveMessage{
		Body: &waE2E.InteractiveMessage_Body{Text: proto.String(r.Body)},
		InteractiveMessage: &waE2E.InteractiveMessage_NativeFlowMessage_{
			NativeFlowMessage: &waE2E.InteractiveMessage_NativeFlowMessage{
				Buttons:           buttons,
				MessageParamsJSON: proto.String("{}"),
				MessageVersion:    proto.Int32(3),
			},
		},
	}
	if r.Title != "" {
		interactive.Header = &waE2E.InteractiveMessage_Header{
			Title:              proto.String(r.Title),
			HasMediaAttachment: proto.Bool(false),
		}
	}
	if r.Footer != "" {
		interactive.Footer = &waE2E.InteractiveMessage_Footer{Text: proto.String(r.Footer)}
	}

	return &waE2E.Message{
		ViewOnceMessage: &waE2E.FutureProofMessage{
			Message: &waE2E.Message{InteractiveMessage: interactive},
		},
	}, nil
}

func contactMessage(r reply.Reply) *waE2E.Message {
	c := r.Contact
	digits := strings.Map(func(ch rune) rune {
		if ch >= '0' && ch <= '9' {
			return ch
		}
		return -1
	}, c.Phone)
	vcard := fmt.Sprintf("BEGIN:VCARD\nVERSION:3.0\nFN:%s\nTEL;type=CELL;type=VOICE;waid=%s:+%s\nORG:%s\nEMAIL:%s\nEND:VCARD",
		c.Name, digits, digits, c.Organization, c.Email)
	return &waE2E.Message{
		ContactMessage: &waE2E.ContactMessage{
			DisplayName: proto.String(c.Name),
			Vcard:       proto.String(vcard),
		},
	}
}

// Fallback renders a structured reply as deterministic numbered plain
// text: each section title on its own line, each row as
// "<n>. <title> — <description>".
func Fallback(r reply.Reply) reply.Reply {
	switch r.Kind {
	case reply.KindList:
		var b strings.Builder
		if r.Body != "" {
			b.WriteString(r.Body)
			b.WriteString("\n")
		}
		n := 0
		for _, section := range r.Sections {
			b.WriteString("\n")
			b.WriteString(section.Title)
			b.WriteString("\n")
			for _, row := range section.Rows {
				n++
				if row.Description != "" {
					fmt.Fprintf(&b, "%d. %s — %s\n", n, row.Title, row.Description)
				} else {
					fmt.Fprintf(&b, "%d. %s\n", n, row.Title)
				}
			}
		}
		return reply.Text(strings.TrimRight(b.String(), "\n"))
	case reply.KindButtons:
		var b strings.Builder
		if r.Title != "" {
			b.WriteString(r.Title)
			b.WriteString("\n")
		}
		b.WriteString(r.Body)
		b.WriteString("\n")
		for i, btn := range r.Buttons {
			fmt.Fprintf(&b, "%d. %s\n", i+1, btn.Text)
		}
		return reply.Text(strings.TrimRight(b.String(), "\n"))
	case reply.KindContact:
		c := r.Contact
		return reply.Textf("%s\nPhone: +%s\nEmail: %s", c.Name, c.Phone, c.Email)
	default:
		return r
	}
}
