// Package reply holds the transport-agnostic response descriptor that
// handlers produce and the wire formatter consumes. A Reply says WHAT
// to send back; how it lands on WhatsApp is the formatter's problem.
package reply

import "fmt"

type Kind string

const (
	KindNone    Kind = "none"
	KindText    Kind = "text"
	KindList    Kind = "list"
	KindButtons Kind = "buttons"
	KindContact Kind = "contact"
	KindError   Kind = "error"
)

type Row struct {
	ID          string
	Title       string
	Description string
}

type Section struct {
	Title string
	Rows  []Row
}

type Button struct {
	ID   string
	Text string
}

type Contact struct {
	Name         string
	Phone        string
	Organization string
	Email        string
}

type Reply struct {
	Kind       Kind
	Title      string
	Body       string
	Footer     string
	ButtonText string
	Sections   []Section
	Buttons    []Button
	Contact    *Contact
}

func None() Reply { return Reply{Kind: KindNone} }

func Text(body string) Reply { return Reply{Kind: KindText, Body: body} }

func Textf(format string, args ...any) Reply {
	return Text(fmt.Sprintf(format, args...))
}

func Error(message string) Reply { return Reply{Kind: KindError, Body: message} }

func List(title, body string, sections []Section, buttonText string) Reply {
	if buttonText == "" {
		buttonText = "Select"
	}
	return Reply{
		Kind:       KindList,
		Title:      title,
		Body:       body,
		Sections:   sections,
		ButtonText: buttonText,
	}
}

func Buttons(title, body string, buttons []Button) Reply {
	return Reply{Kind: KindButtons, Title: title, Body: body, Buttons: buttons}
}

func ContactCard(c Contact) Reply {
	return Reply{Kind: KindContact, Contact: &c}
}
