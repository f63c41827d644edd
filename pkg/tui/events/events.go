package events

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/rota/pkg/schedule"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// BookingRef captures the metadata required to identify a booking in
// cross-component events.
type BookingRef struct {
	ID    int
	Title string
}

// Label returns a human-friendly identifier for the booking.
func (r BookingRef) Label() string {
	if r.Title != "" {
		return r.Title
	}
	return fmt.Sprintf("#%d", r.ID)
}

// ChangeType enumerates supported change actions across components.
type ChangeType string

const (
	// ChangeCreate indicates a new booking was created.
	ChangeCreate ChangeType = "create"
	// ChangeUpdate indicates an existing booking changed.
	ChangeUpdate ChangeType = "update"
	// ChangeDelete indicates a booking was removed.
	ChangeDelete ChangeType = "delete"
)

// BookingSelectMsg is emitted when the user activates a booking on the
// board (click without drag, or Enter on the highlighted block).
type BookingSelectMsg struct {
	Component ComponentID
	Booking   BookingRef
}

// Describe renders the selection in a human-friendly format for logs.
func (m BookingSelectMsg) Describe() string {
	return fmt.Sprintf(`booking:%q`, m.Booking.Label())
}

// MoveRequestMsg asks the app to reschedule a booking. The new start is
// already snapped; duration is preserved by the service.
type MoveRequestMsg struct {
	Component  ComponentID
	Booking    BookingRef
	NewStart   time.Time
	ResourceID int
}

// Describe renders the move request for logs.
func (m MoveRequestMsg) Describe() string {
	return fmt.Sprintf(`booking:%q start:%q lane:%d`,
		m.Booking.Label(), m.NewStart.Format("15:04"), m.ResourceID)
}

// MoveRequestCmd wraps MoveRequestMsg in a tea.Cmd.
func MoveRequestCmd(component ComponentID, booking BookingRef, newStart time.Time, resourceID int) tea.Cmd {
	return func() tea.Msg {
		return MoveRequestMsg{
			Component:  component,
			Booking:    booking,
			NewStart:   newStart,
			ResourceID: resourceID,
		}
	}
}

// CreateRequestMsg asks the app to open the create flow for an empty
// slot. Start is already snapped to the creation grid.
type CreateRequestMsg struct {
	Component  ComponentID
	ResourceID int
	Start      time.Time
}

// Describe renders the create request for logs.
func (m CreateRequestMsg) Describe() string {
	return fmt.Sprintf(`lane:%d start:%q`, m.ResourceID, m.Start.Format("15:04"))
}

// CreateRequestCmd wraps CreateRequestMsg in a tea.Cmd.
func CreateRequestCmd(component ComponentID, resourceID int, start time.Time) tea.Cmd {
	return func() tea.Msg {
		return CreateRequestMsg{Component: component, ResourceID: resourceID, Start: start}
	}
}

// BookingChangeMsg announces lifecycle changes to bookings so other
// components can refresh their state.
type BookingChangeMsg struct {
	Component ComponentID
	Action    ChangeType
	Booking   BookingRef
}

// Describe renders the change in a human-friendly format for logs.
func (m BookingChangeMsg) Describe() string {
	return fmt.Sprintf(`action:%q booking:%q`, m.Action, m.Booking.Label())
}

// BookingChangeCmd wraps BookingChangeMsg in a tea.Cmd.
func BookingChangeCmd(component ComponentID, action ChangeType, booking BookingRef) tea.Cmd {
	return func() tea.Msg {
		return BookingChangeMsg{Component: component, Action: action, Booking: booking}
	}
}

// SubChangeMsg announces a sub-booking add or remove on a container.
type SubChangeMsg struct {
	Component ComponentID
	Action    ChangeType
	Booking   BookingRef
	Sub       schedule.SubBooking
}

// Describe renders the sub change for logs.
func (m SubChangeMsg) Describe() string {
	return fmt.Sprintf(`action:%q booking:%q sub:%q`, m.Action, m.Booking.Label(), m.Sub.Title)
}

// SubAddRequestMsg asks the app to append a sub-booking to a container.
type SubAddRequestMsg struct {
	Component ComponentID
	Booking   BookingRef
	Sub       schedule.SubBooking
}

// Describe renders the request for logs.
func (m SubAddRequestMsg) Describe() string {
	return fmt.Sprintf(`booking:%q sub:%q`, m.Booking.Label(), m.Sub.Title)
}

// SubAddRequestCmd wraps SubAddRequestMsg in a tea.Cmd.
func SubAddRequestCmd(component ComponentID, booking BookingRef, sub schedule.SubBooking) tea.Cmd {
	return func() tea.Msg {
		return SubAddRequestMsg{Component: component, Booking: booking, Sub: sub}
	}
}

// SubRemoveRequestMsg asks the app to remove a sub-booking.
type SubRemoveRequestMsg struct {
	Component ComponentID
	Booking   BookingRef
	SubID     string
}

// Describe renders the request for logs.
func (m SubRemoveRequestMsg) Describe() string {
	return fmt.Sprintf(`booking:%q sub:%q`, m.Booking.Label(), m.SubID)
}

// SubRemoveRequestCmd wraps SubRemoveRequestMsg in a tea.Cmd.
func SubRemoveRequestCmd(component ComponentID, booking BookingRef, subID string) tea.Cmd {
	return func() tea.Msg {
		return SubRemoveRequestMsg{Component: component, Booking: booking, SubID: subID}
	}
}

// AssistSubmitMsg carries a natural-language request to the assistant.
type AssistSubmitMsg struct {
	Component ComponentID
	Prompt    string
}

// Describe renders the submit for logs.
func (m AssistSubmitMsg) Describe() string {
	return fmt.Sprintf(`prompt:%q`, m.Prompt)
}

// AssistSubmitCmd wraps AssistSubmitMsg in a tea.Cmd.
func AssistSubmitCmd(component ComponentID, prompt string) tea.Cmd {
	return func() tea.Msg {
		return AssistSubmitMsg{Component: component, Prompt: prompt}
	}
}

// AnalyzeRequestMsg asks the app to run a schedule analysis.
type AnalyzeRequestMsg struct {
	Component ComponentID
}

// Describe renders the request for logs.
func (m AnalyzeRequestMsg) Describe() string {
	return fmt.Sprintf(`component:%q`, m.Component)
}

// StatusMsg updates the footer status line.
type StatusMsg struct {
	Component ComponentID
	Text      string
	IsError   bool
}

// Describe renders the status for logs.
func (m StatusMsg) Describe() string {
	return fmt.Sprintf(`status:%q error:%v`, m.Text, m.IsError)
}

// StatusCmd wraps StatusMsg in a tea.Cmd.
func StatusCmd(component ComponentID, text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Component: component, Text: text, IsError: isError}
	}
}

// FocusMsg indicates a component just gained focus.
type FocusMsg struct {
	Component ComponentID
}

// Describe implements the logging helper.
func (m FocusMsg) Describe() string {
	return fmt.Sprintf(`component:%q state:"focus"`, m.Component)
}

// BlurMsg indicates a component just lost focus.
type BlurMsg struct {
	Component ComponentID
}

// Describe implements the logging helper.
func (m BlurMsg) Describe() string {
	return fmt.Sprintf(`component:%q state:"blur"`, m.Component)
}
