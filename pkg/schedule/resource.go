package schedule

// Resource is a bookable lane on the timeline: a clinician, a room, a
// machine. Resources are immutable for the lifetime of a session and
// their list order defines vertical lane order.
type Resource struct {
	ID       int    `json:"id"`
	Label    string `json:"label"`
	Category string `json:"category,omitempty"`
	Style    string `json:"style,omitempty"`
}
