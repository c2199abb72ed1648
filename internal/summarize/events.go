package summarize

// Stage identifies where in the pipeline a progress event was emitted.
type Stage string

const (
	StageAnalyzing  Stage = "analyzing"
	StageProcessing Stage = "processing"
	StageFinalizing Stage = "finalizing"
	StageSaving     Stage = "saving"
)

// EventType tags the variant of a progress stream event.
type EventType string

const (
	EventProgress EventType = "progress"
	EventComplete EventType = "complete"
	EventError    EventType = "error"
)

// Event is one line of the NDJSON progress stream. Exactly one terminal
// event (complete or error) is emitted per run.
type Event struct {
	Type EventType `json:"type"`

	// progress fields
	CurrentChunk int    `json:"currentChunk,omitempty"`
	TotalChunks  int    `json:"totalChunks,omitempty"`
	Stage        Stage  `json:"stage,omitempty"`
	Message      string `json:"message,omitempty"`

	// complete fields
	Summary string `json:"summary,omitempty"`
	Source  string `json:"source,omitempty"`
	Warning string `json:"warning,omitempty"`

	// error fields
	Detail string `json:"detail,omitempty"`
}

func progressEvent(stage Stage, current, total int, message string) Event {
	return Event{
		Type:         EventProgress,
		CurrentChunk: current,
		TotalChunks:  total,
		Stage:        stage,
		Message:      message,
	}
}

func completeEvent(summary, source, warning string) Event {
	return Event{
		Type:    EventComplete,
		Summary: summary,
		Source:  source,
		Warning: warning,
	}
}

func errorEvent(message, detail string) Event {
	return Event{
		Type:    EventError,
		Message: message,
		Detail:  detail,
	}
}

// Terminal reports whether the event ends the stream.
func (e Event) Terminal() bool {
	return e.Type == EventComplete || e.Type == EventError
}
