package ws

const (
	HistoryRecorded = "history.recorded"
	StreamReady     = "stream.ready"

	ErrorEvent = "error"
)
