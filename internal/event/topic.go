package event

// Topic names a channel on the broker
type Topic string

const (
	// FetchStarted carries a *model.FetchTask that just went in flight
	FetchStarted Topic = "fetch.started"
	// FetchCompleted carries a *model.FetchTask whose reference was appended
	FetchCompleted Topic = "fetch.completed"
	// FetchFailed carries a *model.FetchTask whose request failed
	FetchFailed Topic = "fetch.failed"
)

// String returns the topic name
func (t Topic) String() string {
	return string(t)
}
