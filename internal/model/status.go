package model

// FetchStatus represents the status of a single image fetch
type FetchStatus string

const (
	// FetchStatusPending means the fetch was created but no request was sent yet
	FetchStatusPending FetchStatus = "Pending"

	// FetchStatusLoading means the request is in flight
	FetchStatusLoading FetchStatus = "Loading"

	// FetchStatusCompleted means a reference was received and appended
	FetchStatusCompleted FetchStatus = "Completed"

	// FetchStatusError means the fetch failed and nothing was appended
	FetchStatusError FetchStatus = "Error"
)

// String returns the string representation of FetchStatus
func (fs FetchStatus) String() string {
	return string(fs)
}

// IsActive returns true if the fetch has not resolved yet
func (fs FetchStatus) IsActive() bool {
	return fs == FetchStatusPending || fs == FetchStatusLoading
}

// IsFinished returns true if the fetch resolved (completed or error)
func (fs FetchStatus) IsFinished() bool {
	return fs == FetchStatusCompleted || fs == FetchStatusError
}
