package extractor

// FatalError reports that extraction could not establish any of the four root
// containers. Stage-local failures never surface as FatalError; they degrade
// the affected slot and leave a diagnostic on the result instead.
type FatalError struct {
	Message string
	Cause   error
}

func (e *FatalError) Error() string {
	if e.Cause != nil {
		return "extractor: " + e.Message + ": " + e.Cause.Error()
	}
	return "extractor: " + e.Message
}

func (e *FatalError) Unwrap() error {
	return e.Cause
}
