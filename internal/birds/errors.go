package birds

import "fmt"

// RequestError reports a response that arrived with a non-2xx status.
type RequestError struct {
	Status     int
	StatusText string
	Body       string
}

func (e *RequestError) Error() string {
	detail := e.Body
	if detail == "" {
		detail = e.StatusText
	}
	return fmt.Sprintf("Request failed (%d): %s", e.Status, detail)
}

// TransportError reports a request that never produced a usable response:
// the round trip failed or the body was not valid JSON. Its message is the
// cause's message; Op names the step that failed.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
