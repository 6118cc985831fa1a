package protocol

// Message is a parsed protocol message: either a *RawRequest or a
// *RawResponse. Each parse call yields a fresh, independently owned value.
type Message interface {
	message()
}

// RawRequest is a decoded request: method line, headers and optional body.
// A nil Body means the request carried no body at all, as opposed to an
// empty one.
type RawRequest struct {
	Method  string
	Version string
	Headers []Header
	Body    []byte
}

func (*RawRequest) message() {}

// RawResponse is a decoded response. StatusCode keeps unknown codes as
// their raw integer value; Message is the free text after the status.
type RawResponse struct {
	Version    string
	StatusCode Status
	Message    string
	Headers    []Header
	Body       []byte
}

func (*RawResponse) message() {}
