package protocol

import "bytes"

// EncodeRequest serializes a request to wire bytes: the method line, one
// line per header, the blank-line terminator, then the body when present.
func EncodeRequest(req *RawRequest) []byte {
	var buf bytes.Buffer

	version := req.Version
	if version == "" {
		version = ProtocolVersion
	}

	buf.WriteString(req.Method)
	buf.WriteByte(' ')
	buf.WriteString(ProtoRequest)
	buf.WriteByte('/')
	buf.WriteString(version)
	buf.WriteString(CRLF)

	for _, h := range req.Headers {
		buf.WriteString(h.Name())
		buf.WriteString(": ")
		buf.WriteString(h.wireValue())
		buf.WriteString(CRLF)
	}

	buf.WriteString(CRLF)
	buf.Write(req.Body)
	return buf.Bytes()
}
