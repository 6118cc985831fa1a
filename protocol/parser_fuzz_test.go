package protocol

import "testing"

func FuzzParse(f *testing.F) {
	f.Add([]byte("CHECK SPAMC/1.5\r\n\r\n"))
	f.Add([]byte("REPORT_IFSPAM SPAMC/1.5\r\n\r\n"))
	f.Add([]byte("PROCESS SPAMC/1.5\r\nContent-length: 5\r\n\r\nhello"))
	f.Add([]byte("TELL SPAMC/1.5\r\nMessage-class: spam\r\nSet: local, remote\r\n\r\nbody"))
	f.Add([]byte("SPAMD/1.1 0 PONG\r\n\r\n"))
	f.Add([]byte("SPAMD/1.1 0 EX_OK\r\nSpam: True ; 15.0 / 5.0\r\n\r\n"))
	f.Add([]byte("SPAMD/1.1 76 Bad header line\r\nX-Foo: bar\r\n\r\n"))
	f.Add([]byte("garbage"))
	f.Add([]byte(""))

	f.Fuzz(func(t *testing.T, input []byte) {
		msg, err := Parse(input)

		// Exactly one of result and error.
		if err == nil && msg == nil {
			t.Errorf("nil message without error")
		}
		if err != nil {
			if msg != nil {
				t.Errorf("message alongside error")
			}
			perr, ok := err.(*ParseError)
			if !ok {
				t.Fatalf("error is not a ParseError: %v", err)
			}
			if perr.Offset != 0 {
				t.Errorf("terminal failure offset = %d, want 0", perr.Offset)
			}
			return
		}

		switch m := msg.(type) {
		case *RawRequest:
			if m.Method == "" || m.Version == "" {
				t.Errorf("request with empty method or version: %+v", m)
			}
		case *RawResponse:
			if m.Version == "" {
				t.Errorf("response with empty version: %+v", m)
			}
		default:
			t.Errorf("unexpected message type %T", msg)
		}
	})
}
