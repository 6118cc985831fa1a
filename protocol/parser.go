// Package protocol implements the SPAMC/SPAMD wire protocol: a backtracking
// parser for requests and responses and an encoder for requests.
//
// The parser operates on a complete, already-buffered message. Grammar rules
// either consume a prefix of the remaining input anchored at the current
// position or fail without consuming; backtracking happens exclusively
// through the checkpoint combinator, which rewinds the cursor to its
// pre-rule offset on failure.
package protocol

import "strconv"

// Parse decodes a buffer holding either a request or a response. The
// request grammar is attempted first; on failure the cursor is rewound and
// the response grammar is attempted. A buffer matching neither yields a
// single terminal ParseError at offset 0.
func Parse(data []byte) (Message, error) {
	c := newCursor(data)

	if req, err := c.request(); err == nil {
		return req, nil
	}
	if resp, err := c.response(); err == nil {
		return resp, nil
	}

	return nil, &ParseError{Offset: 0, Message: "unable to parse request or response"}
}

// ParseRequest decodes a buffer that must hold a request.
func ParseRequest(data []byte) (*RawRequest, error) {
	return newCursor(data).request()
}

// ParseResponse decodes a buffer that must hold a response.
func ParseResponse(data []byte) (*RawResponse, error) {
	return newCursor(data).response()
}

// Shared rules.

func (c *cursor) whitespace() error {
	_, err := c.takeWhile1(isSpaceTab, "whitespace")
	return err
}

func (c *cursor) newline() error {
	return c.literal(CRLF)
}

// version consumes a digits.digits version token, for example "1.5".
func (c *cursor) version() (string, error) {
	major, err := c.takeWhile1(isDigit, "version")
	if err != nil {
		return "", err
	}
	if err := c.literal("."); err != nil {
		return "", err
	}
	minor, err := c.takeWhile1(isDigit, "version")
	if err != nil {
		return "", err
	}
	return string(major) + "." + string(minor), nil
}

// number consumes a decimal number with an optional fractional part.
func (c *cursor) number() (float64, error) {
	start := c.pos
	if _, err := c.takeWhile1(isDigit, "number"); err != nil {
		return 0, err
	}
	// The fractional part only applies when a digit follows the dot;
	// a bare trailing dot is left for the next rule.
	if rem := c.remainder(); len(rem) >= 2 && rem[0] == '.' && isDigit(rem[1]) {
		c.advance(1)
		if _, err := c.takeWhile1(isDigit, "number"); err != nil {
			return 0, err
		}
	}
	f, err := strconv.ParseFloat(string(c.buf[start:c.pos]), 64)
	if err != nil {
		return 0, &ParseError{Offset: start, Message: "invalid number"}
	}
	return f, nil
}

// Header value rules. Each consumes optional surrounding whitespace around
// its token body and produces the typed header payload.

func (c *cursor) compressValue() (Header, error) {
	return checkpoint(c, func() (Header, error) {
		skip(c.whitespace)
		if err := c.literal(CompressionZlib); err != nil {
			return nil, err
		}
		skip(c.whitespace)
		return Compress{}, nil
	})
}

func (c *cursor) contentLengthValue() (Header, error) {
	return checkpoint(c, func() (Header, error) {
		skip(c.whitespace)
		digits, err := c.takeWhile1(isDigit, "content length")
		if err != nil {
			return nil, err
		}
		skip(c.whitespace)
		length, err := strconv.Atoi(string(digits))
		if err != nil {
			return nil, c.errorf("invalid content length")
		}
		return ContentLength{Length: length}, nil
	})
}

func (c *cursor) messageClassValue() (Header, error) {
	return checkpoint(c, func() (Header, error) {
		skip(c.whitespace)
		class := ClassSpam
		if c.tryLiteral(string(ClassHam)) {
			class = ClassHam
		} else if err := c.literal(string(ClassSpam)); err != nil {
			return nil, err
		}
		skip(c.whitespace)
		return MessageClass{Class: class}, nil
	})
}

// actionToken consumes "local" or "remote" and folds it into flags.
func (c *cursor) actionToken(flags *ActionFlags) error {
	switch {
	case c.tryLiteral("local"):
		flags.Local = true
	case c.tryLiteral("remote"):
		flags.Remote = true
	default:
		return c.errorf("no match for action")
	}
	return nil
}

// setRemoveValue consumes the shared value grammar of the Set, Remove,
// DidSet and DidRemove headers: one action token, optionally followed by a
// comma and a second one, in either order.
func (c *cursor) setRemoveValue() (ActionFlags, error) {
	return checkpoint(c, func() (ActionFlags, error) {
		var flags ActionFlags

		skip(c.whitespace)
		if err := c.actionToken(&flags); err != nil {
			return flags, err
		}
		_, _ = checkpoint(c, func() (struct{}, error) {
			skip(c.whitespace)
			if err := c.literal(","); err != nil {
				return struct{}{}, err
			}
			skip(c.whitespace)
			return struct{}{}, c.actionToken(&flags)
		})
		skip(c.whitespace)

		return flags, nil
	})
}

func (c *cursor) spamValue() (Header, error) {
	return checkpoint(c, func() (Header, error) {
		var h Spam
		var err error

		skip(c.whitespace)
		if c.tryLiteral("True") {
			h.Value = true
		} else if err := c.literal("False"); err != nil {
			return nil, err
		}
		skip(c.whitespace)
		if err := c.literal(";"); err != nil {
			return nil, err
		}
		skip(c.whitespace)
		if h.Score, err = c.number(); err != nil {
			return nil, err
		}
		skip(c.whitespace)
		if err := c.literal("/"); err != nil {
			return nil, err
		}
		skip(c.whitespace)
		if h.Threshold, err = c.number(); err != nil {
			return nil, err
		}
		skip(c.whitespace)

		return h, nil
	})
}

func (c *cursor) userValue() (Header, error) {
	return checkpoint(c, func() (Header, error) {
		skip(c.whitespace)
		name, err := c.takeWhile1(isNameByte, "user name")
		if err != nil {
			return nil, err
		}
		skip(c.whitespace)
		return User{Username: string(name)}, nil
	})
}

// header parses one header line up to, not including, its CRLF: name,
// colon, then the value grammar selected by the exact name. Unknown names
// fall through to Generic with the rest of the line as raw text.
func (c *cursor) header() (Header, error) {
	return checkpoint(c, func() (Header, error) {
		skip(c.whitespace)
		name, err := c.takeWhile1(isNameByte, "header name")
		if err != nil {
			return nil, err
		}
		skip(c.whitespace)
		if err := c.literal(":"); err != nil {
			return nil, err
		}

		switch string(name) {
		case HeaderCompress:
			return c.compressValue()
		case HeaderContentLength:
			return c.contentLengthValue()
		case HeaderDidRemove:
			flags, err := c.setRemoveValue()
			if err != nil {
				return nil, err
			}
			return DidRemove{Action: flags}, nil
		case HeaderDidSet:
			flags, err := c.setRemoveValue()
			if err != nil {
				return nil, err
			}
			return DidSet{Action: flags}, nil
		case HeaderMessageClass:
			return c.messageClassValue()
		case HeaderRemove:
			flags, err := c.setRemoveValue()
			if err != nil {
				return nil, err
			}
			return Remove{Action: flags}, nil
		case HeaderSet:
			flags, err := c.setRemoveValue()
			if err != nil {
				return nil, err
			}
			return Set{Action: flags}, nil
		case HeaderSpam:
			return c.spamValue()
		case HeaderUser:
			return c.userValue()
		default:
			skip(c.whitespace)
			raw, err := c.takeUntilCRLF(1, "header value")
			if err != nil {
				return nil, err
			}
			return Generic{Key: string(name), Raw: string(raw)}, nil
		}
	})
}

// headerList collects header lines until the blank-line terminator. The
// loop is deliberately lenient: a header line that fails to parse ends
// collection instead of failing the message, so a malformed trailing header
// yields a silently truncated list.
func (c *cursor) headerList() []Header {
	var headers []Header
	for !c.hasPrefix(CRLF) {
		h, err := c.header()
		if err != nil {
			break
		}
		if err := c.newline(); err != nil {
			break
		}
		headers = append(headers, h)
	}
	return headers
}

// Request rules.

// method consumes a request method name followed by mandatory whitespace.
func (c *cursor) method() (string, error) {
	return checkpoint(c, func() (string, error) {
		for _, m := range methodNames {
			if c.tryLiteral(m) {
				if err := c.whitespace(); err != nil {
					return "", err
				}
				return m, nil
			}
		}
		return "", c.errorf("no match for method")
	})
}

func (c *cursor) request() (*RawRequest, error) {
	return checkpoint(c, func() (*RawRequest, error) {
		method, err := c.method()
		if err != nil {
			return nil, err
		}
		if err := c.literal(ProtoRequest); err != nil {
			return nil, err
		}
		if err := c.literal("/"); err != nil {
			return nil, err
		}
		version, err := c.version()
		if err != nil {
			return nil, err
		}
		if err := c.newline(); err != nil {
			return nil, err
		}

		req := &RawRequest{Method: method, Version: version}
		if !c.atEnd() {
			req.Headers = c.headerList()
		}
		if !c.atEnd() {
			if err := c.newline(); err != nil {
				return nil, err
			}
			req.Body = c.body()
		}
		return req, nil
	})
}

// Response rules.

// statusCode consumes a decimal status. Unknown codes keep their integer
// value.
func (c *cursor) statusCode() (Status, error) {
	return checkpoint(c, func() (Status, error) {
		digits, err := c.takeWhile1(isDigit, "status code")
		if err != nil {
			return 0, err
		}
		code, err := strconv.Atoi(string(digits))
		if err != nil {
			return 0, c.errorf("invalid status code")
		}
		return Status(code), nil
	})
}

// responseMessage consumes the free text up to the line terminator.
func (c *cursor) responseMessage() (string, error) {
	text, err := c.takeUntilCRLF(0, "message")
	if err != nil {
		return "", err
	}
	return string(text), nil
}

func (c *cursor) response() (*RawResponse, error) {
	return checkpoint(c, func() (*RawResponse, error) {
		if err := c.literal(ProtoResponse); err != nil {
			return nil, err
		}
		if err := c.literal("/"); err != nil {
			return nil, err
		}
		version, err := c.version()
		if err != nil {
			return nil, err
		}
		if err := c.whitespace(); err != nil {
			return nil, err
		}
		code, err := c.statusCode()
		if err != nil {
			return nil, err
		}
		if err := c.whitespace(); err != nil {
			return nil, err
		}
		message, err := c.responseMessage()
		if err != nil {
			return nil, err
		}
		if err := c.newline(); err != nil {
			return nil, err
		}

		resp := &RawResponse{Version: version, StatusCode: code, Message: message}
		if !c.atEnd() {
			resp.Headers = c.headerList()
		}
		if !c.atEnd() {
			if err := c.newline(); err != nil {
				return nil, err
			}
			resp.Body = c.body()
		}
		return resp, nil
	})
}

// body consumes all remaining bytes as an opaque body. A zero-length
// remainder means the message has no body at all, reported as nil.
func (c *cursor) body() []byte {
	rem := c.remainder()
	c.advance(len(rem))
	if len(rem) == 0 {
		return nil
	}
	return rem
}
