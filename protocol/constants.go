package protocol

// Protocol identifiers on the wire.
const (
	ProtoRequest  = "SPAMC" // request line protocol tag
	ProtoResponse = "SPAMD" // response line protocol tag

	// ProtocolVersion is the protocol version this package speaks.
	ProtocolVersion = "1.5"

	// CRLF terminates every protocol line.
	CRLF = "\r\n"
)

// Request method names.
const (
	MethodCheck        = "CHECK"         // check a message, return the verdict
	MethodHeaders      = "HEADERS"       // process and return modified headers
	MethodPing         = "PING"          // liveness probe
	MethodProcess      = "PROCESS"       // process and return the modified message
	MethodReportIfSpam = "REPORT_IFSPAM" // report only when spam
	MethodReport       = "REPORT"        // check and return a report
	MethodSkip         = "SKIP"          // ignore the message
	MethodSymbols      = "SYMBOLS"       // check and return matched rule names
	MethodTell         = "TELL"          // teach the daemon about a message
)

// methodNames lists every method in match order. REPORT_IFSPAM must come
// before REPORT so the longer alternative wins at a shared prefix.
var methodNames = []string{
	MethodCheck,
	MethodHeaders,
	MethodPing,
	MethodProcess,
	MethodReportIfSpam,
	MethodReport,
	MethodSkip,
	MethodSymbols,
	MethodTell,
}

// Known header names. Matching is exact and case-sensitive; anything else
// parses as a Generic header.
const (
	HeaderCompress      = "Compress"
	HeaderContentLength = "Content-length"
	HeaderDidRemove     = "DidRemove"
	HeaderDidSet        = "DidSet"
	HeaderMessageClass  = "Message-class"
	HeaderRemove        = "Remove"
	HeaderSet           = "Set"
	HeaderSpam          = "Spam"
	HeaderUser          = "User"
)

// CompressionZlib is the only compression token the protocol defines.
const CompressionZlib = "zlib"
