package protocol

import "strconv"

// Status is a spamd response status code. The daemon reuses the sysexits
// codes; values outside the known set are retained as-is.
type Status int

const (
	StatusOK          Status = 0  // EX_OK
	StatusUsage       Status = 64 // EX_USAGE
	StatusDataErr     Status = 65 // EX_DATAERR
	StatusNoInput     Status = 66 // EX_NOINPUT
	StatusNoUser      Status = 67 // EX_NOUSER
	StatusNoHost      Status = 68 // EX_NOHOST
	StatusUnavailable Status = 69 // EX_UNAVAILABLE
	StatusSoftware    Status = 70 // EX_SOFTWARE
	StatusOSErr       Status = 71 // EX_OSERR
	StatusOSFile      Status = 72 // EX_OSFILE
	StatusCantCreate  Status = 73 // EX_CANTCREAT
	StatusIOErr       Status = 74 // EX_IOERR
	StatusTempFail    Status = 75 // EX_TEMPFAIL
	StatusProtocol    Status = 76 // EX_PROTOCOL
	StatusNoPerm      Status = 77 // EX_NOPERM
	StatusConfig      Status = 78 // EX_CONFIG
	StatusTimeout     Status = 79 // EX_TIMEOUT
)

var statusNames = map[Status]string{
	StatusOK:          "EX_OK",
	StatusUsage:       "EX_USAGE",
	StatusDataErr:     "EX_DATAERR",
	StatusNoInput:     "EX_NOINPUT",
	StatusNoUser:      "EX_NOUSER",
	StatusNoHost:      "EX_NOHOST",
	StatusUnavailable: "EX_UNAVAILABLE",
	StatusSoftware:    "EX_SOFTWARE",
	StatusOSErr:       "EX_OSERR",
	StatusOSFile:      "EX_OSFILE",
	StatusCantCreate:  "EX_CANTCREAT",
	StatusIOErr:       "EX_IOERR",
	StatusTempFail:    "EX_TEMPFAIL",
	StatusProtocol:    "EX_PROTOCOL",
	StatusNoPerm:      "EX_NOPERM",
	StatusConfig:      "EX_CONFIG",
	StatusTimeout:     "EX_TIMEOUT",
}

// Known reports whether s is one of the enumerated spamd codes.
func (s Status) Known() bool {
	_, ok := statusNames[s]
	return ok
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return strconv.Itoa(int(s))
}
