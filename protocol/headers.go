package protocol

import "strconv"

// Header is one named, typed field of protocol metadata attached to a
// request or response. The set of variants is closed: values are created by
// the header grammar (or by a client building a request) and are immutable
// once constructed.
type Header interface {
	// Name returns the header name as it appears on the wire.
	Name() string

	// wireValue renders the value portion of the header line.
	wireValue() string
}

// ActionFlags says where an action applies. A valid action token sets at
// least one of the two.
type ActionFlags struct {
	Local  bool
	Remote bool
}

func (a ActionFlags) wireValue() string {
	switch {
	case a.Local && a.Remote:
		return "local, remote"
	case a.Remote:
		return "remote"
	default:
		return "local"
	}
}

// MessageClassOption is the classification outcome carried by the
// Message-class header.
type MessageClassOption string

const (
	ClassHam  MessageClassOption = "ham"
	ClassSpam MessageClassOption = "spam"
)

// Compress asks for zlib compression of the body.
type Compress struct{}

func (Compress) Name() string      { return HeaderCompress }
func (Compress) wireValue() string { return CompressionZlib }

// ContentLength carries the body length in bytes.
type ContentLength struct {
	Length int
}

func (h ContentLength) Name() string      { return HeaderContentLength }
func (h ContentLength) wireValue() string { return strconv.Itoa(h.Length) }

// MessageClass classifies the message as ham or spam.
type MessageClass struct {
	Class MessageClassOption
}

func (h MessageClass) Name() string      { return HeaderMessageClass }
func (h MessageClass) wireValue() string { return string(h.Class) }

// Set asks the daemon to set the message class in the given databases.
type Set struct {
	Action ActionFlags
}

func (h Set) Name() string      { return HeaderSet }
func (h Set) wireValue() string { return h.Action.wireValue() }

// Remove asks the daemon to forget the message class in the given databases.
type Remove struct {
	Action ActionFlags
}

func (h Remove) Name() string      { return HeaderRemove }
func (h Remove) wireValue() string { return h.Action.wireValue() }

// DidSet reports which databases the daemon updated.
type DidSet struct {
	Action ActionFlags
}

func (h DidSet) Name() string      { return HeaderDidSet }
func (h DidSet) wireValue() string { return h.Action.wireValue() }

// DidRemove reports which databases the daemon forgot the message in.
type DidRemove struct {
	Action ActionFlags
}

func (h DidRemove) Name() string      { return HeaderDidRemove }
func (h DidRemove) wireValue() string { return h.Action.wireValue() }

// Spam is the verdict header: whether the message is spam, its score and
// the threshold it was judged against.
type Spam struct {
	Value     bool
	Score     float64
	Threshold float64
}

func (h Spam) Name() string { return HeaderSpam }

func (h Spam) wireValue() string {
	value := "False"
	if h.Value {
		value = "True"
	}
	return value + " ; " + formatScore(h.Score) + " / " + formatScore(h.Threshold)
}

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// User names the account whose settings and databases apply.
type User struct {
	Username string
}

func (h User) Name() string      { return HeaderUser }
func (h User) wireValue() string { return h.Username }

// Generic is the fallback for header names outside the known set. The raw
// value is kept as uninterpreted text.
type Generic struct {
	Key string
	Raw string
}

func (h Generic) Name() string      { return h.Key }
func (h Generic) wireValue() string { return h.Raw }
