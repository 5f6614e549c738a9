package nextdns

import (
	"bytes"
	"encoding/json"
)

// Settings is an open mapping of feature name to value, e.g. {"cryptojacking": true}.
type Settings map[string]any

// SettingsGroup names one of the settings objects embedded in a Profile.
type SettingsGroup string

const (
	SecurityGroup        SettingsGroup = "security"
	PrivacyGroup         SettingsGroup = "privacy"
	ParentalControlGroup SettingsGroup = "parentalControl"
)

// Profile is a DNS-filtering configuration owned by the upstream provider.
type Profile struct {
	ID              string   `json:"id,omitempty"`
	Fingerprint     string   `json:"fingerprint,omitempty"`
	Name            string   `json:"name,omitempty"`
	Security        Settings `json:"security,omitempty"`
	Privacy         Settings `json:"privacy,omitempty"`
	ParentalControl Settings `json:"parentalControl,omitempty"`
	Settings        Settings `json:"settings,omitempty"`

	// Extra holds upstream members the typed fields do not re-emit: unknown
	// keys and known keys sent with an empty value.
	Extra map[string]json.RawMessage `json:"-"`
}

type profileJSON Profile

func (p *Profile) UnmarshalJSON(data []byte) error {
	var aux profileJSON
	extra, err := decodeWithExtra(data, &aux)
	if err != nil {
		return err
	}
	*p = Profile(aux)
	p.Extra = extra
	return nil
}

func (p Profile) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(profileJSON(p), p.Extra)
}

// Group returns the settings object for g, or an empty mapping when the profile
// does not carry it.
func (p *Profile) Group(g SettingsGroup) Settings {
	if p == nil {
		return Settings{}
	}
	var s Settings
	switch g {
	case SecurityGroup:
		s = p.Security
	case PrivacyGroup:
		s = p.Privacy
	case ParentalControlGroup:
		s = p.ParentalControl
	}
	if s == nil {
		return Settings{}
	}
	return s
}

// ListKind selects the allowlist or the denylist of a profile.
type ListKind string

const (
	Allowlist ListKind = "allowlist"
	Denylist  ListKind = "denylist"
)

// ListEntry is one allowlist or denylist domain. The domain is its own identifier.
type ListEntry struct {
	ID     string `json:"id"`
	Active *bool  `json:"active,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

type listEntryJSON ListEntry

func (e *ListEntry) UnmarshalJSON(data []byte) error {
	var aux listEntryJSON
	extra, err := decodeWithExtra(data, &aux)
	if err != nil {
		return err
	}
	*e = ListEntry(aux)
	e.Extra = extra
	return nil
}

func (e ListEntry) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(listEntryJSON(e), e.Extra)
}

// AnalyticsSnapshot is the aggregated query status of a profile exactly as the
// upstream sent it. The shape is owned by the upstream and is not interpreted.
type AnalyticsSnapshot json.RawMessage

var emptyAnalytics = []byte(`{"queries":0,"blocked":0,"relayed":0,"domains":[]}`)

// MarshalJSON emits the upstream body unchanged; an unset snapshot encodes as
// EmptyAnalytics.
func (a AnalyticsSnapshot) MarshalJSON() ([]byte, error) {
	if len(a) == 0 {
		return emptyAnalytics, nil
	}
	return a, nil
}

func (a *AnalyticsSnapshot) UnmarshalJSON(data []byte) error {
	*a = append((*a)[:0], data...)
	return nil
}

// EmptyAnalytics is the snapshot served when the upstream cannot be read.
func EmptyAnalytics() AnalyticsSnapshot {
	return AnalyticsSnapshot(bytes.Clone(emptyAnalytics))
}

// LogStatus is the resolution outcome of a logged query.
type LogStatus int

const (
	LogStatusBlocked LogStatus = 0
	LogStatusAllowed LogStatus = 1
	LogStatusRelayed LogStatus = 2
)

func (s LogStatus) String() string {
	switch s {
	case LogStatusBlocked:
		return "blocked"
	case LogStatusAllowed:
		return "allowed"
	case LogStatusRelayed:
		return "relayed"
	default:
		return "unknown"
	}
}

// LogEntry is one query log line. Status is nil when the upstream omits it.
type LogEntry struct {
	Timestamp string     `json:"timestamp,omitempty"`
	Domain    string     `json:"domain,omitempty"`
	Type      string     `json:"type,omitempty"`
	Status    *LogStatus `json:"status,omitempty"`
	ClientIP  string     `json:"clientIp,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

type logEntryJSON LogEntry

func (l *LogEntry) UnmarshalJSON(data []byte) error {
	var aux logEntryJSON
	extra, err := decodeWithExtra(data, &aux)
	if err != nil {
		return err
	}
	*l = LogEntry(aux)
	l.Extra = extra
	return nil
}

func (l LogEntry) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(logEntryJSON(l), l.Extra)
}
