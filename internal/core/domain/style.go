package domain

// StyleToken names a presentation style without tying the domain to a
// renderer. Renderers map every token; the zero value is never produced.
type StyleToken int

const (
	StyleNeutral StyleToken = iota + 1
	StyleInfo
	StyleSuccess
	StyleWarning
	StyleCritical
	StyleMuted
)

func (t StyleToken) String() string {
	switch t {
	case StyleNeutral:
		return "neutral"
	case StyleInfo:
		return "info"
	case StyleSuccess:
		return "success"
	case StyleWarning:
		return "warning"
	case StyleCritical:
		return "critical"
	case StyleMuted:
		return "muted"
	}
	return "unknown"
}
