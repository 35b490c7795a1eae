package domain

import (
	"fmt"
	"strings"
)

type Threat string

const (
	ThreatLow    Threat = "Low"
	ThreatMedium Threat = "Medium"
	ThreatHigh   Threat = "High"
)

var threats = []Threat{ThreatLow, ThreatMedium, ThreatHigh}

func ParseThreat(s string) (Threat, error) {
	v := strings.TrimSpace(s)
	for _, t := range threats {
		if strings.EqualFold(v, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown threat level %q: want Low, Medium or High", s)
}

func (t Threat) Badge() StyleToken {
	switch t {
	case ThreatLow:
		return StyleInfo
	case ThreatMedium:
		return StyleWarning
	case ThreatHigh:
		return StyleCritical
	}
	return StyleMuted
}

// CaseStatus is where a criminal record stands. The wire form is the
// display text.
type CaseStatus string

const (
	CaseWanted        CaseStatus = "Wanted"
	CaseCaptured      CaseStatus = "Captured"
	CaseInvestigation CaseStatus = "Under Investigation"
)

var caseStatuses = []CaseStatus{CaseWanted, CaseCaptured, CaseInvestigation}

// ParseCaseStatus ignores case and accepts "under-investigation" and
// "under_investigation" for the multi-word status.
func ParseCaseStatus(s string) (CaseStatus, error) {
	v := strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(s))
	for _, c := range caseStatuses {
		if strings.EqualFold(v, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown case status %q: want Wanted, Captured or Under Investigation", s)
}

func (c CaseStatus) Badge() StyleToken {
	switch c {
	case CaseWanted:
		return StyleCritical
	case CaseCaptured:
		return StyleSuccess
	case CaseInvestigation:
		return StyleWarning
	}
	return StyleMuted
}

// Criminal is one record of the criminal-records module. Photo is the URL
// or inline data the backend stored.
type Criminal struct {
	ID       int64      `json:"id,omitempty"`
	Name     string     `json:"name"`
	Age      int        `json:"age"`
	Crime    string     `json:"crime"`
	Threat   Threat     `json:"threat"`
	LastSeen string     `json:"lastSeen"`
	Status   CaseStatus `json:"status"`
	Record   string     `json:"record"`
	Photo    string     `json:"photo,omitempty"`
}

// CriminalUpload is a record plus the optional photo file sent with it.
type CriminalUpload struct {
	Criminal  Criminal
	PhotoName string
	Photo     []byte
}

// Normalize fills the threat and status defaults of a new record and
// brings both to their canonical form.
func (c *Criminal) Normalize() error {
	var errs ValidationErrors
	if strings.TrimSpace(string(c.Threat)) == "" {
		c.Threat = ThreatLow
	} else if t, err := ParseThreat(string(c.Threat)); err != nil {
		errs = append(errs, FieldError{Field: "threat", Message: err.Error()})
	} else {
		c.Threat = t
	}
	if strings.TrimSpace(string(c.Status)) == "" {
		c.Status = CaseInvestigation
	} else if st, err := ParseCaseStatus(string(c.Status)); err != nil {
		errs = append(errs, FieldError{Field: "status", Message: err.Error()})
	} else {
		c.Status = st
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Validate checks a record before it is sent. Name and crime are
// required; age 0 means unknown.
func (c Criminal) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(c.Crime) == "" {
		errs = append(errs, FieldError{Field: "crime", Message: "crime is required"})
	}
	if c.Age < 0 {
		errs = append(errs, FieldError{Field: "age", Message: "age cannot be negative"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
