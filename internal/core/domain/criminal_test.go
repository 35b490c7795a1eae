package domain

import (
	"errors"
	"testing"
)

func TestParseThreat(t *testing.T) {
	tests := []struct {
		in      string
		want    Threat
		wantErr bool
	}{
		{"Low", ThreatLow, false},
		{"medium", ThreatMedium, false},
		{" HIGH ", ThreatHigh, false},
		{"severe", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseThreat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseThreat(%q): expected error %v, got %v", tt.in, tt.wantErr, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseThreat(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestParseCaseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    CaseStatus
		wantErr bool
	}{
		{"Wanted", CaseWanted, false},
		{"captured", CaseCaptured, false},
		{"Under Investigation", CaseInvestigation, false},
		{"under-investigation", CaseInvestigation, false},
		{"UNDER_INVESTIGATION", CaseInvestigation, false},
		{"released", "", true},
	}
	for _, tt := range tests {
		got, err := ParseCaseStatus(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCaseStatus(%q): expected error %v, got %v", tt.in, tt.wantErr, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCaseStatus(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestCriminal_NormalizeDefaults(t *testing.T) {
	c := Criminal{Name: "N. Iyer", Crime: "Smuggling"}
	if err := c.Normalize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Threat != ThreatLow {
		t.Errorf("expected threat Low, got %q", c.Threat)
	}
	if c.Status != CaseInvestigation {
		t.Errorf("expected status %q, got %q", CaseInvestigation, c.Status)
	}

	bad := Criminal{Threat: "extreme", Status: "gone"}
	var verrs ValidationErrors
	if !errors.As(bad.Normalize(), &verrs) {
		t.Fatal("expected ValidationErrors")
	}
	for _, field := range []string{"threat", "status"} {
		if _, ok := verrs.Field(field); !ok {
			t.Errorf("expected error on %s, got %v", field, verrs)
		}
	}
}

func TestCriminal_Validate(t *testing.T) {
	valid := Criminal{Name: "N. Iyer", Crime: "Smuggling", Age: 41}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Criminal)
		field  string
	}{
		{"no name", func(c *Criminal) { c.Name = " " }, "name"},
		{"no crime", func(c *Criminal) { c.Crime = "" }, "crime"},
		{"negative age", func(c *Criminal) { c.Age = -1 }, "age"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			var verrs ValidationErrors
			if !errors.As(c.Validate(), &verrs) {
				t.Fatal("expected ValidationErrors")
			}
			if _, ok := verrs.Field(tt.field); !ok {
				t.Errorf("expected error on %s, got %v", tt.field, verrs)
			}
		})
	}
}
