package common

import (
	"errors"
	"testing"
)

func TestOutputFmt_String(t *testing.T) {
	tests := []struct {
		fmt  OutputFmt
		want string
	}{
		{OutputFmtTable, "table"},
		{OutputFmtJson, "json"},
		{OutputFmtCsv, "csv"},
		{OutputFmtHtml, "html"},
		{OutputFmtMd, "md"},
		{OutputFmtTemplate, "template"},
		{OutputFmt(99), "OutputFmt(99)"},
	}
	for _, tt := range tests {
		if got := tt.fmt.String(); got != tt.want {
			t.Errorf("OutputFmt.String() = %v, want %v", got, tt.want)
		}
	}
}

func TestParseOutputFmt(t *testing.T) {
	for _, name := range OutputFmtNames() {
		f, err := ParseOutputFmt(name)
		if err != nil {
			t.Errorf("ParseOutputFmt(%q) error = %v", name, err)
			continue
		}
		if f.String() != name {
			t.Errorf("ParseOutputFmt(%q) = %v", name, f)
		}
	}
	if _, err := ParseOutputFmt("xml"); !errors.Is(err, ErrInvalidOutputFmt) {
		t.Errorf("ParseOutputFmt(xml) error = %v", err)
	}
}

func TestOutputFmt_UnmarshalText(t *testing.T) {
	var f OutputFmt
	if err := f.UnmarshalText([]byte("md")); err != nil || f != OutputFmtMd {
		t.Errorf("UnmarshalText(md) = %v, %v", f, err)
	}
	if err := f.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("expected error for bogus format")
	}
}

func TestOutputFmt_Ext(t *testing.T) {
	if OutputFmtJson.Ext() != ".json" || OutputFmtHtml.Ext() != ".html" {
		t.Error("unexpected extensions")
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid format")
		}
	}()
	OutputFmt(42).Ext()
}

func TestTableStyle(t *testing.T) {
	if !TableStyleRounded.IsValid() || TableStyle(7).IsValid() {
		t.Error("unexpected IsValid() result")
	}
	if MustParseTableStyle("compact") != TableStyleCompact {
		t.Error("MustParseTableStyle(compact) mismatch")
	}
	if len(TableStyleNames()) != 3 {
		t.Errorf("TableStyleNames() = %v", TableStyleNames())
	}
}
