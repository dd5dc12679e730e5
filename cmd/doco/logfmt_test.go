package main

import (
	"bytes"
	"testing"
	"time"
)

func TestPrintLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected string
	}{
		{
			name:     "record with attrs",
			line:     `{"time":"2026-01-02T15:04:05.123Z","level":"INFO","msg":"Engine.Build","cmd":"docker build -t dev .","attempt":1}`,
			expected: "2026-01-02 15:04:05 INFO: Engine.Build attempt=1 cmd=\"docker build -t dev .\"\n",
		},
		{
			name:     "nested attrs are compact json",
			line:     `{"level":"ERROR","msg":"main","config":{"ImageName":"dev"},"args":["up"]}`,
			expected: "ERROR: main args=[\"up\"] config={\"ImageName\":\"dev\"}\n",
		},
		{
			name:     "not json",
			line:     "panic: something broke",
			expected: "panic: something broke\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := newEntryPrinter(&buf, false)
			p.loc = time.UTC
			if err := p.PrintLine(tt.line); err != nil {
				t.Fatal(err)
			}
			if buf.String() != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, buf.String())
			}
		})
	}
}

func TestPrintLineColor(t *testing.T) {
	var buf bytes.Buffer
	p := newEntryPrinter(&buf, true)
	if err := p.PrintLine(`{"level":"WARN","msg":"careful"}`); err != nil {
		t.Fatal(err)
	}
	want := colorizer(lightYellow, "WARN:") + " careful\n"
	if buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
}
