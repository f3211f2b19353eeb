package monitor

import (
	"errors"
	"testing"
)

func readerWithOutput(out string, err error) *TemperatureReader {
	return &TemperatureReader{query: func() (string, error) {
		return out, err
	}}
}

func TestRead_PackageIDLine(t *testing.T) {
	out := `coretemp-isa-0000
Adapter: ISA adapter
Package id 0:  +45.0°C  (high = +80.0°C, crit = +100.0°C)
Core 0:        +42.0°C  (high = +80.0°C, crit = +100.0°C)
`
	v, ok := readerWithOutput(out, nil).Read()
	if !ok {
		t.Fatalf("expected a reading")
	}
	if v != 45.0 {
		t.Fatalf("temperature = %v, want 45.0", v)
	}
}

func TestRead_LabelPriorityOverLineOrder(t *testing.T) {
	// Core 0 appears first in the output but Package id is the
	// higher-priority label.
	out := `Core 0:        +42.0°C
Package id 0:  +47.5°C
`
	v, ok := readerWithOutput(out, nil).Read()
	if !ok || v != 47.5 {
		t.Fatalf("got (%v, %v), want (47.5, true)", v, ok)
	}
}

func TestRead_FallbackHighestValue(t *testing.T) {
	// No prioritized label matches this hardware's naming; the hottest
	// sensor wins.
	out := `acpitz-acpi-0
temp1:        +38.0°C
nvme-pci-0100
Composite:    +52.3°C
temp2:        +41.0°C
`
	v, ok := readerWithOutput(out, nil).Read()
	if !ok || v != 52.3 {
		t.Fatalf("got (%v, %v), want (52.3, true)", v, ok)
	}
}

func TestRead_ToolMissing(t *testing.T) {
	_, ok := readerWithOutput("", errors.New("exec: \"sensors\": executable file not found in $PATH")).Read()
	if ok {
		t.Fatalf("expected absent reading when the sensor tool is missing")
	}
}

func TestRead_NoParseableOutput(t *testing.T) {
	_, ok := readerWithOutput("no temperatures here\njust text\n", nil).Read()
	if ok {
		t.Fatalf("expected absent reading for unparseable output")
	}
}

func TestParseSensorsOutput_IntegerReading(t *testing.T) {
	v, ok := ParseSensorsOutput("CPU:  +51°C\n")
	if !ok || v != 51.0 {
		t.Fatalf("got (%v, %v), want (51, true)", v, ok)
	}
}
