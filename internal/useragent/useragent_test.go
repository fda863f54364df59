package useragent

import (
	"runtime"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	got := Default("nokogiri", "1.2.3")
	if !strings.Contains(got, "SummalyBot/1.0") {
		t.Errorf("Default() = %q, missing SummalyBot/1.0 token", got)
	}
	if !strings.Contains(got, "nokogiri/1.2.3") {
		t.Errorf("Default() = %q, missing name/version token", got)
	}
	if !strings.Contains(got, runtime.GOOS) || !strings.Contains(got, runtime.GOARCH) {
		t.Errorf("Default() = %q, missing os/arch", got)
	}
}

func TestPresetsAreDistinct(t *testing.T) {
	if TwitterBot == Chrome {
		t.Error("TwitterBot and Chrome presets must differ")
	}
}
