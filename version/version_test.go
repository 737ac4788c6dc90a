package version

import (
	"strings"
	"testing"
)

func TestGetVersionInfo_Defaults(t *testing.T) {
	info := GetVersionInfo()
	if info.Version != "dev" {
		t.Errorf("expected dev version without ldflags, got %s", info.Version)
	}
}

func TestGetShortVersion_StartsWithVersion(t *testing.T) {
	short := GetShortVersion()
	if !strings.HasPrefix(short, "dev") {
		t.Errorf("expected short version to start with dev, got %s", short)
	}
}
