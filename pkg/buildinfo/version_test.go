package buildinfo

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "v1.2.3"
	i := Get()
	if i.Version != "v1.2.3" || i.GoVersion == "" {
		t.Errorf("Get() = %+v", i)
	}
	if !strings.Contains(i.String(), "version: v1.2.3") {
		t.Errorf("String() = %q", i.String())
	}
	if !strings.Contains(Template(), "{{.Name}} version v1.2.3") {
		t.Errorf("Template() = %q", Template())
	}
}
