package plugin

import (
	"errors"
	"testing"

	"github.com/justyntemme/gainplug/pkg/framework/plugin"
)

type mockPlugin struct {
	info plugin.Info
}

func (p mockPlugin) GetInfo() plugin.Info       { return p.info }
func (p mockPlugin) CreateProcessor() Processor { return newMockProcessor() }

func withRegistered(t *testing.T, p Plugin) {
	t.Helper()
	prev := Registered()
	prevInfo := GetFactoryInfo()
	Register(p)
	SetLogger(quietLogger())
	t.Cleanup(func() {
		Register(prev)
		SetFactoryInfo(prevInfo)
		SetLogger(nil)
	})
}

func TestFactoryWithoutPlugin(t *testing.T) {
	withRegistered(t, nil)

	if CountClasses() != 0 {
		t.Errorf("CountClasses() = %d, want 0", CountClasses())
	}
	if _, err := GetClassInfo(0); !errors.Is(err, ErrNoPlugin) {
		t.Errorf("GetClassInfo() error = %v", err)
	}
	if _, err := CreateInstance([16]byte{}); !errors.Is(err, ErrNoPlugin) {
		t.Errorf("CreateInstance() error = %v", err)
	}
}

func TestFactoryClasses(t *testing.T) {
	withRegistered(t, mockPlugin{info: testInfo})
	SetFactoryInfo(FactoryInfo{Vendor: "test", URL: "https://example.com"})

	if got := GetFactoryInfo(); got.Vendor != "test" {
		t.Errorf("GetFactoryInfo() = %+v", got)
	}
	if CountClasses() != 1 {
		t.Fatalf("CountClasses() = %d, want 1", CountClasses())
	}

	ci, err := GetClassInfo(0)
	if err != nil {
		t.Fatalf("GetClassInfo(0) error = %v", err)
	}
	if ci.CID != testInfo.UID() || ci.Name != "mock" || ci.Category != "Audio Module Class" {
		t.Errorf("GetClassInfo(0) = %+v", ci)
	}
	if _, err := GetClassInfo(1); !errors.Is(err, ErrUnknownClass) {
		t.Errorf("GetClassInfo(1) error = %v", err)
	}
}

func TestCreateInstance(t *testing.T) {
	withRegistered(t, mockPlugin{info: testInfo})

	if _, err := CreateInstance([16]byte{1, 2, 3}); !errors.Is(err, ErrUnknownClass) {
		t.Errorf("wrong CID error = %v", err)
	}

	before := Instances()
	c, err := CreateInstance(testInfo.UID())
	if err != nil {
		t.Fatalf("CreateInstance() error = %v", err)
	}
	if c.ID() == 0 || Lookup(c.ID()) != c {
		t.Fatalf("instance %d not registered", c.ID())
	}
	if Instances() != before+1 {
		t.Errorf("Instances() = %d, want %d", Instances(), before+1)
	}

	other, err := CreateInstance(testInfo.UID())
	if err != nil {
		t.Fatal(err)
	}
	if other.ID() == c.ID() {
		t.Error("instances share an ID")
	}

	for _, inst := range []*Component{c, other} {
		if err := inst.Terminate(); err != nil {
			t.Errorf("Terminate() error = %v", err)
		}
		if Lookup(inst.ID()) != nil {
			t.Errorf("instance %d still registered", inst.ID())
		}
	}
	if Lookup(0) != nil {
		t.Error("Lookup(0) returned an instance")
	}
}

func TestCreateInstanceRejectsEmptyID(t *testing.T) {
	withRegistered(t, mockPlugin{info: plugin.Info{Name: "anonymous"}})

	if _, err := CreateInstance(plugin.Info{}.UID()); err == nil {
		t.Error("CreateInstance accepted a plugin without an ID")
	}
}
