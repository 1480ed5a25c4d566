package core

import (
	"reflect"
	"testing"
)

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if !f.Empty() {
		t.Fatal("zero frame should be empty")
	}

	f.Set(ActionHardDrop)
	f.Set(ActionLeft)
	f.Set(ActionNone)

	if !f.Has(ActionLeft) || !f.Has(ActionHardDrop) {
		t.Error("set actions not reported")
	}
	if f.Has(ActionRight) || f.Has(ActionNone) {
		t.Error("unset actions reported")
	}
	if got, want := f.Actions(), []Action{ActionLeft, ActionHardDrop}; !reflect.DeepEqual(got, want) {
		t.Errorf("Actions() = %v, expected %v", got, want)
	}

	f.Clear()
	if !f.Empty() {
		t.Error("Clear should empty the frame")
	}
}

func TestNewInputFrame(t *testing.T) {
	f := NewInputFrame(ActionRotateCW, ActionPause)
	if !f.Has(ActionRotateCW) || !f.Has(ActionPause) || f.Has(ActionQuit) {
		t.Errorf("unexpected frame %v", f.Actions())
	}
}

func TestActionString(t *testing.T) {
	if ActionRotateCCW.String() != "RotateCCW" {
		t.Errorf("got %q", ActionRotateCCW.String())
	}
	if Action(200).String() != "Unknown" {
		t.Error("out-of-range action should be Unknown")
	}
}
