package ipc_test

import (
	"testing"

	"github.com/quietcore/fix15synth/ipc"
)

func TestPushPollFIFOOrder(t *testing.T) {
	c := ipc.NewChannel(8)
	for i := byte(0); i < 5; i++ {
		if !c.Push(ipc.NewEvent(ipc.NoteOnCmd, i, 100)) {
			t.Fatalf("push %d failed unexpectedly", i)
		}
	}
	for i := byte(0); i < 5; i++ {
		e, ok := c.Poll()
		if !ok {
			t.Fatalf("poll %d: expected an event", i)
		}
		if e.Data1() != i {
			t.Errorf("poll %d: data1 = %d, want %d", i, e.Data1(), i)
		}
	}
	if _, ok := c.Poll(); ok {
		t.Error("expected empty channel after draining")
	}
}

func TestEventPacking(t *testing.T) {
	e := ipc.NewEvent(ipc.ControlChangeCmd, 74, 63)
	if e.Command() != ipc.ControlChangeCmd {
		t.Errorf("command = %#x, want %#x", e.Command(), ipc.ControlChangeCmd)
	}
	if e.Data1() != 74 {
		t.Errorf("data1 = %d, want 74", e.Data1())
	}
	if e.Data2() != 63 {
		t.Errorf("data2 = %d, want 63", e.Data2())
	}
}

func TestChannelRoundsCapacityToPowerOfTwo(t *testing.T) {
	c := ipc.NewChannel(5)
	n := 0
	for c.Push(ipc.NewEvent(ipc.NoteOnCmd, 60, 1)) {
		n++
		if n > 16 {
			t.Fatal("channel capacity did not saturate as expected")
		}
	}
	if n != 8 {
		t.Errorf("capacity rounded to %d slots usable, want 8 (next pow2 >= 5)", n)
	}
}

func TestConcurrentProducerConsumer(t *testing.T) {
	c := ipc.NewChannel(1024)
	const n = 100000
	done := make(chan struct{})
	go func() {
		for i := 0; i < n; i++ {
			for !c.Push(ipc.NewEvent(ipc.NoteOnCmd, byte(i), byte(i>>8))) {
			}
		}
		close(done)
	}()
	received := 0
	for received < n {
		if _, ok := c.Poll(); ok {
			received++
		}
	}
	<-done
	if received != n {
		t.Fatalf("received %d events, want %d", received, n)
	}
}
