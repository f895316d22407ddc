package events

import (
	"testing"
	"time"

	"github.com/thorn14/bamboo/internal/ptyio"
)

func TestAddPaneForwardsDataThenClosed(t *testing.T) {
	source := make(chan ptyio.Event, 2)
	h := &Hub{out: make(chan Event, 8), quit: make(chan struct{})}

	h.AddPane(7, source)

	source <- ptyio.Event{Kind: ptyio.Data, Data: []byte("hi")}
	source <- ptyio.Event{Kind: ptyio.Closed}
	close(source)

	var got []Event
	deadline := time.After(time.Second)
	for len(got) < 2 {
		select {
		case ev := <-h.out:
			got = append(got, ev)
		case <-deadline:
			t.Fatal("timed out waiting for forwarded events")
		}
	}

	if got[0].Kind != KindPTY || got[0].PaneID != 7 || got[0].PTY.Kind != ptyio.Data {
		t.Errorf("first event = %+v, want Data tagged pane 7", got[0])
	}
	if got[1].PTY.Kind != ptyio.Closed {
		t.Errorf("second event = %+v, want Closed", got[1])
	}
}

func TestAddPaneStopsAfterClosed(t *testing.T) {
	source := make(chan ptyio.Event, 2)
	h := &Hub{out: make(chan Event, 8), quit: make(chan struct{})}

	h.AddPane(1, source)
	source <- ptyio.Event{Kind: ptyio.Closed}
	source <- ptyio.Event{Kind: ptyio.Data, Data: []byte("should not forward")}

	<-h.out // Closed

	select {
	case ev := <-h.out:
		t.Errorf("unexpected event after Closed: %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}
