package list

import "testing"

func TestItemSetTextSignals(t *testing.T) {
	var it Item
	changed := 0
	it.Connect(Signals{Changed: func() { changed++ }})

	it.SetText("a")
	it.SetText("a")
	if changed != 1 {
		t.Fatalf("expected 1 Changed for one real change, got %d", changed)
	}

	it.Block()
	it.SetText("b")
	if changed != 1 {
		t.Fatalf("blocked item signalled Changed")
	}
	it.Unblock()

	it.SetTextQuiet("c")
	if changed != 1 || it.Text() != "c" {
		t.Fatalf("quiet set: changed=%d text=%q", changed, it.Text())
	}
	if it.Blocked() {
		t.Fatalf("SetTextQuiet left the item blocked")
	}
}

func TestItemLenCountsCharacters(t *testing.T) {
	var it Item
	it.SetTextQuiet("héllo")
	if it.Len() != 5 {
		t.Fatalf("expected 5 characters, got %d", it.Len())
	}
}

func TestItemForwardsButtons(t *testing.T) {
	var it Item
	var got []string
	it.Connect(Signals{
		Activate: func() { got = append(got, "activate") },
		Insert:   func() { got = append(got, "insert") },
		Remove:   func() { got = append(got, "remove") },
	})
	it.Activate()
	it.PressInsert()
	it.PressRemove()

	if len(got) != 3 || got[0] != "activate" || got[1] != "insert" || got[2] != "remove" {
		t.Fatalf("unexpected signals %v", got)
	}

	var unwired Item
	unwired.Activate()
	unwired.PressInsert()
	unwired.PressRemove()
}
