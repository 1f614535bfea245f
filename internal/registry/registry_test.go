package registry

import "testing"

type greeter interface{ Greet() string }

type hello struct{}

func (hello) Greet() string { return "hello" }

type hola struct{}

func (hola) Greet() string { return "hola" }

func TestRegistry(t *testing.T) {
	r := New[greeter]("greeter")
	r.Register("hola", "Spanish", func() greeter { return hola{} })
	r.Register("hello", "English", func() greeter { return hello{} })

	list := r.List()
	if len(list) != 2 || list[0].ID != "hello" || list[1].ID != "hola" {
		t.Fatalf("List() = %+v, want sorted by id", list)
	}
	if list[0].Title != "English" {
		t.Errorf("Title = %q", list[0].Title)
	}

	g, err := r.Create("hola")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if g.Greet() != "hola" {
		t.Errorf("Greet() = %q", g.Greet())
	}

	if !r.Exists("hello") || r.Exists("bonjour") {
		t.Error("Exists() mismatch")
	}
	if _, err := r.Create("bonjour"); err == nil {
		t.Error("Create() of unknown id should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	r := New[int]("number")
	r.Register("one", "One", func() int { return 1 })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	r.Register("one", "Uno", func() int { return 1 })
}
