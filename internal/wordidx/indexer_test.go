package wordidx

import "testing"

func TestBuild_WholeWordSemantics(t *testing.T) {
	src := []byte(`package com.app;

public class OrderService {
    private UserService userService;
    // UserServiceFactory is a different identifier
    int userService2 = 0;
}`)
	idx := Build(src)

	if !idx.Has("UserService") {
		t.Fatalf("expected UserService to be indexed")
	}
	if !idx.Has("UserServiceFactory") {
		t.Fatalf("expected UserServiceFactory to be indexed")
	}
	if !idx.Has("userService2") {
		t.Fatalf("expected userService2 to be indexed")
	}
	if idx.Has("Order") {
		t.Fatalf("Order must not match inside OrderService")
	}
	if idx.Has("Service") {
		t.Fatalf("Service must not match inside UserService")
	}
}

func TestBuild_DelimitersAndUnicode(t *testing.T) {
	idx := Build([]byte(`x=foo_bar+übung;"quoted" 123abc`))

	for _, want := range []string{"foo_bar", "übung", "quoted"} {
		if !idx.Has(want) {
			t.Fatalf("expected %q to be indexed", want)
		}
	}
	// A digit cannot start an identifier; "123abc" splits at the digits.
	if idx.Has("123abc") {
		t.Fatalf("123abc must not be a token")
	}
	if !idx.Has("abc") {
		t.Fatalf("expected abc after the numeric delimiter")
	}
}

func TestBuild_Empty(t *testing.T) {
	if Build(nil).Has("anything") {
		t.Fatalf("empty index must not match")
	}
	var nilIdx *Index
	if nilIdx.Has("anything") {
		t.Fatalf("nil index must not match")
	}
}
