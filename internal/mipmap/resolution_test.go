package mipmap

import "testing"

func TestResolutions(t *testing.T) {
	expected := []Resolution{
		{"mipmap-mdpi", 48, 48},
		{"mipmap-hdpi", 72, 72},
		{"mipmap-xhdpi", 96, 96},
		{"mipmap-xxhdpi", 144, 144},
		{"mipmap-xxxhdpi", 192, 192},
	}

	got := Resolutions()
	if len(got) != len(expected) {
		t.Fatalf("Expected %d resolutions, got %d", len(expected), len(got))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Expected resolution %d to be %+v, got %+v", i, expected[i], got[i])
		}
	}
}

func TestResolutions_ReturnsCopy(t *testing.T) {
	first := Resolutions()
	first[0].Width = 1

	if Resolutions()[0].Width != 48 {
		t.Error("Expected modifying the returned slice not to change the table")
	}
}
