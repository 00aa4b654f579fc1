package skipenv

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestImageFromJSON(t *testing.T) {
	var obj interface{}
	frame := `[[[1, 2, 3], [4, 5, 6]], [[7, 8, 9], [10, 11, 12]], [[0, 0, 0], [255, 255, 255]]]`
	if err := json.Unmarshal([]byte(frame), &obj); err != nil {
		t.Fatal(err)
	}
	img, err := imageFromJSON(obj)
	if err != nil {
		t.Fatal(err)
	}
	expected := &Image{
		Width:  2,
		Height: 3,
		Depth:  3,
		Data:   []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 0, 0, 0, 255, 255, 255},
	}
	if !reflect.DeepEqual(img, expected) {
		t.Errorf("expected %v but got %v", expected, img)
	}
	if img.At(1, 1, 0) != 10 {
		t.Errorf("unexpected component: %f", img.At(1, 1, 0))
	}
}

func TestImageFromJSONBad(t *testing.T) {
	frames := []string{
		`[]`,
		`[1, 2, 3]`,
		`[[1, 2], [3, 4]]`,
		`[[[1, 2]], [[3, 4], [5, 6]]]`,
		`[[[1, 2], [3]]]`,
		`[[["a", "b"]]]`,
		`{"x": 1}`,
	}
	for _, frame := range frames {
		var obj interface{}
		if err := json.Unmarshal([]byte(frame), &obj); err != nil {
			t.Fatal(err)
		}
		if _, err := imageFromJSON(obj); !errors.Is(err, ErrShape) {
			t.Errorf("frame %s: expected shape error but got %v", frame, err)
		}
	}
}
