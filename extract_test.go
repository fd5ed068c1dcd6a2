package goiq_test

import (
	"errors"
	"math"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/reoring/goiq"
	"github.com/reoring/goiq/shape"
)

type Dog struct {
	Name string `json:"name"`
	Ears uint8  `json:"ears"`
}

type Car struct {
	Engine     string `json:"engine"`
	Passengers []Dog  `json:"passengers"`
	Driver     Dog    `json:"driver"`
}

func sampleCar() Car {
	return Car{
		Engine:     "V8",
		Passengers: []Dog{{Name: "Roverandom", Ears: 1}, {Name: "Laïka", Ears: 2}},
		Driver:     Dog{Name: "Rex", Ears: 2},
	}
}

type Realm int

const (
	RealmReal Realm = iota
	RealmFantasy
)

func (r Realm) EmitShape(v shape.Visitor) error {
	name := "real"
	if r == RealmFantasy {
		name = "fantasy"
	}
	return shape.UnitVariant{Type: "Realm", Name: name}.EmitShape(v)
}

type World struct {
	Targets map[string][3]uint32 `json:"targets"`
	Masters map[Realm]Dog        `json:"masters"`
}

func sampleWorld() World {
	return World{
		Targets: map[string][3]uint32{"Earth": {1, 2, 3}, "Moon": {4, 5, 6}},
		Masters: map[Realm]Dog{
			RealmFantasy: {Name: "Roverandom", Ears: 1},
			RealmReal:    {Name: "Laïka", Ears: 2},
		},
	}
}

func TestExtract_StructsAndSlices(t *testing.T) {
	car := sampleCar()
	cases := []struct {
		name   string
		path   string
		format goiq.Format
		want   string
		found  bool
	}{
		{"primitive int", "driver.ears", goiq.FormatPrimitive, "2", true},
		{"primitive string", "driver.name", goiq.FormatPrimitive, "Rex", true},
		{"primitive non ascii", "passengers.1.name", goiq.FormatPrimitive, "Laïka", true},
		{"primitive on record", "passengers.1", goiq.FormatPrimitive, "", false},
		{"json wrong path", "wrong.path", goiq.FormatJSON, "", false},
		{"json int", "driver.ears", goiq.FormatJSON, "2", true},
		{"json string", "driver.name", goiq.FormatJSON, `"Rex"`, true},
		{"json record", "passengers.0", goiq.FormatJSON, `{"name":"Roverandom","ears":1}`, true},
		{"json out of range", "passengers.3", goiq.FormatJSON, "", false},
		{"index not a number", "passengers.first", goiq.FormatJSON, "", false},
		{"negative index", "passengers.-1", goiq.FormatJSON, "", false},
		{"descend into scalar", "engine.0", goiq.FormatJSON, "", false},
		{"too deep", "driver.name.first", goiq.FormatPrimitive, "", false},
		{"pretty", "driver", goiq.FormatJSONPretty, "{\n  \"name\": \"Rex\",\n  \"ears\": 2\n}", true},
		{"yaml", "driver", goiq.FormatYAML, "name: Rex\nears: 2\n", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok, err := goiq.ExtractStringChecked(car, tc.path, tc.format)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tc.found || got != tc.want {
				t.Fatalf("got (%q, %v) want (%q, %v)", got, ok, tc.want, tc.found)
			}
		})
	}
}

func TestExtract_PathForms(t *testing.T) {
	car := sampleCar()
	type dotted string
	type tokens []string
	want := "1"
	check := func(got string, ok bool) {
		t.Helper()
		if !ok || got != want {
			t.Fatalf("got (%q, %v)", got, ok)
		}
	}
	check(goiq.ExtractPrimitive(car, "passengers.0.ears"))
	check(goiq.ExtractPrimitive(car, []string{"passengers", "0", "ears"}))
	check(goiq.ExtractPrimitive(car, goiq.PathOf("passengers", "0", "ears")))
	check(goiq.ExtractPrimitive(car, goiq.PathOf().Field("passengers").Index(0).Field("ears")))
	check(goiq.ExtractPrimitive(car, dotted("passengers.0.ears")))
	check(goiq.ExtractPrimitive(car, tokens{"passengers", "0", "ears"}))
}

func TestExtract_EmptyPath(t *testing.T) {
	car := sampleCar()
	if s, ok := goiq.ExtractJSON(car, goiq.PathOf()); ok {
		t.Fatalf("zero-token path must not resolve, got %q", s)
	}
	if s, ok := goiq.ExtractJSON(car, ""); ok {
		t.Fatalf("empty string path must not resolve on a struct, got %q", s)
	}
	// "" is one empty token, which a mapping can hold as a key
	if s, ok := goiq.ExtractPrimitive(map[string]int{"": 7}, ""); !ok || s != "7" {
		t.Fatalf("got (%q, %v)", s, ok)
	}
}

func TestExtract_MapsEnumsAndArrays(t *testing.T) {
	world := sampleWorld()
	cases := []struct {
		path   string
		format goiq.Format
		want   string
		found  bool
	}{
		{"targets.Earth.1", goiq.FormatPrimitive, "2", true},
		{"targets.Moon", goiq.FormatJSON, "[4,5,6]", true},
		{"targets.Moon.2", goiq.FormatPrimitive, "6", true},
		{"targets.Moon.3", goiq.FormatPrimitive, "", false},
		{"targets.Mars", goiq.FormatPrimitive, "", false},
		{"masters.fantasy.name", goiq.FormatPrimitive, "Roverandom", true},
		{"masters.real.ears", goiq.FormatPrimitive, "2", true},
		// keys are compared without their JSON quotes, with or without them in the token
		{`masters."fantasy".name`, goiq.FormatPrimitive, "Roverandom", true},
		{"masters", goiq.FormatJSON, `{"real":{"name":"Laïka","ears":2},"fantasy":{"name":"Roverandom","ears":1}}`, true},
	}
	for _, tc := range cases {
		got, ok := goiq.ExtractString(world, tc.path, tc.format)
		if ok != tc.found || got != tc.want {
			t.Fatalf("%s: got (%q, %v) want (%q, %v)", tc.path, got, ok, tc.want, tc.found)
		}
	}
}

func TestExtract_NumericMapKeys(t *testing.T) {
	m := map[int]string{1: "one", 10: "ten"}
	if s, ok := goiq.ExtractPrimitive(m, "10"); !ok || s != "ten" {
		t.Fatalf("got (%q, %v)", s, ok)
	}
	// composite keys match only through their compact JSON text
	o := shape.Ordered{{Key: shape.Tuple{1, 2}, Value: "pair"}}
	if s, ok := goiq.ExtractPrimitive(o, "[1,2]"); !ok || s != "pair" {
		t.Fatalf("got (%q, %v)", s, ok)
	}
}

func TestExtract_Scalars(t *testing.T) {
	src := shape.Tuple{
		true,
		-3,
		uint64(math.MaxUint64),
		1.5,
		float32(0.1),
		shape.Char('x'),
		shape.Unit{},
		nil,
		shape.UnitVariant{Type: "Color", Name: "Red"},
		shape.NewtypeVariant{Type: "Shape", Name: "Circle", Value: 2.5},
		shape.TupleVariant{Type: "Shape", Name: "Rect", Elems: []any{3, 4}},
		[]byte("hi"),
	}
	want := []string{"true", "-3", "18446744073709551615", "1.5", "0.1", "x", "unit", "none", "Red", "2.5", "Rect", "aGk="}
	for i, w := range want {
		got, ok := goiq.ExtractPrimitive(src, goiq.PathOf().Index(i))
		if !ok || got != w {
			t.Fatalf("index %d: got (%q, %v) want %q", i, got, ok, w)
		}
	}
}

func TestExtract_BytesMatchJSON(t *testing.T) {
	src := map[string]any{"b": []byte{0xff, 0x00}}
	prim, ok := goiq.ExtractPrimitive(src, "b")
	if !ok || prim != "/wA=" {
		t.Fatalf("primitive: got (%q, %v)", prim, ok)
	}
	js, ok := goiq.ExtractJSON(src, "b")
	if !ok || js != `"`+prim+`"` {
		t.Fatalf("json: got (%q, %v)", js, ok)
	}
}

func TestExtract_Variants(t *testing.T) {
	src := map[string]any{
		"circle": shape.NewtypeVariant{Type: "Shape", Name: "Circle", Value: 2.5},
		"rect":   shape.TupleVariant{Type: "Shape", Name: "Rect", Elems: []any{3, 4}},
		"named":  shape.RecordVariant{Type: "Shape", Name: "Square", Fields: []shape.Field{{Name: "side", Value: 5}}},
	}
	cases := []struct {
		path   string
		format goiq.Format
		want   string
		found  bool
	}{
		{"circle.Circle", goiq.FormatPrimitive, "2.5", true},
		{"circle.Square", goiq.FormatPrimitive, "", false},
		{"circle", goiq.FormatJSON, `{"Circle":2.5}`, true},
		{"rect.Rect.1", goiq.FormatPrimitive, "4", true},
		{"rect.Rect.2", goiq.FormatPrimitive, "", false},
		{"rect.Rect", goiq.FormatJSON, "[3,4]", true},
		{"named.Square.side", goiq.FormatPrimitive, "5", true},
		{"named.Square", goiq.FormatJSON, `{"side":5}`, true},
		{"named", goiq.FormatPrimitive, "Square", true},
		{"circle", goiq.FormatPrimitive, "2.5", true},
		{"rect", goiq.FormatPrimitive, "Rect", true},
	}
	for _, tc := range cases {
		got, ok := goiq.ExtractString(src, tc.path, tc.format)
		if ok != tc.found || got != tc.want {
			t.Fatalf("%s: got (%q, %v) want (%q, %v)", tc.path, got, ok, tc.want, tc.found)
		}
	}
}

func TestExtract_Pointers(t *testing.T) {
	name := "Rex"
	type owner struct {
		Name *string `json:"name"`
		Dog  *Dog    `json:"dog"`
		Cat  *Dog    `json:"cat"`
	}
	src := &owner{Name: &name, Dog: &Dog{Name: "Rover", Ears: 2}}
	if s, ok := goiq.ExtractPrimitive(src, "name"); !ok || s != "Rex" {
		t.Fatalf("got (%q, %v)", s, ok)
	}
	if s, ok := goiq.ExtractPrimitive(src, "dog.ears"); !ok || s != "2" {
		t.Fatalf("got (%q, %v)", s, ok)
	}
	if s, ok := goiq.ExtractPrimitive(src, "cat"); !ok || s != "none" {
		t.Fatalf("got (%q, %v)", s, ok)
	}
	if _, ok := goiq.ExtractPrimitive(src, "cat.name"); ok {
		t.Fatalf("nil pointer must not be descended into")
	}
}

func TestExtract_Idempotent(t *testing.T) {
	car := sampleCar()
	a, okA := goiq.ExtractJSON(car, "passengers")
	b, okB := goiq.ExtractJSON(car, "passengers")
	if a != b || okA != okB {
		t.Fatalf("results differ: %q vs %q", a, b)
	}
}

func TestExtractValue(t *testing.T) {
	dog, ok, err := goiq.ExtractValue[Dog](sampleCar(), "passengers.1")
	if err != nil || !ok {
		t.Fatalf("unexpected (%v, %v)", ok, err)
	}
	if dog != (Dog{Name: "Laïka", Ears: 2}) {
		t.Fatalf("got %+v", dog)
	}
	fantasy, ok, err := goiq.ExtractValue[Dog](sampleWorld(), "masters.fantasy")
	if err != nil || !ok || fantasy.Name != "Roverandom" {
		t.Fatalf("unexpected (%+v, %v, %v)", fantasy, ok, err)
	}
	if _, ok, err := goiq.ExtractValue[Dog](sampleCar(), "passengers.7"); ok || err != nil {
		t.Fatalf("expected not found, got (%v, %v)", ok, err)
	}
	_, ok, err = goiq.ExtractValue[int](sampleCar(), "driver")
	if ok {
		t.Fatalf("expected decode failure")
	}
	if e, isErr := goiq.AsError(err); !isErr || e.Code != goiq.CodeDecode || e.Path != "driver" {
		t.Fatalf("expected decode error, got %v", err)
	}
}

type sizeSample struct {
	Coord shape.Tuple `json:"coord"`
	Name  string      `json:"name"`
	V     []int       `json:"v"`
}

func TestExtractSize(t *testing.T) {
	src := sizeSample{Coord: shape.Tuple{"Earth", 4}, Name: "some name", V: []int{1, 2, 3, 4}}
	cases := []struct {
		path  string
		want  int
		found bool
	}{
		{"coord", 2, true},
		{"coord.0", 5, true},
		{"coord.1", 0, false},
		{"name", 9, true},
		{"v", 4, true},
		{"v.9", 0, false},
		{"", 3, true},
	}
	for _, tc := range cases {
		n, ok := goiq.ExtractSize(src, tc.path)
		if ok != tc.found || n != tc.want {
			t.Fatalf("%q: got (%d, %v) want (%d, %v)", tc.path, n, ok, tc.want, tc.found)
		}
	}
	if n, ok := goiq.ExtractSize(src, goiq.PathOf()); !ok || n != 3 {
		t.Fatalf("zero-token path: got (%d, %v)", n, ok)
	}
	if n, ok := goiq.SizeOf(src); !ok || n != 3 {
		t.Fatalf("SizeOf: got (%d, %v)", n, ok)
	}
	if n, ok := goiq.SizeOf("héllo"); !ok || n != 5 {
		t.Fatalf("SizeOf string counts characters: got (%d, %v)", n, ok)
	}
	if _, ok := goiq.SizeOf(5); ok {
		t.Fatalf("numbers are not countable")
	}
}

type broken struct {
	Ch    chan int `json:"ch"`
	Ratio float64  `json:"ratio"`
}

func TestExtract_Failures(t *testing.T) {
	src := broken{Ch: make(chan int), Ratio: math.NaN()}

	_, ok, err := goiq.ExtractStringChecked(src, "ch.x", goiq.FormatPrimitive)
	e, isErr := goiq.AsError(err)
	if ok || !isErr || e.Code != goiq.CodeEmission || e.Path != "ch.x" {
		t.Fatalf("expected emission error, got (%v, %v)", ok, err)
	}
	var ute *shape.UnsupportedTypeError
	if !errors.As(err, &ute) {
		t.Fatalf("cause should be UnsupportedTypeError, got %v", err)
	}
	if _, ok := goiq.ExtractPrimitive(src, "ch.x"); ok {
		t.Fatalf("unchecked extraction must report not found")
	}

	_, _, err = goiq.ExtractStringChecked(src, "ratio", goiq.FormatJSON)
	if e, isErr := goiq.AsError(err); !isErr || e.Code != goiq.CodeRender {
		t.Fatalf("expected render error, got %v", err)
	}
	if s, ok := goiq.ExtractPrimitive(src, "ratio"); !ok || s != "NaN" {
		t.Fatalf("primitive NaN: got (%q, %v)", s, ok)
	}

	_, ok, err = goiq.ExtractStringChecked(shape.RawJSON(`{"a":1} trailing`), "a", goiq.FormatJSON)
	if e, isErr := goiq.AsError(err); ok || !isErr || e.Code != goiq.CodeEmission || !errors.Is(err, shape.ErrMalformedJSON) {
		t.Fatalf("expected malformed JSON error, got (%v, %v)", ok, err)
	}

	if _, _, err := goiq.ExtractSizeChecked(src, "ch"); err == nil {
		t.Fatalf("expected size emission error")
	}
	if _, ok := goiq.ExtractSize(src, "ch"); ok {
		t.Fatalf("unchecked size must report not found")
	}
}

func TestExtract_RawJSONAndYAML(t *testing.T) {
	raw := shape.RawJSON(`{"engine":"V8","passengers":[{"name":"Roverandom","ears":1},{"name":"Laïka","ears":2}],"driver":{"name":"Rex","ears":2}}`)
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(`
engine: V8
passengers:
  - {name: Roverandom, ears: 1}
  - {name: Laïka, ears: 2}
driver: {name: Rex, ears: 2}
`), &node); err != nil {
		t.Fatal(err)
	}
	car := sampleCar()
	for _, src := range []any{car, raw, &node} {
		for _, p := range []string{"driver.ears", "passengers.1.name", "engine"} {
			want, _ := goiq.ExtractPrimitive(car, p)
			if got, ok := goiq.ExtractPrimitive(src, p); !ok || got != want {
				t.Fatalf("%T %s: got (%q, %v) want %q", src, p, got, ok, want)
			}
		}
		if got, ok := goiq.ExtractJSON(src, "passengers.0"); !ok || got != `{"name":"Roverandom","ears":1}` {
			t.Fatalf("%T: got (%q, %v)", src, got, ok)
		}
		if n, ok := goiq.ExtractSize(src, "passengers"); !ok || n != 2 {
			t.Fatalf("%T: size got (%d, %v)", src, n, ok)
		}
	}
}
