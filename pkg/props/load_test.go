package props

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecodeYAML(t *testing.T) {
	src := `
data:
  welcome: Welcome to React
  author:
    firstName: Aytekin
    lastName: Kaplan
  date: 2024-08-19
techs: [HTML, CSS, JavaScript]
age: 1453
weight: 735.75
status: false
image: !resource images/aytekin.jpg
nothing: null
`
	b, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}

	if got := strings.Join(b.Keys(), ","); got != "data,techs,age,weight,status,image,nothing" {
		t.Errorf("key order = %s", got)
	}
	if s, _ := b.GetString("data.author.firstName"); s != "Aytekin" {
		t.Errorf("firstName = %q", s)
	}
	if n, _ := b.GetNumber("age"); n != 1453 {
		t.Errorf("age = %v", n)
	}
	if n, _ := b.GetNumber("weight"); n != 735.75 {
		t.Errorf("weight = %v", n)
	}
	if v, err := b.GetBool("status"); err != nil || v {
		t.Errorf("status = %v, %v", v, err)
	}
	if l, _ := b.GetList("techs"); len(l) != 3 || l[2].Text() != "JavaScript" {
		t.Errorf("techs = %#v", l)
	}
	if v, _ := b.Lookup("image"); v.Kind() != KindResource {
		t.Errorf("image kind = %v", v.Kind())
	}
	if v, _ := b.Lookup("data.date"); v.Kind() != KindTime {
		t.Errorf("date kind = %v", v.Kind())
	}
	if v, ok := b.Lookup("nothing"); !ok || !v.IsNull() {
		t.Errorf("nothing = %#v, %v", v, ok)
	}
}

func TestDecodeRejectsNonMapping(t *testing.T) {
	if _, err := Decode(strings.NewReader("- a\n- b\n")); err == nil {
		t.Error("sequence root should fail")
	}
}

func TestLoadFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "props.json")
	if err := os.WriteFile(path, []byte(`{"name": "Aytekin", "techs": ["Go"]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	b, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if s, _ := b.GetString("name"); s != "Aytekin" {
		t.Errorf("name = %q", s)
	}

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"name":"Aytekin","techs":["Go"]}` {
		t.Errorf("round trip = %s", data)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); !os.IsNotExist(err) {
		t.Errorf("err = %v, want not-exist", err)
	}
}
