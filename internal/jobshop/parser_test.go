package jobshop

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const catalogText = `
 +++++++++++++++++++++++++++++

 instance ft03

 +++++++++++++++++++++++++++++

 3 2
 0 3 1 2
 1 2 0 1
 0 4 1 1

 +++++++++++++++++++++++++++++

 instance tiny

 +++++++++++++++++++++++++++++

 2 2
 0 3 1 2
 1 2 0 1
`

const singleText = `
 2 2
 0 3 1 2
 1 2 0 1
`

func TestParseInstancesCatalog(t *testing.T) {
	instances, err := ParseInstances(strings.NewReader(catalogText))
	if err != nil {
		t.Fatalf("ParseInstances: %v", err)
	}
	if len(instances) != 2 {
		t.Fatalf("экземпляров %d, ожидалось 2", len(instances))
	}

	ft03, ok := instances["ft03"]
	if !ok {
		t.Fatal("экземпляр ft03 не найден")
	}
	if ft03.Jobs != 3 || ft03.Machines != 2 {
		t.Errorf("ft03: %dx%d, ожидалось 3x2", ft03.Jobs, ft03.Machines)
	}
	wantOps := []Operation{{Machine: 0, Duration: 3}, {Machine: 1, Duration: 2}}
	if len(ft03.Ops[0]) != 2 || ft03.Ops[0][0] != wantOps[0] || ft03.Ops[0][1] != wantOps[1] {
		t.Errorf("ft03 работа 0: %v, ожидалось %v", ft03.Ops[0], wantOps)
	}

	tiny, ok := instances["tiny"]
	if !ok {
		t.Fatal("экземпляр tiny не найден")
	}
	if tiny.Jobs != 2 || tiny.Machines != 2 {
		t.Errorf("tiny: %dx%d, ожидалось 2x2", tiny.Jobs, tiny.Machines)
	}
}

func TestParseSingleInstance(t *testing.T) {
	inst, err := ParseSingleInstance(strings.NewReader(singleText))
	if err != nil {
		t.Fatalf("ParseSingleInstance: %v", err)
	}
	if inst.Jobs != 2 || inst.Machines != 2 {
		t.Errorf("экземпляр %dx%d, ожидалось 2x2", inst.Jobs, inst.Machines)
	}
	if inst.Ops[1][0] != (Operation{Machine: 1, Duration: 2}) {
		t.Errorf("работа 1, операция 0: %v", inst.Ops[1][0])
	}
}

func TestParseSingleInstanceRejectsCatalog(t *testing.T) {
	_, err := ParseSingleInstance(strings.NewReader(catalogText))
	if err == nil {
		t.Fatal("ожидалась ошибка для файла-каталога")
	}
	// Ошибка перечисляет доступные имена
	if !strings.Contains(err.Error(), "ft03") || !strings.Contains(err.Error(), "tiny") {
		t.Errorf("ошибка не содержит имён экземпляров: %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"no dims line", " instance bad\n x y\n"},
		{"non-numeric field", " 1 1\n 0 abc\n"},
		{"odd field count", " 1 2\n 0 3 1\n"},
		{"missing job lines", " instance bad\n 3 2\n 0 3 1 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if strings.Contains(tt.text, "instance ") {
				_, err = ParseInstances(strings.NewReader(tt.text))
			} else {
				_, err = ParseSingleInstance(strings.NewReader(tt.text))
			}
			if err == nil {
				t.Errorf("ожидалась ошибка разбора для %q", tt.text)
			}
		})
	}
}

func TestLoadInstance(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.txt")
	if err := os.WriteFile(path, []byte(catalogText), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	inst, err := LoadInstance(path, "tiny")
	if err != nil {
		t.Fatalf("LoadInstance: %v", err)
	}
	if inst.Jobs != 2 {
		t.Errorf("Jobs = %d, ожидалось 2", inst.Jobs)
	}

	_, err = LoadInstance(path, "nope")
	if !errors.Is(err, ErrInstanceNotFound) {
		t.Errorf("ожидалась ErrInstanceNotFound, получено %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "ft03") {
		t.Errorf("ошибка не перечисляет доступные имена: %v", err)
	}

	single := filepath.Join(dir, "single.txt")
	if err := os.WriteFile(single, []byte(singleText), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	inst, err = LoadInstance(single, "")
	if err != nil {
		t.Fatalf("LoadInstance одиночного файла: %v", err)
	}
	if inst.Machines != 2 {
		t.Errorf("Machines = %d, ожидалось 2", inst.Machines)
	}
}
