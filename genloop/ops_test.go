package genloop

import (
	"encoding/json"
	"testing"
)

func TestDecodeOpReadFile(t *testing.T) {
	op, err := DecodeOp("read_file", json.RawMessage(`{"filename":"main.go"}`))
	if err != nil {
		t.Fatalf("DecodeOp: %v", err)
	}
	if op.Kind != OpReadFile {
		t.Errorf("Kind = %q", op.Kind)
	}
	if op.ReadFile == nil || op.ReadFile.Filename != "main.go" {
		t.Errorf("ReadFile = %+v", op.ReadFile)
	}
}

func TestDecodeOpWriteDefaults(t *testing.T) {
	op, err := DecodeOp("write_to_file", json.RawMessage(`{"filename":"a.txt","content":"x"}`))
	if err != nil {
		t.Fatalf("DecodeOp: %v", err)
	}
	if op.WriteFile.Mode != "w" {
		t.Errorf("Mode = %q, want default \"w\"", op.WriteFile.Mode)
	}
}

func TestDecodeOpWriteAppendMode(t *testing.T) {
	op, err := DecodeOp("write_to_file", json.RawMessage(`{"filename":"a.txt","content":"x","mode":"a"}`))
	if err != nil {
		t.Fatalf("DecodeOp: %v", err)
	}
	if op.WriteFile.Mode != "a" {
		t.Errorf("Mode = %q, want \"a\"", op.WriteFile.Mode)
	}
}

func TestDecodeOpListDirectoryDefaults(t *testing.T) {
	tests := []struct {
		name string
		args string
	}{
		{"empty object", `{}`},
		{"missing args", ``},
		{"empty directory", `{"directory":""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := DecodeOp("list_directory_contents", json.RawMessage(tt.args))
			if err != nil {
				t.Fatalf("DecodeOp: %v", err)
			}
			if op.ListDirectory.Directory != "." {
				t.Errorf("Directory = %q, want \".\"", op.ListDirectory.Directory)
			}
		})
	}
}

func TestDecodeOpUnknownName(t *testing.T) {
	if _, err := DecodeOp("delete_everything", json.RawMessage(`{}`)); err == nil {
		t.Fatal("expected error for unknown operation")
	}
}

func TestDecodeOpNonObjectArguments(t *testing.T) {
	if _, err := DecodeOp("read_file", json.RawMessage(`"just a string"`)); err == nil {
		t.Fatal("expected error for non-object arguments")
	}
}

func TestDecodeOpIgnoresUnknownFields(t *testing.T) {
	op, err := DecodeOp("run_command", json.RawMessage(`{"command":"ls","extra":true}`))
	if err != nil {
		t.Fatalf("DecodeOp: %v", err)
	}
	if op.RunCommand.Command != "ls" {
		t.Errorf("Command = %q", op.RunCommand.Command)
	}
}

func TestCoreRegistry(t *testing.T) {
	reg := CoreRegistry()

	if reg.Count() != 6 {
		t.Fatalf("Count = %d, want 6", reg.Count())
	}
	wantNames := []string{
		"read_file",
		"get_file_metadata",
		"list_directory_contents",
		"write_to_file",
		"run_command",
		"create_directory",
	}
	names := reg.Names()
	for i, want := range wantNames {
		if names[i] != want {
			t.Errorf("Names[%d] = %q, want %q", i, names[i], want)
		}
	}
	for _, name := range wantNames {
		if !reg.Has(name) {
			t.Errorf("Has(%q) = false", name)
		}
	}
	if reg.Has("rm_rf") {
		t.Error("Has(rm_rf) = true")
	}
}

func TestCoreRegistryDefinitionsAreCopies(t *testing.T) {
	reg := CoreRegistry()
	defs := reg.Definitions()
	defs[0].Name = "mutated"
	if reg.Definitions()[0].Name != "read_file" {
		t.Error("mutating returned definitions changed registry state")
	}
}

func TestCoreRegistryRequiredFields(t *testing.T) {
	for _, def := range CoreRegistry().Definitions() {
		params, ok := def.Parameters["type"].(string)
		if !ok || params != "object" {
			t.Errorf("%s: parameters type = %v, want object", def.Name, def.Parameters["type"])
		}
		if def.Description == "" {
			t.Errorf("%s: empty description", def.Name)
		}
	}
}
