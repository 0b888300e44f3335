package genloop

import (
	"encoding/json"
	"fmt"
)

// OpKind discriminates between the six workspace operations.
type OpKind string

const (
	OpReadFile        OpKind = "read_file"
	OpGetFileMetadata OpKind = "get_file_metadata"
	OpListDirectory   OpKind = "list_directory_contents"
	OpWriteToFile     OpKind = "write_to_file"
	OpRunCommand      OpKind = "run_command"
	OpCreateDirectory OpKind = "create_directory"
)

// ReadFileArgs are the arguments for a read_file operation.
type ReadFileArgs struct {
	Filename string `json:"filename"`
}

// MetadataArgs are the arguments for a get_file_metadata operation.
type MetadataArgs struct {
	Filename string `json:"filename"`
}

// ListDirectoryArgs are the arguments for a list_directory_contents
// operation. Directory defaults to "." when omitted.
type ListDirectoryArgs struct {
	Directory string `json:"directory"`
}

// WriteFileArgs are the arguments for a write_to_file operation. Mode is
// "w" (overwrite) or "a" (append) and defaults to "w" when omitted.
type WriteFileArgs struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
	Mode     string `json:"mode"`
}

// RunCommandArgs are the arguments for a run_command operation.
type RunCommandArgs struct {
	Command string `json:"command"`
}

// CreateDirectoryArgs are the arguments for a create_directory operation.
type CreateDirectoryArgs struct {
	DirectoryName string `json:"directory_name"`
}

// Op is a tagged union over the six operations. Exactly one arg record is
// non-nil, matching Kind.
type Op struct {
	Kind            OpKind
	ReadFile        *ReadFileArgs
	Metadata        *MetadataArgs
	ListDirectory   *ListDirectoryArgs
	WriteFile       *WriteFileArgs
	RunCommand      *RunCommandArgs
	CreateDirectory *CreateDirectoryArgs
}

// DecodeOp parses a planner tool invocation into a typed operation. It fails
// only for unknown operation names or arguments that are not a JSON object;
// missing fields decode to zero values and are validated at execution time.
func DecodeOp(name string, arguments json.RawMessage) (Op, error) {
	if len(arguments) == 0 {
		arguments = json.RawMessage("{}")
	}

	switch OpKind(name) {
	case OpReadFile:
		var args ReadFileArgs
		if err := json.Unmarshal(arguments, &args); err != nil {
			return Op{}, fmt.Errorf("decode %s arguments: %w", name, err)
		}
		return Op{Kind: OpReadFile, ReadFile: &args}, nil

	case OpGetFileMetadata:
		var args MetadataArgs
		if err := json.Unmarshal(arguments, &args); err != nil {
			return Op{}, fmt.Errorf("decode %s arguments: %w", name, err)
		}
		return Op{Kind: OpGetFileMetadata, Metadata: &args}, nil

	case OpListDirectory:
		var args ListDirectoryArgs
		if err := json.Unmarshal(arguments, &args); err != nil {
			return Op{}, fmt.Errorf("decode %s arguments: %w", name, err)
		}
		if args.Directory == "" {
			args.Directory = "."
		}
		return Op{Kind: OpListDirectory, ListDirectory: &args}, nil

	case OpWriteToFile:
		var args WriteFileArgs
		if err := json.Unmarshal(arguments, &args); err != nil {
			return Op{}, fmt.Errorf("decode %s arguments: %w", name, err)
		}
		if args.Mode == "" {
			args.Mode = "w"
		}
		return Op{Kind: OpWriteToFile, WriteFile: &args}, nil

	case OpRunCommand:
		var args RunCommandArgs
		if err := json.Unmarshal(arguments, &args); err != nil {
			return Op{}, fmt.Errorf("decode %s arguments: %w", name, err)
		}
		return Op{Kind: OpRunCommand, RunCommand: &args}, nil

	case OpCreateDirectory:
		var args CreateDirectoryArgs
		if err := json.Unmarshal(arguments, &args); err != nil {
			return Op{}, fmt.Errorf("decode %s arguments: %w", name, err)
		}
		return Op{Kind: OpCreateDirectory, CreateDirectory: &args}, nil

	default:
		return Op{}, fmt.Errorf("unknown operation %q", name)
	}
}
