package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeList       Type = "list"
	TypeCreate     Type = "create"
	TypeDelete     Type = "delete"
	TypeDeleteName Type = "delete-name"
	TypeStart      Type = "start"
	TypeStop       Type = "stop"
	TypeCancel     Type = "cancel"
	TypeRename     Type = "rename"
	TypeAdd        Type = "add"
	TypeSub        Type = "sub"
	TypeSet        Type = "set"
	TypeArchive    Type = "archive"
	TypeClear      Type = "clear"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type ListArgs struct {
	All       bool
	Timestamp bool
	Base      bool
}

type CreateArgs struct {
	Name  string
	Start bool
}

// TaskArgs targets a single task by id.
type TaskArgs struct {
	ID uint32
}

type DeleteNameArgs struct {
	Name string
}

type RenameArgs struct {
	ID   uint32
	Name string
}

// TimeArgs carries an unparsed XXhYYm token; it is validated by the task.
type TimeArgs struct {
	ID   uint32
	Time string
}

type Command struct {
	Type       Type
	Raw        string
	List       *ListArgs
	Create     *CreateArgs
	Task       *TaskArgs
	DeleteName *DeleteNameArgs
	Rename     *RenameArgs
	Time       *TimeArgs
}

func List(args ListArgs) Command {
	return Command{Type: TypeList, List: &args}
}

func Create(name string, start bool) Command {
	return Command{Type: TypeCreate, Create: &CreateArgs{Name: name, Start: start}}
}

// OnTask builds one of the id-only commands (delete, start, stop, cancel, archive).
func OnTask(t Type, id uint32) Command {
	return Command{Type: t, Task: &TaskArgs{ID: id}}
}

func DeleteName(name string) Command {
	return Command{Type: TypeDeleteName, DeleteName: &DeleteNameArgs{Name: name}}
}

func Rename(id uint32, name string) Command {
	return Command{Type: TypeRename, Rename: &RenameArgs{ID: id, Name: name}}
}

// WithTime builds one of add, sub or set.
func WithTime(t Type, id uint32, token string) Command {
	return Command{Type: t, Time: &TimeArgs{ID: id, Time: token}}
}

func Clear() Command {
	return Command{Type: TypeClear}
}

func ParseTaskID(raw string) (uint32, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("could not parse task id %q", raw)}
	}
	return uint32(id), nil
}

// Parse reads a single command line such as "start 3" or "add 3 1h30m".
func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	var (
		cmd Command
		err error
	)
	switch t := Type(head); t {
	case TypeList:
		cmd, err = parseList(args)
	case TypeCreate:
		cmd, err = parseCreate(args)
	case TypeDelete, TypeStart, TypeStop, TypeCancel, TypeArchive:
		cmd, err = parseOnTask(t, args)
	case TypeDeleteName:
		cmd, err = parseDeleteName(args)
	case TypeRename:
		cmd, err = parseRename(args)
	case TypeAdd, TypeSub, TypeSet:
		cmd, err = parseWithTime(t, args)
	case TypeClear:
		if len(args) != 0 {
			err = &CommandError{Code: ErrCodeInvalidArgument, Message: "clear takes no arguments"}
		}
		cmd = Clear()
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
	if err != nil {
		return Command{}, err
	}
	cmd.Raw = input
	return cmd, nil
}

func parseList(args []string) (Command, error) {
	var la ListArgs
	for _, arg := range args {
		switch arg {
		case "-a", "--all", "all":
			la.All = true
		case "--timestamp", "timestamp":
			la.Timestamp = true
		case "-b", "--base", "base":
			la.Base = true
		default:
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown list option %q", arg)}
		}
	}
	return List(la), nil
}

func parseCreate(args []string) (Command, error) {
	start := false
	words := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "-s" || arg == "--start" {
			start = true
			continue
		}
		words = append(words, arg)
	}
	name := strings.Join(words, " ")
	if name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "create requires a name"}
	}
	return Create(name, start), nil
}

func parseOnTask(t Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a task id", t)}
	}
	id, err := ParseTaskID(args[0])
	if err != nil {
		return Command{}, err
	}
	return OnTask(t, id), nil
}

func parseDeleteName(args []string) (Command, error) {
	name := strings.Join(args, " ")
	if name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "delete-name requires a name"}
	}
	return DeleteName(name), nil
}

func parseRename(args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "rename requires a task id and a name"}
	}
	id, err := ParseTaskID(args[0])
	if err != nil {
		return Command{}, err
	}
	return Rename(id, strings.Join(args[1:], " ")), nil
}

func parseWithTime(t Type, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a task id and a time like 1h30m", t)}
	}
	id, err := ParseTaskID(args[0])
	if err != nil {
		return Command{}, err
	}
	return WithTime(t, id, args[1]), nil
}
